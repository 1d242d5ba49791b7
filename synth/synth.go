// Package synth renders compiled expressions as audio, one normalized
// sample per output frame.
package synth

import (
	"sync/atomic"

	"github.com/YunChenqwq/MiditoBytebeat/compiler"
)

// Synthesizer steps a virtual time counter through a compiled expression.
// Render and RenderSample run on the audio callback: they allocate
// nothing, take no locks and do no I/O. The accumulator is owned by that
// callback alone; the expression is swapped in whole via an atomic
// pointer, so a recompile on another goroutine is never observed half
// installed.
type Synthesizer struct {
	expr atomic.Pointer[compiler.Expression]
	step float64
	acc  float64
}

// NewSynthesizer prepares a stopped synthesizer. step is how far virtual
// time advances per host frame.
func NewSynthesizer(expr *compiler.Expression, virtualRate, hostRate float64) *Synthesizer {
	s := &Synthesizer{step: virtualRate / hostRate}
	s.expr.Store(expr)
	return s
}

// SetExpression installs a new formula. A changed period takes effect on
// the next sample.
func (s *Synthesizer) SetExpression(expr *compiler.Expression) {
	s.expr.Store(expr)
}

// Reset returns virtual time to the start of the period.
func (s *Synthesizer) Reset() {
	s.acc = 0
}

// RenderSample evaluates the expression at floor(accumulator), keeps the
// low byte of the result and centers it around zero. The wraparound is a
// hard reset to exactly 0, not a modulo reduction: when the step does not
// evenly divide the period the fractional remainder is discarded each
// cycle, matching the original player.
func (s *Synthesizer) RenderSample() float64 {
	e := s.expr.Load()
	t := int(s.acc)
	raw := int64(e.Eval(t)) & 0xff
	s.acc += s.step
	if s.acc >= float64(e.Period) {
		s.acc = 0
	}
	return float64(raw)/128 - 1
}

// Render fills one output buffer; this is the audio callback body.
func (s *Synthesizer) Render(out []float32) {
	for i := range out {
		out[i] = float32(s.RenderSample())
	}
}
