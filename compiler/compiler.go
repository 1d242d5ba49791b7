// Package compiler turns an ordered note timeline into a single bytebeat
// expression valid over one period of virtual time.
package compiler

import (
	"errors"
	"fmt"
	"math"

	"github.com/YunChenqwq/MiditoBytebeat/model"
	"github.com/YunChenqwq/MiditoBytebeat/pitch"
)

var ErrInvalidConfig = errors.New("invalid converter configuration")

// Segment is one threshold-guarded piece of an expression: either a
// sounding note or a carved-out silence.
type Segment struct {
	Threshold int
	Coeff     float64
	Silent    bool
}

// Expression is the compiled form of a timeline. It is an immutable value:
// any change to the notes or options compiles a new one. Segments are
// checked in emission order and the first threshold that t mod Period
// falls below decides the output, so an unreachable threshold silently
// collapses its note to silence.
type Expression struct {
	Period   int
	Segments []Segment
}

// Compile lays the notes end to end in slice order. Each note occupies a
// slot of Duration*BaseUnit virtual ticks with RestAfter ticks of silence
// carved out of the slot's tail; the default branch beyond the last
// threshold is zero up to the period.
func Compile(notes []model.Note, opts model.ConverterOptions) (*Expression, error) {
	if opts.TotalPeriod <= 0 {
		return nil, fmt.Errorf("%w: total period must be positive, got %d", ErrInvalidConfig, opts.TotalPeriod)
	}
	if !finite(opts.BaseCoeff) {
		return nil, fmt.Errorf("%w: base coefficient is not finite", ErrInvalidConfig)
	}

	expr := Expression{Period: opts.TotalPeriod}
	var cursor float64
	for i, n := range notes {
		coeff := pitch.Coefficient(n.Pitch+opts.Transpose, opts.BasePitch, opts.BaseCoeff)
		if !finite(coeff) {
			return nil, fmt.Errorf("%w: note %d has a non-finite coefficient", ErrInvalidConfig, i)
		}
		noteEnd := cursor + n.Duration*opts.BaseUnit - n.RestAfter
		expr.Segments = append(expr.Segments, Segment{
			Threshold: int(math.Floor(noteEnd)),
			Coeff:     coeff,
		})
		cursor += n.Duration * opts.BaseUnit
		if n.RestAfter > 0 && i < len(notes)-1 {
			expr.Segments = append(expr.Segments, Segment{
				Threshold: int(math.Floor(cursor)),
				Silent:    true,
			})
		}
	}
	return &expr, nil
}

// Eval reduces the expression at virtual time t with first-match-wins
// semantics over the segment order.
func (e *Expression) Eval(t int) float64 {
	tm := t % e.Period
	for _, s := range e.Segments {
		if tm < s.Threshold {
			if s.Silent {
				return 0
			}
			return float64(t) * s.Coeff
		}
	}
	return 0
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
