package synth

import (
	"testing"

	"github.com/YunChenqwq/MiditoBytebeat/compiler"
	"github.com/YunChenqwq/MiditoBytebeat/model"
	"github.com/stretchr/testify/assert"
)

func mustCompile(t *testing.T, notes []model.Note, opts model.ConverterOptions) *compiler.Expression {
	t.Helper()
	expr, err := compiler.Compile(notes, opts)
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	return expr
}

func TestEmptyTimelineRendersConstantSilence(t *testing.T) {
	expr := mustCompile(t, nil, model.ConverterOptions{TotalPeriod: 3000, BaseCoeff: 1})
	s := NewSynthesizer(expr, 8000, 44100)

	assert := assert.New(t)
	for i := 0; i < 10000; i++ {
		assert.Equal(-1.0, s.RenderSample())
	}
}

func TestScenarioSamples(t *testing.T) {
	notes := []model.Note{
		{Pitch: 60, Duration: 1},
		{Pitch: 72, Duration: 1},
		{Pitch: 60, Duration: 1},
	}
	opts := model.ConverterOptions{BaseUnit: 1000, TotalPeriod: 3000, BasePitch: 60, BaseCoeff: 1}
	expr := mustCompile(t, notes, opts)

	// step = 1, so the i-th call renders t = i.
	s := NewSynthesizer(expr, 1, 1)
	var samples []float64
	for i := 0; i <= 1500; i++ {
		samples = append(samples, s.RenderSample())
	}

	assert := assert.New(t)
	// t=500: 500*1.0 = 500, low byte 244 -> 244/128-1
	assert.InDelta(0.90625, samples[500], 1e-9)
	// t=1500: 1500*2.0 = 3000, low byte 184 -> 184/128-1
	assert.InDelta(0.4375, samples[1500], 1e-9)
	// t=0: raw 0 -> -1
	assert.Equal(-1.0, samples[0])
}

func TestWraparoundIsHardReset(t *testing.T) {
	// Single always-sounding note so Eval(t) = t, making the rendered
	// byte reveal the virtual time directly.
	notes := []model.Note{{Pitch: 60, Duration: 1}}
	opts := model.ConverterOptions{BaseUnit: 10, TotalPeriod: 10, BasePitch: 60, BaseCoeff: 1}
	expr := mustCompile(t, notes, opts)

	// step = 3 does not divide the period 10: t runs 0,3,6,9 and the
	// accumulator would reach 12, which resets to exactly 0 rather than
	// carrying the remainder 2 over.
	s := NewSynthesizer(expr, 3, 1)

	toByte := func(v float64) int { return int((v + 1) * 128) }
	want := []int{0, 3, 6, 9, 0, 3, 6, 9, 0, 3, 6, 9}

	assert := assert.New(t)
	for i, w := range want {
		got := toByte(s.RenderSample())
		assert.Equal(w, got, "sample %d", i)
	}
}

func TestResetRestartsVirtualTime(t *testing.T) {
	notes := []model.Note{{Pitch: 60, Duration: 1}}
	opts := model.ConverterOptions{BaseUnit: 100, TotalPeriod: 100, BasePitch: 60, BaseCoeff: 1}
	expr := mustCompile(t, notes, opts)
	s := NewSynthesizer(expr, 1, 1)

	first := s.RenderSample()
	for i := 0; i < 17; i++ {
		s.RenderSample()
	}
	s.Reset()

	assert.Equal(t, first, s.RenderSample())
}

func TestSetExpressionSwapsFormulaMidStream(t *testing.T) {
	opts := model.ConverterOptions{BaseUnit: 100, TotalPeriod: 100, BasePitch: 60, BaseCoeff: 1}
	silence := mustCompile(t, nil, opts)
	sounding := mustCompile(t, []model.Note{{Pitch: 60, Duration: 1}}, opts)

	s := NewSynthesizer(silence, 1, 1)
	assert := assert.New(t)
	assert.Equal(-1.0, s.RenderSample())

	s.SetExpression(sounding)
	// Virtual time keeps running; the next sample uses the new formula.
	assert.NotEqual(-1.0, s.RenderSample())
}
