package tune

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/YunChenqwq/MiditoBytebeat/model"
)

func TestDerivesPeriodFromTimeline(t *testing.T) {
	opts := DefaultOptions()
	opts.BaseUnit = 1000
	notes := []model.Note{
		{Pitch: 60, Duration: 1},
		{Pitch: 64, Duration: 2.5},
	}

	tn := New(notes, opts)

	assert.Equal(t, 3500, tn.Options.TotalPeriod)
}

func TestExplicitPeriodWins(t *testing.T) {
	opts := DefaultOptions()
	opts.BaseUnit = 1000
	opts.TotalPeriod = 9999

	tn := New([]model.Note{{Pitch: 60, Duration: 1}}, opts)

	assert.Equal(t, 9999, tn.Options.TotalPeriod)
}

func TestEmptyTimelineGetsMinimalPeriod(t *testing.T) {
	tn := New(nil, DefaultOptions())

	expr, err := tn.Compile()
	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(1, tn.Options.TotalPeriod)
	assert.Zero(expr.Eval(0))
}

func TestRecomputesCoefficients(t *testing.T) {
	opts := DefaultOptions()
	opts.Transpose = 12
	// stale coefficient on the way in must be overwritten
	notes := []model.Note{{Pitch: 60, Duration: 1, Coeff: 42}}

	tn := New(notes, opts)

	assert.InDelta(t, 2.0, tn.Notes[0].Coeff, 1e-9)
}

func TestCompileMatchesNotes(t *testing.T) {
	opts := DefaultOptions()
	opts.BaseUnit = 1000
	tn := New([]model.Note{
		{Pitch: 60, Duration: 1},
		{Pitch: 72, Duration: 1},
	}, opts)

	expr, err := tn.Compile()

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal("(t%2000<1000?(t*1):t%2000<2000?(t*2):0)", expr.String())
}
