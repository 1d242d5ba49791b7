// Package tune glues the MIDI collaborator to the compiler: it fills in
// derived fields and converts whole files.
package tune

import (
	"math"

	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/YunChenqwq/MiditoBytebeat/compiler"
	"github.com/YunChenqwq/MiditoBytebeat/constants"
	"github.com/YunChenqwq/MiditoBytebeat/midi"
	"github.com/YunChenqwq/MiditoBytebeat/model"
	"github.com/YunChenqwq/MiditoBytebeat/pitch"
)

// Tune couples a decoded timeline with the options it converts under.
type Tune struct {
	Notes   []model.Note
	Options model.ConverterOptions
}

func DefaultOptions() model.ConverterOptions {
	return model.ConverterOptions{
		BaseUnit:     constants.DefaultBaseUnit,
		RestDuration: constants.DefaultRestDuration,
		BasePitch:    constants.DefaultBasePitch,
		BaseCoeff:    constants.DefaultBaseCoeff,
	}
}

// New derives what the caller left implicit: a zero TotalPeriod becomes
// the cumulative length of the timeline, and every note's coefficient is
// recomputed from its pitch, the transpose and the tuning. Coefficients
// are never trusted from the input since pitch or tuning may have changed.
func New(notes []model.Note, opts model.ConverterOptions) *Tune {
	if opts.TotalPeriod == 0 {
		opts.TotalPeriod = derivePeriod(notes, opts.BaseUnit)
	}
	for i := range notes {
		notes[i].Coeff = pitch.Coefficient(notes[i].Pitch+opts.Transpose, opts.BasePitch, opts.BaseCoeff)
	}
	return &Tune{Notes: notes, Options: opts}
}

func derivePeriod(notes []model.Note, baseUnit float64) int {
	var total float64
	for _, n := range notes {
		total += n.Duration * baseUnit
	}
	p := int(math.Ceil(total))
	if p <= 0 {
		p = 1
	}
	return p
}

func (t *Tune) Compile() (*compiler.Expression, error) {
	return compiler.Compile(t.Notes, t.Options)
}

func FromSMF(s *smf.SMF, opts model.ConverterOptions) *Tune {
	return New(midi.ExtractNotes(s, opts), opts)
}

func FromBytes(data []byte, opts model.ConverterOptions) (*Tune, error) {
	s, err := midi.Parse(data)
	if err != nil {
		return nil, err
	}
	return FromSMF(s, opts), nil
}

func LoadFile(path string, opts model.ConverterOptions) (*Tune, error) {
	s, err := midi.ReadMidiFile(path)
	if err != nil {
		return nil, err
	}
	return FromSMF(s, opts), nil
}
