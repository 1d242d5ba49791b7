package model

// Note is one entry in the monophonic timeline. Notes play in slice order;
// StartTime is informational only and is never consulted by the compiler.
type Note struct {
	Pitch     int     // semitone value (MIDI key number)
	StartTime float64 // beats from the start of the tune, for display
	Duration  float64 // length of the note's slot, in beats
	Coeff     float64 // frequency coefficient derived from Pitch
	RestAfter float64 // silence carved out of the end of the slot, in virtual ticks
}

// ConverterOptions control how a note timeline becomes a formula.
type ConverterOptions struct {
	BaseUnit     float64 // virtual ticks per beat
	RestDuration float64 // rest appended after the final note, in virtual ticks
	TotalPeriod  int     // wraparound modulus for virtual time; 0 derives it from the timeline
	BasePitch    int     // reference semitone
	BaseCoeff    float64 // coefficient emitted at BasePitch
	Transpose    int     // semitones added to every pitch before coefficient derivation
}
