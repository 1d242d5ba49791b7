package midi

import (
	"sort"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/YunChenqwq/MiditoBytebeat/model"
)

// Interval is one sounding note on the raw tick axis, before rests and
// slots are worked out.
type Interval struct {
	Key   uint8
	Start int64
	End   int64
}

type reducedEvent struct {
	tick  int64
	key   uint8
	isOff bool
}

// ExtractNotes reduces a parsed file to the monophonic timeline the
// compiler consumes. All tracks are merged; overlapping notes are clipped
// so that a note always ends no later than the next one starts.
func ExtractNotes(s *smf.SMF, opts model.ConverterOptions) []model.Note {
	res := float64(960)
	if mt, ok := s.TimeFormat.(smf.MetricTicks); ok {
		res = float64(mt.Resolution())
	}

	var events []reducedEvent
	for _, track := range s.Tracks {
		var absTicks int64
		for _, event := range track {
			absTicks += int64(event.Delta)
			var channel uint8
			var key uint8
			var velocity uint8
			switch {
			case event.Message.GetNoteOn(&channel, &key, &velocity):
				// running status: velocity 0 means note off
				events = append(events, reducedEvent{tick: absTicks, key: key, isOff: velocity == 0})
			case event.Message.GetNoteOff(&channel, &key, &velocity):
				events = append(events, reducedEvent{tick: absTicks, key: key, isOff: true})
			}
		}
	}

	// prioritize smaller offsets, then note off
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].tick != events[j].tick {
			return events[i].tick < events[j].tick
		}
		return events[i].isOff && !events[j].isOff
	})

	return NotesFromIntervals(reduceToIntervals(events), res, opts)
}

// reduceToIntervals enforces monophony: a note-on while another note is
// sounding closes the earlier note at that tick.
func reduceToIntervals(events []reducedEvent) []Interval {
	var ivs []Interval
	sounding := -1 // index into ivs of the currently open interval
	for _, evt := range events {
		if evt.isOff {
			if sounding >= 0 && ivs[sounding].Key == evt.key {
				ivs[sounding].End = evt.tick
				sounding = -1
			}
			continue
		}
		if sounding >= 0 {
			ivs[sounding].End = evt.tick
		}
		ivs = append(ivs, Interval{Key: evt.key, Start: evt.tick, End: evt.tick})
		sounding = len(ivs) - 1
	}
	// a dangling note-on contributes nothing
	if sounding >= 0 && ivs[sounding].End == ivs[sounding].Start {
		ivs = ivs[:sounding]
	}
	return ivs
}

// NotesFromIntervals converts tick intervals into slot notes: each note's
// slot runs to the start of the next note, and the gap after its own end
// becomes RestAfter (in virtual ticks, per opts.BaseUnit). The final note
// gets the configured default rest.
func NotesFromIntervals(ivs []Interval, ticksPerBeat float64, opts model.ConverterOptions) []model.Note {
	var notes []model.Note
	for i, iv := range ivs {
		slotEnd := iv.End
		if i < len(ivs)-1 {
			slotEnd = ivs[i+1].Start
		}
		n := model.Note{
			Pitch:     int(iv.Key),
			StartTime: float64(iv.Start) / ticksPerBeat,
			Duration:  float64(slotEnd-iv.Start) / ticksPerBeat,
		}
		if i < len(ivs)-1 {
			n.RestAfter = float64(slotEnd-iv.End) / ticksPerBeat * opts.BaseUnit
		} else {
			n.RestAfter = opts.RestDuration
		}
		notes = append(notes, n)
	}
	return notes
}

const melodyTicksPerBeat = 960

// MelodySMF writes the reduced timeline back out as a single-track file,
// the monophonic mirror of what ExtractNotes decoded.
func MelodySMF(notes []model.Note, opts model.ConverterOptions) *smf.SMF {
	var s smf.SMF
	s.TimeFormat = smf.MetricTicks(melodyTicksPerBeat)

	var track smf.Track
	var delta uint32
	for _, n := range notes {
		restBeats := 0.0
		if opts.BaseUnit > 0 {
			restBeats = n.RestAfter / opts.BaseUnit
		}
		soundingBeats := n.Duration - restBeats
		if soundingBeats < 0 {
			soundingBeats = 0
			restBeats = n.Duration
		}
		key := uint8(n.Pitch)
		track.Add(delta, gomidi.NoteOn(0, key, 100))
		track.Add(uint32(soundingBeats*melodyTicksPerBeat), gomidi.NoteOff(0, key))
		delta = uint32(restBeats * melodyTicksPerBeat)
	}
	track.Close(0)
	s.Tracks = append(s.Tracks, track)
	return &s
}
