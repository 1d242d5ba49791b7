package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/bep/debounce"
	"github.com/spf13/cobra"
	gomidi "gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // autoregisters driver

	"github.com/YunChenqwq/MiditoBytebeat/compiler"
	"github.com/YunChenqwq/MiditoBytebeat/midi"
	"github.com/YunChenqwq/MiditoBytebeat/model"
	"github.com/YunChenqwq/MiditoBytebeat/synth"
	"github.com/YunChenqwq/MiditoBytebeat/tune"
)

func init() {
	rootCmd.AddCommand(liveCmd)
}

var liveCmd = &cobra.Command{
	Use:   "live",
	Short: "Builds a loop from a live MIDI input port",
	Long:  `Builds a loop from a live MIDI input port, recompiling the formula as notes arrive`,
	Run: func(cmd *cobra.Command, args []string) {
		startLive()
	},
}

// msPerBeat fixes the live capture grid at 120 BPM.
const msPerBeat = 500

// recorder accumulates intervals from the MIDI callback. Compiles happen
// off the audio path on whatever goroutine the debouncer fires on; only
// the finished expression is handed to the player.
type recorder struct {
	mu   sync.Mutex
	opts model.ConverterOptions
	ivs  []midi.Interval
	open int // index of the sounding interval, -1 when silent
}

func newRecorder(opts model.ConverterOptions) *recorder {
	return &recorder{opts: opts, open: -1}
}

func (r *recorder) noteOn(key uint8, ms int32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t := int64(ms)
	if r.open >= 0 {
		r.ivs[r.open].End = t
	}
	r.ivs = append(r.ivs, midi.Interval{Key: key, Start: t, End: t})
	r.open = len(r.ivs) - 1
}

func (r *recorder) noteOff(key uint8, ms int32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.open >= 0 && r.ivs[r.open].Key == key {
		r.ivs[r.open].End = int64(ms)
		r.open = -1
	}
}

func (r *recorder) compile() (*compiler.Expression, error) {
	r.mu.Lock()
	ivs := make([]midi.Interval, 0, len(r.ivs))
	for _, iv := range r.ivs {
		if iv.End > iv.Start {
			ivs = append(ivs, iv)
		}
	}
	r.mu.Unlock()

	notes := midi.NotesFromIntervals(ivs, msPerBeat, r.opts)
	return tune.New(notes, r.opts).Compile()
}

func startLive() {
	defer gomidi.CloseDriver()
	in, err := gomidi.InPort(0)
	if err != nil {
		fmt.Println("can't find a MIDI input port")
		return
	}

	rec := newRecorder(optionsFromFlags())
	expr, err := rec.compile()
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		return
	}

	player := synth.NewPlayer(expr, 0)
	if err := player.Start(); err != nil {
		fmt.Printf("ERROR: %s\n", err)
		return
	}
	defer player.Stop()

	recompile := func() {
		expr, err := rec.compile()
		if err != nil {
			fmt.Printf("Could not recompile: %v\n", err)
			return
		}
		player.SetExpression(expr)
		fmt.Println(expr.String())
	}
	debounced := debounce.New(250 * time.Millisecond)

	stop, err := gomidi.ListenTo(in, func(msg gomidi.Message, timestampms int32) {
		var ch, key, vel uint8
		switch {
		case msg.GetNoteStart(&ch, &key, &vel):
			rec.noteOn(key, timestampms)
			debounced(recompile)
		case msg.GetNoteEnd(&ch, &key):
			rec.noteOff(key, timestampms)
			debounced(recompile)
		default:
			// ignore
		}
	})
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		return
	}
	defer stop()

	fmt.Println("Recording... press ctrl-c to stop")
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
}
