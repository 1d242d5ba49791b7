package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/YunChenqwq/MiditoBytebeat/midi"
	"github.com/YunChenqwq/MiditoBytebeat/tune"
)

func init() {
	rootCmd.AddCommand(reduceCmd)
}

var reduceCmd = &cobra.Command{
	Use:   "reduce <in.mid> <out.mid>",
	Short: "Writes the reduced monophonic melody back out as MIDI",
	Long:  `Writes the reduced monophonic melody back out as MIDI`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 2 {
			panic("Need 2 args...")
		}
		reduce(args[0], args[1])
	},
}

func reduce(in, out string) {
	t, err := tune.LoadFile(in, optionsFromFlags())
	if err != nil {
		panic("Could not load midi file: " + err.Error())
	}

	f, err := os.Create(out)
	if err != nil {
		panic("Could not create output file: " + err.Error())
	}
	defer f.Close()

	s := midi.MelodySMF(t.Notes, t.Options)
	if _, err := s.WriteTo(f); err != nil {
		panic("Could not write midi file: " + err.Error())
	}
	fmt.Printf("Wrote %v notes to %v\n", len(t.Notes), out)
}
