package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/YunChenqwq/MiditoBytebeat/tune"
)

func init() {
	rootCmd.AddCommand(convertCmd)
}

var convertCmd = &cobra.Command{
	Use:   "convert <file.mid>",
	Short: "Converts a MIDI file into a bytebeat formula",
	Long:  `Converts a MIDI file into a bytebeat formula`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			panic("Need 1 arg...")
		}
		convert(args[0])
	},
}

func convert(path string) {
	t, err := tune.LoadFile(path, optionsFromFlags())
	if err != nil {
		panic("Could not load midi file: " + err.Error())
	}
	expr, err := t.Compile()
	if err != nil {
		panic("Could not compile: " + err.Error())
	}
	fmt.Println(expr.String())
}
