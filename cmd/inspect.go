package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/YunChenqwq/MiditoBytebeat/tune"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.mid>",
	Short: "Dumps the decoded note timeline",
	Long:  `Dumps the decoded note timeline`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			panic("Need 1 arg...")
		}
		inspect(args[0])
	},
}

func inspect(path string) {
	t, err := tune.LoadFile(path, optionsFromFlags())
	if err != nil {
		panic("Could not load midi file: " + err.Error())
	}
	fmt.Printf("notes: %v\n", len(t.Notes))
	fmt.Printf("period: %v\n", t.Options.TotalPeriod)
	for i, n := range t.Notes {
		fmt.Printf("%3d  pitch: %3d  start: %7.3f  duration: %7.3f  coeff: %7.4f  restAfter: %v\n",
			i, n.Pitch, n.StartTime, n.Duration, n.Coeff, n.RestAfter)
	}
}
