package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/YunChenqwq/MiditoBytebeat/constants"
	"github.com/YunChenqwq/MiditoBytebeat/tune"
	"github.com/YunChenqwq/MiditoBytebeat/util"
)

func init() {
	rootCmd.AddCommand(batchCmd)
}

var batchCmd = &cobra.Command{
	Use:   "batch <dir> [maxNum]",
	Short: "Converts every MIDI file under a directory",
	Long:  `Converts every MIDI file under a directory into formula files in the output dir`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) < 1 {
			panic("Need at least 1 arg...")
		}
		var maxNum int
		if len(args) == 2 {
			arg2, err := strconv.Atoi(args[1])
			if err != nil {
				panic(err)
			}
			maxNum = arg2
		}
		runBatch(args[0], maxNum)
	},
}

func runBatch(dir string, maxNum int) {
	util.RecreateOutputDir()
	paths := util.GatherAllMidiPaths(dir, maxNum)
	for i, path := range paths {
		fmt.Printf("Converting %v of %v midi files\n", i+1, len(paths))
		convertOne(path)
	}
}

func convertOne(path string) {
	t, err := tune.LoadFile(path, optionsFromFlags())
	if err != nil {
		fmt.Printf("Skipping %v because: %v\n", path, err)
		return
	}
	expr, err := t.Compile()
	if err != nil {
		fmt.Printf("Skipping %v because: %v\n", path, err)
		return
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)) + ".txt"
	out := filepath.Join(constants.GetOutDir(), name)
	if err := os.WriteFile(out, []byte(expr.String()+"\n"), 0666); err != nil {
		fmt.Printf("Could not write %v because: %v\n", out, err)
	}
}
