package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/YunChenqwq/MiditoBytebeat/synth"
	"github.com/YunChenqwq/MiditoBytebeat/tune"
)

var flagSeconds int

func init() {
	playCmd.Flags().IntVar(&flagSeconds, "seconds", 0, "stop after this many seconds (0 plays until interrupted)")
	rootCmd.AddCommand(playCmd)
}

var playCmd = &cobra.Command{
	Use:   "play <file.mid>",
	Short: "Plays a MIDI file as a bytebeat loop",
	Long:  `Plays a MIDI file as a bytebeat loop`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			panic("Need 1 arg...")
		}
		play(args[0])
	},
}

func play(path string) {
	t, err := tune.LoadFile(path, optionsFromFlags())
	if err != nil {
		panic("Could not load midi file: " + err.Error())
	}
	expr, err := t.Compile()
	if err != nil {
		panic("Could not compile: " + err.Error())
	}

	player := synth.NewPlayer(expr, 0)
	if err := player.Start(); err != nil {
		fmt.Printf("ERROR: %s\n", err)
		return
	}
	defer player.Stop()

	fmt.Println(expr.String())
	if flagSeconds > 0 {
		time.Sleep(time.Duration(flagSeconds) * time.Second)
		return
	}

	fmt.Println("Playing... press ctrl-c to stop")
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
}
