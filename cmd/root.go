package cmd

import (
	"github.com/spf13/cobra"

	"github.com/YunChenqwq/MiditoBytebeat/constants"
	"github.com/YunChenqwq/MiditoBytebeat/model"
)

var rootCmd = &cobra.Command{
	Use:   "miditobytebeat",
	Short: "Converts MIDI timelines into bytebeat formulas",
	Long:  `Converts monophonic MIDI timelines into bytebeat formulas and plays them back.`,
}

var (
	flagBaseUnit  float64
	flagRest      float64
	flagPeriod    int
	flagBasePitch int
	flagBaseCoeff float64
	flagTranspose int
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.Float64Var(&flagBaseUnit, "base-unit", constants.DefaultBaseUnit, "virtual ticks per beat")
	pf.Float64Var(&flagRest, "rest", constants.DefaultRestDuration, "rest after the final note, in virtual ticks")
	pf.IntVar(&flagPeriod, "period", 0, "wraparound period in virtual ticks (0 derives it from the timeline)")
	pf.IntVar(&flagBasePitch, "base-pitch", constants.DefaultBasePitch, "reference semitone")
	pf.Float64Var(&flagBaseCoeff, "base-coeff", constants.DefaultBaseCoeff, "coefficient at the reference semitone")
	pf.IntVar(&flagTranspose, "transpose", 0, "semitones added to every note")
}

func optionsFromFlags() model.ConverterOptions {
	return model.ConverterOptions{
		BaseUnit:     flagBaseUnit,
		RestDuration: flagRest,
		TotalPeriod:  flagPeriod,
		BasePitch:    flagBasePitch,
		BaseCoeff:    flagBaseCoeff,
		Transpose:    flagTranspose,
	}
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
