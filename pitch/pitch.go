// Package pitch maps semitone values to the multiplicative frequency
// coefficients used inside compiled formulas.
package pitch

import "math"

// Coefficient returns the equal-tempered coefficient for pitch relative to
// a reference pitch/coefficient pair: each semitone scales by 2^(1/12), so
// one octave doubles it.
func Coefficient(pitch, basePitch int, baseCoeff float64) float64 {
	return baseCoeff * math.Pow(2, float64(pitch-basePitch)/12)
}
