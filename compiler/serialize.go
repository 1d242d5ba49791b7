package compiler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/YunChenqwq/MiditoBytebeat/constants"
)

// String serializes the expression as a chain of conditional operators,
// the form the browser editor displays and any bytebeat evaluator accepts.
func (e *Expression) String() string {
	if len(e.Segments) == 0 {
		return "0"
	}
	var b strings.Builder
	b.WriteByte('(')
	for _, s := range e.Segments {
		fmt.Fprintf(&b, "t%%%d<%d?", e.Period, s.Threshold)
		if s.Silent {
			b.WriteString("0:")
		} else {
			fmt.Fprintf(&b, "(t*%s):", formatCoeff(s.Coeff))
		}
	}
	b.WriteString("0)")
	return b.String()
}

// formatCoeff keeps a few significant digits so long formulas stay
// readable; precision here is a display concern, Eval uses full floats.
func formatCoeff(c float64) string {
	return strconv.FormatFloat(c, 'g', constants.CoeffDigits, 64)
}
