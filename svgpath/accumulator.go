package svgpath

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrUninitializedPath is returned when appending to a path
// which has not been started with MoveTo.
var ErrUninitializedPath = errors.New("path data not initialized, MoveTo first")

// Target stores the path data of elements, looked up by identifier.
// It is implemented by *svgdoc.Document.
type Target interface {
	// PathData returns the current data of the path, which may be empty.
	PathData(id string) (string, error)
	// SetPathData replaces the data of the path.
	SetPathData(id, data string) error
}

// Accumulator edits the path data of existing elements
// with move, line and close commands.
// Errors from the target (missing element, wrong kind)
// are returned as is.
type Accumulator struct {
	target Target
}

// NewAccumulator returns an accumulator writing into t.
func NewAccumulator(t Target) Accumulator {
	return Accumulator{target: t}
}

// MoveTo moves the virtual pen to (x, y), discarding
// any previous data of the path.
func (a Accumulator) MoveTo(id string, x, y float64) error {
	return a.target.SetPathData(id, "M"+FormatNumber(x)+","+FormatNumber(y))
}

// LineTo draws a line from the pen position to (x, y).
func (a Accumulator) LineTo(id string, x, y float64) error {
	return a.appendCommand(id, "L"+FormatNumber(x)+","+FormatNumber(y))
}

// ClosePath connects the pen position to the start of the path.
func (a Accumulator) ClosePath(id string) error {
	return a.appendCommand(id, "z")
}

func (a Accumulator) appendCommand(id, command string) error {
	data, err := a.target.PathData(id)
	if err != nil {
		return err
	}
	if data == "" {
		return fmt.Errorf("%w: %q", ErrUninitializedPath, id)
	}
	return a.target.SetPathData(id, data+command)
}

// FormatNumber writes f in its shortest decimal form,
// such as "5", "2.5" or "-0.125". Negative zero is written "0".
// Like JavaScript numbers, values below 1e-6 or from 1e21 in
// magnitude use an exponent: "1e-7", "-6.123233995736757e-16", "1e+21".
func FormatNumber(f float64) string {
	switch {
	case f == 0:
		return "0" // drop the sign of -0
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	if abs := math.Abs(f); abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	s := strconv.FormatFloat(f, 'e', -1, 64)
	i := strings.IndexByte(s, 'e')
	mantissa, sign, exp := s[:i], s[i+1], strings.TrimLeft(s[i+2:], "0")
	return mantissa + "e" + string(sign) + exp
}
