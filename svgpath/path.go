// Implements an abstract representation of
// svg paths, which can then be consumed
// by painting drivers, and the accumulation of
// path data on live document elements.
package svgpath

import (
	"strings"

	"golang.org/x/image/math/fixed"
)

// Operation groups the different SVG commands
type Operation interface {
	// DrawTo sends the operation to the adder.
	DrawTo(a Adder)
}

// Adder is implemented by types accumulating path commands,
// such as Path itself or painting backends.
type Adder interface {
	// Start starts a new curve at the given point.
	Start(a fixed.Point26_6)
	// Line adds a line segment to the path
	Line(b fixed.Point26_6)
	// QuadBezier adds a quadratic bezier curve to the path
	QuadBezier(b, c fixed.Point26_6)
	// CubeBezier adds a cubic bezier curve to the path
	CubeBezier(b, c, d fixed.Point26_6)
	// Closes the path to the start point if closeLoop is true
	Stop(closeLoop bool)
}

type MoveTo fixed.Point26_6

type LineTo fixed.Point26_6

type QuadTo [2]fixed.Point26_6

type CubicTo [3]fixed.Point26_6

type Close struct{}

func (op MoveTo) DrawTo(a Adder) {
	a.Stop(false) // implicit close if currently in path.
	a.Start(fixed.Point26_6(op))
}

func (op LineTo) DrawTo(a Adder)  { a.Line(fixed.Point26_6(op)) }
func (op QuadTo) DrawTo(a Adder)  { a.QuadBezier(op[0], op[1]) }
func (op CubicTo) DrawTo(a Adder) { a.CubeBezier(op[0], op[1], op[2]) }
func (Close) DrawTo(a Adder)      { a.Stop(true) }

// Path describes a sequence of basic SVG operations, which should not be nil
// Higher-level shapes may be reduced to a path.
type Path []Operation

// ToFixed converts two floats to a fixed point.
func ToFixed(x, y float64) fixed.Point26_6 {
	return fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y * 64)}
}

// FromFixed converts a fixed point to floats.
func FromFixed(p fixed.Point26_6) (x, y float64) {
	return float64(p.X) / 64, float64(p.Y) / 64
}

func point(p fixed.Point26_6) string {
	x, y := FromFixed(p)
	return FormatNumber(x) + "," + FormatNumber(y)
}

// ToSVGPath returns a string representation of the path,
// in the compact form used for 'd' attributes.
func (p Path) ToSVGPath() string {
	var sb strings.Builder
	for _, op := range p {
		switch op := op.(type) {
		case MoveTo:
			sb.WriteString("M" + point(fixed.Point26_6(op)))
		case LineTo:
			sb.WriteString("L" + point(fixed.Point26_6(op)))
		case QuadTo:
			sb.WriteString("Q" + point(op[0]) + " " + point(op[1]))
		case CubicTo:
			sb.WriteString("C" + point(op[0]) + " " + point(op[1]) + " " + point(op[2]))
		case Close:
			sb.WriteString("z")
		}
	}
	return sb.String()
}

// String returns a readable representation of a Path.
func (p Path) String() string {
	return p.ToSVGPath()
}

// AddTo sends every operation of the path to q, and
// terminates the last curve without closing it.
func (p Path) AddTo(q Adder) {
	for _, op := range p {
		op.DrawTo(q)
	}
	q.Stop(false)
}

// Clear zeros the path slice
func (p *Path) Clear() {
	*p = (*p)[:0]
}

// Start starts a new curve at the given point.
func (p *Path) Start(a fixed.Point26_6) {
	*p = append(*p, MoveTo{a.X, a.Y})
}

// Line adds a linear segment to the current curve.
func (p *Path) Line(b fixed.Point26_6) {
	*p = append(*p, LineTo{b.X, b.Y})
}

// QuadBezier adds a quadratic segment to the current curve.
func (p *Path) QuadBezier(b, c fixed.Point26_6) {
	*p = append(*p, QuadTo{b, c})
}

// CubeBezier adds a cubic segment to the current curve.
func (p *Path) CubeBezier(b, c, d fixed.Point26_6) {
	*p = append(*p, CubicTo{b, c, d})
}

// Stop joins the ends of the path
func (p *Path) Stop(closeLoop bool) {
	if closeLoop {
		*p = append(*p, Close{})
	}
}
