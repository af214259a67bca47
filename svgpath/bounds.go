package svgpath

import (
	"math"

	"golang.org/x/image/math/fixed"
)

// compute the bounding box of a path, taking the extrema of
// bezier curves into account (not only their control points)

// evalBezier evaluates one coordinate of a bezier curve
// of degree len(c)-1 at time t, using its polynomial form
func evalBezier(c []float64, t float64) float64 {
	switch len(c) {
	case 2:
		return (c[1]-c[0])*t + c[0]
	case 3:
		// At^2 + Bt + C
		return (c[0]+c[2]-2*c[1])*t*t + 2*(c[1]-c[0])*t + c[0]
	default:
		// At^3 + Bt^2 + Ct + D
		return (c[3]-3*c[2]+3*c[1]-c[0])*t*t*t +
			(3*c[2]-6*c[1]+3*c[0])*t*t +
			(3*c[1]-3*c[0])*t +
			c[0]
	}
}

// criticalTimes returns the values of t zeroing the derivative
// of one coordinate
func criticalTimes(c []float64) []float64 {
	switch len(c) {
	case 3:
		return linearRoots(2*(c[2]-2*c[1]+c[0]), 2*(c[1]-c[0]))
	case 4:
		// X' = (3*p3-9*p2+9*p1-3*p0)t^2 + (6*p2-12*p1+6*p0)t + (3*p1-3*p0)
		return quadraticRoots(3*c[3]-9*c[2]+9*c[1]-3*c[0], 6*c[2]-12*c[1]+6*c[0], 3*c[1]-3*c[0])
	default: // lines are monotonic
		return nil
	}
}

// handle the case where a = 0
func linearRoots(a, b float64) []float64 {
	if a == 0 {
		return nil
	}
	return []float64{-b / a}
}

func quadraticRoots(a, b, c float64) []float64 {
	if a == 0 {
		return linearRoots(b, c)
	}
	d := b*b - 4*a*c
	if d < 0 {
		return nil
	}
	if d == 0 {
		return []float64{-b / (2 * a)}
	}
	sq := math.Sqrt(d)
	return []float64{(-b + sq) / (2 * a), (-b - sq) / (2 * a)}
}

// curveExtent returns the bounding box of the curve starting at pts[0],
// with pts[1:] as control and end points.
func curveExtent(pts ...fixed.Point26_6) fixed.Rectangle26_6 {
	xs, ys := make([]float64, len(pts)), make([]float64, len(pts))
	for i, p := range pts {
		xs[i], ys[i] = FromFixed(p)
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	// add begin and end point
	for _, t := range append(append(criticalTimes(xs), 0, 1), criticalTimes(ys)...) {
		if !(0 <= t && t <= 1) {
			continue
		}
		x, y := evalBezier(xs, t), evalBezier(ys, t)
		minX, minY = math.Min(x, minX), math.Min(y, minY)
		maxX, maxY = math.Max(x, maxX), math.Max(y, maxY)
	}
	return fixed.Rectangle26_6{Min: ToFixed(minX, minY), Max: ToFixed(maxX, maxY)}
}

// boundsAdder accumulates the extent of the curves sent to it
type boundsAdder struct {
	a, first fixed.Point26_6 // current point, start of the curve
	box      fixed.Rectangle26_6
	empty    bool
}

func (b *boundsAdder) union(r fixed.Rectangle26_6) {
	if b.empty {
		b.box, b.empty = r, false
		return
	}
	// fixed.Rectangle26_6.Union ignores flat rectangles,
	// which are frequent here (horizontal lines)
	if r.Min.X < b.box.Min.X {
		b.box.Min.X = r.Min.X
	}
	if r.Min.Y < b.box.Min.Y {
		b.box.Min.Y = r.Min.Y
	}
	if r.Max.X > b.box.Max.X {
		b.box.Max.X = r.Max.X
	}
	if r.Max.Y > b.box.Max.Y {
		b.box.Max.Y = r.Max.Y
	}
}

func (b *boundsAdder) Start(a fixed.Point26_6) {
	b.a, b.first = a, a
	b.union(fixed.Rectangle26_6{Min: a, Max: a}) // degenerate case
}

func (b *boundsAdder) Line(p fixed.Point26_6) {
	b.union(curveExtent(b.a, p))
	b.a = p
}

func (b *boundsAdder) QuadBezier(p, c fixed.Point26_6) {
	b.union(curveExtent(b.a, p, c))
	b.a = c
}

func (b *boundsAdder) CubeBezier(p, c, d fixed.Point26_6) {
	b.union(curveExtent(b.a, p, c, d))
	b.a = d
}

func (b *boundsAdder) Stop(closeLoop bool) {
	if closeLoop {
		b.a = b.first
	}
}

// Bounds returns the extent of the path. ok is false
// for an empty path.
func (p Path) Bounds() (box fixed.Rectangle26_6, ok bool) {
	b := boundsAdder{empty: true}
	p.AddTo(&b)
	return b.box, !b.empty
}
