package svgicon

import (
	"image/color"
	"math"

	"github.com/benoitkugler/drawsvg/svgpath"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

// Painting a compiled document: SvgIcon.Draw walks its paths and
// hands them to a Driver, such as the rasterizer of svgraster or
// the PDF writer of svgpdf.

// Drawer receives one path at a time, already transformed to
// target coordinates, and paints it.
type Drawer interface {
	// Clear resets the state left by the previous path.
	Clear()

	// Start, Line, QuadBezier, CubeBezier and Stop
	// accumulate the path to paint.
	svgpath.Adder

	// SetColor sets the paint of the current path. opacity
	// multiplies the alpha of c.
	SetColor(c color.Color, opacity float64)

	// Draw paints the accumulated path.
	Draw()
}

// Filler paints the inside of paths.
type Filler interface {
	Drawer

	// SetWinding selects the non-zero rule (true)
	// or the even-odd rule (false).
	SetWinding(useNonZeroWinding bool)
}

// Stroker paints the outline of paths.
type Stroker interface {
	Drawer

	// SetStrokeOptions configures the outline of the current path.
	SetStrokeOptions(options StrokeOptions)
}

// Driver provides the painters for a backend.
type Driver interface {
	// SetupDrawers is called before each path. A painter is
	// only requested when its boolean is true, and must be nil otherwise.
	// When both are requested, the path is sent to the
	// Filler first, then to the Stroker.
	SetupDrawers(willFill, willStroke bool) (Filler, Stroker)
}

// DashOptions describes a dashed outline.
type DashOptions struct {
	Dash       []float64 // alternating dash and gap lengths, empty for a solid line
	DashOffset float64   // starting offset into the dash array
}

// JoinMode is the shape of the corner between two segments.
type JoinMode uint8

const (
	Arc JoinMode = iota // SVG2
	Round
	Bevel
	Miter
	MiterClip // SVG2
	ArcClip   // MiterClip applied to arcs, not in SVG2
)

func (s JoinMode) String() string {
	switch s {
	case Round:
		return "Round"
	case Bevel:
		return "Bevel"
	case Miter:
		return "Miter"
	case MiterClip:
		return "MiterClip"
	case Arc:
		return "Arc"
	case ArcClip:
		return "ArcClip"
	default:
		return "<unknown JoinMode>"
	}
}

// CapMode defines how to draw caps on the ends of lines
type CapMode uint8

const (
	NilCap CapMode = iota // default value
	ButtCap
	SquareCap
	RoundCap
)

func (c CapMode) String() string {
	switch c {
	case NilCap:
		return "NilCap"
	case ButtCap:
		return "ButtCap"
	case SquareCap:
		return "SquareCap"
	case RoundCap:
		return "RoundCap"
	default:
		return "<unknown CapMode>"
	}
}

// GapMode defines how to bridge gaps when the miter limit is exceeded,
// and is not part of the SVG2.0 standard.
type GapMode uint8

const (
	NilGap GapMode = iota
	FlatGap
	RoundGap
)

// JoinOptions describes the corners and the ends of an outline.
type JoinOptions struct {
	MiterLimit   fixed.Int26_6 // cutoff for the Miter, MiterClip, Arc and ArcClip joins
	LineJoin     JoinMode
	TrailLineCap CapMode // also used for the lead when LeadLineCap is NilCap

	LeadLineCap CapMode // not in SVG
	LineGap     GapMode // not in SVG: fills the convex side of a join
}

// StrokeOptions gathers the outline settings sent to a Stroker.
type StrokeOptions struct {
	LineWidth fixed.Int26_6 // width of the line
	Join      JoinOptions
	Dash      DashOptions
}

// DefaultStyle sets the default PathStyle to fill black, winding rule,
// full opacity, no stroke, ButtCap line end and Bevel line connect.
var DefaultStyle = PathStyle{
	FillOpacity:       1.0,
	LineOpacity:       1.0,
	LineWidth:         1.0,
	UseNonZeroWinding: true,
	Join: JoinOptions{
		MiterLimit:   fToFixed(4),
		LineJoin:     Bevel,
		TrailLineCap: ButtCap,
		LineGap:      FlatGap,
	},
	FillerColor: color.NRGBA{A: 0xff},
	transform:   rasterx.Identity,
}

func fToFixed(f float64) fixed.Int26_6 {
	return fixed.Int26_6(f * 64)
}

// transformer applies a matrix to the points
// before sending them to the wrapped Adder
type transformer struct {
	svgpath.Adder
	m rasterx.Matrix2D
}

func (t *transformer) tr(p fixed.Point26_6) fixed.Point26_6 {
	return svgpath.ToFixed(t.m.Transform(svgpath.FromFixed(p)))
}

func (t *transformer) Start(a fixed.Point26_6) { t.Adder.Start(t.tr(a)) }

func (t *transformer) Line(b fixed.Point26_6) { t.Adder.Line(t.tr(b)) }

func (t *transformer) QuadBezier(b, c fixed.Point26_6) {
	t.Adder.QuadBezier(t.tr(b), t.tr(c))
}

func (t *transformer) CubeBezier(b, c, d fixed.Point26_6) {
	t.Adder.CubeBezier(t.tr(b), t.tr(c), t.tr(d))
}

// SetTarget sets the Transform matrix to draw within the bounds of the rectangle arguments
func (s *SvgIcon) SetTarget(x, y, w, h float64) {
	scaleW := w / s.ViewBox.W
	scaleH := h / s.ViewBox.H
	s.Transform = rasterx.Identity.Translate(x, y).Scale(scaleW, scaleH).Translate(-s.ViewBox.X, -s.ViewBox.Y)
}

// Draw the compiled SVG icon into the driver `d`.
// All elements should be contained by the Bounds rectangle of the SvgIcon.
func (s *SvgIcon) Draw(d Driver, opacity float64) {
	for _, svgp := range s.SVGPaths {
		svgp.drawTransformed(d, opacity, s.Transform)
	}
}

// drawTransformed draws the compiled SvgPath into the driver while applying transform t.
func (svgp *SvgPath) drawTransformed(d Driver, opacity float64, t rasterx.Matrix2D) {
	m := t.Mult(svgp.Style.transform)

	willStroke := svgp.Style.LinerColor != nil && svgp.Style.LineWidth > 0
	filler, stroker := d.SetupDrawers(svgp.Style.FillerColor != nil, willStroke)
	if filler != nil { // nil color disable filling
		filler.Clear()
		filler.SetWinding(svgp.Style.UseNonZeroWinding)

		svgp.Path.AddTo(&transformer{Adder: filler, m: m})

		filler.SetColor(svgp.Style.FillerColor, svgp.Style.FillOpacity*opacity)
		filler.Draw()
		filler.SetWinding(true) // default is true
	}

	if stroker != nil { // nil color disable lining
		stroker.Clear()

		lineGap := svgp.Style.Join.LineGap
		if lineGap == NilGap {
			lineGap = DefaultStyle.Join.LineGap
		}
		lineCap := svgp.Style.Join.TrailLineCap
		if lineCap == NilCap {
			lineCap = DefaultStyle.Join.TrailLineCap
		}
		leadLineCap := lineCap
		if svgp.Style.Join.LeadLineCap != NilCap {
			leadLineCap = svgp.Style.Join.LeadLineCap
		}
		// line widths follow the average scaling of the transform
		scale := math.Sqrt(math.Abs(m.A*m.D - m.B*m.C))
		stroker.SetStrokeOptions(StrokeOptions{
			LineWidth: fToFixed(svgp.Style.LineWidth * scale),
			Join: JoinOptions{
				MiterLimit:   svgp.Style.Join.MiterLimit,
				LineJoin:     svgp.Style.Join.LineJoin,
				LeadLineCap:  leadLineCap,
				TrailLineCap: lineCap,
				LineGap:      lineGap,
			},
			Dash: svgp.Style.Dash,
		})

		svgp.Path.AddTo(&transformer{Adder: stroker, m: m})

		stroker.SetColor(svgp.Style.LinerColor, svgp.Style.LineOpacity*opacity)
		stroker.Draw()
	}
}
