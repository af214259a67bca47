// Implements a PDF backend to render documents,
// by wrapping github.com/jung-kurt/gofpdf.
package svgpdf

import (
	"image/color"
	"io"
	"math"

	"github.com/benoitkugler/drawsvg"
	"github.com/benoitkugler/drawsvg/svgdoc"
	"github.com/benoitkugler/drawsvg/svgicon"
	"github.com/benoitkugler/drawsvg/svgpath"
	"github.com/jung-kurt/gofpdf"
	"golang.org/x/image/math/fixed"
)

// assert interface conformance
var (
	_ svgicon.Driver  = Renderer{}
	_ svgicon.Filler  = (*filler)(nil)
	_ svgicon.Stroker = (*stroker)(nil)
)

// Renderer writes paths on the current page of a gofpdf document.
// PDF drawing operators consume the current path, so the filler
// and the stroker both write it.
type Renderer struct {
	pdf *gofpdf.Fpdf
}

// implements the common path commands,
// shared by the filler and the stroker
type pather struct {
	pdf *gofpdf.Fpdf
}

// implements the filling operation
type filler struct {
	pather
	useNonZeroWinding bool
}

// implements the stroking operation
type stroker struct {
	pather
}

// NewRenderer return a renderer which will
// write to the given `pdf`.
func NewRenderer(pdf *gofpdf.Fpdf) Renderer {
	return Renderer{pdf: pdf}
}

// SetupDrawers implements svgicon.Driver
func (r Renderer) SetupDrawers(willFill, willStroke bool) (f svgicon.Filler, s svgicon.Stroker) {
	if willFill {
		f = &filler{pather: pather{pdf: r.pdf}, useNonZeroWinding: true}
	}
	if willStroke {
		s = &stroker{pather: pather{pdf: r.pdf}}
	}
	return f, s
}

// NewPDF returns a one page document showing the shapes of doc.
// The page has the size of the document viewport, enlarged if needed
// so that no shape is cut, with one user unit per point.
func NewPDF(doc *svgdoc.Document) (*gofpdf.Fpdf, error) {
	icon, err := svgicon.FromDocument(doc, svgicon.WarnErrorMode)
	if err != nil {
		return nil, err
	}
	w, h := icon.ViewBox.W, icon.ViewBox.H
	if b, ok := icon.PathBounds(); ok {
		w = math.Max(w, b.X+b.W-icon.ViewBox.X)
		h = math.Max(h, b.Y+b.H-icon.ViewBox.Y)
	}

	// sizes are given in portrait form
	orientation, size := "P", gofpdf.SizeType{Wd: w, Ht: h}
	if w > h {
		orientation, size = "L", gofpdf.SizeType{Wd: h, Ht: w}
	}
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr:        "pt",
		OrientationStr: orientation,
		Size:           size,
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	icon.SetTarget(0, 0, icon.ViewBox.W, icon.ViewBox.H)
	icon.Draw(NewRenderer(pdf), 1.0)
	drawsvg.Logger().Debug("pdf page rendered", "width", w, "height", h, "paths", len(icon.SVGPaths))
	return pdf, pdf.Error()
}

// RenderDocument writes the PDF version of doc to out.
func RenderDocument(doc *svgdoc.Document, out io.Writer) error {
	pdf, err := NewPDF(doc)
	if err != nil {
		return err
	}
	return pdf.Output(out)
}

// RenderDocumentToFile writes the PDF version of doc to the given file.
func RenderDocumentToFile(doc *svgdoc.Document, pdfName string) error {
	pdf, err := NewPDF(doc)
	if err != nil {
		return err
	}
	return pdf.OutputFileAndClose(pdfName)
}

func (p *pather) Clear() {}

func (p *pather) Start(a fixed.Point26_6) {
	p.pdf.MoveTo(svgpath.FromFixed(a))
}

func (p *pather) Line(b fixed.Point26_6) {
	p.pdf.LineTo(svgpath.FromFixed(b))
}

func (p *pather) QuadBezier(b fixed.Point26_6, c fixed.Point26_6) {
	cx, cy := svgpath.FromFixed(b)
	x, y := svgpath.FromFixed(c)
	p.pdf.CurveTo(cx, cy, x, y)
}

func (p *pather) CubeBezier(b fixed.Point26_6, c fixed.Point26_6, d fixed.Point26_6) {
	cx0, cy0 := svgpath.FromFixed(b)
	cx1, cy1 := svgpath.FromFixed(c)
	x, y := svgpath.FromFixed(d)
	p.pdf.CurveBezierCubicTo(cx0, cy0, cx1, cy1, x, y)
}

func (p *pather) Stop(closeLoop bool) {
	if closeLoop {
		p.pdf.ClosePath()
	}
}

// rgba returns the 8 bits components, and the alpha as a fraction
func rgba(c color.Color) (r, g, b int, alpha float64) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return int(n.R), int(n.G), int(n.B), float64(n.A) / 255
}

func (f *filler) SetColor(c color.Color, opacity float64) {
	r, g, b, alpha := rgba(c)
	f.pdf.SetFillColor(r, g, b)
	f.pdf.SetAlpha(opacity*alpha, "Normal")
}

func (f *filler) Draw() {
	styleStr := "F*"
	if f.useNonZeroWinding {
		styleStr = "F"
	}
	f.pdf.DrawPath(styleStr)
}

func (f *filler) SetWinding(useNonZeroWinding bool) {
	f.useNonZeroWinding = useNonZeroWinding
}

func (s *stroker) SetColor(c color.Color, opacity float64) {
	r, g, b, alpha := rgba(c)
	s.pdf.SetDrawColor(r, g, b)
	s.pdf.SetAlpha(opacity*alpha, "Normal")
}

func (s *stroker) SetStrokeOptions(options svgicon.StrokeOptions) {
	capStyle := "butt"
	switch options.Join.TrailLineCap {
	case svgicon.RoundCap:
		capStyle = "round"
	case svgicon.SquareCap:
		capStyle = "square"
	}
	joinStyle := "miter"
	switch options.Join.LineJoin {
	case svgicon.Bevel:
		joinStyle = "bevel"
	case svgicon.Round, svgicon.Arc, svgicon.ArcClip:
		joinStyle = "round"
	}

	s.pdf.SetLineWidth(float64(options.LineWidth) / 64)
	s.pdf.SetLineCapStyle(capStyle)
	s.pdf.SetLineJoinStyle(joinStyle)
	s.pdf.SetDashPattern(options.Dash.Dash, options.Dash.DashOffset)
}

func (s *stroker) Draw() {
	s.pdf.DrawPath("D")
}
