package svgicon

import (
	"bytes"
	"image/color"
	"log/slog"
	"strings"
	"testing"

	"github.com/benoitkugler/drawsvg"
	"github.com/benoitkugler/drawsvg/svgdoc"
	"github.com/benoitkugler/drawsvg/svgpath"
	"golang.org/x/image/math/fixed"
)

const page = `<!DOCTYPE html>
<html><body>
<svg id="canvas" viewBox="0 0 100 50">
	<title>drawing</title>
	<g stroke="red" style="stroke-width:2px">
		<path id="p" d="M0,0L5,5"></path>
		<rect x="1" y="2" width="3" height="4"></rect>
	</g>
	<foo></foo>
</svg>
</body></html>`

func TestReadIconStream(t *testing.T) {
	icon, err := ReadIconStream(strings.NewReader(page), "canvas", IgnoreErrorMode)
	if err != nil {
		t.Fatal(err)
	}
	if icon.ViewBox != (Bounds{0, 0, 100, 50}) {
		t.Fatalf("unexpected viewBox %v", icon.ViewBox)
	}
	if len(icon.Titles) != 1 || icon.Titles[0] != "drawing" {
		t.Fatalf("unexpected titles %v", icon.Titles)
	}
	if len(icon.SVGPaths) != 2 {
		t.Fatalf("expected 2 paths, got %d", len(icon.SVGPaths))
	}
	// style inherited from the group
	for _, svgp := range icon.SVGPaths {
		if svgp.Style.LinerColor != (color.NRGBA{R: 0xff, A: 0xff}) || svgp.Style.LineWidth != 2 {
			t.Errorf("unexpected style %v", svgp.Style)
		}
	}
	if p := icon.SVGPaths[0]; p.ID != "p" || p.Path.ToSVGPath() != "M0,0L5,5" {
		t.Errorf("unexpected path %s %s", p.ID, p.Path)
	}
	if got := icon.SVGPaths[1].Path.ToSVGPath(); got != "M1,2L4,2L4,6L1,6z" {
		t.Errorf("unexpected rect %s", got)
	}

	if _, err = ReadIconStream(strings.NewReader(page), "canvas", StrictErrorMode); err == nil {
		t.Fatal("expected error for unknown element")
	}
}

func TestWarnErrorMode(t *testing.T) {
	var buf bytes.Buffer
	drawsvg.SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	defer drawsvg.SetLogger(nil)

	icon, err := ReadIconStream(strings.NewReader(page), "canvas", WarnErrorMode)
	if err != nil {
		t.Fatal(err)
	}
	if len(icon.SVGPaths) != 2 {
		t.Fatalf("expected 2 paths, got %d", len(icon.SVGPaths))
	}
	if !strings.Contains(buf.String(), "tag=foo") {
		t.Fatalf("expected a warning, got %q", buf.String())
	}
}

func TestFromDocument(t *testing.T) {
	doc := svgdoc.New("canvas", 200, 100)
	if _, err := doc.Create(svgdoc.Path, "p", svgdoc.DefaultStyle); err != nil {
		t.Fatal(err)
	}
	if err := doc.SetPathData("p", "M0,0L10,0L10,10z"); err != nil {
		t.Fatal(err)
	}
	if _, err := doc.Create(svgdoc.Path, "empty", svgdoc.DefaultStyle); err != nil {
		t.Fatal(err)
	}
	e, err := doc.Create(svgdoc.Ellipse, "e", svgdoc.Style{StrokeWidth: "1", StrokeColor: "#00f", Fill: "yellow"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err = doc.Create(svgdoc.Ellipse, "undrawn", svgdoc.DefaultStyle); err != nil {
		t.Fatal(err)
	}
	e.SetAttr("cx", "5")
	e.SetAttr("cy", "3")
	e.SetAttr("rx", "5")
	e.SetAttr("ry", "3")

	icon, err := FromDocument(doc, StrictErrorMode)
	if err != nil {
		t.Fatal(err)
	}
	if icon.ViewBox != (Bounds{0, 0, 200, 100}) {
		t.Fatalf("unexpected viewBox %v", icon.ViewBox)
	}
	if len(icon.SVGPaths) != 2 {
		t.Fatalf("expected 2 paths, got %d", len(icon.SVGPaths))
	}
	path, ellipse := icon.SVGPaths[0], icon.SVGPaths[1]
	if path.Style.FillerColor != nil || path.Style.LineWidth != 4 ||
		path.Style.LinerColor != (color.NRGBA{G: 0x80, A: 0xff}) {
		t.Errorf("unexpected path style %v", path.Style)
	}
	if ellipse.ID != "e" || len(ellipse.Path) != 10 {
		t.Errorf("unexpected ellipse %s %d", ellipse.ID, len(ellipse.Path))
	}
	if ellipse.Style.FillerColor != (color.NRGBA{R: 0xff, G: 0xff, A: 0xff}) {
		t.Errorf("unexpected ellipse fill %v", ellipse.Style.FillerColor)
	}

	b, ok := icon.PathBounds()
	if !ok {
		t.Fatal("expected bounds")
	}
	// half the stroke width of the path
	if b.X != -2 || b.Y != -2 || b.W != 14 || b.H != 14 {
		t.Errorf("unexpected bounds %v", b)
	}
}

func TestInvalidPathData(t *testing.T) {
	doc := svgdoc.New("canvas", 10, 10)
	_, _ = doc.Create(svgdoc.Path, "bad", svgdoc.DefaultStyle)
	_ = doc.SetPathData("bad", "L5,5")

	if _, err := FromDocument(doc, StrictErrorMode); err == nil {
		t.Fatal("expected error for invalid path data")
	}
	icon, err := FromDocument(doc, IgnoreErrorMode)
	if err != nil {
		t.Fatal(err)
	}
	if len(icon.SVGPaths) != 0 {
		t.Fatalf("invalid path should be skipped")
	}
}

func TestTransform(t *testing.T) {
	const src = `<svg id="c" width="20" height="20">
	<path transform="translate(10,5) scale(2)" fill="black" d="M0,0L1,0L1,1z"></path>
	</svg>`
	icon, err := ReadIconStream(strings.NewReader(src), "c", StrictErrorMode)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := icon.PathBounds()
	if b != (Bounds{10, 5, 2, 2}) {
		t.Fatalf("unexpected bounds %v", b)
	}

	icon.SetTarget(0, 0, 40, 40) // doubles everything
	b, _ = icon.PathBounds()
	if b != (Bounds{20, 10, 4, 4}) {
		t.Fatalf("unexpected bounds %v", b)
	}
}

func TestParseSVGColor(t *testing.T) {
	for _, test := range []struct {
		v    string
		want color.Color
	}{
		{"none", nil},
		{"red", color.NRGBA{R: 0xff, A: 0xff}},
		{" Green ", color.NRGBA{G: 0x80, A: 0xff}},
		{"#0f0", color.NRGBA{G: 0xff, A: 0xff}},
		{"#336699", color.NRGBA{R: 0x33, G: 0x66, B: 0x99, A: 0xff}},
		{"rgb(10, 20, 30)", color.NRGBA{R: 10, G: 20, B: 30, A: 0xff}},
		{"rgb(100%,0%,0%)", color.NRGBA{R: 0xff, A: 0xff}},
	} {
		got, err := parseSVGColor(test.v)
		if err != nil {
			t.Fatal(err)
		}
		if got != test.want {
			t.Errorf("color %q: expected %v, got %v", test.v, test.want, got)
		}
	}
	for _, v := range []string{"bogus", "#12", "rgb(1,2)", "#zzzzzz"} {
		if _, err := parseSVGColor(v); err == nil {
			t.Errorf("color %q: expected error", v)
		}
	}
}

// recorder counts the painting operations
type recorder struct {
	fills, strokes int
	widths         []fixed.Int26_6
	path           svgpath.Path
}

type recordingDrawer struct {
	*svgpath.Path
	draws *int
}

func (r recordingDrawer) Clear()                        { r.Path.Clear() }
func (r recordingDrawer) SetColor(color.Color, float64) {}
func (r recordingDrawer) Draw()                         { *r.draws++ }
func (r recordingDrawer) SetWinding(bool)               {}

type recordingStroker struct {
	recordingDrawer
	rec *recorder
}

func (r recordingStroker) SetStrokeOptions(o StrokeOptions) {
	r.rec.widths = append(r.rec.widths, o.LineWidth)
}

func (r *recorder) SetupDrawers(willFill, willStroke bool) (Filler, Stroker) {
	var (
		f Filler
		s Stroker
	)
	if willFill {
		f = recordingDrawer{Path: &r.path, draws: &r.fills}
	}
	if willStroke {
		s = recordingStroker{recordingDrawer{Path: &r.path, draws: &r.strokes}, r}
	}
	return f, s
}

func TestDraw(t *testing.T) {
	icon, err := ReadIconStream(strings.NewReader(`<svg id="c" width="10" height="10">
	<path fill="none" stroke="red" stroke-width="3" d="M0,0L5,5"></path>
	<path fill="blue" d="M0,0L5,5L0,5z"></path>
	<path fill="blue" stroke="red" stroke-width="0" d="M0,0L5,5L0,5z"></path>
	</svg>`), "c", StrictErrorMode)
	if err != nil {
		t.Fatal(err)
	}
	var rec recorder
	icon.Draw(&rec, 1)
	if rec.fills != 2 || rec.strokes != 1 {
		t.Fatalf("unexpected operations %+v", rec)
	}
	if len(rec.widths) != 1 || rec.widths[0] != 3*64 {
		t.Fatalf("unexpected widths %v", rec.widths)
	}
}
