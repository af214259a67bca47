package svgraster

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/benoitkugler/drawsvg/svgdoc"
	"github.com/benoitkugler/drawsvg/svgdraw"
	"github.com/benoitkugler/drawsvg/svgicon"
)

var (
	transparent = color.RGBA{}
	red         = color.RGBA{R: 0xff, A: 0xff}
	blue        = color.RGBA{B: 0xff, A: 0xff}
	green       = color.RGBA{G: 0x80, A: 0xff}
)

func checkPixel(t *testing.T, doc *svgdoc.Document, x, y int, expected color.RGBA) {
	t.Helper()
	img, err := RasterDocument(doc, svgicon.StrictErrorMode)
	if err != nil {
		t.Fatal(err)
	}
	if got := img.RGBAAt(x, y); got != expected {
		t.Errorf("pixel (%d, %d): expected %v, got %v", x, y, expected, got)
	}
}

func TestRasterFill(t *testing.T) {
	doc := svgdoc.New("canvas", 100, 100)
	_, err := doc.Create(svgdoc.Path, "r", svgdoc.Style{Fill: "red", StrokeColor: "none"})
	if err != nil {
		t.Fatal(err)
	}
	if err = doc.SetPathData("r", "M10,10L50,10L50,50L10,50z"); err != nil {
		t.Fatal(err)
	}

	img, err := RasterDocument(doc, svgicon.StrictErrorMode)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 100 || b.Dy() != 100 {
		t.Fatalf("unexpected image size %v", b)
	}
	checkPixel(t, doc, 30, 30, red)
	checkPixel(t, doc, 80, 80, transparent)
	checkPixel(t, doc, 5, 30, transparent)
}

func TestRasterStroke(t *testing.T) {
	doc := svgdoc.New("canvas", 100, 100)
	session := svgdraw.NewSession(doc, svgdraw.Options{StrokeColor: "blue", StrokeWidth: "4px", Fill: "none"})
	if err := session.Rectangle("r", 10, 10, 90, 90, true); err != nil {
		t.Fatal(err)
	}

	checkPixel(t, doc, 50, 10, blue)
	checkPixel(t, doc, 10, 50, blue)
	checkPixel(t, doc, 50, 50, transparent) // not filled
	checkPixel(t, doc, 50, 20, transparent)
}

func TestRasterDefaultStyle(t *testing.T) {
	doc := svgdoc.New("canvas", 100, 100)
	session := svgdraw.NewSession(doc, svgdraw.Options{})
	if err := session.Rectangle("r", 10, 10, 90, 90, true); err != nil {
		t.Fatal(err)
	}

	// green outline, no fill
	checkPixel(t, doc, 50, 10, green)
	checkPixel(t, doc, 50, 50, transparent)
}

func TestRasterEllipse(t *testing.T) {
	doc := svgdoc.New("canvas", 100, 100)
	session := svgdraw.NewSession(doc, svgdraw.Options{StrokeColor: "none", Fill: "#0000ff"})
	if err := session.Ellipse("e", 30, 40, 70, 60, true); err != nil {
		t.Fatal(err)
	}

	checkPixel(t, doc, 50, 50, blue)
	checkPixel(t, doc, 35, 50, blue)
	checkPixel(t, doc, 50, 65, transparent)
	checkPixel(t, doc, 20, 50, transparent)
}

func TestRasterIconScaled(t *testing.T) {
	doc := svgdoc.New("canvas", 100, 100)
	_, _ = doc.Create(svgdoc.Path, "r", svgdoc.Style{Fill: "red", StrokeColor: "none"})
	_ = doc.SetPathData("r", "M10,10L50,10L50,50L10,50z")
	icon, err := svgicon.FromDocument(doc, svgicon.StrictErrorMode)
	if err != nil {
		t.Fatal(err)
	}

	img := RasterIcon(icon, 50, 50) // half size
	if got := img.RGBAAt(15, 15); got != red {
		t.Errorf("expected red, got %v", got)
	}
	if got := img.RGBAAt(30, 30); got != transparent {
		t.Errorf("expected transparent, got %v", got)
	}
}

func TestWritePNG(t *testing.T) {
	doc := svgdoc.New("canvas", 60, 40)
	session := svgdraw.NewSession(doc, svgdraw.DefaultOptions())
	if err := session.Arrow("a", 5, 20, 20, 20, true); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := WritePNG(&buf, doc, svgicon.StrictErrorMode); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 60 || b.Dy() != 40 {
		t.Fatalf("unexpected image size %v", b)
	}
}
