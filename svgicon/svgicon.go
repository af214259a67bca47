// Converts the shapes of a document into styled abstract
// paths, which can then be consumed by painting drivers.
// See for example drawsvg/svgraster or drawsvg/svgpdf .
package svgicon

import (
	"image/color"
	"io"
	"os"

	"github.com/benoitkugler/drawsvg/svgdoc"
	"github.com/benoitkugler/drawsvg/svgpath"
	"github.com/srwiley/rasterx"
)

// PathStyle holds the state of the SVG style
type PathStyle struct {
	FillOpacity, LineOpacity float64
	LineWidth                float64
	UseNonZeroWinding        bool

	Join                    JoinOptions
	Dash                    DashOptions
	FillerColor, LinerColor color.Color // nil disables filling or stroking

	transform rasterx.Matrix2D // current transform
}

// SvgPath binds a style to a path
type SvgPath struct {
	ID    string // identifier of the source element, if any
	Path  svgpath.Path
	Style PathStyle
}

// Bounds defines a bounding box, such as a viewport
// or a path extent.
type Bounds struct{ X, Y, W, H float64 }

// SvgIcon holds the paths found in a document.
// See the `Draw` methods to use it.
type SvgIcon struct {
	ViewBox      Bounds
	Titles       []string // Title elements collect here
	Descriptions []string // Description elements collect here
	SVGPaths     []SvgPath
	Transform    rasterx.Matrix2D

	Width, Height string // top level width and height attributes
}

// FromDocument compiles the shapes of the document container.
// This only supports a sub-set of SVG, but
// is enough to draw the shapes of a drawing session. errMode determines if the icon ignores,
// errors out, or logs a warning if it does not handle an element found in the document.
func FromDocument(doc *svgdoc.Document, errMode ErrorMode) (*SvgIcon, error) {
	icon := &SvgIcon{Transform: rasterx.Identity}
	cursor := &iconCursor{styleStack: []PathStyle{DefaultStyle}, icon: icon, errorMode: errMode}
	container := doc.Container()
	if err := cursor.readViewBox(container, doc); err != nil {
		return nil, err
	}
	// the container itself may carry a style
	if err := cursor.pushStyle(container); err != nil {
		return nil, err
	}
	if err := cursor.readChildren(container); err != nil {
		return icon, err
	}
	return icon, nil
}

// ReadIconStream parses the HTML or SVG content of stream and
// compiles the element identified by containerID, usually an <svg> tag.
func ReadIconStream(stream io.Reader, containerID string, errMode ErrorMode) (*SvgIcon, error) {
	doc, err := svgdoc.Parse(stream, containerID)
	if err != nil {
		return nil, err
	}
	return FromDocument(doc, errMode)
}

// ReadIcon is like ReadIconStream, but reads the named file.
func ReadIcon(iconFile, containerID string, errMode ErrorMode) (*SvgIcon, error) {
	fin, errf := os.Open(iconFile)
	if errf != nil {
		return nil, errf
	}
	defer fin.Close()
	return ReadIconStream(fin, containerID, errMode)
}

// PathBounds returns the extent of the paths, after applying the icon
// transform and taking half the line width into account.
// ok is false if the icon has no path.
func (s *SvgIcon) PathBounds() (b Bounds, ok bool) {
	var minX, minY, maxX, maxY float64
	for _, svgp := range s.SVGPaths {
		var tr svgpath.Path
		svgp.Path.AddTo(&transformer{Adder: &tr, m: s.Transform.Mult(svgp.Style.transform)})
		box, hasBox := tr.Bounds()
		if !hasBox {
			continue
		}
		x0, y0 := svgpath.FromFixed(box.Min)
		x1, y1 := svgpath.FromFixed(box.Max)
		if svgp.Style.LinerColor != nil {
			w := svgp.Style.LineWidth / 2
			x0, y0, x1, y1 = x0-w, y0-w, x1+w, y1+w
		}
		if !ok {
			minX, minY, maxX, maxY, ok = x0, y0, x1, y1, true
			continue
		}
		minX, minY = min(minX, x0), min(minY, y0)
		maxX, maxY = max(maxX, x1), max(maxY, y1)
	}
	return Bounds{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}, ok
}
