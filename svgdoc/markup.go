package svgdoc

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo"
	"github.com/benoitkugler/drawsvg/svgpath"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// class shared by every element created by this package
const elementClass = "svg-element"

// browsers default size for an <svg> without width or height
const (
	defaultWidth  = 300
	defaultHeight = 150
)

// newNode builds a detached element. Attribute order follows
// the legacy templates.
func newNode(kind Kind, id string, style Style) (*html.Node, error) {
	var attrs []html.Attribute
	switch kind {
	case Path:
		attrs = []html.Attribute{
			{Key: "class", Val: elementClass},
			{Key: "id", Val: id},
			{Key: "stroke-width", Val: style.StrokeWidth},
			{Key: "fill", Val: style.Fill},
			{Key: "stroke", Val: style.StrokeColor},
		}
	case Ellipse:
		attrs = []html.Attribute{
			{Key: "class", Val: elementClass},
			{Key: "id", Val: id},
			{Key: "stroke", Val: style.StrokeColor},
			{Key: "stroke-width", Val: style.StrokeWidth},
			{Key: "fill", Val: style.Fill},
		}
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, kind)
	}
	tag := kind.String()
	return &html.Node{
		Type:      html.ElementNode,
		DataAtom:  atom.Lookup([]byte(tag)),
		Data:      tag,
		Namespace: "svg",
		Attr:      attrs,
	}, nil
}

// Markup returns the markup of an element of the given kind,
// without inserting it anywhere.
func Markup(kind Kind, id string, style Style) (string, error) {
	n, err := newNode(kind, id, style)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	if err := html.Render(&sb, n); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Size returns the width and height of the container, read from
// its 'width' and 'height' attributes, or from its 'viewBox'.
func (d *Document) Size() (width, height float64) {
	c := d.Container()
	width, height = parseLength(c.Attr("width")), parseLength(c.Attr("height"))
	if width > 0 && height > 0 {
		return width, height
	}
	vb := c.Attr("viewBox")
	if vb == "" {
		vb = c.Attr("viewbox") // not adjusted by the parser outside of foreign content
	}
	if fields := strings.FieldsFunc(vb, func(r rune) bool { return r == ',' || r == ' ' }); len(fields) == 4 {
		vw, errW := strconv.ParseFloat(fields[2], 64)
		vh, errH := strconv.ParseFloat(fields[3], 64)
		if errW == nil && errH == nil {
			if width <= 0 {
				width = vw
			}
			if height <= 0 {
				height = vh
			}
		}
	}
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}
	return width, height
}

// parseLength reads a length such as "4px" or "12.5", returning 0
// for unsupported values.
func parseLength(s string) float64 {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "px"))
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// EllipsePath returns path data drawing the ellipse of center (cx, cy)
// and radii (rx, ry) with two arcs.
func EllipsePath(cx, cy, rx, ry float64) string {
	n := svgpath.FormatNumber
	return fmt.Sprintf("M%s,%sA%s,%s 0 1,0 %s,%sA%s,%s 0 1,0 %s,%sz",
		n(cx-rx), n(cy), n(rx), n(ry), n(cx+rx), n(cy),
		n(rx), n(ry), n(cx-rx), n(cy))
}

// WriteStandalone writes the path and ellipse elements of the container
// as a standalone SVG file. Ellipses are written as arc paths; elements
// of other kinds are skipped.
func (d *Document) WriteStandalone(w io.Writer) {
	width, height := d.Size()
	canvas := svg.New(w)
	canvas.Start(int(math.Ceil(width)), int(math.Ceil(height)))
	for _, e := range d.Elements() {
		var data string
		switch e.Kind() {
		case Path:
			data = e.Attr("d")
		case Ellipse:
			cx, cy := parseLength(e.Attr("cx")), parseLength(e.Attr("cy"))
			rx, ry := parseLength(e.Attr("rx")), parseLength(e.Attr("ry"))
			if rx == 0 || ry == 0 { // not drawn
				continue
			}
			data = EllipsePath(cx, cy, rx, ry)
		}
		if data == "" {
			continue
		}
		canvas.Path(data, presentationAttrs(e)...)
	}
	canvas.End()
}

// presentationAttrs returns the attributes to copy on export,
// formatted as name="value".
func presentationAttrs(e *Element) []string {
	var out []string
	for _, name := range [...]string{"id", "stroke", "stroke-width", "fill"} {
		if v := e.Attr(name); v != "" {
			out = append(out, fmt.Sprintf(`%s="%s"`, name, html.EscapeString(v)))
		}
	}
	return out
}
