package svgicon

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/benoitkugler/drawsvg"
	"github.com/benoitkugler/drawsvg/svgdoc"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/colornames"
)

// ErrorMode is the for setting how the parser reacts to unparsed elements
type ErrorMode uint8

const (
	// IgnoreErrorMode skips unparsed SVG elements
	IgnoreErrorMode ErrorMode = iota

	// WarnErrorMode logs a warning message using the drawsvg logger
	// and skips the element
	WarnErrorMode

	// StrictErrorMode causes a error when an unparsed SVG element is found
	StrictErrorMode
)

var (
	errParamMismatch = errors.New("param mismatch")
	errBadColor      = errors.New("invalid color")
)

// iconCursor is used while walking the document
type iconCursor struct {
	icon       *SvgIcon
	styleStack []PathStyle
	points     []float64
	errorMode  ErrorMode
}

// handleError applies the error mode to err, raised
// while processing the element e
func (c *iconCursor) handleError(e *svgdoc.Element, err error) error {
	switch c.errorMode {
	case StrictErrorMode:
		return err
	case WarnErrorMode:
		drawsvg.Logger().Warn("skipping svg element", "tag", e.Tag(), "id", e.ID(), "err", err)
	}
	return nil
}

// readViewBox sets the icon viewport from the container
// attributes, falling back on the document size
func (c *iconCursor) readViewBox(container *svgdoc.Element, doc *svgdoc.Document) error {
	c.icon.Width, c.icon.Height = container.Attr("width"), container.Attr("height")
	vb := container.Attr("viewBox")
	if vb == "" {
		vb = container.Attr("viewbox")
	}
	if vb != "" {
		if err := c.getPoints(vb); err != nil {
			return err
		}
		if len(c.points) != 4 {
			return fmt.Errorf("viewBox: %w", errParamMismatch)
		}
		c.icon.ViewBox = Bounds{X: c.points[0], Y: c.points[1], W: c.points[2], H: c.points[3]}
	}
	if c.icon.ViewBox.W <= 0 || c.icon.ViewBox.H <= 0 {
		w, h := doc.Size()
		c.icon.ViewBox.W, c.icon.ViewBox.H = w, h
	}
	return nil
}

// splitOnCommaOrSpace returns a list of strings after splitting the input on comma and space delimiters
func splitOnCommaOrSpace(s string) []string {
	return strings.FieldsFunc(s,
		func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
		})
}

// getPoints reads a list of numbers into c.points
func (c *iconCursor) getPoints(s string) error {
	c.points = c.points[:0]
	for _, f := range splitOnCommaOrSpace(s) {
		v, err := parseBasicFloat(f)
		if err != nil {
			return err
		}
		c.points = append(c.points, v)
	}
	return nil
}

// parseBasicFloat parses a number, with an optional px unit
func parseBasicFloat(s string) (float64, error) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "px")
	return strconv.ParseFloat(s, 64)
}

func readFraction(v string) (f float64, err error) {
	v = strings.TrimSpace(v)
	d := 1.0
	if strings.HasSuffix(v, "%") {
		d = 100
		v = strings.TrimSuffix(v, "%")
	}
	f, err = strconv.ParseFloat(v, 64)
	f /= d
	return
}

// parseSVGColor parses a paint value. "none" returns a nil color.
// Named colors, #rgb, #rrggbb and rgb(r, g, b) are supported.
func parseSVGColor(v string) (color.Color, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	switch {
	case v == "none" || v == "transparent":
		return nil, nil
	case v == "currentcolor":
		return DefaultStyle.FillerColor, nil
	case strings.HasPrefix(v, "#"):
		return parseHexColor(v[1:])
	case strings.HasPrefix(v, "rgb(") && strings.HasSuffix(v, ")"):
		comps := splitOnCommaOrSpace(v[4 : len(v)-1])
		if len(comps) != 3 {
			return nil, fmt.Errorf("%w: %q", errBadColor, v)
		}
		var rgb [3]uint8
		for i, comp := range comps {
			var f float64
			var err error
			if strings.HasSuffix(comp, "%") {
				f, err = readFraction(comp)
				f *= 255
			} else {
				f, err = strconv.ParseFloat(comp, 64)
			}
			if err != nil {
				return nil, fmt.Errorf("%w: %q", errBadColor, v)
			}
			rgb[i] = uint8(math.Max(0, math.Min(255, math.Round(f))))
		}
		return color.NRGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 0xff}, nil
	}
	if c, ok := colornames.Map[v]; ok {
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff}, nil
	}
	return nil, fmt.Errorf("%w: %q", errBadColor, v)
}

func parseHexColor(hex string) (color.Color, error) {
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return nil, fmt.Errorf("%w: #%s", errBadColor, hex)
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: #%s", errBadColor, hex)
	}
	return color.NRGBA{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n), A: 0xff}, nil
}

func (c *iconCursor) readTransformAttr(m1 rasterx.Matrix2D, k string) (rasterx.Matrix2D, error) {
	ln := len(c.points)
	switch k {
	case "rotate":
		if ln == 1 {
			m1 = m1.Rotate(c.points[0] * math.Pi / 180)
		} else if ln == 3 {
			m1 = m1.Translate(c.points[1], c.points[2]).
				Rotate(c.points[0]*math.Pi/180).
				Translate(-c.points[1], -c.points[2])
		} else {
			return m1, errParamMismatch
		}
	case "translate":
		if ln == 1 {
			m1 = m1.Translate(c.points[0], 0)
		} else if ln == 2 {
			m1 = m1.Translate(c.points[0], c.points[1])
		} else {
			return m1, errParamMismatch
		}
	case "scale":
		if ln == 1 {
			m1 = m1.Scale(c.points[0], c.points[0])
		} else if ln == 2 {
			m1 = m1.Scale(c.points[0], c.points[1])
		} else {
			return m1, errParamMismatch
		}
	case "matrix":
		if ln == 6 {
			m1 = m1.Mult(rasterx.Matrix2D{
				A: c.points[0],
				B: c.points[1],
				C: c.points[2],
				D: c.points[3],
				E: c.points[4],
				F: c.points[5]})
		} else {
			return m1, errParamMismatch
		}
	default:
		return m1, errParamMismatch
	}
	return m1, nil
}

func (c *iconCursor) parseTransform(v string) (rasterx.Matrix2D, error) {
	ts := strings.Split(v, ")")
	m1 := c.styleStack[len(c.styleStack)-1].transform
	for _, t := range ts {
		t = strings.TrimSpace(t)
		if len(t) == 0 {
			continue
		}
		d := strings.Split(t, "(")
		if len(d) != 2 || len(d[1]) < 1 {
			return m1, errParamMismatch // badly formed transformation
		}
		err := c.getPoints(d[1])
		if err != nil {
			return m1, err
		}
		m1, err = c.readTransformAttr(m1, strings.ToLower(strings.TrimSpace(d[0])))
		if err != nil {
			return m1, err
		}
	}
	return m1, nil
}

func (c *iconCursor) readStyleAttr(curStyle *PathStyle, k, v string) error {
	switch k {
	case "fill":
		col, err := parseSVGColor(v)
		if err != nil {
			return err
		}
		curStyle.FillerColor = col
	case "stroke":
		col, err := parseSVGColor(v)
		if err != nil {
			return err
		}
		curStyle.LinerColor = col
	case "fill-rule":
		curStyle.UseNonZeroWinding = v != "evenodd"
	case "stroke-linecap":
		switch v {
		case "butt":
			curStyle.Join.TrailLineCap = ButtCap
		case "round":
			curStyle.Join.TrailLineCap = RoundCap
		case "square":
			curStyle.Join.TrailLineCap = SquareCap
		}
	case "stroke-linejoin":
		switch v {
		case "miter":
			curStyle.Join.LineJoin = Miter
		case "miter-clip":
			curStyle.Join.LineJoin = MiterClip
		case "arc-clip":
			curStyle.Join.LineJoin = ArcClip
		case "round":
			curStyle.Join.LineJoin = Round
		case "arc":
			curStyle.Join.LineJoin = Arc
		case "bevel":
			curStyle.Join.LineJoin = Bevel
		}
	case "stroke-miterlimit":
		mLimit, err := parseBasicFloat(v)
		if err != nil {
			return err
		}
		curStyle.Join.MiterLimit = fToFixed(mLimit)
	case "stroke-width":
		width, err := parseBasicFloat(v)
		if err != nil {
			return err
		}
		curStyle.LineWidth = width
	case "stroke-dashoffset":
		dashOffset, err := parseBasicFloat(v)
		if err != nil {
			return err
		}
		curStyle.Dash.DashOffset = dashOffset
	case "stroke-dasharray":
		if v == "none" {
			curStyle.Dash.Dash = nil
			break
		}
		dashes := splitOnCommaOrSpace(v)
		dList := make([]float64, len(dashes))
		for i, dstr := range dashes {
			d, err := parseBasicFloat(dstr)
			if err != nil {
				return err
			}
			dList[i] = d
		}
		curStyle.Dash.Dash = dList
	case "opacity", "stroke-opacity", "fill-opacity":
		op, err := readFraction(v)
		if err != nil {
			return err
		}
		if k != "stroke-opacity" {
			curStyle.FillOpacity *= op
		}
		if k != "fill-opacity" {
			curStyle.LineOpacity *= op
		}
	case "transform":
		m, err := c.parseTransform(v)
		if err != nil {
			return err
		}
		curStyle.transform = m
	}
	return nil
}

// pushStyle parses the style of the element, and push it on the style stack.
// Note that this parses both the contents of a style attribute plus
// direct presentation attributes, the former taking precedence.
func (c *iconCursor) pushStyle(e *svgdoc.Element) error {
	var pairs [][2]string
	for _, k := range presentationAttrs {
		if v := e.Attr(k); v != "" {
			pairs = append(pairs, [2]string{k, v})
		}
	}
	for _, decl := range strings.Split(e.Attr("style"), ";") {
		kv := strings.SplitN(decl, ":", 2)
		if len(kv) == 2 {
			pairs = append(pairs, [2]string{strings.ToLower(strings.TrimSpace(kv[0])), strings.TrimSpace(kv[1])})
		}
	}
	// Make a copy of the top style
	curStyle := c.styleStack[len(c.styleStack)-1]
	for _, kv := range pairs {
		if err := c.readStyleAttr(&curStyle, kv[0], kv[1]); err != nil {
			return fmt.Errorf("attribute %s: %w", kv[0], err)
		}
	}
	c.styleStack = append(c.styleStack, curStyle) // Push style onto stack
	return nil
}

func (c *iconCursor) popStyle() {
	c.styleStack = c.styleStack[:len(c.styleStack)-1]
}

// attributes read by readStyleAttr
var presentationAttrs = [...]string{
	"fill", "stroke", "fill-rule", "stroke-linecap", "stroke-linejoin",
	"stroke-miterlimit", "stroke-width", "stroke-dashoffset", "stroke-dasharray",
	"opacity", "stroke-opacity", "fill-opacity", "transform",
}
