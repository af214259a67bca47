package svgicon

import (
	"errors"
	"fmt"

	"github.com/benoitkugler/drawsvg/svgdoc"
	"github.com/benoitkugler/drawsvg/svgpath"
)

type svgFunc func(c *iconCursor, e *svgdoc.Element) (svgpath.Path, error)

var drawFuncs map[string]svgFunc

func init() {
	// avoids cyclical static declaration
	// (gF walks the children)
	drawFuncs = map[string]svgFunc{
		"g":        gF,
		"svg":      gF, // nested viewports are drawn as groups
		"line":     lineF,
		"rect":     rectF,
		"circle":   circleF,
		"ellipse":  circleF, // circleF handles ellipse also
		"polyline": polylineF,
		"polygon":  polygonF,
		"path":     pathF,
		"desc":     descF,
		"title":    titleF,
	}
}

// readChildren compiles every child of e
func (c *iconCursor) readChildren(e *svgdoc.Element) error {
	for _, child := range e.Children() {
		if err := c.readElement(child); err != nil {
			return err
		}
	}
	return nil
}

// readElement compiles one element, applying the error mode
// to unsupported tags and invalid attributes
func (c *iconCursor) readElement(e *svgdoc.Element) error {
	df, ok := drawFuncs[e.Tag()]
	if !ok {
		return c.handleError(e, fmt.Errorf("cannot process svg element %s", e.Tag()))
	}
	if err := c.pushStyle(e); err != nil {
		return c.handleError(e, err)
	}
	defer c.popStyle()

	path, err := df(c, e)
	if err != nil {
		return c.handleError(e, err)
	}
	if len(path) > 0 {
		c.icon.SVGPaths = append(c.icon.SVGPaths,
			SvgPath{ID: e.ID(), Path: path, Style: c.styleStack[len(c.styleStack)-1]})
	}
	return nil
}

// floatAttrs reads the given numeric attributes, missing ones being 0
func floatAttrs(e *svgdoc.Element, names ...string) ([]float64, error) {
	out := make([]float64, len(names))
	for i, name := range names {
		v := e.Attr(name)
		if v == "" {
			continue
		}
		f, err := parseBasicFloat(v)
		if err != nil {
			return nil, fmt.Errorf("attribute %s: %w", name, err)
		}
		out[i] = f
	}
	return out, nil
}

// g does nothing but push the style
func gF(c *iconCursor, e *svgdoc.Element) (svgpath.Path, error) {
	return nil, c.readChildren(e)
}

func rectF(c *iconCursor, e *svgdoc.Element) (svgpath.Path, error) {
	v, err := floatAttrs(e, "x", "y", "width", "height")
	if err != nil {
		return nil, err
	}
	x, y, w, h := v[0], v[1], v[2], v[3]
	if w == 0 || h == 0 {
		return nil, nil
	}
	var p svgpath.Path
	p.Start(svgpath.ToFixed(x, y))
	p.Line(svgpath.ToFixed(x+w, y))
	p.Line(svgpath.ToFixed(x+w, y+h))
	p.Line(svgpath.ToFixed(x, y+h))
	p.Stop(true)
	return p, nil
}

func circleF(c *iconCursor, e *svgdoc.Element) (svgpath.Path, error) {
	v, err := floatAttrs(e, "cx", "cy", "r", "rx", "ry")
	if err != nil {
		return nil, err
	}
	cx, cy, rx, ry := v[0], v[1], v[3], v[4]
	if e.Tag() == "circle" {
		rx, ry = v[2], v[2]
	}
	if rx == 0 || ry == 0 { // not drawn, but not an error
		return nil, nil
	}
	var p svgpath.Path
	p.AddEllipse(cx, cy, rx, ry)
	return p, nil
}

func lineF(c *iconCursor, e *svgdoc.Element) (svgpath.Path, error) {
	v, err := floatAttrs(e, "x1", "y1", "x2", "y2")
	if err != nil {
		return nil, err
	}
	var p svgpath.Path
	p.Start(svgpath.ToFixed(v[0], v[1]))
	p.Line(svgpath.ToFixed(v[2], v[3]))
	return p, nil
}

func polylineF(c *iconCursor, e *svgdoc.Element) (svgpath.Path, error) {
	if err := c.getPoints(e.Attr("points")); err != nil {
		return nil, err
	}
	if len(c.points)%2 != 0 {
		return nil, errors.New("polygon has odd number of points")
	}
	var p svgpath.Path
	if len(c.points) >= 4 {
		p.Start(svgpath.ToFixed(c.points[0], c.points[1]))
		for i := 2; i < len(c.points)-1; i += 2 {
			p.Line(svgpath.ToFixed(c.points[i], c.points[i+1]))
		}
	}
	return p, nil
}

func polygonF(c *iconCursor, e *svgdoc.Element) (svgpath.Path, error) {
	p, err := polylineF(c, e)
	if len(p) > 0 {
		p.Stop(true)
	}
	return p, err
}

func pathF(c *iconCursor, e *svgdoc.Element) (svgpath.Path, error) {
	return svgpath.Parse(e.Attr("d"))
}

func descF(c *iconCursor, e *svgdoc.Element) (svgpath.Path, error) {
	c.icon.Descriptions = append(c.icon.Descriptions, e.Text())
	return nil, nil
}

func titleF(c *iconCursor, e *svgdoc.Element) (svgpath.Path, error) {
	c.icon.Titles = append(c.icon.Titles, e.Text())
	return nil, nil
}
