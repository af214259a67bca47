// Composes shapes into a document: a drawing session
// creates path and ellipse elements and rewrites their
// geometry from two corner points, or from a stream of
// pointer positions for freehand lines.
package svgdraw

import (
	"errors"
	"fmt"
	"strings"

	"github.com/benoitkugler/drawsvg/svgdoc"
)

var (
	ErrInvalidShapeKind = errors.New("invalid shape kind")
	ErrNoCurrentItem    = errors.New("no current item")
)

// Shape is a figure drawn from two corner points.
type Shape uint8

const (
	Rectangle Shape = iota
	Ellipse
	Arrow
)

func (s Shape) String() string {
	switch s {
	case Rectangle:
		return "rectangle"
	case Ellipse:
		return "ellipse"
	case Arrow:
		return "arrow"
	default:
		return fmt.Sprintf("<invalid Shape %d>", s)
	}
}

// kind returns the element holding the shape
func (s Shape) kind() svgdoc.Kind {
	switch s {
	case Rectangle, Arrow:
		return svgdoc.Path
	case Ellipse:
		return svgdoc.Ellipse
	default:
		return svgdoc.NoKind
	}
}

// ParseShape returns the shape with the given name,
// one of "rectangle", "ellipse" or "arrow" (case insensitive).
func ParseShape(name string) (Shape, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "rectangle":
		return Rectangle, nil
	case "ellipse":
		return Ellipse, nil
	case "arrow":
		return Arrow, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidShapeKind, name)
	}
}
