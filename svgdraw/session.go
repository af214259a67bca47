package svgdraw

import (
	"errors"
	"fmt"
	"math"

	"github.com/benoitkugler/drawsvg"
	"github.com/benoitkugler/drawsvg/svgdoc"
	"github.com/benoitkugler/drawsvg/svgpath"
)

// Session draws shapes into a document. It remembers the
// last created element, the current item, so that it may be
// redrawn with Update while the pointer moves.
//
// A Session is not safe for concurrent use.
type Session struct {
	doc     *svgdoc.Document
	paths   svgpath.Accumulator
	opts    Options
	current string
}

// NewSession returns a session drawing into doc.
// Zero fields of opts take their value from DefaultOptions.
func NewSession(doc *svgdoc.Document, opts Options) *Session {
	def := DefaultOptions()
	if opts.StrokeColor == "" {
		opts.StrokeColor = def.StrokeColor
	}
	if opts.StrokeWidth == "" {
		opts.StrokeWidth = def.StrokeWidth
	}
	if opts.Fill == "" {
		opts.Fill = def.Fill
	}
	if opts.LineTicks < 1 {
		opts.LineTicks = def.LineTicks
	}
	return &Session{doc: doc, paths: svgpath.NewAccumulator(doc), opts: opts}
}

// Document returns the document drawn into.
func (s *Session) Document() *svgdoc.Document { return s.doc }

// Current returns the identifier of the last created element,
// or an empty string.
func (s *Session) Current() string { return s.current }

// SetColor changes the stroke color of the elements created afterwards.
func (s *Session) SetColor(color string) { s.opts.StrokeColor = color }

// SetWidth changes the stroke width of the elements created afterwards.
func (s *Session) SetWidth(width string) { s.opts.StrokeWidth = width }

// CreateObject adds an element with the current style, and makes it the
// current item. If the identifier is already used by an element of the same kind,
// this element is reused.
func (s *Session) CreateObject(id string, kind svgdoc.Kind) error {
	e, err := s.doc.ElementByID(id)
	switch {
	case err == nil:
		if e.Kind() != kind {
			return fmt.Errorf("%w: %q is a <%s>, not a <%s>", svgdoc.ErrKindMismatch, id, e.Tag(), kind)
		}
	case errors.Is(err, svgdoc.ErrElementNotFound):
		if _, err = s.doc.Create(kind, id, s.opts.style()); err != nil {
			return err
		}
		drawsvg.Logger().Debug("element created", "id", id, "kind", kind.String())
	default:
		return err
	}
	s.current = id
	return nil
}

// Delete removes the identified element. Elements other than paths
// and ellipses are left untouched.
func (s *Session) Delete(id string) error {
	removed, err := s.doc.Remove(id)
	if err != nil {
		return err
	}
	if !removed {
		return nil
	}
	drawsvg.Logger().Debug("element removed", "id", id)
	if s.current == id {
		s.current = ""
	}
	return nil
}

// Clear empties the container of the document.
func (s *Session) Clear() {
	s.doc.Clear()
	s.current = ""
	drawsvg.Logger().Debug("document cleared")
}

// Draw draws shape between the corners (fX, fY) and (lX, lY) into
// the element id. If create is true, the element is first created if needed
// (see CreateObject).
func (s *Session) Draw(shape Shape, id string, fX, fY, lX, lY float64, create bool) error {
	kind := shape.kind()
	if kind == svgdoc.NoKind {
		return fmt.Errorf("%w: %d", ErrInvalidShapeKind, shape)
	}
	if create {
		if err := s.CreateObject(id, kind); err != nil {
			return err
		}
	}
	switch shape {
	case Rectangle:
		return s.rectangle(id, fX, fY, lX, lY)
	case Ellipse:
		return s.ellipse(id, fX, fY, lX, lY)
	default:
		return s.arrow(id, fX, fY, lX, lY)
	}
}

// Update redraws the current item as shape, without creating anything.
func (s *Session) Update(shape Shape, fX, fY, lX, lY float64) error {
	if s.current == "" {
		return ErrNoCurrentItem
	}
	return s.Draw(shape, s.current, fX, fY, lX, lY, false)
}

// Rectangle is a shortcut for Draw(Rectangle, ...).
func (s *Session) Rectangle(id string, fX, fY, lX, lY float64, create bool) error {
	return s.Draw(Rectangle, id, fX, fY, lX, lY, create)
}

// Ellipse is a shortcut for Draw(Ellipse, ...).
func (s *Session) Ellipse(id string, fX, fY, lX, lY float64, create bool) error {
	return s.Draw(Ellipse, id, fX, fY, lX, lY, create)
}

// Arrow is a shortcut for Draw(Arrow, ...).
func (s *Session) Arrow(id string, fX, fY, lX, lY float64, create bool) error {
	return s.Draw(Arrow, id, fX, fY, lX, lY, create)
}

// NewStroke starts a freehand line into the path id, which must exist.
// Use CreateObject to add it first.
func (s *Session) NewStroke(id string) *Stroke {
	return &Stroke{doc: s.doc, paths: s.paths, id: id, liner: NewLiner(s.opts.LineTicks)}
}

// polyline moves to the first point and draws lines to the next ones
func (s *Session) polyline(id string, points ...[2]float64) error {
	if err := s.paths.MoveTo(id, points[0][0], points[0][1]); err != nil {
		return err
	}
	for _, p := range points[1:] {
		if err := s.paths.LineTo(id, p[0], p[1]); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) rectangle(id string, fX, fY, lX, lY float64) error {
	err := s.polyline(id, [2]float64{fX, fY}, [2]float64{fX, lY}, [2]float64{lX, lY},
		[2]float64{lX, fY}, [2]float64{fX, fY})
	if err != nil {
		return err
	}
	return s.paths.ClosePath(id)
}

func (s *Session) ellipse(id string, fX, fY, lX, lY float64) error {
	e, err := s.doc.ElementByID(id)
	if err != nil {
		return err
	}
	if e.Kind() != svgdoc.Ellipse {
		return fmt.Errorf("%w: %q is a <%s>, not an <ellipse>", svgdoc.ErrKindMismatch, id, e.Tag())
	}
	e.SetAttr("cx", svgpath.FormatNumber(fX-(fX-lX)/2))
	e.SetAttr("cy", svgpath.FormatNumber(fY-(fY-lY)/2))
	e.SetAttr("rx", svgpath.FormatNumber(math.Abs(fX-lX)/2))
	e.SetAttr("ry", svgpath.FormatNumber(math.Abs(fY-lY)/2))
	return nil
}

func (s *Session) arrow(id string, fX, fY, lX, lY float64) error {
	if err := s.polyline(id, [2]float64{fX, fY}, [2]float64{lX, lY}); err != nil {
		return err
	}
	if math.Hypot(lX-fX, lY-fY) == 0 {
		return nil
	}
	angle := LineAngle(fX, fY, lX, lY)
	if s.opts.PreciseArrows {
		angle = PreciseLineAngle(fX, fY, lX, lY)
	}
	for _, p := range TipPoints(lX, lY, angle) {
		if err := s.paths.LineTo(id, p[0], p[1]); err != nil {
			return err
		}
	}
	return s.paths.LineTo(id, lX, lY) // closes the tip
}
