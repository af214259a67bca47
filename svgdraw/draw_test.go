package svgdraw

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/benoitkugler/drawsvg/svgdoc"
)

func newTestSession() *Session {
	return NewSession(svgdoc.New("canvas", 400, 300), DefaultOptions())
}

func pathData(t *testing.T, s *Session, id string) string {
	t.Helper()
	d, err := s.Document().PathData(id)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestRectangle(t *testing.T) {
	for _, test := range []struct {
		fX, fY, lX, lY float64
		want           string
	}{
		{1, 2, 3, 4, "M1,2L1,4L3,4L3,2L1,2z"},
		{3, 4, 1, 2, "M3,4L3,2L1,2L1,4L3,4z"},
		{1, 4, 3, 2, "M1,4L1,2L3,2L3,4L1,4z"},
		{3, 2, 1, 4, "M3,2L3,4L1,4L1,2L3,2z"},
		{0.5, -1, 2.25, 0, "M0.5,-1L0.5,0L2.25,0L2.25,-1L0.5,-1z"},
	} {
		s := newTestSession()
		if err := s.Rectangle("r", test.fX, test.fY, test.lX, test.lY, true); err != nil {
			t.Fatal(err)
		}
		if got := pathData(t, s, "r"); got != test.want {
			t.Errorf("expected %s, got %s", test.want, got)
		}
	}
}

func TestEllipse(t *testing.T) {
	s := newTestSession()
	check := func(id, cx, cy, rx, ry string) {
		t.Helper()
		e, err := s.Document().ElementByID(id)
		if err != nil {
			t.Fatal(err)
		}
		got := [4]string{e.Attr("cx"), e.Attr("cy"), e.Attr("rx"), e.Attr("ry")}
		if want := [4]string{cx, cy, rx, ry}; got != want {
			t.Errorf("expected %v, got %v", want, got)
		}
	}

	if err := s.Ellipse("e1", 0, 0, 10, 6, true); err != nil {
		t.Fatal(err)
	}
	check("e1", "5", "3", "5", "3")

	// corner order does not matter
	if err := s.Ellipse("e2", 10, 10, 0, 0, true); err != nil {
		t.Fatal(err)
	}
	check("e2", "5", "5", "5", "5")
	if err := s.Ellipse("e3", 0, 0, 10, 10, true); err != nil {
		t.Fatal(err)
	}
	check("e3", "5", "5", "5", "5")

	if err := s.Ellipse("e1", 1, 1, 2, 2, false); err != nil {
		t.Fatal(err)
	}
	check("e1", "1.5", "1.5", "0.5", "0.5")

	e, _ := s.Document().ElementByID("e1")
	if e.Attr("stroke") != "green" || e.Attr("stroke-width") != "4px" || e.Attr("fill") != "none" {
		t.Errorf("unexpected style %s", e.Attr("stroke"))
	}
}

func TestArrow(t *testing.T) {
	s := newTestSession()

	// coincident points: no tip
	if err := s.Arrow("a", 3, 3, 3, 3, true); err != nil {
		t.Fatal(err)
	}
	if got := pathData(t, s, "a"); got != "M3,3L3,3" {
		t.Fatalf("unexpected data %s", got)
	}

	if err := s.Arrow("a", 0, 0, 10, 0, true); err != nil {
		t.Fatal(err)
	}
	if got, want := pathData(t, s, "a"), "M0,0L10,0L10,-10L40,0L10,10L10,0"; got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}

	// vertical arrows leave rounding residues, written with exponents
	if err := s.Arrow("a", 0, 10, 0, 0, true); err != nil {
		t.Fatal(err)
	}
	if got, want := pathData(t, s, "a"), "M0,10L0,0L-10,-6.123233995736757e-16L1.8369701987210272e-15,-30L10,6.123233995736757e-16L0,0"; got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}

	// leftward arrows use the historical angle
	if err := s.Arrow("a", 10, 0, 0, 0, true); err != nil {
		t.Fatal(err)
	}
	got := pathData(t, s, "a")
	if !strings.HasPrefix(got, "M10,0L0,0L") || !strings.HasSuffix(got, "L0,0") {
		t.Fatalf("unexpected data %s", got)
	}
	if n := strings.Count(got, "L"); n != 5 {
		t.Fatalf("expected 5 lines, got %d", n)
	}
}

func TestPreciseArrow(t *testing.T) {
	opts := DefaultOptions()
	opts.PreciseArrows = true
	s := NewSession(svgdoc.New("canvas", 100, 100), opts)
	if err := s.Arrow("a", 10, 0, 0, 0, true); err != nil {
		t.Fatal(err)
	}
	got := pathData(t, s, "a")
	// the tip points right to left: its apex is at x = -30
	if !strings.Contains(got, "L-30,") {
		t.Fatalf("unexpected data %s", got)
	}
}

func TestLineAngle(t *testing.T) {
	const eps = 1e-12
	for _, test := range []struct {
		fX, fY, lX, lY float64
		want           float64
	}{
		{0, 0, 10, 0, 0},
		{0, 0, 10, 10, math.Pi / 4},
		{0, 0, 0, 10, math.Pi / 2},
		{0, 0, 0, -10, -math.Pi / 2},
		{10, 0, 0, 0, 91.1},
		{10, 10, 0, 0, math.Pi/4 + 91.1},
	} {
		if got := LineAngle(test.fX, test.fY, test.lX, test.lY); math.Abs(got-test.want) > eps {
			t.Errorf("LineAngle(%v, %v, %v, %v): expected %v, got %v", test.fX, test.fY, test.lX, test.lY, test.want, got)
		}
	}
	if got := PreciseLineAngle(10, 0, 0, 0); math.Abs(got-math.Pi) > eps {
		t.Errorf("expected Pi, got %v", got)
	}
}

func TestTipPoints(t *testing.T) {
	got := TipPoints(10, 5, 0)
	want := [3][2]float64{{10, -5}, {40, 5}, {10, 15}}
	if got != want {
		t.Fatalf("expected %v, got %v", want, got)
	}

	got = TipPoints(0, 0, math.Pi/2)
	want = [3][2]float64{{10, 0}, {0, 30}, {-10, 0}}
	for i := range got {
		for j := range got[i] {
			if math.Abs(got[i][j]-want[i][j]) > 1e-9 {
				t.Fatalf("expected %v, got %v", want, got)
			}
		}
	}
}

func TestDrawErrors(t *testing.T) {
	s := newTestSession()
	if err := s.Draw(Shape(12), "x", 0, 0, 1, 1, true); !errors.Is(err, ErrInvalidShapeKind) {
		t.Fatalf("expected ErrInvalidShapeKind, got %v", err)
	}
	if err := s.Update(Rectangle, 0, 0, 1, 1); !errors.Is(err, ErrNoCurrentItem) {
		t.Fatalf("expected ErrNoCurrentItem, got %v", err)
	}
	if err := s.Rectangle("missing", 0, 0, 1, 1, false); !errors.Is(err, svgdoc.ErrElementNotFound) {
		t.Fatalf("expected ErrElementNotFound, got %v", err)
	}
	if err := s.Ellipse("e", 0, 0, 1, 1, true); err != nil {
		t.Fatal(err)
	}
	if err := s.Rectangle("e", 0, 0, 1, 1, true); !errors.Is(err, svgdoc.ErrKindMismatch) {
		t.Fatalf("expected ErrKindMismatch, got %v", err)
	}
	if err := s.Rectangle("e", 0, 0, 1, 1, false); !errors.Is(err, svgdoc.ErrNotPath) {
		t.Fatalf("expected ErrNotPath, got %v", err)
	}
}

func TestParseShape(t *testing.T) {
	for name, want := range map[string]Shape{"rectangle": Rectangle, "Ellipse": Ellipse, " arrow ": Arrow} {
		got, err := ParseShape(name)
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("expected %s, got %s", want, got)
		}
	}
	if _, err := ParseShape("triangle"); !errors.Is(err, ErrInvalidShapeKind) {
		t.Fatalf("expected ErrInvalidShapeKind, got %v", err)
	}
}

func TestUpdate(t *testing.T) {
	s := newTestSession()
	if err := s.CreateObject("p", svgdoc.Path); err != nil {
		t.Fatal(err)
	}
	if s.Current() != "p" {
		t.Fatalf("unexpected current item %q", s.Current())
	}
	for _, corner := range [][2]float64{{5, 5}, {10, 10}, {20, 15}} {
		if err := s.Update(Rectangle, 0, 0, corner[0], corner[1]); err != nil {
			t.Fatal(err)
		}
	}
	if got := pathData(t, s, "p"); got != "M0,0L0,15L20,15L20,0L0,0z" {
		t.Fatalf("unexpected data %s", got)
	}
	// the element is reused
	if got := len(s.Document().Elements()); got != 1 {
		t.Fatalf("expected 1 element, got %d", got)
	}
}

func TestDeleteAndClear(t *testing.T) {
	s := newTestSession()
	s.SetColor("red")
	s.SetWidth("2px")
	if err := s.Rectangle("r", 0, 0, 1, 1, true); err != nil {
		t.Fatal(err)
	}
	e, _ := s.Document().ElementByID("r")
	if e.Attr("stroke") != "red" || e.Attr("stroke-width") != "2px" {
		t.Fatalf("style not applied: %s %s", e.Attr("stroke"), e.Attr("stroke-width"))
	}
	if err := s.Delete("r"); err != nil {
		t.Fatal(err)
	}
	if s.Current() != "" {
		t.Fatal("deleted element should not be current")
	}
	if _, err := s.Document().ElementByID("r"); !errors.Is(err, svgdoc.ErrElementNotFound) {
		t.Fatalf("expected ErrElementNotFound, got %v", err)
	}
	if err := s.Delete("r"); !errors.Is(err, svgdoc.ErrElementNotFound) {
		t.Fatalf("expected ErrElementNotFound, got %v", err)
	}

	// the container itself is not deletable
	if err := s.Delete("canvas"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Document().ElementByID("canvas"); err != nil {
		t.Fatal(err)
	}

	_ = s.Ellipse("e", 0, 0, 1, 1, true)
	_ = s.Arrow("a", 0, 0, 1, 1, true)
	s.Clear()
	if len(s.Document().Elements()) != 0 || s.Current() != "" {
		t.Fatal("expected empty document")
	}
}

func TestZeroOptions(t *testing.T) {
	s := NewSession(svgdoc.New("canvas", 100, 100), Options{})
	if err := s.Rectangle("r", 10, 10, 90, 90, true); err != nil {
		t.Fatal(err)
	}
	e, _ := s.Document().ElementByID("r")
	got := [3]string{e.Attr("stroke"), e.Attr("stroke-width"), e.Attr("fill")}
	if want := [3]string{"green", "4px", "none"}; got != want {
		t.Fatalf("expected %v, got %v", want, got)
	}

	// explicit fields are kept
	s = NewSession(svgdoc.New("canvas", 100, 100), Options{StrokeColor: "red"})
	_ = s.Ellipse("e", 0, 0, 1, 1, true)
	e, _ = s.Document().ElementByID("e")
	if e.Attr("stroke") != "red" || e.Attr("fill") != "none" {
		t.Fatalf("unexpected style %s %s", e.Attr("stroke"), e.Attr("fill"))
	}
}
