package svgdraw

import (
	"github.com/benoitkugler/drawsvg"
	"github.com/benoitkugler/drawsvg/svgdoc"
	"github.com/benoitkugler/drawsvg/svgpath"
)

// DefaultLineTicks is the number of pointer events between
// two emitted segments of a freehand line.
const DefaultLineTicks = 10

// Liner throttles the points of a freehand line: only
// one tick out of threshold lets a point through.
// The zero value uses DefaultLineTicks.
type Liner struct {
	counter   int
	threshold int
}

// NewLiner returns a liner emitting every threshold ticks.
// A threshold below 1 is replaced by DefaultLineTicks.
func NewLiner(threshold int) Liner {
	if threshold < 1 {
		threshold = DefaultLineTicks
	}
	return Liner{threshold: threshold}
}

// Tick counts one event and reports whether a point
// should be emitted, in which case the counter is reset.
func (l *Liner) Tick() bool {
	if l.threshold < 1 {
		l.threshold = DefaultLineTicks
	}
	l.counter++
	if l.counter < l.threshold {
		return false
	}
	l.counter = 0
	return true
}

// Stroke is one freehand line, drawn into an existing path.
// Strokes are independent: each one owns its throttle state.
type Stroke struct {
	doc   *svgdoc.Document
	paths svgpath.Accumulator
	id    string
	liner Liner
}

// ID returns the identifier of the path drawn into.
func (st *Stroke) ID() string { return st.id }

// Point feeds a pointer position. Once every threshold calls,
// the position is added to the path: as a move if the path
// is still empty, as a line otherwise.
func (st *Stroke) Point(x, y float64) error {
	if !st.liner.Tick() {
		return nil
	}
	data, err := st.doc.PathData(st.id)
	if err != nil {
		return err
	}
	if data == "" {
		err = st.paths.MoveTo(st.id, x, y)
	} else {
		err = st.paths.LineTo(st.id, x, y)
	}
	if err != nil {
		return err
	}
	drawsvg.Logger().Debug("freehand point", "id", st.id, "x", x, "y", y, "move", data == "")
	return nil
}
