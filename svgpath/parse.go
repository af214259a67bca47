package svgpath

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// ErrSyntax is returned for malformed path data.
var ErrSyntax = errors.New("invalid path data")

// pathCursor is used while parsing path data
type pathCursor struct {
	path           Path
	points         []float64
	placeX, placeY float64 // current point
	startX, startY float64 // start of the current sub-path
	ctrlX, ctrlY   float64 // last control point, for smooth curves
	lastKey        byte
	inPath         bool
}

// Parse compiles the content of a 'd' attribute.
// Supported commands are M, L, H, V, C, S, Q, T, A and Z,
// both absolute and relative.
func Parse(d string) (Path, error) {
	var c pathCursor
	start := -1
	var key byte
	for i := 0; i < len(d); i++ {
		if !isCommand(d[i]) {
			continue
		}
		if start >= 0 {
			if err := c.addSeg(key, d[start:i]); err != nil {
				return nil, err
			}
		} else if err := checkBlank(d[:i]); err != nil {
			return nil, err
		}
		key, start = d[i], i+1
	}
	if start < 0 {
		if err := checkBlank(d); err != nil {
			return nil, err
		}
		return nil, nil
	}
	if err := c.addSeg(key, d[start:]); err != nil {
		return nil, err
	}
	return c.path, nil
}

func isCommand(b byte) bool {
	switch b {
	case 'M', 'm', 'L', 'l', 'H', 'h', 'V', 'v', 'C', 'c', 'S', 's', 'Q', 'q', 'T', 't', 'A', 'a', 'Z', 'z':
		return true
	}
	return false
}

// checkBlank makes sure nothing but separators precede the first command.
func checkBlank(s string) error {
	for i := 0; i < len(s); i++ {
		if !isSeparator(s[i]) {
			return fmt.Errorf("%w: unexpected %q", ErrSyntax, s[i])
		}
	}
	return nil
}

func isSeparator(b byte) bool {
	return b == ' ' || b == ',' || b == '\t' || b == '\n' || b == '\r'
}

// getPoints reads the numbers of a command's arguments,
// accepting the compact forms "1-2" and "0.5.5".
func (c *pathCursor) getPoints(s string) error {
	c.points = c.points[:0]
	i := 0
	for {
		for i < len(s) && isSeparator(s[i]) {
			i++
		}
		if i == len(s) {
			return nil
		}
		start := i
		if s[i] == '+' || s[i] == '-' {
			i++
		}
		digits, dot := 0, false
		for ; i < len(s); i++ {
			if s[i] >= '0' && s[i] <= '9' {
				digits++
			} else if s[i] == '.' && !dot {
				dot = true
			} else {
				break
			}
		}
		if digits == 0 {
			return fmt.Errorf("%w: bad number in %q", ErrSyntax, s)
		}
		if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
			j := i + 1
			if j < len(s) && (s[j] == '+' || s[j] == '-') {
				j++
			}
			if j < len(s) && s[j] >= '0' && s[j] <= '9' {
				for i = j; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
				}
			}
		}
		f, err := strconv.ParseFloat(s[start:i], 64)
		if err != nil {
			return fmt.Errorf("%w: %s", ErrSyntax, err)
		}
		c.points = append(c.points, f)
	}
}

// arity returns the number of arguments of a command
func arity(key byte) int {
	switch key {
	case 'Z', 'z':
		return 0
	case 'H', 'h', 'V', 'v':
		return 1
	case 'M', 'm', 'L', 'l', 'T', 't':
		return 2
	case 'S', 's', 'Q', 'q':
		return 4
	case 'C', 'c':
		return 6
	default: // 'A', 'a'
		return 7
	}
}

func (c *pathCursor) addSeg(key byte, args string) error {
	if err := c.getPoints(args); err != nil {
		return err
	}
	n := arity(key)
	if n == 0 {
		if len(c.points) != 0 {
			return fmt.Errorf("%w: arguments after %c", ErrSyntax, key)
		}
		c.closePath()
		c.lastKey = key
		return nil
	}
	if len(c.points) == 0 || len(c.points)%n != 0 {
		return fmt.Errorf("%w: %c expects a multiple of %d arguments, got %d", ErrSyntax, key, n, len(c.points))
	}
	if !c.inPath && key != 'M' && key != 'm' {
		return fmt.Errorf("%w: path must start with a move, got %c", ErrSyntax, key)
	}
	all := c.points
	for i := 0; i < len(all); i += n {
		k := key
		// subsequent pairs of a move are implicit lines
		if i > 0 && key == 'M' {
			k = 'L'
		} else if i > 0 && key == 'm' {
			k = 'l'
		}
		c.command(k, all[i:i+n])
		c.lastKey = k
	}
	return nil
}

func (c *pathCursor) closePath() {
	if !c.inPath {
		return
	}
	c.path.Stop(true)
	c.placeX, c.placeY = c.startX, c.startY
}

// command applies one command, with its arguments in p.
func (c *pathCursor) command(key byte, p []float64) {
	rel := key >= 'a' // lower case
	abs := func(x, y float64) (float64, float64) {
		if rel {
			return x + c.placeX, y + c.placeY
		}
		return x, y
	}
	smoothCtrl := func(prevKeys string) (float64, float64) {
		for i := 0; i < len(prevKeys); i++ {
			if c.lastKey == prevKeys[i] {
				return 2*c.placeX - c.ctrlX, 2*c.placeY - c.ctrlY
			}
		}
		return c.placeX, c.placeY
	}
	switch key {
	case 'M', 'm':
		x, y := abs(p[0], p[1])
		c.path.Start(ToFixed(x, y))
		c.placeX, c.placeY, c.startX, c.startY = x, y, x, y
		c.inPath = true
	case 'L', 'l':
		c.lineTo(abs(p[0], p[1]))
	case 'H', 'h':
		x := p[0]
		if rel {
			x += c.placeX
		}
		c.lineTo(x, c.placeY)
	case 'V', 'v':
		y := p[0]
		if rel {
			y += c.placeY
		}
		c.lineTo(c.placeX, y)
	case 'Q', 'q':
		x1, y1 := abs(p[0], p[1])
		x, y := abs(p[2], p[3])
		c.quadTo(x1, y1, x, y)
	case 'T', 't':
		x1, y1 := smoothCtrl("QqTt")
		x, y := abs(p[0], p[1])
		c.quadTo(x1, y1, x, y)
	case 'C', 'c':
		x1, y1 := abs(p[0], p[1])
		x2, y2 := abs(p[2], p[3])
		x, y := abs(p[4], p[5])
		c.cubicTo(x1, y1, x2, y2, x, y)
	case 'S', 's':
		x1, y1 := smoothCtrl("CcSs")
		x2, y2 := abs(p[0], p[1])
		x, y := abs(p[2], p[3])
		c.cubicTo(x1, y1, x2, y2, x, y)
	case 'A', 'a':
		x, y := abs(p[5], p[6])
		c.arcTo(p[0], p[1], p[2], p[3], p[4], x, y)
	}
}

func (c *pathCursor) lineTo(x, y float64) {
	c.path.Line(ToFixed(x, y))
	c.placeX, c.placeY = x, y
}

func (c *pathCursor) quadTo(x1, y1, x, y float64) {
	c.path.QuadBezier(ToFixed(x1, y1), ToFixed(x, y))
	c.ctrlX, c.ctrlY = x1, y1
	c.placeX, c.placeY = x, y
}

func (c *pathCursor) cubicTo(x1, y1, x2, y2, x, y float64) {
	c.path.CubeBezier(ToFixed(x1, y1), ToFixed(x2, y2), ToFixed(x, y))
	c.ctrlX, c.ctrlY = x2, y2
	c.placeX, c.placeY = x, y
}

func (c *pathCursor) arcTo(rx, ry, rot, largeArc, sweep, x, y float64) {
	if x == c.placeX && y == c.placeY {
		return // nothing to draw
	}
	rx, ry = math.Abs(rx), math.Abs(ry)
	if rx == 0 || ry == 0 {
		c.lineTo(x, y)
		return
	}
	cx, cy := findEllipseCenter(&rx, &ry, rot*math.Pi/180, c.placeX, c.placeY, x, y, sweep == 0, largeArc == 0)
	c.placeX, c.placeY = c.path.addArc([]float64{rx, ry, rot, largeArc, sweep, x, y}, cx, cy, c.placeX, c.placeY)
}
