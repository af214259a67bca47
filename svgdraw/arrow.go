package svgdraw

import "math"

// arrowTip holds the offsets of the tip triangle, for an
// arrow pointing along the x axis and ending at the origin.
var arrowTip = [3][2]float64{{0, -10}, {30, 0}, {0, 10}}

// correction applied to the angle of right-to-left lines
const leftwardOffset = -90 - 1.1

// LineAngle returns the angle, in radians, used to orient the tip
// of an arrow going from (fX, fY) to (lX, lY).
// It is computed with a one argument arctangent, and shifted
// by a fixed amount when the line points to the left. Use
// PreciseLineAngle for the true direction of the line.
func LineAngle(fX, fY, lX, lY float64) float64 {
	angle := math.Atan((lY - fY) / (lX - fX))
	if lX < fX {
		angle -= leftwardOffset
	}
	return angle
}

// PreciseLineAngle returns the direction of the line from (fX, fY) to (lX, lY).
func PreciseLineAngle(fX, fY, lX, lY float64) float64 {
	return math.Atan2(lY-fY, lX-fX)
}

// TipPoints rotates the tip template by angle and translates
// it to the arrow end (lX, lY).
func TipPoints(lX, lY, angle float64) [3][2]float64 {
	sin, cos := math.Sin(angle), math.Cos(angle)
	var out [3][2]float64
	for i, p := range arrowTip {
		x, y := p[0], p[1]
		out[i] = [2]float64{lX + x*cos - y*sin, lY + x*sin + y*cos}
	}
	return out
}
