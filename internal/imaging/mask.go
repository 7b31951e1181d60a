package imaging

import (
	"math"

	"github.com/anthonynsimon/bild/parallel"
)

// Mask is a per-pixel blend weight grid indexed mask[y][x].
//
// A weight of 1 keeps the original pixel, 0 takes the reflected one.
type Mask [][]float64

func newMask(height, width int) Mask {
	m := make(Mask, height)
	for y := range m {
		m[y] = make([]float64, width)
	}
	return m
}

// Height returns the number of rows.
func (m Mask) Height() int { return len(m) }

// Width returns the number of columns.
func (m Mask) Width() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}

// Clone returns a deep copy of the mask.
func (m Mask) Clone() Mask {
	out := newMask(m.Height(), m.Width())
	for y := range m {
		copy(out[y], m[y])
	}
	return out
}

// DiamondMask builds the binary diamond mask for a height x width frame.
//
// A pixel (x, y) is inside the diamond when
//
//	|x - w/2| / (w*diamondSize) + |y - h/2| / (h*diamondSize) < 1
//
// so the diamond's half-diagonals are w*diamondSize and h*diamondSize. With
// diamondSize 0.5 the diamond touches the middle of every frame edge.
// A non-positive (or NaN) diamondSize yields an all-zero mask; a very large
// one yields an all-one mask.
func DiamondMask(height, width int, diamondSize float64) Mask {
	m := newMask(height, width)
	if !(diamondSize > 0) {
		return m
	}

	cx, cy := float64(width)/2, float64(height)/2
	sx, sy := float64(width)*diamondSize, float64(height)*diamondSize

	parallel.Line(height, func(start, end int) {
		for y := start; y < end; y++ {
			dy := math.Abs(float64(y)-cy) / sy
			row := m[y]
			for x := range row {
				if math.Abs(float64(x)-cx)/sx+dy < 1 {
					row[x] = 1
				}
			}
		}
	})
	return m
}

// RotateMask rotates a binary mask about its center by degrees.
//
// Each output pixel is sampled from the input with bilinear interpolation
// and then rounded back to 0 or 1, with 0.5 and above counting as inside.
// The rotated mask therefore stays binary, and only GaussianBlur softens it.
//
// Parameters:
//   - m: The mask to rotate. It is not modified.
//   - degrees: Rotation angle in degrees. Positive angles turn the mask
//     counter-clockwise as displayed (y grows downward).
//
// Returns:
//   - Mask: A new mask with the shape of m and weights in {0, 1}.
//
// # Edge Cases
//
//   - Sample positions outside the input grid read as 0, so corners
//     uncovered by the rotation are zero-filled.
//   - Multiples of 90 use exact sine and cosine; 0 and 360 reproduce the
//     input exactly.
//   - NaN and infinite angles are treated as 0.
func RotateMask(m Mask, degrees float64) Mask {
	h, w := m.Height(), m.Width()
	if degrees == 0 || math.IsNaN(degrees) || math.IsInf(degrees, 0) || h == 0 || w == 0 {
		return m.Clone()
	}

	sin, cos := sinCosDegrees(degrees)
	cy, cx := float64(h-1)/2, float64(w-1)/2

	out := newMask(h, w)
	parallel.Line(h, func(start, end int) {
		for y := start; y < end; y++ {
			dy := float64(y) - cy
			for x := 0; x < w; x++ {
				dx := float64(x) - cx
				sy := cy + cos*dy + sin*dx
				sx := cx - sin*dy + cos*dx
				if m.bilinear(sy, sx) >= insideThreshold {
					out[y][x] = 1
				}
			}
		}
	})
	return out
}

// insideThreshold is the interpolated weight at which a rotated sample
// counts as inside the mask.
const insideThreshold = 0.5

// bilinear samples the mask at a fractional position with zero outside.
func (m Mask) bilinear(fy, fx float64) float64 {
	y0, x0 := math.Floor(fy), math.Floor(fx)
	ty, tx := fy-y0, fx-x0
	iy, ix := int(y0), int(x0)

	top := m.at(iy, ix)*(1-tx) + m.at(iy, ix+1)*tx
	bottom := m.at(iy+1, ix)*(1-tx) + m.at(iy+1, ix+1)*tx
	return top*(1-ty) + bottom*ty
}

func (m Mask) at(y, x int) float64 {
	if y < 0 || y >= len(m) || x < 0 || x >= len(m[y]) {
		return 0
	}
	return m[y][x]
}

// sinCosDegrees returns sin and cos of an angle in degrees, exact at
// quarter turns.
func sinCosDegrees(degrees float64) (sin, cos float64) {
	d := math.Mod(degrees, 360)
	if d < 0 {
		d += 360
	}
	switch d {
	case 0:
		return 0, 1
	case 90:
		return 1, 0
	case 180:
		return 0, -1
	case 270:
		return -1, 0
	}
	return math.Sincos(d * math.Pi / 180)
}
