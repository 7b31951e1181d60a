package imaging

import (
	"image"

	"github.com/anthonynsimon/bild/parallel"
)

// Fixed tuning of the effect.
const (
	// BrightnessGain scales every sample before the lift.
	BrightnessGain = 0.8

	// BrightnessLift is added after scaling.
	BrightnessLift = 0.2

	// FringeShift is how many columns the fringe copy is shifted right.
	FringeShift = 3

	// FringeWeight is the share of the shifted copy in the final mix.
	FringeWeight = 0.1
)

// Params controls the diamond reflection effect.
type Params struct {
	// DiamondSize is the diamond's half-diagonal as a fraction of the frame
	// width and height. 0.5 reaches the middle of each edge.
	DiamondSize float64 `json:"diamond_size"`

	// EdgeSoftness is the Gaussian sigma, in pixels, applied to the mask.
	EdgeSoftness float64 `json:"edge_softness"`

	// Rotation turns the mask by this many degrees before softening.
	Rotation float64 `json:"rotation"`
}

// DefaultParams returns the parameters used when a caller supplies none.
func DefaultParams() Params {
	return Params{
		DiamondSize:  0.5,
		EdgeSoftness: 20,
		Rotation:     0,
	}
}

// DiamondReflection applies the diamond reflection effect to an image.
//
// Inside a diamond centered on the frame the original pixels show through;
// outside it the image's 180 degree reflection does, with a Gaussian-softened
// boundary between the two. The result is then brightened and given a faint
// horizontal color fringe.
//
// Parameters:
//   - img: Any decoded image. Its bounds need not start at (0,0).
//   - p: Effect parameters; see DefaultParams for the usual values.
//
// Returns:
//   - *image.NRGBA: A new image with the dimensions of img and bounds
//     anchored at (0,0). Opaque inputs give opaque outputs; inputs with
//     transparency have their alpha channel run through the effect too.
//
// # Parameter Handling
//
// No parameter value is rejected:
//   - DiamondSize <= 0 takes every pixel from the reflection
//   - EdgeSoftness <= 0 keeps the diamond edge hard
//   - Rotation is taken modulo 360
func DiamondReflection(img image.Image, p Params) *image.NRGBA {
	return ApplyRaster(NewRaster(img), p).Image()
}

// ApplyRaster runs the full effect on a normalized raster and returns a new
// raster. src is not modified.
func ApplyRaster(src *Raster, p Params) *Raster {
	mask := DiamondMask(src.Height, src.Width, p.DiamondSize)
	if p.Rotation != 0 {
		mask = RotateMask(mask, p.Rotation)
	}
	soft := GaussianBlur(mask, p.EdgeSoftness)

	out := Blend(src, Reflect(src), soft)
	Tone(out)
	return Fringe(out)
}

// Blend mixes two rasters of equal shape through a mask:
// original*m + reflected*(1-m), with m broadcast over channels.
func Blend(original, reflected *Raster, mask Mask) *Raster {
	out := newRaster(original.Width, original.Height, original.Channels)
	ch := original.Channels
	parallel.Line(original.Height, func(start, end int) {
		for y := start; y < end; y++ {
			o, r, dst := original.Row(y), reflected.Row(y), out.Row(y)
			weights := mask[y]
			for x, m := range weights {
				for c := x * ch; c < (x+1)*ch; c++ {
					dst[c] = o[c]*m + r[c]*(1-m)
				}
			}
		}
	})
	return out
}

// Tone applies the brightness lift v*0.8 + 0.2 in place and clamps every
// sample to [0,1].
func Tone(r *Raster) {
	parallel.Line(r.Height, func(start, end int) {
		for y := start; y < end; y++ {
			row := r.Row(y)
			for i, v := range row {
				row[i] = clampUnit(v*BrightnessGain + BrightnessLift)
			}
		}
	})
}

// Fringe blends the raster with a copy of itself shifted FringeShift
// columns to the right, wrapping the rightmost columns around to the left:
// out[x] = v[x]*0.9 + v[(x-3) mod w]*0.1. Inputs in [0,1] stay in [0,1],
// so no clamp follows.
func Fringe(r *Raster) *Raster {
	if r.Width == 0 {
		return r.Clone()
	}
	out := newRaster(r.Width, r.Height, r.Channels)
	ch := r.Channels
	shift := FringeShift % r.Width
	parallel.Line(r.Height, func(start, end int) {
		for y := start; y < end; y++ {
			src, dst := r.Row(y), out.Row(y)
			for x := 0; x < r.Width; x++ {
				sx := (x - shift + r.Width) % r.Width
				for c := 0; c < ch; c++ {
					dst[x*ch+c] = src[x*ch+c]*(1-FringeWeight) + src[sx*ch+c]*FringeWeight
				}
			}
		}
	})
	return out
}

// clampUnit constrains a sample to [0, 1].
func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
