package imaging

import "github.com/anthonynsimon/bild/parallel"

// Reflect returns the raster point-reflected through its center: pixel
// (y, x) of the result is pixel (h-1-y, w-1-x) of the input. This is the
// same as flipping both axes, or a 180 degree turn. Reflecting twice gives
// back the input exactly.
func Reflect(r *Raster) *Raster {
	out := newRaster(r.Width, r.Height, r.Channels)
	ch := r.Channels
	parallel.Line(r.Height, func(start, end int) {
		for y := start; y < end; y++ {
			src := r.Row(r.Height - 1 - y)
			dst := out.Row(y)
			for x := 0; x < r.Width; x++ {
				sx := r.Width - 1 - x
				copy(dst[x*ch:(x+1)*ch], src[sx*ch:(sx+1)*ch])
			}
		}
	})
	return out
}
