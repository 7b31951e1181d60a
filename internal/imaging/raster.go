package imaging

import (
	"image"

	"github.com/anthonynsimon/bild/parallel"
	"github.com/disintegration/imaging"
)

// Raster is a normalized image buffer.
//
// Samples are stored row-major, Channels samples per pixel, each in [0,1].
// A 3-channel raster holds R, G, B; a 4-channel raster also holds
// non-premultiplied alpha, which the effect processes like any other channel.
type Raster struct {
	// Width is the raster width in pixels.
	Width int

	// Height is the raster height in pixels.
	Height int

	// Channels is 3 (RGB) or 4 (RGBA).
	Channels int

	// Pix holds Height*Width*Channels samples.
	Pix []float64
}

func newRaster(width, height, channels int) *Raster {
	return &Raster{
		Width:    width,
		Height:   height,
		Channels: channels,
		Pix:      make([]float64, width*height*channels),
	}
}

// NewRaster converts an image into a normalized raster.
//
// Any image.Image is accepted; it is first converted to 8-bit NRGBA. Images
// that report Opaque become 3-channel rasters, all others 4-channel. The raster is anchored at (0,0) whatever the source bounds.
func NewRaster(img image.Image) *Raster {
	channels := channelCount(img)
	src := imaging.Clone(img)
	bounds := src.Bounds()

	r := newRaster(bounds.Dx(), bounds.Dy(), channels)
	parallel.Line(r.Height, func(start, end int) {
		for y := start; y < end; y++ {
			in := src.Pix[y*src.Stride:]
			out := r.Row(y)
			for x := 0; x < r.Width; x++ {
				for c := 0; c < channels; c++ {
					out[x*channels+c] = float64(in[x*4+c]) / 255
				}
			}
		}
	})
	return r
}

// channelCount is 3 for images that report themselves opaque and 4 for
// everything else, including image types without an Opaque method.
func channelCount(img image.Image) int {
	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		return 3
	}
	return 4
}

// Row returns the samples of row y. The slice aliases Pix.
func (r *Raster) Row(y int) []float64 {
	stride := r.Width * r.Channels
	return r.Pix[y*stride : (y+1)*stride]
}

// Clone returns a deep copy of the raster.
func (r *Raster) Clone() *Raster {
	out := newRaster(r.Width, r.Height, r.Channels)
	copy(out.Pix, r.Pix)
	return out
}

// Image scales the raster back to 8 bits and returns it as NRGBA.
//
// Samples are multiplied by 255 and truncated toward zero; values outside
// [0,1] saturate. 3-channel rasters produce fully opaque pixels.
func (r *Raster) Image() *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, r.Width, r.Height))
	parallel.Line(r.Height, func(start, end int) {
		for y := start; y < end; y++ {
			in := r.Row(y)
			out := dst.Pix[y*dst.Stride:]
			for x := 0; x < r.Width; x++ {
				for c := 0; c < r.Channels; c++ {
					out[x*4+c] = toByte(in[x*r.Channels+c])
				}
				if r.Channels == 3 {
					out[x*4+3] = 0xff
				}
			}
		}
	})
	return dst
}

// toByte converts a normalized sample to 8 bits by truncation.
func toByte(v float64) uint8 {
	v *= 255
	if !(v > 0) {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
