package imaging

import (
	"math"

	"github.com/anthonynsimon/bild/parallel"
)

// truncate is the kernel half-width in standard deviations.
const truncate = 4.0

// tap is one weighted sample offset of a 1-D convolution kernel.
type tap struct {
	offset int
	weight float64
}

// GaussianBlur smooths a mask with an isotropic Gaussian of the given
// standard deviation in pixels.
//
// The kernel has radius int(4*sigma + 0.5) and normalized weights
// exp(-x²/(2σ²)). It is applied separably, down the columns first and then
// along the rows. Borders use symmetric reflection (d c b a | a b c d):
//
//	 reflected | frame | reflected
//	   c b a   | a b c |   c b a
//
// A sigma of zero or less returns an unblurred copy, keeping hard edges.
func GaussianBlur(m Mask, sigma float64) Mask {
	h, w := m.Height(), m.Width()
	if !(sigma > 0) || h == 0 || w == 0 {
		return m.Clone()
	}

	vertical := gaussianTaps(sigma, h)
	tmp := newMask(h, w)
	parallel.Line(h, func(start, end int) {
		for y := start; y < end; y++ {
			row := tmp[y]
			for _, t := range vertical {
				src := m[reflectIndex(y+t.offset, h)]
				for x := range row {
					row[x] += src[x] * t.weight
				}
			}
		}
	})

	horizontal := gaussianTaps(sigma, w)
	out := newMask(h, w)
	parallel.Line(h, func(start, end int) {
		for y := start; y < end; y++ {
			src, row := tmp[y], out[y]
			for x := range row {
				var sum float64
				for _, t := range horizontal {
					sum += src[reflectIndex(x+t.offset, w)] * t.weight
				}
				row[x] = sum
			}
		}
	})
	return out
}

// gaussianTaps builds the kernel for a line of n samples.
//
// Symmetric reflection repeats with period 2n, so a kernel wider than that
// is folded onto one period. Once sigma exceeds 4n the taps are
// approximated by the uniform weight 1/(2n) so that huge sigmas do not
// cost O(sigma) work. The Gaussian body folds to a flat profile there, and
// the partial period left by truncating at 4 sigma puts the exact folded
// weights within about 1e-4 of uniform, relatively.
func gaussianTaps(sigma float64, n int) []tap {
	period := 2 * n
	if sigma > 4*float64(n) {
		taps := make([]tap, period)
		for j := range taps {
			taps[j] = tap{offset: j, weight: 1 / float64(period)}
		}
		return taps
	}

	radius := int(truncate*sigma + 0.5)
	weights := make([]float64, 2*radius+1)
	var sum float64
	for i := -radius; i <= radius; i++ {
		v := math.Exp(-0.5 * float64(i*i) / (sigma * sigma))
		weights[i+radius] = v
		sum += v
	}

	if len(weights) <= period {
		taps := make([]tap, len(weights))
		for i, v := range weights {
			taps[i] = tap{offset: i - radius, weight: v / sum}
		}
		return taps
	}

	folded := make([]float64, period)
	for i, v := range weights {
		j := (i - radius) % period
		if j < 0 {
			j += period
		}
		folded[j] += v
	}
	taps := make([]tap, period)
	for j, v := range folded {
		taps[j] = tap{offset: j, weight: v / sum}
	}
	return taps
}

// reflectIndex maps any index onto [0, n) by symmetric reflection about
// the frame edges.
func reflectIndex(i, n int) int {
	if n == 1 {
		return 0
	}
	period := 2 * n
	i %= period
	if i < 0 {
		i += period
	}
	if i >= n {
		i = period - 1 - i
	}
	return i
}
