package renderer

import (
	"image"
	"image/color"
	"sync/atomic"

	"github.com/lumen-render/lumen/pkg/spectrum"
)

// Film accumulates per-pixel XYZ estimates and converts the running average
// to a display image. Workers own disjoint tiles, so accumulation needs no
// locking; the dropped counter crosses tiles and is atomic.
type Film struct {
	width   int
	height  int
	sums    []spectrum.XYZ
	counts  []int
	dropped int64
}

// NewFilm creates a film of the given resolution
func NewFilm(width, height int) *Film {
	return &Film{
		width:  width,
		height: height,
		sums:   make([]spectrum.XYZ, width*height),
		counts: make([]int, width*height),
	}
}

// Width returns the film width in pixels
func (f *Film) Width() int { return f.width }

// Height returns the film height in pixels
func (f *Film) Height() int { return f.height }

// AddSample accumulates one XYZ estimate into a pixel
func (f *Film) AddSample(x, y int, xyz spectrum.XYZ) {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return
	}
	if !xyz.IsFinite() {
		atomic.AddInt64(&f.dropped, 1)
		return
	}
	i := y*f.width + x
	f.sums[i] = f.sums[i].Add(xyz)
	f.counts[i]++
}

// DroppedSamples returns the number of non-finite estimates rejected so far
func (f *Film) DroppedSamples() int64 {
	return atomic.LoadInt64(&f.dropped)
}

// Pixel returns a pixel's accumulated XYZ average and its sample count
func (f *Film) Pixel(x, y int) (spectrum.XYZ, int) {
	i := y*f.width + x
	n := f.counts[i]
	if n == 0 {
		return spectrum.XYZ{}, 0
	}
	return f.sums[i].Scale(1.0 / float64(n)), n
}

// ToImage converts the accumulated averages to an 8-bit sRGB image
func (f *Film) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.width, f.height))
	for y := 0; y < f.height; y++ {
		for x := 0; x < f.width; x++ {
			avg, n := f.Pixel(x, y)
			var r, g, b float64
			if n > 0 {
				rgb := avg.ToRGB()
				r = spectrum.SRGBGamma(rgb.X)
				g = spectrum.SRGBGamma(rgb.Y)
				b = spectrum.SRGBGamma(rgb.Z)
			}
			img.SetRGBA(x, y, color.RGBA{
				R: toByte(r),
				G: toByte(g),
				B: toByte(b),
				A: 255,
			})
		}
	}
	return img
}

// toByte quantizes a [0,1] channel value to 8 bits
func toByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
