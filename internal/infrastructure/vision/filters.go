package vision

import (
	"image"
	"image/color"
	"slices"

	"github.com/disintegration/imaging"
)

const (
	contrastGain = 1.2
	contrastBias = 128 - 128*contrastGain // середина шкалы остаётся на месте
	sharpenSigma = 1.0
	medianRadius = 1
)

// TargetWidth ширина после увеличения: узкие снимки растягиваются до 1600,
// остальные в полтора раза, но не меньше 1200.
func TargetWidth(width int) int {
	if width < 800 {
		return 1600
	}
	return max(1200, int(float64(width)*1.5))
}

func clampUint8(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(v + 0.5)
	}
}

func linear(v uint8) uint8 {
	return clampUint8(float64(v)*contrastGain + contrastBias)
}

// stretchContrast линейно усиливает контраст каждого канала.
func stretchContrast(img image.Image) *image.NRGBA {
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		return color.NRGBA{R: linear(c.R), G: linear(c.G), B: linear(c.B), A: c.A}
	})
}

// medianFilter убирает точечный шум медианой по окну (2r+1)x(2r+1).
// Края обрабатываются повтором крайних пикселей, альфа-канал не трогается.
func medianFilter(img image.Image, radius int) *image.NRGBA {
	src := imaging.Clone(img)
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))

	side := 2*radius + 1
	window := make([]uint8, 0, side*side)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			o := y*dst.Stride + x*4
			for c := 0; c < 3; c++ {
				window = window[:0]
				for dy := -radius; dy <= radius; dy++ {
					yy := min(max(y+dy, 0), h-1)
					for dx := -radius; dx <= radius; dx++ {
						xx := min(max(x+dx, 0), w-1)
						window = append(window, src.Pix[yy*src.Stride+xx*4+c])
					}
				}
				slices.Sort(window)
				dst.Pix[o+c] = window[len(window)/2]
			}
			dst.Pix[o+3] = src.Pix[y*src.Stride+x*4+3]
		}
	}
	return dst
}

// autoLevels растягивает диапазон интенсивностей на всю шкалу 0..255.
func autoLevels(img image.Image) image.Image {
	src := imaging.Clone(img)
	lo, hi := uint8(255), uint8(0)
	for i := 0; i < len(src.Pix); i += 4 {
		for c := 0; c < 3; c++ {
			v := src.Pix[i+c]
			lo = min(lo, v)
			hi = max(hi, v)
		}
	}
	if hi <= lo {
		return src
	}

	scale := 255 / float64(hi-lo)
	level := func(v uint8) uint8 {
		return clampUint8(float64(v-lo) * scale)
	}
	return imaging.AdjustFunc(src, func(c color.NRGBA) color.NRGBA {
		return color.NRGBA{R: level(c.R), G: level(c.G), B: level(c.B), A: c.A}
	})
}
