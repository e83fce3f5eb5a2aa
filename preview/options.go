package preview

import (
	"image/color"
	"math"

	"golang.org/x/image/colornames"
)

// DefaultClearColor is the teal background the scene viewer clears to.
var DefaultClearColor = ClearColor(0.00196, 0.23726, 0.21765, 1)

// ClearColor converts a normalized RGBA clear color to 8-bit.
// Components are clamped to [0, 1].
func ClearColor(r, g, b, a float64) color.NRGBA {
	return color.NRGBA{R: unit8(r), G: unit8(g), B: unit8(b), A: unit8(a)}
}

func unit8(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}

// Option configures Render.
type Option func(*options)

type options struct {
	scale  int
	clear  color.Color
	grid   color.Color
	labels color.Color
}

func defaultOptions() options {
	return options{
		scale: 1,
		clear: DefaultClearColor,
	}
}

// WithScale enlarges the output by an integer factor using nearest-neighbor
// sampling. Factors below 1 are ignored.
func WithScale(n int) Option {
	return func(o *options) {
		if n >= 1 {
			o.scale = n
		}
	}
}

// WithClearColor sets the background color.
func WithClearColor(c color.Color) Option {
	return func(o *options) {
		o.clear = c
	}
}

// WithGrid outlines every map cell. A nil color selects dark slate gray.
func WithGrid(c color.Color) Option {
	return func(o *options) {
		if c == nil {
			c = colornames.Darkslategray
		}
		o.grid = c
	}
}

// WithLabels prints each placement's sprite index in its cell.
// A nil color selects light yellow.
func WithLabels(c color.Color) Option {
	return func(o *options) {
		if c == nil {
			c = colornames.Lightyellow
		}
		o.labels = c
	}
}
