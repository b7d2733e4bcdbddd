package render

import "image/color"

// Layer is a per-cell intensity mask drawn in a single colour.
type Layer struct {
	Mask  []float32
	Color color.RGBA
}
