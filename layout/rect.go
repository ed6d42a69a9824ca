// Package layout implements the recursive binary-split solver of
// spec.md §4.4: it converts a bound tree's millimetre geometry against a
// model.RenderTarget into an integer-dot rectangle tree, preserving the
// no-missing-pixel invariant (spec.md §8 property 1: child0 + gutter +
// child1 == parent on both axes).
package layout

import "github.com/trevordcampbell/zplgrid/model"

// Rect is an integer-dot rectangle, origin at top-left.
type Rect struct {
	X, Y, W, H int
}

// mmToDots converts a millimetre quantity to dots at the given DPI,
// rounding to nearest (spec.md §4.4: "dots = round(mm * dpi / 25.4)").
func mmToDots(mm float64, dpi int) int {
	return int(mm*float64(dpi)/25.4 + 0.5)
}
