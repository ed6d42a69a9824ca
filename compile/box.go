package compile

import (
	"github.com/trevordcampbell/zplgrid/layout"
	"github.com/trevordcampbell/zplgrid/model"
	"github.com/trevordcampbell/zplgrid/zerr"
)

// applyElementPadding insets content by padding_mm (converted to dots),
// mirroring the leaf-padding inset layout.Solve applies to the leaf rect
// (spec.md §4.5: "the element box inside the leaf content rect after
// element padding and min/max enforcement"). Every compile* function
// calls this before applyMaxSize.
func applyElementPadding(path string, content layout.Rect, padding *model.Padding, dpi int) (layout.Rect, error) {
	if padding == nil {
		return content, nil
	}
	top := mmToDots(padding.Top, dpi)
	right := mmToDots(padding.Right, dpi)
	bottom := mmToDots(padding.Bottom, dpi)
	left := mmToDots(padding.Left, dpi)
	inset := layout.Rect{
		X: content.X + left,
		Y: content.Y + top,
		W: content.W - left - right,
		H: content.H - top - bottom,
	}
	if inset.W < 0 || inset.H < 0 {
		return layout.Rect{}, zerr.Layout(path, "element padding leaves a negative box (%dx%d dots)", inset.W, inset.H)
	}
	return inset, nil
}

// applyMaxSize shrinks content down to max_size_mm (converted to dots)
// when set, centring the smaller box inside content (spec.md §8: "min
// and max size enforcement ... shrink-and-centre for max, fail for
// min" — the min case is enforced against the leaf content rect by
// layout.Solve and against the element-padded box by compileLeaf).
func applyMaxSize(content layout.Rect, max *model.Size, dpi int) layout.Rect {
	if max == nil {
		return content
	}
	maxW := mmToDots(max.W, dpi)
	maxH := mmToDots(max.H, dpi)
	w, h := content.W, content.H
	if maxW > 0 && w > maxW {
		w = maxW
	}
	if maxH > 0 && h > maxH {
		h = maxH
	}
	return layout.Rect{
		X: content.X + (content.W-w)/2,
		Y: content.Y + (content.H-h)/2,
		W: w,
		H: h,
	}
}

func alignOffsetH(align string, boxW, contentW int) int {
	switch align {
	case model.AlignHCenter:
		return (contentW - boxW) / 2
	case model.AlignHRight:
		return contentW - boxW
	default:
		return 0
	}
}

func alignOffsetV(align string, boxH, contentH int) int {
	switch align {
	case model.AlignVCenter:
		return (contentH - boxH) / 2
	case model.AlignVBottom:
		return contentH - boxH
	default:
		return 0
	}
}
