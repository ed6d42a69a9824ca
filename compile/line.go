package compile

import (
	"strconv"
	"strings"

	"github.com/trevordcampbell/zplgrid/layout"
	"github.com/trevordcampbell/zplgrid/model"
	"github.com/trevordcampbell/zplgrid/zerr"
)

func compileLine(path string, l *model.LineElement, content layout.Rect, dpi int) (string, error) {
	content, err := applyElementPadding(path, content, l.PaddingMM, dpi)
	if err != nil {
		return "", err
	}
	box := applyMaxSize(content, l.MaxSizeMM, dpi)
	thickness := mmToDots(l.ThicknessMM, dpi)
	if thickness < 1 {
		thickness = 1
	}

	var w, h, x, y int
	switch l.Orientation {
	case model.OrientationHorizontal:
		w, h = box.W, thickness
		x = box.X
		y = box.Y + lineAlignOffset(l.Align, h, box.H)
	case model.OrientationVertical:
		w, h = thickness, box.H
		x = box.X + lineAlignOffset(l.Align, w, box.W)
		y = box.Y
	default:
		return "", zerr.Schema(path, "unknown line orientation %q", l.Orientation)
	}

	var b strings.Builder
	b.WriteString(fieldOrigin(x, y))
	b.WriteString("^GB")
	b.WriteString(strconv.Itoa(w))
	b.WriteString(",")
	b.WriteString(strconv.Itoa(h))
	b.WriteString(",")
	b.WriteString(strconv.Itoa(thickness))
	b.WriteString(",B,0")
	b.WriteString("^FS\n")
	return b.String(), nil
}

// lineAlignOffset positions a bar of length barLen on the perpendicular
// axis of length axisLen, per the line element's align (spec.md §3.3 /
// §4.5: "start"/"center"/"end").
func lineAlignOffset(align string, barLen, axisLen int) int {
	switch align {
	case model.LineAlignCenter:
		return (axisLen - barLen) / 2
	case model.LineAlignEnd:
		return axisLen - barLen
	default:
		return 0
	}
}
