package compile

import (
	"strconv"
	"strings"

	"github.com/trevordcampbell/zplgrid/layout"
	"github.com/trevordcampbell/zplgrid/model"
	"github.com/trevordcampbell/zplgrid/zerr"
)

// dpiDefaultMagnification implements spec.md §4.5's "DPI-based default"
// table for size_mode=fixed when magnification is absent.
func dpiDefaultMagnification(dpi int) int {
	switch {
	case dpi >= 600:
		return 6
	case dpi >= 300:
		return 4
	default:
		return 3
	}
}

// qrModuleCountFor approximates the nominal module footprint of a
// model-2 QR symbol at magnification m. spec.md §4.5 allows this: "the
// compiler treats nominal module count per magnification step as an
// injected table". This uses the spec's informal "21 + 4·version" note at
// version 1, i.e. a fixed nominal footprint of 25 modules per
// magnification step; the data length is not taken into account.
func qrModuleCountFor(m int) int {
	return (21 + 4) * m
}

func compileQR(path string, q *model.QRElement, content layout.Rect, dpi int) (string, error) {
	content, err := applyElementPadding(path, content, q.PaddingMM, dpi)
	if err != nil {
		return "", err
	}
	box := applyMaxSize(content, q.MaxSizeMM, dpi)
	quiet := mmToDots(q.QuietZoneMM, dpi)
	s := box.W
	if box.H < s {
		s = box.H
	}
	s -= 2 * quiet
	if s <= 0 {
		return "", zerr.Layout(path, "qr inner square is non-positive after quiet zone (%d dots)", s)
	}

	var mag int
	switch q.SizeMode {
	case model.SizeModeMax:
		mag = 1
		for m := 10; m >= 1; m-- {
			if qrModuleCountFor(m) <= s {
				mag = m
				break
			}
		}
	default: // fixed
		if q.Magnification != nil {
			mag = *q.Magnification
		} else {
			mag = dpiDefaultMagnification(dpi)
		}
	}
	if mag < 1 {
		mag = 1
	}
	if mag > 10 {
		mag = 10
	}

	symbolDots := qrModuleCountFor(mag)
	if symbolDots > s {
		symbolDots = s
	}
	originX := box.X + quiet + alignOffsetH(q.AlignH, symbolDots, s)
	originY := box.Y + quiet + alignOffsetV(q.AlignV, symbolDots, s)

	mode := q.InputMode
	var data strings.Builder
	data.WriteString(q.ErrorCorrection)
	data.WriteString(mode)
	data.WriteString(",")
	if mode == model.QRInputModeManual {
		data.WriteString(q.CharacterMode)
	}
	data.WriteString(q.Data)

	var b strings.Builder
	b.WriteString(fieldOrigin(originX, originY))
	b.WriteString("^BQN,2,")
	b.WriteString(strconv.Itoa(mag))
	b.WriteString("^FD")
	b.WriteString(escapeFieldData(data.String()))
	b.WriteString("^FS\n")
	return b.String(), nil
}
