package compile

import (
	"strconv"
	"strings"

	"github.com/trevordcampbell/zplgrid/layout"
	"github.com/trevordcampbell/zplgrid/model"
	"github.com/trevordcampbell/zplgrid/zerr"
)

func compileDataMatrix(path string, d *model.DataMatrixElement, content layout.Rect, dpi int) (string, error) {
	content, err := applyElementPadding(path, content, d.PaddingMM, dpi)
	if err != nil {
		return "", err
	}
	box := applyMaxSize(content, d.MaxSizeMM, dpi)
	quiet := mmToDots(d.QuietZoneMM, dpi)
	availW := box.W - 2*quiet
	availH := box.H - 2*quiet
	if availW <= 0 || availH <= 0 {
		return "", zerr.Layout(path, "datamatrix box is non-positive after quiet zone")
	}

	moduleDots := mmToDots(d.ModuleSizeMM, dpi)
	if moduleDots < 1 {
		moduleDots = 1
	}
	columns, rows := d.Columns, d.Rows

	if d.SizeMode == model.SizeModeMax {
		if columns <= 0 || rows <= 0 {
			return "", zerr.Invariant(path, "size_mode=max requires columns and rows")
		}
		moduleDots = availW / columns
		if alt := availH / rows; alt < moduleDots {
			moduleDots = alt
		}
		if moduleDots < 1 {
			moduleDots = 1
		}
	}

	symbolW := moduleDots * columns
	symbolH := moduleDots * rows
	if columns == 0 || rows == 0 {
		symbolW, symbolH = availW, availH
	}
	originX := box.X + quiet + alignOffsetH(d.AlignH, symbolW, availW)
	originY := box.Y + quiet + alignOffsetV(d.AlignV, symbolH, availH)

	formatID := 6
	if d.FormatID != nil {
		formatID = *d.FormatID
	}

	var b strings.Builder
	b.WriteString(fieldOrigin(originX, originY))
	b.WriteString("^BXN,")
	b.WriteString(strconv.Itoa(moduleDots))
	b.WriteString(",")
	b.WriteString(strconv.Itoa(d.Quality))
	b.WriteString(",")
	b.WriteString(strconv.Itoa(columns))
	b.WriteString(",")
	b.WriteString(strconv.Itoa(rows))
	b.WriteString(",")
	b.WriteString(strconv.Itoa(formatID))
	b.WriteString(",")
	b.WriteString(d.EscapeChar)
	b.WriteString("^FD")
	b.WriteString(escapeFieldData(d.Data))
	b.WriteString("^FS\n")
	return b.String(), nil
}
