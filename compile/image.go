package compile

import (
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/trevordcampbell/zplgrid/layout"
	"github.com/trevordcampbell/zplgrid/model"
	"github.com/trevordcampbell/zplgrid/zerr"
)

// compileImage implements the supplemented image element of
// SPEC_FULL.md §10.2. Real halftone rasterization lives outside this
// module's scope (the preview service is an external collaborator), so
// this emits a well-formed ^GFA placeholder frame sized to the computed
// box with a zero-filled bitmap, reserving layout space without claiming
// to render pixel content.
func compileImage(path string, img *model.ImageElement, content layout.Rect, dpi int) (string, error) {
	content, err := applyElementPadding(path, content, img.PaddingMM, dpi)
	if err != nil {
		return "", err
	}
	box := applyMaxSize(content, img.MaxSizeMM, dpi)
	if box.W <= 0 || box.H <= 0 {
		return "", zerr.Layout(path, "image box is non-positive (%dx%d dots)", box.W, box.H)
	}

	if img.RenderMode == model.ImageRenderModeASCIIHex && img.Source.Kind == model.ImageSourcePlaceholderData && img.Source.Data != "" {
		if _, err := hex.DecodeString(img.Source.Data); err != nil {
			return "", zerr.Unsupported(path, "render_mode=ascii_hex requires source.data to be valid hex: %v", err)
		}
	}

	bytesPerRow := (box.W + 7) / 8
	totalBytes := bytesPerRow * box.H

	var b strings.Builder
	b.WriteString(fieldOrigin(box.X, box.Y))
	b.WriteString("^GFA,")
	b.WriteString(strconv.Itoa(totalBytes))
	b.WriteString(",")
	b.WriteString(strconv.Itoa(totalBytes))
	b.WriteString(",")
	b.WriteString(strconv.Itoa(bytesPerRow))
	b.WriteString(",")
	b.WriteString(strings.Repeat("00", totalBytes))
	b.WriteString("^FS\n")
	return b.String(), nil
}
