package assemble

import (
	"github.com/trevordcampbell/zplgrid/compile"
	"github.com/trevordcampbell/zplgrid/layout"
)

// Flags controls the optional directives and overlays the assembler
// inserts around the compiled fields (spec.md §4.6, §3.4 defaults.render).
type Flags struct {
	EmitCI28           bool
	DebugPaddingGuides bool
	DebugGutterGuides  bool
}

// Assemble wraps res's compiled fields in the ZPL start/end markers,
// the optional CI28 encoding directive, and debug overlays, producing
// the final program string (spec.md §4.6). Split dividers are genuine
// visual content (not a debug overlay) and are always drawn when
// present. Debug overlays, borders and dividers are all emitted ahead
// of the user fields, so the user fields are drawn over them.
func Assemble(res *compile.Result, flags Flags) string {
	p := &printer{}
	p.print("^XA\n")
	if flags.EmitCI28 {
		p.print("^CI28\n")
	}

	if flags.DebugGutterGuides {
		for _, r := range res.GutterGuideRects {
			writeGuide(p, r)
		}
	}
	if flags.DebugPaddingGuides {
		for _, r := range res.PaddingGuideRects {
			writeGuide(p, r)
		}
	}
	for _, r := range res.BorderRects {
		writeGuide(p, r)
	}
	for _, r := range res.DividerRects {
		writeSolidBar(p, r)
	}
	for _, field := range res.Fields {
		p.print(field)
	}

	p.print("^XZ\n")
	return string(p.output)
}

// Bytes is a convenience wrapper returning the assembled program as the
// opaque byte string spec.md §6.1 describes.
func Bytes(res *compile.Result, flags Flags) []byte {
	return []byte(Assemble(res, flags))
}

// writeGuide draws a thin one-dot outline around rect — used for
// padding/gutter debug overlays and per-leaf debug_border frames.
func writeGuide(p *printer, rect layout.Rect) {
	if rect.W <= 0 || rect.H <= 0 {
		return
	}
	p.printf("^FO%d,%d^GB%d,%d,1,B,0^FS\n", rect.X, rect.Y, rect.W, rect.H)
}

// writeSolidBar draws a filled bar for a split divider: its thickness
// already equals one of rect's two dimensions, so a border thickness
// of min(W,H) fills the whole shape solid.
func writeSolidBar(p *printer, rect layout.Rect) {
	if rect.W <= 0 || rect.H <= 0 {
		return
	}
	thickness := rect.W
	if rect.H < thickness {
		thickness = rect.H
	}
	p.printf("^FO%d,%d^GB%d,%d,%d,B,0^FS\n", rect.X, rect.Y, rect.W, rect.H, thickness)
}
