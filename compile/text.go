package compile

import (
	"strconv"
	"strings"

	"github.com/trevordcampbell/zplgrid/layout"
	"github.com/trevordcampbell/zplgrid/measure"
	"github.com/trevordcampbell/zplgrid/model"
	"github.com/trevordcampbell/zplgrid/zerr"
)

func toMeasureWrap(w string) measure.Wrap {
	switch w {
	case model.WrapWord:
		return measure.WrapWord
	case model.WrapChar:
		return measure.WrapChar
	default:
		return measure.WrapNone
	}
}

func justification(alignH string) string {
	switch alignH {
	case model.AlignHCenter:
		return "C"
	case model.AlignHRight:
		return "R"
	default:
		return "L"
	}
}

// compileText implements spec.md §4.5's text fit policies: overflow,
// wrap, shrink_to_fit (a heuristic measurer loop shrinking the font by
// 0.9 each step until it fits or hits 1 dot), and truncate (first
// max_lines lines, each clipped to the box width). Every policy emits
// exactly one ZPL field: multi-line content is carried as a single
// ^FD payload with explicit line breaks encoded as "\&" (spec.md §3.3's
// "\n as a two-character escape that maps to the ZPL newline control"),
// never as separate stacked fields.
func compileText(path string, t *model.TextElement, content layout.Rect, dpi int, m measure.Measurer) (string, error) {
	content, err := applyElementPadding(path, content, t.PaddingMM, dpi)
	if err != nil {
		return "", err
	}
	box := applyMaxSize(content, t.MaxSizeMM, dpi)

	fontH := mmToDots(t.FontHeightMM, dpi)
	fontW := fontH
	if t.FontWidthMM != nil {
		fontW = mmToDots(*t.FontWidthMM, dpi)
	}
	if fontH < 1 {
		fontH = 1
	}
	if fontW < 1 {
		fontW = 1
	}

	wrapMode := toMeasureWrap(t.Wrap)
	maxLines := t.MaxLines
	if maxLines < 1 {
		maxLines = 1
	}

	var lines []string
	var lineHeight int
	emitBlock := t.Fit != model.FitOverflow

	switch t.Fit {
	case model.FitShrinkToFit:
		h, w := fontH, fontW
		for {
			res := m.Measure(t.Text, w, h, box.W, wrapMode)
			if res.TextH <= box.H || h <= 1 {
				lines = res.Lines
				lineHeight = h
				break
			}
			nh := int(float64(h) * 0.9)
			nw := int(float64(w) * 0.9)
			if nh < 1 {
				nh = 1
			}
			if nw < 1 {
				nw = 1
			}
			h, w = nh, nw
		}
		fontH, fontW = h, w
	case model.FitTruncate:
		res := m.Measure(t.Text, fontW, fontH, box.W, wrapMode)
		lines = res.Lines
		if maxLines < len(lines) {
			lines = lines[:maxLines]
		}
		maxChars := box.W / fontW
		if maxChars <= 0 {
			maxChars = 1
		}
		for i, l := range lines {
			runes := []rune(l)
			if len(runes) > maxChars {
				lines[i] = string(runes[:maxChars])
			}
		}
		lineHeight = fontH
	case model.FitWrap:
		res := m.Measure(t.Text, fontW, fontH, box.W, wrapMode)
		lines = res.Lines
		lineHeight = fontH
	default: // overflow: no block, no computed wrapping
		lines = []string{t.Text}
		lineHeight = fontH
	}
	if len(lines) == 0 {
		return "", zerr.Layout(path, "text element produced no lines")
	}

	estH := lineHeight * len(lines)
	yOffset := alignOffsetV(t.AlignV, estH, box.H)
	if yOffset < 0 {
		yOffset = 0
	}

	var b strings.Builder
	b.WriteString(fieldOrigin(box.X, box.Y+yOffset))
	b.WriteString("^A0N,")
	b.WriteString(strconv.Itoa(fontH))
	b.WriteString(",")
	b.WriteString(strconv.Itoa(fontW))
	if emitBlock {
		b.WriteString("^FB")
		b.WriteString(strconv.Itoa(box.W))
		b.WriteString(",")
		b.WriteString(strconv.Itoa(maxLines))
		b.WriteString(",0,")
		b.WriteString(justification(t.AlignH))
		b.WriteString(",0")
	}
	b.WriteString("^FD")
	b.WriteString(escapeFieldData(strings.Join(lines, "\\&")))
	b.WriteString("^FS\n")
	return b.String(), nil
}

// escapeFieldData strips ZPL's own command-prefix characters ("^" format,
// "~" immediate-command) out of user content before it is placed inside a
// ^FD payload, so substituted variable text can never be read back as a
// ZPL command, and maps a literal newline (in case one survives
// substitution unconverted) onto the "\&" carriage-return-within-^FB
// sequence ZPL's field data recognises natively.
func escapeFieldData(s string) string {
	s = strings.ReplaceAll(s, "^", "-")
	s = strings.ReplaceAll(s, "~", "-")
	s = strings.ReplaceAll(s, "\n", "\\&")
	return s
}
