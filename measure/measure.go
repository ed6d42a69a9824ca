// Package measure provides the injectable text-measurement capability
// spec.md §4.5 requires for wrap/fit/shrink_to_fit handling: "The
// measurer is an injectable capability so a better one can be
// substituted without touching the compiler."
package measure

import "strings"

// Measurer estimates how a string of text lays out at a given font size
// and wrap width, both expressed in dots.
type Measurer interface {
	// Measure returns the wrapped lines and an estimated total text
	// height in dots for text set at fontWidthDots x fontHeightDots,
	// wrapped (or not) at wrapWidthDots per the wrap mode.
	Measure(text string, fontWidthDots, fontHeightDots, wrapWidthDots int, wrap Wrap) Result
}

// Wrap mirrors model.TextElement's wrap modes without importing model,
// keeping this package usable by any caller that only has strings.
type Wrap int

const (
	WrapNone Wrap = iota
	WrapWord
	WrapChar
)

// Result is the outcome of a measurement pass.
type Result struct {
	Lines    []string
	TextH    int // lines * fontHeightDots
	MaxWidth int // widest line, in dots
}

// Default is a monospace-advance heuristic measurer: every glyph,
// including space, advances exactly fontWidthDots. It is deliberately
// crude — spec.md §4.5 calls this whole capability a "heuristic
// measurer loop" and expects it to be replaceable.
type Default struct{}

func (Default) Measure(text string, fontWidthDots, fontHeightDots, wrapWidthDots int, wrap Wrap) Result {
	if fontWidthDots <= 0 {
		fontWidthDots = 1
	}
	var lines []string
	switch wrap {
	case WrapNone:
		lines = strings.Split(text, "\n")
	case WrapWord:
		lines = wrapWords(text, fontWidthDots, wrapWidthDots)
	case WrapChar:
		lines = wrapChars(text, fontWidthDots, wrapWidthDots)
	default:
		lines = []string{text}
	}

	maxWidth := 0
	for _, l := range lines {
		w := len([]rune(l)) * fontWidthDots
		if w > maxWidth {
			maxWidth = w
		}
	}
	return Result{
		Lines:    lines,
		TextH:    len(lines) * fontHeightDots,
		MaxWidth: maxWidth,
	}
}

func wrapWords(text string, fontWidthDots, wrapWidthDots int) []string {
	if wrapWidthDots <= 0 {
		return []string{text}
	}
	maxChars := wrapWidthDots / fontWidthDots
	if maxChars <= 0 {
		maxChars = 1
	}
	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		var cur strings.Builder
		curLen := 0
		for _, w := range words {
			wl := len([]rune(w))
			if curLen == 0 {
				cur.WriteString(w)
				curLen = wl
				continue
			}
			if curLen+1+wl > maxChars {
				lines = append(lines, cur.String())
				cur.Reset()
				cur.WriteString(w)
				curLen = wl
				continue
			}
			cur.WriteByte(' ')
			cur.WriteString(w)
			curLen += 1 + wl
		}
		lines = append(lines, cur.String())
	}
	return lines
}

func wrapChars(text string, fontWidthDots, wrapWidthDots int) []string {
	if wrapWidthDots <= 0 {
		return []string{text}
	}
	maxChars := wrapWidthDots / fontWidthDots
	if maxChars <= 0 {
		maxChars = 1
	}
	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		runes := []rune(paragraph)
		if len(runes) == 0 {
			lines = append(lines, "")
			continue
		}
		for i := 0; i < len(runes); i += maxChars {
			end := i + maxChars
			if end > len(runes) {
				end = len(runes)
			}
			lines = append(lines, string(runes[i:end]))
		}
	}
	return lines
}
