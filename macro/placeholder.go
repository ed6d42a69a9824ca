package macro

import (
	"strconv"
	"strings"

	"github.com/trevordcampbell/zplgrid/zerr"
)

// MissingVariablePolicy is duplicated (rather than importing model) to
// keep this package usable standalone; bind.Bind is the only caller and
// maps model.MissingVariablesPolicy onto this type at its boundary.
type MissingVariablePolicy int

const (
	PolicyError MissingVariablePolicy = iota
	PolicyEmpty
)

// Substitute implements the brace substitution grammar of spec.md §4.3
// step 2 and design note §9 ("a left-to-right scan with {{ / }} escapes,
// {name} expansion, and reject {name:spec} unless a minimal format spec is
// implemented; do not inherit any host formatter's behaviour silently").
//
// path is used only to qualify MissingVariableError / FormatError paths.
func Substitute(path, text string, vars map[string]string, policy MissingVariablePolicy) (string, error) {
	var b strings.Builder
	b.Grow(len(text))

	runes := []rune(text)
	i := 0
	for i < len(runes) {
		c := runes[i]
		switch c {
		case '{':
			if i+1 < len(runes) && runes[i+1] == '{' {
				b.WriteRune('{')
				i += 2
				continue
			}
			end := indexRune(runes, i+1, '}')
			if end == -1 {
				return "", zerr.Format(path, "unbalanced '{' at position %d", i)
			}
			inner := string(runes[i+1 : end])
			name, spec, hasSpec := strings.Cut(inner, ":")
			value, ok := vars[name]
			if !ok {
				if policy == PolicyEmpty {
					value = ""
				} else {
					return "", &zerr.MissingVariableError{Name: name, Path: path}
				}
			}
			if hasSpec {
				formatted, err := applyFormatSpec(value, spec)
				if err != nil {
					return "", zerr.Format(path, "placeholder %q: %v", inner, err)
				}
				value = formatted
			}
			b.WriteString(value)
			i = end + 1
		case '}':
			if i+1 < len(runes) && runes[i+1] == '}' {
				b.WriteRune('}')
				i += 2
				continue
			}
			return "", zerr.Format(path, "unescaped '}' at position %d", i)
		default:
			b.WriteRune(c)
			i++
		}
	}
	return b.String(), nil
}

// ScanNames returns the distinct placeholder names referenced in text,
// ignoring {{ / }} escapes and any {name:spec} format suffix. Used by
// render.Service.Print to discover which counter macros a template
// actually references, so only those scopes are committed on a
// successful print.
func ScanNames(text string) []string {
	var names []string
	seen := make(map[string]bool)
	runes := []rune(text)
	i := 0
	for i < len(runes) {
		switch runes[i] {
		case '{':
			if i+1 < len(runes) && runes[i+1] == '{' {
				i += 2
				continue
			}
			end := indexRune(runes, i+1, '}')
			if end == -1 {
				return names
			}
			inner := string(runes[i+1 : end])
			name, _, _ := strings.Cut(inner, ":")
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
			i = end + 1
		case '}':
			if i+1 < len(runes) && runes[i+1] == '}' {
				i += 2
				continue
			}
			i++
		default:
			i++
		}
	}
	return names
}

func indexRune(runes []rune, from int, target rune) int {
	for i := from; i < len(runes); i++ {
		if runes[i] == target {
			return i
		}
	}
	return -1
}

// applyFormatSpec implements the minimal format-spec grammar of
// SPEC_FULL.md §9: "upper", "lower", or "pad:<n>".
func applyFormatSpec(value, spec string) (string, error) {
	switch {
	case spec == "upper":
		return strings.ToUpper(value), nil
	case spec == "lower":
		return strings.ToLower(value), nil
	case strings.HasPrefix(spec, "pad:"):
		widthStr := strings.TrimPrefix(spec, "pad:")
		width, err := strconv.Atoi(widthStr)
		if err != nil || width < 0 {
			return "", zerr.Format("", "invalid pad width %q", widthStr)
		}
		if len(value) >= width {
			return value, nil
		}
		return strings.Repeat("0", width-len(value)) + value, nil
	default:
		return "", zerr.Format("", "unrecognised format spec %q", spec)
	}
}
