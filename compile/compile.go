// Package compile implements the ElementCompiler of spec.md §4.5: given
// the solved rect tree, it dispatches on element variant and emits one
// ZPL field per element, plus collects the overlay rects the assembler
// draws for debug_padding_guides, debug_gutter_guides, and debug_border.
package compile

import (
	"fmt"

	"github.com/trevordcampbell/zplgrid/layout"
	"github.com/trevordcampbell/zplgrid/measure"
	"github.com/trevordcampbell/zplgrid/model"
	"github.com/trevordcampbell/zplgrid/zerr"
)

// Result collects everything the assembler needs: the ordered field
// bodies and the overlay rects implied by debug flags.
type Result struct {
	Fields            []string
	PaddingGuideRects []layout.Rect
	GutterGuideRects  []layout.Rect
	DividerRects      []layout.Rect
	BorderRects       []layout.Rect
}

// Compile walks solved, dispatching each leaf's single element to its
// variant compiler.
func Compile(solved *layout.Solved, dpi int, m measure.Measurer) (*Result, error) {
	if m == nil {
		m = measure.Default{}
	}
	res := &Result{}
	if err := compileNode(solved, dpi, m, res); err != nil {
		return nil, err
	}
	return res, nil
}

func compileNode(n *layout.Solved, dpi int, m measure.Measurer, res *Result) error {
	switch n.Kind {
	case model.NodeKindSplit:
		res.GutterGuideRects = append(res.GutterGuideRects, n.Split.GutterRect)
		if n.Split.Divider != nil {
			res.DividerRects = append(res.DividerRects, *n.Split.Divider)
		}
		if err := compileNode(n.Split.Children[0], dpi, m, res); err != nil {
			return err
		}
		return compileNode(n.Split.Children[1], dpi, m, res)
	case model.NodeKindLeaf:
		return compileLeaf(n, dpi, m, res)
	default:
		return zerr.Layout(n.Path, "solved node has neither split nor leaf populated")
	}
}

func compileLeaf(n *layout.Solved, dpi int, m measure.Measurer, res *Result) error {
	leaf := n.Leaf
	res.PaddingGuideRects = append(res.PaddingGuideRects, leaf.ContentRect)
	if leaf.Source.DebugBorder {
		res.BorderRects = append(res.BorderRects, leaf.ContentRect)
	}
	if len(leaf.Source.Elements) != 1 {
		return zerr.Invariant(n.Path, "leaf must contain exactly one element, got %d", len(leaf.Source.Elements))
	}

	e := &leaf.Source.Elements[0]
	box := leaf.ContentRect
	if min := e.MinSizeMM(); min != nil && e.PaddingMM() != nil {
		padded, err := applyElementPadding(n.Path, box, e.PaddingMM(), dpi)
		if err != nil {
			return err
		}
		minW, minH := mmToDots(min.W, dpi), mmToDots(min.H, dpi)
		if padded.W < minW || padded.H < minH {
			return zerr.Layout(n.Path, "element box %dx%d dots is smaller than min_size_mm (%dx%d dots)", padded.W, padded.H, minW, minH)
		}
	}
	var field string
	var err error
	switch e.Kind {
	case model.ElementKindText:
		field, err = compileText(n.Path, e.Text, box, dpi, m)
	case model.ElementKindQR:
		field, err = compileQR(n.Path, e.QR, box, dpi)
	case model.ElementKindDataMatrix:
		field, err = compileDataMatrix(n.Path, e.DataMatrix, box, dpi)
	case model.ElementKindLine:
		field, err = compileLine(n.Path, e.Line, box, dpi)
	case model.ElementKindImage:
		field, err = compileImage(n.Path, e.Image, box, dpi)
	default:
		return zerr.Unsupported(n.Path, "element kind %q is not supported", e.Kind)
	}
	if err != nil {
		return err
	}
	res.Fields = append(res.Fields, field)
	return nil
}

func mmToDots(mm float64, dpi int) int {
	return int(mm*float64(dpi)/25.4 + 0.5)
}

func fieldOrigin(x, y int) string {
	return fmt.Sprintf("^FO%d,%d", x, y)
}
