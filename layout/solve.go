package layout

import (
	"github.com/trevordcampbell/zplgrid/model"
	"github.com/trevordcampbell/zplgrid/zerr"
)

// Solve computes the dot-exact rect tree for root against target,
// depth-first (spec.md §4.4). root is normally the output of bind.Bind
// applied to model.Resolve's output.
func Solve(root *model.Node, target model.RenderTarget) (*Solved, error) {
	if target.DPI <= 0 {
		return nil, zerr.Layout("", "render target dpi must be positive, got %d", target.DPI)
	}
	originX := mmToDots(target.OriginXMM, target.DPI)
	originY := mmToDots(target.OriginYMM, target.DPI)
	w := mmToDots(target.WidthMM, target.DPI)
	h := mmToDots(target.HeightMM, target.DPI)
	return solveNode("r", root, Rect{X: originX, Y: originY, W: w, H: h}, target.DPI)
}

func solveNode(path string, n *model.Node, r Rect, dpi int) (*Solved, error) {
	switch n.Kind {
	case model.NodeKindSplit:
		return solveSplit(path, n.Split, r, dpi)
	case model.NodeKindLeaf:
		return solveLeaf(path, n.Leaf, r, dpi)
	default:
		return nil, zerr.Layout(path, "node has neither split nor leaf populated")
	}
}

func solveSplit(path string, s *model.SplitNode, r Rect, dpi int) (*Solved, error) {
	vertical := s.Direction == model.DirectionVertical
	length := r.W
	if !vertical {
		length = r.H
	}

	gutterDots := mmToDots(s.GutterMM, dpi)
	available := length - gutterDots
	if available < 0 {
		return nil, zerr.Layout(path, "gutter %d dots exceeds parent length %d dots", gutterDots, length)
	}

	child0Len := int(float64(available) * s.Ratio)
	child1Len := available - child0Len

	var rect0, rect1 Rect
	if vertical {
		rect0 = Rect{X: r.X, Y: r.Y, W: child0Len, H: r.H}
		rect1 = Rect{X: r.X + child0Len + gutterDots, Y: r.Y, W: child1Len, H: r.H}
	} else {
		rect0 = Rect{X: r.X, Y: r.Y, W: r.W, H: child0Len}
		rect1 = Rect{X: r.X, Y: r.Y + child0Len + gutterDots, W: r.W, H: child1Len}
	}

	var gutterRect Rect
	if vertical {
		gutterRect = Rect{X: r.X + child0Len, Y: r.Y, W: gutterDots, H: r.H}
	} else {
		gutterRect = Rect{X: r.X, Y: r.Y + child0Len, W: r.W, H: gutterDots}
	}

	var divider *Rect
	if s.Divider != nil && s.Divider.Visible {
		thickness := mmToDots(s.Divider.ThicknessMM, dpi)
		offset := (gutterDots - thickness) / 2
		if vertical {
			d := Rect{X: r.X + child0Len + offset, Y: r.Y, W: thickness, H: r.H}
			divider = &d
		} else {
			d := Rect{X: r.X, Y: r.Y + child0Len + offset, W: r.W, H: thickness}
			divider = &d
		}
	}

	child0, err := solveNode(path+"/0", &s.Children[0], rect0, dpi)
	if err != nil {
		return nil, err
	}
	child1, err := solveNode(path+"/1", &s.Children[1], rect1, dpi)
	if err != nil {
		return nil, err
	}

	return &Solved{
		Path: path,
		Kind: model.NodeKindSplit,
		Split: &SplitResult{
			Rect:       r,
			GutterX:    gutterDots,
			GutterRect: gutterRect,
			Divider:    divider,
			Children:   [2]*Solved{child0, child1},
		},
	}, nil
}

func solveLeaf(path string, l *model.LeafNode, r Rect, dpi int) (*Solved, error) {
	content := r
	if l.PaddingMM != nil {
		top := mmToDots(l.PaddingMM.Top, dpi)
		right := mmToDots(l.PaddingMM.Right, dpi)
		bottom := mmToDots(l.PaddingMM.Bottom, dpi)
		left := mmToDots(l.PaddingMM.Left, dpi)
		content = Rect{
			X: r.X + left,
			Y: r.Y + top,
			W: r.W - left - right,
			H: r.H - top - bottom,
		}
	}
	if content.W < 0 || content.H < 0 {
		return nil, zerr.Layout(path, "padding leaves a negative content rect (%dx%d dots)", content.W, content.H)
	}

	if len(l.Elements) == 1 {
		if err := checkMinSize(path, &l.Elements[0], content, dpi); err != nil {
			return nil, err
		}
	}

	return &Solved{
		Path: path,
		Kind: model.NodeKindLeaf,
		Leaf: &LeafResult{
			Rect:        r,
			ContentRect: content,
			Source:      l,
		},
	}, nil
}

// checkMinSize enforces spec.md §8 property 2: an element box below its
// own min_size_mm, once converted to dots, fails the compile. The
// element's own box (after element padding) is re-checked in the compile
// stage; this is the early, leaf-content-rect-level guard.
func checkMinSize(path string, e *model.Element, content Rect, dpi int) error {
	min := e.MinSizeMM()
	if min == nil {
		return nil
	}
	minW := mmToDots(min.W, dpi)
	minH := mmToDots(min.H, dpi)
	if content.W < minW || content.H < minH {
		return zerr.Layout(path, "content rect %dx%d dots is smaller than min_size_mm (%dx%d dots)", content.W, content.H, minW, minH)
	}
	return nil
}
