package layout

import "github.com/trevordcampbell/zplgrid/model"

// NodeKind mirrors model.NodeKind for the solved tree.
type NodeKind = model.NodeKind

// SplitResult is a solved split: its own rect, the gutter and optional
// divider rect, and its two solved children.
type SplitResult struct {
	Rect       Rect
	GutterX    int // gutter width in dots along the split axis
	GutterRect Rect
	Divider    *Rect
	Children   [2]*Solved
}

// LeafResult is a solved leaf: its own rect and its content rect (leaf
// rect minus padding in dots), plus the source node for downstream
// compilation.
type LeafResult struct {
	Rect        Rect
	ContentRect Rect
	Source      *model.LeafNode
}

// Solved is one node of the solved rect tree, retained in full (including
// every intermediate split rect) so debug overlays can be drawn later
// (spec.md §4.4: "the tree of intermediate rects ... are retained").
type Solved struct {
	Path  string
	Kind  NodeKind
	Split *SplitResult
	Leaf  *LeafResult
}
