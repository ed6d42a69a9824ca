package model

import (
	"encoding/json"
	"fmt"
)

// NodeKind discriminates a layout tree Node, mirroring the teacher's
// kind-peek pattern for its own AST Node union (types.go, zpl-toolchain).
type NodeKind string

const (
	NodeKindSplit NodeKind = "split"
	NodeKindLeaf  NodeKind = "leaf"
)

// nodeHeader is decoded first to discover which variant to fully decode,
// exactly as the teacher's nodeHeader peeks "kind" before unmarshalling
// the rest of an AST node.
type nodeHeader struct {
	Kind NodeKind `json:"kind"`
}

// Node is a union type holding exactly one of Split or Leaf, selected by
// Kind. Callers switch on Kind rather than nil-checking both fields.
type Node struct {
	Kind  NodeKind
	Split *SplitNode
	Leaf  *LeafNode
}

func (n *Node) UnmarshalJSON(data []byte) error {
	var header nodeHeader
	if err := json.Unmarshal(data, &header); err != nil {
		return fmt.Errorf("node: %w", err)
	}
	n.Kind = header.Kind

	switch header.Kind {
	case NodeKindSplit:
		var s SplitNode
		if err := strictUnmarshal(data, &s); err != nil {
			return fmt.Errorf("split node: %w", err)
		}
		n.Split = &s
	case NodeKindLeaf:
		var l LeafNode
		if err := strictUnmarshal(data, &l); err != nil {
			return fmt.Errorf("leaf node: %w", err)
		}
		n.Leaf = &l
	default:
		return fmt.Errorf("node: unknown kind %q (want \"split\" or \"leaf\")", header.Kind)
	}
	return nil
}

func (n Node) MarshalJSON() ([]byte, error) {
	switch n.Kind {
	case NodeKindSplit:
		return json.Marshal(n.Split)
	case NodeKindLeaf:
		return json.Marshal(n.Leaf)
	default:
		return nil, fmt.Errorf("node: cannot marshal unset node")
	}
}

// Divider is the optional visible line centred inside a split's gutter.
type Divider struct {
	Visible      bool    `json:"visible"`
	ThicknessMM  float64 `json:"thickness_mm"`
}

// SplitNode divides a parent rectangle into exactly two children along
// Direction, separated by GutterMM.
type SplitNode struct {
	Kind       NodeKind `json:"kind"`
	Direction  string   `json:"direction"`
	Ratio      float64  `json:"ratio"`
	GutterMM   float64  `json:"gutter_mm"`
	Divider    *Divider `json:"divider,omitempty"`
	Children   [2]Node  `json:"children"`
	Alias      string   `json:"alias,omitempty"`
}

// LeafNode holds exactly one element, rendered inside its content rect
// (leaf rect minus PaddingMM).
type LeafNode struct {
	Kind        NodeKind  `json:"kind"`
	PaddingMM   *Padding  `json:"padding_mm,omitempty"`
	DebugBorder bool      `json:"debug_border,omitempty"`
	Elements    []Element `json:"elements"`
	Alias       string    `json:"alias,omitempty"`
}

const (
	DirectionVertical   = "v"
	DirectionHorizontal = "h"
)
