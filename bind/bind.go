// Package bind implements the variable binder of spec.md §4.3: it builds
// the effective variable map (user variables plus built-in macros) and
// substitutes placeholders into every element field that supports it,
// producing a new tree with content fully resolved to final strings.
// Binding runs before layout so that text measurement operates on the
// final string, as spec.md §4.3 requires.
package bind

import (
	"context"
	"fmt"

	"github.com/trevordcampbell/zplgrid/macro"
	"github.com/trevordcampbell/zplgrid/model"
)

// Bind resolves vars (user-supplied, overlaid with built-in macros per
// macro.Effective) and substitutes placeholders throughout root,
// returning a new tree. root is not mutated.
func Bind(ctx context.Context, root *model.Node, mctx macro.Context, userVars map[string]string, policy model.MissingVariablesPolicy) (*model.Node, error) {
	vars, err := macro.Effective(ctx, mctx, userVars)
	if err != nil {
		return nil, err
	}
	mpolicy := macro.PolicyError
	if policy == model.MissingVariablesEmpty {
		mpolicy = macro.PolicyEmpty
	}
	return bindNode("r", root, vars, mpolicy)
}

func bindNode(path string, n *model.Node, vars map[string]string, policy macro.MissingVariablePolicy) (*model.Node, error) {
	switch n.Kind {
	case model.NodeKindSplit:
		s := *n.Split
		left, err := bindNode(path+"/0", &n.Split.Children[0], vars, policy)
		if err != nil {
			return nil, err
		}
		right, err := bindNode(path+"/1", &n.Split.Children[1], vars, policy)
		if err != nil {
			return nil, err
		}
		s.Children = [2]model.Node{*left, *right}
		return &model.Node{Kind: model.NodeKindSplit, Split: &s}, nil
	case model.NodeKindLeaf:
		l := *n.Leaf
		l.Elements = make([]model.Element, len(n.Leaf.Elements))
		for i := range n.Leaf.Elements {
			elemPath := fmt.Sprintf("%s/elements/%d", path, i)
			bound, err := bindElement(elemPath, &n.Leaf.Elements[i], vars, policy)
			if err != nil {
				return nil, err
			}
			l.Elements[i] = bound
		}
		return &model.Node{Kind: model.NodeKindLeaf, Leaf: &l}, nil
	default:
		return n, nil
	}
}

// ReferencedMacros walks root's substitutable fields (text.text, qr.data,
// datamatrix.data, image.source.data) and returns every distinct built-in
// macro name actually referenced as a placeholder. Used by the render
// service (SPEC_FULL.md §11) to discover which counter scopes a template
// touches before committing them on a successful print — counters the
// template never referenced are never incremented.
func ReferencedMacros(root *model.Node) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(s string) {
		for _, name := range macro.ScanNames(s) {
			if macro.IsBuiltin(name) && !seen[name] {
				seen[name] = true
				out = append(out, name)
			}
		}
	}
	var walk func(n *model.Node)
	walk = func(n *model.Node) {
		switch n.Kind {
		case model.NodeKindSplit:
			walk(&n.Split.Children[0])
			walk(&n.Split.Children[1])
		case model.NodeKindLeaf:
			for i := range n.Leaf.Elements {
				e := &n.Leaf.Elements[i]
				switch e.Kind {
				case model.ElementKindText:
					add(e.Text.Text)
				case model.ElementKindQR:
					add(e.QR.Data)
				case model.ElementKindDataMatrix:
					add(e.DataMatrix.Data)
				case model.ElementKindImage:
					if e.Image.Source.Kind == model.ImageSourcePlaceholderData {
						add(e.Image.Source.Data)
					}
				}
			}
		}
	}
	walk(root)
	return out
}

func bindElement(path string, e *model.Element, vars map[string]string, policy macro.MissingVariablePolicy) (model.Element, error) {
	switch e.Kind {
	case model.ElementKindText:
		t := *e.Text
		bound, err := macro.Substitute(path+"/text", t.Text, vars, policy)
		if err != nil {
			return model.Element{}, err
		}
		t.Text = bound
		return model.Element{Kind: model.ElementKindText, Text: &t}, nil
	case model.ElementKindQR:
		q := *e.QR
		bound, err := macro.Substitute(path+"/data", q.Data, vars, policy)
		if err != nil {
			return model.Element{}, err
		}
		q.Data = bound
		return model.Element{Kind: model.ElementKindQR, QR: &q}, nil
	case model.ElementKindDataMatrix:
		d := *e.DataMatrix
		bound, err := macro.Substitute(path+"/data", d.Data, vars, policy)
		if err != nil {
			return model.Element{}, err
		}
		d.Data = bound
		return model.Element{Kind: model.ElementKindDataMatrix, DataMatrix: &d}, nil
	case model.ElementKindImage:
		img := *e.Image
		if img.Source.Kind == model.ImageSourcePlaceholderData {
			bound, err := macro.Substitute(path+"/source/data", img.Source.Data, vars, policy)
			if err != nil {
				return model.Element{}, err
			}
			img.Source.Data = bound
		}
		return model.Element{Kind: model.ElementKindImage, Image: &img}, nil
	default:
		cp := *e
		return cp, nil
	}
}
