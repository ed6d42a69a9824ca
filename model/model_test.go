package model_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/lithammer/dedent"
	"gotest.tools/v3/assert"

	"github.com/trevordcampbell/zplgrid/model"
	"github.com/trevordcampbell/zplgrid/zerr"
)

func mustParse(t *testing.T, src string) *model.TemplateDocument {
	t.Helper()
	doc, err := model.Parse([]byte(dedent.Dedent(src)))
	assert.NilError(t, err)
	return doc
}

func TestParseRejectsUnknownTopLevelField(t *testing.T) {
	_, err := model.Parse([]byte(`{"schema_version":1,"name":"a","layout":{"kind":"leaf","elements":[]},"bogus":true}`))
	assert.ErrorContains(t, err, "unknown field")
}

func TestParseDecodesSplitAndLeafByKind(t *testing.T) {
	doc := mustParse(t, `
		{
		  "schema_version": 1,
		  "name": "receipt",
		  "layout": {
		    "kind": "split",
		    "direction": "v",
		    "ratio": 0.4,
		    "gutter_mm": 2,
		    "children": [
		      {"kind": "leaf", "elements": [{"type": "text", "text": "left", "font_height_mm": 3}]},
		      {"kind": "leaf", "elements": [{"type": "text", "text": "right", "font_height_mm": 3}]}
		    ]
		  }
		}
	`)
	assert.Equal(t, doc.Layout.Kind, model.NodeKindSplit)
	assert.Equal(t, doc.Layout.Split.Children[0].Kind, model.NodeKindLeaf)
	assert.Equal(t, doc.Layout.Split.Children[0].Leaf.Elements[0].Kind, model.ElementKindText)
	assert.Equal(t, doc.Layout.Split.Children[0].Leaf.Elements[0].Text.Text, "left")
}

func TestValidateRejectsUnsupportedSchemaVersion(t *testing.T) {
	doc := &model.TemplateDocument{
		SchemaVersion: 2,
		Name:          "a",
		Layout:        leafText("x"),
	}
	err := model.Validate(doc)
	var zerrErr *zerr.Error
	assert.Assert(t, errors.As(err, &zerrErr))
	assert.Equal(t, zerrErr.Kind, zerr.KindSchema)
}

func TestValidateRejectsNonIdentifierName(t *testing.T) {
	doc := &model.TemplateDocument{SchemaVersion: 1, Name: "has space", Layout: leafText("x")}
	err := model.Validate(doc)
	assert.ErrorContains(t, err, "name")
}

func TestValidateRejectsSplitRatioOutOfRange(t *testing.T) {
	doc := validDoc()
	doc.Layout.Split.Ratio = 1.0
	err := model.Validate(doc)
	assert.ErrorContains(t, err, "ratio")
}

func TestValidateRejectsDuplicateAlias(t *testing.T) {
	doc := validDoc()
	doc.Layout.Split.Children[0].Leaf.Alias = "dup"
	doc.Layout.Split.Children[1].Leaf.Alias = "dup"
	err := model.Validate(doc)
	var zerrErr *zerr.Error
	assert.Assert(t, errors.As(err, &zerrErr))
	assert.Equal(t, zerrErr.Kind, zerr.KindInvariant)
	assert.ErrorContains(t, err, "layout/")
}

func TestValidateRejectsReservedUnderscoreAlias(t *testing.T) {
	doc := validDoc()
	doc.Layout.Split.Children[0].Leaf.Alias = "_builtin"
	err := model.Validate(doc)
	assert.ErrorContains(t, err, "alias")
}

func TestValidateRejectsQRManualInputWithoutCharacterMode(t *testing.T) {
	doc := &model.TemplateDocument{
		SchemaVersion: 1,
		Name:          "qr",
		Layout: model.Node{
			Kind: model.NodeKindLeaf,
			Leaf: &model.LeafNode{Elements: []model.Element{{
				Kind: model.ElementKindQR,
				QR:   &model.QRElement{Type: model.ElementKindQR, Data: "x", InputMode: model.QRInputModeManual},
			}}},
		},
	}
	err := model.Validate(doc)
	assert.ErrorContains(t, err, "character_mode")
}

func TestValidateRejectsDataMatrixMaxSizeModeWithoutDimensions(t *testing.T) {
	doc := &model.TemplateDocument{
		SchemaVersion: 1,
		Name:          "dm",
		Layout: model.Node{
			Kind: model.NodeKindLeaf,
			Leaf: &model.LeafNode{Elements: []model.Element{{
				Kind:       model.ElementKindDataMatrix,
				DataMatrix: &model.DataMatrixElement{Type: model.ElementKindDataMatrix, Data: "x", SizeMode: model.SizeModeMax},
			}}},
		},
	}
	err := model.Validate(doc)
	assert.ErrorContains(t, err, "columns")
}

func TestResolveInheritsLeafPaddingAndTextDefaults(t *testing.T) {
	fontH := 4.0
	doc := &model.TemplateDocument{
		SchemaVersion: 1,
		Name:          "inherit",
		Defaults: &model.Defaults{
			LeafPaddingMM: &model.Padding{Top: 1, Right: 1, Bottom: 1, Left: 1},
			Text:          &model.TextDefaults{FontHeightMM: &fontH, AlignH: model.AlignHCenter},
		},
		Layout: leafText("hello"),
	}
	resolved := model.Resolve(doc)
	leaf := resolved.Leaf
	assert.Assert(t, leaf.PaddingMM != nil)
	assert.Equal(t, leaf.PaddingMM.Top, 1.0)
	text := leaf.Elements[0].Text
	// element's own explicit field always wins over the default.
	assert.Equal(t, text.FontHeightMM, 3.0)
	assert.Equal(t, text.AlignH, model.AlignHCenter)
	assert.Equal(t, text.Wrap, model.WrapNone)
}

// TestResolveMatchesHandBuiltTreeStructurally diffs the resolved tree
// against a hand-built expectation with go-cmp, which reports exactly
// which field under which path diverged rather than just pass/fail —
// useful here since LeafNode/TextElement carry many optional fields a
// plain equality check would report as one opaque mismatch.
func TestResolveMatchesHandBuiltTreeStructurally(t *testing.T) {
	fontH := 4.0
	doc := &model.TemplateDocument{
		SchemaVersion: 1,
		Name:          "inherit",
		Defaults: &model.Defaults{
			LeafPaddingMM: &model.Padding{Top: 1, Right: 1, Bottom: 1, Left: 1},
			Text:          &model.TextDefaults{FontHeightMM: &fontH, AlignH: model.AlignHCenter},
		},
		Layout: leafText("hello"),
	}
	resolved := model.Resolve(doc)

	want := &model.Node{
		Kind: model.NodeKindLeaf,
		Leaf: &model.LeafNode{
			PaddingMM: &model.Padding{Top: 1, Right: 1, Bottom: 1, Left: 1},
			Elements: []model.Element{{
				Kind: model.ElementKindText,
				Text: &model.TextElement{
					Type:         model.ElementKindText,
					Text:         "hello",
					FontHeightMM: 3, // element's own value wins over the default
					FontWidthMM:  floatPtr(3),
					Wrap:         model.WrapNone,
					Fit:          model.FitOverflow,
					MaxLines:     1,
					AlignH:       model.AlignHCenter,
					AlignV:       model.AlignVTop,
				},
			}},
		},
	}

	if diff := cmp.Diff(want, resolved); diff != "" {
		t.Fatalf("resolved tree mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveDoesNotMutateInput(t *testing.T) {
	doc := validDoc()
	before := doc.Layout.Split.Children[0].Leaf.PaddingMM
	_ = model.Resolve(doc)
	assert.Assert(t, doc.Layout.Split.Children[0].Leaf.PaddingMM == before)
}

func TestWalkVisitsDepthFirstChild0BeforeChild1(t *testing.T) {
	doc := validDoc()
	ids := model.Walk(&doc.Layout)
	assert.Equal(t, len(ids), 3)
	assert.Equal(t, ids[0].Path, "r")
	assert.Equal(t, ids[1].Path, "r/0")
	assert.Equal(t, ids[2].Path, "r/1")
}

func floatPtr(f float64) *float64 { return &f }

func leafText(text string) model.Node {
	return model.Node{
		Kind: model.NodeKindLeaf,
		Leaf: &model.LeafNode{Elements: []model.Element{{
			Kind: model.ElementKindText,
			Text: &model.TextElement{Type: model.ElementKindText, Text: text, FontHeightMM: 3},
		}}},
	}
}

func validDoc() *model.TemplateDocument {
	return &model.TemplateDocument{
		SchemaVersion: 1,
		Name:          "valid",
		Layout: model.Node{
			Kind: model.NodeKindSplit,
			Split: &model.SplitNode{
				Direction: model.DirectionVertical,
				Ratio:     0.5,
				GutterMM:  2,
				Children:  [2]model.Node{leafText("left"), leafText("right")},
			},
		},
	}
}
