package zplgrid_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"gotest.tools/v3/assert"

	"github.com/trevordcampbell/zplgrid"
	"github.com/trevordcampbell/zplgrid/macro"
	"github.com/trevordcampbell/zplgrid/model"
	"github.com/trevordcampbell/zplgrid/zerr"
)

// qrLeftTextRight is the spec.md §8 scenario 1 fixture: a vertical split
// with a visible divider, a QR on the left and a two-line text block on
// the right.
const qrLeftTextRight = `{
  "schema_version": 1,
  "name": "asset-tag",
  "layout": {
    "kind": "split",
    "direction": "v",
    "ratio": 0.35,
    "gutter_mm": 2,
    "divider": {"visible": true, "thickness_mm": 0.3},
    "children": [
      {
        "kind": "leaf",
        "padding_mm": [1, 1, 1, 1],
        "elements": [
          {"type": "qr", "data": "{asset_id}", "size_mode": "fixed", "magnification": 4}
        ]
      },
      {
        "kind": "leaf",
        "padding_mm": [1, 1, 1, 1],
        "elements": [
          {"type": "text", "text": "{title}\n{subtitle}", "font_height_mm": 3, "wrap": "none", "fit": "overflow"}
        ]
      }
    ]
  }
}`

func mustCompile(t *testing.T, doc []byte, vars map[string]string) []byte {
	t.Helper()
	parsed, err := model.Parse(doc)
	assert.NilError(t, err)
	target := model.RenderTarget{WidthMM: 74, HeightMM: 26, DPI: 203}
	mctx := macro.Context{Now: time.Unix(0, 0), Location: time.UTC}
	out, err := zplgrid.Compile(context.Background(), parsed, target, vars, mctx, zplgrid.Flags{})
	assert.NilError(t, err)
	return out
}

func TestQRLeftTextRightScenario(t *testing.T) {
	vars := map[string]string{"asset_id": "A1", "title": "Hi", "subtitle": "World"}
	zpl := string(mustCompile(t, []byte(qrLeftTextRight), vars))

	assert.Assert(t, strings.HasPrefix(zpl, "^XA\n"), "must start with the start-of-format marker")
	assert.Assert(t, strings.HasSuffix(zpl, "^XZ\n"), "must end with the end-of-format marker")
	assert.Assert(t, strings.Contains(zpl, "^CI28"), "must contain the CI28 directive by default")
	assert.Assert(t, strings.Contains(zpl, "^BQN,2,4"), "must contain one QR field at magnification 4")
	assert.Assert(t, strings.Contains(zpl, "A1"), "QR data must carry the substituted asset id")
	assert.Assert(t, strings.Contains(zpl, "Hi\\&World"), "text field must join lines with the ZPL newline control")

	assert.Assert(t, strings.Contains(zpl, "^GB2,"), "expected the divider graphic-box at its 2-dot thickness, got body:\n%s", zpl)
}

func TestInvariantViolationGutterSmallerThanDividerThickness(t *testing.T) {
	bad := strings.Replace(qrLeftTextRight, `"gutter_mm": 2`, `"gutter_mm": 0.1`, 1)
	parsed, err := model.Parse([]byte(bad))
	assert.NilError(t, err)

	err = model.Validate(parsed)
	assert.ErrorContains(t, err, "layout")

	var zerrErr *zerr.Error
	assert.Assert(t, errors.As(err, &zerrErr))
	assert.Equal(t, zerrErr.Kind, zerr.KindInvariant)
}

func TestIdempotentCompileIsByteIdenticalAcrossRuns(t *testing.T) {
	vars := map[string]string{"asset_id": "A1", "title": "Hi", "subtitle": "World"}
	first := mustCompile(t, []byte(qrLeftTextRight), vars)
	second := mustCompile(t, []byte(qrLeftTextRight), vars)
	assert.Equal(t, string(first), string(second))
}

func TestEmitCI28TogglesDirectiveOnlyNotFields(t *testing.T) {
	on := strings.Replace(qrLeftTextRight, `"name": "asset-tag",`,
		`"name": "asset-tag", "defaults": {"render": {"emit_ci28": true}},`, 1)
	off := strings.Replace(qrLeftTextRight, `"name": "asset-tag",`,
		`"name": "asset-tag", "defaults": {"render": {"emit_ci28": false}},`, 1)
	vars := map[string]string{"asset_id": "A1", "title": "Hi", "subtitle": "World"}

	zplOn := string(mustCompile(t, []byte(on), vars))
	zplOff := string(mustCompile(t, []byte(off), vars))

	assert.Assert(t, strings.Contains(zplOn, "^CI28"))
	assert.Assert(t, !strings.Contains(zplOff, "^CI28"))

	stripCI28 := func(s string) string { return strings.ReplaceAll(s, "^CI28\n", "") }
	assert.Equal(t, stripCI28(zplOn), zplOff)
}

func TestMissingVariablePolicyErrorVsEmpty(t *testing.T) {
	parsed, err := model.Parse([]byte(qrLeftTextRight))
	assert.NilError(t, err)
	target := model.RenderTarget{WidthMM: 74, HeightMM: 26, DPI: 203}
	mctx := macro.Context{Now: time.Unix(0, 0), Location: time.UTC}

	_, err = zplgrid.Compile(context.Background(), parsed, target, map[string]string{}, mctx, zplgrid.Flags{})
	assert.ErrorContains(t, err, "missing variable")

	empty := model.MissingVariablesEmpty
	out, err := zplgrid.Compile(context.Background(), parsed, target, map[string]string{}, mctx, zplgrid.Flags{MissingVariablesOverride: &empty})
	assert.NilError(t, err)
	assert.Assert(t, strings.HasPrefix(string(out), "^XA\n"))
}

func TestCanonicalIDStableUnderRatioGutterDividerChanges(t *testing.T) {
	original := strings.Replace(qrLeftTextRight, `"ratio": 0.35`, `"ratio": 0.5`, 1)
	original = strings.Replace(original, `"gutter_mm": 2`, `"gutter_mm": 3`, 1)

	parsedA, err := model.Parse([]byte(qrLeftTextRight))
	assert.NilError(t, err)
	parsedB, err := model.Parse([]byte(original))
	assert.NilError(t, err)

	idsA := collectIDs(t, parsedA)
	idsB := collectIDs(t, parsedB)
	assert.DeepEqual(t, idsA, idsB)
}

func collectIDs(t *testing.T, doc *model.TemplateDocument) []string {
	t.Helper()
	var ids []string
	for _, in := range model.Walk(&doc.Layout) {
		ids = append(ids, in.Path)
	}
	return ids
}
