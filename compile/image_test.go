package compile

import (
	"strings"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/trevordcampbell/zplgrid/layout"
	"github.com/trevordcampbell/zplgrid/model"
)

func TestCompileImageEmitsGraphicFieldSizedToBox(t *testing.T) {
	img := &model.ImageElement{Type: model.ElementKindImage, Source: model.ImageSource{Kind: model.ImageSourcePlaceholderData}}
	field, err := compileImage("r", img, layout.Rect{X: 0, Y: 0, W: 16, H: 8}, 203)
	assert.NilError(t, err)
	// 16 dots wide -> 2 bytes/row, 8 rows -> 16 total bytes.
	assert.Assert(t, strings.Contains(field, "^GFA,16,16,2,"), field)
	assert.Assert(t, strings.HasSuffix(strings.TrimSuffix(field, "^FS\n"), strings.Repeat("00", 16)))
}

func TestCompileImageRejectsNonPositiveBox(t *testing.T) {
	img := &model.ImageElement{Type: model.ElementKindImage, Source: model.ImageSource{Kind: model.ImageSourcePlaceholderData}}
	_, err := compileImage("r", img, layout.Rect{X: 0, Y: 0, W: 0, H: 0}, 203)
	assert.ErrorContains(t, err, "non-positive")
}

func TestCompileImageASCIIHexRejectsInvalidHex(t *testing.T) {
	img := &model.ImageElement{
		Type: model.ElementKindImage, RenderMode: model.ImageRenderModeASCIIHex,
		Source: model.ImageSource{Kind: model.ImageSourcePlaceholderData, Data: "not-hex!"},
	}
	_, err := compileImage("r", img, layout.Rect{X: 0, Y: 0, W: 16, H: 8}, 203)
	assert.ErrorContains(t, err, "hex")
}

func TestCompileImageASCIIHexAcceptsValidHex(t *testing.T) {
	img := &model.ImageElement{
		Type: model.ElementKindImage, RenderMode: model.ImageRenderModeASCIIHex,
		Source: model.ImageSource{Kind: model.ImageSourcePlaceholderData, Data: "deadbeef"},
	}
	_, err := compileImage("r", img, layout.Rect{X: 0, Y: 0, W: 16, H: 8}, 203)
	assert.NilError(t, err)
}
