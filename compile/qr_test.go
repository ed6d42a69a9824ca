package compile

import (
	"strings"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/trevordcampbell/zplgrid/layout"
	"github.com/trevordcampbell/zplgrid/model"
)

func TestCompileQRFixedSizeUsesDPIDefaultMagnification(t *testing.T) {
	q := &model.QRElement{
		Type: model.ElementKindQR, Data: "ABC", SizeMode: model.SizeModeFixed,
		ErrorCorrection: model.QRErrorCorrectionM, InputMode: model.QRInputModeAutomatic,
	}
	field, err := compileQR("r", q, layout.Rect{X: 0, Y: 0, W: 200, H: 200}, 203)
	assert.NilError(t, err)
	assert.Assert(t, strings.Contains(field, "^BQN,2,3"), field)
	assert.Assert(t, strings.Contains(field, "^FDMA,ABC"), field)
}

func TestCompileQRMaxSizeModePicksLargestMagnificationThatFits(t *testing.T) {
	q := &model.QRElement{
		Type: model.ElementKindQR, Data: "X", SizeMode: model.SizeModeMax,
		ErrorCorrection: model.QRErrorCorrectionM, InputMode: model.QRInputModeAutomatic,
	}
	field, err := compileQR("r", q, layout.Rect{X: 0, Y: 0, W: 250, H: 250}, 203)
	assert.NilError(t, err)
	assert.Assert(t, strings.Contains(field, "^BQN,2,10^FD"), field)
}

func TestCompileQRManualInputModeEmitsCharacterMode(t *testing.T) {
	q := &model.QRElement{
		Type: model.ElementKindQR, Data: "123", SizeMode: model.SizeModeFixed,
		ErrorCorrection: model.QRErrorCorrectionQ, InputMode: model.QRInputModeManual, CharacterMode: model.QRCharacterModeNumeric,
	}
	field, err := compileQR("r", q, layout.Rect{X: 0, Y: 0, W: 200, H: 200}, 203)
	assert.NilError(t, err)
	assert.Assert(t, strings.Contains(field, "^FDQM,N123"), field)
}

func TestCompileQRRejectsBoxTooSmallForQuietZone(t *testing.T) {
	q := &model.QRElement{Type: model.ElementKindQR, Data: "X", QuietZoneMM: 10}
	_, err := compileQR("r", q, layout.Rect{X: 0, Y: 0, W: 10, H: 10}, 203)
	assert.ErrorContains(t, err, "quiet zone")
}
