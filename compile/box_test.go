package compile

import (
	"testing"

	"gotest.tools/v3/assert"

	"github.com/trevordcampbell/zplgrid/layout"
	"github.com/trevordcampbell/zplgrid/model"
)

func TestApplyMaxSizeShrinksAndCenters(t *testing.T) {
	// 0.254mm converts to exactly 10 dots at 1000dpi, keeping the expected
	// box size an exact integer instead of depending on rounding.
	max := model.Size{W: 0.254, H: 0.254}
	box := applyMaxSize(layout.Rect{X: 0, Y: 0, W: 100, H: 50}, &max, 1000)
	wantX := (100 - 10) / 2
	wantY := (50 - 10) / 2
	assert.Equal(t, box.W, 10)
	assert.Equal(t, box.H, 10)
	assert.Equal(t, box.X, wantX)
	assert.Equal(t, box.Y, wantY)
}

func TestApplyMaxSizeNoopWhenNil(t *testing.T) {
	box := applyMaxSize(layout.Rect{X: 1, Y: 2, W: 3, H: 4}, nil, 203)
	assert.DeepEqual(t, box, layout.Rect{X: 1, Y: 2, W: 3, H: 4})
}

func TestAlignOffsetHVariants(t *testing.T) {
	assert.Equal(t, alignOffsetH(model.AlignHLeft, 10, 100), 0)
	assert.Equal(t, alignOffsetH(model.AlignHCenter, 10, 100), 45)
	assert.Equal(t, alignOffsetH(model.AlignHRight, 10, 100), 90)
}

func TestAlignOffsetVVariants(t *testing.T) {
	assert.Equal(t, alignOffsetV(model.AlignVTop, 10, 100), 0)
	assert.Equal(t, alignOffsetV(model.AlignVCenter, 10, 100), 45)
	assert.Equal(t, alignOffsetV(model.AlignVBottom, 10, 100), 90)
}
