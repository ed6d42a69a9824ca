package measure_test

import (
	"testing"

	"gotest.tools/v3/assert"

	"github.com/trevordcampbell/zplgrid/measure"
)

func TestDefaultMeasureNoWrapReturnsSingleLine(t *testing.T) {
	res := measure.Default{}.Measure("hello world", 10, 20, 1000, measure.WrapNone)
	assert.Equal(t, len(res.Lines), 1)
	assert.Equal(t, res.Lines[0], "hello world")
	assert.Equal(t, res.TextH, 20)
}

func TestDefaultMeasureWordWrapBreaksOnWordBoundary(t *testing.T) {
	res := measure.Default{}.Measure("Hi World", 10, 20, 50, measure.WrapWord)
	assert.DeepEqual(t, res.Lines, []string{"Hi", "World"})
	assert.Equal(t, res.TextH, 40)
}

func TestDefaultMeasureCharWrapBreaksOnWidth(t *testing.T) {
	res := measure.Default{}.Measure("abcdef", 10, 20, 30, measure.WrapChar)
	assert.DeepEqual(t, res.Lines, []string{"abc", "def"})
}

func TestDefaultMeasureZeroWrapWidthReturnsWholeText(t *testing.T) {
	res := measure.Default{}.Measure("no wrap here", 10, 20, 0, measure.WrapWord)
	assert.Equal(t, len(res.Lines), 1)
	assert.Equal(t, res.Lines[0], "no wrap here")
}
