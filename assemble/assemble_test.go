package assemble

import (
	"strings"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/trevordcampbell/zplgrid/compile"
	"github.com/trevordcampbell/zplgrid/layout"
)

func TestAssembleWrapsFieldsInStartEndMarkersAndOmitsCI28ByDefault(t *testing.T) {
	res := &compile.Result{Fields: []string{"^FO0,0^FDhi^FS\n"}}
	out := Assemble(res, Flags{})
	assert.Assert(t, strings.HasPrefix(out, "^XA\n"))
	assert.Assert(t, strings.HasSuffix(out, "^XZ\n"))
	assert.Assert(t, !strings.Contains(out, "^CI28"))
	assert.Assert(t, strings.Contains(out, "^FDhi^FS"))
}

func TestAssembleEmitsCI28WhenFlagSet(t *testing.T) {
	res := &compile.Result{Fields: []string{"^FO0,0^FDhi^FS\n"}}
	out := Assemble(res, Flags{EmitCI28: true})
	assert.Assert(t, strings.Contains(out, "^CI28\n"))
}

func TestAssembleDrawsDividersAheadOfFields(t *testing.T) {
	res := &compile.Result{
		DividerRects: []layout.Rect{{X: 0, Y: 0, W: 2, H: 50}},
		Fields:       []string{"^FO10,10^FDfield^FS\n"},
	}
	out := Assemble(res, Flags{})
	dividerPos := strings.Index(out, "^GB2,50,2,B,0")
	fieldPos := strings.Index(out, "^FDfield")
	assert.Assert(t, dividerPos >= 0 && fieldPos >= 0 && dividerPos < fieldPos)
}

func TestAssembleDrawsDebugOverlaysOnlyWhenFlagged(t *testing.T) {
	res := &compile.Result{
		PaddingGuideRects: []layout.Rect{{X: 0, Y: 0, W: 10, H: 10}},
		GutterGuideRects:  []layout.Rect{{X: 5, Y: 5, W: 2, H: 10}},
	}
	out := Assemble(res, Flags{})
	assert.Equal(t, out, "^XA\n^XZ\n")

	out = Assemble(res, Flags{DebugPaddingGuides: true, DebugGutterGuides: true})
	assert.Assert(t, strings.Contains(out, "^FO0,0^GB10,10,1,B,0^FS"))
	assert.Assert(t, strings.Contains(out, "^FO5,5^GB2,10,1,B,0^FS"))
}

func TestAssembleSkipsZeroSizeGuideRects(t *testing.T) {
	res := &compile.Result{BorderRects: []layout.Rect{{X: 0, Y: 0, W: 0, H: 0}}}
	out := Assemble(res, Flags{})
	assert.Equal(t, out, "^XA\n^XZ\n")
}

func TestBytesMatchesAssembleString(t *testing.T) {
	res := &compile.Result{Fields: []string{"^FO0,0^FDhi^FS\n"}}
	assert.Equal(t, string(Bytes(res, Flags{})), Assemble(res, Flags{}))
}
