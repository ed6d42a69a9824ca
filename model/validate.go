package model

import (
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/trevordcampbell/zplgrid/zerr"
)

// identifierPattern matches the "identifier only" rule for TemplateDocument.Name
// (spec.md §3.1): letters, digits, underscore, hyphen, must start with a
// letter or underscore. Implemented with regexp2 (rather than stdlib
// regexp) because it is the pattern library the rest of the corpus reaches
// for when a lookaround-capable, backtracking engine is wanted — here used
// for its negative-lookahead form so a single expression can also reject
// reserved macro-prefixed aliases (see aliasPattern below) without a
// second manual pass.
var identifierPattern = regexp2.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*$`, regexp2.None)

// aliasPattern additionally rejects a leading underscore, which is
// reserved for built-in macro names (spec.md §6.3 macros are all
// "_"-prefixed; letting an alias collide with that namespace would make
// alias-based lookups ambiguous with macro lookups downstream).
var aliasPattern = regexp2.MustCompile(`^(?!_)[A-Za-z][A-Za-z0-9_-]*$`, regexp2.None)

func matches(re *regexp2.Regexp, s string) bool {
	ok, err := re.MatchString(s)
	return err == nil && ok
}

// Validate runs Phase A (shape/type/enum/range) followed by Phase B
// (cross-field invariants), failing fast on the first violation with a
// path-qualified error, per spec.md §4.1.
func Validate(doc *TemplateDocument) error {
	if err := validateSchema(doc); err != nil {
		return err
	}
	return validateInvariants(doc)
}

// validateSchema is Phase A: everything expressible as a shape/type/enum/
// range check against the v1 schema.
func validateSchema(doc *TemplateDocument) error {
	if doc.SchemaVersion != SupportedSchemaVersion {
		return zerr.Schema("schema_version", "must be %d, got %d", SupportedSchemaVersion, doc.SchemaVersion)
	}
	if doc.Name == "" || !matches(identifierPattern, doc.Name) {
		return zerr.Schema("name", "must be a non-empty identifier, got %q", doc.Name)
	}
	if doc.Defaults != nil {
		if err := validateDefaultsSchema(doc.Defaults); err != nil {
			return err
		}
	}
	return validateNodeSchema("layout", &doc.Layout)
}

func validateDefaultsSchema(d *Defaults) error {
	if d.LeafPaddingMM != nil {
		if err := validatePadding("defaults/leaf_padding_mm", *d.LeafPaddingMM); err != nil {
			return err
		}
	}
	if d.Render != nil {
		switch d.Render.MissingVariables {
		case "", MissingVariablesError, MissingVariablesEmpty:
		default:
			return zerr.Schema("defaults/render/missing_variables", "must be \"error\" or \"empty\", got %q", d.Render.MissingVariables)
		}
	}
	if d.Code2D != nil && d.Code2D.SizeMode != "" {
		if err := oneOf("defaults/code2d/size_mode", d.Code2D.SizeMode, SizeModeFixed, SizeModeMax); err != nil {
			return err
		}
	}
	return nil
}

func oneOf(path, value string, allowed ...string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return zerr.Schema(path, "must be one of %v, got %q", allowed, value)
}

func validatePadding(path string, p Padding) error {
	for _, v := range []struct {
		name string
		val  float64
	}{{"top", p.Top}, {"right", p.Right}, {"bottom", p.Bottom}, {"left", p.Left}} {
		if v.val < 0 {
			return zerr.Schema(path, "%s must be >= 0, got %g", v.name, v.val)
		}
	}
	return nil
}

func validateNodeSchema(path string, n *Node) error {
	switch n.Kind {
	case NodeKindSplit:
		return validateSplitSchema(path, n.Split)
	case NodeKindLeaf:
		return validateLeafSchema(path, n.Leaf)
	default:
		return zerr.Schema(path, "node must have kind \"split\" or \"leaf\", got %q", n.Kind)
	}
}

func validateSplitSchema(path string, s *SplitNode) error {
	if err := oneOf(path+"/direction", s.Direction, DirectionVertical, DirectionHorizontal); err != nil {
		return err
	}
	if !(s.Ratio > 0 && s.Ratio < 1) {
		return zerr.Schema(path+"/ratio", "must satisfy 0 < ratio < 1, got %g", s.Ratio)
	}
	if s.GutterMM < 0 {
		return zerr.Schema(path+"/gutter_mm", "must be >= 0, got %g", s.GutterMM)
	}
	if s.Divider != nil && s.Divider.Visible && s.Divider.ThicknessMM <= 0 {
		return zerr.Schema(path+"/divider/thickness_mm", "must be > 0 when divider is visible, got %g", s.Divider.ThicknessMM)
	}
	if s.Alias != "" && !matches(aliasPattern, s.Alias) {
		return zerr.Schema(path+"/alias", "must be a non-reserved identifier, got %q", s.Alias)
	}
	for i := range s.Children {
		if err := validateNodeSchema(fmt.Sprintf("%s/children/%d", path, i), &s.Children[i]); err != nil {
			return err
		}
	}
	return nil
}

func validateLeafSchema(path string, l *LeafNode) error {
	if l.PaddingMM != nil {
		if err := validatePadding(path+"/padding_mm", *l.PaddingMM); err != nil {
			return err
		}
	}
	if l.Alias != "" && !matches(aliasPattern, l.Alias) {
		return zerr.Schema(path+"/alias", "must be a non-reserved identifier, got %q", l.Alias)
	}
	if len(l.Elements) != 1 {
		return zerr.Schema(path, "leaf must contain exactly one element, got %d", len(l.Elements))
	}
	return validateElementSchema(path+"/elements/0", &l.Elements[0])
}

func validateElementSchema(path string, e *Element) error {
	if e.MinSizeMM() != nil && e.MaxSizeMM() != nil {
		min, max := e.MinSizeMM(), e.MaxSizeMM()
		if min.W > max.W || min.H > max.H {
			return zerr.Schema(path, "min_size_mm must not exceed max_size_mm")
		}
	}
	if p := e.PaddingMM(); p != nil {
		if err := validatePadding(path+"/padding_mm", *p); err != nil {
			return err
		}
	}
	switch e.Kind {
	case ElementKindText:
		return validateTextSchema(path, e.Text)
	case ElementKindQR:
		return validateQRSchema(path, e.QR)
	case ElementKindDataMatrix:
		return validateDataMatrixSchema(path, e.DataMatrix)
	case ElementKindLine:
		return validateLineSchema(path, e.Line)
	case ElementKindImage:
		return validateImageSchema(path, e.Image)
	default:
		return zerr.Schema(path, "element must have a recognised type, got %q", e.Kind)
	}
}

func validateTextSchema(path string, t *TextElement) error {
	if t.Text == "" {
		return zerr.Schema(path+"/text", "must be non-empty")
	}
	if t.FontHeightMM <= 0 {
		return zerr.Schema(path+"/font_height_mm", "must be > 0, got %g", t.FontHeightMM)
	}
	if t.FontWidthMM != nil && *t.FontWidthMM <= 0 {
		return zerr.Schema(path+"/font_width_mm", "must be > 0, got %g", *t.FontWidthMM)
	}
	if t.Wrap != "" {
		if err := oneOf(path+"/wrap", t.Wrap, WrapNone, WrapWord, WrapChar); err != nil {
			return err
		}
	}
	if t.Fit != "" {
		if err := oneOf(path+"/fit", t.Fit, FitOverflow, FitWrap, FitShrinkToFit, FitTruncate); err != nil {
			return err
		}
	}
	if t.MaxLines != 0 && t.MaxLines < 1 {
		return zerr.Schema(path+"/max_lines", "must be >= 1, got %d", t.MaxLines)
	}
	if t.AlignH != "" {
		if err := oneOf(path+"/align_h", t.AlignH, AlignHLeft, AlignHCenter, AlignHRight); err != nil {
			return err
		}
	}
	if t.AlignV != "" {
		if err := oneOf(path+"/align_v", t.AlignV, AlignVTop, AlignVCenter, AlignVBottom); err != nil {
			return err
		}
	}
	return nil
}

func validateQRSchema(path string, q *QRElement) error {
	if q.Data == "" {
		return zerr.Schema(path+"/data", "must be non-empty")
	}
	if q.Magnification != nil && (*q.Magnification < 1 || *q.Magnification > 10) {
		return zerr.Schema(path+"/magnification", "must be in [1,10], got %d", *q.Magnification)
	}
	if q.SizeMode != "" {
		if err := oneOf(path+"/size_mode", q.SizeMode, SizeModeFixed, SizeModeMax); err != nil {
			return err
		}
	}
	if q.ErrorCorrection != "" {
		if err := oneOf(path+"/error_correction", q.ErrorCorrection, QRErrorCorrectionL, QRErrorCorrectionM, QRErrorCorrectionQ, QRErrorCorrectionH); err != nil {
			return err
		}
	}
	if q.InputMode != "" {
		if err := oneOf(path+"/input_mode", q.InputMode, QRInputModeAutomatic, QRInputModeManual); err != nil {
			return err
		}
	}
	if q.CharacterMode != "" {
		if err := oneOf(path+"/character_mode", q.CharacterMode, QRCharacterModeNumeric, QRCharacterModeAlphanumeric); err != nil {
			return err
		}
	}
	if q.QuietZoneMM < 0 {
		return zerr.Schema(path+"/quiet_zone_mm", "must be >= 0, got %g", q.QuietZoneMM)
	}
	return nil
}

func validateDataMatrixSchema(path string, d *DataMatrixElement) error {
	if d.Data == "" {
		return zerr.Schema(path+"/data", "must be non-empty")
	}
	if d.ModuleSizeMM < 0 {
		return zerr.Schema(path+"/module_size_mm", "must be > 0 when set, got %g", d.ModuleSizeMM)
	}
	if d.SizeMode != "" {
		if err := oneOf(path+"/size_mode", d.SizeMode, SizeModeFixed, SizeModeMax); err != nil {
			return err
		}
	}
	if d.Columns < 0 || d.Columns > 49 {
		return zerr.Schema(path+"/columns", "must be in [0,49], got %d", d.Columns)
	}
	if d.Rows < 0 || d.Rows > 49 {
		return zerr.Schema(path+"/rows", "must be in [0,49], got %d", d.Rows)
	}
	if d.Quality != 0 && d.Quality != 200 {
		return zerr.Schema(path+"/quality", "must be 200 (ECC200 only), got %d", d.Quality)
	}
	if d.FormatID != nil && (*d.FormatID < 0 || *d.FormatID > 6) {
		return zerr.Schema(path+"/format_id", "must be in [0,6], got %d", *d.FormatID)
	}
	if d.EscapeChar != "" && len([]rune(d.EscapeChar)) != 1 {
		return zerr.Schema(path+"/escape_char", "must be exactly one character, got %q", d.EscapeChar)
	}
	if d.QuietZoneMM < 0 {
		return zerr.Schema(path+"/quiet_zone_mm", "must be >= 0, got %g", d.QuietZoneMM)
	}
	return nil
}

func validateLineSchema(path string, l *LineElement) error {
	if err := oneOf(path+"/orientation", l.Orientation, OrientationHorizontal, OrientationVertical); err != nil {
		return err
	}
	if l.ThicknessMM <= 0 {
		return zerr.Schema(path+"/thickness_mm", "must be > 0, got %g", l.ThicknessMM)
	}
	if l.Align != "" {
		if err := oneOf(path+"/align", l.Align, LineAlignStart, LineAlignCenter, LineAlignEnd); err != nil {
			return err
		}
	}
	return nil
}

func validateImageSchema(path string, img *ImageElement) error {
	if err := oneOf(path+"/source/kind", img.Source.Kind, ImageSourcePlaceholderData, ImageSourceExternalRef); err != nil {
		return err
	}
	if img.SizeMode != "" {
		if err := oneOf(path+"/size_mode", img.SizeMode, SizeModeFixed, SizeModeMax); err != nil {
			return err
		}
	}
	if img.RenderMode != "" {
		if err := oneOf(path+"/render_mode", img.RenderMode, ImageRenderModeGraphicField, ImageRenderModeASCIIHex); err != nil {
			return err
		}
	}
	return nil
}

// MinSizeMM and MaxSizeMM expose the Common fields polymorphically so
// validateElementSchema can check them once regardless of variant.
func (e *Element) MinSizeMM() *Size {
	switch e.Kind {
	case ElementKindText:
		return e.Text.MinSizeMM
	case ElementKindQR:
		return e.QR.MinSizeMM
	case ElementKindDataMatrix:
		return e.DataMatrix.MinSizeMM
	case ElementKindLine:
		return e.Line.MinSizeMM
	case ElementKindImage:
		return e.Image.MinSizeMM
	default:
		return nil
	}
}

func (e *Element) MaxSizeMM() *Size {
	switch e.Kind {
	case ElementKindText:
		return e.Text.MaxSizeMM
	case ElementKindQR:
		return e.QR.MaxSizeMM
	case ElementKindDataMatrix:
		return e.DataMatrix.MaxSizeMM
	case ElementKindLine:
		return e.Line.MaxSizeMM
	case ElementKindImage:
		return e.Image.MaxSizeMM
	default:
		return nil
	}
}

// PaddingMM exposes each variant's own Common.PaddingMM polymorphically,
// the element-level counterpart to LeafNode.PaddingMM (spec.md §3.3: every
// element variant carries an optional padding_mm inset inside its leaf's
// content rect).
func (e *Element) PaddingMM() *Padding {
	switch e.Kind {
	case ElementKindText:
		return e.Text.PaddingMM
	case ElementKindQR:
		return e.QR.PaddingMM
	case ElementKindDataMatrix:
		return e.DataMatrix.PaddingMM
	case ElementKindLine:
		return e.Line.PaddingMM
	case ElementKindImage:
		return e.Image.PaddingMM
	default:
		return nil
	}
}

// validateInvariants is Phase B: the cross-field rules the schema cannot
// express (spec.md §3.6, §4.1).
func validateInvariants(doc *TemplateDocument) error {
	if err := validateNodeInvariants("layout", &doc.Layout); err != nil {
		return err
	}
	return validateAliasUniqueness(doc)
}

func validateNodeInvariants(path string, n *Node) error {
	switch n.Kind {
	case NodeKindSplit:
		s := n.Split
		if s.Divider != nil && s.Divider.Visible && s.GutterMM < s.Divider.ThicknessMM {
			return zerr.Invariant(path, "divider.visible requires gutter_mm (%g) >= divider.thickness_mm (%g)", s.GutterMM, s.Divider.ThicknessMM)
		}
		for i := range s.Children {
			if err := validateNodeInvariants(fmt.Sprintf("%s/children/%d", path, i), &s.Children[i]); err != nil {
				return err
			}
		}
		return nil
	case NodeKindLeaf:
		l := n.Leaf
		if len(l.Elements) != 1 {
			return zerr.Invariant(path, "leaf must contain exactly one element")
		}
		return validateElementInvariants(path+"/elements/0", &l.Elements[0])
	default:
		return nil
	}
}

func validateElementInvariants(path string, e *Element) error {
	switch e.Kind {
	case ElementKindQR:
		q := e.QR
		if q.InputMode == QRInputModeManual && q.CharacterMode == "" {
			return zerr.Invariant(path, "input_mode \"M\" requires character_mode to be set")
		}
	case ElementKindDataMatrix:
		d := e.DataMatrix
		if d.SizeMode == SizeModeMax && (d.Columns <= 0 || d.Rows <= 0) {
			return zerr.Invariant(path, "size_mode \"max\" requires both columns > 0 and rows > 0")
		}
	}
	return nil
}

func validateAliasUniqueness(doc *TemplateDocument) error {
	seen := make(map[string]string)
	for _, in := range Walk(&doc.Layout) {
		var alias string
		switch in.Node.Kind {
		case NodeKindSplit:
			alias = in.Node.Split.Alias
		case NodeKindLeaf:
			alias = in.Node.Leaf.Alias
		}
		if alias == "" {
			continue
		}
		path := "layout" + strings.TrimPrefix(in.Path, "r")
		if prior, ok := seen[alias]; ok {
			return zerr.Invariant(path, "alias %q is already used at %s", alias, prior)
		}
		seen[alias] = path
	}
	return nil
}
