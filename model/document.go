package model

// TemplateDocument is the root of a parsed v1 template (spec.md §3.1).
type TemplateDocument struct {
	SchemaVersion int       `json:"schema_version"`
	Name          string    `json:"name"`
	Defaults      *Defaults `json:"defaults,omitempty"`
	Layout        Node      `json:"layout"`
}

// SupportedSchemaVersion is the only schema_version this compiler accepts.
const SupportedSchemaVersion = 1

// MissingVariablesPolicy controls what the binder does when a placeholder
// has no matching variable (spec.md §3.4, §4.3).
type MissingVariablesPolicy string

const (
	MissingVariablesError MissingVariablesPolicy = "error"
	MissingVariablesEmpty MissingVariablesPolicy = "empty"
)

// Defaults holds top-level template defaults folded into elements by the
// DefaultsResolver (spec.md §3.4, §4.2).
type Defaults struct {
	LeafPaddingMM *Padding        `json:"leaf_padding_mm,omitempty"`
	Text          *TextDefaults   `json:"text,omitempty"`
	Code2D        *Code2DDefaults `json:"code2d,omitempty"`
	Image         *ImageDefaults  `json:"image,omitempty"`
	Render        *RenderDefaults `json:"render,omitempty"`
}

// TextDefaults is merged into every text element; the element's own
// values always win on conflict.
type TextDefaults struct {
	FontHeightMM *float64 `json:"font_height_mm,omitempty"`
	FontWidthMM  *float64 `json:"font_width_mm,omitempty"`
	Wrap         string    `json:"wrap,omitempty"`
	Fit          string    `json:"fit,omitempty"`
	MaxLines     int       `json:"max_lines,omitempty"`
	AlignH       string    `json:"align_h,omitempty"`
	AlignV       string    `json:"align_v,omitempty"`
}

// Code2DDefaults is merged into qr and datamatrix elements.
type Code2DDefaults struct {
	QuietZoneMM *float64 `json:"quiet_zone_mm,omitempty"`
	SizeMode    string    `json:"size_mode,omitempty"`
	AlignH      string    `json:"align_h,omitempty"`
	AlignV      string    `json:"align_v,omitempty"`
	RenderMode  string    `json:"render_mode,omitempty"`
}

// ImageDefaults is merged into image elements where supported.
type ImageDefaults struct {
	SizeMode   string `json:"size_mode,omitempty"`
	RenderMode string `json:"render_mode,omitempty"`
}

// RenderDefaults controls compile-wide rendering behaviour.
type RenderDefaults struct {
	MissingVariables   MissingVariablesPolicy `json:"missing_variables,omitempty"`
	EmitCI28           *bool                  `json:"emit_ci28,omitempty"`
	DebugPaddingGuides bool                   `json:"debug_padding_guides,omitempty"`
	DebugGutterGuides  bool                   `json:"debug_gutter_guides,omitempty"`
}

// RenderTarget describes the physical label and printer resolution a
// template is compiled against (spec.md §3.5).
type RenderTarget struct {
	WidthMM   float64 `json:"width_mm"`
	HeightMM  float64 `json:"height_mm"`
	DPI       int     `json:"dpi"`
	OriginXMM float64 `json:"origin_x_mm"`
	OriginYMM float64 `json:"origin_y_mm"`
}
