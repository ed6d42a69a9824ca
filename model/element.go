package model

import (
	"encoding/json"
	"fmt"
)

// ElementKind discriminates the closed sum type of leaf elements (design
// note §9: "represent as a closed sum type over {text, qr, datamatrix,
// line, image}, discriminated by type").
type ElementKind string

const (
	ElementKindText       ElementKind = "text"
	ElementKindQR         ElementKind = "qr"
	ElementKindDataMatrix ElementKind = "datamatrix"
	ElementKindLine       ElementKind = "line"
	ElementKindImage      ElementKind = "image"
)

type elementHeader struct {
	Type ElementKind `json:"type"`
}

// Element is a union type holding exactly one populated variant, selected
// by Kind.
type Element struct {
	Kind       ElementKind
	Text       *TextElement
	QR         *QRElement
	DataMatrix *DataMatrixElement
	Line       *LineElement
	Image      *ImageElement
}

func (e *Element) UnmarshalJSON(data []byte) error {
	var header elementHeader
	if err := json.Unmarshal(data, &header); err != nil {
		return fmt.Errorf("element: %w", err)
	}
	e.Kind = header.Type

	switch header.Type {
	case ElementKindText:
		var t TextElement
		if err := strictUnmarshal(data, &t); err != nil {
			return fmt.Errorf("text element: %w", err)
		}
		e.Text = &t
	case ElementKindQR:
		var q QRElement
		if err := strictUnmarshal(data, &q); err != nil {
			return fmt.Errorf("qr element: %w", err)
		}
		e.QR = &q
	case ElementKindDataMatrix:
		var d DataMatrixElement
		if err := strictUnmarshal(data, &d); err != nil {
			return fmt.Errorf("datamatrix element: %w", err)
		}
		e.DataMatrix = &d
	case ElementKindLine:
		var l LineElement
		if err := strictUnmarshal(data, &l); err != nil {
			return fmt.Errorf("line element: %w", err)
		}
		e.Line = &l
	case ElementKindImage:
		var img ImageElement
		if err := strictUnmarshal(data, &img); err != nil {
			return fmt.Errorf("image element: %w", err)
		}
		e.Image = &img
	default:
		return fmt.Errorf("element: unknown type %q", header.Type)
	}
	return nil
}

func (e Element) MarshalJSON() ([]byte, error) {
	switch e.Kind {
	case ElementKindText:
		return json.Marshal(e.Text)
	case ElementKindQR:
		return json.Marshal(e.QR)
	case ElementKindDataMatrix:
		return json.Marshal(e.DataMatrix)
	case ElementKindLine:
		return json.Marshal(e.Line)
	case ElementKindImage:
		return json.Marshal(e.Image)
	default:
		return nil, fmt.Errorf("element: cannot marshal unset element")
	}
}

// Common holds the fields shared by every element variant (spec.md §3.3).
type Common struct {
	ID         string                     `json:"id,omitempty"`
	PaddingMM  *Padding                   `json:"padding_mm,omitempty"`
	MinSizeMM  *Size                      `json:"min_size_mm,omitempty"`
	MaxSizeMM  *Size                      `json:"max_size_mm,omitempty"`
	Extensions map[string]json.RawMessage `json:"extensions,omitempty"`
}

// TextElement renders a (possibly substituted, possibly wrapped/shrunk)
// string.
type TextElement struct {
	Type ElementKind `json:"type"`
	Common
	Text         string   `json:"text"`
	FontHeightMM float64  `json:"font_height_mm"`
	FontWidthMM  *float64 `json:"font_width_mm,omitempty"`
	Wrap         string   `json:"wrap,omitempty"`
	Fit          string   `json:"fit,omitempty"`
	MaxLines     int      `json:"max_lines,omitempty"`
	AlignH       string   `json:"align_h,omitempty"`
	AlignV       string   `json:"align_v,omitempty"`
}

const (
	WrapNone = "none"
	WrapWord = "word"
	WrapChar = "char"

	FitOverflow     = "overflow"
	FitWrap         = "wrap"
	FitShrinkToFit  = "shrink_to_fit"
	FitTruncate     = "truncate"

	AlignHLeft   = "left"
	AlignHCenter = "center"
	AlignHRight  = "right"

	AlignVTop    = "top"
	AlignVCenter = "center"
	AlignVBottom = "bottom"
)

// QRElement renders a model-2 QR Code symbol.
type QRElement struct {
	Type ElementKind `json:"type"`
	Common
	Data            string   `json:"data"`
	Magnification   *int     `json:"magnification,omitempty"`
	SizeMode        string   `json:"size_mode,omitempty"`
	ErrorCorrection string   `json:"error_correction,omitempty"`
	InputMode       string   `json:"input_mode,omitempty"`
	CharacterMode   string   `json:"character_mode,omitempty"`
	QuietZoneMM     float64  `json:"quiet_zone_mm,omitempty"`
	AlignH          string   `json:"align_h,omitempty"`
	AlignV          string   `json:"align_v,omitempty"`
}

const (
	SizeModeFixed = "fixed"
	SizeModeMax   = "max"

	QRErrorCorrectionL = "L"
	QRErrorCorrectionM = "M"
	QRErrorCorrectionQ = "Q"
	QRErrorCorrectionH = "H"

	QRInputModeAutomatic = "A"
	QRInputModeManual    = "M"

	QRCharacterModeNumeric      = "N"
	QRCharacterModeAlphanumeric = "A"
)

// DataMatrixElement renders an ECC200 DataMatrix symbol.
type DataMatrixElement struct {
	Type ElementKind `json:"type"`
	Common
	Data         string  `json:"data"`
	ModuleSizeMM float64 `json:"module_size_mm,omitempty"`
	SizeMode     string  `json:"size_mode,omitempty"`
	Columns      int     `json:"columns,omitempty"`
	Rows         int     `json:"rows,omitempty"`
	Quality      int     `json:"quality,omitempty"`
	FormatID     *int    `json:"format_id,omitempty"`
	EscapeChar   string  `json:"escape_char,omitempty"`
	QuietZoneMM  float64 `json:"quiet_zone_mm,omitempty"`
	AlignH       string  `json:"align_h,omitempty"`
	AlignV       string  `json:"align_v,omitempty"`
}

// LineElement renders a solid graphic-box bar, horizontal or vertical.
type LineElement struct {
	Type ElementKind `json:"type"`
	Common
	Orientation string  `json:"orientation"`
	ThicknessMM float64 `json:"thickness_mm"`
	Align       string  `json:"align,omitempty"`
}

const (
	OrientationHorizontal = "h"
	OrientationVertical   = "v"

	LineAlignStart  = "start"
	LineAlignCenter = "center"
	LineAlignEnd    = "end"
)

// ImageSource selects where image bytes come from (SPEC_FULL.md §10.2).
type ImageSource struct {
	Kind string `json:"kind"`
	Data string `json:"data,omitempty"`
}

const (
	ImageSourcePlaceholderData = "placeholder_data"
	ImageSourceExternalRef     = "external_ref"

	ImageRenderModeGraphicField = "graphic_field"
	ImageRenderModeASCIIHex     = "ascii_hex"
)

// ImageElement renders a placeholder graphic-field frame reserving the
// computed box (SPEC_FULL.md §10.2 — full rasterization is out of scope).
type ImageElement struct {
	Type ElementKind `json:"type"`
	Common
	Source     ImageSource `json:"source"`
	SizeMode   string      `json:"size_mode,omitempty"`
	RenderMode string      `json:"render_mode,omitempty"`
}
