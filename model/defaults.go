package model

// Resolve performs the top-down defaults walk described by spec.md §4.2:
// leaves without padding inherit defaults.leaf_padding_mm, and each
// element is merged against its type-appropriate defaults section with
// the element's own values always winning. The input document is never
// mutated; Resolve returns a freshly built tree (spec.md §3.6: "Entities
// are immutable after construction; the compiler produces a new derived
// model at each stage").
func Resolve(doc *TemplateDocument) *Node {
	var leafPadding *Padding
	var textDefaults *TextDefaults
	var code2DDefaults *Code2DDefaults
	var imageDefaults *ImageDefaults
	if doc.Defaults != nil {
		leafPadding = doc.Defaults.LeafPaddingMM
		textDefaults = doc.Defaults.Text
		code2DDefaults = doc.Defaults.Code2D
		imageDefaults = doc.Defaults.Image
	}
	return resolveNode(&doc.Layout, leafPadding, textDefaults, code2DDefaults, imageDefaults)
}

func resolveNode(n *Node, leafPadding *Padding, textD *TextDefaults, code2D *Code2DDefaults, imageD *ImageDefaults) *Node {
	switch n.Kind {
	case NodeKindSplit:
		s := *n.Split
		s.Children = [2]Node{
			*resolveNode(&n.Split.Children[0], leafPadding, textD, code2D, imageD),
			*resolveNode(&n.Split.Children[1], leafPadding, textD, code2D, imageD),
		}
		return &Node{Kind: NodeKindSplit, Split: &s}
	case NodeKindLeaf:
		l := *n.Leaf
		if l.PaddingMM == nil && leafPadding != nil {
			padCopy := *leafPadding
			l.PaddingMM = &padCopy
		}
		l.Elements = make([]Element, len(n.Leaf.Elements))
		for i := range n.Leaf.Elements {
			l.Elements[i] = resolveElement(&n.Leaf.Elements[i], textD, code2D, imageD)
		}
		return &Node{Kind: NodeKindLeaf, Leaf: &l}
	default:
		return n
	}
}

func resolveElement(e *Element, textD *TextDefaults, code2D *Code2DDefaults, imageD *ImageDefaults) Element {
	switch e.Kind {
	case ElementKindText:
		t := *e.Text
		resolveTextDefaults(&t, textD)
		return Element{Kind: ElementKindText, Text: &t}
	case ElementKindQR:
		q := *e.QR
		resolveCode2DDefaults(code2D, &q.QuietZoneMM, &q.SizeMode, &q.AlignH, &q.AlignV)
		applyQRDefaults(&q)
		return Element{Kind: ElementKindQR, QR: &q}
	case ElementKindDataMatrix:
		d := *e.DataMatrix
		resolveCode2DDefaults(code2D, &d.QuietZoneMM, &d.SizeMode, &d.AlignH, &d.AlignV)
		applyDataMatrixDefaults(&d)
		return Element{Kind: ElementKindDataMatrix, DataMatrix: &d}
	case ElementKindLine:
		l := *e.Line
		if l.Align == "" {
			l.Align = LineAlignCenter
		}
		return Element{Kind: ElementKindLine, Line: &l}
	case ElementKindImage:
		img := *e.Image
		if img.SizeMode == "" && imageD != nil && imageD.SizeMode != "" {
			img.SizeMode = imageD.SizeMode
		}
		if img.RenderMode == "" && imageD != nil && imageD.RenderMode != "" {
			img.RenderMode = imageD.RenderMode
		}
		if img.SizeMode == "" {
			img.SizeMode = SizeModeFixed
		}
		if img.RenderMode == "" {
			img.RenderMode = ImageRenderModeGraphicField
		}
		return Element{Kind: ElementKindImage, Image: &img}
	default:
		return *e
	}
}

func resolveTextDefaults(t *TextElement, d *TextDefaults) {
	if t.FontHeightMM == 0 && d != nil && d.FontHeightMM != nil {
		t.FontHeightMM = *d.FontHeightMM
	}
	if t.FontWidthMM == nil && d != nil && d.FontWidthMM != nil {
		v := *d.FontWidthMM
		t.FontWidthMM = &v
	}
	if t.FontWidthMM == nil {
		v := t.FontHeightMM
		t.FontWidthMM = &v
	}
	if t.Wrap == "" && d != nil && d.Wrap != "" {
		t.Wrap = d.Wrap
	}
	if t.Wrap == "" {
		t.Wrap = WrapNone
	}
	if t.Fit == "" && d != nil && d.Fit != "" {
		t.Fit = d.Fit
	}
	if t.Fit == "" {
		t.Fit = FitOverflow
	}
	if t.MaxLines == 0 && d != nil && d.MaxLines != 0 {
		t.MaxLines = d.MaxLines
	}
	if t.MaxLines == 0 {
		t.MaxLines = 1
	}
	if t.AlignH == "" && d != nil && d.AlignH != "" {
		t.AlignH = d.AlignH
	}
	if t.AlignH == "" {
		t.AlignH = AlignHLeft
	}
	if t.AlignV == "" && d != nil && d.AlignV != "" {
		t.AlignV = d.AlignV
	}
	if t.AlignV == "" {
		t.AlignV = AlignVTop
	}
}

func resolveCode2DDefaults(d *Code2DDefaults, quiet *float64, sizeMode, alignH, alignV *string) {
	if *quiet == 0 && d != nil && d.QuietZoneMM != nil {
		*quiet = *d.QuietZoneMM
	}
	if *sizeMode == "" && d != nil && d.SizeMode != "" {
		*sizeMode = d.SizeMode
	}
	if *sizeMode == "" {
		*sizeMode = SizeModeFixed
	}
	if *alignH == "" && d != nil && d.AlignH != "" {
		*alignH = d.AlignH
	}
	if *alignH == "" {
		*alignH = AlignHCenter
	}
	if *alignV == "" && d != nil && d.AlignV != "" {
		*alignV = d.AlignV
	}
	if *alignV == "" {
		*alignV = AlignVCenter
	}
}

func applyQRDefaults(q *QRElement) {
	if q.ErrorCorrection == "" {
		q.ErrorCorrection = QRErrorCorrectionM
	}
	if q.InputMode == "" {
		q.InputMode = QRInputModeAutomatic
	}
}

func applyDataMatrixDefaults(d *DataMatrixElement) {
	if d.ModuleSizeMM == 0 {
		d.ModuleSizeMM = 0.5
	}
	if d.Quality == 0 {
		d.Quality = 200
	}
	if d.FormatID == nil {
		six := 6
		d.FormatID = &six
	}
	if d.EscapeChar == "" {
		d.EscapeChar = "_"
	}
}
