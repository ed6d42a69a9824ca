package model

import "fmt"

// Parse decodes a template document from JSON, rejecting unknown
// top-level fields (spec.md §4.1). It performs no validation beyond what
// strict decoding gives for free (shape and type); call Validate on the
// result before using it.
func Parse(data []byte) (*TemplateDocument, error) {
	var doc TemplateDocument
	if err := strictUnmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}
	return &doc, nil
}
