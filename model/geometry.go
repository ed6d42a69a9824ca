package model

import (
	"encoding/json"
	"fmt"
)

// Padding is [top, right, bottom, left] millimetres, decoded from a
// 4-element JSON array per spec.md §3.2/§3.3.
type Padding struct {
	Top, Right, Bottom, Left float64
}

func (p *Padding) UnmarshalJSON(data []byte) error {
	var arr [4]float64
	if err := json.Unmarshal(data, &arr); err != nil {
		return fmt.Errorf("padding_mm: expected [top, right, bottom, left], %w", err)
	}
	p.Top, p.Right, p.Bottom, p.Left = arr[0], arr[1], arr[2], arr[3]
	return nil
}

func (p Padding) MarshalJSON() ([]byte, error) {
	return json.Marshal([4]float64{p.Top, p.Right, p.Bottom, p.Left})
}

// Size is [width, height] millimetres, used for min_size_mm/max_size_mm.
type Size struct {
	W, H float64
}

func (s *Size) UnmarshalJSON(data []byte) error {
	var arr [2]float64
	if err := json.Unmarshal(data, &arr); err != nil {
		return fmt.Errorf("size: expected [w, h], %w", err)
	}
	s.W, s.H = arr[0], arr[1]
	return nil
}

func (s Size) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{s.W, s.H})
}
