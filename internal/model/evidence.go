package model

import "fmt"

// BoundingBox is the rectangular region where OCR detected a piece of text.
// Coordinates are pixels from the top-left image corner. Boxes exist only
// for UI highlighting and never participate in matching logic.
type BoundingBox struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Validate rejects negative coordinates or dimensions
func (b BoundingBox) Validate() error {
	if b.X < 0 || b.Y < 0 {
		return fmt.Errorf("bounding box coordinates must be non-negative")
	}
	if b.Width < 0 || b.Height < 0 {
		return fmt.Errorf("bounding box dimensions must be non-negative")
	}
	return nil
}

// TextBlock is a single OCR-detected run of text with its location and
// recognition confidence
type TextBlock struct {
	Text        string      `json:"text"`
	BoundingBox BoundingBox `json:"bounding_box"`
	Confidence  float64     `json:"confidence"`
}

// Evidence is the complete OCR result for one label image: the full
// concatenated text plus the ordered individual blocks. The verification
// engine treats it as read-only; it is owned by the call that receives it.
type Evidence struct {
	FullText   string      `json:"full_text"`
	TextBlocks []TextBlock `json:"text_blocks"`
	Confidence float64     `json:"confidence"`
}

// Validate rejects malformed evidence at construction, before the engine
// sees it. A confidence outside [0,1] or a negative box is a defect in the
// producing layer, not a label problem.
func (e *Evidence) Validate() error {
	if e.Confidence < 0 || e.Confidence > 1 {
		return fmt.Errorf("evidence confidence must be between 0 and 1, got %v", e.Confidence)
	}
	for i, block := range e.TextBlocks {
		if block.Confidence < 0 || block.Confidence > 1 {
			return fmt.Errorf("text block %d: confidence must be between 0 and 1, got %v", i, block.Confidence)
		}
		if err := block.BoundingBox.Validate(); err != nil {
			return fmt.Errorf("text block %d: %w", i, err)
		}
	}
	return nil
}
