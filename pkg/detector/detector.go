package detector

import (
	"context"
	"encoding/json"
)

// Result is the provider verdict on a piece of text. Raw keeps the untouched
// response body so callers can persist the full report next to the extracted
// score.
type Result struct {
	Raw            json.RawMessage
	Success        bool
	FakePercentage float64
}

// TextDetector is a minimal abstraction for AI-generated-text detection.
// It intentionally hides concrete providers to preserve dependency direction.
type TextDetector interface {
	DetectText(ctx context.Context, text string) (Result, error)
}
