package domain

type Confidence string

const (
	ConfidenceHigh     Confidence = "high"
	ConfidenceMedium   Confidence = "medium"
	ConfidenceLow      Confidence = "low"
	ConfidenceFallback Confidence = "fallback"
)

// DetectionResult is the outcome of matching a free-form bike name
// against the preset catalog. A Fallback confidence carries no
// manufacturer, no model, UnknownType and no suggested intervals; it is
// the signal to ask the user for a manual type selection.
type DetectionResult struct {
	Manufacturer       string     `json:"manufacturer,omitempty"`
	Model              string     `json:"model,omitempty"`
	Type               BikeType   `json:"type"`
	Confidence         Confidence `json:"confidence"`
	SuggestedIntervals []string   `json:"suggested_intervals"`
}
