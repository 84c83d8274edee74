package domain

// PartTemplate is the static definition a new ServiceInterval is seeded
// from: default interval length and whether reminders default to on.
type PartTemplate struct {
	ID                   string  `json:"id"`
	Name                 string  `json:"name"`
	Category             string  `json:"category"`
	DefaultIntervalHours float64 `json:"default_interval_hours"`
	Icon                 string  `json:"icon,omitempty"`
	Description          string  `json:"description,omitempty"`
	NotifyDefault        bool    `json:"notify_default"`
}

type PartCategory struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
