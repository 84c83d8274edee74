package detect

import (
	"github.com/pedalkeep/bike_maintenance_service/internal/core/catalog"
	"github.com/pedalkeep/bike_maintenance_service/internal/core/domain"
)

// Detector infers manufacturer, model and structural type from a
// free-form bike name. Pure given a loaded catalog; no I/O and never an
// error: absence of a match is a Fallback result, not a failure.
type Detector struct {
	presets *catalog.PresetCatalog
}

func NewDetector(presets *catalog.PresetCatalog) *Detector {
	return &Detector{presets: presets}
}

// Detect runs the matching stages in strict priority order:
//
//  1. manufacturer + model preset match (High)
//  2. model-only preset match, no manufacturer token present (High)
//  3. fallback database match (Medium)
//  4. no match (Fallback)
//
// Matching is substring based on the normalized name, so punctuation and
// trailing tokens around a recognized label do not prevent a match.
func (d *Detector) Detect(name string) domain.DetectionResult {
	normalized := catalog.NormalizeName(name)
	if normalized == "" {
		return fallbackResult()
	}

	for _, manufacturer := range d.presets.MatchingManufacturers(normalized) {
		if model := d.presets.FindModelWithinManufacturer(normalized, manufacturer); model != nil {
			return d.presetResult(manufacturer, model)
		}
	}

	if manufacturer, model := d.presets.FindModelAcrossAllManufacturers(normalized); model != nil {
		return d.presetResult(manufacturer, model)
	}

	if def := d.presets.FindInFallbackDatabase(normalized); def != nil {
		return domain.DetectionResult{
			Manufacturer:       def.Manufacturer,
			Model:              def.Model,
			Type:               domain.ParseBikeType(def.Type),
			Confidence:         domain.ConfidenceMedium,
			SuggestedIntervals: d.presets.DefaultIntervalsForType(def.Type),
		}
	}

	return fallbackResult()
}

func (d *Detector) presetResult(manufacturer *domain.ManufacturerPreset, model *domain.ModelPreset) domain.DetectionResult {
	intervals := model.Intervals
	if len(intervals) == 0 {
		intervals = d.presets.DefaultIntervalsForBikeType(model.Type)
	}
	return domain.DetectionResult{
		Manufacturer:       manufacturer.Name,
		Model:              model.Name,
		Type:               model.Type,
		Confidence:         domain.ConfidenceHigh,
		SuggestedIntervals: intervals,
	}
}

func fallbackResult() domain.DetectionResult {
	return domain.DetectionResult{
		Type:               domain.UnknownType,
		Confidence:         domain.ConfidenceFallback,
		SuggestedIntervals: []string{},
	}
}
