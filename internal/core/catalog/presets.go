package catalog

import (
	"sort"
	"strings"

	"github.com/pedalkeep/bike_maintenance_service/internal/core/domain"
)

// PresetCatalog holds the curated manufacturer/model tables, the
// per-bike-type default interval sets and the coarse fallback bike
// database. Loaded once at startup and read-only afterwards.
//
// Every lookup prefers the longest matching label. Substring matching is
// ambiguous when one label contains another ("Santa" vs "Santa Cruz"),
// and longest-first is the single tie-break rule used at every stage.
// Ties fall back to original table order, so the sorts must be stable.
type PresetCatalog struct {
	manufacturers []domain.ManufacturerPreset
	typeDefaults  map[domain.BikeType][]string
	fallback      []domain.BikeDefinition

	// precomputed orderings
	manufacturerOrder []int
	flatModels        []flatModel
	fallbackOrder     []int
}

type flatModel struct {
	manufacturer int
	model        int
	sortLen      int
}

func NewPresetCatalog(
	manufacturers []domain.ManufacturerPreset,
	typeDefinitions []domain.BikeTypeDefinition,
	fallback []domain.BikeDefinition,
) *PresetCatalog {
	c := &PresetCatalog{
		manufacturers: manufacturers,
		typeDefaults:  make(map[domain.BikeType][]string, len(typeDefinitions)),
		fallback:      fallback,
	}

	for _, def := range typeDefinitions {
		c.typeDefaults[def.Type] = def.DefaultIntervals
	}

	c.manufacturerOrder = make([]int, len(manufacturers))
	for i := range c.manufacturerOrder {
		c.manufacturerOrder[i] = i
	}
	sort.SliceStable(c.manufacturerOrder, func(a, b int) bool {
		return len(manufacturers[c.manufacturerOrder[a]].Name) > len(manufacturers[c.manufacturerOrder[b]].Name)
	})

	for mi, m := range manufacturers {
		for di, model := range m.Models {
			c.flatModels = append(c.flatModels, flatModel{
				manufacturer: mi,
				model:        di,
				sortLen:      len(model.Name) + len(strings.Join(model.Aliases, "")),
			})
		}
	}
	sort.SliceStable(c.flatModels, func(a, b int) bool {
		return c.flatModels[a].sortLen > c.flatModels[b].sortLen
	})

	c.fallbackOrder = make([]int, len(fallback))
	for i := range c.fallbackOrder {
		c.fallbackOrder[i] = i
	}
	sort.SliceStable(c.fallbackOrder, func(a, b int) bool {
		la := len(fallback[c.fallbackOrder[a]].Manufacturer) + len(fallback[c.fallbackOrder[a]].Model)
		lb := len(fallback[c.fallbackOrder[b]].Manufacturer) + len(fallback[c.fallbackOrder[b]].Model)
		return la > lb
	})

	return c
}

func matchesLabel(normalizedName, label string) bool {
	return label != "" && strings.Contains(normalizedName, strings.ToLower(label))
}

func manufacturerMatches(normalizedName string, m *domain.ManufacturerPreset) bool {
	if matchesLabel(normalizedName, m.Name) {
		return true
	}
	for _, alias := range m.Aliases {
		if matchesLabel(normalizedName, alias) {
			return true
		}
	}
	return false
}

func modelMatches(normalizedName string, m *domain.ModelPreset) bool {
	if matchesLabel(normalizedName, m.Name) {
		return true
	}
	for _, alias := range m.Aliases {
		if matchesLabel(normalizedName, alias) {
			return true
		}
	}
	return false
}

// FindManufacturer returns the manufacturer whose name or alias occurs in
// normalizedName, preferring longer manufacturer names over shorter ones.
func (c *PresetCatalog) FindManufacturer(normalizedName string) *domain.ManufacturerPreset {
	for _, m := range c.MatchingManufacturers(normalizedName) {
		return m
	}
	return nil
}

// MatchingManufacturers returns every manufacturer whose name or alias
// occurs in normalizedName, in descending-name-length order. The detector
// walks this list so a manufacturer token without a model hit does not
// shadow a later manufacturer that has one.
func (c *PresetCatalog) MatchingManufacturers(normalizedName string) []*domain.ManufacturerPreset {
	if normalizedName == "" {
		return nil
	}
	var matches []*domain.ManufacturerPreset
	for _, idx := range c.manufacturerOrder {
		m := &c.manufacturers[idx]
		if manufacturerMatches(normalizedName, m) {
			matches = append(matches, m)
		}
	}
	return matches
}

// FindModelWithinManufacturer searches one manufacturer's models. Each
// model contributes a candidate per label (name and every alias); the
// longest label that occurs in normalizedName wins.
func (c *PresetCatalog) FindModelWithinManufacturer(normalizedName string, manufacturer *domain.ManufacturerPreset) *domain.ModelPreset {
	if normalizedName == "" || manufacturer == nil {
		return nil
	}

	type candidate struct {
		model *domain.ModelPreset
		label string
	}
	var candidates []candidate
	for i := range manufacturer.Models {
		model := &manufacturer.Models[i]
		candidates = append(candidates, candidate{model, model.Name})
		for _, alias := range model.Aliases {
			candidates = append(candidates, candidate{model, alias})
		}
	}
	sort.SliceStable(candidates, func(a, b int) bool {
		return len(candidates[a].label) > len(candidates[b].label)
	})

	for _, cand := range candidates {
		if matchesLabel(normalizedName, cand.label) {
			return cand.model
		}
	}
	return nil
}

// FindModelAcrossAllManufacturers matches a model token with no
// manufacturer token present ("Kenevo" alone). Candidates are every
// (manufacturer, model) pair ordered by descending combined label length.
func (c *PresetCatalog) FindModelAcrossAllManufacturers(normalizedName string) (*domain.ManufacturerPreset, *domain.ModelPreset) {
	if normalizedName == "" {
		return nil, nil
	}
	for _, fm := range c.flatModels {
		manufacturer := &c.manufacturers[fm.manufacturer]
		model := &manufacturer.Models[fm.model]
		if modelMatches(normalizedName, model) {
			return manufacturer, model
		}
	}
	return nil, nil
}

// FindInFallbackDatabase returns the first fallback entry whose
// manufacturer and model both occur in normalizedName, longest entries
// first.
func (c *PresetCatalog) FindInFallbackDatabase(normalizedName string) *domain.BikeDefinition {
	if normalizedName == "" {
		return nil
	}
	for _, idx := range c.fallbackOrder {
		def := &c.fallback[idx]
		if matchesLabel(normalizedName, def.Manufacturer) && matchesLabel(normalizedName, def.Model) {
			return def
		}
	}
	return nil
}

// DefaultIntervalsForType resolves the default interval set for a type
// string. Unknown strings fall back to a fixed heuristic so the result is
// usable even with an empty catalog.
func (c *PresetCatalog) DefaultIntervalsForType(typeString string) []string {
	if intervals, ok := c.typeDefaults[domain.BikeType(typeString)]; ok && len(intervals) > 0 {
		return intervals
	}

	lowered := strings.ToLower(typeString)
	switch {
	case strings.Contains(lowered, "full"):
		return FullSuspensionIntervalSet()
	case strings.Contains(lowered, "hard"):
		return HardtailIntervalSet()
	default:
		return GenericIntervalSet()
	}
}

// DefaultIntervalsForBikeType is the typed variant of
// DefaultIntervalsForType.
func (c *PresetCatalog) DefaultIntervalsForBikeType(t domain.BikeType) []string {
	return c.DefaultIntervalsForType(string(t))
}
