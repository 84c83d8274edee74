package catalog

import (
	"fmt"
	"os"
	"path/filepath"

	corecatalog "github.com/pedalkeep/bike_maintenance_service/internal/core/catalog"
	"github.com/pedalkeep/bike_maintenance_service/internal/core/domain"
	"github.com/pedalkeep/bike_maintenance_service/internal/core/ports"

	"gopkg.in/yaml.v3"
)

// YAMLLoader reads the static catalog tables from a directory of YAML
// files. Missing files fall back to the compiled-in defaults so a bare
// install still detects bikes; a file that exists but fails to parse is
// an error, not a silent fallback.
type YAMLLoader struct {
	dir    string
	logger ports.LoggerPort
}

func NewYAMLLoader(dir string, logger ports.LoggerPort) *YAMLLoader {
	return &YAMLLoader{dir: dir, logger: logger}
}

// File-format types. The domain tables are built from these so the YAML
// key layout can evolve without touching core types.
type (
	presetFile struct {
		Manufacturers   []manufacturerYAML `yaml:"manufacturers"`
		TypeDefinitions []typeDefYAML      `yaml:"type_definitions"`
		FallbackBikes   []fallbackYAML     `yaml:"fallback_bikes"`
	}

	manufacturerYAML struct {
		ID      string      `yaml:"id"`
		Name    string      `yaml:"name"`
		Aliases []string    `yaml:"aliases"`
		Models  []modelYAML `yaml:"models"`
	}

	modelYAML struct {
		ID        string   `yaml:"id"`
		Name      string   `yaml:"name"`
		Aliases   []string `yaml:"aliases"`
		Type      string   `yaml:"type"`
		Intervals []string `yaml:"intervals"`
	}

	typeDefYAML struct {
		Type             string   `yaml:"type"`
		DefaultIntervals []string `yaml:"default_intervals"`
	}

	fallbackYAML struct {
		Manufacturer string `yaml:"manufacturer"`
		Model        string `yaml:"model"`
		Type         string `yaml:"type"`
	}

	templateFile struct {
		PartTemplates []templateYAML `yaml:"part_templates"`
		Categories    []categoryYAML `yaml:"categories"`
	}

	templateYAML struct {
		ID                   string  `yaml:"id"`
		Name                 string  `yaml:"name"`
		Category             string  `yaml:"category"`
		DefaultIntervalHours float64 `yaml:"default_interval_hours"`
		Icon                 string  `yaml:"icon"`
		Description          string  `yaml:"description"`
		NotifyDefault        bool    `yaml:"notify_default"`
	}

	categoryYAML struct {
		ID   string `yaml:"id"`
		Name string `yaml:"name"`
	}
)

func (l *YAMLLoader) LoadCatalogData() (*domain.CatalogData, error) {
	data := corecatalog.DefaultCatalogData()
	if l.dir == "" {
		return data, nil
	}

	var presets presetFile
	loaded, err := l.loadFile("presets.yaml", &presets)
	if err != nil {
		return nil, err
	}
	if loaded {
		data.Manufacturers = manufacturersFromYAML(presets.Manufacturers)
		data.TypeDefinitions = typeDefinitionsFromYAML(presets.TypeDefinitions)
		data.FallbackBikes = fallbackBikesFromYAML(presets.FallbackBikes)
	}

	var templates templateFile
	loaded, err = l.loadFile("part_templates.yaml", &templates)
	if err != nil {
		return nil, err
	}
	if loaded {
		data.PartTemplates = partTemplatesFromYAML(templates.PartTemplates)
		data.Categories = categoriesFromYAML(templates.Categories)
	}

	return data, nil
}

func (l *YAMLLoader) loadFile(name string, out interface{}) (bool, error) {
	path := filepath.Join(l.dir, name)
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		l.logger.Info("Catalog file not found, using built-in defaults", map[string]interface{}{
			"path": path,
		})
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading catalog file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("parsing catalog file %s: %w", path, err)
	}
	return true, nil
}

func manufacturersFromYAML(in []manufacturerYAML) []domain.ManufacturerPreset {
	out := make([]domain.ManufacturerPreset, 0, len(in))
	for _, m := range in {
		preset := domain.ManufacturerPreset{
			ID:      m.ID,
			Name:    m.Name,
			Aliases: m.Aliases,
		}
		for _, model := range m.Models {
			preset.Models = append(preset.Models, domain.ModelPreset{
				ID:        model.ID,
				Name:      model.Name,
				Aliases:   model.Aliases,
				Type:      domain.ParseBikeType(model.Type),
				Intervals: model.Intervals,
			})
		}
		out = append(out, preset)
	}
	return out
}

func typeDefinitionsFromYAML(in []typeDefYAML) []domain.BikeTypeDefinition {
	out := make([]domain.BikeTypeDefinition, 0, len(in))
	for _, def := range in {
		out = append(out, domain.BikeTypeDefinition{
			Type:             domain.ParseBikeType(def.Type),
			DefaultIntervals: def.DefaultIntervals,
		})
	}
	return out
}

func fallbackBikesFromYAML(in []fallbackYAML) []domain.BikeDefinition {
	out := make([]domain.BikeDefinition, 0, len(in))
	for _, def := range in {
		out = append(out, domain.BikeDefinition{
			Manufacturer: def.Manufacturer,
			Model:        def.Model,
			Type:         def.Type,
		})
	}
	return out
}

func partTemplatesFromYAML(in []templateYAML) []domain.PartTemplate {
	out := make([]domain.PartTemplate, 0, len(in))
	for _, t := range in {
		out = append(out, domain.PartTemplate{
			ID:                   t.ID,
			Name:                 t.Name,
			Category:             t.Category,
			DefaultIntervalHours: t.DefaultIntervalHours,
			Icon:                 t.Icon,
			Description:          t.Description,
			NotifyDefault:        t.NotifyDefault,
		})
	}
	return out
}

func categoriesFromYAML(in []categoryYAML) []domain.PartCategory {
	out := make([]domain.PartCategory, 0, len(in))
	for _, c := range in {
		out = append(out, domain.PartCategory{ID: c.ID, Name: c.Name})
	}
	return out
}
