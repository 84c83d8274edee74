package domain

// ManufacturerPreset is a curated manufacturer entry. Aliases let short
// forms like "sc" match in free-form bike names.
type ManufacturerPreset struct {
	ID      string        `json:"id"`
	Name    string        `json:"name"`
	Aliases []string      `json:"aliases,omitempty"`
	Models  []ModelPreset `json:"models,omitempty"`
}

// ModelPreset is a curated model under a manufacturer. If Intervals is
// empty the type's default interval set applies.
type ModelPreset struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Aliases   []string `json:"aliases,omitempty"`
	Type      BikeType `json:"type"`
	Intervals []string `json:"intervals,omitempty"`
}

// BikeTypeDefinition maps a structural bike type to the part template ids
// a fresh bike of that type should track.
type BikeTypeDefinition struct {
	Type             BikeType `json:"type"`
	DefaultIntervals []string `json:"default_intervals"`
}

// BikeDefinition is one row of the coarse fallback database, consulted
// only when the preset tables produce no match.
type BikeDefinition struct {
	Manufacturer string `json:"manufacturer"`
	Model        string `json:"model"`
	Type         string `json:"type"`
}

// CatalogData is the full static configuration handed over by a catalog
// loader. The loader owns the file format; the core only sees these
// tables.
type CatalogData struct {
	Manufacturers   []ManufacturerPreset `json:"manufacturers"`
	TypeDefinitions []BikeTypeDefinition `json:"type_definitions"`
	FallbackBikes   []BikeDefinition     `json:"fallback_bikes"`
	PartTemplates   []PartTemplate       `json:"part_templates"`
	Categories      []PartCategory       `json:"categories"`
}
