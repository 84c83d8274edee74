package catalog

import "github.com/pedalkeep/bike_maintenance_service/internal/core/domain"

// Part template ids referenced across the default tables.
const (
	PartChain         = "chain"
	PartCassette      = "cassette"
	PartChainring     = "chainring"
	PartBrakePads     = "brake_pads"
	PartBrakeFluid    = "brake_fluid"
	PartForkLowers    = "fork_lowers"
	PartRearShock     = "rear_shock"
	PartPivotBearings = "pivot_bearings"
	PartTires         = "tires"
	PartSealant       = "sealant"
	PartGripsTape     = "grips_tape"
	PartShifterCables = "shifter_cables"
	PartDropperPost   = "dropper_post"
	PartWheelBearings = "wheel_bearings"
)

// FullSuspensionIntervalSet is the heuristic default when a type string
// contains "full" and the catalog has no definition for it.
func FullSuspensionIntervalSet() []string {
	return []string{PartChain, PartCassette, PartBrakePads, PartForkLowers, PartRearShock, PartTires}
}

// HardtailIntervalSet is the heuristic default for type strings
// containing "hard".
func HardtailIntervalSet() []string {
	return []string{PartChain, PartCassette, PartBrakePads, PartForkLowers, PartTires}
}

// GenericIntervalSet is the road/gravel default used when no other rule
// applies.
func GenericIntervalSet() []string {
	return []string{PartChain, PartCassette, PartBrakePads, PartGripsTape}
}

// DefaultCatalogData is the compiled-in configuration used when no
// catalog files are present. The YAML loader returns these tables when
// its directory is empty, so detection keeps working on a bare install.
func DefaultCatalogData() *domain.CatalogData {
	return &domain.CatalogData{
		Manufacturers:   defaultManufacturers(),
		TypeDefinitions: defaultTypeDefinitions(),
		FallbackBikes:   defaultFallbackBikes(),
		PartTemplates:   defaultPartTemplates(),
		Categories:      defaultCategories(),
	}
}

func defaultTypeDefinitions() []domain.BikeTypeDefinition {
	return []domain.BikeTypeDefinition{
		{Type: domain.FullSuspension, DefaultIntervals: FullSuspensionIntervalSet()},
		{Type: domain.Hardtail, DefaultIntervals: HardtailIntervalSet()},
		{Type: domain.Rigid, DefaultIntervals: GenericIntervalSet()},
		{Type: domain.Gravel, DefaultIntervals: []string{PartChain, PartCassette, PartBrakePads, PartGripsTape, PartSealant}},
	}
}

func defaultManufacturers() []domain.ManufacturerPreset {
	return []domain.ManufacturerPreset{
		{
			ID: "trek", Name: "trek",
			Models: []domain.ModelPreset{
				{ID: "trek_fuel_ex", Name: "fuel ex", Type: domain.FullSuspension},
				{ID: "trek_top_fuel", Name: "top fuel", Type: domain.FullSuspension},
				{ID: "trek_slash", Name: "slash", Type: domain.FullSuspension},
				{ID: "trek_marlin", Name: "marlin", Type: domain.Hardtail},
				{ID: "trek_roscoe", Name: "roscoe", Type: domain.Hardtail},
				{ID: "trek_checkpoint", Name: "checkpoint", Type: domain.Gravel},
			},
		},
		{
			ID: "santa_cruz", Name: "santa cruz", Aliases: []string{"sc"},
			Models: []domain.ModelPreset{
				{ID: "sc_hightower", Name: "hightower", Type: domain.FullSuspension},
				{ID: "sc_megatower", Name: "megatower", Type: domain.FullSuspension},
				{ID: "sc_nomad", Name: "nomad", Type: domain.FullSuspension},
				{ID: "sc_tallboy", Name: "tallboy", Type: domain.FullSuspension},
				{ID: "sc_chameleon", Name: "chameleon", Type: domain.Hardtail},
				{ID: "sc_stigmata", Name: "stigmata", Type: domain.Gravel},
			},
		},
		{
			ID: "specialized", Name: "specialized", Aliases: []string{"spesh"},
			Models: []domain.ModelPreset{
				{ID: "spec_stumpjumper", Name: "stumpjumper", Aliases: []string{"sj"}, Type: domain.FullSuspension},
				{ID: "spec_kenevo", Name: "kenevo", Type: domain.FullSuspension},
				{ID: "spec_levo", Name: "turbo levo", Aliases: []string{"levo"}, Type: domain.FullSuspension},
				{ID: "spec_epic", Name: "epic", Type: domain.FullSuspension},
				{ID: "spec_chisel", Name: "chisel", Type: domain.Hardtail},
				{ID: "spec_rockhopper", Name: "rockhopper", Type: domain.Hardtail},
				{ID: "spec_diverge", Name: "diverge", Type: domain.Gravel},
			},
		},
		{
			ID: "giant", Name: "giant",
			Models: []domain.ModelPreset{
				{ID: "giant_trance", Name: "trance", Type: domain.FullSuspension},
				{ID: "giant_reign", Name: "reign", Type: domain.FullSuspension},
				{ID: "giant_talon", Name: "talon", Type: domain.Hardtail},
				{ID: "giant_revolt", Name: "revolt", Type: domain.Gravel},
			},
		},
		{
			ID: "canyon", Name: "canyon",
			Models: []domain.ModelPreset{
				{ID: "canyon_spectral", Name: "spectral", Type: domain.FullSuspension},
				{ID: "canyon_neuron", Name: "neuron", Type: domain.FullSuspension},
				{ID: "canyon_stoic", Name: "stoic", Type: domain.Hardtail},
				{ID: "canyon_grail", Name: "grail", Type: domain.Gravel},
				{ID: "canyon_grizl", Name: "grizl", Type: domain.Gravel},
			},
		},
	}
}

func defaultFallbackBikes() []domain.BikeDefinition {
	return []domain.BikeDefinition{
		{Manufacturer: "cannondale", Model: "scalpel", Type: "full_suspension"},
		{Manufacturer: "cannondale", Model: "habit", Type: "full_suspension"},
		{Manufacturer: "cannondale", Model: "topstone", Type: "gravel"},
		{Manufacturer: "cube", Model: "stereo", Type: "full_suspension"},
		{Manufacturer: "scott", Model: "spark", Type: "full_suspension"},
		{Manufacturer: "scott", Model: "scale", Type: "hardtail"},
		{Manufacturer: "orbea", Model: "occam", Type: "full_suspension"},
		{Manufacturer: "commencal", Model: "meta", Type: "full_suspension"},
		{Manufacturer: "yt", Model: "capra", Type: "full_suspension"},
		{Manufacturer: "yt", Model: "izzo", Type: "full_suspension"},
		{Manufacturer: "norco", Model: "fluid", Type: "full_suspension"},
		{Manufacturer: "kona", Model: "process", Type: "full_suspension"},
		{Manufacturer: "kona", Model: "unit", Type: "rigid"},
		{Manufacturer: "salsa", Model: "journeyman", Type: "gravel"},
		{Manufacturer: "surly", Model: "cross-check", Type: "rigid"},
		{Manufacturer: "marin", Model: "pine mountain", Type: "hardtail"},
	}
}

func defaultPartTemplates() []domain.PartTemplate {
	return []domain.PartTemplate{
		{ID: PartChain, Name: "Chain", Category: "drivetrain", DefaultIntervalHours: 100, Icon: "link", Description: "Clean, lube and measure for wear", NotifyDefault: true},
		{ID: PartCassette, Name: "Cassette", Category: "drivetrain", DefaultIntervalHours: 300, Icon: "gear", Description: "Replace together with a worn chain", NotifyDefault: true},
		{ID: PartChainring, Name: "Chainring", Category: "drivetrain", DefaultIntervalHours: 500, Icon: "gear", NotifyDefault: false},
		{ID: PartShifterCables, Name: "Shifter cables", Category: "drivetrain", DefaultIntervalHours: 300, Icon: "cable", NotifyDefault: false},
		{ID: PartBrakePads, Name: "Brake pads", Category: "brakes", DefaultIntervalHours: 150, Icon: "disc", Description: "Check pad material thickness", NotifyDefault: true},
		{ID: PartBrakeFluid, Name: "Brake fluid", Category: "brakes", DefaultIntervalHours: 400, Icon: "droplet", Description: "Bleed hydraulic brakes", NotifyDefault: true},
		{ID: PartForkLowers, Name: "Fork lowers", Category: "suspension", DefaultIntervalHours: 50, Icon: "fork", Description: "Lower leg service: wipers and bath oil", NotifyDefault: true},
		{ID: PartRearShock, Name: "Rear shock", Category: "suspension", DefaultIntervalHours: 100, Icon: "shock", Description: "Air can service", NotifyDefault: true},
		{ID: PartPivotBearings, Name: "Pivot bearings", Category: "suspension", DefaultIntervalHours: 400, Icon: "bearing", NotifyDefault: false},
		{ID: PartTires, Name: "Tires", Category: "wheels", DefaultIntervalHours: 250, Icon: "tire", NotifyDefault: false},
		{ID: PartSealant, Name: "Tire sealant", Category: "wheels", DefaultIntervalHours: 60, Icon: "droplet", Description: "Top up tubeless sealant", NotifyDefault: true},
		{ID: PartWheelBearings, Name: "Wheel bearings", Category: "wheels", DefaultIntervalHours: 500, Icon: "bearing", NotifyDefault: false},
		{ID: PartGripsTape, Name: "Grips / bar tape", Category: "cockpit", DefaultIntervalHours: 400, Icon: "grip", NotifyDefault: false},
		{ID: PartDropperPost, Name: "Dropper post", Category: "cockpit", DefaultIntervalHours: 200, Icon: "post", Description: "Lower cartridge service", NotifyDefault: false},
	}
}

func defaultCategories() []domain.PartCategory {
	return []domain.PartCategory{
		{ID: "drivetrain", Name: "Drivetrain"},
		{ID: "brakes", Name: "Brakes"},
		{ID: "suspension", Name: "Suspension"},
		{ID: "wheels", Name: "Wheels"},
		{ID: "cockpit", Name: "Cockpit"},
	}
}
