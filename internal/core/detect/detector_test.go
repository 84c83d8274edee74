package detect

import (
	"testing"

	"github.com/pedalkeep/bike_maintenance_service/internal/core/catalog"
	"github.com/pedalkeep/bike_maintenance_service/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDetector() *Detector {
	data := catalog.DefaultCatalogData()
	return NewDetector(catalog.NewPresetCatalog(data.Manufacturers, data.TypeDefinitions, data.FallbackBikes))
}

func TestDetectManufacturerAndModel(t *testing.T) {
	d := newDetector()

	result := d.Detect("Trek Fuel EX 9.8")
	assert.Equal(t, "trek", result.Manufacturer)
	assert.Equal(t, "fuel ex", result.Model)
	assert.Equal(t, domain.FullSuspension, result.Type)
	assert.Equal(t, domain.ConfidenceHigh, result.Confidence)
	assert.Contains(t, result.SuggestedIntervals, catalog.PartForkLowers)
	assert.Contains(t, result.SuggestedIntervals, catalog.PartRearShock)
}

func TestDetectManufacturerAlias(t *testing.T) {
	d := newDetector()

	result := d.Detect("SC Hightower")
	assert.Equal(t, "santa cruz", result.Manufacturer)
	assert.Equal(t, "hightower", result.Model)
	assert.Equal(t, domain.ConfidenceHigh, result.Confidence)
}

func TestDetectModelOnly(t *testing.T) {
	d := newDetector()

	// No manufacturer token at all; the model alone identifies the bike.
	result := d.Detect("Kenevo Expert")
	assert.Equal(t, "specialized", result.Manufacturer)
	assert.Equal(t, "kenevo", result.Model)
	assert.Equal(t, domain.FullSuspension, result.Type)
	assert.Equal(t, domain.ConfidenceHigh, result.Confidence)
}

func TestDetectFallbackDatabase(t *testing.T) {
	d := newDetector()

	result := d.Detect("Cannondale Topstone Carbon 3")
	assert.Equal(t, "cannondale", result.Manufacturer)
	assert.Equal(t, "topstone", result.Model)
	assert.Equal(t, domain.Gravel, result.Type)
	assert.Equal(t, domain.ConfidenceMedium, result.Confidence)
	assert.NotEmpty(t, result.SuggestedIntervals)
}

func TestDetectNoMatch(t *testing.T) {
	d := newDetector()

	for _, name := range []string{"My Custom Bike", "", "   "} {
		result := d.Detect(name)
		assert.Empty(t, result.Manufacturer)
		assert.Empty(t, result.Model)
		assert.Equal(t, domain.UnknownType, result.Type)
		assert.Equal(t, domain.ConfidenceFallback, result.Confidence)
		require.NotNil(t, result.SuggestedIntervals)
		assert.Empty(t, result.SuggestedIntervals)
	}
}

func TestDetectManufacturerWithoutModelHitDoesNotShadow(t *testing.T) {
	// "trek" matches as a manufacturer but no trek model occurs in the
	// name; the model-only stage still recognizes the hightower.
	d := newDetector()

	result := d.Detect("trek hightower")
	assert.Equal(t, "santa cruz", result.Manufacturer)
	assert.Equal(t, "hightower", result.Model)
	assert.Equal(t, domain.ConfidenceHigh, result.Confidence)
}

func TestDetectIsCaseAndWhitespaceInsensitive(t *testing.T) {
	d := newDetector()

	a := d.Detect("santa cruz hightower")
	b := d.Detect("  SANTA   CRUZ   HIGHTOWER  ")
	assert.Equal(t, a, b)
}

func TestDetectModelIntervalOverride(t *testing.T) {
	// A model carrying its own interval list wins over the type default.
	presets := catalog.NewPresetCatalog(
		[]domain.ManufacturerPreset{
			{
				Name: "trek",
				Models: []domain.ModelPreset{
					{Name: "marlin", Type: domain.Hardtail, Intervals: []string{catalog.PartChain}},
				},
			},
		},
		nil, nil,
	)
	d := NewDetector(presets)

	result := d.Detect("trek marlin 7")
	assert.Equal(t, []string{catalog.PartChain}, result.SuggestedIntervals)
}
