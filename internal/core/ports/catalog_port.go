package ports

import "github.com/pedalkeep/bike_maintenance_service/internal/core/domain"

// CatalogLoader loads the static preset and part template tables. The
// file format is the loader's concern; the core only consumes the typed
// tables.
type CatalogLoader interface {
	LoadCatalogData() (*domain.CatalogData, error)
}
