package interfaces

import (
	"context"

	"github.com/m-mizutani/tigerline/pkg/domain/model"
)

// Geocoder is a client for the Census Bureau geocoding service.
type Geocoder interface {
	// Geocode resolves an address to coordinates and geography GEOIDs.
	Geocode(ctx context.Context, req model.GeocodeRequest) ([]model.GeocodeMatch, error)

	// Lookup resolves a coordinate to the geographies containing it.
	Lookup(ctx context.Context, req model.LookupRequest) ([]model.GeographyRecord, error)
}

// CensusAPI is a client for the Census data API.
type CensusAPI interface {
	Get(ctx context.Context, req model.CensusRequest) (*model.Table, error)
}
