package model

// Census geocoder defaults. See
// https://geocoding.geo.census.gov/geocoder/ for the catalog of
// benchmarks and vintages.
const (
	DefaultBenchmark = "Public_AR_Current"
	DefaultVintage   = "Census2020_Current"
	DefaultGeography = "Census Blocks"
)

// GeocodeRequest describes a forward geocoding call. Either Address
// (one-line form) or Street must be set.
type GeocodeRequest struct {
	Address string // Single-line address; takes precedence over Street
	Street  string
	City    string
	State   string
	Zip     string

	Benchmark string // Defaults to DefaultBenchmark
	Vintage   string // Defaults to DefaultVintage
	Geography string // Geography layer to report, defaults to DefaultGeography
	Limit     int    // Maximum matches returned, defaults to 1

	// KeepGeographyColumns retains the full geography attribute set on
	// each match instead of just the GEOID.
	KeepGeographyColumns bool
}

// LookupRequest describes a reverse (coordinate) geography lookup.
type LookupRequest struct {
	Longitude float64
	Latitude  float64

	Benchmark string
	Vintage   string
	Geography string
	Limit     int

	KeepGeographyColumns bool
}

// GeocodeMatch is one address match from the Census geocoder.
type GeocodeMatch struct {
	MatchedAddress string
	Longitude      float64
	Latitude       float64
	GEOID          string
	// Geography holds the full attribute set of the matched geography
	// when KeepGeographyColumns was requested.
	Geography map[string]any
}

// GeographyRecord is one geography containing a looked-up coordinate.
type GeographyRecord struct {
	GEOID      string
	Attributes map[string]any
}
