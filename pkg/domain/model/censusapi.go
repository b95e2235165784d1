package model

// CensusRequest describes one call to the Census data API
// (https://api.census.gov/data). The dataset name is the URL component
// following "data/" or the year, e.g. "acs/acs5".
type CensusRequest struct {
	Dataset   string
	Year      int // 0 for timeseries datasets without a year component
	Variables []string
	// Params are additional query parameters, e.g. "for": "county:*".
	Params map[string]string
	// ReturnGEOID assembles a GEOID column from the "state" column and
	// every column after it, then drops the constituent parts.
	ReturnGEOID bool
}
