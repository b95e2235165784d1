package geocoder

import (
	"context"
	"strconv"

	"github.com/go-resty/resty/v2"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/tigerline/pkg/domain/interfaces"
	"github.com/m-mizutani/tigerline/pkg/domain/model"
)

const defaultBaseURL = "https://geocoding.geo.census.gov/geocoder"

// Client calls the Census Bureau geocoding service.
type Client struct {
	baseURL string
	http    *resty.Client
}

var _ interfaces.Geocoder = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the service endpoint, mainly for tests.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithHTTPClient replaces the underlying resty client.
func WithHTTPClient(hc *resty.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// New creates a geocoding client.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL: defaultBaseURL,
		http:    resty.New().SetHeader("User-Agent", "tigerline"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Wire format of the geocoding service. Only the fields we consume are
// declared; geographies stay loosely typed because the layer set varies
// by vintage.
type geocodeResponse struct {
	Result struct {
		AddressMatches []struct {
			MatchedAddress string `json:"matchedAddress"`
			Coordinates    struct {
				X float64 `json:"x"`
				Y float64 `json:"y"`
			} `json:"coordinates"`
			Geographies map[string][]map[string]any `json:"geographies"`
		} `json:"addressMatches"`
	} `json:"result"`
}

type lookupResponse struct {
	Result struct {
		Geographies map[string][]map[string]any `json:"geographies"`
	} `json:"result"`
}

// Geocode resolves an address to coordinates and the geographies that
// contain the matched location.
func (c *Client) Geocode(ctx context.Context, req model.GeocodeRequest) ([]model.GeocodeMatch, error) {
	endpoint := c.baseURL + "/geographies/onelineaddress"
	params := map[string]string{
		"benchmark": orDefault(req.Benchmark, model.DefaultBenchmark),
		"vintage":   orDefault(req.Vintage, model.DefaultVintage),
		"format":    "json",
	}
	if req.Address != "" {
		params["address"] = req.Address
	} else {
		endpoint = c.baseURL + "/geographies/address"
		params["street"] = req.Street
		if req.City != "" {
			params["city"] = req.City
		}
		if req.State != "" {
			params["state"] = req.State
		}
		if req.Zip != "" {
			params["zip"] = req.Zip
		}
	}

	var body geocodeResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetResult(&body).
		Get(endpoint)
	if err != nil {
		return nil, goerr.Wrap(err, "geocoding request failed", goerr.Value("endpoint", endpoint))
	}
	if resp.StatusCode() != 200 {
		return nil, goerr.New("geocoding service returned an error",
			goerr.Value("status", resp.StatusCode()),
			goerr.Value("body", resp.String()))
	}

	geography := orDefault(req.Geography, model.DefaultGeography)
	matches := make([]model.GeocodeMatch, 0, len(body.Result.AddressMatches))
	for _, m := range body.Result.AddressMatches {
		match := model.GeocodeMatch{
			MatchedAddress: m.MatchedAddress,
			Longitude:      m.Coordinates.X,
			Latitude:       m.Coordinates.Y,
		}
		if layers, ok := m.Geographies[geography]; ok && len(layers) > 0 {
			match.GEOID = geoidOf(layers[0])
			if req.KeepGeographyColumns {
				match.Geography = layers[0]
			}
		}
		matches = append(matches, match)
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 1
	}
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

// Lookup resolves a coordinate to the geographies containing it.
func (c *Client) Lookup(ctx context.Context, req model.LookupRequest) ([]model.GeographyRecord, error) {
	endpoint := c.baseURL + "/geographies/coordinates"
	params := map[string]string{
		"x":         strconv.FormatFloat(req.Longitude, 'f', -1, 64),
		"y":         strconv.FormatFloat(req.Latitude, 'f', -1, 64),
		"benchmark": orDefault(req.Benchmark, model.DefaultBenchmark),
		"vintage":   orDefault(req.Vintage, model.DefaultVintage),
		"format":    "json",
	}

	var body lookupResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetResult(&body).
		Get(endpoint)
	if err != nil {
		return nil, goerr.Wrap(err, "geography lookup failed", goerr.Value("endpoint", endpoint))
	}
	if resp.StatusCode() != 200 {
		return nil, goerr.New("geocoding service returned an error",
			goerr.Value("status", resp.StatusCode()),
			goerr.Value("body", resp.String()))
	}

	geography := orDefault(req.Geography, model.DefaultGeography)
	layers, ok := body.Result.Geographies[geography]
	if !ok {
		return nil, goerr.New("geography layer missing from response",
			goerr.Value("geography", geography))
	}

	records := make([]model.GeographyRecord, 0, len(layers))
	for _, layer := range layers {
		rec := model.GeographyRecord{GEOID: geoidOf(layer)}
		if req.KeepGeographyColumns {
			rec.Attributes = layer
		}
		records = append(records, rec)
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 1
	}
	if len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

func geoidOf(layer map[string]any) string {
	if v, ok := layer["GEOID"].(string); ok {
		return v
	}
	return ""
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
