package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	controller "github.com/m-mizutani/tigerline/pkg/controller/http"
	"github.com/m-mizutani/tigerline/pkg/domain/model"
	"github.com/m-mizutani/tigerline/pkg/usecase"
	"github.com/paulmach/orb"
)

// fakeFetcher serves canned collections and signals each shapefile load.
type fakeFetcher struct {
	collections map[string]*model.FeatureCollection
	files       map[string][]byte
	loaded      chan string
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		collections: map[string]*model.FeatureCollection{},
		files:       map[string][]byte{},
		loaded:      make(chan string, 8),
	}
}

func (f *fakeFetcher) LoadShapefile(ctx context.Context, url string, opt model.FetchOptions) (*model.FeatureCollection, error) {
	f.loaded <- url
	if fc, ok := f.collections[url]; ok {
		return fc, nil
	}
	return &model.FeatureCollection{}, nil
}

func (f *fakeFetcher) FetchFile(ctx context.Context, url string, opt model.FetchOptions) ([]byte, error) {
	return f.files[url], nil
}

func (f *fakeFetcher) Invalidate(url string) error { return nil }

type fakeGeocoder struct {
	matches []model.GeocodeMatch
	records []model.GeographyRecord

	lastLookup model.LookupRequest
}

func (g *fakeGeocoder) Geocode(ctx context.Context, req model.GeocodeRequest) ([]model.GeocodeMatch, error) {
	return g.matches, nil
}

func (g *fakeGeocoder) Lookup(ctx context.Context, req model.LookupRequest) ([]model.GeographyRecord, error) {
	g.lastLookup = req
	return g.records, nil
}

func newTestServer(t *testing.T, fetcher *fakeFetcher, geo *fakeGeocoder) *controller.Server {
	t.Helper()
	server, err := controller.NewServer(
		context.Background(),
		usecase.New(fetcher),
		geo,
		controller.WithAddr("localhost:0"),
		controller.WithCache(true),
	)
	gt.NoError(t, err)
	return server
}

func TestHealthEndpoint(t *testing.T) {
	server := newTestServer(t, newFakeFetcher(), &fakeGeocoder{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	server.Handler.ServeHTTP(w, req)

	gt.Equal(t, w.Code, http.StatusOK)

	var status model.HealthStatus
	gt.NoError(t, json.NewDecoder(w.Body).Decode(&status))
	gt.Equal(t, status.Status, "healthy")
	gt.Equal(t, status.Service, "tigerline")
	gt.True(t, status.Version != "")
}

func TestGeocodeEndpoint(t *testing.T) {
	geo := &fakeGeocoder{matches: []model.GeocodeMatch{
		{
			MatchedAddress: "1600 PENNSYLVANIA AVE NW, WASHINGTON, DC, 20500",
			Longitude:      -77.03654,
			Latitude:       38.89873,
			GEOID:          "110010062021031",
		},
	}}
	server := newTestServer(t, newFakeFetcher(), geo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/geocode?address=1600+Pennsylvania+Ave", nil)
	w := httptest.NewRecorder()
	server.Handler.ServeHTTP(w, req)

	gt.Equal(t, w.Code, http.StatusOK)

	var body struct {
		Matches []model.GeocodeMatch `json:"matches"`
	}
	gt.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	gt.Equal(t, len(body.Matches), 1)
	gt.Equal(t, body.Matches[0].GEOID, "110010062021031")
}

func TestGeocodeEndpointRequiresAddress(t *testing.T) {
	server := newTestServer(t, newFakeFetcher(), &fakeGeocoder{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/geocode", nil)
	w := httptest.NewRecorder()
	server.Handler.ServeHTTP(w, req)

	gt.Equal(t, w.Code, http.StatusBadRequest)
}

func TestLookupEndpointPassesLimit(t *testing.T) {
	geo := &fakeGeocoder{records: []model.GeographyRecord{
		{GEOID: "110010062021031"},
	}}
	server := newTestServer(t, newFakeFetcher(), geo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/lookup?lon=-77.03&lat=38.89&limit=5", nil)
	w := httptest.NewRecorder()
	server.Handler.ServeHTTP(w, req)

	gt.Equal(t, w.Code, http.StatusOK)
	gt.Equal(t, geo.lastLookup.Limit, 5)
	gt.Equal(t, geo.lastLookup.Longitude, -77.03)

	var body struct {
		Geographies []model.GeographyRecord `json:"geographies"`
	}
	gt.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	gt.Equal(t, len(body.Geographies), 1)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/lookup?lon=-77.03&lat=38.89&limit=many", nil)
	w = httptest.NewRecorder()
	server.Handler.ServeHTTP(w, req)
	gt.Equal(t, w.Code, http.StatusBadRequest)
}

func TestLookupEndpointRequiresCoordinates(t *testing.T) {
	server := newTestServer(t, newFakeFetcher(), &fakeGeocoder{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/lookup?lon=-77.03", nil)
	w := httptest.NewRecorder()
	server.Handler.ServeHTTP(w, req)

	gt.Equal(t, w.Code, http.StatusBadRequest)
}

func TestFIPSStateEndpoint(t *testing.T) {
	server := newTestServer(t, newFakeFetcher(), &fakeGeocoder{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/fips/state/TX", nil)
	w := httptest.NewRecorder()
	server.Handler.ServeHTTP(w, req)

	gt.Equal(t, w.Code, http.StatusOK)

	var body map[string]string
	gt.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	gt.Equal(t, body["state"], "48")

	req = httptest.NewRequest(http.MethodGet, "/api/v1/fips/state/Narnia", nil)
	w = httptest.NewRecorder()
	server.Handler.ServeHTTP(w, req)
	gt.Equal(t, w.Code, http.StatusBadRequest)
}

func TestFIPSCountyEndpoint(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.files["https://www2.census.gov/geo/docs/reference/codes/files/national_county.txt"] =
		[]byte("TX,48,201,Harris County,H1\nTX,48,453,Travis County,H1\n")
	server := newTestServer(t, fetcher, &fakeGeocoder{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/fips/county/TX/Travis", nil)
	w := httptest.NewRecorder()
	server.Handler.ServeHTTP(w, req)

	gt.Equal(t, w.Code, http.StatusOK)

	var body map[string]string
	gt.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	gt.Equal(t, body["county"], "453")
	gt.Equal(t, body["geoid"], "48453")
}

func TestPrefetchEndpoint(t *testing.T) {
	fetcher := newFakeFetcher()
	url := "https://www2.census.gov/geo/tiger/TIGER2021/RAILS/tl_2021_us_rails.zip"
	fetcher.collections[url] = &model.FeatureCollection{Features: []model.Feature{
		{Geometry: orb.Point{-95, 29}, Properties: map[string]string{"LINEARID": "1"}},
	}}
	server := newTestServer(t, fetcher, &fakeGeocoder{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/prefetch/rails", nil)
	w := httptest.NewRecorder()
	server.Handler.ServeHTTP(w, req)

	gt.Equal(t, w.Code, http.StatusAccepted)

	// The download is dispatched in the background.
	select {
	case loaded := <-fetcher.loaded:
		gt.Equal(t, loaded, url)
	case <-time.After(time.Second):
		t.Fatal("prefetch did not load the dataset within timeout")
	}
}

func TestPrefetchEndpointRequiresCache(t *testing.T) {
	server, err := controller.NewServer(
		context.Background(),
		usecase.New(newFakeFetcher()),
		&fakeGeocoder{},
		controller.WithCache(false),
	)
	gt.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/prefetch/rails", nil)
	w := httptest.NewRecorder()
	server.Handler.ServeHTTP(w, req)

	gt.Equal(t, w.Code, http.StatusConflict)
}
