package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/tigerline/pkg/domain/interfaces"
	"github.com/m-mizutani/tigerline/pkg/domain/model"
)

// DefaultYear is the vintage used when the caller does not pick one.
const DefaultYear = 2021

const tigerBase = "https://www2.census.gov/geo/tiger"

// Tiger exposes the Census shapefile catalog. Every accessor builds the
// canonical download URL for its dataset and vintage and runs it
// through the fetch pipeline.
type Tiger struct {
	fetcher interfaces.Fetcher
}

// New creates a Tiger catalog backed by fetcher.
func New(fetcher interfaces.Fetcher) *Tiger {
	return &Tiger{fetcher: fetcher}
}

// Options selects the vintage and form of a dataset retrieval.
type Options struct {
	// Year is the shapefile vintage. Zero means DefaultYear.
	Year int

	// CB requests the generalized cartographic boundary file instead of
	// the full-detail TIGER/Line file.
	CB bool

	// Resolution applies to cartographic boundary files that are
	// published at several generalization levels: "500k" (default),
	// "5m", or "20m".
	Resolution string

	// Cache stores downloads in the local cache directory.
	Cache bool

	// Protocol picks the primary download transport.
	Protocol model.Protocol

	// Timeout bounds a single download attempt.
	Timeout time.Duration

	// Subset optionally filters the decoded features.
	Subset *model.Subset
}

// normalize fills defaults and validates option combinations shared by
// all accessors.
func (o Options) normalize() (Options, error) {
	if o.Year == 0 {
		o.Year = DefaultYear
	}
	if o.Resolution == "" {
		o.Resolution = "500k"
	}
	switch o.Resolution {
	case "500k", "5m", "20m":
	default:
		return o, goerr.New("invalid resolution, valid values are 500k, 5m and 20m",
			goerr.Value("resolution", o.Resolution))
	}
	return o, nil
}

// fetchOptions converts accessor options to pipeline options.
func (o Options) fetchOptions() model.FetchOptions {
	return model.FetchOptions{
		Cache:    o.Cache,
		Protocol: o.Protocol,
		Timeout:  o.Timeout,
		Subset:   o.Subset,
	}
}

// load runs url through the pipeline.
func (t *Tiger) load(ctx context.Context, url string, opt Options) (*model.FeatureCollection, error) {
	return t.fetcher.LoadShapefile(ctx, url, opt.fetchOptions())
}

// yearSuffix returns the two-digit year form used in legacy archive
// names (e.g. "00" for 2000).
func yearSuffix(year int) string {
	return fmt.Sprintf("%02d", year%100)
}
