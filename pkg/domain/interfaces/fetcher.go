package interfaces

import (
	"context"

	"github.com/m-mizutani/tigerline/pkg/domain/model"
)

// Fetcher retrieves published Census files through the download/cache
// pipeline.
type Fetcher interface {
	// LoadShapefile retrieves a zipped shapefile archive and decodes it,
	// applying the subset directive in opt.
	LoadShapefile(ctx context.Context, url string, opt model.FetchOptions) (*model.FeatureCollection, error)

	// FetchFile retrieves a raw published file (CSV, gzip, ...) as bytes.
	FetchFile(ctx context.Context, url string, opt model.FetchOptions) ([]byte, error)

	// Invalidate removes the cached copy for url so the next retrieval
	// re-downloads. Callers use it when a cached file fails to parse.
	Invalidate(url string) error
}
