package usecase_test

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/tigerline/pkg/domain/model"
	"github.com/paulmach/orb"
)

// fakeFetcher records the URLs the catalog asks for and serves canned
// collections and files.
type fakeFetcher struct {
	shapefileURLs []string
	fileURLs      []string
	invalidated   []string

	collections map[string]*model.FeatureCollection
	files       map[string][]byte
	defaultFC   *model.FeatureCollection
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		collections: map[string]*model.FeatureCollection{},
		files:       map[string][]byte{},
		defaultFC:   &model.FeatureCollection{},
	}
}

func (f *fakeFetcher) LoadShapefile(ctx context.Context, url string, opt model.FetchOptions) (*model.FeatureCollection, error) {
	f.shapefileURLs = append(f.shapefileURLs, url)
	if fc, ok := f.collections[url]; ok {
		return opt.Subset.Apply(fc), nil
	}
	return opt.Subset.Apply(f.defaultFC), nil
}

func (f *fakeFetcher) FetchFile(ctx context.Context, url string, opt model.FetchOptions) ([]byte, error) {
	f.fileURLs = append(f.fileURLs, url)
	if data, ok := f.files[url]; ok {
		return data, nil
	}
	return nil, goerr.New("no canned file for URL", goerr.Value("url", url))
}

func (f *fakeFetcher) Invalidate(url string) error {
	f.invalidated = append(f.invalidated, url)
	return nil
}

func (f *fakeFetcher) lastShapefileURL() string {
	if len(f.shapefileURLs) == 0 {
		return ""
	}
	return f.shapefileURLs[len(f.shapefileURLs)-1]
}

// feature builds a point feature with properties.
func feature(x, y float64, props map[string]string) model.Feature {
	return model.Feature{Geometry: orb.Point{x, y}, Properties: props}
}

const countyCodesURL = "https://www2.census.gov/geo/docs/reference/codes/files/national_county.txt"

const countyCodesFixture = "AL,01,001,Autauga County,H1\n" +
	"AL,01,003,Baldwin County,H1\n" +
	"AL,01,005,Barbour County,H1\n" +
	"TX,48,201,Harris County,H1\n" +
	"TX,48,453,Travis County,H1\n"
