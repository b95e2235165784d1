package usecase

import (
	"context"
	"fmt"

	"github.com/m-mizutani/tigerline/pkg/domain/model"
)

// National layers are published as cartographic boundary files only.

// Regions retrieves the four Census regions.
func (t *Tiger) Regions(ctx context.Context, opt Options) (*model.FeatureCollection, error) {
	opt, err := opt.normalize()
	if err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/GENZ%d/shp/cb_%d_us_region_%s.zip", tigerBase, opt.Year, opt.Year, opt.Resolution)
	return t.load(ctx, url, opt)
}

// Divisions retrieves the nine Census divisions.
func (t *Tiger) Divisions(ctx context.Context, opt Options) (*model.FeatureCollection, error) {
	opt, err := opt.normalize()
	if err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/GENZ%d/shp/cb_%d_us_division_%s.zip", tigerBase, opt.Year, opt.Year, opt.Resolution)
	return t.load(ctx, url, opt)
}

// Nation retrieves the national boundary. The default resolution is
// coarser than other layers because the full-detail outline is rarely
// wanted.
func (t *Tiger) Nation(ctx context.Context, opt Options) (*model.FeatureCollection, error) {
	if opt.Resolution == "" {
		opt.Resolution = "5m"
	}
	opt, err := opt.normalize()
	if err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/GENZ%d/shp/cb_%d_us_nation_%s.zip", tigerBase, opt.Year, opt.Year, opt.Resolution)
	return t.load(ctx, url, opt)
}
