package usecase

import (
	"context"
	"fmt"

	"github.com/m-mizutani/tigerline/pkg/domain/model"
)

// AreaWater retrieves the area hydrography layer, published per county.
// With no counties every county in the state is fetched and merged.
func (t *Tiger) AreaWater(ctx context.Context, opt Options, state string, counties ...string) (*model.FeatureCollection, error) {
	return t.perCountyLayer(ctx, opt, state, counties, "AREAWATER", "areawater")
}

// LinearWater retrieves the linear hydrography layer, published per
// county.
func (t *Tiger) LinearWater(ctx context.Context, opt Options, state string, counties ...string) (*model.FeatureCollection, error) {
	return t.perCountyLayer(ctx, opt, state, counties, "LINEARWATER", "linearwater")
}

// Coastline retrieves the national coastline layer. The TIGER/Line
// directory was renamed from COAST to COASTLINE in 2017.
func (t *Tiger) Coastline(ctx context.Context, opt Options) (*model.FeatureCollection, error) {
	opt, err := opt.normalize()
	if err != nil {
		return nil, err
	}
	dir := "COAST"
	if opt.Year > 2016 {
		dir = "COASTLINE"
	}
	url := fmt.Sprintf("%s/TIGER%d/%s/tl_%d_us_coastline.zip", tigerBase, opt.Year, dir, opt.Year)
	return t.load(ctx, url, opt)
}
