package usecase

import (
	"context"
	"fmt"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/tigerline/pkg/domain/model"
)

// Roads retrieves the all-roads layer, which is published per county.
// With no counties every county in the state is fetched and merged.
func (t *Tiger) Roads(ctx context.Context, opt Options, state string, counties ...string) (*model.FeatureCollection, error) {
	return t.perCountyLayer(ctx, opt, state, counties, "ROADS", "roads")
}

// PrimaryRoads retrieves the national primary roads layer.
func (t *Tiger) PrimaryRoads(ctx context.Context, opt Options) (*model.FeatureCollection, error) {
	opt, err := opt.normalize()
	if err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/TIGER%d/PRIMARYROADS/tl_%d_us_primaryroads.zip", tigerBase, opt.Year, opt.Year)
	return t.load(ctx, url, opt)
}

// PrimarySecondaryRoads retrieves the primary and secondary roads
// layer for a state.
func (t *Tiger) PrimarySecondaryRoads(ctx context.Context, opt Options, state string) (*model.FeatureCollection, error) {
	opt, err := opt.normalize()
	if err != nil {
		return nil, err
	}
	st, err := ValidateState(ctx, state)
	if err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/TIGER%d/PRISECROADS/tl_%d_%s_prisecroads.zip", tigerBase, opt.Year, opt.Year, st)
	return t.load(ctx, url, opt)
}

// Rails retrieves the national railroads layer.
func (t *Tiger) Rails(ctx context.Context, opt Options) (*model.FeatureCollection, error) {
	opt, err := opt.normalize()
	if err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/TIGER%d/RAILS/tl_%d_us_rails.zip", tigerBase, opt.Year, opt.Year)
	return t.load(ctx, url, opt)
}

// AddressRanges retrieves the address range features layer, published
// per county like roads.
func (t *Tiger) AddressRanges(ctx context.Context, opt Options, state string, counties ...string) (*model.FeatureCollection, error) {
	return t.perCountyLayer(ctx, opt, state, counties, "ADDRFEAT", "addrfeat")
}

// perCountyLayer fetches a county-partitioned TIGER/Line layer for one
// or more counties and merges the results. An empty county list means
// every county in the state.
func (t *Tiger) perCountyLayer(ctx context.Context, opt Options, state string, counties []string, dir, layer string) (*model.FeatureCollection, error) {
	opt, err := opt.normalize()
	if err != nil {
		return nil, err
	}
	st, err := ValidateState(ctx, state)
	if err != nil {
		return nil, err
	}

	var fips []string
	if len(counties) == 0 {
		ctxlog.From(ctx).Info("no counties given, retrieving the layer for the whole state",
			"state", st, "layer", layer)
		entries, err := t.countyTable(ctx, st, opt)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			fips = append(fips, e.code)
		}
	} else {
		for _, c := range counties {
			code, err := t.ValidateCounty(ctx, st, c, opt)
			if err != nil {
				return nil, err
			}
			fips = append(fips, code)
		}
	}

	merged := &model.FeatureCollection{}
	for _, cty := range fips {
		url := fmt.Sprintf("%s/TIGER%d/%s/tl_%d_%s%s_%s.zip",
			tigerBase, opt.Year, dir, opt.Year, st, cty, layer)
		fc, err := t.load(ctx, url, opt)
		if err != nil {
			return nil, err
		}
		merged.Append(fc)
	}
	return merged, nil
}
