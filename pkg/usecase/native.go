package usecase

import (
	"context"
	"fmt"

	"github.com/m-mizutani/tigerline/pkg/domain/model"
)

// NativeAreas retrieves the American Indian, Alaska Native and Native
// Hawaiian areas layer.
func (t *Tiger) NativeAreas(ctx context.Context, opt Options) (*model.FeatureCollection, error) {
	opt, err := opt.normalize()
	if err != nil {
		return nil, err
	}
	var url string
	if opt.CB {
		url = fmt.Sprintf("%s/GENZ%d/shp/cb_%d_us_aiannh_500k.zip", tigerBase, opt.Year, opt.Year)
	} else {
		url = fmt.Sprintf("%s/TIGER%d/AIANNH/tl_%d_us_aiannh.zip", tigerBase, opt.Year, opt.Year)
	}
	return t.load(ctx, url, opt)
}

// TribalSubdivisions retrieves the national tribal subdivisions layer.
// The TIGER/Line directory was renamed from AITS to AITSN in 2015.
func (t *Tiger) TribalSubdivisions(ctx context.Context, opt Options) (*model.FeatureCollection, error) {
	opt, err := opt.normalize()
	if err != nil {
		return nil, err
	}
	var url string
	switch {
	case opt.CB:
		url = fmt.Sprintf("%s/GENZ%d/shp/cb_%d_us_aitsn_500k.zip", tigerBase, opt.Year, opt.Year)
	case opt.Year < 2015:
		url = fmt.Sprintf("%s/TIGER%d/AITS/tl_%d_us_aitsn.zip", tigerBase, opt.Year, opt.Year)
	default:
		url = fmt.Sprintf("%s/TIGER%d/AITSN/tl_%d_us_aitsn.zip", tigerBase, opt.Year, opt.Year)
	}
	return t.load(ctx, url, opt)
}

// AlaskaNativeRegionalCorporations retrieves the ANRC layer, which
// covers Alaska only.
func (t *Tiger) AlaskaNativeRegionalCorporations(ctx context.Context, opt Options) (*model.FeatureCollection, error) {
	opt, err := opt.normalize()
	if err != nil {
		return nil, err
	}
	var url string
	if opt.CB {
		url = fmt.Sprintf("%s/GENZ%d/shp/cb_%d_02_anrc_500k.zip", tigerBase, opt.Year, opt.Year)
	} else {
		url = fmt.Sprintf("%s/TIGER%d/ANRC/tl_%d_02_anrc.zip", tigerBase, opt.Year, opt.Year)
	}
	return t.load(ctx, url, opt)
}

// TribalBlockGroups retrieves the national tribal block groups layer.
func (t *Tiger) TribalBlockGroups(ctx context.Context, opt Options) (*model.FeatureCollection, error) {
	opt, err := opt.normalize()
	if err != nil {
		return nil, err
	}
	var url string
	if opt.CB {
		url = fmt.Sprintf("%s/GENZ%d/shp/cb_%d_us_tbg_500k.zip", tigerBase, opt.Year, opt.Year)
	} else {
		url = fmt.Sprintf("%s/TIGER%d/TBG/tl_%d_us_tbg.zip", tigerBase, opt.Year, opt.Year)
	}
	return t.load(ctx, url, opt)
}

// TribalTracts retrieves the national tribal Census tracts layer.
func (t *Tiger) TribalTracts(ctx context.Context, opt Options) (*model.FeatureCollection, error) {
	opt, err := opt.normalize()
	if err != nil {
		return nil, err
	}
	var url string
	if opt.CB {
		url = fmt.Sprintf("%s/GENZ%d/shp/cb_%d_us_ttract_500k.zip", tigerBase, opt.Year, opt.Year)
	} else {
		url = fmt.Sprintf("%s/TIGER%d/TTRACT/tl_%d_us_ttract.zip", tigerBase, opt.Year, opt.Year)
	}
	return t.load(ctx, url, opt)
}
