package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/tigerline/pkg/domain/model"
)

// congressFor maps a shapefile vintage to the Congress session number
// its districts describe.
func congressFor(year int) (string, error) {
	switch {
	case year >= 2018 && year <= 2022:
		return "116", nil
	case year == 2016 || year == 2017:
		return "115", nil
	case year == 2014 || year == 2015:
		return "114", nil
	case year == 2013:
		return "113", nil
	case year == 2011 || year == 2012:
		return "112", nil
	case year == 2010:
		return "111", nil
	default:
		return "", goerr.New("congressional districts are not available for this year",
			goerr.Value("year", year))
	}
}

// CongressionalDistricts retrieves the congressional districts layer,
// optionally filtered to states.
func (t *Tiger) CongressionalDistricts(ctx context.Context, opt Options, states ...string) (*model.FeatureCollection, error) {
	opt, err := opt.normalize()
	if err != nil {
		return nil, err
	}
	if opt.CB && opt.Year < 2013 {
		return nil, goerr.New("cartographic boundary congressional districts are unavailable prior to 2013",
			goerr.Value("year", opt.Year))
	}
	congress, err := congressFor(opt.Year)
	if err != nil {
		return nil, err
	}

	var url string
	switch {
	case opt.CB && opt.Year == 2013:
		url = fmt.Sprintf("%s/GENZ%d/cb_%d_us_cd%s_%s.zip", tigerBase, opt.Year, opt.Year, congress, opt.Resolution)
	case opt.CB:
		url = fmt.Sprintf("%s/GENZ%d/shp/cb_%d_us_cd%s_%s.zip", tigerBase, opt.Year, opt.Year, congress, opt.Resolution)
	default:
		url = fmt.Sprintf("%s/TIGER%d/CD/tl_%d_us_cd%s.zip", tigerBase, opt.Year, opt.Year, congress)
	}

	fc, err := t.load(ctx, url, opt)
	if err != nil {
		return nil, err
	}
	if len(states) > 0 {
		fips, err := resolveStates(ctx, states)
		if err != nil {
			return nil, err
		}
		fc = fc.FilterProperty("STATEFP", fips...)
	}
	return fc, nil
}

// LegislativeHouse selects the chamber of a state legislature.
type LegislativeHouse string

const (
	UpperHouse LegislativeHouse = "upper"
	LowerHouse LegislativeHouse = "lower"
)

// StateLegislativeDistricts retrieves the state legislative districts
// layer for one chamber.
func (t *Tiger) StateLegislativeDistricts(ctx context.Context, opt Options, state string, house LegislativeHouse) (*model.FeatureCollection, error) {
	opt, err := opt.normalize()
	if err != nil {
		return nil, err
	}
	st, err := t.stateOrNational(ctx, state, opt)
	if err != nil {
		return nil, err
	}

	var layer string
	switch house {
	case UpperHouse, "":
		layer = "sldu"
	case LowerHouse:
		layer = "sldl"
	default:
		return nil, goerr.New("house must be either upper or lower",
			goerr.Value("house", string(house)))
	}

	var url string
	switch {
	case opt.CB && opt.Year == 2010:
		code := "610_u2"
		if layer == "sldl" {
			code = "620_l2"
		}
		url = fmt.Sprintf("%s/GENZ2010/gz_2010_%s_%s_500k.zip", tigerBase, st, code)
	case opt.CB && opt.Year == 2013:
		url = fmt.Sprintf("%s/GENZ%d/cb_%d_%s_%s_500k.zip", tigerBase, opt.Year, opt.Year, st, layer)
	case opt.CB:
		url = fmt.Sprintf("%s/GENZ%d/shp/cb_%d_%s_%s_500k.zip", tigerBase, opt.Year, opt.Year, st, layer)
	case opt.Year == 2000 || opt.Year == 2010:
		url = fmt.Sprintf("%s/TIGER2010/%s/%d/tl_2010_%s_%s%s.zip",
			tigerBase, strings.ToUpper(layer), opt.Year, st, layer, yearSuffix(opt.Year))
	default:
		url = fmt.Sprintf("%s/TIGER%d/%s/tl_%d_%s_%s.zip",
			tigerBase, opt.Year, strings.ToUpper(layer), opt.Year, st, layer)
	}
	return t.load(ctx, url, opt)
}

// VotingDistricts retrieves the voting districts layer. Cartographic
// boundary voting districts exist only for 2020.
func (t *Tiger) VotingDistricts(ctx context.Context, opt Options, state string, counties ...string) (*model.FeatureCollection, error) {
	opt, err := opt.normalize()
	if err != nil {
		return nil, err
	}
	if opt.CB && opt.Year != 2020 {
		return nil, goerr.New("cartographic boundary voting district files are only available for 2020",
			goerr.Value("year", opt.Year))
	}
	st, err := t.stateOrNational(ctx, state, opt)
	if err != nil {
		return nil, err
	}

	if opt.CB {
		url := fmt.Sprintf("%s/GENZ2020/shp/cb_2020_%s_vtd_500k.zip", tigerBase, st)
		fc, err := t.load(ctx, url, opt)
		if err != nil {
			return nil, err
		}
		return t.filterCounties(ctx, fc, st, counties, "COUNTYFP20", opt)
	}

	if opt.Year == 2012 {
		url := fmt.Sprintf("%s/TIGER2012/VTD/tl_2012_%s_vtd10.zip", tigerBase, st)
		return t.load(ctx, url, opt)
	}

	// The 2020 redistricting files are published per county as well as
	// per state.
	if len(counties) == 1 {
		cty, err := t.ValidateCounty(ctx, st, counties[0], opt)
		if err != nil {
			return nil, err
		}
		url := fmt.Sprintf("%s/TIGER2020PL/LAYER/VTD/2020/tl_2020_%s%s_vtd20.zip", tigerBase, st, cty)
		return t.load(ctx, url, opt)
	}

	url := fmt.Sprintf("%s/TIGER2020PL/LAYER/VTD/2020/tl_2020_%s_vtd20.zip", tigerBase, st)
	fc, err := t.load(ctx, url, opt)
	if err != nil {
		return nil, err
	}
	return t.filterCounties(ctx, fc, st, counties, "COUNTYFP20", opt)
}
