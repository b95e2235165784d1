package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/tigerline/pkg/domain/model"
)

// Counties retrieves the counties layer. With no states the whole
// country is returned; otherwise features are filtered to the resolved
// state FIPS codes.
func (t *Tiger) Counties(ctx context.Context, opt Options, states ...string) (*model.FeatureCollection, error) {
	opt, err := opt.normalize()
	if err != nil {
		return nil, err
	}

	var url string
	switch {
	case opt.CB && (opt.Year == 1990 || opt.Year == 2000):
		suf := yearSuffix(opt.Year)
		url = fmt.Sprintf("%s/PREVGENZ/co/co%sshp/co99_d%s_shp.zip", tigerBase, suf, suf)
	case opt.CB && opt.Year == 2010:
		url = fmt.Sprintf("%s/GENZ2010/gz_2010_us_050_00_%s.zip", tigerBase, opt.Resolution)
	case opt.CB && (opt.Year == 2011 || opt.Year == 2012):
		url = fmt.Sprintf("%s/GENZ%d/cb_%d_us_county_%s.zip", tigerBase, opt.Year, opt.Year, opt.Resolution)
	case opt.CB:
		url = fmt.Sprintf("%s/GENZ%d/shp/cb_%d_us_county_%s.zip", tigerBase, opt.Year, opt.Year, opt.Resolution)
	case opt.Year == 1990:
		return nil, goerr.New("county TIGER/Line files are not published for 1990, request the cartographic boundary file")
	case opt.Year == 2000 || opt.Year == 2010:
		url = fmt.Sprintf("%s/TIGER2010/COUNTY/%d/tl_2010_us_county%s.zip", tigerBase, opt.Year, yearSuffix(opt.Year))
	default:
		url = fmt.Sprintf("%s/TIGER%d/COUNTY/tl_%d_us_county.zip", tigerBase, opt.Year, opt.Year)
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

// Tracts retrieves the Census tracts layer for a state. An empty state
// retrieves the whole country, which is only published for
// cartographic boundary files after 2018. Counties filter the result.
func (t *Tiger) Tracts(ctx context.Context, opt Options, state string, counties ...string) (*model.FeatureCollection, error) {
	opt, err := opt.normalize()
	if err != nil {
		return nil, err
	}
	st, err := t.stateOrNational(ctx, state, opt)
	if err != nil {
		return nil, err
	}

	var url string
	switch {
	case opt.CB && (opt.Year == 1990 || opt.Year == 2000):
		suf := yearSuffix(opt.Year)
		url = fmt.Sprintf("%s/PREVGENZ/tr/tr%sshp/tr%s_d%s_shp.zip", tigerBase, suf, st, suf)
	case opt.CB && opt.Year == 2010:
		url = fmt.Sprintf("%s/GENZ2010/gz_2010_%s_140_00_500k.zip", tigerBase, st)
	case opt.CB && opt.Year > 2013:
		url = fmt.Sprintf("%s/GENZ%d/shp/cb_%d_%s_tract_500k.zip", tigerBase, opt.Year, opt.Year, st)
	case opt.CB:
		url = fmt.Sprintf("%s/GENZ%d/cb_%d_%s_tract_500k.zip", tigerBase, opt.Year, opt.Year, st)
	case opt.Year == 1990:
		return nil, goerr.New("tract TIGER/Line files are not published for 1990, request the cartographic boundary file")
	case opt.Year == 2000 || opt.Year == 2010:
		url = fmt.Sprintf("%s/TIGER2010/TRACT/%d/tl_2010_%s_tract%s.zip", tigerBase, opt.Year, st, yearSuffix(opt.Year))
	default:
		url = fmt.Sprintf("%s/TIGER%d/TRACT/tl_%d_%s_tract.zip", tigerBase, opt.Year, opt.Year, st)
	}

	fc, err := t.load(ctx, url, opt)
	if err != nil {
		return nil, err
	}
	return t.filterCounties(ctx, fc, st, counties, "COUNTYFP", opt)
}

// BlockGroups retrieves the Census block groups layer for a state.
func (t *Tiger) BlockGroups(ctx context.Context, opt Options, state string, counties ...string) (*model.FeatureCollection, error) {
	opt, err := opt.normalize()
	if err != nil {
		return nil, err
	}
	st, err := t.stateOrNational(ctx, state, opt)
	if err != nil {
		return nil, err
	}

	var url string
	switch {
	case opt.CB && (opt.Year == 1990 || opt.Year == 2000):
		suf := yearSuffix(opt.Year)
		url = fmt.Sprintf("%s/PREVGENZ/bg/bg%sshp/bg%s_d%s_shp.zip", tigerBase, suf, st, suf)
	case opt.CB && opt.Year == 2010:
		url = fmt.Sprintf("%s/GENZ2010/gz_2010_%s_150_00_500k.zip", tigerBase, st)
	case opt.CB && opt.Year > 2013:
		url = fmt.Sprintf("%s/GENZ%d/shp/cb_%d_%s_bg_500k.zip", tigerBase, opt.Year, opt.Year, st)
	case opt.CB:
		url = fmt.Sprintf("%s/GENZ%d/cb_%d_%s_bg_500k.zip", tigerBase, opt.Year, opt.Year, st)
	case opt.Year == 1990:
		return nil, goerr.New("block group TIGER/Line files are not published for 1990, request the cartographic boundary file")
	case opt.Year == 2000 || opt.Year == 2010:
		url = fmt.Sprintf("%s/TIGER2010/BG/%d/tl_2010_%s_bg%s.zip", tigerBase, opt.Year, st, yearSuffix(opt.Year))
	default:
		url = fmt.Sprintf("%s/TIGER%d/BG/tl_%d_%s_bg.zip", tigerBase, opt.Year, opt.Year, st)
	}

	fc, err := t.load(ctx, url, opt)
	if err != nil {
		return nil, err
	}
	return t.filterCounties(ctx, fc, st, counties, "COUNTYFP", opt)
}

// Blocks retrieves the Census blocks layer. A state is always
// required; blocks are never published nationally.
func (t *Tiger) Blocks(ctx context.Context, opt Options, state string, counties ...string) (*model.FeatureCollection, error) {
	opt, err := opt.normalize()
	if err != nil {
		return nil, err
	}
	if opt.Year == 1990 {
		return nil, goerr.New("block files are not available for 1990")
	}
	if state == "" {
		return nil, goerr.New("a state is required for block retrieval")
	}
	st, err := ValidateState(ctx, state)
	if err != nil {
		return nil, err
	}

	var url string
	switch {
	case opt.Year == 2000 || opt.Year == 2010:
		suf := yearSuffix(opt.Year)
		if len(counties) == 1 {
			cty, err := t.ValidateCounty(ctx, st, counties[0], opt)
			if err != nil {
				return nil, err
			}
			url = fmt.Sprintf("%s/TIGER2010/TABBLOCK/%d/tl_2010_%s%s_tabblock%s.zip", tigerBase, opt.Year, st, cty, suf)
		} else {
			url = fmt.Sprintf("%s/TIGER2010/TABBLOCK/%d/tl_2010_%s_tabblock%s.zip", tigerBase, opt.Year, st, suf)
		}
		return t.load(ctx, url, opt)
	case opt.Year >= 2011 && opt.Year <= 2013:
		url = fmt.Sprintf("%s/TIGER%d/TABBLOCK/tl_%d_%s_tabblock.zip", tigerBase, opt.Year, opt.Year, st)
	case opt.Year >= 2014 && opt.Year <= 2019:
		url = fmt.Sprintf("%s/TIGER%d/TABBLOCK/tl_%d_%s_tabblock10.zip", tigerBase, opt.Year, opt.Year, st)
	default:
		url = fmt.Sprintf("%s/TIGER%d/TABBLOCK20/tl_%d_%s_tabblock20.zip", tigerBase, opt.Year, opt.Year, st)
	}

	fc, err := t.load(ctx, url, opt)
	if err != nil {
		return nil, err
	}

	// Block attributes carry their vintage in the column name.
	column := "COUNTYFP10"
	if opt.Year > 2019 {
		column = "COUNTYFP20"
	}
	return t.filterCounties(ctx, fc, st, counties, column, opt)
}

// States retrieves the states and equivalent entities layer.
func (t *Tiger) States(ctx context.Context, opt Options) (*model.FeatureCollection, error) {
	opt, err := opt.normalize()
	if err != nil {
		return nil, err
	}

	var url string
	switch {
	case opt.CB && (opt.Year == 1990 || opt.Year == 2000):
		suf := yearSuffix(opt.Year)
		url = fmt.Sprintf("%s/PREVGENZ/st/st%sshp/st99_d%s_shp.zip", tigerBase, suf, suf)
	case opt.CB && opt.Year == 2010:
		url = fmt.Sprintf("%s/GENZ2010/gz_2010_us_040_00_%s.zip", tigerBase, opt.Resolution)
	case opt.CB && opt.Year > 2013:
		url = fmt.Sprintf("%s/GENZ%d/shp/cb_%d_us_state_%s.zip", tigerBase, opt.Year, opt.Year, opt.Resolution)
	case opt.CB:
		url = fmt.Sprintf("%s/GENZ%d/cb_%d_us_state_%s.zip", tigerBase, opt.Year, opt.Year, opt.Resolution)
	case opt.Year == 1990:
		return nil, goerr.New("state TIGER/Line files are not published for 1990, request the cartographic boundary file")
	case opt.Year == 2000 || opt.Year == 2010:
		url = fmt.Sprintf("%s/TIGER2010/STATE/%d/tl_2010_us_state%s.zip", tigerBase, opt.Year, yearSuffix(opt.Year))
	default:
		url = fmt.Sprintf("%s/TIGER%d/STATE/tl_%d_us_state.zip", tigerBase, opt.Year, opt.Year)
	}
	return t.load(ctx, url, opt)
}

// Places retrieves the Census-designated places layer for a state. An
// empty state retrieves the whole country, published only for the 2019
// cartographic boundary file.
func (t *Tiger) Places(ctx context.Context, opt Options, state string) (*model.FeatureCollection, error) {
	opt, err := opt.normalize()
	if err != nil {
		return nil, err
	}

	var st string
	if state == "" {
		if !(opt.Year == 2019 && opt.CB) {
			return nil, goerr.New("a state is required for this year and dataset combination",
				goerr.Value("year", opt.Year))
		}
		st = "us"
		ctxlog.From(ctx).Info("retrieving places for the entire United States")
	} else if st, err = ValidateState(ctx, state); err != nil {
		return nil, err
	}

	var url string
	if opt.CB {
		url = fmt.Sprintf("%s/GENZ%d/shp/cb_%d_%s_place_500k.zip", tigerBase, opt.Year, opt.Year, st)
	} else {
		url = fmt.Sprintf("%s/TIGER%d/PLACE/tl_%d_%s_place.zip", tigerBase, opt.Year, opt.Year, st)
	}
	return t.load(ctx, url, opt)
}

// Pumas retrieves the public use microdata areas layer for a state.
// 2020 PUMA geometry appears in vintages after 2021; cartographic
// boundary PUMAs were not published for 2020 and 2021.
func (t *Tiger) Pumas(ctx context.Context, opt Options, state string) (*model.FeatureCollection, error) {
	opt, err := opt.normalize()
	if err != nil {
		return nil, err
	}

	var st string
	if state == "" {
		if !(opt.Year == 2019 && opt.CB) {
			return nil, goerr.New("a state is required for this year and dataset combination",
				goerr.Value("year", opt.Year))
		}
		st = "us"
		ctxlog.From(ctx).Info("retrieving PUMAs for the entire United States")
	} else if st, err = ValidateState(ctx, state); err != nil {
		return nil, err
	}

	suf := "10"
	if opt.Year > 2021 {
		suf = "20"
	}

	var url string
	if opt.CB {
		if opt.Year == 2020 || opt.Year == 2021 {
			return nil, goerr.New("cartographic boundary PUMAs are not available for 2020 and 2021, request year 2019 instead")
		}
		if opt.Year == 2013 {
			url = fmt.Sprintf("%s/GENZ%d/cb_%d_%s_puma%s_500k.zip", tigerBase, opt.Year, opt.Year, st, suf)
		} else {
			url = fmt.Sprintf("%s/GENZ%d/shp/cb_%d_%s_puma%s_500k.zip", tigerBase, opt.Year, opt.Year, st, suf)
		}
	} else {
		url = fmt.Sprintf("%s/TIGER%d/PUMA/tl_%d_%s_puma%s.zip", tigerBase, opt.Year, opt.Year, st, suf)
	}
	return t.load(ctx, url, opt)
}

// Zctas retrieves the zip code tabulation areas layer. State selection
// is only published for the 2000 and 2010 vintages. The startsWith
// prefixes filter the result on the ZCTA code column, whose name
// carries the vintage.
func (t *Tiger) Zctas(ctx context.Context, opt Options, state string, startsWith ...string) (*model.FeatureCollection, error) {
	opt, err := opt.normalize()
	if err != nil {
		return nil, err
	}
	if opt.Year == 1990 {
		return nil, goerr.New("zip code tabulation areas begin with the 2000 Census")
	}
	if state != "" && opt.Year > 2010 {
		return nil, goerr.New("ZCTAs are only available by state for 2000 and 2010")
	}
	if state != "" && opt.Year == 2010 && opt.CB {
		return nil, goerr.New("ZCTAs are only available by state for 2010 in the TIGER/Line dataset")
	}

	st := ""
	if state != "" {
		if st, err = ValidateState(ctx, state); err != nil {
			return nil, err
		}
	}

	var url string
	if opt.CB {
		switch {
		case opt.Year == 2000 && st == "":
			url = tigerBase + "/PREVGENZ/zt/z500shp/zt99_d00_shp.zip"
		case opt.Year == 2000:
			url = fmt.Sprintf("%s/PREVGENZ/zt/z500shp/zt%s_d00_shp.zip", tigerBase, st)
		case opt.Year == 2010:
			url = tigerBase + "/GENZ2010/gz_2010_us_860_00_500k.zip"
		case opt.Year >= 2020:
			url = fmt.Sprintf("%s/GENZ%d/shp/cb_%d_us_zcta520_500k.zip", tigerBase, opt.Year, opt.Year)
		case opt.Year == 2013:
			url = fmt.Sprintf("%s/GENZ%d/cb_%d_us_zcta510_500k.zip", tigerBase, opt.Year, opt.Year)
		default:
			url = fmt.Sprintf("%s/GENZ%d/shp/cb_%d_us_zcta510_500k.zip", tigerBase, opt.Year, opt.Year)
		}
	} else {
		switch {
		case opt.Year >= 2020:
			url = fmt.Sprintf("%s/TIGER%d/ZCTA520/tl_%d_us_zcta520.zip", tigerBase, opt.Year, opt.Year)
		case opt.Year == 2000 || opt.Year == 2010:
			suf := yearSuffix(opt.Year)
			if st == "" {
				url = fmt.Sprintf("%s/TIGER2010/ZCTA5/%d/tl_2010_us_zcta5%s.zip", tigerBase, opt.Year, suf)
			} else {
				url = fmt.Sprintf("%s/TIGER2010/ZCTA5/%d/tl_2010_%s_zcta5%s.zip", tigerBase, opt.Year, st, suf)
			}
		default:
			url = fmt.Sprintf("%s/TIGER%d/ZCTA5/tl_%d_us_zcta510.zip", tigerBase, opt.Year, opt.Year)
		}
	}

	fc, err := t.load(ctx, url, opt)
	if err != nil {
		return nil, err
	}
	if len(startsWith) == 0 {
		return fc, nil
	}

	column := zctaColumn(fc)
	if column == "" {
		return nil, goerr.New("no ZCTA code column in the result")
	}
	return fc.Filter(func(f model.Feature) bool {
		code := f.Property(column)
		for _, prefix := range startsWith {
			if strings.HasPrefix(code, prefix) {
				return true
			}
		}
		return false
	}), nil
}

// SchoolDistrictType selects the school district layer.
type SchoolDistrictType string

const (
	UnifiedSchoolDistricts    SchoolDistrictType = "unified"
	ElementarySchoolDistricts SchoolDistrictType = "elementary"
	SecondarySchoolDistricts  SchoolDistrictType = "secondary"
)

// SchoolDistricts retrieves a school district layer for a state. An
// empty state retrieves the whole country, published for cartographic
// boundary files after 2018.
func (t *Tiger) SchoolDistricts(ctx context.Context, opt Options, state string, districtType SchoolDistrictType) (*model.FeatureCollection, error) {
	opt, err := opt.normalize()
	if err != nil {
		return nil, err
	}
	st, err := t.stateOrNational(ctx, state, opt)
	if err != nil {
		return nil, err
	}

	var layer string
	switch districtType {
	case UnifiedSchoolDistricts, "":
		layer = "unsd"
	case ElementarySchoolDistricts:
		layer = "elsd"
	case SecondarySchoolDistricts:
		layer = "scsd"
	default:
		return nil, goerr.New("invalid school district type, valid types are unified, elementary and secondary",
			goerr.Value("type", string(districtType)))
	}

	var url string
	if opt.CB {
		url = fmt.Sprintf("%s/GENZ%d/shp/cb_%d_%s_%s_500k.zip", tigerBase, opt.Year, opt.Year, st, layer)
	} else {
		url = fmt.Sprintf("%s/TIGER%d/%s/tl_%d_%s_%s.zip", tigerBase, opt.Year, strings.ToUpper(layer), opt.Year, st, layer)
	}
	return t.load(ctx, url, opt)
}

// stateOrNational resolves state input for datasets that fall back to
// the national "us" file when no state is given. The national file
// only exists for cartographic boundary vintages after 2018.
func (t *Tiger) stateOrNational(ctx context.Context, state string, opt Options) (string, error) {
	if state == "" {
		if opt.Year > 2018 && opt.CB {
			ctxlog.From(ctx).Info("retrieving data for the entire United States")
			return "us", nil
		}
		return "", goerr.New("a state is required for this year and dataset combination",
			goerr.Value("year", opt.Year))
	}
	return ValidateState(ctx, state)
}

// filterCounties narrows fc to the given counties using the named
// county FIPS property. An empty list is a no-op.
func (t *Tiger) filterCounties(ctx context.Context, fc *model.FeatureCollection, stateFIPS string, counties []string, column string, opt Options) (*model.FeatureCollection, error) {
	if len(counties) == 0 {
		return fc, nil
	}
	resolved := make([]string, len(counties))
	for i, c := range counties {
		fips, err := t.ValidateCounty(ctx, stateFIPS, c, opt)
		if err != nil {
			return nil, err
		}
		resolved[i] = fips
	}
	return fc.FilterProperty(column, resolved...), nil
}

// resolveStates maps state inputs to FIPS codes.
func resolveStates(ctx context.Context, states []string) ([]string, error) {
	out := make([]string, len(states))
	for i, s := range states {
		fips, err := ValidateState(ctx, s)
		if err != nil {
			return nil, err
		}
		out[i] = fips
	}
	return out, nil
}

// zctaColumn finds the ZCTA code property, whose exact name varies by
// vintage (ZCTA5CE10, ZCTA5CE20, ZCTA, ...).
func zctaColumn(fc *model.FeatureCollection) string {
	for _, key := range fc.PropertyKeys() {
		if strings.HasPrefix(key, "ZCTA") {
			return key
		}
	}
	return ""
}
