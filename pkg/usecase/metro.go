package usecase

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/tigerline/pkg/domain/model"
)

// CoreBasedStatisticalAreas retrieves the metropolitan and micropolitan
// statistical areas layer. The 2022 vintage is not published because of
// the Connecticut county reorganization.
func (t *Tiger) CoreBasedStatisticalAreas(ctx context.Context, opt Options) (*model.FeatureCollection, error) {
	opt, err := opt.normalize()
	if err != nil {
		return nil, err
	}
	if opt.Year == 2022 {
		return nil, goerr.New("CBSAs for 2022 are not defined due to the reorganization of counties in Connecticut")
	}

	var url string
	switch {
	case opt.CB && opt.Year == 2010:
		if opt.Resolution == "5m" {
			return nil, goerr.New("the 5m resolution is unavailable for 2010 CBSAs")
		}
		url = fmt.Sprintf("%s/GENZ2010/gz_2010_us_310_m1_%s.zip", tigerBase, opt.Resolution)
	case opt.CB && opt.Year == 2013:
		url = fmt.Sprintf("%s/GENZ%d/cb_%d_us_cbsa_%s.zip", tigerBase, opt.Year, opt.Year, opt.Resolution)
	case opt.CB:
		url = fmt.Sprintf("%s/GENZ%d/shp/cb_%d_us_cbsa_%s.zip", tigerBase, opt.Year, opt.Year, opt.Resolution)
	case opt.Year == 2010:
		url = tigerBase + "/TIGER2010/CBSA/2010/tl_2010_us_cbsa10.zip"
	default:
		url = fmt.Sprintf("%s/TIGER%d/CBSA/tl_%d_us_cbsa.zip", tigerBase, opt.Year, opt.Year)
	}
	return t.load(ctx, url, opt)
}

// CombinedStatisticalAreas retrieves the combined statistical areas
// layer.
func (t *Tiger) CombinedStatisticalAreas(ctx context.Context, opt Options) (*model.FeatureCollection, error) {
	opt, err := opt.normalize()
	if err != nil {
		return nil, err
	}

	var url string
	switch {
	case opt.CB && opt.Year == 2013:
		url = fmt.Sprintf("%s/GENZ%d/cb_%d_us_csa_%s.zip", tigerBase, opt.Year, opt.Year, opt.Resolution)
	case opt.CB:
		url = fmt.Sprintf("%s/GENZ%d/shp/cb_%d_us_csa_%s.zip", tigerBase, opt.Year, opt.Year, opt.Resolution)
	default:
		url = fmt.Sprintf("%s/TIGER%d/CSA/tl_%d_us_csa.zip", tigerBase, opt.Year, opt.Year)
	}
	return t.load(ctx, url, opt)
}

// MetroDivisions retrieves the metropolitan divisions layer.
func (t *Tiger) MetroDivisions(ctx context.Context, opt Options) (*model.FeatureCollection, error) {
	opt, err := opt.normalize()
	if err != nil {
		return nil, err
	}
	if opt.Year == 2022 {
		return nil, goerr.New("metropolitan divisions for 2022 are not defined due to the reorganization of counties in Connecticut")
	}

	var url string
	switch {
	case opt.CB && opt.Year == 2013:
		url = fmt.Sprintf("%s/GENZ%d/cb_%d_us_metdiv_%s.zip", tigerBase, opt.Year, opt.Year, opt.Resolution)
	case opt.CB:
		url = fmt.Sprintf("%s/GENZ%d/shp/cb_%d_us_metdiv_%s.zip", tigerBase, opt.Year, opt.Year, opt.Resolution)
	default:
		url = fmt.Sprintf("%s/TIGER%d/CBSA/tl_%d_us_metdiv.zip", tigerBase, opt.Year, opt.Year)
	}
	return t.load(ctx, url, opt)
}

// UrbanAreas retrieves the urban areas layer.
func (t *Tiger) UrbanAreas(ctx context.Context, opt Options) (*model.FeatureCollection, error) {
	opt, err := opt.normalize()
	if err != nil {
		return nil, err
	}

	var url string
	switch {
	case opt.CB && opt.Year == 2013:
		url = fmt.Sprintf("%s/GENZ%d/cb_%d_us_ua10_500k.zip", tigerBase, opt.Year, opt.Year)
	case opt.CB:
		url = fmt.Sprintf("%s/GENZ%d/shp/cb_%d_us_ua10_500k.zip", tigerBase, opt.Year, opt.Year)
	default:
		url = fmt.Sprintf("%s/TIGER%d/UAC/tl_%d_us_uac10.zip", tigerBase, opt.Year, opt.Year)
	}
	return t.load(ctx, url, opt)
}

// NectaType selects the New England city and town area layer.
type NectaType string

const (
	Necta         NectaType = "necta"
	CombinedNecta NectaType = "combined"
	NectaDivision NectaType = "divisions"
)

// NewEngland retrieves a New England city and town areas layer.
// Cartographic boundary files only exist for the base NECTA layer.
func (t *Tiger) NewEngland(ctx context.Context, opt Options, nectaType NectaType) (*model.FeatureCollection, error) {
	opt, err := opt.normalize()
	if err != nil {
		return nil, err
	}

	var url string
	switch nectaType {
	case Necta, "":
		if opt.CB {
			url = fmt.Sprintf("%s/GENZ%d/shp/cb_%d_us_necta_500k.zip", tigerBase, opt.Year, opt.Year)
		} else {
			url = fmt.Sprintf("%s/TIGER%d/NECTA/tl_%d_us_necta.zip", tigerBase, opt.Year, opt.Year)
		}
	case CombinedNecta:
		url = fmt.Sprintf("%s/TIGER%d/CNECTA/tl_%d_us_cnecta.zip", tigerBase, opt.Year, opt.Year)
	case NectaDivision:
		url = fmt.Sprintf("%s/TIGER%d/NECTADIV/tl_%d_us_nectadiv.zip", tigerBase, opt.Year, opt.Year)
	default:
		return nil, goerr.New("invalid NECTA type, valid values are necta, combined and divisions",
			goerr.Value("type", string(nectaType)))
	}
	return t.load(ctx, url, opt)
}
