package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/tigerline/pkg/domain/model"
	"github.com/m-mizutani/tigerline/pkg/usecase"
)

func TestCatalogURLs(t *testing.T) {
	base := "https://www2.census.gov/geo/tiger"

	cases := []struct {
		name    string
		call    func(ctx context.Context, t *usecase.Tiger) (*model.FeatureCollection, error)
		wantURL string
		wantErr bool
	}{
		{
			name: "counties default vintage",
			call: func(ctx context.Context, tg *usecase.Tiger) (*model.FeatureCollection, error) {
				return tg.Counties(ctx, usecase.Options{})
			},
			wantURL: base + "/TIGER2021/COUNTY/tl_2021_us_county.zip",
		},
		{
			name: "counties cartographic 2010",
			call: func(ctx context.Context, tg *usecase.Tiger) (*model.FeatureCollection, error) {
				return tg.Counties(ctx, usecase.Options{Year: 2010, CB: true, Resolution: "20m"})
			},
			wantURL: base + "/GENZ2010/gz_2010_us_050_00_20m.zip",
		},
		{
			name: "counties 2000 legacy directory",
			call: func(ctx context.Context, tg *usecase.Tiger) (*model.FeatureCollection, error) {
				return tg.Counties(ctx, usecase.Options{Year: 2000})
			},
			wantURL: base + "/TIGER2010/COUNTY/2000/tl_2010_us_county00.zip",
		},
		{
			name: "counties 1990 full detail unavailable",
			call: func(ctx context.Context, tg *usecase.Tiger) (*model.FeatureCollection, error) {
				return tg.Counties(ctx, usecase.Options{Year: 1990})
			},
			wantErr: true,
		},
		{
			name: "counties 1990 cartographic",
			call: func(ctx context.Context, tg *usecase.Tiger) (*model.FeatureCollection, error) {
				return tg.Counties(ctx, usecase.Options{Year: 1990, CB: true})
			},
			wantURL: base + "/PREVGENZ/co/co90shp/co99_d90_shp.zip",
		},
		{
			name: "invalid resolution",
			call: func(ctx context.Context, tg *usecase.Tiger) (*model.FeatureCollection, error) {
				return tg.Counties(ctx, usecase.Options{Resolution: "1m"})
			},
			wantErr: true,
		},
		{
			name: "tracts resolves postal code",
			call: func(ctx context.Context, tg *usecase.Tiger) (*model.FeatureCollection, error) {
				return tg.Tracts(ctx, usecase.Options{}, "TX")
			},
			wantURL: base + "/TIGER2021/TRACT/tl_2021_48_tract.zip",
		},
		{
			name: "tracts national cartographic file",
			call: func(ctx context.Context, tg *usecase.Tiger) (*model.FeatureCollection, error) {
				return tg.Tracts(ctx, usecase.Options{CB: true}, "")
			},
			wantURL: base + "/GENZ2021/shp/cb_2021_us_tract_500k.zip",
		},
		{
			name: "tracts require state for full detail",
			call: func(ctx context.Context, tg *usecase.Tiger) (*model.FeatureCollection, error) {
				return tg.Tracts(ctx, usecase.Options{}, "")
			},
			wantErr: true,
		},
		{
			name: "block groups cartographic 2015",
			call: func(ctx context.Context, tg *usecase.Tiger) (*model.FeatureCollection, error) {
				return tg.BlockGroups(ctx, usecase.Options{Year: 2015, CB: true}, "06")
			},
			wantURL: base + "/GENZ2015/shp/cb_2015_06_bg_500k.zip",
		},
		{
			name: "blocks 2020 vintage",
			call: func(ctx context.Context, tg *usecase.Tiger) (*model.FeatureCollection, error) {
				return tg.Blocks(ctx, usecase.Options{}, "TX")
			},
			wantURL: base + "/TIGER2021/TABBLOCK20/tl_2021_48_tabblock20.zip",
		},
		{
			name: "blocks 2010 vintage suffix",
			call: func(ctx context.Context, tg *usecase.Tiger) (*model.FeatureCollection, error) {
				return tg.Blocks(ctx, usecase.Options{Year: 2016}, "TX")
			},
			wantURL: base + "/TIGER2016/TABBLOCK/tl_2016_48_tabblock10.zip",
		},
		{
			name: "blocks 2000 single county in URL",
			call: func(ctx context.Context, tg *usecase.Tiger) (*model.FeatureCollection, error) {
				return tg.Blocks(ctx, usecase.Options{Year: 2000}, "TX", "201")
			},
			wantURL: base + "/TIGER2010/TABBLOCK/2000/tl_2010_48201_tabblock00.zip",
		},
		{
			name: "blocks need a state",
			call: func(ctx context.Context, tg *usecase.Tiger) (*model.FeatureCollection, error) {
				return tg.Blocks(ctx, usecase.Options{}, "")
			},
			wantErr: true,
		},
		{
			name: "states cartographic 20m",
			call: func(ctx context.Context, tg *usecase.Tiger) (*model.FeatureCollection, error) {
				return tg.States(ctx, usecase.Options{CB: true, Resolution: "20m"})
			},
			wantURL: base + "/GENZ2021/shp/cb_2021_us_state_20m.zip",
		},
		{
			name: "places national 2019 cartographic",
			call: func(ctx context.Context, tg *usecase.Tiger) (*model.FeatureCollection, error) {
				return tg.Places(ctx, usecase.Options{Year: 2019, CB: true}, "")
			},
			wantURL: base + "/GENZ2019/shp/cb_2019_us_place_500k.zip",
		},
		{
			name: "places national only for 2019",
			call: func(ctx context.Context, tg *usecase.Tiger) (*model.FeatureCollection, error) {
				return tg.Places(ctx, usecase.Options{CB: true}, "")
			},
			wantErr: true,
		},
		{
			name: "pumas 2020 geometry after 2021",
			call: func(ctx context.Context, tg *usecase.Tiger) (*model.FeatureCollection, error) {
				return tg.Pumas(ctx, usecase.Options{Year: 2022}, "TX")
			},
			wantURL: base + "/TIGER2022/PUMA/tl_2022_48_puma20.zip",
		},
		{
			name: "pumas cartographic gap years",
			call: func(ctx context.Context, tg *usecase.Tiger) (*model.FeatureCollection, error) {
				return tg.Pumas(ctx, usecase.Options{Year: 2020, CB: true}, "TX")
			},
			wantErr: true,
		},
		{
			name: "zctas 2020 dataset rename",
			call: func(ctx context.Context, tg *usecase.Tiger) (*model.FeatureCollection, error) {
				return tg.Zctas(ctx, usecase.Options{}, "")
			},
			wantURL: base + "/TIGER2021/ZCTA520/tl_2021_us_zcta520.zip",
		},
		{
			name: "zctas by state only for old vintages",
			call: func(ctx context.Context, tg *usecase.Tiger) (*model.FeatureCollection, error) {
				return tg.Zctas(ctx, usecase.Options{}, "TX")
			},
			wantErr: true,
		},
		{
			name: "zctas 2010 by state",
			call: func(ctx context.Context, tg *usecase.Tiger) (*model.FeatureCollection, error) {
				return tg.Zctas(ctx, usecase.Options{Year: 2010}, "TX")
			},
			wantURL: base + "/TIGER2010/ZCTA5/2010/tl_2010_48_zcta510.zip",
		},
		{
			name: "elementary school districts",
			call: func(ctx context.Context, tg *usecase.Tiger) (*model.FeatureCollection, error) {
				return tg.SchoolDistricts(ctx, usecase.Options{}, "WI", usecase.ElementarySchoolDistricts)
			},
			wantURL: base + "/TIGER2021/ELSD/tl_2021_55_elsd.zip",
		},
		{
			name: "congressional districts map vintage to session",
			call: func(ctx context.Context, tg *usecase.Tiger) (*model.FeatureCollection, error) {
				return tg.CongressionalDistricts(ctx, usecase.Options{})
			},
			wantURL: base + "/TIGER2021/CD/tl_2021_us_cd116.zip",
		},
		{
			name: "congressional districts out of range",
			call: func(ctx context.Context, tg *usecase.Tiger) (*model.FeatureCollection, error) {
				return tg.CongressionalDistricts(ctx, usecase.Options{Year: 2005})
			},
			wantErr: true,
		},
		{
			name: "lower house 2010 cartographic code",
			call: func(ctx context.Context, tg *usecase.Tiger) (*model.FeatureCollection, error) {
				return tg.StateLegislativeDistricts(ctx, usecase.Options{Year: 2010, CB: true}, "TX", usecase.LowerHouse)
			},
			wantURL: base + "/GENZ2010/gz_2010_48_620_l2_500k.zip",
		},
		{
			name: "upper house default chamber",
			call: func(ctx context.Context, tg *usecase.Tiger) (*model.FeatureCollection, error) {
				return tg.StateLegislativeDistricts(ctx, usecase.Options{}, "TX", "")
			},
			wantURL: base + "/TIGER2021/SLDU/tl_2021_48_sldu.zip",
		},
		{
			name: "voting districts per county",
			call: func(ctx context.Context, tg *usecase.Tiger) (*model.FeatureCollection, error) {
				return tg.VotingDistricts(ctx, usecase.Options{Year: 2020}, "TX", "201")
			},
			wantURL: base + "/TIGER2020PL/LAYER/VTD/2020/tl_2020_48201_vtd20.zip",
		},
		{
			name: "voting districts cartographic 2020 only",
			call: func(ctx context.Context, tg *usecase.Tiger) (*model.FeatureCollection, error) {
				return tg.VotingDistricts(ctx, usecase.Options{CB: true}, "TX")
			},
			wantErr: true,
		},
		{
			name: "cbsa cartographic",
			call: func(ctx context.Context, tg *usecase.Tiger) (*model.FeatureCollection, error) {
				return tg.CoreBasedStatisticalAreas(ctx, usecase.Options{CB: true})
			},
			wantURL: base + "/GENZ2021/shp/cb_2021_us_cbsa_500k.zip",
		},
		{
			name: "cbsa 2022 undefined",
			call: func(ctx context.Context, tg *usecase.Tiger) (*model.FeatureCollection, error) {
				return tg.CoreBasedStatisticalAreas(ctx, usecase.Options{Year: 2022})
			},
			wantErr: true,
		},
		{
			name: "metro divisions full detail directory",
			call: func(ctx context.Context, tg *usecase.Tiger) (*model.FeatureCollection, error) {
				return tg.MetroDivisions(ctx, usecase.Options{})
			},
			wantURL: base + "/TIGER2021/CBSA/tl_2021_us_metdiv.zip",
		},
		{
			name: "urban areas keep the 2010 delineation name",
			call: func(ctx context.Context, tg *usecase.Tiger) (*model.FeatureCollection, error) {
				return tg.UrbanAreas(ctx, usecase.Options{})
			},
			wantURL: base + "/TIGER2021/UAC/tl_2021_us_uac10.zip",
		},
		{
			name: "necta divisions",
			call: func(ctx context.Context, tg *usecase.Tiger) (*model.FeatureCollection, error) {
				return tg.NewEngland(ctx, usecase.Options{}, usecase.NectaDivision)
			},
			wantURL: base + "/TIGER2021/NECTADIV/tl_2021_us_nectadiv.zip",
		},
		{
			name: "regions",
			call: func(ctx context.Context, tg *usecase.Tiger) (*model.FeatureCollection, error) {
				return tg.Regions(ctx, usecase.Options{})
			},
			wantURL: base + "/GENZ2021/shp/cb_2021_us_region_500k.zip",
		},
		{
			name: "nation defaults to a coarser resolution",
			call: func(ctx context.Context, tg *usecase.Tiger) (*model.FeatureCollection, error) {
				return tg.Nation(ctx, usecase.Options{})
			},
			wantURL: base + "/GENZ2021/shp/cb_2021_us_nation_5m.zip",
		},
		{
			name: "native areas cartographic",
			call: func(ctx context.Context, tg *usecase.Tiger) (*model.FeatureCollection, error) {
				return tg.NativeAreas(ctx, usecase.Options{CB: true})
			},
			wantURL: base + "/GENZ2021/shp/cb_2021_us_aiannh_500k.zip",
		},
		{
			name: "tribal subdivisions pre-2015 directory",
			call: func(ctx context.Context, tg *usecase.Tiger) (*model.FeatureCollection, error) {
				return tg.TribalSubdivisions(ctx, usecase.Options{Year: 2014})
			},
			wantURL: base + "/TIGER2014/AITS/tl_2014_us_aitsn.zip",
		},
		{
			name: "alaska native regional corporations",
			call: func(ctx context.Context, tg *usecase.Tiger) (*model.FeatureCollection, error) {
				return tg.AlaskaNativeRegionalCorporations(ctx, usecase.Options{})
			},
			wantURL: base + "/TIGER2021/ANRC/tl_2021_02_anrc.zip",
		},
		{
			name: "tribal block groups",
			call: func(ctx context.Context, tg *usecase.Tiger) (*model.FeatureCollection, error) {
				return tg.TribalBlockGroups(ctx, usecase.Options{})
			},
			wantURL: base + "/TIGER2021/TBG/tl_2021_us_tbg.zip",
		},
		{
			name: "tribal tracts",
			call: func(ctx context.Context, tg *usecase.Tiger) (*model.FeatureCollection, error) {
				return tg.TribalTracts(ctx, usecase.Options{})
			},
			wantURL: base + "/TIGER2021/TTRACT/tl_2021_us_ttract.zip",
		},
		{
			name: "roads single county",
			call: func(ctx context.Context, tg *usecase.Tiger) (*model.FeatureCollection, error) {
				return tg.Roads(ctx, usecase.Options{}, "TX", "201")
			},
			wantURL: base + "/TIGER2021/ROADS/tl_2021_48201_roads.zip",
		},
		{
			name: "primary roads",
			call: func(ctx context.Context, tg *usecase.Tiger) (*model.FeatureCollection, error) {
				return tg.PrimaryRoads(ctx, usecase.Options{})
			},
			wantURL: base + "/TIGER2021/PRIMARYROADS/tl_2021_us_primaryroads.zip",
		},
		{
			name: "primary and secondary roads",
			call: func(ctx context.Context, tg *usecase.Tiger) (*model.FeatureCollection, error) {
				return tg.PrimarySecondaryRoads(ctx, usecase.Options{}, "HI")
			},
			wantURL: base + "/TIGER2021/PRISECROADS/tl_2021_15_prisecroads.zip",
		},
		{
			name: "rails",
			call: func(ctx context.Context, tg *usecase.Tiger) (*model.FeatureCollection, error) {
				return tg.Rails(ctx, usecase.Options{})
			},
			wantURL: base + "/TIGER2021/RAILS/tl_2021_us_rails.zip",
		},
		{
			name: "address ranges single county",
			call: func(ctx context.Context, tg *usecase.Tiger) (*model.FeatureCollection, error) {
				return tg.AddressRanges(ctx, usecase.Options{}, "01", "001")
			},
			wantURL: base + "/TIGER2021/ADDRFEAT/tl_2021_01001_addrfeat.zip",
		},
		{
			name: "area water single county",
			call: func(ctx context.Context, tg *usecase.Tiger) (*model.FeatureCollection, error) {
				return tg.AreaWater(ctx, usecase.Options{}, "01", "001")
			},
			wantURL: base + "/TIGER2021/AREAWATER/tl_2021_01001_areawater.zip",
		},
		{
			name: "coastline before the directory rename",
			call: func(ctx context.Context, tg *usecase.Tiger) (*model.FeatureCollection, error) {
				return tg.Coastline(ctx, usecase.Options{Year: 2015})
			},
			wantURL: base + "/TIGER2015/COAST/tl_2015_us_coastline.zip",
		},
		{
			name: "coastline after the directory rename",
			call: func(ctx context.Context, tg *usecase.Tiger) (*model.FeatureCollection, error) {
				return tg.Coastline(ctx, usecase.Options{})
			},
			wantURL: base + "/TIGER2021/COASTLINE/tl_2021_us_coastline.zip",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fetcher := newFakeFetcher()
			tiger := usecase.New(fetcher)

			_, err := tc.call(context.Background(), tiger)
			if tc.wantErr {
				gt.Error(t, err)
				return
			}
			gt.NoError(t, err)
			gt.Equal(t, fetcher.lastShapefileURL(), tc.wantURL)
		})
	}
}

func TestFetchGeographyDispatch(t *testing.T) {
	fetcher := newFakeFetcher()
	tiger := usecase.New(fetcher)
	ctx := context.Background()

	_, err := tiger.FetchGeography(ctx, "tracts", usecase.Options{}, usecase.GeographyQuery{
		States: []string{"TX"},
	})
	gt.NoError(t, err)
	gt.Equal(t, fetcher.lastShapefileURL(),
		"https://www2.census.gov/geo/tiger/TIGER2021/TRACT/tl_2021_48_tract.zip")

	_, err = tiger.FetchGeography(ctx, "parcels", usecase.Options{}, usecase.GeographyQuery{})
	gt.Error(t, err)
}

func TestCountiesStateFilter(t *testing.T) {
	fetcher := newFakeFetcher()
	url := "https://www2.census.gov/geo/tiger/TIGER2021/COUNTY/tl_2021_us_county.zip"
	fetcher.collections[url] = &model.FeatureCollection{Features: []model.Feature{
		feature(-86.6, 32.5, map[string]string{"STATEFP": "01", "GEOID": "01001"}),
		feature(-95.4, 29.8, map[string]string{"STATEFP": "48", "GEOID": "48201"}),
		feature(-97.7, 30.3, map[string]string{"STATEFP": "48", "GEOID": "48453"}),
	}}
	tiger := usecase.New(fetcher)

	fc, err := tiger.Counties(context.Background(), usecase.Options{}, "TX")
	gt.NoError(t, err)
	gt.Equal(t, fc.Len(), 2)
	for _, f := range fc.Features {
		gt.Equal(t, f.Property("STATEFP"), "48")
	}
}

func TestBlocksCountyFilter(t *testing.T) {
	fetcher := newFakeFetcher()
	url := "https://www2.census.gov/geo/tiger/TIGER2021/TABBLOCK20/tl_2021_48_tabblock20.zip"
	fetcher.collections[url] = &model.FeatureCollection{Features: []model.Feature{
		feature(-95.4, 29.8, map[string]string{"COUNTYFP20": "201"}),
		feature(-97.7, 30.3, map[string]string{"COUNTYFP20": "453"}),
	}}
	tiger := usecase.New(fetcher)

	fc, err := tiger.Blocks(context.Background(), usecase.Options{}, "TX", "201")
	gt.NoError(t, err)
	gt.Equal(t, fc.Len(), 1)
	gt.Equal(t, fc.Features[0].Property("COUNTYFP20"), "201")
}

func TestZctasPrefixFilter(t *testing.T) {
	fetcher := newFakeFetcher()
	url := "https://www2.census.gov/geo/tiger/TIGER2021/ZCTA520/tl_2021_us_zcta520.zip"
	fetcher.collections[url] = &model.FeatureCollection{Features: []model.Feature{
		feature(-86.8, 33.5, map[string]string{"ZCTA5CE20": "35004"}),
		feature(-95.4, 29.8, map[string]string{"ZCTA5CE20": "77002"}),
		feature(-95.3, 29.7, map[string]string{"ZCTA5CE20": "77598"}),
	}}
	tiger := usecase.New(fetcher)

	fc, err := tiger.Zctas(context.Background(), usecase.Options{}, "", "770")
	gt.NoError(t, err)
	gt.Equal(t, fc.Len(), 1)
	gt.Equal(t, fc.Features[0].Property("ZCTA5CE20"), "77002")
}

func TestRoadsAllCountyLoop(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.files[countyCodesURL] = []byte(countyCodesFixture)

	base := "https://www2.census.gov/geo/tiger/TIGER2021/ROADS"
	for _, cty := range []string{"001", "003", "005"} {
		url := base + "/tl_2021_01" + cty + "_roads.zip"
		fetcher.collections[url] = &model.FeatureCollection{Features: []model.Feature{
			feature(-86.5, 32.5, map[string]string{"COUNTYFP": cty}),
		}}
	}
	tiger := usecase.New(fetcher)

	fc, err := tiger.Roads(context.Background(), usecase.Options{}, "AL")
	gt.NoError(t, err)
	gt.Equal(t, fc.Len(), 3)
	gt.Equal(t, len(fetcher.shapefileURLs), 3)
	gt.Equal(t, fetcher.shapefileURLs[0], base+"/tl_2021_01001_roads.zip")
}

func TestSubsetHeadPassesThrough(t *testing.T) {
	fetcher := newFakeFetcher()
	url := "https://www2.census.gov/geo/tiger/TIGER2021/RAILS/tl_2021_us_rails.zip"
	fetcher.collections[url] = &model.FeatureCollection{Features: []model.Feature{
		feature(-86.8, 33.5, map[string]string{"LINEARID": "1"}),
		feature(-95.4, 29.8, map[string]string{"LINEARID": "2"}),
	}}
	tiger := usecase.New(fetcher)

	fc, err := tiger.Rails(context.Background(), usecase.Options{Subset: &model.Subset{Head: 1}})
	gt.NoError(t, err)
	gt.Equal(t, fc.Len(), 1)
}
