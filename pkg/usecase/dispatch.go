package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/tigerline/pkg/domain/model"
)

// GeographyQuery carries the free-form selectors of a geography
// retrieval: states, counties, a layer variant and ZCTA prefixes.
// Accessors that take a single state use the first entry of States.
type GeographyQuery struct {
	States     []string
	Counties   []string
	LayerType  string
	StartsWith []string
}

func (q GeographyQuery) oneState() string {
	if len(q.States) > 0 {
		return q.States[0]
	}
	return ""
}

// FetchGeography dispatches a geography name to its catalog accessor.
// The names match the CLI and HTTP surfaces (counties, tracts, blocks,
// zctas, ...).
func (t *Tiger) FetchGeography(ctx context.Context, geography string, opt Options, q GeographyQuery) (*model.FeatureCollection, error) {
	switch geography {
	case "counties":
		return t.Counties(ctx, opt, q.States...)
	case "tracts":
		return t.Tracts(ctx, opt, q.oneState(), q.Counties...)
	case "block-groups":
		return t.BlockGroups(ctx, opt, q.oneState(), q.Counties...)
	case "blocks":
		return t.Blocks(ctx, opt, q.oneState(), q.Counties...)
	case "states":
		return t.States(ctx, opt)
	case "places":
		return t.Places(ctx, opt, q.oneState())
	case "pumas":
		return t.Pumas(ctx, opt, q.oneState())
	case "zctas":
		return t.Zctas(ctx, opt, q.oneState(), q.StartsWith...)
	case "school-districts":
		return t.SchoolDistricts(ctx, opt, q.oneState(), SchoolDistrictType(q.LayerType))
	case "congressional-districts":
		return t.CongressionalDistricts(ctx, opt, q.States...)
	case "state-legislative-districts":
		return t.StateLegislativeDistricts(ctx, opt, q.oneState(), LegislativeHouse(q.LayerType))
	case "voting-districts":
		return t.VotingDistricts(ctx, opt, q.oneState(), q.Counties...)
	case "cbsa":
		return t.CoreBasedStatisticalAreas(ctx, opt)
	case "csa":
		return t.CombinedStatisticalAreas(ctx, opt)
	case "metro-divisions":
		return t.MetroDivisions(ctx, opt)
	case "urban-areas":
		return t.UrbanAreas(ctx, opt)
	case "new-england":
		return t.NewEngland(ctx, opt, NectaType(q.LayerType))
	case "regions":
		return t.Regions(ctx, opt)
	case "divisions":
		return t.Divisions(ctx, opt)
	case "nation":
		return t.Nation(ctx, opt)
	case "native-areas":
		return t.NativeAreas(ctx, opt)
	case "tribal-subdivisions":
		return t.TribalSubdivisions(ctx, opt)
	case "anrc":
		return t.AlaskaNativeRegionalCorporations(ctx, opt)
	case "tribal-block-groups":
		return t.TribalBlockGroups(ctx, opt)
	case "tribal-tracts":
		return t.TribalTracts(ctx, opt)
	case "roads":
		return t.Roads(ctx, opt, q.oneState(), q.Counties...)
	case "primary-roads":
		return t.PrimaryRoads(ctx, opt)
	case "primary-secondary-roads":
		return t.PrimarySecondaryRoads(ctx, opt, q.oneState())
	case "rails":
		return t.Rails(ctx, opt)
	case "address-ranges":
		return t.AddressRanges(ctx, opt, q.oneState(), q.Counties...)
	case "area-water":
		return t.AreaWater(ctx, opt, q.oneState(), q.Counties...)
	case "linear-water":
		return t.LinearWater(ctx, opt, q.oneState(), q.Counties...)
	case "coastline":
		return t.Coastline(ctx, opt)
	default:
		return nil, goerr.New("unknown geography", goerr.Value("geography", geography))
	}
}
