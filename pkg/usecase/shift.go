package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/tigerline/pkg/domain/model"
	"github.com/paulmach/orb"
)

// ShiftPosition picks the target arrangement for the outlying states.
type ShiftPosition string

const (
	// PositionBelow arranges Alaska, Hawaii and Puerto Rico in a row
	// under the continental United States.
	PositionBelow ShiftPosition = "below"

	// PositionOutside keeps the outlying states roughly in their true
	// compass directions relative to the continental United States.
	PositionOutside ShiftPosition = "outside"
)

// ShiftOptions configures ShiftGeometry.
type ShiftOptions struct {
	// GEOIDColumn names an attribute whose first two characters are a
	// state FIPS code. When set, features are classified by attribute
	// instead of by spatial overlay with the state bounding boxes.
	GEOIDColumn string

	// PreserveArea keeps the outlying states at their true relative
	// size. When false Alaska is shrunk to half and Hawaii and Puerto
	// Rico are enlarged (1.5x and 2.5x) for legibility.
	PreserveArea bool

	// Position defaults to PositionBelow.
	Position ShiftPosition

	Cache    bool
	Protocol model.Protocol
	Timeout  time.Duration
}

// placement is an affine transform target: where the scaled feature
// block lands relative to the lower-48 bounding box.
type placement struct {
	dx, dy float64 // fractions of lower-48 width and height
	scale  float64
}

// Placement fractions adapted from Claus Wilke's arrangement, as used
// by the albersusa lineage of tools.
var placements = map[ShiftPosition]map[string]placement{
	PositionBelow: {
		"02": {0.06, -0.14, 0.5},
		"15": {0.32, 0.2, 1.5},
		"72": {0.75, 0.15, 2.5},
	},
	PositionOutside: {
		"02": {-0.08, 0.92, 0.5},
		"15": {0.05, 0.35, 1.5},
		"72": {1.0, 0.05, 2.5},
	},
}

var preserveAreaPlacements = map[ShiftPosition]map[string]placement{
	PositionBelow: {
		"02": {0.2, -0.13, 1},
		"15": {0.6, -0.1, 1},
		"72": {0.75, -0.1, 1},
	},
	PositionOutside: {
		"02": {-0.25, 1.35, 1},
		"15": {-0.0, 0.2, 1},
		"72": {0.95, -0.05, 1},
	},
}

// ShiftGeometry relocates and optionally rescales features in Alaska,
// Hawaii and Puerto Rico for cartographic display alongside the
// continental United States. Features elsewhere pass through
// unchanged.
func (t *Tiger) ShiftGeometry(ctx context.Context, input *model.FeatureCollection, opt ShiftOptions) (*model.FeatureCollection, error) {
	if opt.Position == "" {
		opt.Position = PositionBelow
	}
	if opt.Position != PositionBelow && opt.Position != PositionOutside {
		return nil, goerr.New("position must be below or outside",
			goerr.Value("position", string(opt.Position)))
	}

	// A coarse national states layer supplies the reference bounding
	// boxes for classification and centroids.
	ref, err := t.States(ctx, Options{
		CB:         true,
		Resolution: "20m",
		Cache:      opt.Cache,
		Protocol:   opt.Protocol,
		Timeout:    opt.Timeout,
	})
	if err != nil {
		return nil, err
	}

	outlying := map[string]orb.Bound{}
	var lower48 orb.Bound
	first := true
	for _, f := range ref.Features {
		geoid := f.Property("GEOID")
		switch geoid {
		case "02", "15", "72":
			outlying[geoid] = f.Bound()
		default:
			if first {
				lower48 = f.Bound()
				first = false
			} else {
				lower48 = lower48.Union(f.Bound())
			}
		}
	}

	table := placements[opt.Position]
	if opt.PreserveArea {
		table = preserveAreaPlacements[opt.Position]
	}

	width := lower48.Max[0] - lower48.Min[0]
	height := lower48.Max[1] - lower48.Min[1]

	shifted := 0
	out := &model.FeatureCollection{Features: make([]model.Feature, 0, input.Len())}
	for _, f := range input.Features {
		state := classifyState(f, opt.GEOIDColumn, outlying)
		p, ok := table[state]
		if !ok {
			out.Features = append(out.Features, f)
			continue
		}

		centroid := outlying[state].Center()
		target := orb.Point{
			lower48.Min[0] + p.dx*width,
			lower48.Min[1] + p.dy*height,
		}
		f.Geometry = transformGeometry(f.Geometry, func(pt orb.Point) orb.Point {
			return orb.Point{
				(pt[0]-centroid[0])*p.scale + target[0],
				(pt[1]-centroid[1])*p.scale + target[1],
			}
		})
		out.Features = append(out.Features, f)
		shifted++
	}

	if shifted == 0 {
		ctxlog.From(ctx).Warn("no features are in Alaska, Hawaii or Puerto Rico, nothing was shifted")
	}
	return out, nil
}

// classifyState returns the state FIPS code of a feature, either from
// the GEOID attribute or by bounding-box overlay with the outlying
// state boxes. Features outside the outlying states return "00".
func classifyState(f model.Feature, geoidColumn string, outlying map[string]orb.Bound) string {
	if geoidColumn != "" {
		geoid := f.Property(geoidColumn)
		if len(geoid) >= 2 {
			return geoid[:2]
		}
		return "00"
	}
	for state, box := range outlying {
		if box.Intersects(f.Bound()) {
			return state
		}
	}
	return "00"
}

// transformGeometry applies fn to every coordinate of g.
func transformGeometry(g orb.Geometry, fn func(orb.Point) orb.Point) orb.Geometry {
	switch v := g.(type) {
	case orb.Point:
		return fn(v)
	case orb.MultiPoint:
		out := make(orb.MultiPoint, len(v))
		for i, p := range v {
			out[i] = fn(p)
		}
		return out
	case orb.LineString:
		out := make(orb.LineString, len(v))
		for i, p := range v {
			out[i] = fn(p)
		}
		return out
	case orb.MultiLineString:
		out := make(orb.MultiLineString, len(v))
		for i, ls := range v {
			out[i] = transformGeometry(ls, fn).(orb.LineString)
		}
		return out
	case orb.Ring:
		out := make(orb.Ring, len(v))
		for i, p := range v {
			out[i] = fn(p)
		}
		return out
	case orb.Polygon:
		out := make(orb.Polygon, len(v))
		for i, r := range v {
			out[i] = transformGeometry(r, fn).(orb.Ring)
		}
		return out
	case orb.MultiPolygon:
		out := make(orb.MultiPolygon, len(v))
		for i, p := range v {
			out[i] = transformGeometry(p, fn).(orb.Polygon)
		}
		return out
	case orb.Collection:
		out := make(orb.Collection, len(v))
		for i, sub := range v {
			out[i] = transformGeometry(sub, fn)
		}
		return out
	default:
		return g
	}
}
