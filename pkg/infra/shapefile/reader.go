package shapefile

import (
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/tigerline/pkg/domain/model"
	"github.com/paulmach/orb"
)

// Decode reads a zipped ESRI shapefile archive (the format every
// TIGER/Line and cartographic boundary file is published in) and returns
// its records as a FeatureCollection. DBF attributes become string
// properties keyed by field name.
func Decode(path string) (*model.FeatureCollection, error) {
	zr, err := shp.OpenZip(path)
	if err != nil {
		return nil, goerr.Wrap(err, "opening shapefile archive", goerr.Value("path", path))
	}
	defer zr.Close()

	fields := zr.Fields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = strings.TrimRight(f.String(), "\x00")
	}

	fc := &model.FeatureCollection{}
	for zr.Next() {
		_, shape := zr.Shape()
		geom, err := toGeometry(shape)
		if err != nil {
			return nil, err
		}

		props := make(map[string]string, len(names))
		for i, name := range names {
			props[name] = strings.TrimSpace(zr.Attribute(i))
		}
		fc.Features = append(fc.Features, model.Feature{
			Geometry:   geom,
			Properties: props,
		})
	}
	if err := zr.Err(); err != nil {
		return nil, goerr.Wrap(err, "reading shapefile records", goerr.Value("path", path))
	}
	return fc, nil
}

// toGeometry converts a go-shp shape to an orb geometry. TIGER files use
// Point, PolyLine, and Polygon layers; Z/M variants are accepted for
// completeness.
func toGeometry(s shp.Shape) (orb.Geometry, error) {
	switch v := s.(type) {
	case *shp.Point:
		return orb.Point{v.X, v.Y}, nil
	case *shp.PointM:
		return orb.Point{v.X, v.Y}, nil
	case *shp.PointZ:
		return orb.Point{v.X, v.Y}, nil
	case *shp.MultiPoint:
		return toMultiPoint(v.Points), nil
	case *shp.PolyLine:
		return toMultiLineString(v.Parts, v.Points), nil
	case *shp.PolyLineM:
		return toMultiLineString(v.Parts, v.Points), nil
	case *shp.PolyLineZ:
		return toMultiLineString(v.Parts, v.Points), nil
	case *shp.Polygon:
		return toPolygon(v.Parts, v.Points), nil
	case *shp.PolygonM:
		return toPolygon(v.Parts, v.Points), nil
	case *shp.PolygonZ:
		return toPolygon(v.Parts, v.Points), nil
	case *shp.Null:
		return orb.Point{}, nil
	default:
		return nil, goerr.New("unsupported shape type", goerr.Value("type", s))
	}
}

func toMultiPoint(points []shp.Point) orb.MultiPoint {
	mp := make(orb.MultiPoint, len(points))
	for i, p := range points {
		mp[i] = orb.Point{p.X, p.Y}
	}
	return mp
}

func toMultiLineString(parts []int32, points []shp.Point) orb.MultiLineString {
	mls := make(orb.MultiLineString, 0, len(parts))
	for _, part := range splitParts(parts, points) {
		ls := make(orb.LineString, len(part))
		for i, p := range part {
			ls[i] = orb.Point{p.X, p.Y}
		}
		mls = append(mls, ls)
	}
	return mls
}

func toPolygon(parts []int32, points []shp.Point) orb.Polygon {
	poly := make(orb.Polygon, 0, len(parts))
	for _, part := range splitParts(parts, points) {
		ring := make(orb.Ring, len(part))
		for i, p := range part {
			ring[i] = orb.Point{p.X, p.Y}
		}
		poly = append(poly, ring)
	}
	return poly
}

// splitParts slices the flat point array into per-part segments using
// the shapefile part offsets.
func splitParts(parts []int32, points []shp.Point) [][]shp.Point {
	if len(parts) == 0 {
		return [][]shp.Point{points}
	}
	out := make([][]shp.Point, 0, len(parts))
	for i, start := range parts {
		end := int32(len(points))
		if i+1 < len(parts) {
			end = parts[i+1]
		}
		if start < 0 || int(start) > len(points) || end < start {
			continue
		}
		out = append(out, points[start:end])
	}
	return out
}
