package model

import "github.com/paulmach/orb"

// Feature is a single record from a TIGER/Line or cartographic boundary
// shapefile: a geometry plus its DBF attributes as strings.
type Feature struct {
	Geometry   orb.Geometry
	Properties map[string]string
}

// Property returns the attribute value for key, or "" if absent.
func (f Feature) Property(key string) string {
	return f.Properties[key]
}

// Bound returns the bounding box of the feature geometry.
func (f Feature) Bound() orb.Bound {
	return f.Geometry.Bound()
}

// FeatureCollection is an in-memory geospatial dataset decoded from a
// single shapefile archive.
type FeatureCollection struct {
	Features []Feature
}

// Len returns the number of features.
func (fc *FeatureCollection) Len() int {
	return len(fc.Features)
}

// Filter returns a new collection with the features for which keep is true.
func (fc *FeatureCollection) Filter(keep func(Feature) bool) *FeatureCollection {
	out := &FeatureCollection{}
	for _, f := range fc.Features {
		if keep(f) {
			out.Features = append(out.Features, f)
		}
	}
	return out
}

// FilterProperty returns the features whose attribute key equals any of
// the given values.
func (fc *FeatureCollection) FilterProperty(key string, values ...string) *FeatureCollection {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return fc.Filter(func(f Feature) bool {
		return set[f.Property(key)]
	})
}

// Head returns the first n features (all of them when n exceeds the length).
func (fc *FeatureCollection) Head(n int) *FeatureCollection {
	if n > len(fc.Features) {
		n = len(fc.Features)
	}
	return &FeatureCollection{Features: append([]Feature(nil), fc.Features[:n]...)}
}

// Append adds all features from other. Used when a dataset is assembled
// from multiple per-county archives.
func (fc *FeatureCollection) Append(other *FeatureCollection) {
	fc.Features = append(fc.Features, other.Features...)
}

// Bound returns the bounding box covering every feature in the collection.
func (fc *FeatureCollection) Bound() orb.Bound {
	var b orb.Bound
	for i, f := range fc.Features {
		if i == 0 {
			b = f.Bound()
			continue
		}
		b = b.Union(f.Bound())
	}
	return b
}

// PropertyKeys returns the attribute keys of the first feature. Shapefile
// records share a single DBF schema, so one feature is representative.
func (fc *FeatureCollection) PropertyKeys() []string {
	if len(fc.Features) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fc.Features[0].Properties))
	for k := range fc.Features[0].Properties {
		keys = append(keys, k)
	}
	return keys
}
