package model

import "github.com/paulmach/orb"

// Subset is a declarative post-fetch subset directive applied to a
// decoded FeatureCollection. At most one selector is honored, checked in
// the order Bounds, Within, Head.
type Subset struct {
	// Bounds keeps features whose bounding box intersects this box.
	Bounds *orb.Bound
	// Within keeps features whose bounding box intersects the bounding
	// box of the reference geometry.
	Within orb.Geometry
	// Head keeps the first N features.
	Head int
}

// Apply returns the subset of fc selected by s. A nil or zero Subset
// returns fc unchanged.
func (s *Subset) Apply(fc *FeatureCollection) *FeatureCollection {
	if s == nil || fc == nil {
		return fc
	}
	switch {
	case s.Bounds != nil:
		return fc.Filter(func(f Feature) bool {
			return s.Bounds.Intersects(f.Bound())
		})
	case s.Within != nil:
		ref := s.Within.Bound()
		return fc.Filter(func(f Feature) bool {
			return ref.Intersects(f.Bound())
		})
	case s.Head > 0:
		return fc.Head(s.Head)
	}
	return fc
}
