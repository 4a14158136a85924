package region

import (
	"slices"
	"strings"

	"github.com/matzehuels/boundlayout/pkg/core/geom"
	"github.com/matzehuels/boundlayout/pkg/core/partition"
	"github.com/matzehuels/boundlayout/pkg/errors"
)

// Set is the id-keyed collection of regions for one run.
type Set struct {
	byID  map[string]*Region
	order []string
}

// NewSet returns an empty set.
func NewSet() *Set {
	return &Set{byID: make(map[string]*Region)}
}

// Build creates a set from specs, rejecting duplicates and invalid geometry.
func Build(specs []Spec) (*Set, error) {
	s := NewSet()
	for _, spec := range specs {
		r, err := New(spec)
		if err != nil {
			return nil, err
		}
		if err := s.Add(r); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Add inserts r. Duplicate ids and the reserved outer key are rejected.
func (s *Set) Add(r *Region) error {
	if r.ID == OuterKey {
		return errors.New(errors.ErrCodeInvalidConfig, "region id %q is reserved", OuterKey)
	}
	return s.insert(r)
}

func (s *Set) insert(r *Region) error {
	if _, ok := s.byID[r.ID]; ok {
		return errors.New(errors.ErrCodeInvalidGeometry, "duplicate region id %q", r.ID)
	}
	s.byID[r.ID] = r
	s.order = append(s.order, r.ID)
	return nil
}

// Get returns the region with the given id.
func (s *Set) Get(id string) (*Region, bool) {
	r, ok := s.byID[id]
	return r, ok
}

// Len returns the number of regions, including the outer region if added.
func (s *Set) Len() int { return len(s.order) }

// IDs returns region ids in insertion order.
func (s *Set) IDs() []string { return slices.Clone(s.order) }

// All returns regions in insertion order.
func (s *Set) All() []*Region {
	out := make([]*Region, len(s.order))
	for i, id := range s.order {
		out[i] = s.byID[id]
	}
	return out
}

// Outer returns the synthetic outer region, if present.
func (s *Set) Outer() (*Region, bool) { return s.Get(OuterKey) }

// Owner resolves a particle category to its region, falling back to the
// outer region for unknown categories.
func (s *Set) Owner(category string) (*Region, bool) {
	if r, ok := s.byID[category]; ok {
		return r, true
	}
	return s.Outer()
}

// AddOuter synthesizes the outer region: the union of all region boxes,
// scaled about its center by thickness. It returns nil when the set is
// empty. Calling it again replaces nothing and returns the existing region.
func (s *Set) AddOuter(thickness float64) *Region {
	if r, ok := s.Outer(); ok {
		return r
	}
	if len(s.order) == 0 {
		return nil
	}
	union := s.byID[s.order[0]].Box
	for _, id := range s.order[1:] {
		union = union.Union(s.byID[id].Box)
	}
	r := &Region{
		ID:       OuterKey,
		Shape:    geom.Rectangle,
		Box:      union.ScaleAboutCenter(thickness),
		ScaleMod: DefaultScaleMod,
	}
	s.byID[OuterKey] = r
	s.order = append(s.order, OuterKey)
	return r
}

// SetScaleMod sets the projection interval on every region.
func (s *Set) SetScaleMod(mod int) {
	if mod < 1 {
		mod = 1
	}
	for _, r := range s.byID {
		r.ScaleMod = mod
	}
}

// Setup computes intersections and init points for every region. Region b
// intersects a when their interiors overlap and b's box does not contain
// a's. Intersections are ordered by ascending area, then id.
func (s *Set) Setup() {
	for _, id := range s.order {
		r := s.byID[id]
		r.Intersecting = r.Intersecting[:0]
		for _, otherID := range s.order {
			o := s.byID[otherID]
			if o == r {
				continue
			}
			if r.Box.Intersects(o.Box) && !o.Box.Contains(r.Box) {
				r.Intersecting = append(r.Intersecting, otherID)
			}
		}
		slices.SortFunc(r.Intersecting, func(a, b string) int {
			aa, ba := s.byID[a].Box.Area(), s.byID[b].Box.Area()
			switch {
			case aa < ba:
				return -1
			case aa > ba:
				return 1
			}
			return strings.Compare(a, b)
		})
		r.InitPoints = s.initPoints(r)
	}
}

// Partition returns the free-space decomposition of r's box around its
// intersecting regions.
func (s *Set) Partition(r *Region) *partition.Tree {
	overlaps := make([]geom.Box, 0, len(r.Intersecting))
	for _, id := range r.Intersecting {
		overlaps = append(overlaps, s.byID[id].Box)
	}
	return partition.Decompose(r.Box, overlaps)
}

func (s *Set) initPoints(r *Region) []geom.Point {
	if len(r.Intersecting) == 0 {
		return []geom.Point{r.Center()}
	}
	var points []geom.Point
	for _, leaf := range s.Partition(r).Leaves() {
		c := leaf.Center()
		if r.Shape.IsElliptical() && geom.EllipseValue(r.Box, c) >= 1 {
			continue
		}
		points = append(points, c)
	}
	if len(points) == 0 {
		return []geom.Point{r.Center()}
	}
	return points
}
