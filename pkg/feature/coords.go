package feature

import (
	"github.com/varun-a1/odlparent/pkg/coord"
)

// CoordSource is anything that yields a set of referenced artifact
// coordinates. Both *Features and *Feature implement it.
type CoordSource interface {
	// Coords returns the referenced coordinates, insertion-ordered and
	// duplicate-free. Any malformed location fails the whole extraction.
	Coords() (*coord.Set, error)
}

// Coords returns every coordinate the descriptor references: its repository
// locations plus, for every feature it directly contains, that feature's
// bundle and configfile locations. It does not recurse into repositories.
func (f *Features) Coords() (*coord.Set, error) {
	result, err := RepositoryCoords(f)
	if err != nil {
		return nil, err
	}
	for i := range f.Feature {
		coords, err := f.Feature[i].Coords()
		if err != nil {
			return nil, err
		}
		result.AddAll(coords)
	}
	return result, nil
}

// Coords returns the union of the feature's normalized bundle and configfile
// coordinates. It does not look at repositories.
func (ft *Feature) Coords() (*coord.Set, error) {
	result := coord.NewSet()
	for _, b := range ft.Bundle {
		c, err := coord.Normalize(b.Location)
		if err != nil {
			return nil, err
		}
		result.Add(c)
	}
	for _, cf := range ft.ConfigFile {
		c, err := coord.Normalize(cf.Location)
		if err != nil {
			return nil, err
		}
		result.Add(c)
	}
	return result, nil
}

// RepositoryCoords normalizes the descriptor's repository locations into a
// coordinate set, insertion-ordered with duplicates suppressed.
func RepositoryCoords(f *Features) (*coord.Set, error) {
	result := coord.NewSet()
	for _, loc := range f.Repository {
		c, err := coord.Normalize(loc)
		if err != nil {
			return nil, err
		}
		result.Add(c)
	}
	return result, nil
}

// RepositoryCoordsAll unions the repository coordinates of several
// descriptors, preserving first-seen order.
func RepositoryCoordsAll(all []*Features) (*coord.Set, error) {
	return unionAll(all, RepositoryCoords)
}

// CoordsAll unions the full coordinate sets of several descriptors,
// preserving first-seen order.
func CoordsAll(all []*Features) (*coord.Set, error) {
	return unionAll(all, func(f *Features) (*coord.Set, error) { return f.Coords() })
}

func unionAll(all []*Features, extract func(*Features) (*coord.Set, error)) (*coord.Set, error) {
	result := coord.NewSet()
	for _, f := range all {
		coords, err := extract(f)
		if err != nil {
			return nil, err
		}
		result.AddAll(coords)
	}
	return result, nil
}
