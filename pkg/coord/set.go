package coord

// Set is an insertion-ordered set of coordinate strings.
//
// It is the de-duplication ledger threaded through one closure resolution:
// it grows monotonically and is not safe for concurrent mutation. The zero
// value is not usable; create one with NewSet.
type Set struct {
	seen  map[string]bool
	order []string
}

// NewSet creates a Set containing the given coordinates in order.
func NewSet(coords ...string) *Set {
	s := &Set{seen: make(map[string]bool, len(coords))}
	for _, c := range coords {
		s.Add(c)
	}
	return s
}

// Add inserts the coordinate, reporting whether it was newly added.
// Duplicates keep their first position.
func (s *Set) Add(c string) bool {
	if s.seen[c] {
		return false
	}
	s.seen[c] = true
	s.order = append(s.order, c)
	return true
}

// AddAll inserts every coordinate from other, preserving first-seen order.
func (s *Set) AddAll(other *Set) {
	if other == nil {
		return
	}
	for _, c := range other.order {
		s.Add(c)
	}
}

// Contains reports whether the coordinate is in the set.
func (s *Set) Contains(c string) bool {
	return s.seen[c]
}

// Len returns the number of coordinates in the set.
func (s *Set) Len() int {
	return len(s.order)
}

// Values returns the coordinates in insertion order.
// The returned slice is a copy; mutating it does not affect the set.
func (s *Set) Values() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}
