package player

import "sort"

// IDSet is a set of player ids.
type IDSet map[int]struct{}

func NewIDSet(ids ...int) IDSet {
	out := make(IDSet, len(ids))
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out
}

func (s IDSet) Add(id int) {
	s[id] = struct{}{}
}

func (s IDSet) Has(id int) bool {
	_, ok := s[id]
	return ok
}

func (s IDSet) Len() int {
	return len(s)
}

// Intersect returns a new set; neither input is modified.
func (s IDSet) Intersect(other IDSet) IDSet {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}

	out := make(IDSet, len(small))
	for id := range small {
		if _, ok := large[id]; ok {
			out[id] = struct{}{}
		}
	}
	return out
}

// Merge adds every id of other into s.
func (s IDSet) Merge(other IDSet) {
	for id := range other {
		s[id] = struct{}{}
	}
}

func (s IDSet) Contains(other IDSet) bool {
	for id := range other {
		if _, ok := s[id]; !ok {
			return false
		}
	}
	return true
}

func (s IDSet) Sorted() []int {
	out := make([]int, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}
