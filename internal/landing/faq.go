package landing

import (
	"sort"
	"strconv"
	"strings"
)

// OpenSet indexes of the expanded FAQ entries, carried in the "open" query
// parameter. Values are never mutated, Toggle returns a new set.
type OpenSet struct {
	open map[int]struct{}
}

// ParseOpenSet parse a comma separated index list. Entries that are not
// numbers or fall outside [0, size) are dropped.
func ParseOpenSet(raw string, size int) OpenSet {
	s := OpenSet{open: make(map[int]struct{})}
	for _, part := range strings.Split(raw, ",") {
		i, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || i < 0 || i >= size {
			continue
		}
		s.open[i] = struct{}{}
	}
	return s
}

// Has .
func (s OpenSet) Has(i int) bool {
	_, ok := s.open[i]
	return ok
}

// Toggle a copy with entry i flipped
func (s OpenSet) Toggle(i int) OpenSet {
	next := OpenSet{open: make(map[int]struct{}, len(s.open)+1)}
	for k := range s.open {
		next.open[k] = struct{}{}
	}
	if s.Has(i) {
		delete(next.open, i)
	} else {
		next.open[i] = struct{}{}
	}
	return next
}

// Indexes ascending
func (s OpenSet) Indexes() []int {
	indexes := make([]int, 0, len(s.open))
	for i := range s.open {
		indexes = append(indexes, i)
	}
	sort.Ints(indexes)
	return indexes
}

// Encode query parameter value, ascending and comma separated
func (s OpenSet) Encode() string {
	parts := make([]string, 0, len(s.open))
	for _, i := range s.Indexes() {
		parts = append(parts, strconv.Itoa(i))
	}
	return strings.Join(parts, ",")
}
