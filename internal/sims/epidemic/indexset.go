package epidemic

// IndexSet is a set of cell indices in [0, n) with constant-time Add, Remove
// and Has. Iteration order is insertion order until a removal, which moves
// the last member into the freed slot.
type IndexSet struct {
	items []int
	pos   []int32 // position+1 in items; 0 means absent
}

// NewIndexSet returns an empty set able to hold indices in [0, n).
func NewIndexSet(n int) *IndexSet {
	return &IndexSet{pos: make([]int32, n)}
}

// Len returns the number of members.
func (s *IndexSet) Len() int { return len(s.items) }

// Has reports whether idx is a member.
func (s *IndexSet) Has(idx int) bool {
	return idx >= 0 && idx < len(s.pos) && s.pos[idx] != 0
}

// Add inserts idx and reports whether it was absent.
func (s *IndexSet) Add(idx int) bool {
	if s.pos[idx] != 0 {
		return false
	}
	s.items = append(s.items, idx)
	s.pos[idx] = int32(len(s.items))
	return true
}

// Remove deletes idx and reports whether it was present.
func (s *IndexSet) Remove(idx int) bool {
	p := s.pos[idx]
	if p == 0 {
		return false
	}
	last := len(s.items) - 1
	moved := s.items[last]
	s.items[p-1] = moved
	s.pos[moved] = p
	s.items = s.items[:last]
	s.pos[idx] = 0
	return true
}

// Clear removes every member, keeping capacity.
func (s *IndexSet) Clear() {
	for _, idx := range s.items {
		s.pos[idx] = 0
	}
	s.items = s.items[:0]
}

// AppendTo appends the members to dst in iteration order.
func (s *IndexSet) AppendTo(dst []int) []int {
	return append(dst, s.items...)
}

// Items returns a copy of the members.
func (s *IndexSet) Items() []int {
	return s.AppendTo(make([]int, 0, len(s.items)))
}
