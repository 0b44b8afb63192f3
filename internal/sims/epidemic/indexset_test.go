package epidemic

import (
	"slices"
	"testing"
)

func TestIndexSetAddRemove(t *testing.T) {
	s := NewIndexSet(10)
	for _, idx := range []int{3, 7, 1} {
		if !s.Add(idx) {
			t.Fatalf("Add(%d) reported present", idx)
		}
	}
	if s.Add(7) {
		t.Fatal("duplicate Add accepted")
	}
	if !s.Remove(3) {
		t.Fatal("Remove(3) reported absent")
	}
	if s.Remove(3) {
		t.Fatal("second Remove(3) reported present")
	}
	if s.Has(3) || !s.Has(7) || !s.Has(1) {
		t.Fatalf("membership wrong after removal: %v", s.Items())
	}
	if got := s.Items(); !slices.Equal(got, []int{1, 7}) {
		t.Fatalf("items %v, want [1 7]", got)
	}
	if s.Has(-1) || s.Has(10) {
		t.Fatal("out-of-range index reported present")
	}

	s.Clear()
	if s.Len() != 0 || s.Has(7) {
		t.Fatal("Clear left members behind")
	}
	if !s.Add(7) {
		t.Fatal("Add after Clear rejected")
	}
}

func TestIndexSetItemsIsACopy(t *testing.T) {
	s := NewIndexSet(4)
	s.Add(2)
	items := s.Items()
	items[0] = 3
	if !s.Has(2) || s.Has(3) {
		t.Fatal("mutating Items changed the set")
	}
}
