package buffer

import "testing"

func TestRangeProperties(t *testing.T) {
	r := NewRange(3, 8)

	if r.Len() != 5 {
		t.Errorf("Len() = %d, want 5", r.Len())
	}
	if r.IsEmpty() {
		t.Error("non-empty range reported empty")
	}
	if !r.IsValid() {
		t.Error("ordered range reported invalid")
	}
	if (Range{Start: 8, End: 3}).IsValid() {
		t.Error("reversed range reported valid")
	}
	if !NewRange(4, 4).IsEmpty() {
		t.Error("zero-length range not reported empty")
	}
	if got := r.String(); got != "[3:8)" {
		t.Errorf("String() = %q, want %q", got, "[3:8)")
	}
}

func TestRangeContains(t *testing.T) {
	r := NewRange(3, 8)

	tests := []struct {
		offset ByteOffset
		want   bool
	}{
		{2, false},
		{3, true},
		{7, true},
		{8, false}, // end is exclusive
	}
	for _, tt := range tests {
		if got := r.Contains(tt.offset); got != tt.want {
			t.Errorf("Contains(%d) = %v, want %v", tt.offset, got, tt.want)
		}
	}
}

func TestRangeShift(t *testing.T) {
	r := NewRange(3, 8).Shift(4)
	if r.Start != 7 || r.End != 12 {
		t.Errorf("Shift(4) = %v, want [7:12)", r)
	}
	r = r.Shift(-7)
	if r.Start != 0 || r.End != 5 {
		t.Errorf("Shift(-7) = %v, want [0:5)", r)
	}
}

func TestPointOrdering(t *testing.T) {
	a := Point{Line: 1, Column: 5}
	b := Point{Line: 2, Column: 0}
	c := Point{Line: 1, Column: 9}

	if !a.Before(b) || b.Before(a) {
		t.Error("line ordering wrong")
	}
	if !c.After(a) || a.After(c) {
		t.Error("column ordering wrong")
	}
	if a.Compare(a) != 0 {
		t.Error("point should compare equal to itself")
	}
	if got := a.String(); got != "(1:5)" {
		t.Errorf("String() = %q, want %q", got, "(1:5)")
	}
}

func TestEditDelta(t *testing.T) {
	tests := []struct {
		edit Edit
		want ByteOffset
	}{
		{NewInsert(2, "abc"), 3},
		{NewDelete(2, 6), -4},
		{NewEdit(NewRange(0, 2), "xyz"), 1},
		{NewEdit(NewRange(0, 3), "xyz"), 0},
	}
	for _, tt := range tests {
		if got := tt.edit.Delta(); got != tt.want {
			t.Errorf("%v Delta() = %d, want %d", tt.edit, got, tt.want)
		}
	}
}

func TestEditString(t *testing.T) {
	tests := []struct {
		edit Edit
		want string
	}{
		{NewInsert(2, "hi"), `Insert(2, "hi")`},
		{NewDelete(2, 6), "Delete[2:6)"},
		{NewEdit(NewRange(1, 3), "x"), `Replace[1:3) with "x"`},
	}
	for _, tt := range tests {
		if got := tt.edit.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
