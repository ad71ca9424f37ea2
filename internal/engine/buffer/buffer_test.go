package buffer

import (
	"errors"
	"sync"
	"testing"
)

func TestNewBuffer(t *testing.T) {
	b := New()

	if !b.IsEmpty() {
		t.Error("new buffer should be empty")
	}
	if b.Len() != 0 {
		t.Errorf("expected length 0, got %d", b.Len())
	}
	if b.LineCount() != 1 {
		t.Errorf("expected 1 line, got %d", b.LineCount())
	}
}

func TestFromString(t *testing.T) {
	text := "Hello, World!"
	b := FromString(text)

	if b.Text() != text {
		t.Errorf("expected %q, got %q", text, b.Text())
	}
	if b.Len() != int64(len(text)) {
		t.Errorf("expected length %d, got %d", len(text), b.Len())
	}
}

func TestLineAccess(t *testing.T) {
	b := FromString("line1\nline2\nline3")

	if b.LineCount() != 3 {
		t.Fatalf("expected 3 lines, got %d", b.LineCount())
	}

	lines := []string{"line1", "line2", "line3"}
	for i, want := range lines {
		if got := b.LineText(uint32(i)); got != want {
			t.Errorf("LineText(%d) = %q, want %q", i, got, want)
		}
	}

	if b.LineStartOffset(1) != 6 {
		t.Errorf("LineStartOffset(1) = %d, want 6", b.LineStartOffset(1))
	}
	if b.LineEndOffset(1) != 11 {
		t.Errorf("LineEndOffset(1) = %d, want 11", b.LineEndOffset(1))
	}

	// Out of range lines clamp to buffer end.
	if b.LineText(9) != "" {
		t.Error("out-of-range LineText should be empty")
	}
	if b.LineStartOffset(9) != b.Len() {
		t.Error("out-of-range LineStartOffset should clamp to Len")
	}
}

func TestTrailingNewline(t *testing.T) {
	b := FromString("a\n")

	if b.LineCount() != 2 {
		t.Fatalf("expected 2 lines, got %d", b.LineCount())
	}
	if b.LineText(0) != "a" {
		t.Errorf("LineText(0) = %q, want a", b.LineText(0))
	}
	if b.LineText(1) != "" {
		t.Errorf("LineText(1) = %q, want empty", b.LineText(1))
	}
	if b.LineEndOffset(0) != 1 {
		t.Errorf("LineEndOffset(0) = %d, want 1", b.LineEndOffset(0))
	}
}

func TestOffsetPointRoundTrip(t *testing.T) {
	b := FromString("ab\ncde\n\nf")

	tests := []struct {
		offset ByteOffset
		point  Point
	}{
		{0, Point{0, 0}},
		{2, Point{0, 2}},
		{3, Point{1, 0}},
		{6, Point{1, 3}},
		{7, Point{2, 0}},
		{8, Point{3, 0}},
		{9, Point{3, 1}},
	}

	for _, tt := range tests {
		if got := b.OffsetToPoint(tt.offset); got != tt.point {
			t.Errorf("OffsetToPoint(%d) = %v, want %v", tt.offset, got, tt.point)
		}
		if got := b.PointToOffset(tt.point); got != tt.offset {
			t.Errorf("PointToOffset(%v) = %d, want %d", tt.point, got, tt.offset)
		}
	}
}

func TestOffsetToPointClamps(t *testing.T) {
	b := FromString("abc")

	if got := b.OffsetToPoint(-1); got != (Point{0, 0}) {
		t.Errorf("negative offset = %v, want (0:0)", got)
	}
	if got := b.OffsetToPoint(99); got != (Point{0, 3}) {
		t.Errorf("past-end offset = %v, want (0:3)", got)
	}
}

func TestPointToOffsetClampsColumn(t *testing.T) {
	b := FromString("ab\ncd")

	if got := b.PointToOffset(Point{0, 99}); got != 2 {
		t.Errorf("overlong column = %d, want line end 2", got)
	}
	if got := b.PointToOffset(Point{9, 0}); got != b.Len() {
		t.Errorf("out-of-range line = %d, want Len", got)
	}
}

func TestInsert(t *testing.T) {
	b := FromString("Hello World")

	end, err := b.Insert(5, ",")
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if end != 6 {
		t.Errorf("expected end position 6, got %d", end)
	}
	if b.Text() != "Hello, World" {
		t.Errorf("expected 'Hello, World', got %q", b.Text())
	}
}

func TestInsertOutOfRange(t *testing.T) {
	b := FromString("abc")

	if _, err := b.Insert(10, "x"); !errors.Is(err, ErrRangeInvalid) {
		t.Errorf("expected ErrRangeInvalid, got %v", err)
	}
	if _, err := b.Insert(-1, "x"); !errors.Is(err, ErrRangeInvalid) {
		t.Errorf("expected ErrRangeInvalid, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	b := FromString("Hello, World")

	if err := b.Delete(5, 7); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if b.Text() != "HelloWorld" {
		t.Errorf("expected HelloWorld, got %q", b.Text())
	}
}

func TestReplace(t *testing.T) {
	b := FromString("hello /todo")

	end, err := b.Replace(6, 11, "X 2026")
	if err != nil {
		t.Fatalf("replace failed: %v", err)
	}
	if b.Text() != "hello X 2026" {
		t.Errorf("expected 'hello X 2026', got %q", b.Text())
	}
	if end != 12 {
		t.Errorf("expected end 12, got %d", end)
	}
}

func TestReplaceUpdatesLineIndex(t *testing.T) {
	b := FromString("one two")

	if _, err := b.Replace(4, 7, "a\nb\nc"); err != nil {
		t.Fatalf("replace failed: %v", err)
	}
	if b.LineCount() != 3 {
		t.Errorf("expected 3 lines after multiline replace, got %d", b.LineCount())
	}
	if b.LineText(1) != "b" {
		t.Errorf("LineText(1) = %q, want b", b.LineText(1))
	}
}

func TestApplyEditResult(t *testing.T) {
	b := FromString("abcdef")

	res, err := b.ApplyEdit(NewEdit(NewRange(2, 4), "XYZ"))
	if err != nil {
		t.Fatalf("edit failed: %v", err)
	}
	if res.OldText != "cd" {
		t.Errorf("OldText = %q, want cd", res.OldText)
	}
	if res.NewRange != (Range{2, 5}) {
		t.Errorf("NewRange = %v, want [2:5)", res.NewRange)
	}
	if res.Delta != 1 {
		t.Errorf("Delta = %d, want 1", res.Delta)
	}
}

func TestRevisionChangesOnEdit(t *testing.T) {
	b := FromString("abc")
	rev := b.RevisionID()

	if _, err := b.Insert(0, "x"); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if b.RevisionID() == rev {
		t.Error("revision should change after an edit")
	}
}

func TestTextRangeClamps(t *testing.T) {
	b := FromString("abcdef")

	if got := b.TextRange(2, 4); got != "cd" {
		t.Errorf("TextRange(2,4) = %q, want cd", got)
	}
	if got := b.TextRange(-5, 2); got != "ab" {
		t.Errorf("TextRange(-5,2) = %q, want ab", got)
	}
	if got := b.TextRange(4, 99); got != "ef" {
		t.Errorf("TextRange(4,99) = %q, want ef", got)
	}
	if got := b.TextRange(5, 2); got != "" {
		t.Errorf("TextRange(5,2) = %q, want empty", got)
	}
}

func TestConcurrentReads(t *testing.T) {
	b := FromString("line1\nline2\nline3")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = b.Text()
				_ = b.LineText(1)
				_ = b.OffsetToPoint(7)
			}
		}()
	}

	for j := 0; j < 50; j++ {
		if _, err := b.Insert(0, "x"); err != nil {
			t.Fatalf("insert failed: %v", err)
		}
	}
	wg.Wait()
}
