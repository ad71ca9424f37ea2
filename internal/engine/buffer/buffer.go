package buffer

import (
	"errors"
	"sort"
	"strings"
	"sync"
)

// ErrRangeInvalid is returned when an edit range does not satisfy
// 0 <= Start <= End <= Len.
var ErrRangeInvalid = errors.New("invalid range")

// Buffer is a line-indexed text buffer. All methods are thread-safe.
type Buffer struct {
	mu         sync.RWMutex
	content    string
	lineStarts []ByteOffset // start offset of each line; always at least one entry
	revisionID RevisionID
}

// New creates a new empty buffer.
func New() *Buffer {
	return FromString("")
}

// FromString creates a buffer with initial content.
func FromString(s string) *Buffer {
	b := &Buffer{
		content:    s,
		revisionID: NewRevisionID(),
	}
	b.reindex()
	return b
}

// reindex rebuilds the line start index. Caller holds the write lock
// (or exclusive ownership during construction).
func (b *Buffer) reindex() {
	starts := []ByteOffset{0}
	for i := 0; i < len(b.content); i++ {
		if b.content[i] == '\n' {
			starts = append(starts, ByteOffset(i+1))
		}
	}
	b.lineStarts = starts
}

// Text returns the full buffer content.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.content
}

// TextRange returns text in the given byte range, clamped to the buffer.
func (b *Buffer) TextRange(start, end ByteOffset) string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	n := ByteOffset(len(b.content))
	if start < 0 {
		start = 0
	}
	if end > n {
		end = n
	}
	if start >= end {
		return ""
	}
	return b.content[start:end]
}

// Len returns the total byte length of the buffer.
func (b *Buffer) Len() ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return ByteOffset(len(b.content))
}

// IsEmpty returns true if the buffer is empty.
func (b *Buffer) IsEmpty() bool {
	return b.Len() == 0
}

// LineCount returns the number of lines. An empty buffer has one line.
func (b *Buffer) LineCount() uint32 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return uint32(len(b.lineStarts))
}

// LineText returns the text of a specific line without its newline.
// Returns the empty string for out-of-range lines.
func (b *Buffer) LineText(line uint32) string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if int(line) >= len(b.lineStarts) {
		return ""
	}
	start := b.lineStarts[line]
	end := b.lineEndLocked(line)
	return b.content[start:end]
}

// LineStartOffset returns the byte offset of the start of a line.
// Out-of-range lines clamp to the end of the buffer.
func (b *Buffer) LineStartOffset(line uint32) ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if int(line) >= len(b.lineStarts) {
		return ByteOffset(len(b.content))
	}
	return b.lineStarts[line]
}

// LineEndOffset returns the byte offset of the end of a line, before its
// newline. Out-of-range lines clamp to the end of the buffer.
func (b *Buffer) LineEndOffset(line uint32) ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if int(line) >= len(b.lineStarts) {
		return ByteOffset(len(b.content))
	}
	return b.lineEndLocked(line)
}

// lineEndLocked returns the end offset of line excluding the newline.
// Caller holds a lock.
func (b *Buffer) lineEndLocked(line uint32) ByteOffset {
	if int(line)+1 < len(b.lineStarts) {
		return b.lineStarts[line+1] - 1 // before the \n
	}
	return ByteOffset(len(b.content))
}

// OffsetToPoint converts a byte offset to a line/column point.
// Offsets are clamped to the buffer bounds.
func (b *Buffer) OffsetToPoint(offset ByteOffset) Point {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if offset < 0 {
		offset = 0
	}
	if offset > ByteOffset(len(b.content)) {
		offset = ByteOffset(len(b.content))
	}

	// First line start greater than offset; the line is the one before it.
	line := sort.Search(len(b.lineStarts), func(i int) bool {
		return b.lineStarts[i] > offset
	}) - 1

	return Point{
		Line:   uint32(line),
		Column: uint32(offset - b.lineStarts[line]),
	}
}

// PointToOffset converts a line/column point to a byte offset.
// Points past the end of a line clamp to the line end.
func (b *Buffer) PointToOffset(p Point) ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if int(p.Line) >= len(b.lineStarts) {
		return ByteOffset(len(b.content))
	}
	offset := b.lineStarts[p.Line] + ByteOffset(p.Column)
	if end := b.lineEndLocked(p.Line); offset > end {
		offset = end
	}
	return offset
}

// Insert inserts text at the given offset.
// Returns the end position of the inserted text.
func (b *Buffer) Insert(offset ByteOffset, text string) (ByteOffset, error) {
	res, err := b.ApplyEdit(NewInsert(offset, text))
	if err != nil {
		return 0, err
	}
	return res.NewRange.End, nil
}

// Delete removes text in the given range.
func (b *Buffer) Delete(start, end ByteOffset) error {
	_, err := b.ApplyEdit(NewDelete(start, end))
	return err
}

// Replace replaces text in the given range with new text as a single
// atomic edit. Returns the end position of the replacement text.
func (b *Buffer) Replace(start, end ByteOffset, text string) (ByteOffset, error) {
	res, err := b.ApplyEdit(NewEdit(NewRange(start, end), text))
	if err != nil {
		return 0, err
	}
	return res.NewRange.End, nil
}

// ApplyEdit applies a single edit to the buffer atomically.
func (b *Buffer) ApplyEdit(edit Edit) (EditResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := ByteOffset(len(b.content))
	if edit.Range.Start < 0 || !edit.Range.IsValid() || edit.Range.End > n {
		return EditResult{}, ErrRangeInvalid
	}

	oldText := b.content[edit.Range.Start:edit.Range.End]

	var sb strings.Builder
	sb.Grow(len(b.content) - len(oldText) + len(edit.NewText))
	sb.WriteString(b.content[:edit.Range.Start])
	sb.WriteString(edit.NewText)
	sb.WriteString(b.content[edit.Range.End:])
	b.content = sb.String()

	b.reindex()
	b.revisionID = NewRevisionID()

	newEnd := edit.Range.Start + ByteOffset(len(edit.NewText))
	return EditResult{
		OldRange: edit.Range,
		NewRange: Range{Start: edit.Range.Start, End: newEnd},
		OldText:  oldText,
		Delta:    edit.Delta(),
	}, nil
}

// RevisionID returns the current revision ID.
func (b *Buffer) RevisionID() RevisionID {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revisionID
}
