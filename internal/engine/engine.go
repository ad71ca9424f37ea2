package engine

import (
	"fmt"
	"time"

	"github.com/dshills/snipstorm/internal/engine/buffer"
	"github.com/dshills/snipstorm/internal/input/key"
	"github.com/dshills/snipstorm/internal/notify"
	"github.com/dshills/snipstorm/internal/snippet"
)

// DefaultCompletionKey is the key spec used when none is configured.
const DefaultCompletionKey = "Space"

// Provider supplies the snippet list and trigger key consulted on each
// completion key press. Implementations return read-only snapshots; the
// engine never mutates what it receives.
type Provider interface {
	// Snippets returns the ordered snippet list. Order is significant:
	// the matcher returns the first match.
	Snippets() []snippet.Snippet

	// TriggerKey returns the configured trigger-key string. An empty
	// string is handled defensively by the matcher.
	TriggerKey() string
}

// Expansion describes one completed snippet expansion.
type Expansion struct {
	// Snippet is the matched snippet.
	Snippet snippet.Snippet

	// Replaced is the span of trigger text that was deleted.
	Replaced buffer.Range

	// Inserted is the range now occupied by the expanded text.
	Inserted buffer.Range

	// Text is the expanded template.
	Text string
}

// Engine performs trigger-driven text expansion over a buffer.
type Engine struct {
	buf        *buffer.Buffer
	cursor     buffer.ByteOffset
	provider   Provider
	sink       notify.Sink
	clock      snippet.Clock
	completion key.Event
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the time source for placeholder expansion.
func WithClock(clock snippet.Clock) Option {
	return func(e *Engine) {
		if clock != nil {
			e.clock = clock
		}
	}
}

// WithSink sets the notification sink.
func WithSink(sink notify.Sink) Option {
	return func(e *Engine) {
		if sink != nil {
			e.sink = sink
		}
	}
}

// WithCompletionKey sets the completion key from a key spec string.
// Unparseable specs keep the default.
func WithCompletionKey(spec string) Option {
	return func(e *Engine) {
		if ev, err := key.Parse(spec); err == nil {
			e.completion = ev.Normalize()
		}
	}
}

// SetCompletionKey updates the completion key from a key spec string.
// Unparseable specs leave the current key unchanged.
func (e *Engine) SetCompletionKey(spec string) {
	if ev, err := key.Parse(spec); err == nil {
		e.completion = ev.Normalize()
	}
}

// New creates an Engine over the given buffer and snippet provider.
func New(buf *buffer.Buffer, provider Provider, opts ...Option) *Engine {
	e := &Engine{
		buf:      buf,
		provider: provider,
		sink:     notify.Nop{},
		clock:    time.Now,
	}
	e.completion, _ = key.Parse(DefaultCompletionKey)

	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Buffer returns the engine's document buffer.
func (e *Engine) Buffer() *buffer.Buffer {
	return e.buf
}

// Cursor returns the current cursor offset.
func (e *Engine) Cursor() buffer.ByteOffset {
	return e.cursor
}

// SetCursor moves the cursor, clamping to the buffer bounds.
func (e *Engine) SetCursor(offset buffer.ByteOffset) {
	if offset < 0 {
		offset = 0
	}
	if n := e.buf.Len(); offset > n {
		offset = n
	}
	e.cursor = offset
}

// HandleKey observes one key press. If the event is the completion key
// and the text preceding the cursor ends with a registered trigger, the
// trigger span is replaced with the expanded template in a single atomic
// edit, the cursor moves to the end of the inserted text, and the sink
// is notified.
//
// The returned bool reports whether the event was consumed. A consumed
// completion key must NOT be applied by the host; any other outcome is
// pass-through and the host handles the key normally.
func (e *Engine) HandleKey(ev key.Event) (Expansion, bool) {
	if !ev.Equals(e.completion) {
		return Expansion{}, false
	}

	point := e.buf.OffsetToPoint(e.cursor)
	lineStart := e.buf.LineStartOffset(point.Line)
	preceding := e.buf.TextRange(lineStart, e.cursor)

	matched, length, ok := snippet.Match(preceding, e.provider.TriggerKey(), e.provider.Snippets())
	if !ok {
		return Expansion{}, false
	}

	expanded := snippet.Expand(matched.Template, e.clock())
	span := buffer.NewRange(e.cursor-buffer.ByteOffset(length), e.cursor)

	end, err := e.buf.Replace(span.Start, span.End, expanded)
	if err != nil {
		// Cannot happen for a span derived from the preceding text;
		// degrade to pass-through rather than surfacing an error.
		return Expansion{}, false
	}
	e.cursor = end

	e.sink.Notify(notify.NewMessage(fmt.Sprintf("Expanded snippet %q", matched.Trigger)))

	return Expansion{
		Snippet:  matched,
		Replaced: span,
		Inserted: buffer.NewRange(span.Start, end),
		Text:     expanded,
	}, true
}

// Host editing surface. These are the plain edits the demo host applies
// when a key press is not consumed by expansion. Each is a single atomic
// buffer edit that keeps the cursor in-bounds.

// InsertText inserts text at the cursor and advances the cursor.
func (e *Engine) InsertText(text string) error {
	end, err := e.buf.Insert(e.cursor, text)
	if err != nil {
		return err
	}
	e.cursor = end
	return nil
}

// InsertNewline inserts a line break at the cursor.
func (e *Engine) InsertNewline() error {
	return e.InsertText("\n")
}

// DeleteBackward deletes the byte sequence of the rune before the cursor.
func (e *Engine) DeleteBackward() error {
	if e.cursor == 0 {
		return nil
	}

	start := e.cursor - 1
	text := e.buf.Text()
	// Back up over UTF-8 continuation bytes to the rune start.
	for start > 0 && text[start]&0xC0 == 0x80 {
		start--
	}

	if err := e.buf.Delete(start, e.cursor); err != nil {
		return err
	}
	e.cursor = start
	return nil
}

// MoveLeft moves the cursor one byte left, clamped at the start.
func (e *Engine) MoveLeft() {
	if e.cursor > 0 {
		text := e.buf.Text()
		e.cursor--
		for e.cursor > 0 && text[e.cursor]&0xC0 == 0x80 {
			e.cursor--
		}
	}
}

// MoveRight moves the cursor one rune right, clamped at the end.
func (e *Engine) MoveRight() {
	n := e.buf.Len()
	if e.cursor < n {
		text := e.buf.Text()
		e.cursor++
		for e.cursor < n && text[e.cursor]&0xC0 == 0x80 {
			e.cursor++
		}
	}
}

// MoveUp moves the cursor to the same column on the previous line,
// clamping to that line's end.
func (e *Engine) MoveUp() {
	p := e.buf.OffsetToPoint(e.cursor)
	if p.Line == 0 {
		return
	}
	e.cursor = e.snapRuneStart(e.buf.PointToOffset(buffer.Point{Line: p.Line - 1, Column: p.Column}))
}

// MoveDown moves the cursor to the same column on the next line,
// clamping to that line's end.
func (e *Engine) MoveDown() {
	p := e.buf.OffsetToPoint(e.cursor)
	if p.Line+1 >= e.buf.LineCount() {
		return
	}
	e.cursor = e.snapRuneStart(e.buf.PointToOffset(buffer.Point{Line: p.Line + 1, Column: p.Column}))
}

// snapRuneStart backs an offset up to the start of the rune containing
// it. Column carry-over between lines is byte-based and can land inside
// a multibyte character.
func (e *Engine) snapRuneStart(off buffer.ByteOffset) buffer.ByteOffset {
	text := e.buf.Text()
	for off > 0 && off < buffer.ByteOffset(len(text)) && text[off]&0xC0 == 0x80 {
		off--
	}
	return off
}

// MoveLineStart moves the cursor to the start of the current line.
func (e *Engine) MoveLineStart() {
	p := e.buf.OffsetToPoint(e.cursor)
	e.cursor = e.buf.LineStartOffset(p.Line)
}

// MoveLineEnd moves the cursor to the end of the current line.
func (e *Engine) MoveLineEnd() {
	p := e.buf.OffsetToPoint(e.cursor)
	e.cursor = e.buf.LineEndOffset(p.Line)
}
