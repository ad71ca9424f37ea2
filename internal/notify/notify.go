// Package notify delivers transient user-facing messages from the
// expansion engine to whatever surface the host provides (status line,
// toast, log). Delivery is fire-and-forget: sinks must not block, and a
// dropped message is not a correctness failure.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Message is a short human-readable notification.
type Message struct {
	// ID uniquely identifies the message instance.
	ID string

	// Text is the display text.
	Text string

	// Timestamp is when the message was created.
	Timestamp time.Time
}

// NewMessage creates a message with a fresh ID and the current time.
func NewMessage(text string) Message {
	return Message{
		ID:        uuid.NewString(),
		Text:      text,
		Timestamp: time.Now(),
	}
}

// Sink receives notification messages. Implementations must return
// promptly; the engine calls Notify inline on the input path.
type Sink interface {
	Notify(msg Message)
}

// Func adapts a function to the Sink interface.
type Func func(msg Message)

// Notify calls f.
func (f Func) Notify(msg Message) { f(msg) }

// Nop is a sink that discards all messages.
type Nop struct{}

// Notify discards the message.
func (Nop) Notify(Message) {}

// Memory records messages for inspection. Safe for concurrent use.
// Intended for tests and for status-line display of the latest message.
type Memory struct {
	mu       sync.Mutex
	messages []Message
}

// Notify appends the message to the record.
func (m *Memory) Notify(msg Message) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, msg)
}

// Messages returns a copy of all recorded messages in order.
func (m *Memory) Messages() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Message, len(m.messages))
	copy(out, m.messages)
	return out
}

// Last returns the most recent message, if any.
func (m *Memory) Last() (Message, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.messages) == 0 {
		return Message{}, false
	}
	return m.messages[len(m.messages)-1], true
}

// Len returns the number of recorded messages.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.messages)
}

// Multi fans a message out to several sinks in order.
type Multi []Sink

// Notify delivers the message to every sink.
func (m Multi) Notify(msg Message) {
	for _, s := range m {
		if s != nil {
			s.Notify(msg)
		}
	}
}
