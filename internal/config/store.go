package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dshills/snipstorm/internal/config/loader"
	"github.com/dshills/snipstorm/internal/snippet"
)

// Defaults applied when the settings file leaves a field empty.
const (
	DefaultTriggerKey    = snippet.DefaultTriggerKey
	DefaultCompletionKey = "Space"
)

// Errors returned by store operations.
var (
	ErrEmptyTriggerKey  = errors.New("trigger key must not be empty")
	ErrInvalidSnippet   = errors.New("snippet needs a trigger and a template")
	ErrIndexOutOfRange  = errors.New("snippet index out of range")
	ErrNoPathConfigured = errors.New("store has no settings file path")
)

// Source contributes snippets from outside the settings file, for
// example a Lua script. Source snippets are appended after file-defined
// ones, preserving each source's own order.
type Source interface {
	// Name identifies the source for diagnostics.
	Name() string

	// Snippets returns the source's snippet list. A failing source is
	// skipped for the current pass, never fatal.
	Snippets() ([]snippet.Snippet, error)
}

// SourceError reports a snippet source failure to the error handler.
type SourceError struct {
	// Source is the failing source's name.
	Source string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *SourceError) Error() string {
	return fmt.Sprintf("snippet source %s: %v", e.Source, e.Err)
}

// Unwrap returns the underlying error.
func (e *SourceError) Unwrap() error { return e.Err }

// Store holds the snippet settings. All methods are safe for concurrent
// use. It satisfies the engine's Provider interface.
type Store struct {
	mu            sync.RWMutex
	path          string
	snippets      []snippet.Snippet
	triggerKey    string
	completionKey string
	sources       []Source
	observers     map[int]Observer
	nextObserver  int
	onError       func(error)
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithPath sets the settings file path used by Load, Save and Reload.
func WithPath(path string) StoreOption {
	return func(s *Store) { s.path = path }
}

// WithErrorHandler sets a callback invoked when a snippet source fails.
// Source failures are otherwise silent: they degrade to "no snippets
// from that source" rather than disabling matching.
func WithErrorHandler(fn func(error)) StoreOption {
	return func(s *Store) {
		if fn != nil {
			s.onError = fn
		}
	}
}

// NewStore creates a store with default settings.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		triggerKey:    DefaultTriggerKey,
		completionKey: DefaultCompletionKey,
		observers:     make(map[int]Observer),
		onError:       func(error) {},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the configured settings file path.
func (s *Store) Path() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.path
}

// Snippets returns the snippet list: file-defined snippets in order,
// followed by each registered source's snippets. The slice is a copy.
func (s *Store) Snippets() []snippet.Snippet {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]snippet.Snippet, len(s.snippets))
	copy(out, s.snippets)

	for _, src := range s.sources {
		extra, err := src.Snippets()
		if err != nil {
			s.onError(&SourceError{Source: src.Name(), Err: err})
			continue
		}
		out = append(out, extra...)
	}
	return out
}

// TriggerKey returns the configured trigger-key string.
func (s *Store) TriggerKey() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.triggerKey
}

// CompletionKey returns the configured completion-key spec.
func (s *Store) CompletionKey() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.completionKey
}

// SetTriggerKey updates the trigger key. Empty keys are rejected here so
// the matcher's defensive fallback stays a last resort.
func (s *Store) SetTriggerKey(key string) error {
	if key == "" {
		return ErrEmptyTriggerKey
	}

	s.mu.Lock()
	s.triggerKey = key
	s.mu.Unlock()

	s.publish(Change{Type: ChangeTriggerKey, Source: "api"})
	return nil
}

// SetCompletionKey updates the completion-key spec.
func (s *Store) SetCompletionKey(spec string) {
	s.mu.Lock()
	if spec == "" {
		spec = DefaultCompletionKey
	}
	s.completionKey = spec
	s.mu.Unlock()

	s.publish(Change{Type: ChangeCompletionKey, Source: "api"})
}

// Add appends a snippet to the list. The snippet must be well-formed;
// the settings UI is the one place malformed definitions are rejected
// outright instead of skipped.
func (s *Store) Add(sn snippet.Snippet) error {
	if !sn.Valid() {
		return ErrInvalidSnippet
	}

	s.mu.Lock()
	s.snippets = append(s.snippets, sn)
	s.mu.Unlock()

	s.publish(Change{Type: ChangeSnippets, Source: "api"})
	return nil
}

// Update replaces the snippet at index.
func (s *Store) Update(index int, sn snippet.Snippet) error {
	if !sn.Valid() {
		return ErrInvalidSnippet
	}

	s.mu.Lock()
	if index < 0 || index >= len(s.snippets) {
		s.mu.Unlock()
		return ErrIndexOutOfRange
	}
	s.snippets[index] = sn
	s.mu.Unlock()

	s.publish(Change{Type: ChangeSnippets, Source: "api"})
	return nil
}

// Remove deletes the snippet at index, preserving the order of the rest.
func (s *Store) Remove(index int) error {
	s.mu.Lock()
	if index < 0 || index >= len(s.snippets) {
		s.mu.Unlock()
		return ErrIndexOutOfRange
	}
	s.snippets = append(s.snippets[:index], s.snippets[index+1:]...)
	s.mu.Unlock()

	s.publish(Change{Type: ChangeSnippets, Source: "api"})
	return nil
}

// AddSource registers an external snippet source.
func (s *Store) AddSource(src Source) {
	if src == nil {
		return
	}

	s.mu.Lock()
	s.sources = append(s.sources, src)
	s.mu.Unlock()

	s.publish(Change{Type: ChangeSnippets, Source: src.Name()})
}

// Load reads the settings file at the configured path and replaces the
// store's state. A missing file resets to defaults.
func (s *Store) Load() error {
	s.mu.RLock()
	path := s.path
	s.mu.RUnlock()

	if path == "" {
		return ErrNoPathConfigured
	}

	f, err := loader.Load(path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.snippets = snippetsFromDefs(f.Snippets)
	s.triggerKey = f.TriggerKey
	if s.triggerKey == "" {
		s.triggerKey = DefaultTriggerKey
	}
	s.completionKey = f.CompletionKey
	if s.completionKey == "" {
		s.completionKey = DefaultCompletionKey
	}
	s.mu.Unlock()

	s.publish(Change{Type: ChangeReload, Source: "file"})
	return nil
}

// Save writes the store's current state to the configured path.
func (s *Store) Save() error {
	s.mu.RLock()
	path := s.path
	f := loader.File{
		TriggerKey:    s.triggerKey,
		CompletionKey: s.completionKey,
		Snippets:      defsFromSnippets(s.snippets),
	}
	s.mu.RUnlock()

	if path == "" {
		return ErrNoPathConfigured
	}
	return loader.Save(path, f)
}

// Subscribe registers an observer for settings changes and returns an
// unsubscribe function.
func (s *Store) Subscribe(obs Observer) func() {
	if obs == nil {
		return func() {}
	}

	s.mu.Lock()
	id := s.nextObserver
	s.nextObserver++
	s.observers[id] = obs
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.observers, id)
		s.mu.Unlock()
	}
}

// publish delivers a change to all observers synchronously.
func (s *Store) publish(change Change) {
	s.mu.RLock()
	observers := make([]Observer, 0, len(s.observers))
	for _, obs := range s.observers {
		observers = append(observers, obs)
	}
	s.mu.RUnlock()

	for _, obs := range observers {
		obs(change)
	}
}

// snippetsFromDefs converts persisted definitions to core snippets.
// Malformed entries are kept: the matcher skips them per key press, and
// the settings UI shows them for the user to fix.
func snippetsFromDefs(defs []loader.SnippetDef) []snippet.Snippet {
	out := make([]snippet.Snippet, 0, len(defs))
	for _, d := range defs {
		out = append(out, snippet.Snippet{
			Trigger:     d.Trigger,
			Description: d.Description,
			Template:    d.Template,
		})
	}
	return out
}

// defsFromSnippets converts core snippets to persisted definitions.
func defsFromSnippets(snippets []snippet.Snippet) []loader.SnippetDef {
	out := make([]loader.SnippetDef, 0, len(snippets))
	for _, sn := range snippets {
		out = append(out, loader.SnippetDef{
			Trigger:     sn.Trigger,
			Description: sn.Description,
			Template:    sn.Template,
		})
	}
	return out
}
