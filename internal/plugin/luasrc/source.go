package luasrc

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/snipstorm/internal/snippet"
)

// Errors returned by script loading.
var (
	ErrNoResult       = errors.New("script returned no value")
	ErrNotSnippetList = errors.New("script result is not a snippet table")
)

// Source loads snippets from one Lua script. It implements the settings
// store's Source interface. Safe for concurrent use.
type Source struct {
	mu       sync.Mutex
	path     string
	snippets []snippet.Snippet
	loadErr  error
	loaded   bool
}

// New creates a source for the given script path. The script is not run
// until Load or the first Snippets call.
func New(path string) *Source {
	return &Source{path: path}
}

// Name identifies the source for diagnostics.
func (s *Source) Name() string {
	return "lua:" + filepath.Base(s.path)
}

// Path returns the script path.
func (s *Source) Path() string {
	return s.path
}

// Load runs the script and caches its snippet list, replacing any
// previous result. The script runs in a fresh Lua state each time.
func (s *Source) Load() error {
	snippets, err := runScript(s.path)

	s.mu.Lock()
	s.snippets = snippets
	s.loadErr = err
	s.loaded = true
	s.mu.Unlock()

	return err
}

// Snippets returns the cached snippet list, loading the script on first
// use. A load failure is returned on every call until a reload succeeds,
// so the store can keep reporting (and skipping) the broken source.
func (s *Source) Snippets() ([]snippet.Snippet, error) {
	s.mu.Lock()
	loaded := s.loaded
	s.mu.Unlock()

	if !loaded {
		_ = s.Load()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	out := make([]snippet.Snippet, len(s.snippets))
	copy(out, s.snippets)
	return out, nil
}

// runScript executes the script and converts its return value.
func runScript(path string) ([]snippet.Snippet, error) {
	L := lua.NewState()
	defer L.Close()

	if err := L.DoFile(path); err != nil {
		return nil, fmt.Errorf("running snippet script %s: %w", path, err)
	}

	ret := L.Get(-1)
	if ret == lua.LNil {
		return nil, fmt.Errorf("%w: %s", ErrNoResult, path)
	}

	tbl, ok := ret.(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("%w: %s returned %s", ErrNotSnippetList, path, ret.Type())
	}

	// Walk the array part by index to preserve definition order; the
	// matcher is order-sensitive.
	out := make([]snippet.Snippet, 0, tbl.Len())
	for i := 1; i <= tbl.Len(); i++ {
		entry, ok := tbl.RawGetInt(i).(*lua.LTable)
		if !ok {
			continue
		}
		out = append(out, snippet.Snippet{
			Trigger:     stringField(entry, "trigger"),
			Template:    stringField(entry, "template"),
			Description: stringField(entry, "description"),
		})
	}
	return out, nil
}

// stringField reads a string field from a Lua table, or "" if absent or
// not a string.
func stringField(tbl *lua.LTable, name string) string {
	if v, ok := tbl.RawGetString(name).(lua.LString); ok {
		return string(v)
	}
	return ""
}
