package snippet

import "strings"

// Match tests the text preceding the cursor on the current line against
// the snippet list and reports the first snippet whose candidate string
// (triggerKey + Trigger) is an exact suffix of preceding, along with the
// candidate length in bytes. The length is what the caller deletes:
// the replacement span is [cursor-length, cursor).
//
// The suffix test is case-sensitive and byte-literal; no normalization
// or trimming is applied. Snippets are tried in slice order and the
// first match wins, even when a later snippet has a longer trigger.
// Malformed snippets are skipped. An empty triggerKey falls back to
// DefaultTriggerKey.
//
// Returns the zero Snippet, 0, false when nothing matches; the caller
// lets the key-press proceed as ordinary input.
func Match(preceding, triggerKey string, snippets []Snippet) (Snippet, int, bool) {
	if triggerKey == "" {
		triggerKey = DefaultTriggerKey
	}

	for _, s := range snippets {
		if !s.Valid() {
			continue
		}
		candidate := triggerKey + s.Trigger
		if strings.HasSuffix(preceding, candidate) {
			return s, len(candidate), true
		}
	}

	return Snippet{}, 0, false
}
