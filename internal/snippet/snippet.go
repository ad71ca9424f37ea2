package snippet

// DefaultTriggerKey is the trigger-key prefix used when the configured
// key is empty. An empty trigger key would otherwise match on every
// keystroke whose line ends with any trigger name.
const DefaultTriggerKey = "/"

// Snippet is a named expansion rule. The core treats snippets as
// read-only; creation and editing happen in the settings layer.
type Snippet struct {
	// Trigger is the identifier typed after the trigger key.
	Trigger string

	// Template is the raw replacement text, possibly containing
	// placeholder tokens and literal newlines.
	Template string

	// Description is a human-readable label. Display only; the matcher
	// and expander never consult it.
	Description string
}

// Valid reports whether the snippet is well-formed enough to match.
// A snippet missing its trigger or its template is skipped during
// matching rather than aborting the pass, so one bad definition cannot
// disable the rest.
func (s Snippet) Valid() bool {
	return s.Trigger != "" && s.Template != ""
}
