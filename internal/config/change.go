package config

// ChangeType represents the kind of settings change.
type ChangeType int

const (
	// ChangeSnippets indicates the snippet list was modified.
	ChangeSnippets ChangeType = iota

	// ChangeTriggerKey indicates the trigger key was modified.
	ChangeTriggerKey

	// ChangeCompletionKey indicates the completion key was modified.
	ChangeCompletionKey

	// ChangeReload indicates the whole settings file was reloaded.
	ChangeReload
)

// String returns the change type name.
func (c ChangeType) String() string {
	switch c {
	case ChangeSnippets:
		return "snippets"
	case ChangeTriggerKey:
		return "trigger-key"
	case ChangeCompletionKey:
		return "completion-key"
	case ChangeReload:
		return "reload"
	default:
		return "unknown"
	}
}

// Change describes one settings change event.
type Change struct {
	// Type is the kind of change.
	Type ChangeType

	// Source identifies where the change came from, e.g. "api" for
	// programmatic edits or "file" for a reload.
	Source string
}

// Observer is called synchronously when settings change. Observers must
// not mutate the store from within the callback.
type Observer func(change Change)
