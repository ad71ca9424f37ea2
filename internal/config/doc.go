// Package config is the settings collaborator for the expansion engine.
//
// Store holds the ordered snippet list, the trigger-key string and the
// completion-key spec. It supports add/edit/delete of snippet records,
// persists to a TOML or YAML file through the loader subpackage, and can
// be reloaded live through the watcher subpackage. Additional snippet
// sources (such as Lua scripts) can be registered and contribute
// snippets after the file-defined ones.
//
// Components interested in settings changes subscribe an Observer and
// receive Change events synchronously on the mutating goroutine.
//
// The engine consults the store through its Provider methods Snippets
// and TriggerKey; both return read-only snapshots so the matcher sees a
// stable list per key press.
package config
