// Package key models raw keyboard input for the expansion engine.
//
// Event describes one key press; Parse turns a key specification string
// (as written in the settings file, e.g. "Space", "Tab", "Ctrl+E" or the
// Vim-style "<C-e>") into an Event for comparison against live input.
package key
