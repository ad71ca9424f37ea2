// Package snippet implements the text-expansion core: trigger matching
// against the text preceding the cursor, and template expansion with
// time-derived placeholder substitution.
//
// The package has no dependency on any editor surface. Match is a pure
// function of the preceding line text, the trigger key, and the snippet
// list; Expand is a pure function of the template and an injected instant.
// Both are directly unit-testable without a host.
//
// Matching policy:
//
// For each snippet in the supplied order, the candidate string
// triggerKey+Trigger is tested as an exact suffix of the preceding text.
// The first snippet whose candidate matches wins. This is deliberately NOT
// longest-match: two snippets with overlapping triggers resolve to the one
// registered earlier. The policy is load-bearing for compatibility and must
// not be changed.
package snippet
