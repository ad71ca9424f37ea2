// Package engine orchestrates snippet expansion over a document buffer.
//
// The Engine owns a buffer and a cursor and watches key events delivered
// by the host. Only the configured completion key is inspected further:
// the text preceding the cursor on the current line is matched against
// the snippet list, and on a match the trigger span is replaced in one
// atomic edit with the expanded template. Everything else passes through
// to the host's default key handling.
//
// The engine assumes a single UI thread delivering input serially; each
// key press is handled to completion before the next.
package engine
