// Package buffer provides a thread-safe text buffer for the expansion
// engine. It is the document surface the engine edits: line-addressed
// reads for computing the text preceding the cursor, and a single atomic
// Replace for splicing expanded text over the matched span.
//
// Position types:
//
//   - ByteOffset: raw byte position in the buffer
//   - Point: 0-indexed line and byte column
//   - Range: half-open byte range [Start, End)
//
// The buffer maintains an index of line start offsets so line lookups are
// O(log n) in the line count. All methods are safe for concurrent use;
// write operations bump the revision ID so readers can detect staleness.
package buffer
