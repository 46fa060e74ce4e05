// Package buffer provides immutable text snapshots and the buffer store that
// produces them.
//
// A Snapshot is a frozen view of buffer content at one revision. Its text and
// line boundaries never change; every edit to a Buffer publishes a new
// Snapshot with the next Version and leaves earlier snapshots untouched.
// Snapshots are shared by pointer and are safe for concurrent readers without
// locking.
//
// The package provides:
//
//   - Snapshot: length, line table, line lookup by number or offset
//   - Point: an offset tied to the snapshot it addresses
//   - Line: one line of a snapshot with and without its line break
//   - Span: a half-open offset range within one snapshot
//   - Buffer: a thread-safe store that applies edits and publishes snapshots
//
// Basic usage:
//
//	buf := buffer.NewBufferFromString("foo\nbar")
//	snap := buf.Snapshot()
//
//	line, _ := snap.LineFromNumber(1)
//	fmt.Println(line.Text()) // "bar"
//
//	buf.Insert(3, "!")       // publishes version 1
//	fmt.Println(snap.Text()) // still "foo\nbar"
//
// Offsets:
//
// Offsets are byte offsets into UTF-8 text. The offset equal to Len is the
// end-of-buffer position: it can be addressed by a Point but holds no
// character. Line breaks are "\n", "\r\n" or a lone "\r".
//
// Thread Safety:
//
// All Buffer methods are thread-safe. Snapshot, Point, Line and Span are
// immutable values and need no synchronization.
package buffer
