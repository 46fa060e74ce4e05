// Package nav implements positional navigation over immutable buffer
// snapshots: wrap-aware stepping between characters, bounded scans within a
// line, line-range and character spans, and lazy line/point/span sequences in
// either direction.
//
// Every function is pure. Inputs are points of a buffer.Snapshot, which never
// changes, so results can be computed from any goroutine without locking.
// Sequences are iter.Seq values closed over their arguments; each range over
// a sequence starts from the beginning and a break stops production.
//
// Stepping moves by whole runes. A point at or inside a line break counts as
// being at the end of its line, and the end-of-buffer point is never
// dereferenced.
//
// Basic usage:
//
//	snap := buffer.NewSnapshot("foo\nbar")
//	p := snap.StartPoint()
//
//	nav.NextPointWithWrap(p)                   // offset 1
//	nav.PreviousPointWithWrap(p)               // end of buffer
//	span, _ := nav.GetLineRangeSpan(p, 2)      // "foo\nbar"
//
//	for line := range nav.GetLines(p, nav.Forward) {
//	    fmt.Println(line.Text())
//	}
//
//	// GetPoints wraps forever; bound it.
//	for p := range nav.Take(nav.GetPoints(nav.Backward, snap.EndPoint()), 3) {
//	    fmt.Println(nav.GetCharOrDefault(p, ' '))
//	}
package nav
