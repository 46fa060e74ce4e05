package buffer

import "fmt"

// Span is a half-open range [Start, End) within one snapshot.
type Span struct {
	snapshot *Snapshot
	start    ByteOffset
	end      ByteOffset
}

// NewSpan creates the span between two points of the same snapshot.
func NewSpan(start, end Point) (Span, error) {
	if start.snapshot != end.snapshot {
		return Span{}, fmt.Errorf("%w: span endpoints from %v and %v", ErrSnapshotMismatch, start.snapshot, end.snapshot)
	}
	if start.snapshot == nil {
		return Span{}, fmt.Errorf("%w: span endpoints have no snapshot", ErrRangeInvalid)
	}
	if end.offset < start.offset {
		return Span{}, fmt.Errorf("%w: end %d < start %d", ErrRangeInvalid, end.offset, start.offset)
	}
	return Span{snapshot: start.snapshot, start: start.offset, end: end.offset}, nil
}

// Snapshot returns the snapshot the span belongs to.
func (s Span) Snapshot() *Snapshot {
	return s.snapshot
}

// Start returns the inclusive start point.
func (s Span) Start() Point {
	return Point{snapshot: s.snapshot, offset: s.start}
}

// End returns the exclusive end point.
func (s Span) End() Point {
	return Point{snapshot: s.snapshot, offset: s.end}
}

// Len returns the length of the span in bytes.
func (s Span) Len() int {
	return s.end - s.start
}

// IsEmpty returns true if the span has zero length.
func (s Span) IsEmpty() bool {
	return s.start == s.end
}

// Contains returns true if p lies in [Start, End).
// Points from another snapshot are never contained.
func (s Span) Contains(p Point) bool {
	return p.snapshot == s.snapshot && p.offset >= s.start && p.offset < s.end
}

// Range returns the snapshot-free offset range of the span.
func (s Span) Range() Range {
	return Range{Start: s.start, End: s.end}
}

// Text returns the text covered by the span.
func (s Span) Text() string {
	return s.snapshot.text[s.start:s.end]
}

// String returns a human-readable representation of the span.
func (s Span) String() string {
	return fmt.Sprintf("[%d:%d)", s.start, s.end)
}
