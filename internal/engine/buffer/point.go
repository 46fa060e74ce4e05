package buffer

import "fmt"

// Point is an offset into a specific snapshot. The zero Point is not
// associated with any snapshot; obtain points from a Snapshot, Line or Span.
//
// Points are values: moving a point constructs a new one. Points from the
// same snapshot can be compared with ==.
type Point struct {
	snapshot *Snapshot
	offset   ByteOffset
}

// NewPoint is equivalent to snapshot.PointAt(offset).
func NewPoint(snapshot *Snapshot, offset ByteOffset) (Point, error) {
	return snapshot.PointAt(offset)
}

// Snapshot returns the snapshot the point addresses.
func (p Point) Snapshot() *Snapshot {
	return p.snapshot
}

// Offset returns the byte offset of the point.
func (p Point) Offset() ByteOffset {
	return p.offset
}

// IsZero returns true for the zero Point.
func (p Point) IsZero() bool {
	return p.snapshot == nil
}

// Char returns the character at the point. The end-of-buffer point has no
// character and returns ErrOutOfRange.
func (p Point) Char() (rune, error) {
	r, _, err := p.snapshot.RuneAt(p.offset)
	return r, err
}

// ContainingLine returns the line containing the point. The end-of-buffer
// point belongs to the last line.
func (p Point) ContainingLine() Line {
	return p.snapshot.line(lineIndexForOffset(p.snapshot.lines, p.offset))
}

// Position returns the line/column position of the point.
func (p Point) Position() Position {
	line := p.ContainingLine()
	return Position{Line: line.number, Column: p.offset - line.extent.start}
}

// Add returns the point n bytes after p.
func (p Point) Add(n int) (Point, error) {
	return p.snapshot.PointAt(p.offset + n)
}

// Subtract returns the point n bytes before p.
func (p Point) Subtract(n int) (Point, error) {
	return p.snapshot.PointAt(p.offset - n)
}

// SameSnapshot reports whether p and other address the same snapshot.
func (p Point) SameSnapshot(other Point) bool {
	return p.snapshot == other.snapshot
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other.
// It panics with an error wrapping ErrSnapshotMismatch if the points belong
// to different snapshots.
func (p Point) Compare(other Point) int {
	mustMatch(p, other)
	switch {
	case p.offset < other.offset:
		return -1
	case p.offset > other.offset:
		return 1
	default:
		return 0
	}
}

// Before returns true if p comes before other.
func (p Point) Before(other Point) bool {
	return p.Compare(other) < 0
}

// After returns true if p comes after other.
func (p Point) After(other Point) bool {
	return p.Compare(other) > 0
}

// String returns a human-readable representation of the point.
func (p Point) String() string {
	return fmt.Sprintf("[%d]", p.offset)
}

func mustMatch(a, b Point) {
	if a.snapshot != b.snapshot {
		panic(fmt.Errorf("%w: %v and %v", ErrSnapshotMismatch, a.snapshot, b.snapshot))
	}
}
