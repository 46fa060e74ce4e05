package buffer

import "fmt"

// Line is one line of a snapshot, addressed by a 0-indexed number.
type Line struct {
	snapshot *Snapshot
	number   int
	extent   lineExtent
}

// Snapshot returns the snapshot the line belongs to.
func (l Line) Snapshot() *Snapshot {
	return l.snapshot
}

// Number returns the 0-indexed line number.
func (l Line) Number() int {
	return l.number
}

// Start returns the point of the first character of the line.
func (l Line) Start() Point {
	return Point{snapshot: l.snapshot, offset: l.extent.start}
}

// End returns the point just past the last character, before the line break.
func (l Line) End() Point {
	return Point{snapshot: l.snapshot, offset: l.extent.end}
}

// EndIncludingLineBreak returns the point just past the line break, which is
// the start of the next line or the end of the buffer.
func (l Line) EndIncludingLineBreak() Point {
	return Point{snapshot: l.snapshot, offset: l.extent.next}
}

// Length returns the byte length of the line content.
func (l Line) Length() int {
	return l.extent.end - l.extent.start
}

// LengthIncludingLineBreak returns the byte length including the line break.
func (l Line) LengthIncludingLineBreak() int {
	return l.extent.next - l.extent.start
}

// LineBreakLength returns 0, 1 or 2. Only the last line has no line break.
func (l Line) LineBreakLength() int {
	return l.extent.breakLen()
}

// IsEmpty returns true if the line has no characters besides its line break.
func (l Line) IsEmpty() bool {
	return l.extent.start == l.extent.end
}

// IsLast returns true if this is the final line of the snapshot.
func (l Line) IsLast() bool {
	return l.number == len(l.snapshot.lines)-1
}

// Extent returns the span of the line content, excluding the line break.
func (l Line) Extent() Span {
	return Span{snapshot: l.snapshot, start: l.extent.start, end: l.extent.end}
}

// ExtentIncludingLineBreak returns the span of the line and its line break.
func (l Line) ExtentIncludingLineBreak() Span {
	return Span{snapshot: l.snapshot, start: l.extent.start, end: l.extent.next}
}

// LineBreakSpan returns the span of the line break alone.
func (l Line) LineBreakSpan() Span {
	return Span{snapshot: l.snapshot, start: l.extent.end, end: l.extent.next}
}

// Text returns the line content without the line break.
func (l Line) Text() string {
	return l.snapshot.text[l.extent.start:l.extent.end]
}

// TextIncludingLineBreak returns the line content with its line break.
func (l Line) TextIncludingLineBreak() string {
	return l.snapshot.text[l.extent.start:l.extent.next]
}

// Next returns the following line, or false on the last line.
func (l Line) Next() (Line, bool) {
	if l.IsLast() {
		return Line{}, false
	}
	return l.snapshot.line(l.number + 1), true
}

// Previous returns the preceding line, or false on the first line.
func (l Line) Previous() (Line, bool) {
	if l.number == 0 {
		return Line{}, false
	}
	return l.snapshot.line(l.number - 1), true
}

// String returns a human-readable representation of the line.
func (l Line) String() string {
	return fmt.Sprintf("line %d [%d:%d)", l.number, l.extent.start, l.extent.next)
}
