package buffer

import (
	"fmt"
	"iter"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Snapshot provides a read-only view of a buffer at a specific point in time.
// It is safe for concurrent access and will not change even if the original
// buffer is modified.
type Snapshot struct {
	bufferID   uuid.UUID
	version    Version
	text       string
	lines      []lineExtent
	lineEnding LineEnding
}

// NewSnapshot creates a standalone snapshot of text with a fresh buffer
// identity at version 0. The line ending style is detected from the text.
func NewSnapshot(text string) *Snapshot {
	return newSnapshot(uuid.New(), 0, text, DetectLineEnding(text))
}

func newSnapshot(id uuid.UUID, version Version, text string, le LineEnding) *Snapshot {
	return &Snapshot{
		bufferID:   id,
		version:    version,
		text:       text,
		lines:      buildLineTable(text),
		lineEnding: le,
	}
}

// BufferID returns the identity of the buffer this snapshot belongs to.
func (s *Snapshot) BufferID() uuid.UUID {
	return s.bufferID
}

// Version returns the revision of this snapshot within its buffer.
func (s *Snapshot) Version() Version {
	return s.version
}

// LineEnding returns the line ending style of the buffer at this revision.
func (s *Snapshot) LineEnding() LineEnding {
	return s.lineEnding
}

// String identifies the snapshot for logs and error messages.
func (s *Snapshot) String() string {
	return fmt.Sprintf("%s@%d", s.bufferID, s.version)
}

// Text returns the full snapshot content as a string.
func (s *Snapshot) Text() string {
	return s.text
}

// TextRange returns text in the given byte range.
func (s *Snapshot) TextRange(start, end ByteOffset) (string, error) {
	if start < 0 || start > len(s.text) {
		return "", outOfRange("offset", start, len(s.text))
	}
	if end < start || end > len(s.text) {
		return "", fmt.Errorf("%w: [%d:%d) in snapshot of length %d", ErrRangeInvalid, start, end, len(s.text))
	}
	return s.text[start:end], nil
}

// Len returns the total byte length of the snapshot.
func (s *Snapshot) Len() int {
	return len(s.text)
}

// IsEmpty returns true if the snapshot is empty.
func (s *Snapshot) IsEmpty() bool {
	return len(s.text) == 0
}

// LineCount returns the number of lines. An empty snapshot has one empty line.
func (s *Snapshot) LineCount() int {
	return len(s.lines)
}

// StartPoint returns the point at offset 0.
func (s *Snapshot) StartPoint() Point {
	return Point{snapshot: s}
}

// EndPoint returns the end-of-buffer point. It is valid for addressing even
// in an empty snapshot but cannot be dereferenced.
func (s *Snapshot) EndPoint() Point {
	return Point{snapshot: s, offset: len(s.text)}
}

// PointAt returns the point at the given offset.
// Offsets outside [0, Len] return ErrOutOfRange.
func (s *Snapshot) PointAt(offset ByteOffset) (Point, error) {
	if offset < 0 || offset > len(s.text) {
		return Point{}, outOfRange("offset", offset, len(s.text))
	}
	return Point{snapshot: s, offset: offset}, nil
}

// MustPointAt is like PointAt but panics if offset is out of range.
// It is intended for offsets the caller has already validated.
func (s *Snapshot) MustPointAt(offset ByteOffset) Point {
	p, err := s.PointAt(offset)
	if err != nil {
		panic(err)
	}
	return p
}

// SpanAt returns the span [start, end) of this snapshot.
func (s *Snapshot) SpanAt(start, end ByteOffset) (Span, error) {
	if start < 0 || start > len(s.text) {
		return Span{}, outOfRange("offset", start, len(s.text))
	}
	if end < start || end > len(s.text) {
		return Span{}, fmt.Errorf("%w: [%d:%d) in snapshot of length %d", ErrRangeInvalid, start, end, len(s.text))
	}
	return Span{snapshot: s, start: start, end: end}, nil
}

// MustSpan is like SpanAt but panics on invalid bounds.
func (s *Snapshot) MustSpan(start, end ByteOffset) Span {
	span, err := s.SpanAt(start, end)
	if err != nil {
		panic(err)
	}
	return span
}

// LineFromNumber returns the 0-indexed line n.
// Returns ErrOutOfRange if n is not in [0, LineCount).
func (s *Snapshot) LineFromNumber(n int) (Line, error) {
	if n < 0 || n >= len(s.lines) {
		return Line{}, fmt.Errorf("%w: line %d not in [0, %d)", ErrOutOfRange, n, len(s.lines))
	}
	return s.line(n), nil
}

// LineFromOffset returns the line whose extent including its line break
// contains offset. The end-of-buffer offset belongs to the last line.
func (s *Snapshot) LineFromOffset(offset ByteOffset) (Line, error) {
	if offset < 0 || offset > len(s.text) {
		return Line{}, outOfRange("offset", offset, len(s.text))
	}
	return s.line(lineIndexForOffset(s.lines, offset)), nil
}

func (s *Snapshot) line(n int) Line {
	return Line{snapshot: s, number: n, extent: s.lines[n]}
}

// Lines returns an iterator over all lines in order.
func (s *Snapshot) Lines() iter.Seq[Line] {
	return func(yield func(Line) bool) {
		for n := range s.lines {
			if !yield(s.line(n)) {
				return
			}
		}
	}
}

// RuneAt returns the rune starting at the given byte offset and its width.
// Offsets at or past the end of the buffer return ErrOutOfRange.
func (s *Snapshot) RuneAt(offset ByteOffset) (rune, int, error) {
	if offset < 0 || offset >= len(s.text) {
		return utf8.RuneError, 0, fmt.Errorf("%w: no character at offset %d in snapshot of length %d", ErrOutOfRange, offset, len(s.text))
	}
	r, size := utf8.DecodeRuneInString(s.text[offset:])
	return r, size, nil
}

// RuneBefore returns the rune ending at the given byte offset and its width.
// Offset 0 returns ErrOutOfRange.
func (s *Snapshot) RuneBefore(offset ByteOffset) (rune, int, error) {
	if offset <= 0 || offset > len(s.text) {
		return utf8.RuneError, 0, fmt.Errorf("%w: no character before offset %d in snapshot of length %d", ErrOutOfRange, offset, len(s.text))
	}
	r, size := utf8.DecodeLastRuneInString(s.text[:offset])
	return r, size, nil
}

// OffsetToPosition converts a byte offset to line/column.
func (s *Snapshot) OffsetToPosition(offset ByteOffset) (Position, error) {
	line, err := s.LineFromOffset(offset)
	if err != nil {
		return Position{}, err
	}
	return Position{Line: line.number, Column: offset - line.extent.start}, nil
}

// PositionToOffset converts line/column to a byte offset. Columns past the
// end of the line clamp to the line end.
func (s *Snapshot) PositionToOffset(pos Position) (ByteOffset, error) {
	line, err := s.LineFromNumber(pos.Line)
	if err != nil {
		return 0, err
	}
	if pos.Column < 0 {
		return 0, fmt.Errorf("%w: column %d", ErrOutOfRange, pos.Column)
	}
	if pos.Column >= line.Length() {
		return line.extent.end, nil
	}
	return line.extent.start + pos.Column, nil
}
