package nav

import "github.com/dshills/snapnav/internal/engine/buffer"

// IsStartPoint returns true if p is offset 0 of its snapshot.
func IsStartPoint(p buffer.Point) bool {
	return p.Offset() == 0
}

// IsEndPoint returns true if p is the end-of-buffer point.
func IsEndPoint(p buffer.Point) bool {
	return p.Offset() == p.Snapshot().Len()
}

// IsStartOfLine returns true if p is the first position of its line.
func IsStartOfLine(p buffer.Point) bool {
	return p.Offset() == p.ContainingLine().Start().Offset()
}

// IsEndOfLine returns true if p is exactly at the end of its line content.
func IsEndOfLine(p buffer.Point) bool {
	return p.Offset() == p.ContainingLine().End().Offset()
}

// IsInsideLineBreak returns true if p addresses a line break character.
func IsInsideLineBreak(p buffer.Point) bool {
	line := p.ContainingLine()
	return p.Offset() >= line.End().Offset() && p.Offset() < line.EndIncludingLineBreak().Offset()
}

// Column returns the byte column of p within its line.
func Column(p buffer.Point) int {
	return p.Offset() - p.ContainingLine().Start().Offset()
}

// NextPointWithWrap returns the point after p. From the end of a line it
// moves to the start of the next line; from the end of the buffer it wraps to
// the start of the buffer.
func NextPointWithWrap(p buffer.Point) buffer.Point {
	snap := p.Snapshot()
	if IsEndPoint(p) {
		return snap.StartPoint()
	}

	line := p.ContainingLine()
	if p.Offset() >= line.End().Offset() {
		// The last line has no break, so p is not on it.
		next, _ := line.Next()
		return next.Start()
	}
	return snap.MustPointAt(p.Offset() + runeWidthAt(snap, p.Offset()))
}

// PreviousPointWithWrap returns the point before p. From the start of a line
// it moves to the end of the previous line; from the start of the buffer it
// wraps to the end-of-buffer point.
func PreviousPointWithWrap(p buffer.Point) buffer.Point {
	snap := p.Snapshot()
	if IsStartPoint(p) {
		return snap.EndPoint()
	}

	line := p.ContainingLine()
	switch {
	case p.Offset() == line.Start().Offset():
		prev, _ := line.Previous()
		return prev.End()
	case p.Offset() > line.End().Offset():
		return line.End()
	default:
		return snap.MustPointAt(p.Offset() - runeWidthBefore(snap, p.Offset()))
	}
}

// TryGetNextPointOnLine advances count characters without leaving the
// characters of p's line. It returns false if the result would reach the line
// end or beyond. A count of 0 returns p unchanged.
func TryGetNextPointOnLine(p buffer.Point, count int) (buffer.Point, bool) {
	if count < 0 {
		return buffer.Point{}, false
	}
	if count == 0 {
		return p, true
	}

	snap := p.Snapshot()
	end := p.ContainingLine().End().Offset()
	off := p.Offset()
	for range count {
		if off >= end {
			return buffer.Point{}, false
		}
		off += runeWidthAt(snap, off)
	}
	if off >= end {
		return buffer.Point{}, false
	}
	return snap.MustPointAt(off), true
}

// TryGetPreviousPointOnLine moves back count characters without leaving p's
// line. It returns false if that would pass the line start. A point inside the
// line break counts from the line end.
func TryGetPreviousPointOnLine(p buffer.Point, count int) (buffer.Point, bool) {
	if count < 0 {
		return buffer.Point{}, false
	}
	if count == 0 {
		return p, true
	}

	snap := p.Snapshot()
	line := p.ContainingLine()
	start := line.Start().Offset()
	off := min(p.Offset(), line.End().Offset())
	for range count {
		if off <= start {
			return buffer.Point{}, false
		}
		off -= runeWidthBefore(snap, off)
	}
	return snap.MustPointAt(off), true
}

// TryAddOne returns the point one character after p, crossing line breaks
// byte by byte, or false at the end of the buffer.
func TryAddOne(p buffer.Point) (buffer.Point, bool) {
	if IsEndPoint(p) {
		return buffer.Point{}, false
	}
	return p.Snapshot().MustPointAt(p.Offset() + runeWidthAt(p.Snapshot(), p.Offset())), true
}

// TrySubtractOne returns the point one character before p, or false at the
// start of the buffer.
func TrySubtractOne(p buffer.Point) (buffer.Point, bool) {
	if IsStartPoint(p) {
		return buffer.Point{}, false
	}
	return p.Snapshot().MustPointAt(p.Offset() - runeWidthBefore(p.Snapshot(), p.Offset())), true
}

// AddOneOrCurrent is TryAddOne, returning p itself at the end of the buffer.
func AddOneOrCurrent(p buffer.Point) buffer.Point {
	if next, ok := TryAddOne(p); ok {
		return next
	}
	return p
}

// SubtractOneOrCurrent is TrySubtractOne, returning p itself at the start of
// the buffer.
func SubtractOneOrCurrent(p buffer.Point) buffer.Point {
	if prev, ok := TrySubtractOne(p); ok {
		return prev
	}
	return p
}

// GetCharOrDefault returns the character at p, or def if p is the
// end-of-buffer point. It never fails.
func GetCharOrDefault(p buffer.Point, def rune) rune {
	r, err := p.Char()
	if err != nil {
		return def
	}
	return r
}

func runeWidthAt(snap *buffer.Snapshot, off buffer.ByteOffset) int {
	_, size, err := snap.RuneAt(off)
	if err != nil || size == 0 {
		return 1
	}
	return size
}

func runeWidthBefore(snap *buffer.Snapshot, off buffer.ByteOffset) int {
	_, size, err := snap.RuneBefore(off)
	if err != nil || size == 0 {
		return 1
	}
	return size
}
