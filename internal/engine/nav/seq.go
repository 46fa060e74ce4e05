package nav

import (
	"iter"

	"github.com/dshills/snapnav/internal/engine/buffer"
)

// GetLines yields the line containing p, then each following (Forward) or
// preceding (Backward) line. It stops at the first or last line; it does not
// wrap.
func GetLines(p buffer.Point, path SearchPath) iter.Seq[buffer.Line] {
	return func(yield func(buffer.Line) bool) {
		line := p.ContainingLine()
		for {
			if !yield(line) {
				return
			}
			var ok bool
			if path == Backward {
				line, ok = line.Previous()
			} else {
				line, ok = line.Next()
			}
			if !ok {
				return
			}
		}
	}
}

// GetPoints yields start and then every wrap-stepped point in the given
// direction, forever. The end-of-buffer point holds no character and is
// skipped, including when it is start. An empty snapshot yields nothing.
//
// The sequence revisits the same points after one trip around the buffer;
// bound it with Take or use GetPointsOnce.
func GetPoints(path SearchPath, start buffer.Point) iter.Seq[buffer.Point] {
	step := NextPointWithWrap
	if path == Backward {
		step = PreviousPointWithWrap
	}

	return func(yield func(buffer.Point) bool) {
		if start.Snapshot().IsEmpty() {
			return
		}
		cur := start
		for {
			if IsEndPoint(cur) {
				cur = step(cur)
			}
			if !yield(cur) {
				return
			}
			cur = step(cur)
		}
	}
}

// GetPointsOnce is GetPoints stopped after one trip around the buffer: it
// ends when the traversal wraps back to start, so no point is yielded twice.
func GetPointsOnce(path SearchPath, start buffer.Point) iter.Seq[buffer.Point] {
	step := NextPointWithWrap
	if path == Backward {
		step = PreviousPointWithWrap
	}
	reached := func(p buffer.Point) bool {
		if path == Backward {
			return p.Offset() <= start.Offset()
		}
		return p.Offset() >= start.Offset()
	}

	return func(yield func(buffer.Point) bool) {
		if start.Snapshot().IsEmpty() {
			return
		}
		wrapped := false
		cur := start
		for {
			if IsEndPoint(cur) {
				if path == Forward {
					if wrapped {
						return
					}
					wrapped = true
				}
				cur = step(cur)
			}
			if wrapped && reached(cur) {
				return
			}
			if !yield(cur) {
				return
			}
			if path == Backward && IsStartPoint(cur) {
				wrapped = true
			}
			cur = step(cur)
		}
	}
}

// GetSpans partitions the buffer into per-line spans relative to p, without
// wrapping. Forward yields the rest of p's line and then each following line;
// Backward yields the part of p's line before p and then each preceding line.
// Spans exclude line breaks. The partial span for p's own line is omitted when
// it would be empty.
func GetSpans(path SearchPath, p buffer.Point) iter.Seq[buffer.Span] {
	return func(yield func(buffer.Span) bool) {
		snap := p.Snapshot()
		line := p.ContainingLine()

		if path == Backward {
			end := min(p.Offset(), line.End().Offset())
			if end > line.Start().Offset() {
				if !yield(snap.MustSpan(line.Start().Offset(), end)) {
					return
				}
			}
			for prev, ok := line.Previous(); ok; prev, ok = prev.Previous() {
				if !yield(prev.Extent()) {
					return
				}
			}
			return
		}

		if p.Offset() < line.End().Offset() {
			if !yield(snap.MustSpan(p.Offset(), line.End().Offset())) {
				return
			}
		}
		for next, ok := line.Next(); ok; next, ok = next.Next() {
			if !yield(next.Extent()) {
				return
			}
		}
	}
}

// GetPointsOnLineForward yields p and every following character point of its
// line, excluding the line break.
func GetPointsOnLineForward(p buffer.Point) iter.Seq[buffer.Point] {
	return func(yield func(buffer.Point) bool) {
		snap := p.Snapshot()
		end := p.ContainingLine().End().Offset()
		for off := p.Offset(); off < end; off += runeWidthAt(snap, off) {
			if !yield(snap.MustPointAt(off)) {
				return
			}
		}
	}
}

// GetPointsOnLineBackward yields p and every preceding character point of its
// line down to the line start. A p at or inside the line break starts from
// the last character of the line.
func GetPointsOnLineBackward(p buffer.Point) iter.Seq[buffer.Point] {
	return func(yield func(buffer.Point) bool) {
		snap := p.Snapshot()
		line := p.ContainingLine()
		if line.IsEmpty() {
			return
		}

		start := line.Start().Offset()
		off := p.Offset()
		if end := line.End().Offset(); off >= end {
			off = end - runeWidthBefore(snap, end)
		}
		for {
			if !yield(snap.MustPointAt(off)) {
				return
			}
			if off <= start {
				return
			}
			off -= runeWidthBefore(snap, off)
		}
	}
}

// Take yields at most n values of seq.
func Take[T any](seq iter.Seq[T], n int) iter.Seq[T] {
	return func(yield func(T) bool) {
		if n <= 0 {
			return
		}
		i := 0
		for v := range seq {
			if !yield(v) {
				return
			}
			i++
			if i >= n {
				return
			}
		}
	}
}
