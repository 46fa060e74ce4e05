package nav

import (
	"fmt"

	"github.com/rivo/uniseg"

	"github.com/dshills/snapnav/internal/engine/buffer"
)

// GetLineRangeSpan returns the span from the start of the line containing p
// through the end of the count-th line, excluding that line's line break.
// Fewer lines than count are clamped at the end of the buffer. A count below
// 1 returns buffer.ErrOutOfRange.
func GetLineRangeSpan(p buffer.Point, count int) (buffer.Span, error) {
	first, last, err := lineRange(p, count)
	if err != nil {
		return buffer.Span{}, err
	}
	return buffer.NewSpan(first.Start(), last.End())
}

// GetLineRangeSpanIncludingLineBreak is GetLineRangeSpan with the final
// line's line break included.
func GetLineRangeSpanIncludingLineBreak(p buffer.Point, count int) (buffer.Span, error) {
	first, last, err := lineRange(p, count)
	if err != nil {
		return buffer.Span{}, err
	}
	return buffer.NewSpan(first.Start(), last.EndIncludingLineBreak())
}

func lineRange(p buffer.Point, count int) (first, last buffer.Line, err error) {
	if count < 1 {
		return first, last, fmt.Errorf("%w: line count %d must be at least 1", buffer.ErrOutOfRange, count)
	}
	snap := p.Snapshot()
	first = p.ContainingLine()
	lastNumber := min(first.Number()+count-1, snap.LineCount()-1)
	last, err = snap.LineFromNumber(lastNumber)
	return first, last, err
}

// GetCharacterSpan returns the span of the character at p. At the end of a
// line it is the span of the line break, which is empty at the end of the
// buffer. On an empty line it is the whole line including its break.
func GetCharacterSpan(p buffer.Point) buffer.Span {
	snap := p.Snapshot()
	line := p.ContainingLine()
	switch {
	case line.IsEmpty():
		return line.ExtentIncludingLineBreak()
	case p.Offset() >= line.End().Offset():
		return line.LineBreakSpan()
	default:
		return snap.MustSpan(p.Offset(), p.Offset()+runeWidthAt(snap, p.Offset()))
	}
}

// GetGraphemeSpan is GetCharacterSpan for user-perceived characters: within
// line content it covers the whole grapheme cluster starting at p, such as a
// base letter with its combining marks.
func GetGraphemeSpan(p buffer.Point) buffer.Span {
	line := p.ContainingLine()
	if line.IsEmpty() || p.Offset() >= line.End().Offset() {
		return GetCharacterSpan(p)
	}

	snap := p.Snapshot()
	rest, err := snap.TextRange(p.Offset(), line.End().Offset())
	if err != nil {
		return GetCharacterSpan(p)
	}
	cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(rest, -1)
	if len(cluster) == 0 {
		return GetCharacterSpan(p)
	}
	return snap.MustSpan(p.Offset(), p.Offset()+len(cluster))
}
