package buffer

import (
	"cmp"
	"slices"
)

// lineExtent stores the boundaries of one line.
// end excludes the line break; next is the start of the following line
// (end including line break).
type lineExtent struct {
	start ByteOffset
	end   ByteOffset
	next  ByteOffset
}

func (e lineExtent) breakLen() int {
	return e.next - e.end
}

// buildLineTable scans text once and records every line. A "\r\n" pair is a
// single two-byte break. The final line never has a break, so a text ending
// in a break has an empty last line.
func buildLineTable(text string) []lineExtent {
	lines := make([]lineExtent, 0, 16)
	start := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\n':
			lines = append(lines, lineExtent{start: start, end: i, next: i + 1})
			start = i + 1
		case '\r':
			next := i + 1
			if next < len(text) && text[next] == '\n' {
				next++
			}
			lines = append(lines, lineExtent{start: start, end: i, next: next})
			start = next
			i = next - 1
		}
	}
	return append(lines, lineExtent{start: start, end: len(text), next: len(text)})
}

// lineIndexForOffset returns the index of the line containing off.
// Line starts are strictly increasing, so the answer is the largest index
// whose start is <= off. off must be in [0, len(text)].
func lineIndexForOffset(lines []lineExtent, off ByteOffset) int {
	i, found := slices.BinarySearchFunc(lines, off, func(e lineExtent, target ByteOffset) int {
		return cmp.Compare(e.start, target)
	})
	if found {
		return i
	}
	return i - 1
}
