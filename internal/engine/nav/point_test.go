package nav

import (
	"testing"

	"github.com/dshills/snapnav/internal/engine/buffer"
)

func TestNextPointWithWrap(t *testing.T) {
	snap := create("foo", "bar")
	first, second := line(t, snap, 0), line(t, snap, 1)

	if got := NextPointWithWrap(first.Start()); got.Offset() != 1 {
		t.Errorf("next of start = %v, want offset 1", got)
	}
	if got := NextPointWithWrap(first.End()); got != second.Start() {
		t.Errorf("next of line end = %v, want %v", got, second.Start())
	}
	if got := NextPointWithWrap(second.End()); got != first.Start() {
		t.Errorf("next of buffer end = %v, want buffer start", got)
	}
}

func TestNextPointWithWrapCRLF(t *testing.T) {
	snap := buffer.NewSnapshot("ab\r\ncd")

	// Both the line end and the '\n' inside the break step to the next line.
	for _, off := range []int{2, 3} {
		if got := NextPointWithWrap(snap.MustPointAt(off)); got.Offset() != 4 {
			t.Errorf("next of %d = %v, want offset 4", off, got)
		}
	}
}

func TestPreviousPointWithWrap(t *testing.T) {
	snap := create("foo", "bar")
	first, second := line(t, snap, 0), line(t, snap, 1)

	if got := PreviousPointWithWrap(snap.MustPointAt(1)); got != first.Start() {
		t.Errorf("previous of 1 = %v, want buffer start", got)
	}
	if got := PreviousPointWithWrap(second.Start()); got != first.End() {
		t.Errorf("previous of line start = %v, want %v", got, first.End())
	}
	if got := PreviousPointWithWrap(snap.StartPoint()); got != snap.EndPoint() {
		t.Errorf("previous of buffer start = %v, want end point", got)
	}
}

func TestPreviousPointWithWrapInsideLineBreak(t *testing.T) {
	snap := buffer.NewSnapshot("ab\r\ncd")

	if got := PreviousPointWithWrap(snap.MustPointAt(3)); got.Offset() != 2 {
		t.Errorf("previous of '\\n' = %v, want line end 2", got)
	}
}

func TestWrapSteppingMultibyte(t *testing.T) {
	snap := buffer.NewSnapshot("日本\n語")

	var offsets []int
	p := snap.StartPoint()
	for range 5 {
		p = NextPointWithWrap(p)
		offsets = append(offsets, p.Offset())
	}
	want := []int{3, 6, 7, 10, 0}
	for i := range want {
		if offsets[i] != want[i] {
			t.Fatalf("forward offsets = %v, want %v", offsets, want)
		}
	}

	if got := PreviousPointWithWrap(snap.MustPointAt(6)); got.Offset() != 3 {
		t.Errorf("previous of 6 = %v, want 3", got)
	}
}

func TestNextPreviousRoundTrip(t *testing.T) {
	snap := create("foo", "", "ba", "end")
	last := line(t, snap, snap.LineCount()-1)

	for off := 0; off < last.Start().Offset(); off++ {
		p := snap.MustPointAt(off)
		if got := PreviousPointWithWrap(NextPointWithWrap(p)); got != p {
			t.Errorf("offset %d: previous(next(p)) = %v", off, got)
		}
	}

	if got := NextPointWithWrap(snap.EndPoint()); got != snap.StartPoint() {
		t.Errorf("end wraps to %v", got)
	}
	if got := PreviousPointWithWrap(snap.StartPoint()); got != snap.EndPoint() {
		t.Errorf("start wraps to %v", got)
	}
}

func TestWrapSteppingEmptyBuffer(t *testing.T) {
	snap := buffer.NewSnapshot("")
	p := snap.StartPoint()

	if got := NextPointWithWrap(p); got != p {
		t.Errorf("next in empty buffer = %v", got)
	}
	if got := PreviousPointWithWrap(p); got != p {
		t.Errorf("previous in empty buffer = %v", got)
	}
}

func TestTryGetNextPointOnLine(t *testing.T) {
	snap := create("foo", "bar")
	first := line(t, snap, 0)

	tests := []struct {
		name   string
		from   int
		count  int
		want   int
		wantOK bool
	}{
		{"from start", 0, 1, 1, true},
		{"from middle", 1, 1, 2, true},
		{"zero count", 2, 0, 2, true},
		{"zero count at line end", 3, 0, 3, true},
		{"to line end", 2, 1, 0, false},
		{"from line end", first.End().Offset(), 1, 0, false},
		{"past line", 0, 5, 0, false},
		{"negative", 1, -1, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := TryGetNextPointOnLine(snap.MustPointAt(tt.from), tt.count)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got.Offset() != tt.want {
				t.Errorf("offset = %d, want %d", got.Offset(), tt.want)
			}
		})
	}
}

func TestTryGetNextPointOnLineNeverCrossesLine(t *testing.T) {
	snap := create("ab", "", "cd")

	for l := range snap.Lines() {
		if _, ok := TryGetNextPointOnLine(l.End(), 1); ok {
			t.Errorf("line %d: advanced past line end", l.Number())
		}
	}
}

func TestTryGetPreviousPointOnLine(t *testing.T) {
	snap := create("foo", "bar")
	first := line(t, snap, 0)

	tests := []struct {
		name   string
		from   int
		count  int
		want   int
		wantOK bool
	}{
		{"from last char", first.End().Offset() - 1, 1, 1, true},
		{"to line start", 1, 1, 0, true},
		{"from line start", 0, 1, 0, false},
		{"second line start", 4, 1, 0, false},
		{"from line end", 3, 3, 0, true},
		{"inside line break", 3, 1, 2, true},
		{"zero count", 5, 0, 5, true},
		{"too far", 6, 3, 0, false},
		{"negative", 1, -2, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := TryGetPreviousPointOnLine(snap.MustPointAt(tt.from), tt.count)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got.Offset() != tt.want {
				t.Errorf("offset = %d, want %d", got.Offset(), tt.want)
			}
		})
	}
}

func TestTryAddSubtractOne(t *testing.T) {
	snap := create("ab", "c")

	if p, ok := TryAddOne(snap.MustPointAt(2)); !ok || p.Offset() != 3 {
		t.Errorf("TryAddOne across break = %v, %v", p, ok)
	}
	if _, ok := TryAddOne(snap.EndPoint()); ok {
		t.Error("TryAddOne at end should fail")
	}
	if _, ok := TrySubtractOne(snap.StartPoint()); ok {
		t.Error("TrySubtractOne at start should fail")
	}
	if got := AddOneOrCurrent(snap.EndPoint()); got != snap.EndPoint() {
		t.Errorf("AddOneOrCurrent at end = %v", got)
	}
	if got := SubtractOneOrCurrent(snap.StartPoint()); got != snap.StartPoint() {
		t.Errorf("SubtractOneOrCurrent at start = %v", got)
	}
	if got := SubtractOneOrCurrent(snap.MustPointAt(3)); got.Offset() != 2 {
		t.Errorf("SubtractOneOrCurrent(3) = %v", got)
	}
}

func TestGetCharOrDefault(t *testing.T) {
	snap := create("foo", "bar")

	if got := GetCharOrDefault(snap.StartPoint(), 'g'); got != 'f' {
		t.Errorf("GetCharOrDefault(start) = %q, want 'f'", got)
	}
	if _, err := snap.EndPoint().Char(); err == nil {
		t.Error("Char() at end point should fail")
	}
	if got := GetCharOrDefault(snap.EndPoint(), 'f'); got != 'f' {
		t.Errorf("GetCharOrDefault(end) = %q, want 'f'", got)
	}

	empty := buffer.NewSnapshot("")
	if got := GetCharOrDefault(empty.EndPoint(), 'x'); got != 'x' {
		t.Errorf("GetCharOrDefault(empty end) = %q, want 'x'", got)
	}
}

func TestPointPredicates(t *testing.T) {
	snap := buffer.NewSnapshot("ab\r\ncd")

	tests := []struct {
		off                                   int
		start, end, lineStart, lineEnd, inBrk bool
		column                                int
	}{
		{0, true, false, true, false, false, 0},
		{2, false, false, false, true, true, 2},
		{3, false, false, false, false, true, 3},
		{4, false, false, true, false, false, 0},
		{6, false, true, false, true, false, 2},
	}

	for _, tt := range tests {
		p := snap.MustPointAt(tt.off)
		if IsStartPoint(p) != tt.start || IsEndPoint(p) != tt.end {
			t.Errorf("offset %d: start/end = %v/%v", tt.off, IsStartPoint(p), IsEndPoint(p))
		}
		if IsStartOfLine(p) != tt.lineStart || IsEndOfLine(p) != tt.lineEnd {
			t.Errorf("offset %d: line start/end = %v/%v", tt.off, IsStartOfLine(p), IsEndOfLine(p))
		}
		if IsInsideLineBreak(p) != tt.inBrk {
			t.Errorf("offset %d: IsInsideLineBreak = %v", tt.off, IsInsideLineBreak(p))
		}
		if Column(p) != tt.column {
			t.Errorf("offset %d: Column = %d, want %d", tt.off, Column(p), tt.column)
		}
	}
}

func TestSearchPath(t *testing.T) {
	if Forward.Reverse() != Backward || Backward.Reverse() != Forward {
		t.Error("Reverse should swap directions")
	}
	for _, s := range []string{"forward", "f", "Backward", "back"} {
		if _, err := ParseSearchPath(s); err != nil {
			t.Errorf("ParseSearchPath(%q) error = %v", s, err)
		}
	}
	if _, err := ParseSearchPath("sideways"); err == nil {
		t.Error("ParseSearchPath(sideways) should fail")
	}
	if Forward.String() != "forward" || Backward.String() != "backward" {
		t.Errorf("String() = %q/%q", Forward.String(), Backward.String())
	}
}
