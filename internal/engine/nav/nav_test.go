package nav

import (
	"errors"
	"strings"
	"testing"

	"github.com/dshills/snapnav/internal/engine/buffer"
)

var sampleLines = []string{
	"summary description for this line",
	"some other line",
	"running out of things to make up",
}

func create(lines ...string) *buffer.Snapshot {
	return buffer.NewSnapshot(strings.Join(lines, "\n"))
}

func line(t *testing.T, snap *buffer.Snapshot, n int) buffer.Line {
	t.Helper()
	l, err := snap.LineFromNumber(n)
	if err != nil {
		t.Fatalf("LineFromNumber(%d): %v", n, err)
	}
	return l
}

func chars(t *testing.T, points []buffer.Point) string {
	t.Helper()
	var sb strings.Builder
	for _, p := range points {
		r, err := p.Char()
		if err != nil {
			t.Fatalf("Char() at %v: %v", p, err)
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func TestGetLineRangeSpan(t *testing.T) {
	snap := create(sampleLines...)

	span, err := GetLineRangeSpan(snap.StartPoint(), 1)
	if err != nil {
		t.Fatalf("GetLineRangeSpan error = %v", err)
	}
	if span != line(t, snap, 0).Extent() {
		t.Errorf("GetLineRangeSpan(1) = %v, want line 0 extent", span)
	}

	span, err = GetLineRangeSpan(snap.StartPoint(), 2)
	if err != nil {
		t.Fatalf("GetLineRangeSpan error = %v", err)
	}
	want := buffer.NewRange(line(t, snap, 0).Start().Offset(), line(t, snap, 1).End().Offset())
	if span.Range() != want {
		t.Errorf("GetLineRangeSpan(2) = %v, want %v", span.Range(), want)
	}
}

func TestGetLineRangeSpanClampsAtEnd(t *testing.T) {
	snap := create("foo", "bar")

	span, err := GetLineRangeSpan(snap.MustPointAt(5), 10)
	if err != nil {
		t.Fatalf("GetLineRangeSpan error = %v", err)
	}
	if span.Text() != "bar" {
		t.Errorf("span = %q, want %q", span.Text(), "bar")
	}

	span, err = GetLineRangeSpanIncludingLineBreak(snap.StartPoint(), 10)
	if err != nil {
		t.Fatalf("GetLineRangeSpanIncludingLineBreak error = %v", err)
	}
	if span.Text() != "foo\nbar" {
		t.Errorf("span = %q, want whole buffer", span.Text())
	}
}

func TestGetLineRangeSpanInvalidCount(t *testing.T) {
	snap := create("foo")

	for _, n := range []int{0, -1} {
		if _, err := GetLineRangeSpan(snap.StartPoint(), n); !errors.Is(err, buffer.ErrOutOfRange) {
			t.Errorf("GetLineRangeSpan(%d) error = %v, want ErrOutOfRange", n, err)
		}
		if _, err := GetLineRangeSpanIncludingLineBreak(snap.StartPoint(), n); !errors.Is(err, buffer.ErrOutOfRange) {
			t.Errorf("GetLineRangeSpanIncludingLineBreak(%d) error = %v, want ErrOutOfRange", n, err)
		}
	}
}

func TestGetLineRangeSpanIncludingLineBreak(t *testing.T) {
	snap := create("foo", "bar")

	span, err := GetLineRangeSpanIncludingLineBreak(snap.StartPoint(), 1)
	if err != nil {
		t.Fatalf("error = %v", err)
	}
	if span != line(t, snap, 0).ExtentIncludingLineBreak() {
		t.Errorf("span = %v, want line 0 extent including break", span)
	}
}

func TestLineRangeSpanSingleLineMatchesExtent(t *testing.T) {
	snap := buffer.NewSnapshot("ab\r\n\ncd\rlast")

	for off := 0; off <= snap.Len(); off++ {
		p := snap.MustPointAt(off)
		l := p.ContainingLine()

		span, err := GetLineRangeSpan(p, 1)
		if err != nil || span != l.Extent() {
			t.Errorf("offset %d: GetLineRangeSpan = %v, %v; want %v", off, span, err, l.Extent())
		}
		span, err = GetLineRangeSpanIncludingLineBreak(p, 1)
		if err != nil || span != l.ExtentIncludingLineBreak() {
			t.Errorf("offset %d: IncludingLineBreak = %v, %v; want %v", off, span, err, l.ExtentIncludingLineBreak())
		}
	}
}

func TestGetCharacterSpan(t *testing.T) {
	t.Run("ordinary character", func(t *testing.T) {
		snap := create("foo")
		span := GetCharacterSpan(snap.StartPoint())
		if span.Start().Offset() != 0 || span.Len() != 1 {
			t.Errorf("span = %v", span)
		}
	})

	t.Run("empty line", func(t *testing.T) {
		snap := create("foo", "", "baz")
		l := line(t, snap, 1)
		if got := GetCharacterSpan(l.Start()); got != l.ExtentIncludingLineBreak() {
			t.Errorf("span = %v, want %v", got, l.ExtentIncludingLineBreak())
		}
	})

	t.Run("end of line", func(t *testing.T) {
		snap := create("foo", "bar")
		l := line(t, snap, 0)
		want, _ := buffer.NewSpan(l.End(), l.EndIncludingLineBreak())
		if got := GetCharacterSpan(l.End()); got != want {
			t.Errorf("span = %v, want %v", got, want)
		}
	})

	t.Run("crlf line end", func(t *testing.T) {
		snap := buffer.NewSnapshot("foo\r\nbar")
		got := GetCharacterSpan(snap.MustPointAt(3))
		if got.Text() != "\r\n" {
			t.Errorf("span text = %q, want CRLF", got.Text())
		}
	})

	t.Run("end of buffer", func(t *testing.T) {
		snap := create("foo")
		got := GetCharacterSpan(snap.EndPoint())
		if !got.IsEmpty() || got.Start() != snap.EndPoint() {
			t.Errorf("span = %v, want empty span at end", got)
		}
	})

	t.Run("multibyte", func(t *testing.T) {
		snap := create("héllo")
		got := GetCharacterSpan(snap.MustPointAt(1))
		if got.Text() != "é" {
			t.Errorf("span text = %q, want %q", got.Text(), "é")
		}
	})
}

func TestGetGraphemeSpan(t *testing.T) {
	snap := create("ae\u0301b", "")

	got := GetGraphemeSpan(snap.MustPointAt(1))
	if got.Text() != "e\u0301" {
		t.Errorf("grapheme = %q, want %q", got.Text(), "e\u0301")
	}
	if got := GetCharacterSpan(snap.MustPointAt(1)); got.Text() != "e" {
		t.Errorf("character = %q, want %q", got.Text(), "e")
	}
	if got := GetGraphemeSpan(snap.StartPoint()); got.Text() != "a" {
		t.Errorf("grapheme = %q, want %q", got.Text(), "a")
	}

	l := line(t, snap, 0)
	if got := GetGraphemeSpan(l.End()); got != GetCharacterSpan(l.End()) {
		t.Errorf("grapheme at line end = %v, want line break span", got)
	}
	if got := GetGraphemeSpan(snap.EndPoint()); !got.IsEmpty() {
		t.Errorf("grapheme at empty last line = %v, want empty", got)
	}
}

func TestCharacterSpanProperties(t *testing.T) {
	snap := create("abc", "", "de")

	for off := 0; off < snap.Len(); off++ {
		p := snap.MustPointAt(off)
		l := p.ContainingLine()
		got := GetCharacterSpan(p)

		switch {
		case l.IsEmpty():
			if got != l.ExtentIncludingLineBreak() {
				t.Errorf("offset %d: empty line span = %v", off, got)
			}
		case off < l.End().Offset():
			if got.Len() != 1 || got.Start() != p {
				t.Errorf("offset %d: char span = %v, want width 1 at p", off, got)
			}
		default:
			if got != l.LineBreakSpan() {
				t.Errorf("offset %d: line end span = %v, want line break", off, got)
			}
		}
	}
}
