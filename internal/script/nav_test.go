package script

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dshills/snapnav/internal/engine/buffer"
)

func TestNavFunctions(t *testing.T) {
	tests := []struct {
		name string
		text string
		src  string
		want string
	}{
		{"len", "foo\nbar", `print(nav.len(), nav.line_count(), nav.version())`, "7\t2\t0"},
		{"line", "foo\nbar", `local l = nav.line(1) print(l.number, l.start, l["end"], l.text)`, "1\t4\t7\tbar"},
		{"line_at", "foo\r\nbar", `local l = nav.line_at(3) print(l.number, l.end_including_break)`, "0\t5"},
		{"char", "foo", `print(nav.char(0), nav.char(3, "x"))`, "f\tx"},
		{"next wraps", "foo\nbar", `print(nav.next(3), nav.next(7))`, "4\t0"},
		{"prev wraps", "foo\nbar", `print(nav.prev(4), nav.prev(0))`, "3\t7"},
		{"next_on_line", "foo\nbar", `print(nav.next_on_line(0, 2), nav.next_on_line(2, 1))`, "2\tnil"},
		{"prev_on_line", "foo\nbar", `print(nav.prev_on_line(6, 2), nav.prev_on_line(4))`, "4\tnil"},
		{"line_span", "foo\nbar\nbaz", `print(nav.line_span(1, 2)) print(nav.line_span(1, 1, true))`, "0\t7\n0\t4"},
		{"char_span", "foo\n\nbar", `print(nav.char_span(3)) print(nav.char_span(4))`, "3\t4\n4\t5"},
		{"grapheme_span", "ae\u0301", `print(nav.grapheme_span(1))`, "1\t4"},
		{
			"lines",
			"a\nb\nc",
			`local t = {} for _, l in ipairs(nav.lines(2, "backward")) do t[#t+1] = l.text end print(table.concat(t))`,
			"ba",
		},
		{
			"spans",
			"foo bar\nbaz",
			`for _, s in ipairs(nav.spans(8, "backward")) do print(s.start, s["end"], s.text) end`,
			"0\t7\tfoo bar",
		},
		{
			"points once",
			"foo bar",
			`local t = {} for _, p in ipairs(nav.points(7, "backward")) do t[#t+1] = nav.char(p) end print(table.concat(t))`,
			"rab oof",
		},
		{"points limit", "ab", `print(#nav.points(0, "forward", 5))`, "5"},
		{"position", "foo\nbar", `print(nav.position(5))`, "1\t1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, out := newTestState(t, tt.text)
			run(t, s, tt.src)
			if got := strings.TrimSuffix(out.String(), "\n"); got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNavPointsCapped(t *testing.T) {
	s, out := newTestState(t, "ab", WithMaxPoints(3))

	run(t, s, `print(#nav.points(0, "forward", 100), #nav.points(0))`)
	if got := out.String(); got != "3\t2\n" {
		t.Errorf("output = %q", got)
	}
}

func TestNavArgumentErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		msg  string
	}{
		{"offset past end", `nav.next(99)`, "out of range"},
		{"negative offset", `nav.char(-1)`, "out of range"},
		{"line number", `nav.line(5)`, "out of range"},
		{"char at end", `nav.char(3)`, "out of range"},
		{"direction", `nav.lines(0, "sideways")`, "unknown search path"},
		{"line count", `nav.line_span(0, 0)`, "out of range"},
		{"default", `nav.char(3, "xy")`, "single character"},
		{"limit", `nav.points(0, "forward", -1)`, "non-negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestState(t, "foo")
			err := s.Run(context.Background(), tt.src)
			if !errors.Is(err, ErrScript) || !strings.Contains(err.Error(), tt.msg) {
				t.Errorf("Run(%q) error = %v, want ErrScript mentioning %q", tt.src, err, tt.msg)
			}
		})
	}
}

func TestNavUnbound(t *testing.T) {
	s, _ := newTestState(t, "")

	err := s.Run(context.Background(), `nav.len()`)
	if !errors.Is(err, ErrScript) || !strings.Contains(err.Error(), ErrNoSnapshot.Error()) {
		t.Errorf("Run() error = %v, want no snapshot error", err)
	}
}

func TestBindReplacesSnapshot(t *testing.T) {
	s, out := newTestState(t, "one")

	b := buffer.NewBufferFromString("one")
	if _, err := b.Insert(3, " two"); err != nil {
		t.Fatal(err)
	}
	if err := s.Bind(b.Snapshot()); err != nil {
		t.Fatal(err)
	}
	run(t, s, `print(nav.len(), nav.version())`)

	if got := out.String(); got != "7\t1\n" {
		t.Errorf("output = %q", got)
	}
	if s.Snapshot() != b.Snapshot() {
		t.Error("Snapshot() should return the bound snapshot")
	}
}
