package script

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/snapnav/internal/engine/buffer"
	"github.com/dshills/snapnav/internal/engine/nav"
)

// navModule implements the nav table over one snapshot.
type navModule struct {
	snap      *buffer.Snapshot
	maxPoints int
}

func (m *navModule) register(L *lua.LState) {
	mod := L.NewTable()

	L.SetField(mod, "len", L.NewFunction(m.length))
	L.SetField(mod, "version", L.NewFunction(m.version))
	L.SetField(mod, "line_count", L.NewFunction(m.lineCount))
	L.SetField(mod, "line", L.NewFunction(m.line))
	L.SetField(mod, "line_at", L.NewFunction(m.lineAt))
	L.SetField(mod, "char", L.NewFunction(m.char))
	L.SetField(mod, "next", L.NewFunction(m.next))
	L.SetField(mod, "prev", L.NewFunction(m.prev))
	L.SetField(mod, "next_on_line", L.NewFunction(m.nextOnLine))
	L.SetField(mod, "prev_on_line", L.NewFunction(m.prevOnLine))
	L.SetField(mod, "line_span", L.NewFunction(m.lineSpan))
	L.SetField(mod, "char_span", L.NewFunction(m.charSpan))
	L.SetField(mod, "grapheme_span", L.NewFunction(m.graphemeSpan))
	L.SetField(mod, "lines", L.NewFunction(m.lines))
	L.SetField(mod, "spans", L.NewFunction(m.spans))
	L.SetField(mod, "points", L.NewFunction(m.points))
	L.SetField(mod, "position", L.NewFunction(m.position))

	L.SetGlobal("nav", mod)
}

func (m *navModule) snapshot(L *lua.LState) *buffer.Snapshot {
	if m.snap == nil {
		L.RaiseError("%s", ErrNoSnapshot.Error())
	}
	return m.snap
}

// checkPoint reads argument n as an offset into the snapshot.
func (m *navModule) checkPoint(L *lua.LState, n int) buffer.Point {
	snap := m.snapshot(L)
	p, err := snap.PointAt(L.CheckInt(n))
	if err != nil {
		L.ArgError(n, err.Error())
	}
	return p
}

// optPath reads argument n as a direction, defaulting to forward.
func optPath(L *lua.LState, n int) nav.SearchPath {
	path, err := nav.ParseSearchPath(L.OptString(n, "forward"))
	if err != nil {
		L.ArgError(n, err.Error())
	}
	return path
}

func lineTable(L *lua.LState, l buffer.Line) *lua.LTable {
	t := L.NewTable()
	L.SetField(t, "number", lua.LNumber(l.Number()))
	L.SetField(t, "start", lua.LNumber(l.Start().Offset()))
	L.SetField(t, "end", lua.LNumber(l.End().Offset()))
	L.SetField(t, "end_including_break", lua.LNumber(l.EndIncludingLineBreak().Offset()))
	L.SetField(t, "text", lua.LString(l.Text()))
	return t
}

func spanTable(L *lua.LState, s buffer.Span) *lua.LTable {
	t := L.NewTable()
	L.SetField(t, "start", lua.LNumber(s.Start().Offset()))
	L.SetField(t, "end", lua.LNumber(s.End().Offset()))
	L.SetField(t, "text", lua.LString(s.Text()))
	return t
}

func pushSpan(L *lua.LState, s buffer.Span) int {
	L.Push(lua.LNumber(s.Start().Offset()))
	L.Push(lua.LNumber(s.End().Offset()))
	return 2
}

// len() -> number
func (m *navModule) length(L *lua.LState) int {
	L.Push(lua.LNumber(m.snapshot(L).Len()))
	return 1
}

// version() -> number
func (m *navModule) version(L *lua.LState) int {
	L.Push(lua.LNumber(m.snapshot(L).Version()))
	return 1
}

// line_count() -> number
func (m *navModule) lineCount(L *lua.LState) int {
	L.Push(lua.LNumber(m.snapshot(L).LineCount()))
	return 1
}

// line(n) -> {number, start, end, end_including_break, text}
func (m *navModule) line(L *lua.LState) int {
	l, err := m.snapshot(L).LineFromNumber(L.CheckInt(1))
	if err != nil {
		L.ArgError(1, err.Error())
	}
	L.Push(lineTable(L, l))
	return 1
}

// line_at(offset) -> line table
func (m *navModule) lineAt(L *lua.LState) int {
	L.Push(lineTable(L, m.checkPoint(L, 1).ContainingLine()))
	return 1
}

// char(offset[, default]) -> string
// Without a default, reading the end of the buffer is an error.
func (m *navModule) char(L *lua.LState) int {
	p := m.checkPoint(L, 1)
	if L.GetTop() >= 2 {
		def := []rune(L.CheckString(2))
		if len(def) != 1 {
			L.ArgError(2, "default must be a single character")
		}
		L.Push(lua.LString(string(nav.GetCharOrDefault(p, def[0]))))
		return 1
	}

	r, err := p.Char()
	if err != nil {
		L.RaiseError("char: %v", err)
	}
	L.Push(lua.LString(string(r)))
	return 1
}

// next(offset) -> offset, wrapping at the end of the buffer
func (m *navModule) next(L *lua.LState) int {
	L.Push(lua.LNumber(nav.NextPointWithWrap(m.checkPoint(L, 1)).Offset()))
	return 1
}

// prev(offset) -> offset, wrapping at the start of the buffer
func (m *navModule) prev(L *lua.LState) int {
	L.Push(lua.LNumber(nav.PreviousPointWithWrap(m.checkPoint(L, 1)).Offset()))
	return 1
}

// next_on_line(offset, count) -> offset or nil
func (m *navModule) nextOnLine(L *lua.LState) int {
	p, ok := nav.TryGetNextPointOnLine(m.checkPoint(L, 1), L.OptInt(2, 1))
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LNumber(p.Offset()))
	return 1
}

// prev_on_line(offset, count) -> offset or nil
func (m *navModule) prevOnLine(L *lua.LState) int {
	p, ok := nav.TryGetPreviousPointOnLine(m.checkPoint(L, 1), L.OptInt(2, 1))
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LNumber(p.Offset()))
	return 1
}

// line_span(offset, count[, include_break]) -> start, end
func (m *navModule) lineSpan(L *lua.LState) int {
	p := m.checkPoint(L, 1)
	count := L.OptInt(2, 1)

	get := nav.GetLineRangeSpan
	if L.OptBool(3, false) {
		get = nav.GetLineRangeSpanIncludingLineBreak
	}
	span, err := get(p, count)
	if err != nil {
		L.ArgError(2, err.Error())
	}
	return pushSpan(L, span)
}

// char_span(offset) -> start, end
func (m *navModule) charSpan(L *lua.LState) int {
	return pushSpan(L, nav.GetCharacterSpan(m.checkPoint(L, 1)))
}

// grapheme_span(offset) -> start, end
func (m *navModule) graphemeSpan(L *lua.LState) int {
	return pushSpan(L, nav.GetGraphemeSpan(m.checkPoint(L, 1)))
}

// lines(offset[, dir]) -> {line tables}
func (m *navModule) lines(L *lua.LState) int {
	p := m.checkPoint(L, 1)
	t := L.NewTable()
	for l := range nav.GetLines(p, optPath(L, 2)) {
		t.Append(lineTable(L, l))
	}
	L.Push(t)
	return 1
}

// spans(offset[, dir]) -> {span tables}
func (m *navModule) spans(L *lua.LState) int {
	p := m.checkPoint(L, 1)
	t := L.NewTable()
	for s := range nav.GetSpans(optPath(L, 2), p) {
		t.Append(spanTable(L, s))
	}
	L.Push(t)
	return 1
}

// points(offset[, dir[, limit]]) -> {offsets}
// Without a limit the traversal covers the buffer once.
func (m *navModule) points(L *lua.LState) int {
	p := m.checkPoint(L, 1)
	path := optPath(L, 2)
	limit := L.OptInt(3, 0)
	if limit < 0 {
		L.ArgError(3, "limit must be non-negative")
	}

	seq := nav.GetPointsOnce(path, p)
	if limit > 0 {
		seq = nav.GetPoints(path, p)
	}
	if limit == 0 || limit > m.maxPoints {
		limit = m.maxPoints
	}

	t := L.NewTable()
	for pt := range nav.Take(seq, limit) {
		t.Append(lua.LNumber(pt.Offset()))
	}
	L.Push(t)
	return 1
}

// position(offset) -> line, column
func (m *navModule) position(L *lua.LState) int {
	pos := m.checkPoint(L, 1).Position()
	L.Push(lua.LNumber(pos.Line))
	L.Push(lua.LNumber(pos.Column))
	return 2
}
