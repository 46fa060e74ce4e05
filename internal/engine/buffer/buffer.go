package buffer

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// LineEnding specifies the line ending style.
type LineEnding uint8

const (
	LineEndingLF   LineEnding = iota // Unix: \n
	LineEndingCRLF                   // Windows: \r\n
	LineEndingCR                     // Old Mac: \r
)

// String returns the string representation of the line ending.
func (le LineEnding) String() string {
	switch le {
	case LineEndingCRLF:
		return "\\r\\n"
	case LineEndingCR:
		return "\\r"
	default:
		return "\\n"
	}
}

// Sequence returns the actual line ending characters.
func (le LineEnding) Sequence() string {
	switch le {
	case LineEndingCRLF:
		return "\r\n"
	case LineEndingCR:
		return "\r"
	default:
		return "\n"
	}
}

// Buffer is the store that produces snapshots. It holds the current snapshot
// and replaces it on every change; published snapshots are never modified.
// All methods are thread-safe.
type Buffer struct {
	mu         sync.RWMutex
	id         uuid.UUID
	current    *Snapshot
	lineEnding LineEnding
	normalize  bool
	history    *history
}

// NewBuffer creates a new empty buffer at version 0.
func NewBuffer(opts ...Option) *Buffer {
	b := &Buffer{
		id:         uuid.New(),
		lineEnding: LineEndingLF,
		normalize:  true,
		history:    newHistory(DefaultHistoryLimit),
	}

	for _, opt := range opts {
		opt(b)
	}

	b.current = newSnapshot(b.id, 0, "", b.lineEnding)
	b.history.add(b.current)
	return b
}

// NewBufferFromString creates a buffer with initial content at version 0.
func NewBufferFromString(s string, opts ...Option) *Buffer {
	b := NewBuffer(opts...)
	b.history.clear()
	b.current = newSnapshot(b.id, 0, b.normalizeLineEndings(s), b.lineEnding)
	b.history.add(b.current)
	return b
}

// NewBufferFromReader creates a buffer from an io.Reader.
func NewBufferFromReader(r io.Reader, opts ...Option) (*Buffer, error) {
	// Read all content first so CRLF pairs split across reads normalize correctly
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return NewBufferFromString(string(data), opts...), nil
}

// normalizeLineEndings converts all line endings to the buffer's preferred style.
func (b *Buffer) normalizeLineEndings(s string) string {
	if !b.normalize || !strings.ContainsAny(s, "\r\n") {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	if b.lineEnding != LineEndingLF {
		s = strings.ReplaceAll(s, "\n", b.lineEnding.Sequence())
	}
	return s
}

// ID returns the buffer identity shared by all of its snapshots.
func (b *Buffer) ID() uuid.UUID {
	return b.id
}

// Snapshot returns the current snapshot.
// Safe for concurrent access from other goroutines.
func (b *Buffer) Snapshot() *Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.current
}

// SnapshotAt returns the snapshot published at version v, if it is still
// retained by the revision history.
func (b *Buffer) SnapshotAt(v Version) (*Snapshot, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.history.get(v)
}

// Version returns the version of the current snapshot.
func (b *Buffer) Version() Version {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.current.version
}

// Text returns the full buffer content as a string.
func (b *Buffer) Text() string {
	return b.Snapshot().Text()
}

// Len returns the total byte length of the buffer.
func (b *Buffer) Len() int {
	return b.Snapshot().Len()
}

// LineEnding returns the buffer's line ending style.
func (b *Buffer) LineEnding() LineEnding {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lineEnding
}

// Write Operations

// Insert inserts text at the given offset.
// Returns the end position of the inserted text.
func (b *Buffer) Insert(offset ByteOffset, text string) (ByteOffset, error) {
	res, err := b.ApplyEdit(NewInsert(offset, text))
	if err != nil {
		return 0, err
	}
	return res.NewRange.End, nil
}

// Delete removes text in the given range.
func (b *Buffer) Delete(start, end ByteOffset) error {
	_, err := b.ApplyEdit(NewDelete(start, end))
	return err
}

// Replace replaces text in the given range with new text.
// Returns the end position of the replacement text.
func (b *Buffer) Replace(start, end ByteOffset, text string) (ByteOffset, error) {
	res, err := b.ApplyEdit(NewEdit(NewRange(start, end), text))
	if err != nil {
		return 0, err
	}
	return res.NewRange.End, nil
}

// ApplyEdit applies a single edit and publishes the resulting snapshot.
func (b *Buffer) ApplyEdit(edit Edit) (EditResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	old := b.current
	if err := validateRange(edit.Range, old.Len()); err != nil {
		return EditResult{}, err
	}

	oldText := old.text[edit.Range.Start:edit.Range.End]
	text := b.normalizeLineEndings(edit.NewText)
	snap := b.publish(old.text[:edit.Range.Start] + text + old.text[edit.Range.End:])

	newEnd := edit.Range.Start + len(text)
	return EditResult{
		OldRange: edit.Range,
		NewRange: Range{Start: edit.Range.Start, End: newEnd},
		OldText:  oldText,
		Delta:    len(text) - edit.Range.Len(),
		Snapshot: snap,
	}, nil
}

// ApplyEdits applies multiple edits atomically as a single new version.
// Edits must be in reverse order (highest offset first) and must not overlap.
func (b *Buffer) ApplyEdits(edits []Edit) (*Snapshot, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(edits) == 0 {
		return b.current, nil
	}

	// Validate edits are in reverse order and non-overlapping
	for i := 1; i < len(edits); i++ {
		if edits[i].Range.End > edits[i-1].Range.Start {
			return nil, ErrEditsOverlap
		}
	}

	text := b.current.text
	for _, edit := range edits {
		if err := validateRange(edit.Range, len(text)); err != nil {
			return nil, err
		}
	}

	// Apply back to front so earlier offsets stay valid
	for _, edit := range edits {
		text = text[:edit.Range.Start] + b.normalizeLineEndings(edit.NewText) + text[edit.Range.End:]
	}

	return b.publish(text), nil
}

// SetText replaces the whole content, e.g. after the backing file changed.
// It always publishes a new version, even if the text is unchanged.
func (b *Buffer) SetText(text string) *Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.publish(b.normalizeLineEndings(text))
}

// publish installs text as the next version. Caller holds the write lock.
func (b *Buffer) publish(text string) *Snapshot {
	snap := newSnapshot(b.id, b.current.version+1, text, b.lineEnding)
	b.current = snap
	b.history.add(snap)
	return snap
}

func validateRange(r Range, length int) error {
	if !r.IsValid() || r.End > length {
		return fmt.Errorf("%w: %s in buffer of length %d", ErrRangeInvalid, r, length)
	}
	return nil
}
