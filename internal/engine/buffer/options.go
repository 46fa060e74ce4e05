package buffer

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// DefaultHistoryLimit is the number of snapshots a Buffer retains for SnapshotAt.
const DefaultHistoryLimit = 100

// Option is a functional option for configuring a Buffer.
type Option func(*Buffer)

// WithLineEnding sets the buffer's line ending style.
func WithLineEnding(le LineEnding) Option {
	return func(b *Buffer) {
		b.lineEnding = le
	}
}

// WithLF configures the buffer to use Unix line endings (\n).
func WithLF() Option {
	return WithLineEnding(LineEndingLF)
}

// WithCRLF configures the buffer to use Windows line endings (\r\n).
func WithCRLF() Option {
	return WithLineEnding(LineEndingCRLF)
}

// WithCR configures the buffer to use old Mac line endings (\r).
func WithCR() Option {
	return WithLineEnding(LineEndingCR)
}

// WithPreservedLineEndings stores text exactly as given instead of
// normalizing line breaks to the buffer's style.
func WithPreservedLineEndings() Option {
	return func(b *Buffer) {
		b.normalize = false
	}
}

// WithHistoryLimit sets how many recent snapshots remain addressable by version.
func WithHistoryLimit(n int) Option {
	return func(b *Buffer) {
		if n > 0 {
			b.history = newHistory(n)
		}
	}
}

// WithID sets the buffer identity instead of generating a random one.
func WithID(id uuid.UUID) Option {
	return func(b *Buffer) {
		b.id = id
	}
}

// DetectLineEnding returns a LineEnding based on the most common line ending in the text.
// Returns LineEndingLF if no line endings are found.
func DetectLineEnding(text string) LineEnding {
	var lfCount, crlfCount, crCount int

	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				crlfCount++
				i++
			} else {
				crCount++
			}
		case '\n':
			lfCount++
		}
	}

	switch {
	case crlfCount > 0 && crlfCount >= lfCount && crlfCount >= crCount:
		return LineEndingCRLF
	case crCount > 0 && crCount >= lfCount:
		return LineEndingCR
	default:
		return LineEndingLF
	}
}

// ParseLineEnding parses "lf", "crlf" or "cr" (case-insensitive).
func ParseLineEnding(s string) (LineEnding, error) {
	switch strings.ToLower(s) {
	case "lf", "unix":
		return LineEndingLF, nil
	case "crlf", "windows", "dos":
		return LineEndingCRLF, nil
	case "cr", "mac":
		return LineEndingCR, nil
	default:
		return LineEndingLF, fmt.Errorf("unknown line ending %q", s)
	}
}
