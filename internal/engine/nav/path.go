package nav

import (
	"fmt"
	"strings"
)

// SearchPath is the direction of a traversal.
type SearchPath uint8

const (
	// Forward visits increasing offsets.
	Forward SearchPath = iota
	// Backward visits decreasing offsets.
	Backward
)

// String returns the lowercase name of the path.
func (sp SearchPath) String() string {
	switch sp {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	default:
		return fmt.Sprintf("SearchPath(%d)", uint8(sp))
	}
}

// Reverse returns the opposite direction.
func (sp SearchPath) Reverse() SearchPath {
	if sp == Forward {
		return Backward
	}
	return Forward
}

// ParseSearchPath parses "forward"/"f" or "backward"/"b" (case-insensitive).
func ParseSearchPath(s string) (SearchPath, error) {
	switch strings.ToLower(s) {
	case "forward", "f", "fwd":
		return Forward, nil
	case "backward", "b", "back":
		return Backward, nil
	default:
		return Forward, fmt.Errorf("unknown search path %q", s)
	}
}
