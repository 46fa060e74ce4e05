package buffer

// history keeps the most recent snapshots of a buffer, oldest first.
// Versions are consecutive, so lookup is an index computation.
type history struct {
	snapshots []*Snapshot
	limit     int
}

func newHistory(limit int) *history {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &history{limit: limit}
}

// add appends snap, evicting the oldest entry when over capacity.
func (h *history) add(snap *Snapshot) {
	h.snapshots = append(h.snapshots, snap)
	if over := len(h.snapshots) - h.limit; over > 0 {
		clear(h.snapshots[:over])
		h.snapshots = h.snapshots[over:]
	}
}

// get returns the snapshot with version v if it is retained.
func (h *history) get(v Version) (*Snapshot, bool) {
	if len(h.snapshots) == 0 {
		return nil, false
	}
	oldest := h.snapshots[0].version
	if v < oldest {
		return nil, false
	}
	idx := v - oldest
	if idx >= Version(len(h.snapshots)) {
		return nil, false
	}
	return h.snapshots[idx], true
}

func (h *history) clear() {
	h.snapshots = nil
}

// len returns the number of retained snapshots.
func (h *history) len() int {
	return len(h.snapshots)
}
