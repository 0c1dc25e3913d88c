// Package tui provides the Bubble Tea terminal UI: a scrollback viewport, a
// status bar over the world graph, and async save/load that keeps the input
// line live.
package tui

// History keeps the player's recent commands in a fixed-size ring. Old
// entries are overwritten in place once the ring is full; up/down navigation
// walks a cursor over the logical order.
type History struct {
	buf    []string
	head   int // index of the oldest entry
	size   int
	cursor int // offset from the oldest entry while navigating, -1 otherwise
}

// NewHistory creates a history ring holding at most capacity commands.
func NewHistory(capacity int) *History {
	return &History{buf: make([]string, capacity), cursor: -1}
}

// at returns the i-th entry in logical order, oldest first.
func (h *History) at(i int) string {
	return h.buf[(h.head+i)%len(h.buf)]
}

// Push records a command. Re-entering the newest command is a no-op; a full
// ring overwrites its oldest entry.
func (h *History) Push(cmd string) {
	if h.size > 0 && h.at(h.size-1) == cmd {
		return
	}
	if h.size == len(h.buf) {
		h.buf[h.head] = cmd
		h.head = (h.head + 1) % len(h.buf)
		return
	}
	h.buf[(h.head+h.size)%len(h.buf)] = cmd
	h.size++
}

// Prev steps the cursor toward older entries and returns the one it lands
// on. At the oldest entry it stays put; with no entries it reports false.
func (h *History) Prev() (string, bool) {
	if h.size == 0 {
		return "", false
	}
	switch {
	case h.cursor == -1:
		h.cursor = h.size - 1
	case h.cursor > 0:
		h.cursor--
	}
	return h.at(h.cursor), true
}

// Next steps the cursor toward newer entries. Walking past the newest entry
// leaves navigation and reports false, returning the player to fresh input.
func (h *History) Next() (string, bool) {
	if h.cursor == -1 {
		return "", false
	}
	h.cursor++
	if h.cursor >= h.size {
		h.cursor = -1
		return "", false
	}
	return h.at(h.cursor), true
}

// ResetCursor leaves navigation mode.
func (h *History) ResetCursor() {
	h.cursor = -1
}
