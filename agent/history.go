package agent

// Turn is one completed exchange: the user's query as typed and the
// answer that was shown for it.
type Turn struct {
	Query  string
	Answer string
}

// History is a bounded buffer of the most recent turns. Appending past
// capacity drops the oldest turn, so retention is capped at the same
// window the context assembler reads.
type History struct {
	size  int
	turns []Turn
}

// NewHistory creates a history keeping the last size turns.
func NewHistory(size int) *History {
	if size < 1 {
		size = 1
	}
	return &History{
		size:  size,
		turns: make([]Turn, 0, size),
	}
}

// Append records a turn, evicting the oldest when full.
func (h *History) Append(t Turn) {
	if len(h.turns) == h.size {
		copy(h.turns, h.turns[1:])
		h.turns = h.turns[:h.size-1]
	}
	h.turns = append(h.turns, t)
}

// Window returns the retained turns in chronological order.
func (h *History) Window() []Turn {
	out := make([]Turn, len(h.turns))
	copy(out, h.turns)
	return out
}

// Len reports the number of retained turns.
func (h *History) Len() int {
	return len(h.turns)
}
