package agent

import "github.com/inletlabs/attache/pkg/llm"

// DefaultHistoryCap bounds the conversation to the most recent ten
// user/assistant exchanges.
const DefaultHistoryCap = 20

// History is the bounded in-memory conversation. It is not safe for
// concurrent use on its own; the owning Session serializes access.
type History struct {
	cap   int
	turns []llm.Turn
}

// NewHistory creates an empty history bounded to cap turns. Non-positive
// caps fall back to DefaultHistoryCap.
func NewHistory(cap int) *History {
	if cap <= 0 {
		cap = DefaultHistoryCap
	}
	return &History{cap: cap}
}

// AppendExchange appends a user turn followed by an assistant turn and
// enforces the cap, evicting the oldest turns first.
func (h *History) AppendExchange(userText, assistantText string) {
	h.turns = append(h.turns, llm.NewUserTurn(userText), llm.NewAssistantTurn(assistantText))
	if len(h.turns) > h.cap {
		h.turns = h.turns[len(h.turns)-h.cap:]
	}
}

// Clear resets the conversation to empty.
func (h *History) Clear() {
	h.turns = nil
}

// Snapshot returns a copy of the current turns, oldest first.
func (h *History) Snapshot() []llm.Turn {
	snapshot := make([]llm.Turn, len(h.turns))
	copy(snapshot, h.turns)
	return snapshot
}

// Len returns the number of retained turns.
func (h *History) Len() int {
	return len(h.turns)
}
