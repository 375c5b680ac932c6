package ledger

import (
	"time"

	"github.com/google/uuid"

	"github.com/minibank-dev/minibank/internal/model"
)

// History is the append-only event log of a single account.
// It is guarded by the owning Account's mutex.
type History struct {
	events []model.Event
}

func (h *History) record(tx Transaction, at time.Time) model.Event {
	ev := model.Event{
		ID:     uuid.New(),
		Kind:   tx.Kind(),
		Amount: tx.Amount(),
		Time:   at,
	}
	h.events = append(h.events, ev)
	return ev
}

// Events returns a copy of the events in insertion order.
func (h *History) Events() []model.Event {
	out := make([]model.Event, len(h.events))
	copy(out, h.events)
	return out
}

// Len returns the number of recorded events.
func (h *History) Len() int {
	return len(h.events)
}

// Count returns how many events of kind were recorded at or after since.
// A zero since counts the whole history.
func (h *History) Count(kind model.Kind, since time.Time) int {
	n := 0
	for _, ev := range h.events {
		if ev.Kind != kind {
			continue
		}
		if !since.IsZero() && ev.Time.Before(since) {
			continue
		}
		n++
	}
	return n
}
