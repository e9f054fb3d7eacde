package testutil

import (
	"sync"

	"github.com/input-output-hk/catalyst-forge-libs/s3upload/uploadtypes"
)

// EventRecorder is a concurrency-safe uploadtypes.Listener that keeps every event.
type EventRecorder struct {
	mu     sync.Mutex
	events []uploadtypes.Event
}

// OnEvent records e.
func (r *EventRecorder) OnEvent(e uploadtypes.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// Events returns a copy of the recorded events.
func (r *EventRecorder) Events() []uploadtypes.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]uploadtypes.Event, len(r.events))
	copy(out, r.events)
	return out
}

// OfType returns the recorded events of type t.
func (r *EventRecorder) OfType(t uploadtypes.EventType) []uploadtypes.Event {
	var out []uploadtypes.Event
	for _, e := range r.Events() {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// ForItem returns the recorded events for one item, in order.
func (r *EventRecorder) ForItem(id string) []uploadtypes.Event {
	var out []uploadtypes.Event
	for _, e := range r.Events() {
		if e.ItemID == id {
			out = append(out, e)
		}
	}
	return out
}
