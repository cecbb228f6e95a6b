package insights

import (
	"sync"
	"time"
)

// Stage names published while a pipeline run progresses.
const (
	StageStarted     = "started"
	StageAggregated  = "aggregated"
	StagePrompted    = "prompted"
	StageCalling     = "calling"
	StageExtracting  = "extracting"
	StageValidating  = "validating"
	StageDone        = "done"
	StagePlaceholder = "placeholder"
	StageFailed      = "failed"
)

// StageEvent is one pipeline progress notification.
type StageEvent struct {
	RunID  string    `json:"run_id"`
	UserID string    `json:"user_id"`
	Stage  string    `json:"stage"`
	Kind   string    `json:"kind,omitempty"`
	At     time.Time `json:"at"`
}

// EventBroker fans stage events out to websocket subscribers. Publishing
// never blocks; a slow subscriber just misses events.
type EventBroker struct {
	mu   sync.RWMutex
	subs map[chan StageEvent]struct{}
}

func NewEventBroker() *EventBroker {
	return &EventBroker{subs: make(map[chan StageEvent]struct{})}
}

// Subscribe registers a new subscriber. The returned cancel func must be
// called when the subscriber goes away.
func (b *EventBroker) Subscribe() (<-chan StageEvent, func()) {
	ch := make(chan StageEvent, 16)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()
	cancel := func() {
		b.mu.Lock()
		delete(b.subs, ch)
		b.mu.Unlock()
	}
	return ch, cancel
}

// Publish delivers the event to every live subscriber.
func (b *EventBroker) Publish(ev StageEvent) {
	if b == nil {
		return
	}
	if ev.At.IsZero() {
		ev.At = time.Now()
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	for ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
