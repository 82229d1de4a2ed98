// Package progress implements the append-only message sink the sync engine
// pushes status updates into. Presentation code subscribes or polls; the
// reporter never filters, buffers beyond its log, or persists anything.
package progress

import (
	"sync"
	"time"
)

// Message types
const (
	TypeInfo    = "info"
	TypeSuccess = "success"
	TypeWarning = "warning"
	TypeError   = "error"
)

// Message is one timestamped, typed status entry
type Message struct {
	Text      string    `json:"text"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
}

// Reporter collects messages and notifies subscribers. Notification is
// non-blocking: a subscriber that stops draining its channel loses new
// messages rather than stalling the engine.
type Reporter struct {
	mu          sync.Mutex
	messages    []Message
	subscribers []chan Message
	now         func() time.Time
}

func NewReporter() *Reporter {
	return &Reporter{now: time.Now}
}

// Report appends a message and fans it out to subscribers. The sends happen
// under the same mutex that guards cancellation, so a channel can never be
// closed while a send is in flight. Sends are non-blocking, so holding the
// lock here is bounded.
func (r *Reporter) Report(text, messageType string) {
	msg := Message{
		Text:      text,
		Type:      messageType,
		Timestamp: r.now(),
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.messages = append(r.messages, msg)
	for _, ch := range r.subscribers {
		select {
		case ch <- msg:
		default:
		}
	}
}

func (r *Reporter) Info(text string)    { r.Report(text, TypeInfo) }
func (r *Reporter) Success(text string) { r.Report(text, TypeSuccess) }
func (r *Reporter) Warning(text string) { r.Report(text, TypeWarning) }
func (r *Reporter) Error(text string)   { r.Report(text, TypeError) }

// Messages returns a snapshot of everything reported so far
func (r *Reporter) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()

	snapshot := make([]Message, len(r.messages))
	copy(snapshot, r.messages)
	return snapshot
}

// Subscribe registers a buffered channel that receives every message
// reported after the call. The returned cancel function removes the
// subscription and closes the channel; calling it again is a no-op.
func (r *Reporter) Subscribe() (<-chan Message, func()) {
	ch := make(chan Message, 64)

	r.mu.Lock()
	r.subscribers = append(r.subscribers, ch)
	r.mu.Unlock()

	cancel := func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		for i, sub := range r.subscribers {
			if sub == ch {
				r.subscribers = append(r.subscribers[:i], r.subscribers[i+1:]...)
				close(ch)
				return
			}
		}
	}
	return ch, cancel
}
