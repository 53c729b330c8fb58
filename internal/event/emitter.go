// Package event is the in-process notification bus shared by subsystems
// that react to application-wide changes, such as the tray menu.
package event

import (
	"sync"
	"time"
)

// Type identifies a notification.
type Type string

const (
	// SettingsChanged is emitted after every committed settings transition.
	SettingsChanged Type = "settings-changed"
)

// Event is one notification delivered to subscribers.
type Event struct {
	Type Type
	At   time.Time
}

// Emitter fans events out to subscriber channels.
type Emitter struct {
	mu     sync.Mutex
	events []chan Event
	closed bool
}

// NewEmitter returns an emitter without subscribers.
func NewEmitter() *Emitter {
	return &Emitter{}
}

// Subscribe registers a new observer channel.
func (emitter *Emitter) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	emitter.mu.Lock()
	defer emitter.mu.Unlock()
	if emitter.closed {
		close(ch)
		return ch
	}
	emitter.events = append(emitter.events, ch)
	return ch
}

// Emit delivers the event to every subscriber whose buffer has room.
// Slow subscribers miss events rather than block the emitter.
func (emitter *Emitter) Emit(event Event) {
	if event.At.IsZero() {
		event.At = time.Now()
	}
	emitter.mu.Lock()
	defer emitter.mu.Unlock()
	for _, ch := range emitter.events {
		select {
		case ch <- event:
		default:
		}
	}
}

// Close closes all subscriber channels. Later subscriptions get a closed channel.
func (emitter *Emitter) Close() {
	emitter.mu.Lock()
	if emitter.closed {
		emitter.mu.Unlock()
		return
	}
	emitter.closed = true
	events := emitter.events
	emitter.events = nil
	emitter.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}
