package settings

import (
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/hashicorp/go-hclog"
)

// Listener observes committed transitions. It receives a private copy of the
// new state.
type Listener func(state GlobalState)

// Effect runs after a transition commits and before listeners are notified.
// The actions it returns are queued ahead of anything else still pending.
type Effect func(previous, current GlobalState) []Action

// Config contains options for a Store.
type Config struct {
	Logger hclog.Logger
}

// Store holds the settings state and applies dispatched actions one at a
// time.
type Store struct {
	mu        sync.Mutex
	state     GlobalState
	queue     []Action
	draining  bool
	effects   []Effect
	listeners []*subscription
	logger    hclog.Logger
}

type subscription struct {
	listener Listener
	mu       sync.Mutex
	active   bool
}

// New creates a store with the given persistent state and an initial
// temporal partition.
func New(initial PersistentState, config Config) *Store {
	if config.Logger == nil {
		config.Logger = hclog.NewNullLogger()
	}
	return &Store{
		state: GlobalState{
			Persistent: initial.Clone(),
			Temporal:   InitialTemporalState(),
		},
		logger: config.Logger,
	}
}

// State returns a copy of the current state.
func (store *Store) State() GlobalState {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.state.Clone()
}

// Subscribe registers a listener called after every committed transition, in
// registration order. The returned func stops further calls; calling it more
// than once is harmless.
func (store *Store) Subscribe(listener Listener) func() {
	sub := &subscription{listener: listener, active: true}
	store.mu.Lock()
	store.listeners = append(store.listeners, sub)
	store.mu.Unlock()

	return func() {
		sub.mu.Lock()
		sub.active = false
		sub.mu.Unlock()

		store.mu.Lock()
		defer store.mu.Unlock()
		if index := slices.Index(store.listeners, sub); index >= 0 {
			store.listeners = slices.Delete(store.listeners, index, index+1)
		}
	}
}

// AddEffect registers an effect. Effects run in registration order.
func (store *Store) AddEffect(effect Effect) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.effects = append(store.effects, effect)
}

// Dispatch queues action and, unless a drain is already running, applies
// queued actions until none are left. A Dispatch from inside an effect or
// listener, or from another goroutine during a drain, only queues; the
// running drain applies it after the current transition has fully completed.
func (store *Store) Dispatch(action Action) {
	if action == nil {
		return
	}

	store.mu.Lock()
	store.queue = append(store.queue, action)
	if store.draining {
		store.mu.Unlock()
		return
	}
	store.draining = true

	for len(store.queue) > 0 {
		next := store.queue[0]
		store.queue = store.queue[1:]

		previous := store.state
		current := Reduce(previous, next)
		store.state = current
		effects := slices.Clone(store.effects)
		listeners := slices.Clone(store.listeners)
		store.mu.Unlock()

		var followUps []Action
		for _, effect := range effects {
			followUps = append(followUps, store.runEffect(effect, next, previous, current)...)
		}
		for _, sub := range listeners {
			store.notify(sub, next, current)
		}

		store.mu.Lock()
		if len(followUps) > 0 {
			store.queue = append(followUps, store.queue...)
		}
	}

	store.draining = false
	store.mu.Unlock()
}

func (store *Store) runEffect(effect Effect, action Action, previous, current GlobalState) (followUps []Action) {
	defer func() {
		if r := recover(); r != nil {
			store.logger.Error("settings effect panicked", "action", action.Type(), "panic", r)
			followUps = nil
		}
	}()
	return effect(previous.Clone(), current.Clone())
}

func (store *Store) notify(sub *subscription, action Action, current GlobalState) {
	sub.mu.Lock()
	active := sub.active
	sub.mu.Unlock()
	if !active {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			store.logger.Error("settings listener panicked", "action", action.Type(), "panic", r)
		}
	}()
	sub.listener(current.Clone())
}

// Message returns the active language's text for label with $1, $2, ...
// replaced by args in order. Unknown labels resolve to the label itself.
func (store *Store) Message(label string, args ...string) string {
	store.mu.Lock()
	template, ok := store.state.Temporal.Messages[label]
	store.mu.Unlock()
	if !ok {
		template = label
	}
	return Format(template, args...)
}

// Message resolves label against the messages held in state, like
// Store.Message.
func (state GlobalState) Message(label string, args ...string) string {
	template, ok := state.Temporal.Messages[label]
	if !ok {
		template = label
	}
	return Format(template, args...)
}

// Format replaces the first occurrence of each placeholder $1, $2, ... with
// the matching argument. Placeholders without an argument stay as they are.
func Format(template string, args ...string) string {
	for index, replacement := range args {
		template = strings.Replace(template, "$"+strconv.Itoa(index+1), replacement, 1)
	}
	return template
}
