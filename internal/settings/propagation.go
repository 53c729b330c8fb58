package settings

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"rxdesktop/internal/event"
	"rxdesktop/internal/storage"

	"github.com/hashicorp/go-hclog"
)

var errUnsupportedShape = errors.New("unsupported value shape")

// Window is a UI surface that mirrors the settings state.
type Window interface {
	Send(state GlobalState) error
}

// Translator resolves the UI messages for a language code, falling back to
// its default language.
type Translator interface {
	Messages(code string) map[string]string
}

// PropagatorConfig wires the sinks of a Propagator. Every field is optional.
type PropagatorConfig struct {
	ConfigStore storage.ConfigStore
	Translator  Translator
	Emitter     *event.Emitter
	Logger      hclog.Logger
}

// Propagator pushes each committed transition to its sinks: changed
// persistent keys to the config store, the full state to every window, and
// a settings-changed event to the rest of the process.
type Propagator struct {
	store      *Store
	config     storage.ConfigStore
	translator Translator
	emitter    *event.Emitter
	logger     hclog.Logger

	mu        sync.Mutex
	persisted PersistentState
	windows   []*windowSubscription
}

type windowSubscription struct {
	window Window
}

type persistedKey struct {
	name   string
	value  func(PersistentState) any
	assign func(dst *PersistentState, src PersistentState)
}

var persistedKeys = []persistedKey{
	{
		name:   KeyStorage,
		value:  func(state PersistentState) any { return state.Storage },
		assign: func(dst *PersistentState, src PersistentState) { dst.Storage = src.Storage },
	},
	{
		name:  KeyNavigationAllowedURLs,
		value: func(state PersistentState) any { return state.NavigationAllowedURLs },
		assign: func(dst *PersistentState, src PersistentState) {
			dst.NavigationAllowedURLs = cloneURLs(src.NavigationAllowedURLs)
		},
	},
	{
		name:   KeyLanguage,
		value:  func(state PersistentState) any { return state.Language },
		assign: func(dst *PersistentState, src PersistentState) { dst.Language = src.Language },
	},
}

// NewPropagator attaches a propagator to store. The store's current
// persistent state is taken as already persisted.
func NewPropagator(store *Store, config PropagatorConfig) *Propagator {
	if config.Logger == nil {
		config.Logger = hclog.NewNullLogger()
	}
	propagator := &Propagator{
		store:      store,
		config:     config.ConfigStore,
		translator: config.Translator,
		emitter:    config.Emitter,
		logger:     config.Logger,
		persisted:  store.State().Persistent,
	}
	store.AddEffect(propagator.persist)
	store.Subscribe(propagator.broadcast)
	return propagator
}

// SubscribeWindow sends the current state to window right away and then
// after every transition until the returned func is called.
func (propagator *Propagator) SubscribeWindow(window Window) func() {
	sub := &windowSubscription{window: window}
	propagator.mu.Lock()
	propagator.windows = append(propagator.windows, sub)
	propagator.mu.Unlock()

	propagator.send(sub, propagator.store.State())

	return func() {
		propagator.mu.Lock()
		defer propagator.mu.Unlock()
		if index := slices.Index(propagator.windows, sub); index >= 0 {
			propagator.windows = slices.Delete(propagator.windows, index, index+1)
		}
	}
}

// Persisted returns the last persistent state written to the config store.
func (propagator *Propagator) Persisted() PersistentState {
	propagator.mu.Lock()
	defer propagator.mu.Unlock()
	return propagator.persisted.Clone()
}

func (propagator *Propagator) persist(_, current GlobalState) []Action {
	languageChanged := false
	for _, key := range persistedKeys {
		if !propagator.updateIfChanged(key, current.Persistent) {
			continue
		}
		if key.name == KeyLanguage {
			languageChanged = true
		}
	}

	if !languageChanged || propagator.translator == nil {
		return nil
	}
	messages := propagator.translator.Messages(current.Persistent.Language)
	return []Action{PutMessages{Messages: messages}}
}

func (propagator *Propagator) updateIfChanged(key persistedKey, current PersistentState) bool {
	propagator.mu.Lock()
	previousValue := key.value(propagator.persisted)
	propagator.mu.Unlock()
	currentValue := key.value(current)

	equal, err := valuesEqual(previousValue, currentValue)
	if err != nil {
		propagator.logger.Error("cannot compare setting", "key", key.name, "error", err)
		return false
	}
	if equal {
		return false
	}

	propagator.mu.Lock()
	key.assign(&propagator.persisted, current)
	propagator.mu.Unlock()

	if propagator.config != nil {
		if err := propagator.config.Set(key.name, currentValue); err != nil {
			propagator.logger.Error("persist setting", "key", key.name, "error", err)
		}
	}
	return true
}

func (propagator *Propagator) broadcast(state GlobalState) {
	propagator.mu.Lock()
	windows := slices.Clone(propagator.windows)
	propagator.mu.Unlock()

	for _, sub := range windows {
		propagator.send(sub, state)
	}
	if propagator.emitter != nil {
		propagator.emitter.Emit(event.Event{Type: event.SettingsChanged})
	}
}

func (propagator *Propagator) send(sub *windowSubscription, state GlobalState) {
	if err := sub.window.Send(state); err != nil {
		propagator.logger.Warn("send settings to window", "error", err)
	}
}

// valuesEqual compares two persisted values of the same shape.
func valuesEqual(previous, current any) (bool, error) {
	switch previousValue := previous.(type) {
	case string:
		if currentValue, ok := current.(string); ok {
			return previousValue == currentValue, nil
		}
	case []string:
		if currentValue, ok := current.([]string); ok {
			return slices.Equal(previousValue, currentValue), nil
		}
	case Storage:
		if currentValue, ok := current.(Storage); ok {
			return previousValue.Equal(currentValue), nil
		}
	}
	return false, fmt.Errorf("%w: %T and %T", errUnsupportedShape, previous, current)
}
