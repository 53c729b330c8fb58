// Package settings is the single source of truth for application settings.
//
// State is split into two partitions. The persistent partition is written
// through to the config store and restored on the next start; the temporal
// partition lives only as long as the process. Both are changed only by
// dispatching actions to a Store.
package settings

import (
	"maps"
	"slices"
)

// Persisted keys in the config store.
const (
	KeyStorage               = "storage"
	KeyLanguage              = "language"
	KeyNavigationAllowedURLs = "navigationAllowedURLs"
)

// StorageLocal is the storage type for cards kept on the local filesystem.
const StorageLocal = "local"

// Storage locates the card data.
type Storage struct {
	Type string `json:"type" yaml:"type"`
	Path string `json:"path" yaml:"path"`
}

// Equal reports whether both locations are the same.
func (storage Storage) Equal(other Storage) bool {
	return storage.Type == other.Type && storage.Path == other.Path
}

// PersistentState survives restarts.
type PersistentState struct {
	Storage               Storage  `json:"storage"`
	Language              string   `json:"language"`
	NavigationAllowedURLs []string `json:"navigationAllowedURLs"`
}

// AppInfo describes the running application.
type AppInfo struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	IconDataURL string `json:"iconDataURL"`
}

// TemporalState is valid for the current process only.
type TemporalState struct {
	Messages map[string]string `json:"messages"`
	App      AppInfo           `json:"app"`
}

// GlobalState is the full settings tree pushed to windows.
type GlobalState struct {
	Persistent PersistentState `json:"persistent"`
	Temporal   TemporalState   `json:"temporal"`
}

// InitialPersistentState is the state before anything is loaded.
func InitialPersistentState() PersistentState {
	return PersistentState{
		Storage:               Storage{},
		Language:              "",
		NavigationAllowedURLs: []string{},
	}
}

// InitialTemporalState is the temporal partition at startup.
func InitialTemporalState() TemporalState {
	return TemporalState{
		Messages: map[string]string{},
		App:      AppInfo{},
	}
}

// Clone returns a deep copy.
func (state PersistentState) Clone() PersistentState {
	state.NavigationAllowedURLs = cloneURLs(state.NavigationAllowedURLs)
	return state
}

// Clone returns a deep copy.
func (state TemporalState) Clone() TemporalState {
	state.Messages = cloneMessages(state.Messages)
	return state
}

// Clone returns a deep copy.
func (state GlobalState) Clone() GlobalState {
	return GlobalState{
		Persistent: state.Persistent.Clone(),
		Temporal:   state.Temporal.Clone(),
	}
}

func cloneURLs(urls []string) []string {
	if urls == nil {
		return []string{}
	}
	return slices.Clone(urls)
}

func cloneMessages(messages map[string]string) map[string]string {
	if messages == nil {
		return map[string]string{}
	}
	return maps.Clone(messages)
}
