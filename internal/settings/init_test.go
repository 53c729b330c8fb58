package settings

import (
	"testing"

	"rxdesktop/internal/storage"

	"github.com/google/go-cmp/cmp"
)

func TestHydrate(t *testing.T) {
	defaults := Defaults{
		Storage:  Storage{Type: StorageLocal, Path: "/default/cards"},
		Language: "en",
	}

	tests := []struct {
		name    string
		values  map[string]any
		want    PersistentState
		wantErr bool
	}{
		{
			name: "empty config uses defaults",
			want: PersistentState{
				Storage:               defaults.Storage,
				Language:              "en",
				NavigationAllowedURLs: []string{},
			},
		},
		{
			name: "stored values win",
			values: map[string]any{
				KeyStorage:               map[string]any{"type": "local", "path": "/saved"},
				KeyLanguage:              "ja",
				KeyNavigationAllowedURLs: []string{"b.com", "a.com"},
			},
			want: PersistentState{
				Storage:               Storage{Type: StorageLocal, Path: "/saved"},
				Language:              "ja",
				NavigationAllowedURLs: []string{"a.com", "b.com"},
			},
		},
		{
			name: "wrong shapes fall back",
			values: map[string]any{
				KeyStorage:               "not an object",
				KeyLanguage:              "ja",
				KeyNavigationAllowedURLs: map[string]any{"a": 1},
			},
			want: PersistentState{
				Storage:               defaults.Storage,
				Language:              "ja",
				NavigationAllowedURLs: []string{},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := storage.NewMemoryStore(tt.values)
			store := New(InitialPersistentState(), Config{})

			err := Hydrate(store, config, defaults, nil)
			if tt.wantErr != (err != nil) {
				t.Fatalf("Hydrate error = %v, wantErr %v", err, tt.wantErr)
			}
			if diff := cmp.Diff(tt.want, store.State().Persistent); diff != "" {
				t.Errorf("state mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestHydrateDispatchOrder(t *testing.T) {
	store := New(InitialPersistentState(), Config{})

	var changed []string
	store.Subscribe(func(state GlobalState) {
		switch {
		case state.Persistent.Storage.Path != "" && len(changed) == 0:
			changed = append(changed, KeyStorage)
		case state.Persistent.Language != "" && len(changed) == 1:
			changed = append(changed, KeyLanguage)
		case len(changed) == 2:
			changed = append(changed, KeyNavigationAllowedURLs)
		}
	})

	err := Hydrate(store, storage.NewMemoryStore(nil), Defaults{
		Storage:  Storage{Type: StorageLocal, Path: "/cards"},
		Language: "en",
	}, nil)
	if err != nil {
		t.Fatalf("Hydrate: %v", err)
	}

	want := []string{KeyStorage, KeyLanguage, KeyNavigationAllowedURLs}
	if diff := cmp.Diff(want, changed); diff != "" {
		t.Errorf("dispatch order mismatch (-want +got):\n%s", diff)
	}
}

func TestHydrateWritesThroughPropagator(t *testing.T) {
	store, _, config := newPropagated(t)

	err := Hydrate(store, config, Defaults{
		Storage:  Storage{Type: StorageLocal, Path: "/cards"},
		Language: "ja",
	}, nil)
	if err != nil {
		t.Fatalf("Hydrate: %v", err)
	}

	// The URL list stays empty, so only the defaults are written back.
	want := []string{KeyStorage, KeyLanguage}
	if diff := cmp.Diff(want, config.WrittenKeys()); diff != "" {
		t.Errorf("written keys mismatch (-want +got):\n%s", diff)
	}
	if store.Message("settingsDialog") == "settingsDialog" {
		t.Error("messages were not resolved after hydration")
	}
}

func TestHydrateWithoutConfig(t *testing.T) {
	store := New(InitialPersistentState(), Config{})

	if err := Hydrate(store, nil, Defaults{Language: "en"}, nil); err != nil {
		t.Fatalf("Hydrate: %v", err)
	}
	if got := store.State().Persistent.Language; got != "en" {
		t.Errorf("language = %q, want en", got)
	}
}

func TestSeedApp(t *testing.T) {
	store := New(InitialPersistentState(), Config{})
	app := AppInfo{Name: "Reactive Desktop", Version: "1.2.0", IconDataURL: "data:image/png;base64,AA=="}

	SeedApp(store, app)

	if diff := cmp.Diff(app, store.State().Temporal.App); diff != "" {
		t.Errorf("app mismatch (-want +got):\n%s", diff)
	}
	if got := store.Message("aboutApp", app.Name, app.Version); got != "aboutApp" {
		t.Errorf("expected the label back before messages load, got %q", got)
	}
}
