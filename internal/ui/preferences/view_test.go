package preferences

import (
	"testing"

	"rxdesktop/internal/settings"

	"github.com/google/go-cmp/cmp"
)

var testLanguages = []Language{
	{Code: "en", Name: "English"},
	{Code: "ja", Name: "日本語"},
}

func TestBuildView(t *testing.T) {
	state := settings.GlobalState{
		Persistent: settings.PersistentState{
			Storage:               settings.Storage{Type: settings.StorageLocal, Path: "/cards"},
			Language:              "ja",
			NavigationAllowedURLs: []string{"a.com", "b.com"},
		},
		Temporal: settings.TemporalState{
			Messages: map[string]string{
				"aboutApp":              "$1 version $2",
				"settingsDialog":        "設定",
				"settingsDialogStorage": "データ保存先",
				"storagePath":           "保存先: $1",
				"addURL":                "追加",
			},
			App: settings.AppInfo{Name: "Reactive Desktop", Version: "1.2.0"},
		},
	}

	got := BuildView(state, testLanguages)
	want := View{
		Title:            "設定",
		About:            "Reactive Desktop version 1.2.0",
		LanguageLabel:    "settingsDialogLanguage",
		LanguageOptions:  []string{"English", "日本語"},
		SelectedLanguage: "日本語",
		StorageLabel:     "データ保存先",
		StoragePath:      "保存先: /cards",
		URLsLabel:        "securityAllowedURLs",
		URLs:             []string{"a.com", "b.com"},
		URLPlaceholder:   "urlPlaceholder",
		AddLabel:         "追加",
		DeleteLabel:      "deleteURL",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("view mismatch (-want +got):\n%s", diff)
	}

	got.URLs[0] = "changed"
	if state.Persistent.NavigationAllowedURLs[0] != "a.com" {
		t.Error("view aliases the state URL list")
	}
}

func TestBuildViewUnknownLanguage(t *testing.T) {
	state := settings.GlobalState{
		Persistent: settings.PersistentState{Language: "fr"},
		Temporal:   settings.InitialTemporalState(),
	}

	view := BuildView(state, testLanguages)
	if view.SelectedLanguage != "" {
		t.Errorf("SelectedLanguage = %q, want empty", view.SelectedLanguage)
	}
	if view.About != "" {
		t.Errorf("About = %q, want empty before the app is seeded", view.About)
	}
}

func TestLanguageCode(t *testing.T) {
	if code, ok := LanguageCode(testLanguages, "日本語"); !ok || code != "ja" {
		t.Errorf("LanguageCode = %q, %v", code, ok)
	}
	if _, ok := LanguageCode(testLanguages, "Français"); ok {
		t.Error("unexpected match")
	}
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{input: "  example.com ", want: "example.com", ok: true},
		{input: "https://example.com/path", want: "https://example.com/path", ok: true},
		{input: "http://localhost:8080", want: "http://localhost:8080", ok: true},
		{input: "", ok: false},
		{input: "   ", ok: false},
		{input: "two words", ok: false},
		{input: "ftp://example.com", ok: false},
		{input: "https://", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := NormalizeURL(tt.input)
			if ok != tt.ok || got != tt.want {
				t.Errorf("NormalizeURL(%q) = %q, %v; want %q, %v", tt.input, got, ok, tt.want, tt.ok)
			}
		})
	}
}
