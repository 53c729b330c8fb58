package settings

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDecodeAction(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    Action
		wantErr bool
	}{
		{
			name: "storage put",
			data: `{"type":"storage-put","payload":{"type":"local","path":"/cards"}}`,
			want: PutStorage{Storage: Storage{Type: StorageLocal, Path: "/cards"}},
		},
		{
			name: "language put",
			data: `{"type":"language-put","payload":"ja"}`,
			want: PutLanguage{Language: "ja"},
		},
		{
			name: "single url put",
			data: `{"type":"navigationAllowedURLs-put","payload":"a.com"}`,
			want: PutNavigationAllowedURLs{URLs: []string{"a.com"}},
		},
		{
			name: "url list put",
			data: `{"type":"navigationAllowedURLs-put","payload":["b.com","a.com"]}`,
			want: PutNavigationAllowedURLs{URLs: []string{"b.com", "a.com"}},
		},
		{
			name: "url delete",
			data: `{"type":"navigationAllowedURLs-delete","payload": "a.com"}`,
			want: DeleteNavigationAllowedURLs{URLs: []string{"a.com"}},
		},
		{
			name: "url put without payload",
			data: `{"type":"navigationAllowedURLs-put","payload":null}`,
			want: PutNavigationAllowedURLs{},
		},
		{
			name: "messages put",
			data: `{"type":"messages-put","payload":{"exit":"Exit"}}`,
			want: PutMessages{Messages: map[string]string{"exit": "Exit"}},
		},
		{
			name: "app put",
			data: `{"type":"app-put","payload":{"name":"Reactive Desktop","version":"1.0.0","iconDataURL":""}}`,
			want: PutApp{App: AppInfo{Name: "Reactive Desktop", Version: "1.0.0"}},
		},
		{
			name: "unknown type",
			data: `{"type":"card-put","payload":{"id":"x"}}`,
			want: UnknownAction{Name: "card-put"},
		},
		{name: "malformed json", data: `{"type":`, wantErr: true},
		{name: "wrong payload", data: `{"type":"language-put","payload":["ja"]}`, wantErr: true},
		{name: "wrong url payload", data: `{"type":"navigationAllowedURLs-put","payload":{"a":1}}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeAction([]byte(tt.data))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %#v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeAction: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("action mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEncodeActionIsDecodable(t *testing.T) {
	actions := []Action{
		PutStorage{Storage: Storage{Type: StorageLocal, Path: "/cards"}},
		DeleteNavigationAllowedURLs{URLs: []string{"a.com", "b.com"}},
		UnknownAction{Name: "card-put"},
	}

	for _, action := range actions {
		t.Run(action.Type(), func(t *testing.T) {
			data, err := EncodeAction(action)
			if err != nil {
				t.Fatalf("EncodeAction: %v", err)
			}
			got, err := DecodeAction(data)
			if err != nil {
				t.Fatalf("DecodeAction(%s): %v", data, err)
			}
			if diff := cmp.Diff(action, got); diff != "" {
				t.Errorf("action mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEncodeState(t *testing.T) {
	state := GlobalState{
		Persistent: PersistentState{
			Storage:               Storage{Type: StorageLocal, Path: "/cards"},
			Language:              "ja",
			NavigationAllowedURLs: nil,
		},
		Temporal: InitialTemporalState(),
	}

	data, err := EncodeState(state)
	if err != nil {
		t.Fatalf("EncodeState: %v", err)
	}

	var decoded map[string]map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if diff := cmp.Diff([]any{}, decoded["persistent"]["navigationAllowedURLs"]); diff != "" {
		t.Errorf("URL list should encode as an empty array (-want +got):\n%s", diff)
	}
	if got := decoded["persistent"]["language"]; got != "ja" {
		t.Errorf("language = %v, want ja", got)
	}
	if _, ok := decoded["temporal"]["messages"]; !ok {
		t.Error("temporal messages missing")
	}
}

type recordingDispatcher struct {
	actions []Action
}

func (dispatcher *recordingDispatcher) Dispatch(action Action) {
	dispatcher.actions = append(dispatcher.actions, action)
}

func TestHandler(t *testing.T) {
	dispatcher := &recordingDispatcher{}
	handler := NewHandler(dispatcher, nil)

	handler.Handle([]byte(`{"type":"language-put","payload":"ja"}`))
	handler.Handle([]byte(`not json`))
	handler.Handle([]byte(`{"type":"card-delete","payload":"x"}`))

	want := []Action{PutLanguage{Language: "ja"}, UnknownAction{Name: "card-delete"}}
	if diff := cmp.Diff(want, dispatcher.actions); diff != "" {
		t.Errorf("dispatched actions mismatch (-want +got):\n%s", diff)
	}
}

func TestHandlerDrivesStore(t *testing.T) {
	store := New(InitialPersistentState(), Config{})
	handler := NewHandler(store, nil)

	handler.Handle([]byte(`{"type":"navigationAllowedURLs-put","payload":["b.com","a.com"]}`))
	handler.Handle([]byte(`{"type":"navigationAllowedURLs-delete","payload":"a.com"}`))

	if diff := cmp.Diff([]string{"b.com"}, store.State().Persistent.NavigationAllowedURLs); diff != "" {
		t.Errorf("URL list mismatch (-want +got):\n%s", diff)
	}
}
