package settings

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/hashicorp/go-hclog"
)

// envelope is the wire form of an action: {"type": ..., "payload": ...}.
type envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// DecodeAction parses a wire action. Unrecognized types decode to an
// UnknownAction; only malformed JSON is an error.
func DecodeAction(data []byte) (Action, error) {
	var message envelope
	if err := json.Unmarshal(data, &message); err != nil {
		return nil, fmt.Errorf("decode action: %w", err)
	}

	switch message.Type {
	case TypeStoragePut:
		var storage Storage
		if err := decodePayload(message, &storage); err != nil {
			return nil, err
		}
		return PutStorage{Storage: storage}, nil
	case TypeLanguagePut:
		var language string
		if err := decodePayload(message, &language); err != nil {
			return nil, err
		}
		return PutLanguage{Language: language}, nil
	case TypeNavigationAllowedURLsPut:
		urls, err := decodeURLs(message)
		if err != nil {
			return nil, err
		}
		return PutNavigationAllowedURLs{URLs: urls}, nil
	case TypeNavigationAllowedURLsDelete:
		urls, err := decodeURLs(message)
		if err != nil {
			return nil, err
		}
		return DeleteNavigationAllowedURLs{URLs: urls}, nil
	case TypeMessagesPut:
		var messages map[string]string
		if err := decodePayload(message, &messages); err != nil {
			return nil, err
		}
		return PutMessages{Messages: messages}, nil
	case TypeAppPut:
		var app AppInfo
		if err := decodePayload(message, &app); err != nil {
			return nil, err
		}
		return PutApp{App: app}, nil
	default:
		return UnknownAction{Name: message.Type}, nil
	}
}

// EncodeAction produces the wire form of action.
func EncodeAction(action Action) ([]byte, error) {
	var payload any
	switch action := action.(type) {
	case PutStorage:
		payload = action.Storage
	case PutLanguage:
		payload = action.Language
	case PutNavigationAllowedURLs:
		payload = action.URLs
	case DeleteNavigationAllowedURLs:
		payload = action.URLs
	case PutMessages:
		payload = action.Messages
	case PutApp:
		payload = action.App
	case UnknownAction:
	default:
		return nil, fmt.Errorf("encode action: unsupported %T", action)
	}

	message := envelope{Type: action.Type()}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode %s payload: %w", action.Type(), err)
		}
		message.Payload = raw
	}
	data, err := json.Marshal(message)
	if err != nil {
		return nil, fmt.Errorf("encode action: %w", err)
	}
	return data, nil
}

// EncodeState produces the snapshot pushed to windows.
func EncodeState(state GlobalState) ([]byte, error) {
	data, err := json.Marshal(state.Clone())
	if err != nil {
		return nil, fmt.Errorf("encode state: %w", err)
	}
	return data, nil
}

func decodePayload(message envelope, target any) error {
	if len(message.Payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(message.Payload, target); err != nil {
		return fmt.Errorf("decode %s payload: %w", message.Type, err)
	}
	return nil
}

// decodeURLs accepts either a single URL or a list of URLs.
func decodeURLs(message envelope) ([]string, error) {
	payload := bytes.TrimSpace(message.Payload)
	if len(payload) == 0 || bytes.Equal(payload, []byte("null")) {
		return nil, nil
	}
	if payload[0] == '"' {
		var url string
		if err := json.Unmarshal(payload, &url); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", message.Type, err)
		}
		return []string{url}, nil
	}
	var urls []string
	if err := json.Unmarshal(payload, &urls); err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", message.Type, err)
	}
	return urls, nil
}

// Dispatcher accepts actions.
type Dispatcher interface {
	Dispatch(action Action)
}

// Handler is the inbound control surface: it applies wire actions sent by
// windows or other processes.
type Handler struct {
	dispatcher Dispatcher
	logger     hclog.Logger
}

// NewHandler returns a handler dispatching to dispatcher.
func NewHandler(dispatcher Dispatcher, logger hclog.Logger) *Handler {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Handler{dispatcher: dispatcher, logger: logger}
}

// Handle decodes data and dispatches it. Malformed messages are logged and
// dropped.
func (handler *Handler) Handle(data []byte) {
	action, err := DecodeAction(data)
	if err != nil {
		handler.logger.Warn("drop malformed action", "error", err)
		return
	}
	if unknown, ok := action.(UnknownAction); ok {
		handler.logger.Debug("unknown action type", "type", unknown.Name)
	}
	handler.dispatcher.Dispatch(action)
}
