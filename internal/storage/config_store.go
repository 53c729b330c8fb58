package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for config files with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported config format")

// ErrClosed is returned by Set after the store has been closed.
var ErrClosed = errors.New("config store closed")

// ConfigStore is a key-value store for settings that survive restarts.
//
// Get decodes the value stored under key into target and reports whether the
// key was present. A missing key leaves target untouched, so callers preload
// target with the default.
type ConfigStore interface {
	Get(key string, target any) (bool, error)
	Set(key string, value any) error
}

type codec struct {
	name      string
	marshal   func(any) ([]byte, error)
	unmarshal func([]byte, any) error
}

var jsonCodec = codec{
	name: "json",
	marshal: func(value any) ([]byte, error) {
		data, err := json.MarshalIndent(value, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	},
	// The file is meant to be hand-editable, so comments and trailing
	// commas are stripped before decoding.
	unmarshal: func(data []byte, target any) error {
		return json.Unmarshal(jsonc.ToJSON(data), target)
	},
}

var yamlCodec = codec{
	name:      "yaml",
	marshal:   yaml.Marshal,
	unmarshal: yaml.Unmarshal,
}

func codecFor(path string) (codec, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return jsonCodec, nil
	case ".yaml", ".yml":
		return yamlCodec, nil
	default:
		return codec{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// normalize converts a typed value into the generic shape the codec would
// produce when reading it back from disk.
func (c codec) normalize(value any) (any, error) {
	data, err := c.marshal(value)
	if err != nil {
		return nil, fmt.Errorf("marshal %s value: %w", c.name, err)
	}
	var generic any
	if err := c.unmarshal(data, &generic); err != nil {
		return nil, fmt.Errorf("unmarshal %s value: %w", c.name, err)
	}
	return generic, nil
}

// decodeValue copies a generic value into target using json field names.
func decodeValue(raw any, target any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Result:  target,
	})
	if err != nil {
		return fmt.Errorf("create decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return fmt.Errorf("decode value: %w", err)
	}
	return nil
}
