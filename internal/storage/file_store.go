package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
)

// FileStore persists settings to a single JSON or YAML file.
//
// Set updates memory and returns immediately; a background goroutine writes
// the file. Close flushes pending changes.
type FileStore struct {
	path   string
	codec  codec
	logger hclog.Logger

	mu       sync.Mutex
	values   map[string]any
	dirty    bool
	closed   bool
	saveErrs *multierror.Error

	writeMu sync.Mutex
	// saveCh is never closed; stop ends the saver.
	saveCh chan struct{}
	stop   chan struct{}
	done   chan struct{}
}

// Open loads the config file at path. A missing file yields an empty store.
func Open(path string, logger hclog.Logger) (*FileStore, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	fileCodec, err := codecFor(path)
	if err != nil {
		return nil, err
	}

	values := map[string]any{}
	rawData, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config file: %w", err)
	default:
		if err := fileCodec.unmarshal(rawData, &values); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", fileCodec.name, err)
		}
		if values == nil {
			values = map[string]any{}
		}
	}

	store := &FileStore{
		path:   path,
		codec:  fileCodec,
		logger: logger,
		values: values,
		saveCh: make(chan struct{}, 1),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	go store.run()
	return store, nil
}

// Path returns the backing file path.
func (store *FileStore) Path() string {
	return store.path
}

// Get implements ConfigStore.
func (store *FileStore) Get(key string, target any) (bool, error) {
	store.mu.Lock()
	raw, ok := store.values[key]
	store.mu.Unlock()
	if !ok {
		return false, nil
	}
	if err := decodeValue(raw, target); err != nil {
		return false, fmt.Errorf("get %s: %w", key, err)
	}
	return true, nil
}

// Set implements ConfigStore. The write to disk happens asynchronously.
func (store *FileStore) Set(key string, value any) error {
	generic, err := store.codec.normalize(value)
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}

	store.mu.Lock()
	if store.closed {
		store.mu.Unlock()
		return ErrClosed
	}
	store.values[key] = generic
	store.dirty = true
	store.mu.Unlock()

	select {
	case store.saveCh <- struct{}{}:
	default:
	}
	return nil
}

// Flush writes pending changes synchronously.
func (store *FileStore) Flush() error {
	store.writeMu.Lock()
	defer store.writeMu.Unlock()

	store.mu.Lock()
	if !store.dirty {
		store.mu.Unlock()
		return nil
	}
	serialized, err := store.codec.marshal(store.values)
	store.dirty = false
	store.mu.Unlock()
	if err != nil {
		return fmt.Errorf("marshal config %s: %w", store.codec.name, err)
	}

	if err := atomicWrite(store.path, serialized); err != nil {
		store.mu.Lock()
		store.dirty = true
		store.mu.Unlock()
		return err
	}
	return nil
}

// Close stops the background writer and flushes what is left. The returned
// error includes earlier background save failures.
func (store *FileStore) Close() error {
	store.mu.Lock()
	if store.closed {
		store.mu.Unlock()
		return nil
	}
	store.closed = true
	store.mu.Unlock()

	close(store.stop)
	<-store.done

	var result *multierror.Error
	store.mu.Lock()
	result = multierror.Append(result, store.saveErrs)
	store.mu.Unlock()
	if err := store.Flush(); err != nil {
		result = multierror.Append(result, err)
	}
	return result.ErrorOrNil()
}

func (store *FileStore) run() {
	defer close(store.done)
	for {
		select {
		case <-store.stop:
			return
		case <-store.saveCh:
		}
		if err := store.Flush(); err != nil {
			store.logger.Error("save config", "path", store.path, "error", err)
			store.mu.Lock()
			store.saveErrs = multierror.Append(store.saveErrs, err)
			store.mu.Unlock()
		}
	}
}

func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	tmpFile, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("write config file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename config file: %w", err)
	}
	return nil
}
