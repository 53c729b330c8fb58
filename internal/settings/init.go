package settings

import (
	"fmt"

	"rxdesktop/internal/storage"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
)

// Defaults are used for keys missing from the config store.
type Defaults struct {
	Storage  Storage
	Language string
}

// Hydrate loads the persistent settings from config and dispatches one put
// action per key. Keys that cannot be read fall back to their default; the
// combined read errors are returned for logging and never stop hydration.
func Hydrate(store *Store, config storage.ConfigStore, defaults Defaults, logger hclog.Logger) error {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	var result *multierror.Error

	storageValue := defaults.Storage
	if err := loadOrDefault(config, KeyStorage, &storageValue, defaults.Storage); err != nil {
		logger.Warn("load setting, using default", "key", KeyStorage, "error", err)
		result = multierror.Append(result, err)
	}
	store.Dispatch(PutStorage{Storage: storageValue})

	language := defaults.Language
	if err := loadOrDefault(config, KeyLanguage, &language, defaults.Language); err != nil {
		logger.Warn("load setting, using default", "key", KeyLanguage, "error", err)
		result = multierror.Append(result, err)
	}
	store.Dispatch(PutLanguage{Language: language})

	urls := []string{}
	if err := loadOrDefault(config, KeyNavigationAllowedURLs, &urls, []string{}); err != nil {
		logger.Warn("load setting, using default", "key", KeyNavigationAllowedURLs, "error", err)
		result = multierror.Append(result, err)
	}
	store.Dispatch(PutNavigationAllowedURLs{URLs: urls})

	return result.ErrorOrNil()
}

func loadOrDefault[T any](config storage.ConfigStore, key string, target *T, fallback T) error {
	if config == nil {
		return nil
	}
	if _, err := config.Get(key, target); err != nil {
		*target = fallback
		return fmt.Errorf("load %s: %w", key, err)
	}
	return nil
}

// SeedApp records the application metadata. It is called once at startup.
func SeedApp(store *Store, app AppInfo) {
	store.Dispatch(PutApp{App: app})
}
