package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	configFileName = "config.json"
	cardDirName    = "media_stickies_data"
)

// PathOptions selects where the application keeps its files.
type PathOptions struct {
	AppName string
	// Development keeps every file under the working directory.
	Development bool
	// Root overrides the config directory when set.
	Root string
}

// Paths are the resolved locations of the application's files.
type Paths struct {
	ConfigDir  string
	ConfigFile string
	// CardDir is the default card storage location.
	CardDir string
}

// ConfigDir returns the OS-standard configuration directory.
func ConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err == nil && configDir != "" {
		return configDir, nil
	}

	homeDir, homeErr := os.UserHomeDir()
	if homeErr != nil {
		if err != nil {
			return "", fmt.Errorf("get config dir: %w", err)
		}
		return "", fmt.Errorf("get config dir: %w", homeErr)
	}

	return fallbackConfigDir(homeDir), nil
}

// ResolvePaths picks the config file and the default card directory.
//
// Packaged builds keep the config under the user's config directory and the
// cards next to the executable. Development builds keep both in the working
// directory.
func ResolvePaths(options PathOptions) (Paths, error) {
	appName := strings.TrimSpace(options.AppName)
	if appName == "" {
		return Paths{}, fmt.Errorf("resolve paths: app name is empty")
	}

	var paths Paths
	if options.Development {
		workDir, err := os.Getwd()
		if err != nil {
			return Paths{}, fmt.Errorf("resolve paths: %w", err)
		}
		paths.ConfigDir = workDir
		paths.CardDir = filepath.Join(workDir, cardDirName)
	} else {
		configDir, err := ConfigDir()
		if err != nil {
			return Paths{}, fmt.Errorf("resolve paths: %w", err)
		}
		paths.ConfigDir = filepath.Join(configDir, appName)

		executable, err := os.Executable()
		if err != nil {
			return Paths{}, fmt.Errorf("resolve paths: locate executable: %w", err)
		}
		paths.CardDir = filepath.Join(filepath.Dir(executable), cardDirName)
	}

	if root := strings.TrimSpace(options.Root); root != "" {
		paths.ConfigDir = filepath.Clean(root)
	}
	paths.ConfigFile = filepath.Join(paths.ConfigDir, configFileName)
	return paths, nil
}
