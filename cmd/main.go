package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"rxdesktop/internal/config"
	"rxdesktop/internal/event"
	"rxdesktop/internal/i18n"
	"rxdesktop/internal/platform"
	"rxdesktop/internal/settings"
	"rxdesktop/internal/storage"
	"rxdesktop/internal/ui/preferences"
	"rxdesktop/internal/ui/tray"
	"rxdesktop/resources"

	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/hashicorp/go-hclog"
	"github.com/jeandeaual/go-locale"
	"github.com/spf13/pflag"
)

const (
	appName    = "rxdesktop"
	appTitle   = "Reactive Desktop"
	appID      = "com.rxdesktop.app"
	appVersion = "0.1.0"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Printf("%s: %v", appName, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flagSet := pflag.NewFlagSet(appName, pflag.ContinueOnError)
	language := flagSet.String("lang", "", "switch the display language")
	allowURLs := flagSet.StringSlice("allow-url", nil, "add URLs to the navigation allow list")
	denyURLs := flagSet.StringSlice("deny-url", nil, "remove URLs from the navigation allow list")
	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	forwarded, err := flagActions(*language, *allowURLs, *denyURLs)
	if err != nil {
		return err
	}

	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) && len(forwarded) > 0 {
			return platform.SendToRunning(appName, forwarded...)
		}
		log.Printf("single instance: %v", err)
		return nil
	}
	defer func() {
		_ = guard.Release()
	}()

	cfg, err := config.ParseEnv()
	if err != nil {
		return err
	}
	logger := config.NewLogger(cfg, nil)

	paths, err := platform.ResolvePaths(platform.PathOptions{
		AppName:     appName,
		Development: cfg.Development(),
		Root:        cfg.Root,
	})
	if err != nil {
		return err
	}
	logger.Debug("resolved paths", "config", paths.ConfigFile, "cards", paths.CardDir)

	configStore, closeStore := openConfigStore(paths.ConfigFile, logger)
	defer func() {
		// Stop forwarded writes before the store closes.
		_ = guard.Release()
		closeStore()
	}()

	catalog, err := i18n.Load()
	if err != nil {
		return err
	}

	emitter := event.NewEmitter()
	defer emitter.Close()

	store := settings.New(settings.InitialPersistentState(), settings.Config{Logger: logger.Named("settings")})
	propagator := settings.NewPropagator(store, settings.PropagatorConfig{
		ConfigStore: configStore,
		Translator:  catalog,
		Emitter:     emitter,
		Logger:      logger.Named("settings"),
	})

	iconURL, err := resources.IconDataURL(resources.AppIcon, resources.IconSize)
	if err != nil {
		logger.Warn("render app icon", "error", err)
	}
	settings.SeedApp(store, settings.AppInfo{Name: appTitle, Version: appVersion, IconDataURL: iconURL})

	defaults := settings.Defaults{
		Storage:  settings.Storage{Type: settings.StorageLocal, Path: paths.CardDir},
		Language: preferredLanguage(cfg, catalog, logger),
	}
	if err := settings.Hydrate(store, configStore, defaults, logger.Named("settings")); err != nil {
		logger.Warn("settings hydrated with defaults", "error", err)
	}

	handler := settings.NewHandler(store, logger.Named("control"))
	for _, message := range forwarded {
		handler.Handle(message)
	}

	fyneApp := app.NewWithID(appID)
	fyneApp.SetIcon(resources.MustIcon(resources.AppIcon))

	prefsWindow := preferences.New(fyneApp, store, supportedLanguages(catalog))
	unsubscribe := propagator.SubscribeWindow(prefsWindow)
	defer unsubscribe()

	go guard.Serve(handler.Handle, logger.Named("instance"))

	desktopApp, ok := fyneApp.(desktop.App)
	if !ok {
		log.Printf("system tray unsupported on this platform")
		prefsWindow.Show()
		fyneApp.Run()
		return nil
	}

	trayLabels := func() tray.Labels {
		return tray.LabelsFrom(appTitle, store.Message)
	}
	trayManager := tray.New(desktopApp, trayLabels(), tray.Callbacks{
		OnSettings: prefsWindow.Show,
		OnQuit:     fyneApp.Quit,
	})
	desktopApp.SetSystemTrayIcon(resources.MustIcon(resources.AppIcon))
	go trayManager.Watch(emitter.Subscribe(4), trayLabels)

	fyneApp.Run()
	return nil
}

func openConfigStore(path string, logger hclog.Logger) (storage.ConfigStore, func()) {
	fileStore, err := storage.Open(path, logger.Named("storage"))
	if err != nil {
		logger.Error("open config store, settings will not be saved", "path", path, "error", err)
		return storage.NewMemoryStore(nil), func() {}
	}
	return fileStore, func() {
		if err := fileStore.Close(); err != nil {
			logger.Error("close config store", "path", path, "error", err)
		}
	}
}

// preferredLanguage picks the language used when none is stored: the
// environment override, then the OS setting, resolved to a supported code.
func preferredLanguage(cfg config.Config, catalog *i18n.Catalog, logger hclog.Logger) string {
	code := cfg.Language
	if code == "" {
		detected, err := locale.GetLanguage()
		if err != nil {
			logger.Debug("detect OS language", "error", err)
		}
		code = detected
	}
	return i18n.Code(catalog.Resolve(code))
}

func supportedLanguages(catalog *i18n.Catalog) []preferences.Language {
	tags := catalog.Supported()
	languages := make([]preferences.Language, 0, len(tags))
	for _, tag := range tags {
		languages = append(languages, preferences.Language{
			Code: i18n.Code(tag),
			Name: catalog.LanguageName(tag),
		})
	}
	return languages
}

// flagActions turns command-line flags into wire actions so they can be
// applied locally or forwarded to a running instance.
func flagActions(language string, allowURLs, denyURLs []string) ([][]byte, error) {
	var actions []settings.Action
	if language != "" {
		actions = append(actions, settings.PutLanguage{Language: language})
	}
	if len(allowURLs) > 0 {
		actions = append(actions, settings.PutNavigationAllowedURLs{URLs: allowURLs})
	}
	if len(denyURLs) > 0 {
		actions = append(actions, settings.DeleteNavigationAllowedURLs{URLs: denyURLs})
	}

	messages := make([][]byte, 0, len(actions))
	for _, action := range actions {
		data, err := settings.EncodeAction(action)
		if err != nil {
			return nil, fmt.Errorf("encode flag %s: %w", action.Type(), err)
		}
		messages = append(messages, data)
	}
	return messages, nil
}
