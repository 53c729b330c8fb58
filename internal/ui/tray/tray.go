package tray

import (
	"rxdesktop/internal/event"

	"fyne.io/fyne/v2"
)

// App is the part of desktop.App the tray needs.
type App interface {
	SetSystemTrayMenu(menu *fyne.Menu)
}

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnSettings func()
	OnQuit     func()
}

// Labels are the localized menu texts.
type Labels struct {
	Title    string
	Settings string
	Quit     string
}

// LabelsFrom resolves the menu texts with message, usually Store.Message.
func LabelsFrom(title string, message func(label string, args ...string) string) Labels {
	return Labels{
		Title:    title,
		Settings: message("trayMenuSettings"),
		Quit:     message("trayMenuQuit"),
	}
}

// Manager handles system tray state.
type Manager struct {
	app       App
	callbacks Callbacks
	labels    Labels
	menu      *fyne.Menu
}

// New creates a tray manager and installs its menu.
func New(app App, labels Labels, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
	}
	manager.SetLabels(labels)
	return manager
}

// SetLabels rebuilds the menu with new texts. It must run on the UI thread.
func (manager *Manager) SetLabels(labels Labels) {
	manager.labels = labels
	manager.refreshMenu()
}

// Menu returns the installed menu.
func (manager *Manager) Menu() *fyne.Menu {
	return manager.menu
}

// Watch rebuilds the menu after every settings change until events is
// closed. labels is evaluated off the UI thread.
func (manager *Manager) Watch(events <-chan event.Event, labels func() Labels) {
	for evt := range events {
		if evt.Type != event.SettingsChanged {
			continue
		}
		next := labels()
		fyne.Do(func() {
			manager.SetLabels(next)
		})
	}
}

func (manager *Manager) refreshMenu() {
	settings := fyne.NewMenuItem(manager.labels.Settings, func() {
		if manager.callbacks.OnSettings != nil {
			manager.callbacks.OnSettings()
		}
	})
	quit := fyne.NewMenuItem(manager.labels.Quit, func() {
		if manager.callbacks.OnQuit != nil {
			manager.callbacks.OnQuit()
		}
	})
	quit.IsQuit = true

	manager.menu = fyne.NewMenu(manager.labels.Title, settings, fyne.NewMenuItemSeparator(), quit)
	if manager.app != nil {
		manager.app.SetSystemTrayMenu(manager.menu)
	}
}
