package preferences

import (
	"rxdesktop/internal/settings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// Window handles the settings UI. It mirrors every state pushed through Send
// and turns edits into actions.
type Window struct {
	window     fyne.Window
	dispatcher settings.Dispatcher
	languages  []Language

	view      View
	rendering bool
	selected  widget.ListItemID

	about         *widget.Label
	languageLabel *widget.Label
	language      *widget.Select
	storageLabel  *widget.Label
	storagePath   *widget.Label
	urlsLabel     *widget.Label
	urls          *widget.List
	urlEntry      *widget.Entry
	addButton     *widget.Button
	deleteButton  *widget.Button
}

// New creates the settings window. It stays hidden until Show is called.
func New(app fyne.App, dispatcher settings.Dispatcher, languages []Language) *Window {
	prefs := &Window{
		window:     app.NewWindow("Settings"),
		dispatcher: dispatcher,
		languages:  languages,
		selected:   -1,
	}

	prefs.about = widget.NewLabel("")
	prefs.languageLabel = widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	prefs.language = widget.NewSelect(nil, prefs.handleLanguage)
	prefs.storageLabel = widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	prefs.storagePath = widget.NewLabel("")
	prefs.storagePath.Wrapping = fyne.TextWrapBreak
	prefs.urlsLabel = widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})

	prefs.urls = widget.NewList(
		func() int { return len(prefs.view.URLs) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.ListItemID, item fyne.CanvasObject) {
			if id >= 0 && id < len(prefs.view.URLs) {
				item.(*widget.Label).SetText(prefs.view.URLs[id])
			}
		},
	)
	prefs.urls.OnSelected = func(id widget.ListItemID) {
		prefs.selected = id
		prefs.deleteButton.Enable()
	}
	prefs.urls.OnUnselected = func(widget.ListItemID) {
		prefs.selected = -1
		prefs.deleteButton.Disable()
	}

	prefs.urlEntry = widget.NewEntry()
	prefs.urlEntry.OnSubmitted = func(string) { prefs.handleAdd() }
	prefs.addButton = widget.NewButton("", prefs.handleAdd)
	prefs.deleteButton = widget.NewButton("", prefs.handleDelete)
	prefs.deleteButton.Disable()

	form := container.NewVBox(
		prefs.about,
		prefs.languageLabel,
		prefs.language,
		prefs.storageLabel,
		prefs.storagePath,
		prefs.urlsLabel,
	)
	controls := container.NewBorder(nil, nil, nil, container.NewHBox(prefs.addButton, prefs.deleteButton), prefs.urlEntry)
	content := container.NewBorder(form, controls, nil, nil, prefs.urls)

	prefs.window.SetContent(content)
	prefs.window.Resize(fyne.NewSize(480, 520))
	prefs.window.SetCloseIntercept(func() {
		prefs.window.Hide()
	})

	return prefs
}

// Show displays the settings window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// Send implements settings.Window.
func (prefs *Window) Send(state settings.GlobalState) error {
	view := BuildView(state, prefs.languages)
	fyne.Do(func() {
		prefs.render(view)
	})
	return nil
}

func (prefs *Window) render(view View) {
	prefs.rendering = true
	defer func() { prefs.rendering = false }()

	prefs.view = view
	prefs.window.SetTitle(view.Title)
	prefs.about.SetText(view.About)
	prefs.languageLabel.SetText(view.LanguageLabel)
	prefs.language.Options = view.LanguageOptions
	if view.SelectedLanguage == "" {
		prefs.language.ClearSelected()
	} else {
		prefs.language.SetSelected(view.SelectedLanguage)
	}
	prefs.language.Refresh()
	prefs.storageLabel.SetText(view.StorageLabel)
	prefs.storagePath.SetText(view.StoragePath)
	prefs.urlsLabel.SetText(view.URLsLabel)
	prefs.urlEntry.SetPlaceHolder(view.URLPlaceholder)
	prefs.addButton.SetText(view.AddLabel)
	prefs.deleteButton.SetText(view.DeleteLabel)

	prefs.urls.UnselectAll()
	prefs.urls.Refresh()
}

func (prefs *Window) handleLanguage(name string) {
	if prefs.rendering || name == prefs.view.SelectedLanguage {
		return
	}
	if code, ok := LanguageCode(prefs.languages, name); ok {
		prefs.dispatcher.Dispatch(settings.PutLanguage{Language: code})
	}
}

func (prefs *Window) handleAdd() {
	url, ok := NormalizeURL(prefs.urlEntry.Text)
	if !ok {
		return
	}
	prefs.urlEntry.SetText("")
	prefs.dispatcher.Dispatch(settings.PutNavigationAllowedURLs{URLs: []string{url}})
}

func (prefs *Window) handleDelete() {
	if prefs.selected < 0 || prefs.selected >= len(prefs.view.URLs) {
		return
	}
	url := prefs.view.URLs[prefs.selected]
	prefs.dispatcher.Dispatch(settings.DeleteNavigationAllowedURLs{URLs: []string{url}})
}

var _ settings.Window = (*Window)(nil)
