package preferences

import (
	"net/url"
	"strings"

	"rxdesktop/internal/settings"
)

// Language is one entry of the language selector.
type Language struct {
	Code string
	Name string
}

// View is everything the settings window displays for one state.
type View struct {
	Title           string
	About           string
	LanguageLabel   string
	LanguageOptions []string
	// SelectedLanguage is the display name of the active language, or empty
	// when the stored code matches none of the options.
	SelectedLanguage string
	StorageLabel     string
	StoragePath      string
	URLsLabel        string
	URLs             []string
	URLPlaceholder   string
	AddLabel         string
	DeleteLabel      string
}

// BuildView derives the window contents from state.
func BuildView(state settings.GlobalState, languages []Language) View {
	view := View{
		Title:          state.Message("settingsDialog"),
		LanguageLabel:  state.Message("settingsDialogLanguage"),
		StorageLabel:   state.Message("settingsDialogStorage"),
		StoragePath:    state.Message("storagePath", state.Persistent.Storage.Path),
		URLsLabel:      state.Message("securityAllowedURLs"),
		URLs:           append([]string(nil), state.Persistent.NavigationAllowedURLs...),
		URLPlaceholder: state.Message("urlPlaceholder"),
		AddLabel:       state.Message("addURL"),
		DeleteLabel:    state.Message("deleteURL"),
	}
	if app := state.Temporal.App; app.Name != "" {
		view.About = state.Message("aboutApp", app.Name, app.Version)
	}

	view.LanguageOptions = make([]string, 0, len(languages))
	for _, language := range languages {
		view.LanguageOptions = append(view.LanguageOptions, language.Name)
		if language.Code == state.Persistent.Language {
			view.SelectedLanguage = language.Name
		}
	}
	return view
}

// LanguageCode returns the code for a display name shown in the selector.
func LanguageCode(languages []Language, name string) (string, bool) {
	for _, language := range languages {
		if language.Name == name {
			return language.Code, true
		}
	}
	return "", false
}

// NormalizeURL trims text and accepts it when it is an absolute http(s) URL
// or a bare host name.
func NormalizeURL(text string) (string, bool) {
	text = strings.TrimSpace(text)
	if text == "" || strings.ContainsAny(text, " \t\n") {
		return "", false
	}
	if !strings.Contains(text, "://") {
		return text, true
	}
	parsed, err := url.Parse(text)
	if err != nil || parsed.Host == "" {
		return "", false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", false
	}
	return text, true
}
