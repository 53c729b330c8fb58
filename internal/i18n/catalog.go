// Package i18n loads the UI message catalogs and resolves them per language.
package i18n

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
	"gopkg.in/yaml.v3"
)

// DefaultLanguage is used when a requested language is not supported.
var DefaultLanguage = language.English

//go:embed locales/*.yaml
var embeddedLocales embed.FS

// Catalog holds every supported language's messages.
type Catalog struct {
	bundle     *goi18n.Bundle
	matcher    language.Matcher
	supported  []language.Tag
	defaultTag language.Tag
	labels     []string
}

// Load reads the catalogs embedded in the binary.
func Load() (*Catalog, error) {
	return LoadFS(embeddedLocales, DefaultLanguage)
}

// LoadFS reads locales/<code>.yaml files from fsys. The default language's
// file defines the full label set.
func LoadFS(fsys fs.FS, defaultTag language.Tag) (*Catalog, error) {
	paths, err := fs.Glob(fsys, "locales/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalog files found")
	}
	sort.Strings(paths)

	bundle := goi18n.NewBundle(defaultTag)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

	supported := []language.Tag{defaultTag}
	var labels []string
	for _, filePath := range paths {
		file, err := bundle.LoadMessageFileFS(fsys, filePath)
		if err != nil {
			return nil, fmt.Errorf("load catalog %s: %w", filePath, err)
		}
		if file.Tag.String() == defaultTag.String() {
			for _, message := range file.Messages {
				labels = append(labels, message.ID)
			}
			continue
		}
		supported = append(supported, file.Tag)
	}
	if len(labels) == 0 {
		return nil, fmt.Errorf("default language %s is not defined in catalogs", defaultTag)
	}
	sort.Strings(labels)

	return &Catalog{
		bundle:     bundle,
		matcher:    language.NewMatcher(supported),
		supported:  supported,
		defaultTag: defaultTag,
		labels:     labels,
	}, nil
}

// Default returns the fallback language.
func (catalog *Catalog) Default() language.Tag {
	return catalog.defaultTag
}

// Supported returns the supported languages, default first.
func (catalog *Catalog) Supported() []language.Tag {
	return append([]language.Tag(nil), catalog.supported...)
}

// Labels returns every message label in sorted order.
func (catalog *Catalog) Labels() []string {
	return append([]string(nil), catalog.labels...)
}

// Resolve picks the supported language for code, falling back to the default
// language when code is unparseable or unsupported.
func (catalog *Catalog) Resolve(code string) language.Tag {
	requested, err := language.Parse(strings.TrimSpace(code))
	if err != nil {
		return catalog.defaultTag
	}
	_, index, confidence := catalog.matcher.Match(requested, catalog.defaultTag)
	if confidence == language.No || index < 0 || index >= len(catalog.supported) {
		return catalog.defaultTag
	}
	return catalog.supported[index]
}

// Messages returns the full label-to-text mapping for code. Labels missing
// from the resolved language fall back to the default language.
func (catalog *Catalog) Messages(code string) map[string]string {
	tag := catalog.Resolve(code)
	localizer := goi18n.NewLocalizer(catalog.bundle, tag.String(), catalog.defaultTag.String())

	messages := make(map[string]string, len(catalog.labels))
	for _, label := range catalog.labels {
		text, err := localizer.Localize(&goi18n.LocalizeConfig{MessageID: label})
		if err != nil {
			// A label missing from the requested language comes back
			// together with the default language's text.
			var notFound *goi18n.MessageNotFoundErr
			if !errors.As(err, &notFound) || text == "" {
				continue
			}
		}
		messages[label] = text
	}
	return messages
}

// LanguageName returns the language's name written in that language,
// e.g. "日本語" for Japanese.
func (catalog *Catalog) LanguageName(tag language.Tag) string {
	if name := display.Self.Name(tag); name != "" {
		return name
	}
	return tag.String()
}

// Code returns the short code stored in settings for tag, e.g. "ja".
func Code(tag language.Tag) string {
	base, _ := tag.Base()
	return base.String()
}
