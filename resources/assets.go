package resources

import (
	"bytes"
	"embed"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"sync"

	"fyne.io/fyne/v2"
	"golang.org/x/image/draw"
)

const (
	iconDir = "icon/"
	// AppIcon is the application and tray icon.
	AppIcon = "app.png"
	// IconSize is the edge length of the icon handed to windows.
	IconSize = 64
)

//go:embed icon/*.png
var iconFS embed.FS

var iconCache sync.Map
var dataURLCache sync.Map

// Icon returns a Fyne resource for the given icon file.
func Icon(fileName string) (fyne.Resource, error) {
	path := iconDir + fileName
	if cached, ok := iconCache.Load(path); ok {
		return cached.(fyne.Resource), nil
	}

	data, err := iconFS.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load resource %s: %w", path, err)
	}

	resource := fyne.NewStaticResource(fileName, data)
	iconCache.Store(path, resource)
	return resource, nil
}

// MustIcon returns a Fyne resource or panics on error.
func MustIcon(fileName string) fyne.Resource {
	resource, err := Icon(fileName)
	if err != nil {
		panic(err)
	}
	return resource
}

// IconDataURL renders the icon at size×size and returns it as a PNG data URL.
func IconDataURL(fileName string, size int) (string, error) {
	if size <= 0 {
		return "", fmt.Errorf("render icon %s: invalid size %d", fileName, size)
	}
	key := fmt.Sprintf("%s@%d", fileName, size)
	if cached, ok := dataURLCache.Load(key); ok {
		return cached.(string), nil
	}

	resource, err := Icon(fileName)
	if err != nil {
		return "", err
	}
	source, err := png.Decode(bytes.NewReader(resource.Content()))
	if err != nil {
		return "", fmt.Errorf("decode icon %s: %w", fileName, err)
	}

	scaled := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), source, source.Bounds(), draw.Over, nil)

	var encoded bytes.Buffer
	if err := png.Encode(&encoded, scaled); err != nil {
		return "", fmt.Errorf("encode icon %s: %w", fileName, err)
	}

	url := "data:image/png;base64," + base64.StdEncoding.EncodeToString(encoded.Bytes())
	dataURLCache.Store(key, url)
	return url, nil
}
