package assemble

import (
	"embed"
	"fmt"

	"github.com/goccy/go-json"

	"mp-generator/internal/config"
)

//go:embed templates
var templateFS embed.FS

func readTemplate(name string) ([]byte, error) {
	data, err := templateFS.ReadFile("templates/" + name)
	if err != nil {
		return nil, fmt.Errorf("reading template %s: %w", name, err)
	}

	return data, nil
}

// loadJSONTemplate decodes a descriptor template into a fresh map.
func loadJSONTemplate(name string) (map[string]any, error) {
	data, err := readTemplate(name)
	if err != nil {
		return nil, err
	}

	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decoding template %s: %w", name, err)
	}

	return out, nil
}

// appWxssTemplate returns the stylesheet for a variant. The none variant is empty.
func appWxssTemplate(variant config.AppWxss) ([]byte, error) {
	switch variant {
	case config.AppWxssNone:
		return []byte{}, nil
	case config.AppWxssDisplay:
		return readTemplate("app.display.wxss")
	default:
		return readTemplate("app.wxss")
	}
}
