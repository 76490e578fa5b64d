package config

import (
	"fmt"
	"sort"
)

const indigo = "#818cf8"

// Presets are independent parameter sets. Each is complete on its own;
// GetPreset never blends two of them.
var Presets = map[string]*Config{
	"neural": {
		FPS:   DefaultFPS,
		Field: FieldConfig{Count: 50, ConnectionDistance: 160, MaxSpeed: 0.2, MinSize: 1, MaxSize: 3.5},
		Style: StyleConfig{
			Particle:   PaintConfig{Color: indigo, Alpha: 0.4},
			Line:       LineConfig{Color: indigo, Alpha: 0.3, Width: 0.8},
			Glow:       GlowConfig{Color: indigo, Alpha: 0.2, Blur: 10},
			Opacity:    0.8,
			Background: "#020617",
		},
		Window:   WindowConfig{Width: DefaultWidth, Height: DefaultHeight, Title: DefaultTitle},
		Fallback: FallbackConfig{Width: 800, Height: 600},
	},
	"hero": {
		FPS:   DefaultFPS,
		Field: FieldConfig{Count: 80, ConnectionDistance: 120, MaxSpeed: 0.3, MinSize: 0.8, MaxSize: 2.5},
		Style: StyleConfig{
			Particle:   PaintConfig{Color: indigo, Alpha: 0.5},
			Line:       LineConfig{Color: indigo, Alpha: 0.25, Width: 0.8},
			Glow:       GlowConfig{Color: indigo, Alpha: 0.2, Blur: 10},
			Opacity:    0.8,
			Background: "#020617",
		},
		Window:   WindowConfig{Width: DefaultWidth, Height: DefaultHeight, Title: DefaultTitle},
		Fallback: FallbackConfig{Width: 800, Height: 600},
	},
	"sparse": {
		FPS:   DefaultFPS,
		Field: FieldConfig{Count: 24, ConnectionDistance: 220, MaxSpeed: 0.15, MinSize: 1, MaxSize: 3.5},
		Style: StyleConfig{
			Particle:   PaintConfig{Color: indigo, Alpha: 0.4},
			Line:       LineConfig{Color: indigo, Alpha: 0.3, Width: 0.8},
			Glow:       GlowConfig{Color: indigo, Alpha: 0.2, Blur: 10},
			Opacity:    0.8,
			Background: "#020617",
		},
		Window:   WindowConfig{Width: DefaultWidth, Height: DefaultHeight, Title: DefaultTitle},
		Fallback: FallbackConfig{Width: 800, Height: 600},
	},
}

// GetPreset returns a copy the caller may modify.
func GetPreset(name string) (*Config, error) {
	cfg, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownPreset, name, ListPresets())
	}
	return cfg.Clone(), nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
