package config

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/neuralbg/internal/field"
	"github.com/san-kum/neuralbg/internal/render"
)

const (
	DefaultPreset = "neural"
	DefaultFPS    = 60
	DefaultWidth  = 1280
	DefaultHeight = 720
	DefaultTitle  = "neuralbg"
)

var (
	ErrInvalidConfig = errors.New("config: invalid configuration")
	ErrUnknownPreset = errors.New("config: unknown preset")
)

type Config struct {
	Seed     int64          `yaml:"seed"`
	FPS      int            `yaml:"fps"`
	Field    FieldConfig    `yaml:"field"`
	Style    StyleConfig    `yaml:"style"`
	Window   WindowConfig   `yaml:"window"`
	Fallback FallbackConfig `yaml:"fallback"`
}

type FieldConfig struct {
	Count              int     `yaml:"count"`
	ConnectionDistance float64 `yaml:"connection_distance"`
	MaxSpeed           float64 `yaml:"max_speed"`
	MinSize            float64 `yaml:"min_size"`
	MaxSize            float64 `yaml:"max_size"`
}

type PaintConfig struct {
	Color string  `yaml:"color"`
	Alpha float64 `yaml:"alpha"`
}

type LineConfig struct {
	Color string  `yaml:"color"`
	Alpha float64 `yaml:"alpha"`
	Width float64 `yaml:"width"`
}

type GlowConfig struct {
	Color string  `yaml:"color"`
	Alpha float64 `yaml:"alpha"`
	Blur  float64 `yaml:"blur"`
}

type StyleConfig struct {
	Particle   PaintConfig `yaml:"particle"`
	Line       LineConfig  `yaml:"line"`
	Glow       GlowConfig  `yaml:"glow"`
	Opacity    float64     `yaml:"opacity"`
	Background string      `yaml:"background"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

type FallbackConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// DefaultConfig returns a copy of the neural preset.
func DefaultConfig() *Config {
	cfg, _ := GetPreset(DefaultPreset)
	return cfg
}

func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads path on top of base; keys missing from the file keep
// the base values.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base.Clone()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

func (c *Config) Validate() error {
	if err := c.FieldParams().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("%w: fps must be positive, got %d", ErrInvalidConfig, c.FPS)
	}
	if !unit(c.Style.Opacity) {
		return fmt.Errorf("%w: opacity must be within [0, 1], got %f", ErrInvalidConfig, c.Style.Opacity)
	}
	for name, a := range map[string]float64{
		"particle": c.Style.Particle.Alpha,
		"line":     c.Style.Line.Alpha,
		"glow":     c.Style.Glow.Alpha,
	} {
		if !unit(a) {
			return fmt.Errorf("%w: %s alpha must be within [0, 1], got %f", ErrInvalidConfig, name, a)
		}
	}
	if !finiteNonNegative(c.Style.Line.Width) || !finiteNonNegative(c.Style.Glow.Blur) {
		return fmt.Errorf("%w: line width and glow blur must be non-negative", ErrInvalidConfig)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size must be positive, got %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	}
	if c.Fallback.Width < 0 || c.Fallback.Height < 0 {
		return fmt.Errorf("%w: fallback size must be non-negative", ErrInvalidConfig)
	}
	for _, hex := range []string{c.Style.Particle.Color, c.Style.Line.Color, c.Style.Glow.Color, c.Style.Background} {
		if _, err := colorful.Hex(hex); err != nil {
			return fmt.Errorf("%w: color %q: %w", ErrInvalidConfig, hex, err)
		}
	}
	return nil
}

func (c *Config) FieldParams() field.Params {
	return field.Params{
		Count:              c.Field.Count,
		ConnectionDistance: c.Field.ConnectionDistance,
		MaxSpeed:           c.Field.MaxSpeed,
		MinSize:            c.Field.MinSize,
		MaxSize:            c.Field.MaxSize,
	}
}

// Options validates the config and converts it for render.New.
func (c *Config) Options() (render.Options, error) {
	if err := c.Validate(); err != nil {
		return render.Options{}, err
	}
	particle, _ := Paint(c.Style.Particle.Color, c.Style.Particle.Alpha)
	line, _ := Paint(c.Style.Line.Color, c.Style.Line.Alpha)
	glow, _ := Paint(c.Style.Glow.Color, c.Style.Glow.Alpha)

	return render.Options{
		Params: c.FieldParams(),
		Style: render.Style{
			Particle:  particle,
			Line:      line,
			LineWidth: c.Style.Line.Width,
			Glow:      glow,
			GlowBlur:  c.Style.Glow.Blur,
		},
		Fallback: render.Size{Width: c.Fallback.Width, Height: c.Fallback.Height},
		Seed:     c.Seed,
	}, nil
}

// Background is the opaque color hosts paint behind the particle layer.
func (c *Config) Background() color.NRGBA {
	bg, err := Paint(c.Style.Background, 1)
	if err != nil {
		return color.NRGBA{A: 255}
	}
	return bg
}

// Paint parses a hex color and applies alpha in [0, 1].
func Paint(hex string, alpha float64) (color.NRGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.NRGBA{}, err
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(clamp01(alpha)*255 + 0.5)}, nil
}

// unit reports whether v lies in [0, 1]. NaN does not.
func unit(v float64) bool { return v >= 0 && v <= 1 }

func finiteNonNegative(v float64) bool { return v >= 0 && !math.IsInf(v, 1) }

func clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
