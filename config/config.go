// Package config loads the viewer configuration from YAML or TOML.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/milk9111/nbody/nbody"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

var ErrInvalid = errors.New("config: invalid")

// MaxViews is the number of panes the grid can show.
const MaxViews = 4

type Config struct {
	Window    WindowConfig     `yaml:"window" toml:"window"`
	TimeStep  float64          `yaml:"time_step" toml:"time_step"`
	Running   bool             `yaml:"running" toml:"running"`
	Camera    CameraConfig     `yaml:"camera" toml:"camera"`
	View      ViewConfig       `yaml:"view" toml:"view"`
	ScriptDir string           `yaml:"script_dir" toml:"script_dir"`
	Sims      []SimulationSpec `yaml:"simulations" toml:"simulations"`
	Views     []ViewSpec       `yaml:"views" toml:"views"`
}

type WindowConfig struct {
	Width      int    `yaml:"width" toml:"width"`
	Height     int    `yaml:"height" toml:"height"`
	Title      string `yaml:"title" toml:"title"`
	PanelWidth int    `yaml:"panel_width" toml:"panel_width"`
}

type CameraConfig struct {
	Pitch             float64 `yaml:"pitch" toml:"pitch"`
	Yaw               float64 `yaml:"yaw" toml:"yaw"`
	Distance          float64 `yaml:"distance" toml:"distance"`
	MinDistance       float64 `yaml:"min_distance" toml:"min_distance"`
	ScrollSensitivity float64 `yaml:"scroll_sensitivity" toml:"scroll_sensitivity"`
	PanSensitivity    float64 `yaml:"pan_sensitivity" toml:"pan_sensitivity"`
}

type ViewConfig struct {
	PointSize     float32 `yaml:"point_size" toml:"point_size"`
	ShowNodeBoxes bool    `yaml:"show_node_boxes" toml:"show_node_boxes"`
	Colorizer     string  `yaml:"colorizer" toml:"colorizer"`
}

// SimulationSpec describes a simulation created at start-up.
type SimulationSpec struct {
	Name      string  `yaml:"name" toml:"name"`
	Executor  string  `yaml:"executor" toml:"executor"`
	Preset    string  `yaml:"preset" toml:"preset"`
	Bodies    int     `yaml:"bodies" toml:"bodies"`
	Seed      uint64  `yaml:"seed" toml:"seed"`
	Theta     float64 `yaml:"theta" toml:"theta"`
	Softening float64 `yaml:"softening" toml:"softening"`
}

// Kind parses Executor.
func (s SimulationSpec) Kind() (nbody.Kind, error) {
	return nbody.ParseKind(s.Executor)
}

// Options returns the executor options with defaults for zero fields.
func (s SimulationSpec) Options() nbody.Options {
	opts := nbody.DefaultOptions()
	if s.Theta > 0 {
		opts.Theta = s.Theta
	}
	if s.Softening > 0 {
		opts.Softening = s.Softening
	}
	return opts
}

// ViewSpec places a view over a named simulation.
type ViewSpec struct {
	Name       string `yaml:"name" toml:"name"`
	Simulation string `yaml:"simulation" toml:"simulation"`
	Colorizer  string `yaml:"colorizer" toml:"colorizer"`
}

// Default returns the embedded configuration.
func Default() *Config {
	cfg, err := Parse(defaultYAML, ".yaml")
	if err != nil {
		panic("config: embedded default: " + err.Error())
	}
	return cfg
}

// Load reads path. An empty path yields Default.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: load %s: %w", path, err)
	}
	cfg, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	if cfg.ScriptDir != "" && !filepath.IsAbs(cfg.ScriptDir) {
		cfg.ScriptDir = filepath.Join(filepath.Dir(path), cfg.ScriptDir)
	}
	return cfg, nil
}

// Parse decodes data as TOML when ext is ".toml" and as YAML otherwise.
func Parse(data []byte, ext string) (*Config, error) {
	var cfg Config
	switch strings.ToLower(ext) {
	case ".toml":
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("unmarshal toml: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("unmarshal yaml: %w", err)
		}
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Window.Width <= 0 {
		c.Window.Width = 1280
	}
	if c.Window.Height <= 0 {
		c.Window.Height = 720
	}
	if c.Window.Title == "" {
		c.Window.Title = "N-Body Simulation"
	}
	if c.Window.PanelWidth <= 0 {
		c.Window.PanelWidth = 260
	}
	if c.Camera.Distance <= 0 {
		c.Camera.Distance = 5
	}
	if c.Camera.MinDistance <= 0 {
		c.Camera.MinDistance = 0.1
	}
	if c.Camera.ScrollSensitivity == 0 {
		c.Camera.ScrollSensitivity = 0.1
	}
	if c.Camera.PanSensitivity == 0 {
		c.Camera.PanSensitivity = 3e-3
	}
	if c.View.PointSize <= 0 {
		c.View.PointSize = 2
	}
	if c.ScriptDir == "" {
		c.ScriptDir = "presets"
	}
	for i := range c.Sims {
		if c.Sims[i].Preset == "" {
			c.Sims[i].Preset = "explosion"
		}
		if c.Sims[i].Bodies == 0 {
			c.Sims[i].Bodies = 256
		}
	}
}

// Validate checks references between simulations and views.
func (c *Config) Validate() error {
	if c.TimeStep < 0 {
		return fmt.Errorf("%w: negative time_step %v", ErrInvalid, c.TimeStep)
	}
	names := make(map[string]bool, len(c.Sims))
	for i, s := range c.Sims {
		if s.Name == "" {
			return fmt.Errorf("%w: simulation %d has no name", ErrInvalid, i)
		}
		if names[s.Name] {
			return fmt.Errorf("%w: duplicate simulation %q", ErrInvalid, s.Name)
		}
		names[s.Name] = true
		if _, err := s.Kind(); err != nil {
			return fmt.Errorf("%w: simulation %q: %w", ErrInvalid, s.Name, err)
		}
		if s.Bodies < 0 {
			return fmt.Errorf("%w: simulation %q: negative body count", ErrInvalid, s.Name)
		}
	}
	if len(c.Views) > MaxViews {
		return fmt.Errorf("%w: %d views, at most %d fit", ErrInvalid, len(c.Views), MaxViews)
	}
	for _, v := range c.Views {
		if !names[v.Simulation] {
			return fmt.Errorf("%w: view %q references unknown simulation %q", ErrInvalid, v.Name, v.Simulation)
		}
	}
	return nil
}

// IsConfigFile reports whether path has a configuration extension.
func IsConfigFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".toml":
		return true
	}
	return false
}

// IsScriptFile reports whether path is a tengo preset script.
func IsScriptFile(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".tengo"
}
