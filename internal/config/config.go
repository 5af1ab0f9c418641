package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/menta2k/synthgen/pkg/generator"
	"github.com/menta2k/synthgen/pkg/sampler"
	"github.com/menta2k/synthgen/pkg/types"
)

// Config holds the full generation configuration for a run. It is
// loaded once and treated as read-only afterwards.
type Config struct {
	Scene  SceneConfig  `json:"scene"`
	Object ObjectConfig `json:"object"`
	Camera CameraConfig `json:"camera"`
	Light  LightConfig  `json:"light"`
}

// SceneConfig holds the input/output surface of a run
type SceneConfig struct {
	Models         []string `json:"models"`
	BackgroundsDir string   `json:"backgrounds_dir"`
	NumImages      int      `json:"num_images"`
	OutputDir      string   `json:"output_dir"`
	Width          int      `json:"width"`
	Height         int      `json:"height"`
	ClassID        int      `json:"class_id"`
	Samples        int      `json:"samples"`
	Seed           int64    `json:"seed"`
}

// ObjectConfig holds the object pose randomization ranges
type ObjectConfig struct {
	Scale types.Range `json:"scale"`
	PosX  types.Range `json:"pos_x"`
	PosY  types.Range `json:"pos_y"`
}

// CameraConfig holds the camera randomization ranges. Elevation is in
// degrees, focal length in millimeters, radius in scene units.
type CameraConfig struct {
	Radius    types.Range `json:"radius"`
	Elevation types.Range `json:"elevation"`
	Focal     types.Range `json:"focal"`
}

// LightConfig holds the fill light power range
type LightConfig struct {
	Power types.Range `json:"power"`
}

// Default returns a configuration with default values
func Default() *Config {
	return &Config{
		Scene: SceneConfig{
			BackgroundsDir: "backgrounds",
			NumImages:      1000,
			OutputDir:      "output",
			Width:          640,
			Height:         640,
			ClassID:        0,
			Samples:        128,
			Seed:           1,
		},
		Object: ObjectConfig{
			Scale: types.Range{Min: 1.2, Max: 1.8},
			PosX:  types.Range{Min: -0.2, Max: 0.2},
			PosY:  types.Range{Min: -0.2, Max: 0.2},
		},
		Camera: CameraConfig{
			Radius:    types.Range{Min: 0.6, Max: 1.2},
			Elevation: types.Range{Min: 10, Max: 50},
			Focal:     types.Range{Min: 40, Max: 80},
		},
		Light: LightConfig{
			Power: types.Range{Min: 800, Max: 1500},
		},
	}
}

// LoadFromFile loads configuration from a JSON file
func LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// SaveToFile saves configuration to a JSON file
func (c *Config) SaveToFile(filename string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Scene.Width < 1 || c.Scene.Height < 1 {
		return fmt.Errorf("scene resolution must be positive, got %dx%d", c.Scene.Width, c.Scene.Height)
	}

	if c.Scene.NumImages < 1 {
		return fmt.Errorf("scene.num_images must be positive")
	}

	if c.Scene.Samples < 1 {
		return fmt.Errorf("scene.samples must be positive")
	}

	if c.Scene.ClassID < 0 {
		return fmt.Errorf("scene.class_id must not be negative")
	}

	ranges := []struct {
		name string
		r    types.Range
	}{
		{"object.scale", c.Object.Scale},
		{"object.pos_x", c.Object.PosX},
		{"object.pos_y", c.Object.PosY},
		{"camera.radius", c.Camera.Radius},
		{"camera.elevation", c.Camera.Elevation},
		{"camera.focal", c.Camera.Focal},
		{"light.power", c.Light.Power},
	}
	for _, rc := range ranges {
		if !rc.r.Valid() {
			return fmt.Errorf("%s: min %v exceeds max %v", rc.name, rc.r.Min, rc.r.Max)
		}
	}

	if c.Object.Scale.Min <= 0 {
		return fmt.Errorf("object.scale must be positive")
	}

	if c.Camera.Radius.Min <= 0 {
		return fmt.Errorf("camera.radius must be positive")
	}

	return nil
}

// Generator converts the file configuration into the generator's
// runtime configuration
func (c *Config) Generator() generator.Config {
	return generator.Config{
		Models:         c.Scene.Models,
		BackgroundsDir: c.Scene.BackgroundsDir,
		NumImages:      c.Scene.NumImages,
		OutputDir:      c.Scene.OutputDir,
		Width:          c.Scene.Width,
		Height:         c.Scene.Height,
		ClassID:        c.Scene.ClassID,
		Samples:        c.Scene.Samples,
		Seed:           c.Scene.Seed,
		Sampling: sampler.Config{
			Scale:     c.Object.Scale,
			PosX:      c.Object.PosX,
			PosY:      c.Object.PosY,
			Radius:    c.Camera.Radius,
			Elevation: c.Camera.Elevation,
			Focal:     c.Camera.Focal,
			Power:     c.Light.Power,
		},
	}
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./config.json"
	}
	return filepath.Join(home, ".config", "synthgen", "config.json")
}
