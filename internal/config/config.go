// Package config loads engine and CLI settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/SeamusWaldron/cubeturn/internal/gesture"
	"github.com/SeamusWaldron/cubeturn/internal/rotation"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("config: invalid value")

// Config holds every tunable the engine and CLI read.
type Config struct {
	DragThreshold     float64 `yaml:"drag_threshold"`
	AnimationDuration float64 `yaml:"animation_duration"`
	Instant           bool    `yaml:"instant"`
	Easing            string  `yaml:"easing"`
	Camera            Camera  `yaml:"camera"`
	LogDir            string  `yaml:"log_dir"`
}

// Camera places the perspective camera.
type Camera struct {
	Position [3]float64 `yaml:"position"`
	Target   [3]float64 `yaml:"target"`
	FovDeg   float64    `yaml:"fov"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		DragThreshold:     gesture.DefaultThreshold,
		AnimationDuration: rotation.DefaultDuration,
		Easing:            "ease-out",
		Camera: Camera{
			Position: [3]float64{4, 4, 8},
			FovDeg:   75,
		},
	}
}

// Load reads path over the defaults, so a file may set only some keys.
func Load(path string) (Config, error) {
	c := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return c, fmt.Errorf("%s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return c, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Validate reports the first out-of-range value.
func (c Config) Validate() error {
	if c.DragThreshold < 0 {
		return fmt.Errorf("%w: drag_threshold %v", ErrInvalidConfig, c.DragThreshold)
	}
	if c.AnimationDuration < 0 {
		return fmt.Errorf("%w: animation_duration %v", ErrInvalidConfig, c.AnimationDuration)
	}
	if _, err := rotation.ParseEasing(c.Easing); err != nil {
		return fmt.Errorf("%w: easing %q", ErrInvalidConfig, c.Easing)
	}
	if c.Camera.FovDeg <= 0 || c.Camera.FovDeg >= 180 {
		return fmt.Errorf("%w: camera fov %v", ErrInvalidConfig, c.Camera.FovDeg)
	}
	if c.Camera.Position == c.Camera.Target {
		return fmt.Errorf("%w: camera position equals target", ErrInvalidConfig)
	}
	return nil
}

// EasingFunc returns the configured easing curve.
func (c Config) EasingFunc() rotation.Easing {
	e, err := rotation.ParseEasing(c.Easing)
	if err != nil {
		return rotation.EaseOutQuad
	}
	return e
}
