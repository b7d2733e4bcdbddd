// Package config loads the application settings from YAML and lets
// ZONEFX_* environment variables override them.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "ZONEFX_"

// Config is the root of the settings file.
type Config struct {
	Log         LogConfig         `yaml:"log" envPrefix:"LOG_"`
	Session     SessionConfig     `yaml:"session" envPrefix:"SESSION_"`
	Environment EnvironmentConfig `yaml:"environment" envPrefix:"ENV_"`
	Audio       AudioConfig       `yaml:"audio" envPrefix:"AUDIO_"`
	Window      WindowConfig      `yaml:"window" envPrefix:"WINDOW_"`
	UI          UIConfig          `yaml:"ui" envPrefix:"UI_"`
}

// LogConfig selects the slog level.
type LogConfig struct {
	Level string `yaml:"level" env:"LEVEL"`
}

// DOFConfig is a near/focus/far triple.
type DOFConfig struct {
	Near  float64 `yaml:"near" env:"NEAR"`
	Focus float64 `yaml:"focus" env:"FOCUS"`
	Far   float64 `yaml:"far" env:"FAR"`
}

// SessionConfig holds per-session scheduling settings.
type SessionConfig struct {
	Seed        int64     `yaml:"seed" env:"SEED"`
	GameType    string    `yaml:"game_type" env:"GAME_TYPE"`
	BaseDOF     DOFConfig `yaml:"base_dof" envPrefix:"DOF_"`
	PickNear    float64   `yaml:"pick_near" env:"PICK_NEAR"`
	PickFar     float64   `yaml:"pick_far" env:"PICK_FAR"`
	DOFSettle   Duration  `yaml:"dof_settle" env:"DOF_SETTLE"`
	Luminosity  float64   `yaml:"luminosity" env:"LUMINOSITY"`
	NoIntro     bool      `yaml:"no_intro" env:"NO_INTRO"`
	NoGameIntro bool      `yaml:"no_game_intro" env:"NO_GAME_INTRO"`
	IntroLength Duration  `yaml:"intro_length" env:"INTRO_LENGTH"`
}

// EnvironmentConfig picks the descriptor catalog and how it is blended.
type EnvironmentConfig struct {
	Preset string `yaml:"preset" env:"PRESET"`
	File   string `yaml:"file" env:"FILE"`
	// Mode is "cycle" to walk the catalog over time or "fixed" to blend
	// Primary and Secondary by Weight.
	Mode      string  `yaml:"mode" env:"MODE"`
	Primary   string  `yaml:"primary" env:"PRIMARY"`
	Secondary string  `yaml:"secondary" env:"SECONDARY"`
	Weight    float64 `yaml:"weight" env:"WEIGHT"`
}

// AudioConfig controls sound output.
type AudioConfig struct {
	Enabled bool    `yaml:"enabled" env:"ENABLED"`
	Dir     string  `yaml:"dir" env:"DIR"`
	Volume  float64 `yaml:"volume" env:"VOLUME"`
	Falloff float64 `yaml:"falloff" env:"FALLOFF"`
	// NominalLength is reported for sounds that were not loaded when
	// playing silently.
	NominalLength Duration `yaml:"nominal_length" env:"NOMINAL_LENGTH"`
}

// WindowConfig sizes the viewer.
type WindowConfig struct {
	Width  int `yaml:"width" env:"WIDTH"`
	Height int `yaml:"height" env:"HEIGHT"`
	Scale  int `yaml:"scale" env:"SCALE"`
	TPS    int `yaml:"tps" env:"TPS"`
}

// UIConfig points at the UI resource root and the chosen style.
type UIConfig struct {
	Root  string `yaml:"root" env:"ROOT"`
	Style string `yaml:"style" env:"STYLE"`
}

// DefaultConfig returns the settings used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{Level: "info"},
		Session: SessionConfig{
			Seed:        1337,
			GameType:    "single",
			BaseDOF:     DOFConfig{Near: 0, Focus: 0, Far: 500},
			PickNear:    -70,
			PickFar:     70,
			DOFSettle:   Duration(200 * time.Millisecond),
			Luminosity:  1,
			IntroLength: Duration(3 * time.Second),
		},
		Environment: EnvironmentConfig{
			Preset: "meadow",
			Mode:   "cycle",
		},
		Audio: AudioConfig{
			Enabled:       false,
			Dir:           "sounds",
			Volume:        0.8,
			Falloff:       60,
			NominalLength: Duration(2 * time.Second),
		},
		Window: WindowConfig{Width: 160, Height: 120, Scale: 4, TPS: 60},
		UI:     UIConfig{Root: "ui", Style: "default"},
	}
}

// Load reads path, writing the defaults there first when it does not exist.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		if err := Save(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to save config file: %w", err)
		}
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// Save writes cfg as YAML, creating parent directories as needed.
func Save(path string, cfg *Config) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	header := []byte("# zonefx configuration\n# Durations accept Go syntax (500ms, 2s); bare numbers are milliseconds.\n\n")
	return os.WriteFile(path, append(header, data...), 0o644)
}

// ApplyEnv overrides fields from ZONEFX_* variables, e.g. ZONEFX_LOG_LEVEL or
// ZONEFX_SESSION_DOF_FAR.
func (c *Config) ApplyEnv() error {
	if err := env.ParseWithOptions(c, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate rejects settings the rest of the program cannot run with.
func (c *Config) Validate() error {
	var problems []string
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		problems = append(problems, "window size must be positive")
	}
	if c.Window.Scale <= 0 {
		problems = append(problems, "window scale must be positive")
	}
	if c.Window.TPS <= 0 {
		problems = append(problems, "window tps must be positive")
	}
	if c.Session.DOFSettle <= 0 {
		problems = append(problems, "session dof_settle must be positive")
	}
	if c.Environment.Weight < 0 || c.Environment.Weight > 1 {
		problems = append(problems, "environment weight must be within [0, 1]")
	}
	switch c.Environment.Mode {
	case "cycle", "fixed":
	default:
		problems = append(problems, fmt.Sprintf("environment mode %q must be cycle or fixed", c.Environment.Mode))
	}
	if c.Environment.Preset == "" && c.Environment.File == "" {
		problems = append(problems, "environment needs a preset or a file")
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		problems = append(problems, "audio volume must be within [0, 1]")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}
