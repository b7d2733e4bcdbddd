package app

import (
	"fmt"
	"log/slog"

	"zonefx/internal/audio"
	"zonefx/internal/config"
	"zonefx/internal/core"
	"zonefx/internal/env"
	_ "zonefx/internal/presets"
	"zonefx/internal/session"
	"zonefx/internal/uistyle"
	"zonefx/internal/vmath"
	"zonefx/internal/weather"
)

// Runtime is everything a command needs to drive one session.
type Runtime struct {
	Config  *config.Config
	Session *session.Session
	// Player is nil when sound output is disabled.
	Player *audio.Player
	UIPath string
}

// LoadCatalog reads the configured catalog file, or builds the named preset
// with the given options.
func LoadCatalog(cfg *config.Config, presetOptions map[string]string) (*env.Catalog, error) {
	if cfg.Environment.File != "" {
		return env.Load(cfg.Environment.File)
	}
	return core.Build(cfg.Environment.Preset, presetOptions)
}

// SessionOptions maps the settings file onto session options.
func SessionOptions(cfg *config.Config) (session.Options, error) {
	s := cfg.Session
	gt, err := session.ParseGameType(s.GameType)
	if err != nil {
		return session.Options{}, err
	}
	o := session.DefaultOptions()
	o.Seed = s.Seed
	o.GameType = gt
	o.BaseDOF = vmath.V3(s.BaseDOF.Near, s.BaseDOF.Focus, s.BaseDOF.Far)
	o.PickNear = s.PickNear
	o.PickFar = s.PickFar
	o.DOFSettle = s.DOFSettle.Std()
	o.Luminosity = s.Luminosity
	o.IntroLength = s.IntroLength.Std()
	o.View = core.Size{W: cfg.Window.Width, H: cfg.Window.Height}
	o.Intro = session.IntroOptions{
		AllowIntro:     !s.NoIntro,
		AllowGameIntro: !s.NoGameIntro,
		WaitForKey:     true,
		NewGame:        true,
	}
	if cfg.Environment.Mode == "fixed" {
		o.Blend = &session.Blend{
			Primary:   cfg.Environment.Primary,
			Secondary: cfg.Environment.Secondary,
			Weight:    cfg.Environment.Weight,
		}
	}
	return o, nil
}

// NewAudio returns the speaker-backed player when sound is enabled and the
// sound directory loads, and a silent backend otherwise.
func NewAudio(cfg *config.Config, catalog *env.Catalog, logger *slog.Logger) (weather.Audio, *audio.Player) {
	silent := audio.NewSilent(catalog.SoundLengths(), cfg.Audio.NominalLength.Std())
	if !cfg.Audio.Enabled {
		return silent, nil
	}
	lib := audio.NewLibrary()
	n, err := lib.LoadDir(cfg.Audio.Dir)
	if err != nil || n == 0 {
		logger.Warn("sound output disabled", "dir", cfg.Audio.Dir, "loaded", n, "error", err)
		return silent, nil
	}
	p := audio.NewPlayer(lib)
	p.SetVolume(cfg.Audio.Volume)
	p.SetFalloff(cfg.Audio.Falloff)
	logger.Info("sounds loaded", "dir", cfg.Audio.Dir, "count", n)
	return p, p
}

// ResolveUI returns the UI directory of the configured style, falling back
// to the root when the style is unknown.
func ResolveUI(cfg *config.Config, logger *slog.Logger) string {
	styles, err := uistyle.Scan(cfg.UI.Root)
	if err != nil {
		logger.Warn("ui styles unavailable", "root", cfg.UI.Root, "error", err)
		return cfg.UI.Root
	}
	path, err := styles.Resolve(cfg.UI.Style)
	if err != nil {
		logger.Warn("ui style not found", "style", cfg.UI.Style, "error", err)
		return cfg.UI.Root
	}
	return path
}

// Build validates cfg and assembles a running session.
func Build(cfg *config.Config, presetOptions map[string]string, logger *slog.Logger) (*Runtime, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	catalog, err := LoadCatalog(cfg, presetOptions)
	if err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}
	opts, err := SessionOptions(cfg)
	if err != nil {
		return nil, err
	}
	out, player := NewAudio(cfg, catalog, logger)
	s, err := session.New(catalog, opts, session.Deps{Audio: out, Logger: logger})
	if err != nil {
		return nil, err
	}
	return &Runtime{
		Config:  cfg,
		Session: s,
		Player:  player,
		UIPath:  ResolveUI(cfg, logger),
	}, nil
}
