package app

import (
	"flag"
	"fmt"
	"strings"

	"zonefx/internal/config"
)

// KVList collects repeatable key=value flags.
type KVList []string

func (l *KVList) String() string { return strings.Join(*l, ",") }

// Set implements flag.Value.
func (l *KVList) Set(value string) error {
	if !strings.Contains(value, "=") {
		return fmt.Errorf("expected key=value, got %q", value)
	}
	*l = append(*l, value)
	return nil
}

// Map returns the pairs, later keys overriding earlier ones.
func (l KVList) Map() map[string]string {
	if len(l) == 0 {
		return nil
	}
	out := make(map[string]string, len(l))
	for _, kv := range l {
		k, v, _ := strings.Cut(kv, "=")
		out[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return out
}

// Flags represents the command-line parameters shared by the commands. Flags
// that are set override the config file and the environment.
type Flags struct {
	ConfigPath  string
	EnvFile     string
	Preset      string
	Catalog     string
	Seed        int64
	Scale       int
	TPS         int
	LogLevel    string
	Audio       bool
	NoIntro     bool
	NoGameIntro bool
	GameType    string
	Set         KVList
}

// NewFlags returns Flags populated with defaults matching config.DefaultConfig.
func NewFlags() *Flags {
	d := config.DefaultConfig()
	return &Flags{
		ConfigPath: "zonefx.yaml",
		EnvFile:    ".env",
		Preset:     d.Environment.Preset,
		Seed:       d.Session.Seed,
		Scale:      d.Window.Scale,
		TPS:        d.Window.TPS,
		LogLevel:   d.Log.Level,
		GameType:   d.Session.GameType,
	}
}

// Bind attaches the flags to the provided FlagSet.
func (f *Flags) Bind(fs *flag.FlagSet) {
	fs.StringVar(&f.ConfigPath, "config", f.ConfigPath, "settings file, created with defaults when missing")
	fs.StringVar(&f.EnvFile, "env", f.EnvFile, "dotenv file with ZONEFX_* overrides")
	fs.StringVar(&f.Preset, "preset", f.Preset, "built-in environment catalog")
	fs.StringVar(&f.Catalog, "catalog", f.Catalog, "YAML environment catalog (overrides -preset)")
	fs.Int64Var(&f.Seed, "seed", f.Seed, "seed for session reset")
	fs.IntVar(&f.Scale, "scale", f.Scale, "pixel scale multiplier")
	fs.IntVar(&f.TPS, "tps", f.TPS, "ticks per second")
	fs.StringVar(&f.LogLevel, "log", f.LogLevel, "log level: error, warn, info or debug")
	fs.BoolVar(&f.Audio, "audio", f.Audio, "play sounds through the speaker")
	fs.BoolVar(&f.NoIntro, "nointro", f.NoIntro, "skip every intro sequence")
	fs.BoolVar(&f.NoGameIntro, "nogameintro", f.NoGameIntro, "skip the game-loaded prompt")
	fs.StringVar(&f.GameType, "gametype", f.GameType, "game type name, e.g. single or dm")
	fs.Var(&f.Set, "set", "preset option in key=value form (repeatable)")
}

// Apply copies every flag explicitly given on the command line into cfg.
func (f *Flags) Apply(fs *flag.FlagSet, cfg *config.Config) {
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "preset":
			cfg.Environment.Preset = f.Preset
			cfg.Environment.File = ""
		case "catalog":
			cfg.Environment.File = f.Catalog
		case "seed":
			cfg.Session.Seed = f.Seed
		case "scale":
			cfg.Window.Scale = f.Scale
		case "tps":
			cfg.Window.TPS = f.TPS
		case "log":
			cfg.Log.Level = f.LogLevel
		case "audio":
			cfg.Audio.Enabled = f.Audio
		case "nointro":
			cfg.Session.NoIntro = f.NoIntro
		case "nogameintro":
			cfg.Session.NoGameIntro = f.NoGameIntro
		case "gametype":
			cfg.Session.GameType = f.GameType
		}
	})
}
