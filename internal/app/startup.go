package app

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"

	"github.com/joho/godotenv"

	"zonefx/internal/config"
	"zonefx/internal/logging"
)

// Startup parses args with the shared flags plus any the caller already bound
// to fset, then layers the settings: file, then .env and ZONEFX_* variables,
// then explicit flags. The configured logger becomes the slog default.
func Startup(fset *flag.FlagSet, args []string, logOut io.Writer) (*config.Config, *Flags, *slog.Logger, error) {
	f := NewFlags()
	f.Bind(fset)
	if err := fset.Parse(args); err != nil {
		return nil, nil, nil, err
	}

	if f.EnvFile != "" {
		if err := godotenv.Load(f.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, nil, nil, fmt.Errorf("load %s: %w", f.EnvFile, err)
		}
	}
	cfg, err := config.Load(f.ConfigPath)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, nil, nil, err
	}
	f.Apply(fset, cfg)

	logger, err := logging.Setup(cfg.Log.Level, logOut)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, f, logger, nil
}
