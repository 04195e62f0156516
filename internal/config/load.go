package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	foundationerrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/logfields"
)

// DefaultFile is the configuration file name looked up when none is given.
const DefaultFile = "docnav.yaml"

// Load reads the configuration file at configPath.
//
// Environment files (.env, .env.local) next to the configuration are loaded
// first without overriding variables that are already set, then ${VAR}
// references are expanded. The result is normalized, completed with defaults
// and validated.
func Load(configPath string) (*Config, error) {
	dir := filepath.Dir(configPath)
	if err := loadEnvFiles(dir); err != nil {
		slog.Warn("Environment file could not be loaded", logfields.Error(err))
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, foundationerrors.ConfigError("configuration file not found").
				WithCause(ErrConfigNotFound).
				WithContext("path", configPath).
				Build()
		}
		return nil, foundationerrors.FileSystemError("failed to read configuration file").
			WithCause(err).
			WithContext("path", configPath).
			Build()
	}

	cfg, err := Parse([]byte(os.ExpandEnv(string(data))))
	if err != nil {
		if ce, ok := foundationerrors.AsClassified(err); ok {
			return nil, ce.WithContext("path", configPath)
		}
		return nil, err
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = dir
	}
	cfg.root = abs
	return cfg, nil
}

// Parse decodes, normalizes, defaults and validates configuration data.
// Environment expansion is the caller's concern.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, foundationerrors.ConfigError("failed to parse configuration").
			WithCause(fmt.Errorf("%w: %w", ErrConfigParse, err)).
			Build()
	}

	res := Normalize(&cfg)
	for _, w := range res.Warnings {
		slog.Warn("Configuration normalized", slog.String("detail", w))
	}
	ApplyDefaults(&cfg)
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadEnvFiles(dir string) error {
	var files []string
	for _, name := range []string{".env", ".env.local"} {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			files = append(files, p)
		}
	}
	if len(files) == 0 {
		return nil
	}
	if err := godotenv.Load(files...); err != nil {
		return err
	}
	slog.Debug("Loaded environment files", slog.Any("files", files))
	return nil
}
