package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/signalnine/scorecard/internal/hub"
)

type Config struct {
	Hub     Hub     `yaml:"hub"`
	Secrets Secrets `yaml:"secrets"`
}

type Hub struct {
	Endpoint string `yaml:"endpoint"`
	Branch   string `yaml:"branch"`
	Private  bool   `yaml:"private"`
}

type Secrets struct {
	EnvFile string `yaml:"env_file"`
}

// Load reads the optional yaml config. A missing file is not an
// error; defaults apply. If the config names a secrets env file its
// variables are loaded into the process environment so the hub token
// can live outside the shell.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Hub: Hub{Endpoint: hub.DefaultEndpoint, Branch: hub.DefaultBranch},
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.Hub.Endpoint == "" {
		cfg.Hub.Endpoint = hub.DefaultEndpoint
	}
	if cfg.Hub.Branch == "" {
		cfg.Hub.Branch = hub.DefaultBranch
	}

	if cfg.Secrets.EnvFile != "" {
		if err := godotenv.Load(cfg.Secrets.EnvFile); err != nil {
			slog.Warn("could not load secrets env file", "file", cfg.Secrets.EnvFile, "error", err)
		}
	}
	return cfg, nil
}
