package main

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/evmtools/t8nkit"
	"github.com/evmtools/t8nkit/internal/logging"
	"github.com/evmtools/t8nkit/pkg/backend"
	"github.com/spf13/cobra"
)

// Config is the optional tools config file: where each backend's binary
// lives, and which backend to use when none is picked on the command line.
type Config struct {
	DefaultBackend string                   `yaml:"default_backend"`
	Backends       map[string]BackendConfig `yaml:"backends"`
}

// BackendConfig overrides one backend's binary location.
type BackendConfig struct {
	Binary string `yaml:"binary"`
}

// LoadConfig reads a YAML tools config. An empty path yields an empty config.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// newTool builds a Tool from the command's persistent flags and the config
// file, with the flag surface taking precedence.
func newTool(cmd *cobra.Command, extra ...t8nkit.Option) (*t8nkit.Tool, error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	id, _ := cmd.Flags().GetString("backend")
	if id == "" {
		id = cfg.DefaultBackend
	}
	var b backend.Backend
	if id == "" {
		b = backend.Default()
	} else {
		b, err = backend.Lookup(id)
		if err != nil {
			return nil, err
		}
	}

	binary, _ := cmd.Flags().GetString("evm-bin")
	if binary == "" {
		if bc, ok := cfg.Backends[string(b.ID)]; ok {
			binary = bc.Binary
		}
	}

	opts := []t8nkit.Option{t8nkit.WithLogger(newLogger(cmd))}
	if binary != "" {
		opts = append(opts, t8nkit.WithBinary(binary))
	}
	opts = append(opts, extra...)

	return t8nkit.New(b, opts...)
}

func newLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelInfo
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = slog.LevelDebug
	}
	return logging.New(level)
}
