// Package config resolves chordpdf settings from defaults, an optional YAML
// file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/fmueller/chordpdf/internal/platform"
	"github.com/goccy/go-yaml"
)

const (
	DefaultInterpreter = "perl"
	DefaultTimeout     = 2 * time.Minute
)

type Config struct {
	Interpreter string        `env:"CHORDPDF_INTERPRETER"`
	Script      string        `env:"CHORDPDF_SCRIPT"`
	Home        string        `env:"CHORDPRO_HOME"`
	Timeout     time.Duration `env:"CHORDPDF_TIMEOUT"`
	TempDir     string        `env:"CHORDPDF_TEMP_DIR"`
}

// fileConfig is the on-disk shape. Timeout stays a string so "90s" style
// values are parsed the same way as in the environment.
type fileConfig struct {
	Interpreter string `yaml:"interpreter,omitempty"`
	Script      string `yaml:"script,omitempty"`
	Home        string `yaml:"home,omitempty"`
	Timeout     string `yaml:"timeout,omitempty"`
	TempDir     string `yaml:"tempDir,omitempty"`
}

func Default() Config {
	return Config{
		Interpreter: DefaultInterpreter,
		Timeout:     DefaultTimeout,
	}
}

// Load builds the configuration. An empty path means the per-user default
// location, which may be absent; an explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		defaultPath, err := platform.DefaultConfigPath()
		if err == nil {
			path = defaultPath
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := cfg.merge(data); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist) && !explicit:
		default:
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	if strings.TrimSpace(cfg.Interpreter) == "" {
		cfg.Interpreter = DefaultInterpreter
	}
	if cfg.Timeout < 0 {
		return Config{}, fmt.Errorf("timeout must not be negative: %s", cfg.Timeout)
	}

	return cfg, nil
}

func (c *Config) merge(data []byte) error {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}

	var fc fileConfig
	if err := yaml.UnmarshalWithOptions(data, &fc, yaml.Strict()); err != nil {
		return err
	}

	if fc.Interpreter != "" {
		c.Interpreter = fc.Interpreter
	}
	if fc.Script != "" {
		c.Script = fc.Script
	}
	if fc.Home != "" {
		c.Home = fc.Home
	}
	if fc.TempDir != "" {
		c.TempDir = fc.TempDir
	}
	if fc.Timeout != "" {
		timeout, err := time.ParseDuration(fc.Timeout)
		if err != nil {
			return fmt.Errorf("timeout: %w", err)
		}
		c.Timeout = timeout
	}
	return nil
}

// ResolveScript picks the chordpro script: an explicit path first, then the
// script inside Home, then a distribution installed next to executable.
// It returns "" when nothing is configured.
func (c Config) ResolveScript(executable string) string {
	if script := strings.TrimSpace(c.Script); script != "" {
		return script
	}
	if home := strings.TrimSpace(c.Home); home != "" {
		return platform.ScriptInHome(home)
	}
	if executable != "" {
		if found, ok := platform.FindSiblingScript(executable); ok {
			return found
		}
	}
	return ""
}

// Marshal renders the configuration in the file format.
func (c Config) Marshal() ([]byte, error) {
	fc := fileConfig{
		Interpreter: c.Interpreter,
		Script:      c.Script,
		Home:        c.Home,
		Timeout:     c.Timeout.String(),
		TempDir:     c.TempDir,
	}
	return yaml.Marshal(fc)
}
