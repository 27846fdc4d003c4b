// Package config loads launchdash settings from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/spektr-org/launchdash/render"
)

// Config is the complete service configuration.
type Config struct {
	DataPath    string        `yaml:"data_path"`
	SuccessCode string        `yaml:"success_code"`
	Listen      string        `yaml:"listen"`
	RangeStep   float64       `yaml:"range_step"`
	Log         LogConfig     `yaml:"log"`
	Sessions    SessionConfig `yaml:"sessions"`
	RateLimit   RateConfig    `yaml:"rate_limit"`
	Render      render.Size   `yaml:"render"`
}

// LogConfig selects the slog level and handler.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "text" or "json"
}

// SessionConfig controls per-user control state.
type SessionConfig struct {
	IdleTimeout time.Duration `yaml:"idle_timeout"`
	CookieName  string        `yaml:"cookie_name"`
}

// RateConfig limits requests per client address. RPS 0 disables limiting.
type RateConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		DataPath:    "data/spacex_launch_dash.csv",
		SuccessCode: "1",
		Listen:      "127.0.0.1:8050",
		RangeStep:   1000,
		Log:         LogConfig{Level: "info", Format: "text"},
		Sessions:    SessionConfig{IdleTimeout: 30 * time.Minute, CookieName: "launchdash_session"},
		RateLimit:   RateConfig{RPS: 20, Burst: 40},
		Render:      render.DefaultSize,
	}
}

// Load reads path over the defaults. Keys absent from the file keep their
// default values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	if c.DataPath == "" {
		errs = append(errs, errors.New("data_path is required"))
	}
	if c.Listen == "" {
		errs = append(errs, errors.New("listen is required"))
	}
	if c.RangeStep <= 0 {
		errs = append(errs, fmt.Errorf("range_step must be positive, got %v", c.RangeStep))
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		errs = append(errs, fmt.Errorf("log.format must be text or json, got %q", c.Log.Format))
	}
	if c.Sessions.IdleTimeout <= 0 {
		errs = append(errs, fmt.Errorf("sessions.idle_timeout must be positive, got %s", c.Sessions.IdleTimeout))
	}
	if c.Sessions.CookieName == "" {
		errs = append(errs, errors.New("sessions.cookie_name is required"))
	}
	if c.RateLimit.RPS < 0 || c.RateLimit.Burst < 0 {
		errs = append(errs, errors.New("rate_limit values must not be negative"))
	}
	if c.RateLimit.RPS > 0 && c.RateLimit.Burst == 0 {
		errs = append(errs, errors.New("rate_limit.burst must be positive when rps is set"))
	}
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		errs = append(errs, fmt.Errorf("render size must be positive, got %dx%d", c.Render.Width, c.Render.Height))
	}
	return errors.Join(errs...)
}
