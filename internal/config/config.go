package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Opeoluwa-Osho/minesweeper/internal/mines"
)

type Duration struct{ time.Duration }

// [Duration] implements [json.Marshaler]
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
		return nil
	case string:
		var err error
		d.Duration, err = time.ParseDuration(value)
		return err
	default:
		return errors.New("invalid duration")
	}
}

type LogFileConfig struct {
	Path       string `json:"path"`
	MaxSizeMB  int    `json:"max_size_mb"`
	MaxBackups int    `json:"max_backups"`
	MaxAgeDays int    `json:"max_age_days"`
}

type SessionConfig struct {
	IdleTimeout   Duration `json:"idle_timeout"`
	SweepInterval Duration `json:"sweep_interval"`
}

type JwtConfig struct {
	Secret        string   `json:"secret"`
	TokenLifetime Duration `json:"token_lifetime"`
}

type Config struct {
	Mode            string        `json:"mode"`
	Addr            string        `json:"addr"`
	ShutdownTimeout Duration      `json:"shutdown_timeout"`
	AllowedOrigins  []string      `json:"allowed_origins"`
	Game            mines.Params  `json:"game"`
	Session         SessionConfig `json:"session"`
	Jwt             JwtConfig     `json:"jwt"`
	LogFile         LogFileConfig `json:"log_file"`
}

// Default is a 10x10 board with 10 mines, the only board the server hosts.
func Default() Config {
	return Config{
		Mode:            "development",
		Addr:            ":8080",
		ShutdownTimeout: Duration{15 * time.Second},
		Game:            mines.Params{Rows: 10, Cols: 10, Mines: 10},
		Session: SessionConfig{
			IdleTimeout:   Duration{time.Hour},
			SweepInterval: Duration{time.Minute},
		},
		Jwt: JwtConfig{
			TokenLifetime: Duration{24 * time.Hour},
		},
		LogFile: LogFileConfig{
			MaxSizeMB:  50,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// Read overlays the JSON file at path on top of config. Keys missing from
// the file keep their current values.
func Read(path string, config *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("unable to read config %s: %w", path, err)
	}
	if err := json.Unmarshal(b, config); err != nil {
		return fmt.Errorf("unable to parse config %s: %w", path, err)
	}
	return nil
}

// LoadEnv applies MINES_* environment overrides.
func (c *Config) LoadEnv() {
	if mode, ok := os.LookupEnv("MINES_MODE"); ok {
		c.Mode = mode
	}
	if addr, ok := os.LookupEnv("MINES_ADDR"); ok {
		c.Addr = addr
	}
	if secret, ok := os.LookupEnv("MINES_JWT_SECRET"); ok {
		c.Jwt.Secret = secret
	}
}

func (c Config) Validate() error {
	var errs []error
	if c.Mode != "development" && c.Mode != "production" {
		errs = append(errs, fmt.Errorf(`mode must be "development" or "production", got %q`, c.Mode))
	}
	if c.Addr == "" {
		errs = append(errs, errors.New("addr is not set"))
	}
	if err := c.Game.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("game: %w", err))
	}
	if c.Session.IdleTimeout.Duration <= 0 {
		errs = append(errs, errors.New("session.idle_timeout must be positive"))
	}
	if c.Session.SweepInterval.Duration <= 0 {
		errs = append(errs, errors.New("session.sweep_interval must be positive"))
	}
	if c.Jwt.TokenLifetime.Duration <= 0 {
		errs = append(errs, errors.New("jwt.token_lifetime must be positive"))
	}
	if c.Production() && c.Jwt.Secret == "" {
		errs = append(errs, errors.New("jwt.secret is required in production"))
	}
	return errors.Join(errs...)
}

func (c Config) Fields() logrus.Fields {
	return map[string]any{
		"mode":                   c.Mode,
		"addr":                   c.Addr,
		"shutdown_timeout":       c.ShutdownTimeout.String(),
		"allowed_origins":        c.AllowedOrigins,
		"game":                   c.Game.String(),
		"session_idle_timeout":   c.Session.IdleTimeout.String(),
		"session_sweep_interval": c.Session.SweepInterval.String(),
		"jwt_secret_set":         c.Jwt.Secret != "",
		"jwt_token_lifetime":     c.Jwt.TokenLifetime.String(),
		"log_file":               c.LogFile.Path,
	}
}

func (c Config) Production() bool {
	return c.Mode == "production"
}

func (c Config) Development() bool {
	return c.Mode != "production"
}
