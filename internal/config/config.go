// Package config loads the kaoto configuration file.
//
// The file is TOML and lives at $XDG_CONFIG_HOME/kaoto/config.toml unless a
// path is given explicitly. Every key is optional:
//
//	[log]
//	level = "debug"
//
//	[cache]
//	backend = "redis"       # file | redis | none
//	redis_addr = "localhost:6379"
//	ttl = "12h"
//
//	[view]
//	row_height = 24
//	panel_width = 320
//
//	[icons]
//	log = "eip/log-custom"
//
//	[server]
//	addr = ":8080"
//
// Command-line flags override the file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	kerrors "github.com/Ortofta/kaoto/pkg/errors"
	"github.com/Ortofta/kaoto/pkg/icons"
	"github.com/Ortofta/kaoto/pkg/links"
)

const (
	appName  = "kaoto"
	fileName = "config.toml"
)

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

var validate = validator.New()

// Config is the decoded configuration file.
type Config struct {
	Log    LogConfig         `toml:"log"`
	Cache  CacheConfig       `toml:"cache"`
	View   ViewConfig        `toml:"view"`
	Icons  map[string]string `toml:"icons" validate:"dive,keys,required,endkeys,required"`
	Server ServerConfig      `toml:"server"`
}

type LogConfig struct {
	Level string `toml:"level" validate:"omitempty,oneof=debug info warn error"`
}

type CacheConfig struct {
	Backend   string   `toml:"backend" validate:"oneof=file redis none"`
	Dir       string   `toml:"dir"`
	TTL       Duration `toml:"ttl"`
	RedisAddr string   `toml:"redis_addr" validate:"required_if=Backend redis,omitempty,hostname_port"`
}

// ViewConfig holds the tree view geometry. Zero values take the defaults of
// [links.DefaultViewConfig].
type ViewConfig struct {
	RowHeight  float64 `toml:"row_height" validate:"gte=0"`
	Indent     float64 `toml:"indent" validate:"gte=0"`
	PanelWidth float64 `toml:"panel_width" validate:"gte=0"`
	PanelGap   float64 `toml:"panel_gap" validate:"gte=0"`
}

type ServerConfig struct {
	Addr string `toml:"addr" validate:"required"`
}

// Duration is a time.Duration written as a string ("36h", "90m").
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	if v < 0 {
		return fmt.Errorf("negative duration %q", text)
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Log:    LogConfig{Level: "info"},
		Cache:  CacheConfig{Backend: BackendFile},
		Server: ServerConfig{Addr: ":8080"},
	}
}

// Path returns the default config file location.
func Path() (string, error) {
	if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		return filepath.Join(home, appName, fileName), nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName, fileName), nil
}

// Load reads the config file at path. An empty path means the default
// location, where a missing file is not an error; an explicit path must
// exist.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := Path()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return Default(), nil
		}
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, kerrors.Wrap(kerrors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML on top of the defaults and validates the result.
// Unknown keys are rejected so typos do not pass silently.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, kerrors.Wrap(kerrors.ErrCodeInvalidConfig, err, "decode config")
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return Config{}, kerrors.New(kerrors.ErrCodeInvalidConfig, "unknown key %q", undec[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the struct tags.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// ViewConfig returns the tree view geometry with defaults filled in.
func (c Config) ViewConfig() links.ViewConfig {
	v := links.DefaultViewConfig()
	if c.View.RowHeight > 0 {
		v.RowHeight = c.View.RowHeight
	}
	if c.View.Indent > 0 {
		v.Indent = c.View.Indent
	}
	if c.View.PanelWidth > 0 {
		v.PanelWidth = c.View.PanelWidth
	}
	if c.View.PanelGap > 0 {
		v.PanelGap = c.View.PanelGap
	}
	return v
}

// IconResolver returns the default icon table with the configured overrides.
func (c Config) IconResolver() icons.Resolver {
	if len(c.Icons) == 0 {
		return icons.Default
	}
	overrides := make(map[string]icons.Ref, len(c.Icons))
	for kind, ref := range c.Icons {
		overrides[kind] = icons.Ref(ref)
	}
	return icons.NewTableResolver(overrides)
}

func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return kerrors.Wrap(kerrors.ErrCodeInvalidConfig, err, "validate config")
	}
	e := verrs[0]
	field := e.Namespace()
	switch e.Tag() {
	case "required", "required_if":
		return kerrors.New(kerrors.ErrCodeInvalidConfig, "%s: field is required", field)
	case "oneof":
		return kerrors.New(kerrors.ErrCodeInvalidConfig, "%s: must be one of [%s], got %q", field, e.Param(), e.Value())
	case "gte":
		return kerrors.New(kerrors.ErrCodeInvalidConfig, "%s: must be at least %s", field, e.Param())
	case "hostname_port":
		return kerrors.New(kerrors.ErrCodeInvalidConfig, "%s: want host:port, got %q", field, e.Value())
	default:
		return kerrors.New(kerrors.ErrCodeInvalidConfig, "%s: validation failed (%s)", field, e.Tag())
	}
}
