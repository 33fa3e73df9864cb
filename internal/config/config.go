package config

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/adrg/xdg"
	"github.com/goccy/go-yaml"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"

	"github.com/Erumpet/focs/internal/script"
	"github.com/Erumpet/focs/internal/utils"
)

const (
	APP_NAME            = "focs"
	CONFIG_FILE_RELPATH = APP_NAME + "/config.yaml"

	DEFAULT_WIDTH     = 1
	DEFAULT_LOG_LEVEL = "info"

	LOG_LEVEL_ENV_VARNAME = "FOCS_LOG_LEVEL"
)

var (
	ErrInvalidConfig = errors.New("invalid configuration")
)

type Config struct {
	//default element width of scripts.
	Width int `yaml:"width"`

	LogLevel string `yaml:"log_level"`

	//if not set colorization depends on the environment.
	Color *bool `yaml:"color"`

	ShouldColorize bool            `yaml:"-"`
	ColorProfile   termenv.Profile `yaml:"-"`

	//path of the loaded file, empty if no configuration file was found.
	Path string `yaml:"-"`
}

// Load searches for the configuration file in the XDG config directories and applies
// the environment overrides. A missing file is not an error.
func Load() (Config, error) {
	path, err := xdg.SearchConfigFile(CONFIG_FILE_RELPATH)
	if err != nil {
		return Parse(nil, os.LookupEnv)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	cfg, err := Parse(data, os.LookupEnv)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// Parse decodes a configuration file (data can be empty) and applies the environment overrides,
// lookupEnv is usually os.LookupEnv.
func Parse(data []byte, lookupEnv func(string) (string, bool)) (Config, error) {
	cfg := Config{
		Width:    DEFAULT_WIDTH,
		LogLevel: DEFAULT_LOG_LEVEL,
	}

	if len(data) != 0 {
		if err := yaml.UnmarshalWithOptions(data, &cfg, yaml.Strict()); err != nil {
			return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}

	if level, ok := lookupEnv(LOG_LEVEL_ENV_VARNAME); ok && level != "" {
		cfg.LogLevel = level
	}

	env := readColorEnv(lookupEnv)
	cfg.ColorProfile = env.profile()

	if cfg.Color != nil && !env.noColor {
		cfg.ShouldColorize = *cfg.Color
		if cfg.ShouldColorize && cfg.ColorProfile == termenv.Ascii {
			cfg.ColorProfile = termenv.ANSI
		}
	} else {
		cfg.ShouldColorize = env.shouldColorize()
	}

	if !cfg.ShouldColorize {
		cfg.ColorProfile = termenv.Ascii
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error

	if !slices.Contains(script.SUPPORTED_WIDTHS, c.Width) {
		errs = append(errs, fmt.Errorf("%w: width: %w", ErrInvalidConfig, script.ErrInvalidWidth))
	}

	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("%w: log_level: %w", ErrInvalidConfig, err))
	}

	return utils.CombineErrors(errs...)
}

// Level returns the zerolog level of LogLevel, it should only be called on a valid configuration.
func (c Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}
