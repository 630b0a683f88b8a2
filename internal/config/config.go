package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/vango-dev/animate/internal/errors"
	"github.com/vango-dev/animate/pkg/animate"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "animate.json"

	// DefaultPort is the default demo server port.
	DefaultPort = 3000

	// DefaultHost is the default demo server host.
	DefaultHost = "localhost"

	// DefaultClassName is the animation class used when none is configured.
	DefaultClassName = "flash"
)

// Config represents the complete animate.json configuration.
type Config struct {
	// Animation holds the defaults applied to every wrapped instance.
	Animation AnimationConfig `json:"animation"`

	// Server contains demo server settings.
	Server ServerConfig `json:"server"`

	// Log contains logging settings.
	Log LogConfig `json:"log"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// AnimationConfig mirrors animate.Config in file form.
type AnimationConfig struct {
	ClassName      string `json:"className,omitempty"`
	DurationMs     int64  `json:"durationMs,omitempty"`
	AnimateOnMount bool   `json:"animateOnMount,omitempty"`
	Strategy       string `json:"strategy,omitempty"`
	Precompute     bool   `json:"precompute,omitempty"`
}

// ServerConfig contains demo server settings.
type ServerConfig struct {
	// Host is the host to bind to.
	Host string `json:"host,omitempty"`

	// Port is the port to listen on.
	Port int `json:"port,omitempty"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level,omitempty"`

	// Format is "text" or "json".
	Format string `json:"format,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Animation: AnimationConfig{
			ClassName:  DefaultClassName,
			DurationMs: animate.DefaultDuration.Milliseconds(),
			Strategy:   string(animate.StrategyTimer),
		},
		Server: ServerConfig{
			Host: DefaultHost,
			Port: DefaultPort,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load loads configuration from the animate.json file in the given directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile loads configuration from a specific file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("A010").
				WithDetail("No animate.json found in " + filepath.Dir(path)).
				WithSuggestion("Run 'animate init' to write a default config")
		}
		return nil, errors.New("A011").Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("A011").
			WithDetail("Failed to parse animate.json: " + err.Error()).
			WithSuggestion("Check that animate.json is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// Save writes the config back to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the config to path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("A011").Wrap(err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("A011").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path the config was loaded from or saved to.
func (c *Config) Path() string {
	return c.configPath
}

func (c *Config) applyDefaults() {
	if c.Animation.ClassName == "" {
		c.Animation.ClassName = DefaultClassName
	}
	if c.Animation.Strategy == "" {
		c.Animation.Strategy = string(animate.StrategyTimer)
	}
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if _, err := c.AnimationConfig(); err != nil {
		return err
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return errors.New("A012").
			WithField("server.port").
			WithDetail("Port must be between 0 and 65535")
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		return errors.New("A011").
			WithField("log.format").
			WithDetail("unknown log format " + strconv.Quote(c.Log.Format)).
			WithSuggestion(`use "text" or "json"`)
	}
	return nil
}

// AnimationConfig converts the animation section into a validated
// animate.Config.
func (c *Config) AnimationConfig() (animate.Config, error) {
	if c.Animation.DurationMs < 0 {
		return animate.Config{}, errors.New("A002").
			WithField("animation.durationMs").
			WithDetail("got " + strconv.FormatInt(c.Animation.DurationMs, 10))
	}
	strategy, err := animate.ParseStrategy(c.Animation.Strategy)
	if err != nil {
		return animate.Config{}, err
	}
	cfg := animate.Config{
		ClassName:      c.Animation.ClassName,
		Duration:       time.Duration(c.Animation.DurationMs) * time.Millisecond,
		AnimateOnMount: c.Animation.AnimateOnMount,
		Strategy:       strategy,
		Precompute:     c.Animation.Precompute,
	}.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return animate.Config{}, err
	}
	return cfg, nil
}

// LogLevel parses the configured log level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.Log.Level))); err != nil {
		return level, errors.New("A011").
			WithField("log.level").
			WithDetail(err.Error()).
			WithSuggestion("use debug, info, warn, or error")
	}
	return level, nil
}

// Address returns the server listen address.
func (c *Config) Address() string {
	return c.Server.Host + ":" + strconv.Itoa(c.Server.Port)
}

// Exists checks if animate.json exists in the given directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}
