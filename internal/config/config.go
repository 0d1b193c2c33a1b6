package config

import (
	"bytes"
	"fmt"
	"net/url"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"hatchlog/internal/app/errors"
)

// Config represents the application configuration
type Config struct {
	API     API     `yaml:"api" mapstructure:"api"`
	Stream  Stream  `yaml:"stream" mapstructure:"stream"`
	Health  Health  `yaml:"health" mapstructure:"health"`
	Filter  Filter  `yaml:"filter" mapstructure:"filter"`
	Logging Logging `yaml:"logging" mapstructure:"logging"`
	Bus     Bus     `yaml:"bus" mapstructure:"bus"`
}

// API holds the address of the hatch daemon control API
type API struct {
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// Stream configures the live log tail
type Stream struct {
	Path              string        `yaml:"path" mapstructure:"path"`
	Buffer            int           `yaml:"buffer" mapstructure:"buffer"`
	ReconnectDelay    time.Duration `yaml:"reconnect_delay" mapstructure:"reconnect_delay"`
	MaxReconnectDelay time.Duration `yaml:"max_reconnect_delay" mapstructure:"max_reconnect_delay"`
	IdleTimeout       time.Duration `yaml:"idle_timeout" mapstructure:"idle_timeout"`
}

// Health configures the health snapshot poller
type Health struct {
	Path     string        `yaml:"path" mapstructure:"path"`
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`
	Timeout  time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// Filter holds the initial view filter
type Filter struct {
	Levels []string `yaml:"levels" mapstructure:"levels"`
	Search string   `yaml:"search" mapstructure:"search"`
}

// Logging configures the application's own logger
type Logging struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Bus configures subscriber channel sizes
type Bus struct {
	Buffer int `yaml:"buffer" mapstructure:"buffer"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.API.BaseURL = DefaultBaseURL

	cfg.Stream.Path = DefaultStreamPath
	cfg.Stream.Buffer = DefaultStreamBuffer
	cfg.Stream.ReconnectDelay = DefaultReconnectDelay

	cfg.Health.Path = DefaultHealthPath
	cfg.Health.Interval = DefaultHealthInterval
	cfg.Health.Timeout = DefaultHealthTimeout

	cfg.Filter.Levels = slices.Clone(Levels)

	cfg.Logging.Level = DefaultLogLevel
	cfg.Logging.Format = DefaultLogFormat

	cfg.Bus.Buffer = DefaultBusBuffer

	return cfg
}

// Load loads the configuration from hatchlog.yaml in the working directory
func Load() (*Config, error) {
	return LoadFile(FileName)
}

// LoadFile loads the configuration from the given path, the environment and an optional .env file
func LoadFile(path string) (*Config, error) {
	if err := godotenv.Load(EnvFile); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %w", errors.ErrFailedToLoadEnv, err)
	}

	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, cfg)

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, errors.ErrFailedToReadConfig
	}

	if len(data) > 0 {
		if err := checkDocument(data); err != nil {
			return nil, errors.ErrFailedToParseConfig
		}

		if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
			return nil, errors.ErrFailedToReadConfig
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.ErrFailedToParseConfig
	}

	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrInvalidConfig, err)
	}

	return cfg, nil
}

// Marshal renders the configuration as yaml
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// StreamURL returns the absolute log stream endpoint
func (c *Config) StreamURL() string {
	return strings.TrimRight(c.API.BaseURL, "/") + c.Stream.Path
}

// HealthURL returns the absolute health snapshot endpoint
func (c *Config) HealthURL() string {
	return strings.TrimRight(c.API.BaseURL, "/") + c.Health.Path
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.validateAPI(); err != nil {
		return err
	}

	if err := c.validateStream(); err != nil {
		return err
	}

	if err := c.validateHealth(); err != nil {
		return err
	}

	if err := c.validateFilter(); err != nil {
		return err
	}

	if c.Bus.Buffer <= 0 {
		return errors.ErrInvalidBusBuffer
	}

	return nil
}

// validateAPI validates the daemon address
func (c *Config) validateAPI() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return errors.ErrInvalidBaseURL
	}

	return nil
}

// validateStream validates tail settings
func (c *Config) validateStream() error {
	if !strings.HasPrefix(c.Stream.Path, "/") {
		return errors.ErrInvalidStreamPath
	}

	if c.Stream.Buffer <= 0 {
		return errors.ErrInvalidBufferSize
	}

	if c.Stream.ReconnectDelay <= 0 {
		return errors.ErrInvalidReconnectDelay
	}

	if c.Stream.MaxReconnectDelay < 0 {
		return errors.ErrInvalidMaxReconnect
	}

	if c.Stream.IdleTimeout < 0 {
		return errors.ErrInvalidIdleTimeout
	}

	return nil
}

// validateHealth validates poller settings
func (c *Config) validateHealth() error {
	if !strings.HasPrefix(c.Health.Path, "/") {
		return errors.ErrInvalidHealthPath
	}

	if c.Health.Interval <= 0 {
		return errors.ErrInvalidHealthInterval
	}

	if c.Health.Timeout <= 0 {
		return errors.ErrInvalidHealthTimeout
	}

	return nil
}

// validateFilter validates the initial level filter
func (c *Config) validateFilter() error {
	for _, level := range c.Filter.Levels {
		if !slices.Contains(Levels, level) {
			return fmt.Errorf("%w: '%s' (must be one of %s)", errors.ErrInvalidFilterLevel, level, strings.Join(Levels, ", "))
		}
	}

	return nil
}

// normalize trims and lowercases free-form values
func (c *Config) normalize() {
	c.API.BaseURL = strings.TrimSpace(c.API.BaseURL)
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))

	for i, level := range c.Filter.Levels {
		c.Filter.Levels[i] = strings.ToLower(strings.TrimSpace(level))
	}
}

// setDefaults registers every key so environment overrides reach Unmarshal
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("api.base_url", cfg.API.BaseURL)

	v.SetDefault("stream.path", cfg.Stream.Path)
	v.SetDefault("stream.buffer", cfg.Stream.Buffer)
	v.SetDefault("stream.reconnect_delay", cfg.Stream.ReconnectDelay)
	v.SetDefault("stream.max_reconnect_delay", cfg.Stream.MaxReconnectDelay)
	v.SetDefault("stream.idle_timeout", cfg.Stream.IdleTimeout)

	v.SetDefault("health.path", cfg.Health.Path)
	v.SetDefault("health.interval", cfg.Health.Interval)
	v.SetDefault("health.timeout", cfg.Health.Timeout)

	v.SetDefault("filter.levels", cfg.Filter.Levels)
	v.SetDefault("filter.search", cfg.Filter.Search)

	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)

	v.SetDefault("bus.buffer", cfg.Bus.Buffer)
}

// checkDocument rejects files whose top level is not a mapping
func checkDocument(data []byte) error {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return err
	}

	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil
	}

	if root.Content[0].Kind != yaml.MappingNode {
		return fmt.Errorf("top level must be a mapping, got kind %d", root.Content[0].Kind)
	}

	return nil
}
