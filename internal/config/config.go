package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	CORS    CORSConfig    `yaml:"cors"`
	Display DisplayConfig `yaml:"display"`
	History HistoryConfig `yaml:"history"`
	Log     LogConfig     `yaml:"log"`
}

// ServerConfig contains HTTP listener settings
type ServerConfig struct {
	Host            string   `yaml:"host"`
	Port            int      `yaml:"port"`
	ShutdownTimeout Duration `yaml:"shutdown_timeout"` // Timeout for graceful stop
}

// CORSConfig lists origins allowed to call the API from a browser
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// DisplayConfig contains LED matrix settings
type DisplayConfig struct {
	SPIPort    string   `yaml:"spi_port"`   // periph.io port name, empty = first available
	Brightness float64  `yaml:"brightness"` // Initial scale factor, 0 = default (0.5)
	Rotation   int      `yaml:"rotation"`   // 0, 90, 180 or 270
	AutoOff    Duration `yaml:"auto_off"`   // Clear display this long after a write; negative disables
}

// HistoryConfig contains grid history settings
type HistoryConfig struct {
	Size int `yaml:"size"` // Number of grids to keep, negative disables
}

// LogConfig contains logging settings
type LogConfig struct {
	Level   string `yaml:"level"`
	UseJSON bool   `yaml:"json"`
	Colors  bool   `yaml:"colors"`
}

// GetLevel returns the log level with default
func (c *LogConfig) GetLevel() string {
	if c.Level == "" {
		return "info"
	}
	return c.Level
}

// Addr returns the host:port pair to listen on
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Duration is a wrapper around time.Duration for YAML unmarshalling
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// Duration returns the underlying time.Duration
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// Default returns the configuration used when no config file is present.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads and parses the configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Expand environment variables
	expanded := expandEnvVars(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)

	switch cfg.Display.Rotation {
	case 0, 90, 180, 270:
	default:
		return nil, fmt.Errorf("display.rotation must be one of 0, 90, 180, 270 (got %d)", cfg.Display.Rotation)
	}
	if cfg.Display.Brightness < 0 || cfg.Display.Brightness > 1 {
		return nil, fmt.Errorf("display.brightness must be between 0 and 1 (got %g)", cfg.Display.Brightness)
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	// Server defaults
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 5000
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = Duration(5 * time.Second)
	}

	// Display defaults
	if cfg.Display.Brightness == 0 {
		cfg.Display.Brightness = 0.5
	}
	if cfg.Display.AutoOff == 0 {
		cfg.Display.AutoOff = Duration(10 * time.Second)
	}

	// History defaults
	if cfg.History.Size == 0 {
		cfg.History.Size = 10
	}
}

// expandEnvVars expands environment variables in the format ${VAR} or ${VAR:default}
func expandEnvVars(input string) string {
	// Match ${VAR} or ${VAR:default}
	re := regexp.MustCompile(`\$\{([^}:]+)(?::([^}]*))?\}`)

	return re.ReplaceAllStringFunc(input, func(match string) string {
		parts := re.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		varName := parts[1]
		defaultVal := ""
		if len(parts) >= 3 {
			defaultVal = parts[2]
		}

		if val := os.Getenv(varName); val != "" {
			return val
		}
		return defaultVal
	})
}
