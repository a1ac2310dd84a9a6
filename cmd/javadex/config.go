package main

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/fwojciec/javadex"
	"gopkg.in/yaml.v3"
)

// Config holds settings read from the YAML config file.
type Config struct {
	DB       string      `yaml:"db"`
	LogLevel string      `yaml:"log_level"` // debug, info, warn, error (default: warn)
	Check    CheckConfig `yaml:"check"`
	HTTP     HTTPConfig  `yaml:"http"`
	Serve    ServeConfig `yaml:"serve"`
}

// CheckConfig holds anchor checker settings.
type CheckConfig struct {
	Concurrency int     `yaml:"concurrency"`
	RPS         float64 `yaml:"rps"` // per-host requests per second
}

// HTTPConfig holds HTTP settings. Addr is the API listen address; Timeout
// bounds each outgoing fetch.
type HTTPConfig struct {
	Addr    string        `yaml:"addr"`
	Timeout time.Duration `yaml:"timeout"`
}

// ServeConfig holds API server settings.
type ServeConfig struct {
	ReadTimeout time.Duration `yaml:"read_timeout"`
}

// Defaults applied by ApplyDefaults.
const (
	defaultLogLevel    = "warn"
	defaultConcurrency = 10
	defaultRPS         = 5
	defaultAddr        = "127.0.0.1:8080"
	defaultTimeout     = 10 * time.Second
	defaultReadTimeout = 10 * time.Second
)

var envVarRe = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// LoadConfig reads the config file at path. A missing file is not an error.
// Environment variables override the file.
func LoadConfig(path string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(filepath.Clean(path))
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return Config{}, javadex.Errorf(javadex.EINVALID, "failed to read config %s: %v", path, err)
	default:
		if err := yaml.Unmarshal(expandEnvVars(data), &cfg); err != nil {
			return Config{}, javadex.Errorf(javadex.EINVALID, "failed to parse config %s: %v", path, err)
		}
	}

	cfg.ApplyEnv()
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// expandEnvVars substitutes ${VAR} references with environment values.
func expandEnvVars(data []byte) []byte {
	return envVarRe.ReplaceAllFunc(data, func(match []byte) []byte {
		name := envVarRe.FindSubmatch(match)[1]
		return []byte(os.Getenv(string(name)))
	})
}

// ApplyEnv overrides file settings with environment variables.
func (c *Config) ApplyEnv() {
	if path := os.Getenv("JAVADEX_DB"); path != "" {
		c.DB = path
	}
	if level := os.Getenv("JAVADEX_LOG_LEVEL"); level != "" {
		c.LogLevel = level
	}
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.DB == "" {
		c.DB = defaultDBPath()
	}
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
	if c.Check.Concurrency <= 0 {
		c.Check.Concurrency = defaultConcurrency
	}
	if c.Check.RPS == 0 {
		c.Check.RPS = defaultRPS
	}
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = defaultAddr
	}
	if c.HTTP.Timeout <= 0 {
		c.HTTP.Timeout = defaultTimeout
	}
	if c.Serve.ReadTimeout <= 0 {
		c.Serve.ReadTimeout = defaultReadTimeout
	}
}

// Validate returns an error if the config contains invalid values.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return javadex.Errorf(javadex.EINVALID, "invalid log_level %q: must be debug, info, warn or error", c.LogLevel)
	}
	if c.Check.RPS < 0 {
		return javadex.Errorf(javadex.EINVALID, "invalid check.rps %v: must not be negative", c.Check.RPS)
	}
	return nil
}
