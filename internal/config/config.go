package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type Config struct {
	//===============
	// Credential
	//===============
	// Path of the file holding the session cookie string.
	// The file content is trimmed of surrounding whitespace before use.
	cookiePath string

	//===============
	// Cache
	//===============
	// Override for the cache root directory. Empty means the
	// user cache directory resolved by the scratch provider.
	cacheDir string

	//===============
	// Fetch
	//===============
	// Maximum time of a single fetch request
	timeout time.Duration
	// User agent that will be used in the request header. In raw string
	userAgent string

	//===============
	// Observability
	//===============
	// logrus level name ("debug", "info", "warn", "error")
	logLevel string
}

type configDTO struct {
	CookiePath string        `json:"cookiePath,omitempty"`
	CacheDir   string        `json:"cacheDir,omitempty"`
	Timeout    time.Duration `json:"timeout,omitempty"`
	UserAgent  string        `json:"userAgent,omitempty"`
	LogLevel   string        `json:"logLevel,omitempty"`
}

func newConfigFromDTO(dto configDTO) (Config, error) {

	// Start with default config
	cfg, err := WithDefault().Build()
	if err != nil {
		return Config{}, err
	}

	// Only override where a non-zero value is provided
	if dto.CookiePath != "" {
		cfg.cookiePath = dto.CookiePath
	}
	if dto.CacheDir != "" {
		cfg.cacheDir = dto.CacheDir
	}
	if dto.Timeout != 0 {
		cfg.timeout = dto.Timeout
	}
	if dto.UserAgent != "" {
		cfg.userAgent = dto.UserAgent
	}
	if dto.LogLevel != "" {
		cfg.logLevel = dto.LogLevel
	}

	return cfg, nil
}

func WithConfigFile(path string) (Config, error) {
	_, err := os.Stat(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrFileDoesNotExist, err.Error())
	}
	configContent, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrReadConfigFail, err.Error())
	}
	cfgDTO := configDTO{}

	err = json.Unmarshal(configContent, &cfgDTO)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrConfigParsingFail, err.Error())
	}

	cfg, err := newConfigFromDTO(cfgDTO)
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// WithDefault creates a new Config with default values for all fields.
func WithDefault() *Config {
	defaultConfig := Config{
		cookiePath: "my.cookie",
		cacheDir:   "",
		timeout:    time.Second * 10,
		userAgent:  "aoc-cache/1.0",
		logLevel:   "info",
	}
	return &defaultConfig
}

func (c *Config) WithCookiePath(path string) *Config {
	c.cookiePath = path
	return c
}

func (c *Config) WithCacheDir(dir string) *Config {
	c.cacheDir = dir
	return c
}

func (c *Config) WithTimeout(timeout time.Duration) *Config {
	c.timeout = timeout
	return c
}

func (c *Config) WithUserAgent(agent string) *Config {
	c.userAgent = agent
	return c
}

func (c *Config) WithLogLevel(level string) *Config {
	c.logLevel = level
	return c
}

func (c *Config) Build() (Config, error) {
	if c.cookiePath == "" {
		return Config{}, fmt.Errorf("%w: cookiePath cannot be empty", ErrInvalidConfig)
	}
	if c.timeout <= 0 {
		return Config{}, fmt.Errorf("%w: timeout must be positive", ErrInvalidConfig)
	}
	return *c, nil
}

func (c Config) CookiePath() string {
	return c.cookiePath
}

func (c Config) CacheDir() string {
	return c.cacheDir
}

func (c Config) Timeout() time.Duration {
	return c.timeout
}

func (c Config) UserAgent() string {
	return c.userAgent
}

func (c Config) LogLevel() string {
	return c.logLevel
}
