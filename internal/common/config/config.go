// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	API       APIConfig       `mapstructure:"api"`
	Session   SessionConfig   `mapstructure:"session"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Server    ServerConfig    `mapstructure:"server"`
	Cache     CacheConfig     `mapstructure:"cache"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// APIConfig describes the admin REST backend the console talks to.
type APIConfig struct {
	BaseURL     string `mapstructure:"base_url"`
	LoginPath   string `mapstructure:"login_path"`
	ProfilePath string `mapstructure:"profile_path"`
	RefreshPath string `mapstructure:"refresh_path"`
	Timeout     int    `mapstructure:"timeout"` // milliseconds
}

// URL joins the base URL with an API path.
func (a APIConfig) URL(path string) string {
	return fmt.Sprintf("%s%s", a.BaseURL, path)
}

const (
	SessionBackendFile   = "file"
	SessionBackendRedis  = "redis"
	SessionBackendMemory = "memory"
)

type SessionConfig struct {
	Backend     string `mapstructure:"backend"`
	FilePath    string `mapstructure:"file_path"`
	KeyPrefix   string `mapstructure:"key_prefix"`
	TTL         int    `mapstructure:"ttl"`          // milliseconds, 0 keeps sessions until logout
	IdleTimeout int    `mapstructure:"idle_timeout"` // milliseconds before an in-memory session is evicted
}

type DatabaseConfig struct {
	Redis RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Address     string `mapstructure:"address"`
	Password    string `mapstructure:"password"`
	DB          int    `mapstructure:"db"`
	PoolSize    int    `mapstructure:"pool_size"`
	DialTimeout int    `mapstructure:"dial_timeout"` // milliseconds
}

// ServerConfig holds the console HTTP server settings.
type ServerConfig struct {
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // milliseconds
	WriteTimeout int    `mapstructure:"write_timeout"` // milliseconds
	CookieName   string `mapstructure:"cookie_name"`
	CookieSecure bool   `mapstructure:"cookie_secure"`
	BodyLimit    string `mapstructure:"body_limit"`
}

// Address returns the listen address for the server.
func (s ServerConfig) Address() string {
	return fmt.Sprintf(":%d", s.Port)
}

type CacheConfig struct {
	TTL int `mapstructure:"ttl"` // milliseconds, 0 keeps entries until invalidated
}

type RateLimitConfig struct {
	LoginRPS    int `mapstructure:"login_rps"`
	LoginBurst  int `mapstructure:"login_burst"`
	GlobalRPS   int `mapstructure:"global_rps"`
	GlobalBurst int `mapstructure:"global_burst"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
