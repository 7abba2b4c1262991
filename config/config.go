// Package config loads the explorer configuration from YAML and the
// environment.
package config

import (
	"net"
	"strconv"
	"time"
)

// DefaultPort is the port the asset server listens on when none is set.
const DefaultPort = 3010

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Resources ResourcesConfig `yaml:"resources"`
	Cache     CacheConfig     `yaml:"cache"`
	RateLimit RateLimitConfig `yaml:"ratelimit"`
	I18n      I18nConfig      `yaml:"i18n"`
	Log       LogConfig       `yaml:"log"`
}

// ServerConfig holds HTTP server settings. An empty Root serves the
// embedded assets.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:""`
	Port            int           `yaml:"port"             env:"PORT"                    env-default:"3010"`
	Root            string        `yaml:"root"             env:"SERVER_ROOT"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"5s"`
}

// ResourcesConfig locates the glossary and examples resources. Each may be
// a path, an http(s) URL, or empty for the copy served from the asset root.
// Lexicon optionally extends the built-in dictionary and has no default.
// Watch reloads a glossary file on disk whenever it changes.
type ResourcesConfig struct {
	Glossary string `yaml:"glossary" env:"GLOSSARY_SOURCE"`
	Examples string `yaml:"examples" env:"EXAMPLES_SOURCE"`
	Lexicon  string `yaml:"lexicon"  env:"LEXICON_SOURCE"`
	Watch    bool   `yaml:"watch"    env:"GLOSSARY_WATCH"`
}

// CacheConfig selects the analysis cache backend.
type CacheConfig struct {
	Backend   string `yaml:"backend"    env:"CACHE_BACKEND"    env-default:"memory"`
	TTL       int    `yaml:"ttl"        env:"CACHE_TTL"        env-default:"3600"`
	RedisURL  string `yaml:"redis_url"  env:"CACHE_REDIS_URL"  env-default:"redis://localhost:6379/0"`
	KeyPrefix string `yaml:"key_prefix" env:"CACHE_KEY_PREFIX" env-default:"sarf:analysis:"`
	Preload   string `yaml:"preload"    env:"CACHE_PRELOAD"`
	Warm      bool   `yaml:"warm"       env:"CACHE_WARM"       env-default:"true"`
}

// RateLimitConfig bounds API requests per process.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"             env:"RATELIMIT_ENABLED" env-default:"true"`
	RequestsPerMinute int  `yaml:"requests_per_minute" env:"RATELIMIT_RPM"     env-default:"600"`
	Burst             int  `yaml:"burst"               env:"RATELIMIT_BURST"   env-default:"60"`
}

// I18nConfig holds the default locale for builder messages.
type I18nConfig struct {
	DefaultLocale string `yaml:"default_locale" env:"I18N_DEFAULT_LOCALE" env-default:"ar"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}
