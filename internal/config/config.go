// Package config reads sillydeps settings from the environment.
//
// An optional .env file in the working directory is loaded first; variables
// already set in the process environment take precedence over it.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/matzehuels/sillydeps/pkg/errors"
)

// AppName names the XDG directories.
const AppName = "sillydeps"

// Environment variables.
const (
	EnvCatalog       = "SILLYDEPS_CATALOG"
	EnvLang          = "SILLYDEPS_LANG"
	EnvNPMTimeout    = "SILLYDEPS_NPM_TIMEOUT"
	EnvRedisAddr     = "SILLYDEPS_REDIS_ADDR"
	EnvRedisPassword = "SILLYDEPS_REDIS_PASSWORD"
	EnvRedisDB       = "SILLYDEPS_REDIS_DB"
	EnvMongoURI      = "SILLYDEPS_MONGO_URI"
	EnvMongoDatabase = "SILLYDEPS_MONGO_DATABASE"
	EnvHistoryFile   = "SILLYDEPS_HISTORY_FILE"
	EnvAddr          = "SILLYDEPS_ADDR"
	EnvNoColor       = "NO_COLOR"
)

// DefaultAddr is where `sillydeps serve` listens.
const DefaultAddr = ":8080"

// Config holds all environment configuration.
type Config struct {
	// Catalog is a catalog file replacing the bundled one.
	Catalog string
	// Lang forces the report language; empty means detect from the locale.
	Lang string
	// Locale is the first non-empty of LC_ALL, LC_MESSAGES and LANG.
	Locale string
	// NPMTimeout bounds `npm ls`. Zero means the lister default.
	NPMTimeout time.Duration

	Redis RedisConfig
	Mongo MongoConfig

	// HistoryFile is the file history store location.
	HistoryFile string
	// CacheDir holds the file cache.
	CacheDir string

	Addr    string
	NoColor bool
}

// RedisConfig selects a shared result cache. Empty Addr means the file cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// MongoConfig selects MongoDB history. Empty URI means the file store.
type MongoConfig struct {
	URI      string
	Database string
}

// Load reads .env (if present) and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// LoadFile reads an explicit env file and then the process environment.
// Unlike Load, a missing file is an error.
func LoadFile(path string) (*Config, error) {
	if err := godotenv.Load(path); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "load env file %s", path)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv.
func FromEnv(getenv func(string) string) (*Config, error) {
	get := func(key string) string { return strings.TrimSpace(getenv(key)) }

	cfg := &Config{
		Catalog:     get(EnvCatalog),
		Lang:        get(EnvLang),
		Locale:      firstNonEmpty(get("LC_ALL"), get("LC_MESSAGES"), get("LANG")),
		HistoryFile: get(EnvHistoryFile),
		Addr:        firstNonEmpty(get(EnvAddr), DefaultAddr),
		NoColor:     getenv(EnvNoColor) != "",
		Redis: RedisConfig{
			Addr:     get(EnvRedisAddr),
			Password: getenv(EnvRedisPassword),
		},
		Mongo: MongoConfig{
			URI:      get(EnvMongoURI),
			Database: get(EnvMongoDatabase),
		},
	}

	if raw := get(EnvNPMTimeout); raw != "" {
		d, err := parseDuration(raw)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "%s", EnvNPMTimeout)
		}
		cfg.NPMTimeout = d
	}
	if raw := get(EnvRedisDB); raw != "" {
		db, err := strconv.Atoi(raw)
		if err != nil || db < 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "%s must be a non-negative integer, got %q", EnvRedisDB, raw)
		}
		cfg.Redis.DB = db
	}

	if cfg.HistoryFile == "" {
		dir, err := DataDir(getenv)
		if err == nil {
			cfg.HistoryFile = filepath.Join(dir, "history.json")
		}
	}
	if dir, err := CacheDir(getenv); err == nil {
		cfg.CacheDir = dir
	}
	return cfg, nil
}

// CacheDir returns the cache directory using XDG standard (~/.cache/sillydeps/).
func CacheDir(getenv func(string) string) (string, error) {
	return xdgDir(getenv, "XDG_CACHE_HOME", ".cache")
}

// DataDir returns the data directory using XDG standard (~/.local/share/sillydeps/).
func DataDir(getenv func(string) string) (string, error) {
	return xdgDir(getenv, "XDG_DATA_HOME", filepath.Join(".local", "share"))
}

func xdgDir(getenv func(string) string, env, fallback string) (string, error) {
	if base := getenv(env); base != "" {
		return filepath.Join(base, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, fallback, AppName), nil
}

// parseDuration accepts Go durations ("90s", "2m") and bare seconds ("90").
func parseDuration(raw string) (time.Duration, error) {
	if secs, err := strconv.Atoi(raw); err == nil {
		if secs <= 0 {
			return 0, errors.New(errors.ErrCodeInvalidInput, "timeout must be positive")
		}
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, errors.New(errors.ErrCodeInvalidInput, "timeout must be positive")
	}
	return d, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
