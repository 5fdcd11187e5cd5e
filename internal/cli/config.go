package cli

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/varun-a1/odlparent/pkg/errors"
	"github.com/varun-a1/odlparent/pkg/repo"
)

// Cache backends selectable in the config file.
const (
	CacheBackendFile  = "file"
	CacheBackendRedis = "redis"
	CacheBackendNone  = "none"
)

// defaultCacheTTLHours is the artifact cache lifetime when unset.
const defaultCacheTTLHours = 24

// Settings is the featclose configuration, loaded from a TOML file.
type Settings struct {
	// LocalRepos are Maven-layout directories searched before any remote.
	LocalRepos []string `toml:"local_repos"`

	// RemoteURLs are Maven repository base URLs tried in order.
	RemoteURLs []string `toml:"remote_urls"`

	// DownloadDir is where remotely fetched artifacts are stored.
	DownloadDir string `toml:"download_dir"`

	Cache CacheSettings `toml:"cache"`
	Redis RedisSettings `toml:"redis"`
}

// CacheSettings controls the artifact byte cache used by remote resolution.
type CacheSettings struct {
	// Backend is one of "file", "redis", or "none".
	Backend string `toml:"backend"`

	// Dir overrides the file cache directory.
	Dir string `toml:"dir"`

	// TTLHours is the cache entry lifetime in hours.
	TTLHours int `toml:"ttl_hours"`
}

// TTL returns the configured cache lifetime as a duration.
func (c CacheSettings) TTL() time.Duration {
	hours := c.TTLHours
	if hours <= 0 {
		hours = defaultCacheTTLHours
	}
	return time.Duration(hours) * time.Hour
}

// RedisSettings configures the redis cache backend.
type RedisSettings struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// DefaultSettings returns settings that resolve against the local Maven
// repository only, with a file-backed cache.
func DefaultSettings() *Settings {
	s := &Settings{
		Cache: CacheSettings{Backend: CacheBackendFile, TTLHours: defaultCacheTTLHours},
	}
	if root, err := repo.DefaultLocalRoot(); err == nil {
		s.LocalRepos = []string{root}
	}
	return s
}

// LoadSettings reads the config file at path, falling back to the default
// location, and to pure defaults when no file exists. An unreadable or
// malformed file is an error; a missing one is not.
func LoadSettings(path string) (*Settings, error) {
	explicit := path != ""
	if !explicit {
		var err error
		path, err = defaultConfigPath()
		if err != nil {
			return DefaultSettings(), nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return DefaultSettings(), nil
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "reading config %s", path)
	}

	s := DefaultSettings()
	if err := toml.Unmarshal(data, s); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parsing config %s", path)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Settings) validate() error {
	switch s.Cache.Backend {
	case "", CacheBackendFile, CacheBackendRedis, CacheBackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q", s.Cache.Backend)
	}
	if s.Cache.Backend == CacheBackendRedis && s.Redis.Addr == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "redis cache backend requires redis.addr")
	}
	return nil
}

// defaultConfigPath returns the config location using XDG standard
// (~/.config/featclose/config.toml).
func defaultConfigPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}
