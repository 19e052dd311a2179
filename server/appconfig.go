package server

import (
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// AppConfig defines application configuration loaded from files and environment.
type AppConfig struct {
	Env        string           `koanf:"env"`
	Database   DatabaseConfig   `koanf:"database"`
	Forum      ForumConfig      `koanf:"forum"`
	Session    SessionConfig    `koanf:"session"`
	Cache      CacheConfig      `koanf:"cache"`
	Repository RepositoryConfig `koanf:"repository"`
}

// RepositoryConfig points at the external repository API the list endpoints
// delegate to.
type RepositoryConfig struct {
	BaseURL string `koanf:"base_url"`
	APIKey  string `koanf:"api_key"`
}

type DatabaseConfig struct {
	Portal DSNConfig `koanf:"portal"`
}

type DSNConfig struct {
	DSN string `koanf:"dsn"`
}

// ForumConfig holds the external identity provider's OAuth endpoints and the
// server-side API credentials for member lookups.
type ForumConfig struct {
	BaseURL      string   `koanf:"base_url"`
	APIKey       string   `koanf:"api_key"`
	ClientID     string   `koanf:"client_id"`
	ClientSecret string   `koanf:"client_secret"`
	AuthURL      string   `koanf:"auth_url"`
	TokenURL     string   `koanf:"token_url"`
	RedirectURL  string   `koanf:"redirect_url"`
	Scopes       []string `koanf:"scopes"`
}

// SessionConfig controls the session credential. TTLMinutes bounds how long
// an already-issued credential keeps a stale claim set alive.
type SessionConfig struct {
	SigningKey string `koanf:"signing_key"`
	TTLMinutes int    `koanf:"ttl_minutes"`
}

// CacheConfig selects the session cache backend: a Valkey address for
// multi-instance deployments, or a buntdb path (":memory:" works) otherwise.
type CacheConfig struct {
	ValkeyAddr string `koanf:"valkey_addr"`
	BuntPath   string `koanf:"bunt_path"`
}

// TTL returns the configured session lifetime, defaulting to 15 minutes.
func (c SessionConfig) TTL() time.Duration {
	if c.TTLMinutes <= 0 {
		return 15 * time.Minute
	}
	return time.Duration(c.TTLMinutes) * time.Minute
}

var (
	cfgOnce sync.Once
	cfgInst *AppConfig
)

// GetConfig loads and returns the singleton AppConfig. Loading order:
// 1) config/config.yaml (optional)
// 2) config/config.<APP_ENV>.yaml (optional), APP_ENV defaults to "local"
// 3) Environment variables with prefix PORTAL_ mapped using __ as nested separator, e.g. PORTAL_DATABASE__PORTAL__DSN
func GetConfig() *AppConfig {
	cfgOnce.Do(func() {
		k := koanf.New(".")
		// Config directory (CONFIG_DIR) default ./config
		configDir := os.Getenv("CONFIG_DIR")
		if configDir == "" {
			configDir = "config"
		}
		// Whether to load files (default: disabled to keep tests isolated)
		loadFiles := strings.EqualFold(os.Getenv("APP_CONFIG_FILES"), "1") || strings.EqualFold(os.Getenv("APP_CONFIG_FILES"), "true")
		// 1) base file
		if loadFiles {
			base := filepath.Join(configDir, "config.yaml")
			if _, err := os.Stat(base); err == nil {
				if err := k.Load(file.Provider(base), yaml.Parser()); err != nil {
					log.Printf("config: failed loading base: %v", err)
				}
			}
		}
		// 2) env-specific file
		envName := os.Getenv("APP_ENV")
		if envName == "" {
			envName = "local"
		}
		if loadFiles {
			envFile := filepath.Join(configDir, "config."+envName+".yaml")
			if _, err := os.Stat(envFile); err == nil {
				if err := k.Load(file.Provider(envFile), yaml.Parser()); err != nil {
					log.Printf("config: failed loading env file: %v", err)
				}
			}
		}
		// 3) env vars: PORTAL_ prefix, __ delim for nesting
		_ = k.Load(env.Provider("PORTAL_", "__", func(s string) string {
			// PORTAL_DATABASE__PORTAL__DSN -> database.portal.dsn
			return s
		}), nil)

		var c AppConfig
		if err := k.Unmarshal("", &c); err != nil {
			log.Printf("config: unmarshal error: %v", err)
		}
		if c.Env == "" {
			c.Env = envName
		}
		cfgInst = &c
	})
	return cfgInst
}

// Application-level sentinel errors for missing configuration.
var (
	ErrPortalDBDSNNotSet = errors.New("PORTAL_DB_DSN not set")
	ErrSigningKeyNotSet  = errors.New("session signing key not set")
	ErrForumOAuthNotSet  = errors.New("forum oauth client not configured")
)

// PortalDBDSN returns the effective DSN for the portal DB (config first, then env fallback to MIGRATE_DSN).
func (c *AppConfig) PortalDBDSN() string {
	if c != nil && c.Database.Portal.DSN != "" {
		return strings.TrimSpace(c.Database.Portal.DSN)
	}
	dsn := strings.TrimSpace(os.Getenv("PORTAL_DB_DSN"))
	if dsn == "" {
		dsn = strings.TrimSpace(os.Getenv("MIGRATE_DSN"))
	}
	return dsn
}
