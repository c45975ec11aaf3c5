package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/polygonid/wallet-mediator/internal/log"
)

const (
	envPrefix = "WALLET_"

	// EnvDevelopment enables the development sign-in flow
	EnvDevelopment = "development"
	// EnvProduction is the production environment name
	EnvProduction = "production"

	StorageProviderMemory   = "memory"   // StorageProviderMemory keeps tenant data in process
	StorageProviderSQLite   = "sqlite"   // StorageProviderSQLite keeps tenant data in an sqlite file
	StorageProviderPostgres = "postgres" // StorageProviderPostgres keeps tenant data in postgres

	CacheProviderMemory = "memory" // CacheProviderMemory is the in process cache
	CacheProviderRedis  = "redis"  // CacheProviderRedis is the redis cache provider
	CacheProviderValKey = "valkey" // CacheProviderValKey is the valkey cache provider

	defaultSecretKey = "unsecured"
)

// Configuration holds the project configuration
type Configuration struct {
	Env        string    `env:"ENV" envDefault:"development" tip:"Environment name (development or production)"`
	AppName    string    `env:"APP_NAME" envDefault:"Wallet Mediator" tip:"Application name used in wallet labels"`
	ServerUrl  string    `env:"SERVER_URL" envDefault:"http://localhost:5000" tip:"Public server url"`
	ServerPort int       `env:"SERVER_PORT" envDefault:"5000" tip:"Server port"`
	SecretKey  string    `env:"SECRET_KEY" envDefault:"unsecured" tip:"Secret used to seal stored values"`
	Agent      Agent     `envPrefix:"AGENT_"`
	Storage    Storage   `envPrefix:"STORAGE_"`
	Cache      Cache     `envPrefix:"CACHE_"`
	Broadcast  Broadcast `envPrefix:"BROADCAST_"`
	Session    Session   `envPrefix:"SESSION_"`
	Log        Log       `envPrefix:"LOG_"`
	Cors       Cors      `envPrefix:"CORS_"`
}

// Agent holds the remote credential agent settings
type Agent struct {
	AdminEndpoint string        `env:"ADMIN_ENDPOINT" tip:"Agent admin api base url"`
	AdminAPIKey   string        `env:"ADMIN_API_KEY" tip:"Agent admin api key, also expected in webhook calls"`
	TokenTTL      time.Duration `env:"TOKEN_TTL" envDefault:"50m" tip:"How long a tenant bearer token is cached"`
	Timeout       time.Duration `env:"TIMEOUT" envDefault:"15s" tip:"Agent request timeout"`
	RetryMax      int           `env:"RETRY_MAX" envDefault:"3" tip:"Retries of a failed agent request"`
}

// Storage has the tenant store configuration
// URL: The database connection string. Ignored by the memory provider.
type Storage struct {
	Provider string `env:"PROVIDER" envDefault:"sqlite" tip:"Tenant store provider: memory, sqlite or postgres"`
	URL      string `env:"URL" envDefault:"file:app.db?_pragma=busy_timeout(5000)" tip:"The Datasource name locator"`
}

// Cache configurations
type Cache struct {
	Provider string `env:"PROVIDER" envDefault:"memory" tip:"Cache provider: memory, redis or valkey"`
	URL      string `env:"URL" tip:"Cache url (redis://host:port or host:port for valkey)"`
}

// Broadcast holds real time notification settings
type Broadcast struct {
	QueueSize int           `env:"QUEUE_SIZE" envDefault:"10" tip:"Events buffered per connected client"`
	Keepalive time.Duration `env:"KEEPALIVE" envDefault:"30s" tip:"Interval between stream keepalive comments"`
	Backbone  bool          `env:"BACKBONE" envDefault:"false" tip:"Fan out events across instances through the cache pubsub"`
	Channel   string        `env:"CHANNEL" envDefault:"wallet-notifications" tip:"Backbone pubsub channel"`
}

// Session holds the client session cookie settings
type Session struct {
	CookieName string        `env:"COOKIE_NAME" envDefault:"Wallet" tip:"Session cookie name"`
	TTL        time.Duration `env:"TTL" envDefault:"24h" tip:"Session lifetime"`
}

// Log holds runtime configurations
//
// Level: The minimum log level to show on logs. Values can be
//
//	 -4: Debug
//		0: Info
//		4: Warning
//		8: Error
//	 The default log level is debug
//
// Mode: Log mode is the format of the log. It can be text or json
// 1: JSON
// 2: Text
// The default log formal is JSON
type Log struct {
	Level int `env:"LEVEL" envDefault:"-4" tip:"Minimum level to log: (-4:Debug, 0:Info, 4:Warning, 8:Error)"`
	Mode  int `env:"MODE" envDefault:"1" tip:"Log format (1: JSON, 2:Structured text)"`
}

// Cors configuration
type Cors struct {
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*" tip:"Allowed origins"`
}

// Development tells whether the development sign-in flow is enabled
func (c *Configuration) Development() bool {
	return c.Env == EnvDevelopment
}

// Sanitize perform some basic checks and sanitizations in the configuration.
// Returns true if config is acceptable, error otherwise.
func (c *Configuration) Sanitize() error {
	sUrl, err := c.validateServerUrl()
	if err != nil {
		return fmt.Errorf("serverUrl is not a valid URL <%s>: %w", c.ServerUrl, err)
	}
	c.ServerUrl = sUrl

	if c.Env != EnvDevelopment && c.Env != EnvProduction {
		return fmt.Errorf("unknown environment <%s>", c.Env)
	}
	if c.Env == EnvProduction && (c.SecretKey == "" || c.SecretKey == defaultSecretKey) {
		return errors.New("a secret key must be provided in production")
	}

	c.Agent.AdminEndpoint = strings.TrimRight(c.Agent.AdminEndpoint, "/")
	if c.Agent.AdminEndpoint == "" {
		return errors.New("agent admin endpoint must be provided")
	}

	switch c.Storage.Provider {
	case StorageProviderMemory:
	case StorageProviderSQLite, StorageProviderPostgres:
		if c.Storage.URL == "" {
			return fmt.Errorf("a storage url must be provided for provider <%s>", c.Storage.Provider)
		}
	default:
		return fmt.Errorf("unknown storage provider <%s>", c.Storage.Provider)
	}

	switch c.Cache.Provider {
	case CacheProviderMemory:
		if c.Broadcast.Backbone {
			return errors.New("broadcast backbone requires a redis or valkey cache provider")
		}
	case CacheProviderRedis, CacheProviderValKey:
		if c.Cache.URL == "" {
			return fmt.Errorf("a cache url must be provided for provider <%s>", c.Cache.Provider)
		}
	default:
		return fmt.Errorf("unknown cache provider <%s>", c.Cache.Provider)
	}

	if c.Broadcast.QueueSize <= 0 {
		return errors.New("broadcast queue size must be positive")
	}
	if c.Broadcast.Keepalive <= 0 {
		return errors.New("broadcast keepalive must be positive")
	}
	return nil
}

func (c *Configuration) validateServerUrl() (string, error) {
	sUrl, err := url.ParseRequestURI(c.ServerUrl)
	if err != nil {
		return c.ServerUrl, err
	}
	if sUrl.Scheme == "" {
		return c.ServerUrl, fmt.Errorf("server URL must be an absolute URL")
	}
	sUrl.RawQuery = ""
	return strings.Trim(strings.Trim(sUrl.String(), "/"), "?"), nil
}

// Load reads the configuration from WALLET_ prefixed environment variables.
// If fileName is not empty the variables it defines are loaded first; a missing file is not an error.
func Load(fileName string) (*Configuration, error) {
	ctx := context.Background()
	if fileName != "" {
		if err := godotenv.Load(fileName); err != nil && !errors.Is(err, fs.ErrNotExist) {
			log.Error(ctx, "error loading env file", "err", err, "file", fileName)
		}
	}

	cfg := &Configuration{}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: envPrefix}); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	checkEnvVars(ctx, cfg)
	return cfg, nil
}

func checkEnvVars(ctx context.Context, cfg *Configuration) {
	if cfg.Agent.AdminEndpoint == "" {
		log.Info(ctx, "WALLET_AGENT_ADMIN_ENDPOINT value is missing")
	}

	if cfg.Agent.AdminAPIKey == "" {
		log.Info(ctx, "WALLET_AGENT_ADMIN_API_KEY value is missing")
	}

	if cfg.SecretKey == defaultSecretKey {
		log.Warn(ctx, "WALLET_SECRET_KEY is using the default value")
	}

	if cfg.Cache.Provider != CacheProviderMemory && cfg.Cache.URL == "" {
		log.Info(ctx, "WALLET_CACHE_URL value is missing")
	}
}
