package config

import (
	"strings"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Share     ShareConfig     `yaml:"share"`
	Transfer  TransferConfig  `yaml:"transfer"`
	Reorder   ReorderConfig   `yaml:"reorder"`
	Redis     RedisConfig     `yaml:"redis"`
	Storage   StorageConfig   `yaml:"storage"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	ApplicationName string        `yaml:"application_name"   env:"DATABASE_APPLICATION_NAME"   env-default:"bookmarks-backend"`
	AutoMigrate     bool          `yaml:"auto_migrate"       env:"DATABASE_AUTO_MIGRATE"`
}

// AuthConfig holds access-token validation settings. Tokens are issued by
// the identity provider sharing the secret.
type AuthConfig struct {
	JWTSecret      string        `yaml:"jwt_secret"       env:"AUTH_JWT_SECRET"       env-required:"true"`
	JWTIssuer      string        `yaml:"jwt_issuer"       env:"AUTH_JWT_ISSUER"       env-default:"bookmarks"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" env:"AUTH_ACCESS_TOKEN_TTL" env-default:"15m"`
}

// ShareConfig holds share-token settings.
type ShareConfig struct {
	PublicBaseURL string        `yaml:"public_base_url" env:"SHARE_PUBLIC_BASE_URL" env-default:""`
	TokenBytes    int           `yaml:"token_bytes"     env:"SHARE_TOKEN_BYTES"     env-default:"32"`
	MaxExpiresIn  time.Duration `yaml:"max_expires_in"  env:"SHARE_MAX_EXPIRES_IN"  env-default:"8760h"`
	CacheTTL      time.Duration `yaml:"cache_ttl"       env:"SHARE_CACHE_TTL"       env-default:"5m"`
}

// TransferConfig holds export/import settings.
type TransferConfig struct {
	MaxDocumentBytes int64 `yaml:"max_document_bytes" env:"TRANSFER_MAX_DOCUMENT_BYTES" env-default:"10485760"`
	MaxEntities      int   `yaml:"max_entities"       env:"TRANSFER_MAX_ENTITIES"       env-default:"50000"`
	SnapshotEnabled  bool  `yaml:"snapshot_enabled"   env:"TRANSFER_SNAPSHOT_ENABLED"   env-default:"false"`
}

// ReorderConfig holds reorder persistence settings.
type ReorderConfig struct {
	// Atomic persists a whole update set in one transaction. When false each
	// pair is written on its own, in ascending target position. Defaults to
	// true, see defaults.
	Atomic      bool `yaml:"atomic"       env:"REORDER_ATOMIC"`
	MaxSiblings int  `yaml:"max_siblings" env:"REORDER_MAX_SIBLINGS" env-default:"1000"`
}

// RedisConfig enables the share-token cache when URL is set.
type RedisConfig struct {
	URL string `yaml:"url" env:"REDIS_URL" env-default:""`
}

// Enabled reports whether a Redis URL is configured.
func (c RedisConfig) Enabled() bool { return c.URL != "" }

// StorageConfig configures the S3-compatible bucket for import snapshots.
type StorageConfig struct {
	Endpoint  string `yaml:"endpoint"   env:"STORAGE_ENDPOINT"   env-default:""`
	AccessKey string `yaml:"access_key" env:"STORAGE_ACCESS_KEY" env-default:""`
	SecretKey string `yaml:"secret_key" env:"STORAGE_SECRET_KEY" env-default:""`
	Bucket    string `yaml:"bucket"     env:"STORAGE_BUCKET"     env-default:"bookmark-snapshots"`
	UseSSL    bool   `yaml:"use_ssl"    env:"STORAGE_USE_SSL"    env-default:"false"`
}

// Enabled reports whether an object store endpoint is configured.
func (c StorageConfig) Enabled() bool { return c.Endpoint != "" }

// RateLimitConfig bounds anonymous share resolution per client IP.
type RateLimitConfig struct {
	ShareResolve int           `yaml:"share_resolve" env:"RATE_LIMIT_SHARE_RESOLVE" env-default:"60"`
	Window       time.Duration `yaml:"window"        env:"RATE_LIMIT_WINDOW"        env-default:"1m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// Origins splits AllowedOrigins on commas.
func (c CORSConfig) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
