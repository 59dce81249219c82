package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Log       LogConfig       `yaml:"log"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Notify    NotifyConfig    `yaml:"notify"`
	Push      PushConfig      `yaml:"push"`
	Export    ExportConfig    `yaml:"export"`
	Retention RetentionConfig `yaml:"retention"`
	Challenge ChallengeConfig `yaml:"challenge"`
	CORS      CORSConfig      `yaml:"cors"`
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
	TxRetries       int           `yaml:"tx_retries"         env:"DATABASE_TX_RETRIES"         env-default:"3"`
	Migrate         bool          `yaml:"migrate"            env:"DATABASE_MIGRATE"            env-default:"true"`
}

// AuthConfig holds token verification settings. Token issuance happens in
// the external identity service; this backend only verifies.
type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret" env:"AUTH_JWT_SECRET" env-required:"true"`
	JWTIssuer string `yaml:"jwt_issuer" env:"AUTH_JWT_ISSUER" env-default:"resilientme"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// RatePolicy is one fixed-window limit.
type RatePolicy struct {
	Limit  int           `yaml:"limit"`
	Window time.Duration `yaml:"window"`
}

// RateLimitConfig holds per-action fixed-window policies.
type RateLimitConfig struct {
	CreateEntryLimit  int           `yaml:"create_entry_limit"  env:"RATE_CREATE_ENTRY_LIMIT"  env-default:"5"`
	CreateEntryWindow time.Duration `yaml:"create_entry_window" env:"RATE_CREATE_ENTRY_WINDOW" env-default:"10m"`
	CreatePostLimit   int           `yaml:"create_post_limit"   env:"RATE_CREATE_POST_LIMIT"   env-default:"5"`
	CreatePostWindow  time.Duration `yaml:"create_post_window"  env:"RATE_CREATE_POST_WINDOW"  env-default:"10m"`
	ReactLimit        int           `yaml:"react_limit"         env:"RATE_REACT_LIMIT"         env-default:"20"`
	ReactWindow       time.Duration `yaml:"react_window"        env:"RATE_REACT_WINDOW"        env-default:"1m"`
	ReportLimit       int           `yaml:"report_limit"        env:"RATE_REPORT_LIMIT"        env-default:"10"`
	ReportWindow      time.Duration `yaml:"report_window"       env:"RATE_REPORT_WINDOW"       env-default:"1m"`
	ExportLimit       int           `yaml:"export_limit"        env:"RATE_EXPORT_LIMIT"        env-default:"3"`
	ExportWindow      time.Duration `yaml:"export_window"       env:"RATE_EXPORT_WINDOW"       env-default:"10m"`
}

// NotifyConfig holds dispatcher and producer settings.
type NotifyConfig struct {
	TickInterval  time.Duration `yaml:"tick_interval"   env:"NOTIFY_TICK_INTERVAL"  env-default:"60s"`
	BatchSize     int           `yaml:"batch_size"      env:"NOTIFY_BATCH_SIZE"     env-default:"20"`
	FollowUpDelay time.Duration `yaml:"follow_up_delay" env:"NOTIFY_FOLLOWUP_DELAY" env-default:"24h"`
	ClaimLease    time.Duration `yaml:"claim_lease"     env:"NOTIFY_CLAIM_LEASE"    env-default:"5m"`
	Concurrency   int           `yaml:"concurrency"     env:"NOTIFY_CONCURRENCY"    env-default:"20"`
}

// PushConfig holds push delivery settings.
type PushConfig struct {
	Endpoint  string        `yaml:"endpoint"   env:"PUSH_ENDPOINT"   env-default:"https://fcm.googleapis.com/v1/projects/resilientme/messages:send"`
	AuthToken string        `yaml:"auth_token" env:"PUSH_AUTH_TOKEN"`
	Timeout   time.Duration `yaml:"timeout"    env:"PUSH_TIMEOUT"    env-default:"10s"`
}

// ExportConfig holds data-export settings.
type ExportConfig struct {
	Dir       string        `yaml:"dir"        env:"EXPORT_DIR"        env-default:"./data/exports"`
	URLTTL    time.Duration `yaml:"url_ttl"    env:"EXPORT_URL_TTL"    env-default:"1h"`
	PublicURL string        `yaml:"public_url" env:"EXPORT_PUBLIC_URL" env-default:"http://localhost:8080"`
}

// RetentionConfig holds sweep settings.
type RetentionConfig struct {
	MaxAge     time.Duration `yaml:"max_age"      env:"RETENTION_MAX_AGE"      env-default:"168h"`
	TaskMaxAge time.Duration `yaml:"task_max_age" env:"RETENTION_TASK_MAX_AGE" env-default:"720h"`
}

// ChallengeConfig holds daily content generation settings.
type ChallengeConfig struct {
	Hour int `yaml:"hour" env:"CHALLENGE_HOUR" env-default:"5"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// Policy returns the fixed-window policy for an action key. Unknown actions
// get a conservative default.
func (c RateLimitConfig) Policy(actionKey string) RatePolicy {
	switch actionKey {
	case "create-entry":
		return RatePolicy{Limit: c.CreateEntryLimit, Window: c.CreateEntryWindow}
	case "create-post":
		return RatePolicy{Limit: c.CreatePostLimit, Window: c.CreatePostWindow}
	case "react":
		return RatePolicy{Limit: c.ReactLimit, Window: c.ReactWindow}
	case "report":
		return RatePolicy{Limit: c.ReportLimit, Window: c.ReportWindow}
	case "export":
		return RatePolicy{Limit: c.ExportLimit, Window: c.ExportWindow}
	}
	return RatePolicy{Limit: 10, Window: time.Minute}
}
