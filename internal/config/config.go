package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Telegram TelegramConfig `yaml:"telegram"`
	Report   ReportConfig   `yaml:"report"`
	Log      LogConfig      `yaml:"log"`
	CORS     CORSConfig     `yaml:"cors"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
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
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"2"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	MigrateOnStart  bool          `yaml:"migrate_on_start"   env:"DATABASE_MIGRATE_ON_START"   env-default:"true"`
}

// AuthConfig holds admin authentication settings. AdminPasswordHash is a
// bcrypt hash of the admin password; plaintext is never configured.
type AuthConfig struct {
	JWTSecret         string        `yaml:"jwt_secret"          env:"AUTH_JWT_SECRET"          env-required:"true"`
	JWTIssuer         string        `yaml:"jwt_issuer"          env:"AUTH_JWT_ISSUER"          env-default:"striketrack"`
	TokenTTL          time.Duration `yaml:"token_ttl"           env:"AUTH_TOKEN_TTL"           env-default:"12h"`
	AdminPasswordHash string        `yaml:"admin_password_hash" env:"AUTH_ADMIN_PASSWORD_HASH" env-required:"true"`
}

// TelegramConfig holds the notification sink settings. When Token is empty
// notifications are disabled and the app logs messages instead of sending.
type TelegramConfig struct {
	BaseURL string        `yaml:"base_url" env:"TELEGRAM_BASE_URL" env-default:"https://api.telegram.org"`
	Token   string        `yaml:"token"    env:"TELEGRAM_TOKEN"`
	ChatID  string        `yaml:"chat_id"  env:"TELEGRAM_CHAT_ID"`
	Timeout time.Duration `yaml:"timeout"  env:"TELEGRAM_TIMEOUT"  env-default:"10s"`
}

// ReportConfig holds strike-report settings.
type ReportConfig struct {
	// Timezone is the IANA zone used for report headers and due-date cutoffs.
	Timezone string `yaml:"timezone" env:"REPORT_TIMEZONE" env-default:"UTC"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// NotificationsEnabled reports whether a Telegram sink is fully configured.
func (c TelegramConfig) NotificationsEnabled() bool {
	return c.Token != "" && c.ChatID != ""
}
