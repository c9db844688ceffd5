package config

import (
	"strings"

	"github.com/elemental-io/elemental/pkg/token"
)

// AppConfig is the application-wide base configuration.
type AppConfig struct {
	Name            string `yaml:"name" mapstructure:"name"`
	Env             string `yaml:"env" mapstructure:"env"`
	Description     string `yaml:"description" mapstructure:"description"`
	Version         string `yaml:"version" mapstructure:"version"`
	Debug           bool   `yaml:"debug" mapstructure:"debug"`
	Host            string `yaml:"host" mapstructure:"host"`
	Port            int    `yaml:"port" mapstructure:"port"`
	APIVersion      string `yaml:"api_version" mapstructure:"api_version"`
	APIPrefix       string `yaml:"api_prefix" mapstructure:"api_prefix"`
	SSLEnabled      bool   `yaml:"ssl_enabled" mapstructure:"ssl_enabled"`
	FrontendHostURL string `yaml:"frontend_host_url" mapstructure:"frontend_host_url"`
}

// IsDevelopment reports whether the environment counts as development.
// It gates traceback exposure in error responses and the relaxed CSP.
func (a AppConfig) IsDevelopment() bool {
	switch strings.ToLower(a.Env) {
	case "", "development", "dev", "local", "debug":
		return true
	}
	return false
}

// CORSConfig controls cross-origin request handling.
type CORSConfig struct {
	Origins          []string `yaml:"origins" mapstructure:"origins"`
	AllowCredentials bool     `yaml:"allow_credentials" mapstructure:"allow_credentials"`
	AllowMethods     []string `yaml:"allow_methods" mapstructure:"allow_methods"`
	AllowHeaders     []string `yaml:"allow_headers" mapstructure:"allow_headers"`
	MaxAge           int      `yaml:"max_age" mapstructure:"max_age"`
}

// LogConfig controls the shared logrus backend.
type LogConfig struct {
	Format       string `yaml:"format" mapstructure:"format"`
	Level        string `yaml:"level" mapstructure:"level"`
	ReportCaller bool   `yaml:"report_caller" mapstructure:"report_caller"`
}

// RedisConfig is the Redis connection configuration.
type RedisConfig struct {
	Addr     string `yaml:"addr" mapstructure:"addr"`
	Username string `yaml:"username" mapstructure:"username"`
	Password string `yaml:"password" mapstructure:"password"`
	Db       int    `yaml:"db" mapstructure:"db"`
}

// PostgresConfig is the SQL database configuration.
type PostgresConfig struct {
	DSN                    string `yaml:"dsn" mapstructure:"dsn"`
	MaxOpenConns           int    `yaml:"max_open_conns" mapstructure:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns" mapstructure:"max_idle_conns"`
	ConnMaxLifetimeSeconds int    `yaml:"conn_max_lifetime_seconds" mapstructure:"conn_max_lifetime_seconds"`
}

// SMTPConfig is the mail transport configuration.
type SMTPConfig struct {
	Host           string `yaml:"host" mapstructure:"host"`
	Port           int    `yaml:"port" mapstructure:"port"`
	Username       string `yaml:"username" mapstructure:"username"`
	Password       string `yaml:"password" mapstructure:"password"`
	From           string `yaml:"from" mapstructure:"from"`
	UseSSL         bool   `yaml:"use_ssl" mapstructure:"use_ssl"`
	UseTLS         bool   `yaml:"use_tls" mapstructure:"use_tls"`
	TimeoutSeconds int    `yaml:"timeout_seconds" mapstructure:"timeout_seconds"`
}

// FileStoreConfig is the file storage configuration.
type FileStoreConfig struct {
	Path              string   `yaml:"path" mapstructure:"path"`
	BaseURL           string   `yaml:"base_url" mapstructure:"base_url"`
	MaxSizeBytes      int64    `yaml:"max_size_bytes" mapstructure:"max_size_bytes"`
	AllowedExtensions []string `yaml:"allowed_extensions" mapstructure:"allowed_extensions"`
}

// TracingConfig controls OpenTelemetry trace export.
type TracingConfig struct {
	Exporter     string            `yaml:"exporter" mapstructure:"exporter"`
	Endpoint     string            `yaml:"endpoint" mapstructure:"endpoint"`
	Insecure     bool              `yaml:"insecure" mapstructure:"insecure"`
	ServiceName  string            `yaml:"service_name" mapstructure:"service_name"`
	SampleRatio  float64           `yaml:"sample_ratio" mapstructure:"sample_ratio"`
	ResourceTags map[string]string `yaml:"resource_tags" mapstructure:"resource_tags"`
}

// GoogleOAuthConfig is the Google OAuth client configuration.
type GoogleOAuthConfig struct {
	ClientID       string `yaml:"client_id" mapstructure:"client_id"`
	ClientSecret   string `yaml:"client_secret" mapstructure:"client_secret"`
	RedirectURI    string `yaml:"redirect_uri" mapstructure:"redirect_uri"`
	TimeoutSeconds int    `yaml:"timeout_seconds" mapstructure:"timeout_seconds"`
}

// Config is the whole Elemental settings surface. It is constructed once at
// process start and passed explicitly to the components that need it.
type Config struct {
	App       AppConfig         `yaml:"app" mapstructure:"app"`
	CORS      CORSConfig        `yaml:"cors" mapstructure:"cors"`
	Log       LogConfig         `yaml:"log" mapstructure:"log"`
	JWT       token.Config      `yaml:"jwt" mapstructure:"jwt"`
	Redis     RedisConfig       `yaml:"redis" mapstructure:"redis"`
	Postgres  PostgresConfig    `yaml:"postgres" mapstructure:"postgres"`
	SMTP      SMTPConfig        `yaml:"smtp" mapstructure:"smtp"`
	FileStore FileStoreConfig   `yaml:"filestore" mapstructure:"filestore"`
	Tracing   TracingConfig     `yaml:"tracing" mapstructure:"tracing"`
	Google    GoogleOAuthConfig `yaml:"google" mapstructure:"google"`
}
