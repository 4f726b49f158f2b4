package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
//
//nolint:govet // Field alignment optimization would reduce readability
type Config struct {
	Server        ServerConfig
	Backend       BackendConfig
	Session       SessionConfig
	Messaging     MessagingConfig
	Connections   ConnectionsConfig
	CLI           CLIConfig
	Logging       LoggingConfig
	Observability ObservabilityConfig
	Profiling     ProfilingConfig
}

type ServerConfig struct {
	Port           string
	GinMode        string
	AppEnv         string
	AllowedOrigins []string
}

// BackendConfig points at the careerconnect REST API. There is exactly one
// base URL; every component resolves its endpoints against it.
type BackendConfig struct {
	BaseURL               string
	TimeoutSeconds        int
	DisableCircuitBreaker bool
}

type SessionConfig struct {
	Secret       string
	Issuer       string
	TTLHours     int
	CookieDomain string
	CookieSecure bool
}

type MessagingConfig struct {
	PollIntervalSeconds int
}

type ConnectionsConfig struct {
	SentRequestsTTLHours int
}

type CLIConfig struct {
	StateFile string
}

type LoggingConfig struct {
	Level string
	Dir   string
}

type ObservabilityConfig struct {
	ExporterEndpoint string
	ServiceName      string
	ServiceVersion   string
}

type ProfilingConfig struct {
	Enabled               bool
	Endpoint              string
	AppName               string
	SampleTypes           string
	UploadIntervalSeconds int
}

// Load reads configuration from environment variables and an optional .env file
func Load() (*Config, error) {
	cfg := fromViper(newViper())

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadCLI reads the subset of configuration the terminal client needs.
// It skips the web-only requirements such as SESSION_SECRET.
func LoadCLI() (*Config, error) {
	cfg := fromViper(newViper())

	if err := cfg.validateBackend(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("APP_ENV", "production")
	v.SetDefault("ALLOWED_CORS_ORIGINS", "http://localhost:5173")
	v.SetDefault("API_BASE_URL", "http://localhost:3000")
	v.SetDefault("HTTP_CLIENT_TIMEOUT_SECONDS", 30)
	v.SetDefault("DISABLE_CIRCUIT_BREAKER", false)
	v.SetDefault("SESSION_ISSUER", "careerconnect-web")
	v.SetDefault("SESSION_TTL_HOURS", 24) // persisted session lives one day
	v.SetDefault("COOKIE_DOMAIN", "")
	v.SetDefault("COOKIE_SECURE", true)
	v.SetDefault("MESSAGE_POLL_INTERVAL_SECONDS", 5)
	v.SetDefault("SENT_REQUESTS_TTL_HOURS", 24)
	v.SetDefault("CLI_STATE_FILE", defaultStateFile())
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_DIR", "/app/logs")
	v.SetDefault("O11Y_EXPORTER_ENDPOINT", "")
	v.SetDefault("O11Y_SERVICE_NAME", "careerconnect-web")
	v.SetDefault("O11Y_SERVICE_VERSION", "1.0.0")
	v.SetDefault("O11Y_PROFILING_ENABLED", false)
	v.SetDefault("O11Y_PROFILING_APP_NAME", "careerconnect-web")
	v.SetDefault("O11Y_PROFILING_SAMPLE_TYPES", "cpu,alloc_space,goroutines")
	v.SetDefault("O11Y_PROFILING_UPLOAD_INTERVAL_SECONDS", 15)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("..")
	_ = v.ReadInConfig() //nolint:errcheck // .env is optional

	return v
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Server: ServerConfig{
			Port:           v.GetString("PORT"),
			GinMode:        v.GetString("GIN_MODE"),
			AppEnv:         v.GetString("APP_ENV"),
			AllowedOrigins: splitList(v.GetString("ALLOWED_CORS_ORIGINS")),
		},
		Backend: BackendConfig{
			BaseURL:               strings.TrimRight(v.GetString("API_BASE_URL"), "/"),
			TimeoutSeconds:        v.GetInt("HTTP_CLIENT_TIMEOUT_SECONDS"),
			DisableCircuitBreaker: v.GetBool("DISABLE_CIRCUIT_BREAKER"),
		},
		Session: SessionConfig{
			Secret:       v.GetString("SESSION_SECRET"),
			Issuer:       v.GetString("SESSION_ISSUER"),
			TTLHours:     v.GetInt("SESSION_TTL_HOURS"),
			CookieDomain: v.GetString("COOKIE_DOMAIN"),
			CookieSecure: v.GetBool("COOKIE_SECURE"),
		},
		Messaging: MessagingConfig{
			PollIntervalSeconds: v.GetInt("MESSAGE_POLL_INTERVAL_SECONDS"),
		},
		Connections: ConnectionsConfig{
			SentRequestsTTLHours: v.GetInt("SENT_REQUESTS_TTL_HOURS"),
		},
		CLI: CLIConfig{
			StateFile: v.GetString("CLI_STATE_FILE"),
		},
		Logging: LoggingConfig{
			Level: v.GetString("LOG_LEVEL"),
			Dir:   v.GetString("LOG_DIR"),
		},
		Observability: ObservabilityConfig{
			ExporterEndpoint: v.GetString("O11Y_EXPORTER_ENDPOINT"),
			ServiceName:      v.GetString("O11Y_SERVICE_NAME"),
			ServiceVersion:   v.GetString("O11Y_SERVICE_VERSION"),
		},
		Profiling: ProfilingConfig{
			Enabled:               v.GetBool("O11Y_PROFILING_ENABLED"),
			Endpoint:              v.GetString("O11Y_PROFILING_ENDPOINT"),
			AppName:               v.GetString("O11Y_PROFILING_APP_NAME"),
			SampleTypes:           v.GetString("O11Y_PROFILING_SAMPLE_TYPES"),
			UploadIntervalSeconds: v.GetInt("O11Y_PROFILING_UPLOAD_INTERVAL_SECONDS"),
		},
	}
}

// Validate checks if required configuration values are set
func (c *Config) Validate() error {
	if err := c.validateBackend(); err != nil {
		return err
	}

	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if len(c.Server.AllowedOrigins) == 0 {
		return fmt.Errorf("ALLOWED_CORS_ORIGINS is required")
	}

	if c.Session.Secret == "" {
		return fmt.Errorf("SESSION_SECRET is required")
	}
	if len(c.Session.Secret) < 32 {
		return fmt.Errorf("SESSION_SECRET must be at least 32 characters")
	}
	if c.Session.TTLHours <= 0 {
		return fmt.Errorf("SESSION_TTL_HOURS must be positive")
	}

	if c.Profiling.Enabled && c.Profiling.Endpoint == "" {
		return fmt.Errorf("O11Y_PROFILING_ENDPOINT is required when profiling is enabled")
	}

	return nil
}

func (c *Config) validateBackend() error {
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("API_BASE_URL is required")
	}
	u, err := url.Parse(c.Backend.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("API_BASE_URL must be an absolute URL, got %q", c.Backend.BaseURL)
	}
	if c.Messaging.PollIntervalSeconds <= 0 {
		return fmt.Errorf("MESSAGE_POLL_INTERVAL_SECONDS must be positive")
	}
	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.AppEnv == "development" || c.Server.GinMode == "debug"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.AppEnv == "production"
}

// SessionTTL is how long a persisted session survives
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.Session.TTLHours) * time.Hour
}

// PollInterval is the messaging refresh period
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Messaging.PollIntervalSeconds) * time.Second
}

// SentRequestsTTL is how long a locally remembered "request sent" mark is kept
func (c *Config) SentRequestsTTL() time.Duration {
	return time.Duration(c.Connections.SentRequestsTTLHours) * time.Hour
}

// BackendTimeout bounds a single backend call
func (c *Config) BackendTimeout() time.Duration {
	return time.Duration(c.Backend.TimeoutSeconds) * time.Second
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

func defaultStateFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".careerconnect.yaml"
	}
	return filepath.Join(dir, "careerconnect", "state.yaml")
}
