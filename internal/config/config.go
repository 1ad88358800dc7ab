package config

import (
	"strconv"
	"strings"
	"time"

	"image-panel/internal/domain"

	"github.com/spf13/viper"
)

const (
	defaultServerPort       = "8080"
	defaultProcessorURL     = "http://127.0.0.1:8000/process"
	defaultProcessorTimeout = 60 * time.Second
	defaultMaxRetries       = 3
	defaultConcurrency      = 1
	defaultMaxFileSize      = 20 * 1024 * 1024
	defaultSessionTTL       = 2 * time.Hour
	defaultReportBucket     = "reports"
)

// AppConfig implements the domain.Config interface
type AppConfig struct {
	ServerPort          string
	ProcessorURL        string
	ProcessorTimeout    time.Duration
	ProcessorMaxRetries int
	ProcessConcurrency  int
	MaxFileSize         int64
	LogLevel            string
	SessionTTL          time.Duration
	AllowedOrigins      []string
	CookieSecure        bool
	SupabaseURL         string
	SupabaseKey         string
	ReportBucket        string
}

// NewConfig creates a new configuration instance from the environment and,
// when IMAGE_PANEL_CONFIG names one, a config file
func NewConfig() domain.Config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", defaultServerPort)
	v.SetDefault("PROCESSOR_URL", defaultProcessorURL)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("REPORT_BUCKET", defaultReportBucket)
	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:8080,http://127.0.0.1:8080")

	if file := v.GetString("IMAGE_PANEL_CONFIG"); file != "" {
		v.SetConfigFile(file)
		// a missing or broken file leaves env and defaults in place
		_ = v.ReadInConfig()
	}

	return &AppConfig{
		// Cloud Run (and many PaaS) provide the listening port via PORT.
		// Keep SERVER_PORT for local/dev compatibility.
		ServerPort:          getStringOrDefault(v, "PORT", v.GetString("SERVER_PORT")),
		ProcessorURL:        getStringOrDefault(v, "PROCESSOR_URL", defaultProcessorURL),
		ProcessorTimeout:    getDurationOrDefault(v, "PROCESSOR_TIMEOUT", defaultProcessorTimeout),
		ProcessorMaxRetries: getIntOrDefault(v, "PROCESSOR_MAX_RETRIES", defaultMaxRetries),
		ProcessConcurrency:  getIntOrDefault(v, "PROCESS_CONCURRENCY", defaultConcurrency),
		MaxFileSize:         getInt64OrDefault(v, "MAX_FILE_SIZE", defaultMaxFileSize),
		LogLevel:            getStringOrDefault(v, "LOG_LEVEL", "info"),
		SessionTTL:          getDurationOrDefault(v, "SESSION_TTL", defaultSessionTTL),
		AllowedOrigins:      splitList(v.GetString("ALLOWED_ORIGINS")),
		CookieSecure:        v.GetBool("COOKIE_SECURE"),
		SupabaseURL:         v.GetString("SUPABASE_URL"),
		SupabaseKey:         v.GetString("SUPABASE_ANON_KEY"),
		ReportBucket:        getStringOrDefault(v, "REPORT_BUCKET", defaultReportBucket),
	}
}

// GetServerPort returns the server port
func (c *AppConfig) GetServerPort() string {
	return c.ServerPort
}

// GetProcessorURL returns the processing endpoint URL
func (c *AppConfig) GetProcessorURL() string {
	return c.ProcessorURL
}

// GetProcessorTimeout returns the per-request timeout towards the endpoint
func (c *AppConfig) GetProcessorTimeout() time.Duration {
	return c.ProcessorTimeout
}

// GetProcessorMaxRetries returns how often throttled requests are retried
func (c *AppConfig) GetProcessorMaxRetries() int {
	return c.ProcessorMaxRetries
}

// GetProcessConcurrency returns how many files of a batch are in flight at once
func (c *AppConfig) GetProcessConcurrency() int {
	return c.ProcessConcurrency
}

// GetMaxFileSize returns the maximum allowed file size
func (c *AppConfig) GetMaxFileSize() int64 {
	return c.MaxFileSize
}

// GetLogLevel returns the logging level
func (c *AppConfig) GetLogLevel() string {
	return c.LogLevel
}

// GetSessionTTL returns the idle time after which a session is dropped
func (c *AppConfig) GetSessionTTL() time.Duration {
	return c.SessionTTL
}

// GetAllowedOrigins returns the CORS origins
func (c *AppConfig) GetAllowedOrigins() []string {
	return c.AllowedOrigins
}

// GetCookieSecure reports whether the session cookie is HTTPS-only
func (c *AppConfig) GetCookieSecure() bool {
	return c.CookieSecure
}

// GetSupabaseURL returns the Supabase URL
func (c *AppConfig) GetSupabaseURL() string {
	return c.SupabaseURL
}

// GetSupabaseKey returns the Supabase anon key
func (c *AppConfig) GetSupabaseKey() string {
	return c.SupabaseKey
}

// GetReportBucket returns the storage bucket for archived reports
func (c *AppConfig) GetReportBucket() string {
	return c.ReportBucket
}

// Helper functions for value handling

func getStringOrDefault(v *viper.Viper, key, defaultValue string) string {
	if value := strings.TrimSpace(v.GetString(key)); value != "" {
		return value
	}
	return defaultValue
}

func getIntOrDefault(v *viper.Viper, key string, defaultValue int) int {
	return int(getInt64OrDefault(v, key, int64(defaultValue)))
}

func getInt64OrDefault(v *viper.Viper, key string, defaultValue int64) int64 {
	raw := strings.TrimSpace(v.GetString(key))
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}

func getDurationOrDefault(v *viper.Viper, key string, defaultValue time.Duration) time.Duration {
	raw := strings.TrimSpace(v.GetString(key))
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
