package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig    `mapstructure:"server"`
	Database DatabasesConfig `mapstructure:"database"`
	Logging  LoggingConfig   `mapstructure:"logging"`
	Consent  ConsentConfig   `mapstructure:"consent"`
	Email    EmailConfig     `mapstructure:"email"`
	CORS     CORSConfig      `mapstructure:"cors"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Hostname     string        `mapstructure:"hostname"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// DatabasesConfig holds all database configurations
type DatabasesConfig struct {
	Consent DatabaseConfig `mapstructure:"consent"`
}

// DatabaseConfig holds individual database configuration
type DatabaseConfig struct {
	Type            string        `mapstructure:"type"`
	Hostname        string        `mapstructure:"hostname"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ConsentConfig holds the verification workflow thresholds. All values are
// injected into the services at construction; nothing reads them as mutable
// process globals.
type ConsentConfig struct {
	CodeLength              int `mapstructure:"code_length"`
	CodeExpiryMinutes       int `mapstructure:"code_expiry_minutes"`
	MaxAttempts             int `mapstructure:"max_attempts"`
	ResendCooldownSeconds   int `mapstructure:"resend_cooldown_seconds"`
	MaxResendCount          int `mapstructure:"max_resend_count"`
	RateLimitWindowMinutes  int `mapstructure:"rate_limit_window_minutes"`
	RateLimitMaxSubmissions int `mapstructure:"rate_limit_max_submissions"`
}

// EmailConfig holds notification gateway configuration
type EmailConfig struct {
	FromEmail                string     `mapstructure:"from_email"`
	FromName                 string     `mapstructure:"from_name"`
	CustomerSubject          string     `mapstructure:"customer_subject"`
	StaffSubject             string     `mapstructure:"staff_subject"`
	SupportEmail             string     `mapstructure:"support_email"`
	SupportPhone             string     `mapstructure:"support_phone"`
	StaffRecipients          []string   `mapstructure:"staff_recipients"`
	EnableStaffNotifications bool       `mapstructure:"enable_staff_notifications"`
	SMTP                     SMTPConfig `mapstructure:"smtp"`
}

// SMTPConfig holds outbound mail transport configuration
type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	Enabled          bool     `mapstructure:"enabled"`
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
}

var globalConfig *Config

// Load reads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Default lookup order:
		// 1. ./repository/conf/deployment.yaml (production - relative to binary)
		// 2. ./cmd/server/repository/conf/deployment.yaml (development)
		v.SetConfigName("deployment")
		v.SetConfigType("yaml")
		v.AddConfigPath("./repository/conf")
		v.AddConfigPath("./cmd/server/repository/conf")
		v.AddConfigPath("../repository/conf")
		v.AddConfigPath(".")
	}

	v.AutomaticEnv()
	v.SetEnvPrefix("CONSENT_API")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	globalConfig = &config
	return &config, nil
}

// validateConfig validates the configuration
func validateConfig(config *Config) error {
	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}

	if config.Database.Consent.Hostname == "" {
		return fmt.Errorf("database hostname is required")
	}
	if config.Database.Consent.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if config.Consent.CodeLength < 4 || config.Consent.CodeLength > 10 {
		return fmt.Errorf("code length must be between 4 and 10 digits")
	}
	if config.Consent.CodeExpiryMinutes <= 0 {
		return fmt.Errorf("code expiry minutes must be positive")
	}
	if config.Consent.MaxAttempts <= 0 {
		return fmt.Errorf("max attempts must be positive")
	}
	if config.Consent.ResendCooldownSeconds <= 0 {
		return fmt.Errorf("resend cooldown seconds must be positive")
	}
	if config.Consent.MaxResendCount < 0 {
		return fmt.Errorf("max resend count must be non-negative")
	}
	if config.Consent.RateLimitWindowMinutes <= 0 {
		return fmt.Errorf("rate limit window minutes must be positive")
	}
	if config.Consent.RateLimitMaxSubmissions <= 0 {
		return fmt.Errorf("rate limit max submissions must be positive")
	}

	if config.Email.FromEmail == "" {
		return fmt.Errorf("email from address is required")
	}
	if config.Email.EnableStaffNotifications && len(config.Email.StaffRecipients) == 0 {
		return fmt.Errorf("staff recipients are required when staff notifications are enabled")
	}

	return nil
}

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// SetGlobal sets the global configuration (for testing purposes)
func SetGlobal(cfg *Config) {
	globalConfig = cfg
}

// GetDSN returns the database connection string
func (d *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&multiStatements=true",
		d.User,
		d.Password,
		d.Hostname,
		d.Port,
		d.Database,
	)
}

// GetServerAddress returns the server address in host:port format
func (s *ServerConfig) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", s.Hostname, s.Port)
}

// FromAddress returns the RFC 5322 sender for outbound mail.
func (e *EmailConfig) FromAddress() string {
	if e.FromName == "" {
		return e.FromEmail
	}
	return fmt.Sprintf("%s <%s>", e.FromName, e.FromEmail)
}

// CodeExpiry returns the code lifetime as a duration.
func (c *ConsentConfig) CodeExpiry() time.Duration {
	return time.Duration(c.CodeExpiryMinutes) * time.Minute
}

// ResendCooldown returns the resend cooldown as a duration.
func (c *ConsentConfig) ResendCooldown() time.Duration {
	return time.Duration(c.ResendCooldownSeconds) * time.Second
}

// RateLimitWindow returns the trailing rate-limit window as a duration.
func (c *ConsentConfig) RateLimitWindow() time.Duration {
	return time.Duration(c.RateLimitWindowMinutes) * time.Minute
}
