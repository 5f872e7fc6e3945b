// Package config holds the process configuration, loaded once at
// startup and injected into component constructors. Nothing reads the
// environment after Load returns.
package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/tendant/chi-demo/app"
	dbutils "github.com/tendant/db-utils/db"

	"github.com/tendant/simple-auth/pkg/notification"
	"github.com/tendant/simple-auth/pkg/password"
)

// DbConfig holds Postgres connection settings.
type DbConfig struct {
	Host     string `env:"AUTH_PG_HOST" env-default:"localhost"`
	Port     uint16 `env:"AUTH_PG_PORT" env-default:"5432"`
	Database string `env:"AUTH_PG_DATABASE" env-default:"auth_db"`
	User     string `env:"AUTH_PG_USER" env-default:"auth"`
	Password string `env:"AUTH_PG_PASSWORD" env-default:"pwd"`
}

// ToDbConfig converts to the db-utils pool configuration.
func (d DbConfig) ToDbConfig() dbutils.DbConfig {
	return dbutils.DbConfig{
		Host:     d.Host,
		Port:     d.Port,
		Database: d.Database,
		User:     d.User,
		Password: d.Password,
	}
}

// URL returns the connection string used by the migration runner.
func (d DbConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		d.User, d.Password, d.Host, d.Port, d.Database)
}

// JwtConfig holds token signing settings.
type JwtConfig struct {
	Secret           string `env:"JWT_SECRET" env-default:"very-secure-jwt-secret"`
	Issuer           string `env:"JWT_ISSUER" env-default:"simple-auth"`
	TokenExpiryHours int    `env:"TOKEN_EXPIRY_HOURS" env-default:"168"`
}

// TokenExpiry returns the configured token lifetime.
func (j JwtConfig) TokenExpiry() time.Duration {
	return time.Duration(j.TokenExpiryHours) * time.Hour
}

// EmailConfig holds SMTP settings for outbound mail.
type EmailConfig struct {
	Host     string `env:"EMAIL_HOST" env-default:"localhost"`
	Port     int    `env:"EMAIL_PORT" env-default:"1025"`
	Username string `env:"EMAIL_USERNAME"`
	Password string `env:"EMAIL_PASSWORD"`
	From     string `env:"EMAIL_FROM" env-default:"noreply@example.com"`
	TLS      bool   `env:"EMAIL_TLS" env-default:"false"`
}

// ToSMTPConfig converts to the notification package's SMTP configuration.
func (e EmailConfig) ToSMTPConfig() notification.SMTPConfig {
	return notification.SMTPConfig{
		Host:     e.Host,
		Port:     e.Port,
		TLS:      e.TLS,
		Username: e.Username,
		Password: e.Password,
		From:     e.From,
	}
}

// OtpConfig holds email verification passcode settings.
type OtpConfig struct {
	Length        int `env:"OTP_LENGTH" env-default:"6"`
	ExpiryMinutes int `env:"OTP_EXPIRY_MINUTES" env-default:"1"`
}

// Expiry returns the configured passcode lifetime.
func (o OtpConfig) Expiry() time.Duration {
	return time.Duration(o.ExpiryMinutes) * time.Minute
}

// PasswordComplexityConfig holds password policy settings.
type PasswordComplexityConfig struct {
	RequiredDigit           bool `env:"PASSWORD_COMPLEXITY_REQUIRE_DIGIT" env-default:"true"`
	RequiredLowercase       bool `env:"PASSWORD_COMPLEXITY_REQUIRE_LOWERCASE" env-default:"true"`
	RequiredNonAlphanumeric bool `env:"PASSWORD_COMPLEXITY_REQUIRE_NON_ALPHANUMERIC" env-default:"true"`
	RequiredUppercase       bool `env:"PASSWORD_COMPLEXITY_REQUIRE_UPPERCASE" env-default:"true"`
	RequiredLength          int  `env:"PASSWORD_COMPLEXITY_REQUIRED_LENGTH" env-default:"8"`
}

// ToPolicy converts the configuration to a password.Policy.
func (c PasswordComplexityConfig) ToPolicy() *password.Policy {
	return &password.Policy{
		MinLength:          c.RequiredLength,
		RequireUppercase:   c.RequiredUppercase,
		RequireLowercase:   c.RequiredLowercase,
		RequireDigit:       c.RequiredDigit,
		RequireSpecialChar: c.RequiredNonAlphanumeric,
	}
}

// Config is the full process configuration.
type Config struct {
	DbConfig                 DbConfig
	AppConfig                app.AppConfig
	JwtConfig                JwtConfig
	EmailConfig              EmailConfig
	OtpConfig                OtpConfig
	PasswordComplexityConfig PasswordComplexityConfig
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	config := Config{}
	if err := cleanenv.ReadEnv(&config); err != nil {
		return nil, fmt.Errorf("failed to read config from environment: %w", err)
	}
	return &config, nil
}
