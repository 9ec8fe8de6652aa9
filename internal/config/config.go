package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	DB     DBConfig
	Admin  AdminConfig
	Server ServerConfig
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type AdminConfig struct {
	// BootstrapPasscode and BootstrapTOTPSecret seed the settings row the
	// first time the service runs. The passcode is only consulted during that
	// first initialization; the TOTP secret must always be present so a
	// partially-configured deployment fails at startup, not mid-request.
	BootstrapPasscode   string
	BootstrapTOTPSecret string
	SessionSecret       string
	SessionTTL          time.Duration
	TOTPLabel           string
	TOTPIssuer          string
	// LoginRatePerMinute caps login attempts per client IP. Zero disables
	// throttling.
	LoginRatePerMinute int
}

type ServerConfig struct {
	Port           string
	AllowedOrigins string
}

// Load reads configuration from the environment. Missing mandatory secrets
// are a startup error: the service must never run with an absent signing
// secret or TOTP bootstrap secret.
func Load() (*Config, error) {
	sessionSecret := os.Getenv("ADMIN_SESSION_SECRET")
	if sessionSecret == "" {
		return nil, fmt.Errorf("ADMIN_SESSION_SECRET must be defined")
	}

	totpSecret := os.Getenv("ADMIN_TOTP_SECRET")
	if totpSecret == "" {
		return nil, fmt.Errorf("ADMIN_TOTP_SECRET must be defined")
	}

	return &Config{
		DB: DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "portfolio"),
			Password: getEnv("DB_PASSWORD", "portfolio_secret"),
			Name:     getEnv("DB_NAME", "portfolio"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Admin: AdminConfig{
			BootstrapPasscode:   os.Getenv("ADMIN_PASSCODE"),
			BootstrapTOTPSecret: totpSecret,
			SessionSecret:       sessionSecret,
			SessionTTL:          time.Duration(getEnvAsInt("ADMIN_SESSION_TTL", 60*60*12)) * time.Second,
			TOTPLabel:           getEnv("ADMIN_TOTP_LABEL", "Portfolio Admin"),
			TOTPIssuer:          getEnv("ADMIN_TOTP_ISSUER", "Portfolio"),
			LoginRatePerMinute:  getEnvAsInt("ADMIN_LOGIN_RATE_LIMIT", 10),
		},
		Server: ServerConfig{
			Port:           getEnv("SERVER_PORT", "8080"),
			AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000"),
		},
	}, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.Atoi(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}
