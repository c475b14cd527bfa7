package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/aussiebroadwan/reelbook/pkg/httpx"
)

type Config struct {
	DatabaseFile string // Optional: path to SQLite database file (default: ./diary.db)
	PepperFile   string // Optional: path to the password pepper file (default: ./pepper)

	TokenSecret string        // Required outside dev: HS256 signing secret
	TokenIssuer string        // Optional: issuer claim (default: reelbook-diary)
	TokenTTL    time.Duration // Optional: session token lifetime (default: 24h)
	CodeTTL     time.Duration // Optional: verification code lifetime (default: 10m)

	MaintenanceSchedule string // Optional: cron spec for the code sweep (default: @daily)

	MailTransport string // Optional: log or smtp (default: log)
	MailFrom      string // Required for smtp: sender address
	SMTPHost      string
	SMTPPort      int // default: 587
	SMTPUsername  string
	SMTPPassword  string

	AdminHandle   string // Optional: seed a verified ADMIN on start
	AdminEmail    string
	AdminPassword string

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

// LoadConfig reads the environment after overlaying the file named by
// DIARY_ENV_FILE (default .env). Variables already set win over the file,
// and a missing file is not an error.
func LoadConfig() (Config, error) {
	envFile := getEnvOrDefault("DIARY_ENV_FILE", ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", envFile, err)
	}
	httpx.LoadRateLimitsFromEnv()

	cfg := Config{
		DatabaseFile: getEnvOrDefault("DIARY_DATABASE_FILE", "diary.db"),
		PepperFile:   getEnvOrDefault("DIARY_PEPPER_FILE", "pepper"),

		TokenSecret: os.Getenv("DIARY_TOKEN_SECRET"),
		TokenIssuer: getEnvOrDefault("DIARY_TOKEN_ISSUER", "reelbook-diary"),
		TokenTTL:    getEnvDurationOrDefault("DIARY_TOKEN_TTL", 24*time.Hour),
		CodeTTL:     getEnvDurationOrDefault("DIARY_CODE_TTL", 10*time.Minute),

		MaintenanceSchedule: getEnvOrDefault("DIARY_MAINTENANCE_SCHEDULE", "@daily"),

		MailTransport: getEnvOrDefault("MAIL_TRANSPORT", "log"),
		MailFrom:      os.Getenv("MAIL_FROM"),
		SMTPHost:      os.Getenv("SMTP_HOST"),
		SMTPPort:      getEnvIntOrDefault("SMTP_PORT", 587),
		SMTPUsername:  os.Getenv("SMTP_USERNAME"),
		SMTPPassword:  os.Getenv("SMTP_PASSWORD"),

		AdminHandle:   os.Getenv("ADMIN_USERNAME"),
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	return cfg, nil
}

// Validate reports settings the service cannot start with.
func (c Config) Validate() error {
	if c.TokenSecret == "" && c.Env != "dev" {
		return errors.New("DIARY_TOKEN_SECRET is required outside dev")
	}
	if c.TokenSecret != "" && len(c.TokenSecret) < 32 {
		return errors.New("DIARY_TOKEN_SECRET must be at least 32 characters")
	}

	switch c.MailTransport {
	case "log":
	case "smtp":
		if c.SMTPHost == "" || c.MailFrom == "" {
			return errors.New("MAIL_TRANSPORT=smtp needs SMTP_HOST and MAIL_FROM")
		}
	default:
		return fmt.Errorf("unknown MAIL_TRANSPORT %q (want log or smtp)", c.MailTransport)
	}

	if c.AdminHandle != "" && (c.AdminEmail == "" || c.AdminPassword == "") {
		return errors.New("ADMIN_USERNAME needs ADMIN_EMAIL and ADMIN_PASSWORD")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
