package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the settings shared by the server, the mail worker and the seeder.
type Config struct {
	Env     string
	Port    string
	AppName string
	AppURL  string

	JWTSecret   string
	TokenTTL    time.Duration
	CORSOrigins string

	DB    DBConfig
	Redis RedisConfig
	Mail  MailConfig

	DepositWriteTimeout time.Duration
	DepositMaxAmount    string
}

type DBConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type MailConfig struct {
	Driver         string // "mailgun" or "log"
	From           string
	MailgunDomain  string
	MailgunAPIKey  string
	MailgunAPIBase string
	QueueKey       string
	Workers        int
	MaxAttempts    int
	RetryBackoff   time.Duration
	Embedded       bool
}

// LoadEnv loads variables from a .env file if present.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file found: %v", err)
	}
}

// Load reads the full configuration from the environment.
func Load() *Config {
	return &Config{
		Env:         GetEnv("ENV", "development"),
		Port:        GetEnv("PORT", "3000"),
		AppName:     GetEnv("APP_NAME", "Depositor"),
		AppURL:      GetEnv("APP_URL", "http://localhost:3000"),
		JWTSecret:   GetEnv("JWT_SECRET", "depositor"),
		TokenTTL:    GetDurationEnv("JWT_TTL", 24*time.Hour),
		CORSOrigins: GetEnv("CORS_ORIGINS", "http://localhost:5173"),
		DB: DBConfig{
			Host:            GetEnv("DB_HOST", "localhost"),
			Port:            GetEnv("DB_PORT", "5432"),
			User:            GetEnv("DB_USER", "postgres"),
			Password:        GetEnv("DB_PASSWORD", "postgres"),
			Name:            GetEnv("DB_NAME", "depositor"),
			SSLMode:         GetEnv("DB_SSLMODE", "disable"),
			MaxIdleConns:    GetIntEnv("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    GetIntEnv("DB_MAX_OPEN_CONNS", 100),
			ConnMaxLifetime: GetDurationEnv("DB_CONN_MAX_LIFETIME", time.Hour),
			ConnMaxIdleTime: GetDurationEnv("DB_CONN_MAX_IDLE_TIME", 30*time.Minute),
		},
		Redis: RedisConfig{
			Host:     GetEnv("REDIS_HOST", "localhost"),
			Port:     GetEnv("REDIS_PORT", "6379"),
			Password: GetEnv("REDIS_PASSWORD", ""),
			DB:       GetIntEnv("REDIS_DB", 0),
		},
		Mail: MailConfig{
			Driver:         GetEnv("MAIL_DRIVER", "log"),
			From:           GetEnv("MAIL_FROM", "no-reply@depositor.local"),
			MailgunDomain:  GetEnv("MAILGUN_DOMAIN", ""),
			MailgunAPIKey:  GetEnv("MAILGUN_API_KEY", ""),
			MailgunAPIBase: GetEnv("MAILGUN_API_BASE", ""),
			QueueKey:       GetEnv("MAIL_QUEUE_KEY", "queue:mail"),
			Workers:        GetIntEnv("MAIL_WORKERS", 4),
			MaxAttempts:    GetIntEnv("MAIL_MAX_ATTEMPTS", 3),
			RetryBackoff:   GetDurationEnv("MAIL_RETRY_BACKOFF", 2*time.Second),
			Embedded:       GetBoolEnv("MAIL_WORKER_EMBEDDED", true),
		},
		DepositWriteTimeout: GetDurationEnv("DEPOSIT_WRITE_TIMEOUT", 5*time.Second),
		DepositMaxAmount:    GetEnv("DEPOSIT_MAX_AMOUNT", "1000000"),
	}
}

// GetEnv returns an environment variable or a default value.
func GetEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return defaultVal
}

// GetIntEnv returns an int environment variable or a default value.
func GetIntEnv(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// GetDurationEnv parses values like "5s" or "1h"; invalid values fall back to the default.
func GetDurationEnv(key string, defaultVal time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}

func GetBoolEnv(key string, defaultVal bool) bool {
	if val, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

// IsProduction checks if the app runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
