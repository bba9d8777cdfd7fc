package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm/logger"
)

type ServerConfig struct {
	Port           string
	Env            string
	RequestTimeout time.Duration
	SlowRequest    time.Duration
	AllowOrigins   []string
}

type DBConfig struct {
	URL             string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	LogLevel        logger.LogLevel
}

// DSN prefers an explicit DB_URL and otherwise builds one from the parts.
func (c *DBConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

type AuthConfig struct {
	JWTSecret     string
	Issuer        string
	Audience      string
	WebhookSecret string
}

type ShopConfig struct {
	Timezone  string
	OpenHour  int
	CloseHour int
	SlotStep  int // minutes
}

type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	ReportTTL time.Duration
}

type TwilioConfig struct {
	AccountSID   string
	AuthToken    string
	FromNumber   string
	ReminderSpec string
}

// Enabled reports whether SMS reminders can be sent.
func (c *TwilioConfig) Enabled() bool {
	return c.AccountSID != "" && c.AuthToken != "" && c.FromNumber != ""
}

type Config struct {
	ServiceName string
	Server      ServerConfig
	DB          DBConfig
	Auth        AuthConfig
	Shop        ShopConfig
	Redis       RedisConfig
	Twilio      TwilioConfig
}

// Load reads configuration from the environment, optionally seeded from .env.
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := &Config{
		ServiceName: getEnv("SERVICE_NAME", "nailbook"),
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			Env:            getEnv("APP_ENV", "development"),
			RequestTimeout: getEnvAsDuration("REQUEST_TIMEOUT", 10*time.Second),
			SlowRequest:    getEnvAsDuration("SLOW_REQUEST_THRESHOLD", 200*time.Millisecond),
			AllowOrigins:   getEnvAsList("CORS_ALLOW_ORIGINS", []string{"http://localhost:3000"}),
		},
		DB: DBConfig{
			URL:             getEnv("DB_URL", ""),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "postgres"),
			Name:            getEnv("DB_NAME", "nailbook"),
			SSLMode:         getEnv("DB_SSL_MODE", "disable"),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 50),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", time.Hour),
			LogLevel:        getEnvAsLogLevel("DB_LOG_LEVEL", logger.Warn),
		},
		Auth: AuthConfig{
			JWTSecret:     getEnv("JWT_SECRET", ""),
			Issuer:        getEnv("JWT_ISSUER", ""),
			Audience:      getEnv("JWT_AUDIENCE", ""),
			WebhookSecret: getEnv("IDENTITY_WEBHOOK_SECRET", ""),
		},
		Shop: ShopConfig{
			Timezone:  getEnv("SHOP_TIMEZONE", "America/Los_Angeles"),
			OpenHour:  getEnvAsInt("SHOP_OPEN_HOUR", 11),
			CloseHour: getEnvAsInt("SHOP_CLOSE_HOUR", 20),
			SlotStep:  getEnvAsInt("SHOP_SLOT_MINUTES", 15),
		},
		Redis: RedisConfig{
			Addr:      getEnv("REDIS_ADDR", ""),
			Password:  getEnv("REDIS_PASSWORD", ""),
			DB:        getEnvAsInt("REDIS_DB", 0),
			ReportTTL: getEnvAsDuration("REPORT_CACHE_TTL", time.Minute),
		},
		Twilio: TwilioConfig{
			AccountSID:   getEnv("TWILIO_ACCOUNT_SID", ""),
			AuthToken:    getEnv("TWILIO_AUTH_TOKEN", ""),
			FromNumber:   getEnv("TWILIO_PHONE_NUMBER", ""),
			ReminderSpec: getEnv("REMINDER_CRON", "0 9 * * *"),
		},
	}

	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET not set")
	}
	if cfg.Shop.OpenHour < 0 || cfg.Shop.CloseHour > 24 || cfg.Shop.OpenHour >= cfg.Shop.CloseHour {
		return nil, fmt.Errorf("invalid shop hours %d-%d", cfg.Shop.OpenHour, cfg.Shop.CloseHour)
	}
	if cfg.Shop.SlotStep <= 0 {
		return nil, fmt.Errorf("invalid slot step %d", cfg.Shop.SlotStep)
	}

	return cfg, nil
}

// LogFields is the non-secret part of the configuration, for the startup log line.
func (c *Config) LogFields() []zap.Field {
	return []zap.Field{
		zap.String("environment", c.Server.Env),
		zap.String("port", c.Server.Port),
		zap.String("shop_timezone", c.Shop.Timezone),
		zap.Bool("redis", c.Redis.Addr != ""),
		zap.Bool("sms_reminders", c.Twilio.Enabled()),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, err := time.ParseDuration(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvAsLogLevel(key string, defaultValue logger.LogLevel) logger.LogLevel {
	switch getEnv(key, "") {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "warn":
		return logger.Warn
	case "info":
		return logger.Info
	default:
		return defaultValue
	}
}
