package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/joho/godotenv"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Warn("no .env file found, using system environment")
	}
}

// Config returns a single environment value.
func Config(key string) string {
	return os.Getenv(key)
}

type DatabaseConfig struct {
	Host     string
	Port     uint64
	User     string
	Password string
	Name     string
}

type GatewayConfig struct {
	BaseURL     string
	SecretKey   string
	RedirectURL string
	Currency    string
	Timeout     time.Duration
}

type MailConfig struct {
	Driver   string // gomail | email
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

type BrokerConfig struct {
	URL      string
	Exchange string
}

// AppConfig is read once at startup and handed to every component that needs it.
type AppConfig struct {
	Port        string
	CorsOrigins string
	JWTSecret   string
	TokenTTL    time.Duration
	RedisURL    string

	Database   DatabaseConfig
	Gateway    GatewayConfig
	Mail       MailConfig
	Cloudinary CloudinaryConfig
	Broker     BrokerConfig

	ReconcileInterval time.Duration
	PendingPaymentAge time.Duration
	EventCloseSpec    string
}

func Load() *AppConfig {
	return &AppConfig{
		Port:        getEnv("PORT", "8002"),
		CorsOrigins: getEnv("CORS_ORIGINS", "http://localhost:5173"),
		JWTSecret:   getEnv("JWT_SECRET", ""),
		TokenTTL:    getEnvAsDuration("TOKEN_TTL", "1h"),
		RedisURL:    getEnv("REDIS_URL", ""),

		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     uint64(getEnvAsInt("DB_PORT", 5432)),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "event_ticketing"),
		},
		Gateway: GatewayConfig{
			BaseURL:     strings.TrimRight(getEnv("KORAPAY_BASE_URL", "https://api.korapay.com/merchant/api/v1"), "/"),
			SecretKey:   getEnv("KORAPAY_SECRET_KEY", ""),
			RedirectURL: getEnv("PAYMENT_REDIRECT_URL", "http://localhost:5173/payment/verify"),
			Currency:    getEnv("PAYMENT_CURRENCY", "NGN"),
			Timeout:     getEnvAsDuration("GATEWAY_TIMEOUT", "15s"),
		},
		Mail: MailConfig{
			Driver:   getEnv("SMTP_DRIVER", "gomail"),
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getEnvAsInt("SMTP_PORT", 587),
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM", ""),
		},
		Cloudinary: CloudinaryConfig{
			CloudName: getEnv("CLOUDINARY_CLOUD_NAME", ""),
			APIKey:    getEnv("CLOUDINARY_API_KEY", ""),
			APISecret: getEnv("CLOUDINARY_API_SECRET", ""),
			Folder:    getEnv("CLOUDINARY_FOLDER", "events"),
		},
		Broker: BrokerConfig{
			URL:      getEnv("RABBITMQ_URL", ""),
			Exchange: getEnv("RABBITMQ_EXCHANGE", "ticketing"),
		},

		ReconcileInterval: getEnvAsDuration("RECONCILE_INTERVAL", "5m"),
		PendingPaymentAge: getEnvAsDuration("PENDING_PAYMENT_AGE", "30m"),
		EventCloseSpec:    getEnv("EVENT_CLOSE_SPEC", "*/10 * * * *"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
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

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	if duration, err := time.ParseDuration(getEnv(key, defaultValue)); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
