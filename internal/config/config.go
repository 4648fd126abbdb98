package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server   ServerConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Payment  PaymentConfig
	SMTP     SMTPConfig
	CORS     CORSConfig
	Features FeatureFlags
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	TTL      time.Duration
}

type KafkaConfig struct {
	Brokers      []string
	ReceiptTopic string
}

type PaymentConfig struct {
	BaseURL       string
	SecretKey     string
	WebhookSecret string
	Timeout       time.Duration
}

type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromName    string
	FromAddress string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type FeatureFlags struct {
	EnableReceiptCaching bool
	EnableOrderEvents    bool
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnvInt("SERVER_PORT", 5000),
			ReadTimeout:  time.Duration(getEnvInt("SERVER_READ_TIMEOUT", 30)) * time.Second,
			WriteTimeout: time.Duration(getEnvInt("SERVER_WRITE_TIMEOUT", 30)) * time.Second,
		},
		Redis: RedisConfig{
			Host:     getEnvString("REDIS_HOST", "localhost"),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnvString("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			TTL:      time.Duration(getEnvInt("REDIS_TTL_MINUTES", 60)) * time.Minute,
		},
		Kafka: KafkaConfig{
			Brokers:      strings.Split(getEnvString("KAFKA_BROKERS", "localhost:9092"), ","),
			ReceiptTopic: getEnvString("KAFKA_RECEIPT_TOPIC", "storefront.receipts"),
		},
		Payment: PaymentConfig{
			BaseURL:       getEnvString("PAYMENT_API_URL", "https://api.payments.example.com"),
			SecretKey:     getEnvString("PAYMENT_SECRET_KEY", ""),
			WebhookSecret: getEnvString("PAYMENT_WEBHOOK_SECRET", ""),
			Timeout:       time.Duration(getEnvInt("PAYMENT_TIMEOUT", 30)) * time.Second,
		},
		SMTP: SMTPConfig{
			Host:        getEnvString("SMTP_HOST", "smtp.gmail.com"),
			Port:        getEnvInt("SMTP_PORT", 587),
			Username:    getEnvString("EMAIL_USER", ""),
			Password:    getEnvString("EMAIL_PASS", ""),
			FromName:    getEnvString("EMAIL_FROM_NAME", "Commencement Depot"),
			FromAddress: getEnvString("EMAIL_FROM_ADDRESS", ""),
		},
		CORS: CORSConfig{
			AllowedOrigins: strings.Split(
				getEnvString("CORS_ALLOWED_ORIGINS", "https://commencementdepot.com,http://localhost:3000"),
				",",
			),
		},
		Features: FeatureFlags{
			EnableReceiptCaching: getEnvBool("ENABLE_RECEIPT_CACHING", true),
			EnableOrderEvents:    getEnvBool("ENABLE_ORDER_EVENTS", true),
		},
	}
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
