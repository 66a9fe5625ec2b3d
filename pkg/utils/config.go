package utils

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Payment  PaymentConfig
	Tracing  TracingConfig
	Order    OrderConfig
}

type AppConfig struct {
	Name            string
	Port            string
	Debug           bool
	LogPath         string
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Host           string
	Port           string
	Name           string
	User           string
	Password       string
	SSLMode        string
	MaxConns       int32
	MigrationsPath string
	MigrateOnStart bool
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	CartTTL  time.Duration
}

type KafkaConfig struct {
	Brokers    []string
	OrderTopic string
}

type PaymentConfig struct {
	BaseURL               string
	AccessToken           string
	Timeout               time.Duration
	SuccessURL            string
	FailureURL            string
	PendingURL            string
	NotificationURL       string
	BreakerMaxFailures    int
	BreakerResetTimeout   time.Duration
	FallbackLatestPending bool
}

type TracingConfig struct {
	Enabled  bool
	Endpoint string
}

type OrderConfig struct {
	HeartbeatWindow time.Duration
	ListLimit       int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "food-marketplace")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("MIGRATIONS_PATH", "migrations")
	viper.SetDefault("MIGRATE_ON_START", true)
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("CART_TTL", "24h")
	viper.SetDefault("KAFKA_ORDER_TOPIC", "order-events")
	viper.SetDefault("PAYMENT_BASE_URL", "https://api.mercadopago.com")
	viper.SetDefault("PAYMENT_TIMEOUT", "10s")
	viper.SetDefault("PAYMENT_SUCCESS_URL", "http://localhost:8080/pago-exitoso")
	viper.SetDefault("PAYMENT_FAILURE_URL", "http://localhost:8080/pago-fallido")
	viper.SetDefault("PAYMENT_PENDING_URL", "http://localhost:8080/pago-pendiente")
	viper.SetDefault("PAYMENT_NOTIFICATION_URL", "http://localhost:8080/api/payments/webhook")
	viper.SetDefault("PAYMENT_BREAKER_MAX_FAILURES", 3)
	viper.SetDefault("PAYMENT_BREAKER_RESET", "30s")
	viper.SetDefault("PAYMENT_WEBHOOK_FALLBACK_LATEST_PENDING", false)
	viper.SetDefault("HEARTBEAT_WINDOW", "2m")
	viper.SetDefault("ORDER_LIST_LIMIT", 50)
	viper.SetDefault("TRACING_ENABLED", false)
	viper.SetDefault("TRACING_ENDPOINT", "http://localhost:14268/api/traces")

	// .env is optional; the environment alone is enough in containers
	if _, err := os.Stat(".env"); err == nil {
		if err := viper.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:            viper.GetString("APP_NAME"),
			Port:            viper.GetString("PORT"),
			Debug:           viper.GetBool("DEBUG"),
			LogPath:         viper.GetString("LOG_PATH"),
			ShutdownTimeout: viper.GetDuration("SHUTDOWN_TIMEOUT"),
		},
		Database: DatabaseConfig{
			Host:           viper.GetString("DB_HOST"),
			Port:           viper.GetString("DB_PORT"),
			Name:           viper.GetString("DB_NAME"),
			User:           viper.GetString("DB_USER"),
			Password:       viper.GetString("DB_PASS"),
			SSLMode:        viper.GetString("DB_SSLMODE"),
			MaxConns:       viper.GetInt32("DB_MAX_CONNS"),
			MigrationsPath: viper.GetString("MIGRATIONS_PATH"),
			MigrateOnStart: viper.GetBool("MIGRATE_ON_START"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
			CartTTL:  viper.GetDuration("CART_TTL"),
		},
		Kafka: KafkaConfig{
			Brokers:    splitList(viper.GetString("KAFKA_BROKERS")),
			OrderTopic: viper.GetString("KAFKA_ORDER_TOPIC"),
		},
		Payment: PaymentConfig{
			BaseURL:               viper.GetString("PAYMENT_BASE_URL"),
			AccessToken:           viper.GetString("PAYMENT_ACCESS_TOKEN"),
			Timeout:               viper.GetDuration("PAYMENT_TIMEOUT"),
			SuccessURL:            viper.GetString("PAYMENT_SUCCESS_URL"),
			FailureURL:            viper.GetString("PAYMENT_FAILURE_URL"),
			PendingURL:            viper.GetString("PAYMENT_PENDING_URL"),
			NotificationURL:       viper.GetString("PAYMENT_NOTIFICATION_URL"),
			BreakerMaxFailures:    viper.GetInt("PAYMENT_BREAKER_MAX_FAILURES"),
			BreakerResetTimeout:   viper.GetDuration("PAYMENT_BREAKER_RESET"),
			FallbackLatestPending: viper.GetBool("PAYMENT_WEBHOOK_FALLBACK_LATEST_PENDING"),
		},
		Tracing: TracingConfig{
			Enabled:  viper.GetBool("TRACING_ENABLED"),
			Endpoint: viper.GetString("TRACING_ENDPOINT"),
		},
		Order: OrderConfig{
			HeartbeatWindow: viper.GetDuration("HEARTBEAT_WINDOW"),
			ListLimit:       viper.GetInt("ORDER_LIST_LIMIT"),
		},
	}

	return config, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
