// main.go
package main

import (
	"context"
	"log"

	"food-marketplace/cmd"
	"food-marketplace/internal/data/repository"
	"food-marketplace/internal/events"
	"food-marketplace/internal/gateway"
	"food-marketplace/internal/wire"
	"food-marketplace/pkg/cache"
	"food-marketplace/pkg/circuitbreaker"
	"food-marketplace/pkg/database"
	"food-marketplace/pkg/messaging"
	"food-marketplace/pkg/tracing"
	"food-marketplace/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Tracing
	shutdownTracing, err := tracing.InitTracing(config.App, config.Tracing, logger)
	if err != nil {
		logger.Fatal("Failed to init tracing", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), config.App.ShutdownTimeout)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			logger.Warn("Tracer shutdown failed", zap.Error(err))
		}
	}()

	// Connect to database
	if config.Database.MigrateOnStart {
		if err := database.Migrate(config.Database, logger); err != nil {
			logger.Fatal("Failed to run migrations", zap.Error(err))
		}
	}

	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Cart storage: redis when configured, in-process otherwise
	var carts repository.CartRepository
	if config.Redis.Addr != "" {
		rdb, err := cache.InitRedis(config.Redis, logger)
		if err != nil {
			logger.Fatal("Failed to connect to redis", zap.Error(err))
		}
		defer rdb.Close()
		carts = repository.NewRedisCartRepository(rdb, config.Redis.CartTTL, logger)
	} else {
		logger.Info("REDIS_ADDR not set, using in-memory cart storage")
		carts = repository.NewMemoryCartRepository(config.Redis.CartTTL)
	}

	// Order events
	publisher := events.NewNoopPublisher(logger)
	if len(config.Kafka.Brokers) > 0 {
		producer, err := messaging.InitProducer(config.Kafka, logger)
		if err != nil {
			logger.Fatal("Failed to init kafka producer", zap.Error(err))
		}
		defer producer.Close()
		publisher = events.NewKafkaPublisher(producer, config.Kafka.OrderTopic, logger)
	}

	// Payment gateway
	gw := gateway.NewDisabledGateway()
	if config.Payment.AccessToken != "" {
		breaker := circuitbreaker.NewCircuitBreaker(config.Payment.BreakerMaxFailures, config.Payment.BreakerResetTimeout)
		gw = gateway.NewMercadoPagoGateway(config.Payment, breaker, logger)
	} else {
		logger.Warn("PAYMENT_ACCESS_TOKEN not set, checkout will issue mock preferences")
	}

	// Initialize all repositories
	repos := repository.NewRepository(db, carts, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, gw, publisher, config, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	if err := cmd.APIServer(app.Router, config.App.Port, config.App.ShutdownTimeout, logger); err != nil {
		logger.Error("Server error", zap.Error(err))
	}
}
