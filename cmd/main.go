package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"eldercare-monitor/internal/config"
	domainPairing "eldercare-monitor/internal/domain/pairing"
	"eldercare-monitor/internal/infrastructure/database/postgres"
	"eldercare-monitor/internal/infrastructure/notify"
	"eldercare-monitor/internal/ingestion"
	"eldercare-monitor/internal/logger"
	"eldercare-monitor/internal/routes"
	pkgmqtt "eldercare-monitor/pkg/mqtt"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("Failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	env := cfg.Server.Environment
	if env == "" {
		env = "development"
	}
	if err := logger.Init(env); err != nil {
		os.Stderr.WriteString("Failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("environment", env),
	)

	if cfg.Database.Host == "" || cfg.Database.DBName == "" {
		logger.Fatal("Database configuration is missing. Please set DB_HOST and DB_NAME environment variables.")
	}
	if cfg.JWT.Secret == "" {
		logger.Fatal("JWT secret is missing. Please set JWT_SECRET environment variable.")
	}

	db, err := postgres.NewDB(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", zap.Error(err))
		}
	}()

	var notifier domainPairing.Notifier
	if cfg.Redis.Addr != "" {
		redisNotifier, err := notify.NewRedisNotifier(&cfg.Redis)
		if err != nil {
			logger.Fatal("Failed to connect to redis", zap.Error(err))
		}
		defer func() {
			if err := redisNotifier.Close(); err != nil {
				logger.Error("Failed to close redis connection", zap.Error(err))
			}
		}()
		notifier = redisNotifier
	} else {
		logger.Warn("REDIS_ADDR not set; pairing status changes will not be pushed")
	}

	if cfg.MQTT.Broker != "" {
		processor := ingestion.NewProcessor(postgres.NewILQScoreRepository(db))
		ingestionClient, err := ingestion.NewMQTTIngestionClient(&ingestion.MQTTIngestionConfig{
			ClientConfig: &pkgmqtt.Config{
				Broker:               cfg.MQTT.Broker,
				ClientID:             cfg.MQTT.ClientID,
				Username:             cfg.MQTT.Username,
				Password:             cfg.MQTT.Password,
				CleanSession:         true,
				KeepAlive:            30,
				ConnectTimeout:       10,
				AutoReconnect:        true,
				MaxReconnectInterval: time.Minute,
			},
			WellbeingTopic: cfg.MQTT.WellbeingTopic,
			QoS:            byte(cfg.MQTT.QoS),
		}, processor)
		if err != nil {
			logger.Fatal("Failed to build MQTT ingestion client", zap.Error(err))
		}
		if err := ingestionClient.Start(); err != nil {
			logger.Fatal("Failed to start MQTT ingestion", zap.Error(err))
		}
		defer ingestionClient.Stop()
	} else {
		logger.Warn("MQTT_BROKER not set; score ingestion disabled")
	}

	router := routes.SetupRoutes(cfg, db, notifier)

	host := cfg.Server.Host
	if host == "" {
		host = "0.0.0.0"
	}
	port := cfg.Server.Port
	if port == "" {
		port = "8080"
	}
	addr := net.JoinHostPort(host, port)

	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Server starting",
			zap.String("address", addr),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutdown Server ...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("Failed to shutdown server", zap.Error(err))
	}

	log.Println("Server exited properly")
}
