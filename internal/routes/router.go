package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"eldercare-monitor/internal/config"
	"eldercare-monitor/internal/delivery/http/handler"
	domainPairing "eldercare-monitor/internal/domain/pairing"
	"eldercare-monitor/internal/infrastructure/database/postgres"
	"eldercare-monitor/internal/logger"
	"eldercare-monitor/internal/middleware"
	"eldercare-monitor/internal/usecase/device"
	"eldercare-monitor/internal/usecase/ilq"
	"eldercare-monitor/internal/usecase/pairing"
)

func SetupRoutes(cfg *config.Config, db *postgres.DB, notifier domainPairing.Notifier) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware order: recovery, request ID, logging, security headers,
	// CORS, request size limit, general rate limit.
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(&cfg.CORS))
	router.Use(middleware.RequestSizeLimitMiddleware(1 << 20))
	router.Use(middleware.RateLimitMiddleware(cfg.RateLimit.GeneralRPS, cfg.RateLimit.GeneralBurst))

	router.GET("/health", func(c *gin.Context) {
		if err := db.Health(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"message": "Database connection failed",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Service is running",
		})
	})

	pairingRepository := postgres.NewPairingRepository(db)
	pairingService := pairing.NewService(pairingRepository, notifier, cfg.Pairing.CodeTTL)
	pairingHandler := handler.NewPairingHandler(pairingService)

	scoreRepository := postgres.NewILQScoreRepository(db)
	trendService := ilq.NewService(scoreRepository, cfg.Analyzer.DefaultLookbackDays)
	trendHandler := handler.NewTrendHandler(trendService)

	deviceRepository := postgres.NewDeviceRepository(db)
	deviceService := device.NewService(deviceRepository)
	deviceHandler := handler.NewDeviceHandler(deviceService)

	v1 := router.Group("/api/v1")
	{
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			pairingHandler.RegisterRoutes(protected)
			trendHandler.RegisterRoutes(protected)

			staff := protected.Group("")
			staff.Use(middleware.CaregiverOnly())
			deviceHandler.RegisterRoutes(staff)
		}
	}

	logger.Info("All routes initialized")
	return router
}
