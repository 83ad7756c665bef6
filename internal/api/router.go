package api

import (
	"net/http"

	"customer-chatbot/config"
	"customer-chatbot/internal/api/v1/chat"
	"customer-chatbot/internal/api/v1/history"
	"customer-chatbot/internal/api/v1/intents"
	"customer-chatbot/internal/api/v1/products"
	"customer-chatbot/internal/api/v1/voice"
	"customer-chatbot/internal/database"
	"customer-chatbot/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter builds the HTTP API. limiter may be nil to disable rate limiting
// on the chat and voice endpoints.
func NewRouter(cfg *config.Config, limiter middleware.Limiter) *gin.Engine {
	router := gin.New()
	router.Use(middleware.Logger(), gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum age for preflight requests
	}))

	router.GET("/health", health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	var limited []gin.HandlerFunc
	if limiter != nil {
		limited = append(limited, middleware.RateLimit(limiter))
	}

	v1 := router.Group("/api/v1")
	{
		chat.RegisterRoutes(v1, limited...)
		voice.RegisterRoutes(v1, limited...)
		history.RegisterRoutes(v1)
		products.RegisterRoutes(v1)
		intents.RegisterRoutes(v1)
	}

	return router
}

func health(c *gin.Context) {
	status := http.StatusOK
	body := gin.H{"status": "ok", "database": "ok", "redis": "disabled"}

	if database.DB == nil {
		status, body["database"] = http.StatusServiceUnavailable, "unavailable"
	} else if sqlDB, err := database.DB.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
		status, body["database"] = http.StatusServiceUnavailable, "unavailable"
	}
	if database.RedisClient != nil {
		body["redis"] = "ok"
		if err := database.RedisClient.Ping(c.Request.Context()).Err(); err != nil {
			body["redis"] = "unavailable"
		}
	}
	if status != http.StatusOK {
		body["status"] = "degraded"
	}
	c.JSON(status, body)
}
