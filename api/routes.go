package api

import (
	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"

	"github.com/customeros/ingestgen/api/handlers"
	"github.com/customeros/ingestgen/api/middleware"
	"github.com/customeros/ingestgen/internal/logger"
	"github.com/customeros/ingestgen/internal/repository"
	"github.com/customeros/ingestgen/internal/tracing"
)

// RegisterRoutes sets up the sink endpoints under the same paths as the real ingest API.
func RegisterRoutes(r *gin.Engine, repos *repository.Repositories, log logger.Logger, apikey string) {
	if repos == nil {
		panic("Repositories cannot be nil")
	}

	r.Use(gin.Recovery())
	r.Use(tracing.RecoveryWithJaeger(opentracing.GlobalTracer()))

	apiHandlers := handlers.InitHandlers(repos, log)

	r.GET("/health", handlers.HealthCheck)

	apiKeyMiddleware := middleware.APIKeyMiddleware(middleware.APIKeyConfig{
		HeaderName:  "Authorization",
		ValidAPIKey: apikey,
	})

	events := r.Group("/api/v1/ingest/events")
	events.Use(middleware.TracingMiddleware())
	{
		// documentation is public
		events.GET("/documentation", apiHandlers.Ingest.Documentation())

		authorized := events.Group("")
		authorized.Use(apiKeyMiddleware)
		authorized.POST("", apiHandlers.Ingest.Upload())
		authorized.GET("/failures/:id", apiHandlers.Ingest.Failures())
	}
}
