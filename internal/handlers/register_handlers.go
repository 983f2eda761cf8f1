package handlers

import (
	"fmt"
	"slices"
	"time"

	"github.com/SscSPs/chart_ledger/cmd/docs"
	portssvc "github.com/SscSPs/chart_ledger/internal/core/ports/services"
	"github.com/SscSPs/chart_ledger/internal/middleware"
	"github.com/SscSPs/chart_ledger/internal/platform/config"
	"github.com/SscSPs/chart_ledger/internal/platform/i18n"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	tr *i18n.Translator,
) error {
	r.Use(corsMiddleware(cfg.CORSOrigins), middleware.Metrics())

	r.GET("/health", getHealth(services.Account))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	if err := setupAPIV1Routes(r, cfg, services, tr); err != nil {
		return err
	}

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	tr *i18n.Translator,
) error {
	chain := []gin.HandlerFunc{middleware.AuthMiddleware(cfg.JWTSecret)}
	if cfg.RateLimit != "" {
		limiter, err := middleware.NewMemoryLimiter(cfg.RateLimit)
		if err != nil {
			return fmt.Errorf("invalid RATE_LIMIT %q: %w", cfg.RateLimit, err)
		}
		chain = append([]gin.HandlerFunc{middleware.RateLimit(limiter)}, chain...)
	}
	v1 := r.Group("/api/v1", chain...)

	registerAccountRoutes(v1, services.Account, tr)
	registerEntryRoutes(v1, services.Journal, tr)
	registerScopeRoutes(v1, services.Scope, tr)
	return nil
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "Accept-Language", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Language", "X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = origins
	}
	return cors.New(corsCfg)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
