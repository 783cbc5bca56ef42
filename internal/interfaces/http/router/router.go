// Package router assembles the gin engine and the route table.
package router

import (
	"github.com/bizops/reporting/internal/domain/report"
	"github.com/bizops/reporting/internal/infrastructure/auth"
	"github.com/bizops/reporting/internal/infrastructure/config"
	"github.com/bizops/reporting/internal/infrastructure/logger"
	"github.com/bizops/reporting/internal/interfaces/http/handler"
	"github.com/bizops/reporting/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

// Handlers groups the endpoint handlers the router wires up.
type Handlers struct {
	System  *handler.SystemHandler
	Reports *handler.ReportHandler
	Finance *handler.FinanceHandler
}

// New builds the gin engine with the full middleware chain and route table.
func New(cfg *config.Config, verifier *auth.Verifier, handlers Handlers, log *zap.Logger) *gin.Engine {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("invalid trusted proxies, using defaults", zap.Error(err))
		}
	}
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORS(middleware.CORSConfig{
		AllowOrigins: cfg.HTTP.CORSAllowOrigins,
		AllowMethods: cfg.HTTP.CORSAllowMethods,
		AllowHeaders: cfg.HTTP.CORSAllowHeaders,
	}))
	if cfg.Telemetry.Enabled {
		engine.Use(otelgin.Middleware(cfg.Telemetry.ServiceName))
	}

	engine.GET("/health", handlers.System.Health)

	api := engine.Group("/api/v1")
	api.Use(middleware.JWT(middleware.JWTConfig{Verifier: verifier}))
	{
		api.GET("/info", handlers.System.Info)

		reports := api.Group("/reports")
		{
			reports.GET("", handlers.Reports.Generate)
			reports.GET("/types", handlers.Reports.Types)
		}

		finance := api.Group("/finance")
		finance.Use(middleware.RequirePermission(report.PermissionViewFinance))
		{
			finance.GET("/income-statement", handlers.Finance.IncomeStatement)
			finance.GET("/dashboard", handlers.Finance.Dashboard)
		}
	}

	return engine
}
