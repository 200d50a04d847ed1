package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Rushi-chippa/SalesERPFullProject/internal/infrastructure/config"
	"github.com/Rushi-chippa/SalesERPFullProject/internal/infrastructure/logger"
	"github.com/Rushi-chippa/SalesERPFullProject/internal/interfaces/http/middleware"
)

// EngineConfig configures the middleware stack of NewEngine
type EngineConfig struct {
	HTTP   config.HTTPConfig
	Logger *zap.Logger

	// TracingService names the server spans; empty disables tracing.
	TracingService string

	// Registry receives the HTTP metrics and is served on /metrics. Nil
	// disables both.
	Registry *prometheus.Registry
}

// NewEngine creates a gin engine with the middleware stack applied in order:
// request ID, recovery, tracing, request logging, CORS, body limit and metrics.
func NewEngine(cfg EngineConfig) *gin.Engine {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	if cfg.TracingService != "" {
		engine.Use(middleware.Tracing(cfg.TracingService), middleware.TagRequest())
	}
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORS(middleware.DefaultCORSConfig(cfg.HTTP.CORSAllowOrigins)))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.Registry != nil {
		engine.Use(middleware.NewHTTPMetrics(cfg.Registry).Middleware())
		engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(cfg.Registry, promhttp.HandlerOpts{Registry: cfg.Registry})))
	}
	return engine
}
