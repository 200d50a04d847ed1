package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/Rushi-chippa/SalesERPFullProject/internal/application/analytics"
	"github.com/Rushi-chippa/SalesERPFullProject/internal/application/assistant"
	"github.com/Rushi-chippa/SalesERPFullProject/internal/application/store"
	"github.com/Rushi-chippa/SalesERPFullProject/internal/infrastructure/backend"
	"github.com/Rushi-chippa/SalesERPFullProject/internal/infrastructure/cache"
	"github.com/Rushi-chippa/SalesERPFullProject/internal/infrastructure/config"
	"github.com/Rushi-chippa/SalesERPFullProject/internal/infrastructure/logger"
	"github.com/Rushi-chippa/SalesERPFullProject/internal/infrastructure/telemetry"
	"github.com/Rushi-chippa/SalesERPFullProject/internal/interfaces/http/handler"
	"github.com/Rushi-chippa/SalesERPFullProject/internal/interfaces/http/router"
)

// initialLoadTimeout bounds the startup load of all four collections
const initialLoadTimeout = time.Minute

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting sales portal",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("source", cfg.Backend.Source),
	)

	ctx := context.Background()
	exporter := telemetry.Exporter{
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		Insecure:          cfg.Telemetry.Insecure,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    cfg.App.Version,
	}

	tp, err := telemetry.NewTracerProvider(ctx, telemetry.TracingConfig{
		Exporter:      exporter,
		Enabled:       cfg.Telemetry.Enabled,
		SamplingRatio: cfg.Telemetry.SamplingRatio,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	mp, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Exporter:       exporter,
		Enabled:        cfg.Telemetry.MetricsEnabled,
		ExportInterval: cfg.Telemetry.MetricsInterval,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize metrics", zap.Error(err))
	}
	lp, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Exporter: exporter,
		Enabled:  cfg.Telemetry.LogsEnabled,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize OTLP logs", zap.Error(err))
	}
	log = lp.Bridge(log, logger.ParseLevel(cfg.Log.Level))

	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:         cfg.Telemetry.Profiling.Enabled,
		ServerAddress:   cfg.Telemetry.Profiling.ServerAddress,
		ApplicationName: cfg.Telemetry.ServiceName,
		ProfileTypes:    cfg.Telemetry.Profiling.ProfileTypes,
	}, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	if profiler.IsEnabled() && cfg.Telemetry.Profiling.SpanProfiles {
		tp.EnableSpanProfiles()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	src, err := backend.Open(ctx, cfg, backend.Options{Logger: log, Registry: reg})
	if err != nil {
		log.Fatal("Failed to open sales backend", zap.Error(err))
	}

	st := store.New(src.Store,
		store.WithLogger(log),
		store.WithOperations(telemetry.MustOperations(log)),
	)
	if cfg.Backend.LoadOnStart {
		loadCtx, cancel := context.WithTimeout(ctx, initialLoadTimeout)
		if _, err := st.Load(loadCtx); err != nil {
			// The portal still serves; POST /store/reload retries.
			log.Warn("Initial load failed", zap.Error(err))
		}
		cancel()
	}

	assistantOpts := []assistant.Option{assistant.WithLogger(log)}
	if src.Remote != nil {
		assistantOpts = append(assistantOpts, assistant.WithRemote(src.Remote))
	}
	if cfg.Assistant.OpenAIAPIKey != "" {
		model, err := assistant.NewOpenAIModel(cfg.Assistant.OpenAIAPIKey, cfg.Assistant.Model, cfg.Assistant.BaseURL)
		if err != nil {
			log.Fatal("Failed to initialize assistant model", zap.Error(err))
		}
		assistantOpts = append(assistantOpts, assistant.WithModel(model))
	}
	asst := assistant.NewService(st, assistantOpts...)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	tracingService := ""
	if tp.IsEnabled() {
		tracingService = cfg.Telemetry.ServiceName
	}
	engine := router.NewEngine(router.EngineConfig{
		HTTP:           cfg.HTTP,
		Logger:         log,
		TracingService: tracingService,
		Registry:       reg,
	})

	onChange := func() {}
	entityOpts := []handler.EntityOption{handler.WithCategories(src.Categories)}
	var reportOpts []handler.ReportOption
	var analyticsCache cache.Cache

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	if src.Analytics != nil {
		analyticsCache, err = cache.NewFactory(cfg.Redis, cfg.Cache, cache.WithLogger(log)).Create()
		if err != nil {
			log.Fatal("Failed to initialize analytics cache", zap.Error(err))
		}
		svc := analytics.NewService(src.Analytics,
			analytics.WithCache(analyticsCache, cfg.Cache.TTL),
			analytics.WithLogger(log),
		)
		onChange = svc.Invalidate
		reportOpts = append(reportOpts, handler.WithForecaster(svc))
		r.Register(handler.NewAnalyticsHandler(svc))
	}
	entityOpts = append(entityOpts, handler.OnChange(onChange))

	r.Register(handler.NewSystemHandler(st, cfg.App.Version, src.Name, onChange)).
		Register(handler.NewEntityHandler(st, entityOpts...)).
		Register(handler.NewReportHandler(st, reportOpts...)).
		Register(handler.NewAssistantHandler(asst))
	r.Setup()

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if analyticsCache != nil {
		if err := analyticsCache.Close(); err != nil {
			log.Error("Error closing analytics cache", zap.Error(err))
		}
	}
	if err := src.Close(); err != nil {
		log.Error("Error closing sales backend", zap.Error(err))
	}
	if err := profiler.Stop(); err != nil {
		log.Error("Error stopping profiler", zap.Error(err))
	}
	if err := lp.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down OTLP logs", zap.Error(err))
	}
	if err := mp.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down metrics", zap.Error(err))
	}
	if err := tp.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down tracing", zap.Error(err))
	}

	log.Info("Server exited")
}
