package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Rushi-chippa/SalesERPFullProject/internal/application/analytics"
	"github.com/Rushi-chippa/SalesERPFullProject/internal/application/store"
	"github.com/Rushi-chippa/SalesERPFullProject/internal/infrastructure/backend"
	"github.com/Rushi-chippa/SalesERPFullProject/internal/infrastructure/config"
	"github.com/Rushi-chippa/SalesERPFullProject/internal/infrastructure/export"
	"github.com/Rushi-chippa/SalesERPFullProject/internal/infrastructure/logger"
)

func main() {
	var (
		opts     options
		format   string
		sink     string
		path     string
		logLevel string
		timeout  time.Duration
	)
	flag.StringVar(&format, "format", "", "Output format: json, yaml or csv (default from config)")
	flag.StringVar(&sink, "sink", "", "Destination: stdout, file or s3 (default from config)")
	flag.StringVar(&path, "path", "", "Directory for the file sink")
	flag.StringVar(&opts.Range, "range", "", "Sales report preset: 7d, 30d, 90d or all")
	flag.StringVar(&opts.From, "start", "", "Sales report first day (YYYY-MM-DD)")
	flag.StringVar(&opts.To, "end", "", "Sales report last day (YYYY-MM-DD)")
	flag.IntVar(&opts.Recent, "recent", 5, "Recent sales listed on the dashboard")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.DurationVar(&timeout, "timeout", 2*time.Minute, "Overall time limit")
	flag.Parse()

	args := flag.Args()
	if len(args) != 1 {
		printUsage()
		os.Exit(1)
	}
	name := args[0]

	_ = godotenv.Load()

	// stdout may carry the report, so logs go to stderr.
	log, err := logger.New(logger.Config{Level: logLevel, Format: "console", Output: "stderr"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}
	if format != "" {
		cfg.Export.Format = format
	}
	if sink != "" {
		cfg.Export.Sink = sink
	}
	if path != "" {
		cfg.Export.Path = path
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := run(ctx, cfg, name, opts, log); err != nil {
		log.Error("Report failed", zap.String("report", name), zap.Error(err))
		cancel()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, name string, opts options, log *zap.Logger) error {
	exporter, err := export.FromConfig(ctx, cfg.Export, log)
	if err != nil {
		return err
	}

	src, err := backend.Open(ctx, cfg, backend.Options{Logger: log})
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }()

	st := store.New(src.Store, store.WithLogger(log))
	snap, err := st.Load(ctx)
	if err != nil {
		return err
	}

	var fc forecaster
	if src.Analytics != nil {
		fc = analytics.NewService(src.Analytics, analytics.WithLogger(log))
	}
	rep, err := build(ctx, name, snap, opts, time.Now(), fc)
	if err != nil {
		return err
	}

	location, err := exporter.Export(ctx, name, rep)
	if err != nil {
		return err
	}
	log.Info("Report exported",
		zap.String("report", name),
		zap.String("format", string(exporter.Format())),
		zap.String("location", location),
	)
	return nil
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `Sales report exporter

Usage:
  report [flags] <report>

Reports:
  dashboard      KPI totals, top products, recent sales and forecast
  sales          Time-ranged sales report (-range or -start/-end)
  leaderboard    Salesmen ranked by revenue
  forecast       Next month's revenue estimate

Flags:
  -format string      json, yaml or csv
  -sink string        stdout, file or s3
  -path string        Directory for the file sink
  -range string       7d, 30d, 90d or all
  -start, -end        Explicit YYYY-MM-DD bounds
  -recent int         Recent sales on the dashboard (default 5)
  -log-level string   debug, info, warn, error (default info)
  -timeout duration   Overall time limit (default 2m)

Configuration is read from config.toml and PORTAL_* environment variables.

Examples:
  report -range 30d -format csv sales
  report -sink s3 -format yaml dashboard`)
}
