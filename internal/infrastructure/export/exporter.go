package export

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Rushi-chippa/SalesERPFullProject/internal/infrastructure/config"
)

// Exporter encodes reports in one format and hands them to a sink
type Exporter struct {
	format Format
	sink   Sink
	now    func() time.Time
	logger *zap.Logger
}

// Option configures an Exporter
type Option func(*Exporter)

// WithClock sets the time source used to stamp exports
func WithClock(now func() time.Time) Option {
	return func(e *Exporter) {
		e.now = now
	}
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(e *Exporter) {
		e.logger = l
	}
}

// NewExporter creates an exporter
func NewExporter(format Format, sink Sink, opts ...Option) *Exporter {
	e := &Exporter{format: format, sink: sink, now: time.Now, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// FromConfig builds the exporter selected by the export section
func FromConfig(ctx context.Context, cfg config.ExportConfig, logger *zap.Logger) (*Exporter, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	format, err := ParseFormat(cfg.Format)
	if err != nil {
		return nil, err
	}
	var sink Sink
	switch cfg.Sink {
	case config.SinkStdout, "":
		sink = NewStdoutSink(nil)
	case config.SinkFile:
		sink = NewFileSink(cfg.Path)
	case config.SinkS3:
		sink, err = NewS3Sink(ctx, cfg.S3, WithS3Logger(logger))
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported export sink %q", cfg.Sink)
	}
	return NewExporter(format, sink, WithLogger(logger)), nil
}

// Format returns the configured encoding
func (e *Exporter) Format() Format {
	return e.format
}

// Export encodes the named report and stores it, returning its location
func (e *Exporter) Export(ctx context.Context, name string, report any) (string, error) {
	data, err := Bytes(e.format, report)
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", name, err)
	}
	location, err := e.sink.Write(ctx, Object{Report: name, Format: e.format, CreatedAt: e.now(), Data: data})
	if err != nil {
		return "", err
	}
	e.logger.Info("Report exported",
		zap.String("report", name),
		zap.String("format", string(e.format)),
		zap.String("location", location))
	return location, nil
}
