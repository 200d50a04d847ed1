package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Sink stores one encoded report and returns where it went
type Sink interface {
	Write(ctx context.Context, obj Object) (string, error)
}

// Object is an encoded report ready to be stored
type Object struct {
	Report    string // report name, e.g. leaderboard
	Format    Format
	CreatedAt time.Time
	Data      []byte
}

// FileName returns <report>-<YYYYMMDD-HHMMSS>.<ext>
func (o Object) FileName() string {
	return fmt.Sprintf("%s-%s.%s", o.Report, o.CreatedAt.UTC().Format("20060102-150405"), o.Format.Ext())
}

// ObjectKey returns <prefix>/<report>-<YYYYMMDD-HHMMSS>-<id>.<ext>. The
// random id keeps two exports in the same second apart.
func (o Object) ObjectKey(prefix string) string {
	name := fmt.Sprintf("%s-%s-%s.%s",
		o.Report, o.CreatedAt.UTC().Format("20060102-150405"), uuid.NewString()[:8], o.Format.Ext())
	if prefix == "" {
		return name
	}
	return path.Join(prefix, name)
}

// StdoutSink writes the encoded report to a stream
type StdoutSink struct {
	w io.Writer
}

// NewStdoutSink writes to w, or os.Stdout when w is nil
func NewStdoutSink(w io.Writer) *StdoutSink {
	if w == nil {
		w = os.Stdout
	}
	return &StdoutSink{w: w}
}

// Write implements Sink
func (s *StdoutSink) Write(_ context.Context, obj Object) (string, error) {
	if _, err := s.w.Write(obj.Data); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return "stdout", nil
}

// FileSink writes each report to its own file in a directory
type FileSink struct {
	dir string
}

// NewFileSink creates a sink writing under dir, created on first use
func NewFileSink(dir string) *FileSink {
	return &FileSink{dir: dir}
}

// Write implements Sink
func (s *FileSink) Write(_ context.Context, obj Object) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}
	dest := filepath.Join(s.dir, obj.FileName())
	if err := os.WriteFile(dest, obj.Data, 0o644); err != nil {
		return "", fmt.Errorf("write report file: %w", err)
	}
	return dest, nil
}
