// Package assistant answers free-form questions about the sales data. The
// sales backend answers when it can; otherwise a configured language model
// answers from a summary of the locally assembled reports.
package assistant

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Rushi-chippa/SalesERPFullProject/internal/domain/sales"
	"github.com/Rushi-chippa/SalesERPFullProject/internal/domain/shared"
	"github.com/Rushi-chippa/SalesERPFullProject/internal/infrastructure/telemetry"
)

// Source names who produced an answer
type Source string

const (
	SourceBackend    Source = "backend"
	SourceLocalModel Source = "local-model"
)

// Answer is the assistant's reply
type Answer struct {
	Answer     string   `json:"answer"`
	Highlights []string `json:"highlights,omitempty"`
	Source     Source   `json:"source"`
}

// Remote is the backend assistant endpoint
type Remote interface {
	Ask(ctx context.Context, question string) (string, error)
}

// Model answers a question given a plain-text briefing
type Model interface {
	Answer(ctx context.Context, question, briefing string) (ModelAnswer, error)
}

// ModelAnswer is the structured reply requested from the model
type ModelAnswer struct {
	Answer     string   `json:"answer" jsonschema:"description=Direct answer to the question in at most a few sentences"`
	Highlights []string `json:"highlights" jsonschema:"description=Key figures from the briefing that support the answer"`
}

// Snapshotter supplies the current collections
type Snapshotter interface {
	Snapshot() sales.Snapshot
}

// ErrUnavailable is returned when neither the backend nor a model can answer.
var ErrUnavailable = shared.NewTransportError("The assistant is not available")

// Service routes questions to the backend or the fallback model
type Service struct {
	remote    Remote
	model     Model
	snapshots Snapshotter
	now       func() time.Time
	logger    *zap.Logger
}

// Option configures a Service
type Option func(*Service)

// WithRemote sets the backend endpoint
func WithRemote(r Remote) Option { return func(s *Service) { s.remote = r } }

// WithModel sets the fallback model
func WithModel(m Model) Option { return func(s *Service) { s.model = m } }

// WithClock overrides the clock used for the briefing
func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewService creates an assistant over the given snapshot source
func NewService(snapshots Snapshotter, opts ...Option) *Service {
	s := &Service{snapshots: snapshots, now: time.Now, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.Named("assistant")
	return s
}

// Ask answers question. Only a transport failure of the backend falls back
// to the model; validation and session errors surface unchanged.
func (s *Service) Ask(ctx context.Context, question string) (Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return Answer{}, shared.NewValidationError("question is required")
	}

	ctx, span := telemetry.StartServiceSpan(ctx, "assistant", "Ask")
	defer span.End()

	var remoteErr error = ErrUnavailable
	if s.remote != nil {
		text, err := s.remote.Ask(ctx, question)
		if err == nil {
			return Answer{Answer: text, Source: SourceBackend}, nil
		}
		if !shared.IsTransport(err) {
			telemetry.RecordError(span, err)
			return Answer{}, err
		}
		remoteErr = err
	}

	if s.model == nil {
		telemetry.RecordError(span, remoteErr)
		return Answer{}, remoteErr
	}

	briefing := Briefing(s.snapshots.Snapshot(), s.now())
	reply, err := s.model.Answer(ctx, question, briefing)
	if err != nil {
		s.logger.Warn("Fallback model failed", zap.Error(err))
		telemetry.RecordError(span, err)
		return Answer{}, errors.Join(remoteErr, err)
	}
	return Answer{Answer: reply.Answer, Highlights: reply.Highlights, Source: SourceLocalModel}, nil
}
