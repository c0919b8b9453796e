package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/khaledhikmat/vs-robot-eye/service/channel"
	"go.opentelemetry.io/otel/trace"
)

// Session is one connection to the robot and the state that lives as long as it
type Session struct {
	ID      string
	Channel channel.IService
	Started time.Time

	traceID trace.TraceID
	spanID  trace.SpanID
	skipper *Skipper
}

// NewSession starts with the skip flag cleared, so the first image event of
// the session is dropped and every second one after it is processed.
func NewSession(chanSvc channel.IService) *Session {
	return newSession(chanSvc, false)
}

func newSession(chanSvc channel.IService, skip bool) *Session {
	id := uuid.New()

	var spanID trace.SpanID
	copy(spanID[:], id[8:])

	return &Session{
		ID:      id.String(),
		Channel: chanSvc,
		Started: time.Now(),
		traceID: trace.TraceID(id),
		spanID:  spanID,
		skipper: NewSkipper(skip),
	}
}

// Context tags ctx with the session trace id so every log line of the session
// can be correlated
func (s *Session) Context(ctx context.Context) context.Context {
	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    s.traceID,
		SpanID:     s.spanID,
		TraceFlags: trace.FlagsSampled,
	})
	return trace.ContextWithSpanContext(ctx, sc)
}

// SkipFrame flips the skip flag for an incoming image event and reports whether
// the event must be dropped
func (s *Session) SkipFrame() bool {
	return s.skipper.CanSkipFrame()
}
