package pipeline

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/khaledhikmat/vs-robot-eye/model"
	"github.com/khaledhikmat/vs-robot-eye/service/channel"
	"github.com/khaledhikmat/vs-robot-eye/service/config"
	"github.com/khaledhikmat/vs-robot-eye/service/lgr"
)

// Router dispatches decoded channel events. Text-like events go to the sink's
// response list and image events go through the skip policy into the pipeline.
type Router struct {
	session  *Session
	pipeline *Pipeline
	sink     Sink
	marker   string

	statsStream chan<- interface{}
	stats       model.ListenerStats
	lastReport  time.Time
}

func NewRouter(cfgSvc config.IService,
	session *Session,
	pipeline *Pipeline,
	sink Sink,
	statsStream chan<- interface{}) *Router {
	return &Router{
		session:     session,
		pipeline:    pipeline,
		sink:        sink,
		marker:      cfgSvc.GetTextSenderMarker(),
		statsStream: statsStream,
		stats: model.ListenerStats{
			Session:  session.ID,
			ByMethod: map[string]int{},
		},
		lastReport: time.Now(),
	}
}

// Run listens on the session channel until it fails or ctx is cancelled. A
// channel failure is reported to the sink; nothing reconnects.
func (r *Router) Run(ctx context.Context) error {
	ctx = r.session.Context(ctx)

	lgr.Logger.InfoContext(ctx, "listener starting", slog.String("session", r.session.ID))

	err := r.session.Channel.Listen(ctx, r.Handle)

	report(r.statsStream, r.Stats())
	if r.pipeline != nil {
		report(r.statsStream, r.pipeline.Stats())
	}

	if err != nil {
		err = lgr.Stack(err)
		lgr.Logger.ErrorContext(ctx, "listener stopped", lgr.Error(err))
		r.sink.ConnectionLost(err)
		return err
	}

	lgr.Logger.InfoContext(ctx, "listener context cancelled")
	return nil
}

// Handle is the channel handler. It runs on the listener goroutine.
func (r *Router) Handle(ctx context.Context, ev channel.Event) {
	r.stats.Messages++
	r.stats.ByMethod[ev.Method()]++

	if _, ok := ev.(channel.WebDisplayEvent); !ok {
		lgr.Logger.DebugContext(ctx, "received method", slog.String("method", ev.Method()))
	}

	switch e := ev.(type) {
	case channel.UtteranceEvent:
		r.sink.AppendResponse("onUtterance: " + e.Text)

	case channel.TextEvent:
		if !strings.Contains(e.Sender, r.marker) {
			lgr.Logger.DebugContext(ctx, "text from unlisted sender", slog.String("sender", e.Sender))
			break
		}
		r.sink.AppendResponse("onText: " + e.Text)

	case channel.ResponseEvent:
		r.sink.AppendResponse("onResponse: " + e.Text)

	case channel.RequestEvent:
		r.sink.AppendResponse("onRequest: " + e.Text)

	case channel.ListeningEvent:
		lgr.Logger.InfoContext(ctx, "onListeningEvent", slog.String("text", e.Text))

	case channel.WebDisplayEvent:
		if r.session.SkipFrame() {
			r.pipeline.Skipped()
			break
		}
		r.pipeline.Process(ctx, e.Image)

	case channel.UnrecognizedEvent:
		r.stats.Unrecognized++
		lgr.Logger.InfoContext(ctx, "received method",
			slog.String("method", e.Name),
			slog.String("sender", e.Sender),
		)

	case channel.MalformedEvent:
		lgr.Logger.WarnContext(ctx, "dropping malformed event",
			slog.String("method", e.Name),
			lgr.Error(e.Err),
		)

		// Still an image stream event, so it takes its turn in the skip policy
		if e.Name != channel.MethodWebDisplay {
			break
		}
		if r.session.SkipFrame() {
			r.pipeline.Skipped()
			break
		}
		r.pipeline.Dropped(ctx, e.Err)
	}

	if time.Since(r.lastReport) >= statsPeriod {
		r.lastReport = time.Now()
		report(r.statsStream, r.Stats())
	}
}

func (r *Router) Stats() model.ListenerStats {
	stats := r.stats
	stats.ByMethod = make(map[string]int, len(r.stats.ByMethod))
	for k, v := range r.stats.ByMethod {
		stats.ByMethod[k] = v
	}
	stats.Uptime = int64(time.Since(r.session.Started).Seconds())
	stats.Timestamp = time.Now().Unix()
	return stats
}
