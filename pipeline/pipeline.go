package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/khaledhikmat/vs-robot-eye/model"
	"github.com/khaledhikmat/vs-robot-eye/service/inference"
	"github.com/khaledhikmat/vs-robot-eye/service/lgr"
	stackerr "github.com/mdobak/go-xerrors"
	"gocv.io/x/gocv"
)

const statsPeriod = 10 * time.Second

// Pipeline turns one image payload into an annotated frame and its derived
// states. It is not safe for concurrent use; the listener calls it in order.
type Pipeline struct {
	session  *Session
	detector inference.IService
	faces    *FaceAnalyzer
	hands    *HandAnalyzer
	sink     Sink

	errorStream chan<- interface{}
	statsStream chan<- interface{}

	stats       model.PipelineStats
	procTime    time.Duration
	periodStart time.Time
	periodCount int
}

func NewPipeline(svcs ServicesFactory,
	session *Session,
	sink Sink,
	errorStream chan<- interface{},
	statsStream chan<- interface{}) *Pipeline {
	return &Pipeline{
		session:     session,
		detector:    svcs.InferenceSvc,
		faces:       NewFaceAnalyzer(svcs.LandmarkSvc),
		hands:       NewHandAnalyzer(svcs.LandmarkSvc),
		sink:        sink,
		errorStream: errorStream,
		statsStream: statsStream,
		stats: model.PipelineStats{
			Session: session.ID,
		},
		periodStart: time.Now(),
	}
}

// Skipped records an image event dropped by the skip policy
func (p *Pipeline) Skipped() {
	p.stats.SkippedFrames++
}

// Dropped records an admitted image event whose payload never reached the
// decoder
func (p *Pipeline) Dropped(ctx context.Context, err error) {
	p.fail(ctx, "payload", err)
}

// Process runs decode, detection, face and hand analysis on one payload and
// pushes the result to the sink. Failures drop the frame and never escape.
func (p *Pipeline) Process(ctx context.Context, payload string) (processed bool) {
	start := time.Now()
	var frame gocv.Mat
	owned := false

	defer func() {
		if r := recover(); r != nil {
			p.fail(ctx, "panic", stackerr.WithWrapper(model.ErrModel, stackerr.FromRecover(r)))
			processed = false
		}
		if owned {
			frame.Close()
		}
	}()

	frame, err := DecodeFrame(payload)
	if err != nil {
		p.fail(ctx, "decode", err)
		return false
	}
	owned = true

	dets, err := p.detector.Detect(frame)
	if err != nil {
		p.fail(ctx, "detect", err)
		return false
	}
	DrawDetections(&frame, dets)

	face, err := p.faces.Analyze(&frame)
	if err != nil {
		p.fail(ctx, "face", err)
		return false
	}

	hand, err := p.hands.Analyze(&frame)
	if err != nil {
		p.fail(ctx, "hand", err)
		return false
	}

	// The sink owns the frame from here
	owned = false
	p.sink.UpdateVideo(VideoUpdate{
		Mat:        frame,
		Detections: dets,
		Face:       face,
		Hand:       hand,
		Timestamp:  time.Now(),
	})
	p.sink.UpdateDetections(DetectionLabels(dets))

	p.record(time.Since(start))
	return true
}

func (p *Pipeline) Stats() model.PipelineStats {
	stats := p.stats
	stats.Uptime = int64(time.Since(p.session.Started).Seconds())
	if stats.Frames > 0 {
		stats.AvgProcTime = p.procTime.Seconds() / float64(stats.Frames)
	}
	stats.Timestamp = time.Now().Unix()
	return stats
}

func (p *Pipeline) record(elapsed time.Duration) {
	p.stats.Frames++
	p.procTime += elapsed
	p.periodCount++

	period := time.Since(p.periodStart)
	if period < statsPeriod {
		return
	}

	p.stats.FPS = int(float64(p.periodCount) / period.Seconds())
	p.periodStart = time.Now()
	p.periodCount = 0

	report(p.statsStream, p.Stats())
}

func (p *Pipeline) fail(ctx context.Context, stage string, err error) {
	p.stats.Errors++
	err = lgr.Stack(err)

	lgr.Logger.WarnContext(ctx, "frame dropped",
		slog.String("stage", stage),
		lgr.Error(err),
	)

	report(p.errorStream, model.GenError("pipeline", err, map[string]interface{}{
		"session": p.session.ID,
		"stage":   stage,
	}, "frame dropped"))
}

// report never blocks the listener. Reports are dropped when nobody keeps up.
func report(stream chan<- interface{}, v interface{}) {
	if stream == nil {
		return
	}

	select {
	case stream <- v:
	default:
		lgr.Logger.Debug("diagnostics stream full, dropping report")
	}
}
