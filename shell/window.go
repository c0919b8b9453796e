package shell

import (
	"context"
	"image"
	"log/slog"
	"sync"

	"github.com/khaledhikmat/vs-robot-eye/pipeline"
	"github.com/khaledhikmat/vs-robot-eye/service/command"
	"github.com/khaledhikmat/vs-robot-eye/service/config"
	"github.com/khaledhikmat/vs-robot-eye/service/lgr"
	"gocv.io/x/gocv"
)

const (
	windowTitle = "Robot Eye"
	// tick is how long the UI loop waits for a key, in milliseconds
	tick = 10
)

// Window is the desktop UI. Its Sink methods may be called from any goroutine;
// Run must be called from the main goroutine.
type Window struct {
	publisher command.IService
	state     *State
	width     int
	height    int

	videoStream     chan pipeline.VideoUpdate
	detectionStream chan []string
	responseStream  chan string
	lostStream      chan error

	// mu guards closed against a listener still pushing frames at shutdown
	mu     sync.Mutex
	closed bool

	frame gocv.Mat
}

func NewWindow(cfgSvc config.IService, publisher command.IService) *Window {
	w, h := cfgSvc.GetFrameSize()
	return &Window{
		publisher:       publisher,
		state:           NewState(),
		width:           w,
		height:          h,
		videoStream:     make(chan pipeline.VideoUpdate, 1),
		detectionStream: make(chan []string, 1),
		responseStream:  make(chan string, cfgSvc.GetResponseBacklog()),
		lostStream:      make(chan error, 1),
		frame:           gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), h, w, gocv.MatTypeCV8UC3),
	}
}

// UpdateVideo keeps only the newest frame. A frame the UI never showed is
// closed, and so is every frame that arrives after Close.
func (w *Window) UpdateVideo(update pipeline.VideoUpdate) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		update.Mat.Close()
		return
	}

	for {
		select {
		case w.videoStream <- update:
			return
		default:
		}

		select {
		case old := <-w.videoStream:
			old.Mat.Close()
		default:
		}
	}
}

func (w *Window) UpdateDetections(labels []string) {
	for {
		select {
		case w.detectionStream <- labels:
			return
		default:
		}

		select {
		case <-w.detectionStream:
		default:
		}
	}
}

func (w *Window) AppendResponse(text string) {
	select {
	case w.responseStream <- text:
	default:
		lgr.Logger.Warn("response stream is full, dropping response", slog.String("text", text))
	}
}

func (w *Window) ConnectionLost(err error) {
	select {
	case w.lostStream <- err:
	default:
	}
}

// SetStatus is used by the mode before the listener starts
func (w *Window) SetStatus(status string) {
	w.state.Status = status
}

// Run shows the window until Esc, the window is closed or ctx is cancelled
func (w *Window) Run(ctx context.Context) error {
	win := gocv.NewWindow(windowTitle)
	defer win.Close()

	canvas := gocv.NewMat()
	defer canvas.Close()

	for {
		if ctx.Err() != nil {
			return nil
		}

		w.drain()

		if err := w.compose(&canvas); err != nil {
			lgr.Logger.Error("error rendering window", lgr.Error(err))
		} else {
			win.IMShow(canvas)
		}

		key := win.WaitKey(tick)
		switch w.state.HandleKey(key) {
		case ActionQuit:
			lgr.Logger.Info("window closed by user")
			return nil
		case ActionSend:
			w.send()
		}

		if win.GetWindowProperty(gocv.WindowPropertyVisible) < 1 {
			lgr.Logger.Info("window closed")
			return nil
		}
	}
}

func (w *Window) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true

	select {
	case update := <-w.videoStream:
		update.Mat.Close()
	default:
	}
	return w.frame.Close()
}

// drain applies everything the listener pushed since the last tick
func (w *Window) drain() {
	select {
	case update := <-w.videoStream:
		w.frame.Close()
		w.frame = update.Mat
		w.state.Hand = update.Hand
		w.state.Face = update.Face
	default:
	}

	select {
	case labels := <-w.detectionStream:
		w.state.Detections = labels
	default:
	}

	for drained := false; !drained; {
		select {
		case text := <-w.responseStream:
			w.state.AppendResponse(text)
		default:
			drained = true
		}
	}

	select {
	case err := <-w.lostStream:
		w.state.Lost = true
		w.state.Status = "connection lost"
		lgr.Logger.Warn("connection lost, video is frozen", lgr.Error(err))
	default:
	}
}

func (w *Window) compose(dst *gocv.Mat) error {
	panel, err := gocv.ImageToMatRGB(RenderPanel(w.state, w.height))
	if err != nil {
		return err
	}
	defer panel.Close()

	video := w.frame
	if video.Cols() != w.width || video.Rows() != w.height {
		resized := gocv.NewMat()
		defer resized.Close()
		gocv.Resize(video, &resized, image.Pt(w.width, w.height), 0, 0, gocv.InterpolationLinear)
		video = resized
	}

	gocv.Hconcat(video, panel, dst)
	return nil
}

func (w *Window) send() {
	kind, text, ok := w.state.Submit()
	if !ok {
		lgr.Logger.Info("no text entered", slog.String("kind", string(kind)))
		return
	}

	if err := w.publisher.Publish(kind, text); err != nil {
		lgr.Logger.Error("failed to publish command",
			slog.String("kind", string(kind)),
			lgr.Error(err),
		)
		w.state.AppendResponse("error: " + err.Error())
		return
	}

	lgr.Logger.Info("command sent", slog.String("kind", string(kind)), slog.String("text", text))
}
