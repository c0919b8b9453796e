package mode

import (
	"context"
	"log/slog"
	"time"

	"github.com/khaledhikmat/vs-robot-eye/model"
	"github.com/khaledhikmat/vs-robot-eye/pipeline"
	"github.com/khaledhikmat/vs-robot-eye/service/command"
	"github.com/khaledhikmat/vs-robot-eye/service/lgr"
	"github.com/khaledhikmat/vs-robot-eye/shell"
)

const diagnosticsBacklog = 64

// Client connects to the robot, runs the frame pipeline on its image stream and
// shows everything in the desktop window. The window runs on the calling
// goroutine, which must be the main one.
func Client(canxCtx context.Context, svcs pipeline.ServicesFactory, _ Options) error {
	errorStream := make(chan interface{}, diagnosticsBacklog)
	statsStream := make(chan interface{}, diagnosticsBacklog)

	publisher := command.NewPublisher(svcs.CfgSvc, svcs.ChannelSvc)
	win := shell.NewWindow(svcs.CfgSvc, publisher)
	defer win.Close()

	session := pipeline.NewSession(svcs.ChannelSvc)
	sessionCtx, sessionCanxFn := context.WithCancel(session.Context(canxCtx))
	defer sessionCanxFn()

	lgr.Logger.InfoContext(sessionCtx, "client starting....",
		slog.String("session", session.ID),
		slog.String("channel", svcs.CfgSvc.GetChannelURI()),
	)

	// The descriptor is informational only
	if desc, err := svcs.RobotSvc.Describe(sessionCtx); err != nil {
		lgr.Logger.WarnContext(sessionCtx, "robot service descriptor unavailable", lgr.Error(err))
	} else {
		lgr.Logger.InfoContext(sessionCtx, "robot service",
			slog.String("name", desc.Name),
			slog.Bool("running", desc.IsRunning),
			slog.Int("peers", len(desc.Config.Peers)),
			slog.Any("gestures", desc.GetGestures()),
		)
	}

	go diagnostics(sessionCtx, svcs.DataSvc, errorStream, statsStream)

	listenerResult := make(chan error, 1)
	listening := false

	err := svcs.ChannelSvc.Connect(sessionCtx)
	if err != nil {
		err = lgr.Stack(err)
		lgr.Logger.ErrorContext(sessionCtx, "error connecting to the robot", lgr.Error(err))
		procError(svcs.DataSvc, model.GenError("client",
			err,
			map[string]interface{}{"session": session.ID},
			"error connecting to %s", svcs.CfgSvc.GetChannelURI()))
		win.ConnectionLost(err)
	} else {
		win.SetStatus("connected")

		proc := pipeline.NewPipeline(svcs, session, win, errorStream, statsStream)
		router := pipeline.NewRouter(svcs.CfgSvc, session, proc, win, statsStream)

		listening = true
		go func() {
			listenerResult <- router.Run(sessionCtx)
		}()
	}

	// The window owns this goroutine until the user leaves or canxCtx is cancelled
	uiErr := win.Run(sessionCtx)

	sessionCanxFn()
	_ = svcs.ChannelSvc.Close()

	if !listening {
		return uiErr
	}

	lgr.Logger.Info(
		"client is waiting for the listener to exit",
	)

	timer := time.NewTimer(time.Duration(svcs.CfgSvc.GetModeMaxShutdownTime()) * time.Second)
	defer timer.Stop()

	for {
		select {
		case <-timer.C:
			lgr.Logger.Info(
				"client shutdown waiting period expired. Exiting now",
				slog.Duration("period", time.Duration(svcs.CfgSvc.GetModeMaxShutdownTime())*time.Second),
			)
			return uiErr

		case err := <-listenerResult:
			if err != nil {
				lgr.Logger.Info("listener exited", lgr.Error(err))
			}
			flush(svcs, errorStream, statsStream)
			return uiErr
		}
	}
}

// flush stores what is still queued once every producer has stopped
func flush(svcs pipeline.ServicesFactory, errorStream, statsStream <-chan interface{}) {
	for {
		select {
		case s := <-statsStream:
			procStats(svcs.DataSvc, s)
		case e := <-errorStream:
			procError(svcs.DataSvc, e)
		default:
			return
		}
	}
}
