package mode

import (
	"context"
	"log/slog"

	"github.com/khaledhikmat/vs-robot-eye/model"
	"github.com/khaledhikmat/vs-robot-eye/pipeline"
	"github.com/khaledhikmat/vs-robot-eye/service/data"
	"github.com/khaledhikmat/vs-robot-eye/service/lgr"
)

// Options carries the command line input of a mode
type Options struct {
	Args      []string
	ImagePath string
}

type Processor func(canxCtx context.Context, svcs pipeline.ServicesFactory, opts Options) error

func procStats(datasvc data.IService, stats interface{}) {
	switch stats := stats.(type) {
	case model.PipelineStats:
		procPipelineStats(datasvc, stats)
	case model.ListenerStats:
		procListenerStats(datasvc, stats)
	default:
		lgr.Logger.Error(
			"unknown stats type",
			slog.Any("stats", stats),
		)
	}
}

func procPipelineStats(datasvc data.IService, stats model.PipelineStats) {
	err := datasvc.NewPipelineStats(stats)
	if err != nil {
		lgr.Logger.Error(
			"failed to store pipeline stats",
			slog.Any("stats", stats),
			lgr.Error(err),
		)
	}
}

func procListenerStats(datasvc data.IService, stats model.ListenerStats) {
	err := datasvc.NewListenerStats(stats)
	if err != nil {
		lgr.Logger.Error(
			"failed to store listener stats",
			slog.Any("stats", stats),
			lgr.Error(err),
		)
	}
}

func procError(datasvc data.IService, err interface{}) {
	errTemp := datasvc.NewError(err)
	if errTemp != nil {
		lgr.Logger.Error(
			"failed to store error",
			lgr.Error(errTemp),
		)
	}
}

// diagnostics stores whatever the pipeline and listener report until ctx is done
func diagnostics(canxCtx context.Context, datasvc data.IService, errorStream, statsStream <-chan interface{}) {
	for {
		select {
		case <-canxCtx.Done():
			return
		case s := <-statsStream:
			procStats(datasvc, s)
		case e := <-errorStream:
			procError(datasvc, e)
		}
	}
}
