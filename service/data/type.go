package data

import "github.com/khaledhikmat/vs-robot-eye/model"

// IService is the diagnostics sink. Detection results are never stored.
type IService interface {
	NewError(err interface{}) error
	NewPipelineStats(stats model.PipelineStats) error
	NewListenerStats(stats model.ListenerStats) error
	Close() error
}
