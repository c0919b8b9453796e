package inference

import (
	"github.com/khaledhikmat/vs-robot-eye/model"
	"gocv.io/x/gocv"
)

// IService runs an object detector over a normalized frame. An empty slice
// means nothing was found; an error wraps model.ErrModel.
type IService interface {
	Detect(frame gocv.Mat) ([]model.Detection, error)
	Close() error
}
