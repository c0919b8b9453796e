package landmark

import (
	"github.com/khaledhikmat/vs-robot-eye/model"
	"gocv.io/x/gocv"
)

// IService runs the face mesh and hand landmark models. Each returned set holds
// normalized coordinates for one face (468 points) or one hand (21 points).
type IService interface {
	Faces(frame gocv.Mat) ([]model.LandmarkSet, error)
	Hands(frame gocv.Mat) ([]model.LandmarkSet, error)
	Close() error
}
