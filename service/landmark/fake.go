package landmark

import (
	"github.com/khaledhikmat/vs-robot-eye/model"
	"gocv.io/x/gocv"
)

type fakeService struct {
	faces    []model.LandmarkSet
	hands    []model.LandmarkSet
	facesErr error
	handsErr error
}

func NewFake(faces, hands []model.LandmarkSet) IService {
	return &fakeService{
		faces: faces,
		hands: hands,
	}
}

// NewFailing returns a provider whose face and hand calls fail with the
// given errors. A nil error lets that call succeed with no landmarks.
func NewFailing(facesErr, handsErr error) IService {
	return &fakeService{
		facesErr: facesErr,
		handsErr: handsErr,
	}
}

func (svc *fakeService) Faces(_ gocv.Mat) ([]model.LandmarkSet, error) {
	if svc.facesErr != nil {
		return nil, svc.facesErr
	}
	return svc.faces, nil
}

func (svc *fakeService) Hands(_ gocv.Mat) ([]model.LandmarkSet, error) {
	if svc.handsErr != nil {
		return nil, svc.handsErr
	}
	return svc.hands, nil
}

func (svc *fakeService) Close() error {
	return nil
}
