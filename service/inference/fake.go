package inference

import (
	"github.com/khaledhikmat/vs-robot-eye/model"
	"gocv.io/x/gocv"
)

type fakeService struct {
	detections []model.Detection
	err        error
	calls      int
}

func NewFake(detections ...model.Detection) IService {
	return &fakeService{
		detections: detections,
	}
}

// NewFailing returns a detector whose every invocation fails with err
func NewFailing(err error) IService {
	return &fakeService{
		err: err,
	}
}

func (svc *fakeService) Detect(_ gocv.Mat) ([]model.Detection, error) {
	svc.calls++
	if svc.err != nil {
		return nil, svc.err
	}
	out := make([]model.Detection, len(svc.detections))
	copy(out, svc.detections)
	return out, nil
}

func (svc *fakeService) Close() error {
	return nil
}
