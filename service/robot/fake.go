package robot

import (
	"context"

	"github.com/khaledhikmat/vs-robot-eye/model"
)

type fakeService struct {
	desc model.RobotDescriptor
	err  error
}

func NewFake(desc model.RobotDescriptor, err error) IService {
	return &fakeService{
		desc: desc,
		err:  err,
	}
}

func (svc *fakeService) Describe(_ context.Context) (model.RobotDescriptor, error) {
	return svc.desc, svc.err
}
