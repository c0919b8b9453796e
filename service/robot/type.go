package robot

import (
	"context"

	"github.com/khaledhikmat/vs-robot-eye/model"
)

type IService interface {
	Describe(ctx context.Context) (model.RobotDescriptor, error)
}
