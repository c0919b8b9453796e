package pipeline

import (
	"time"

	"github.com/khaledhikmat/vs-robot-eye/model"
	"github.com/khaledhikmat/vs-robot-eye/service/channel"
	"github.com/khaledhikmat/vs-robot-eye/service/config"
	"github.com/khaledhikmat/vs-robot-eye/service/data"
	"github.com/khaledhikmat/vs-robot-eye/service/inference"
	"github.com/khaledhikmat/vs-robot-eye/service/landmark"
	"github.com/khaledhikmat/vs-robot-eye/service/llm"
	"github.com/khaledhikmat/vs-robot-eye/service/robot"
	"gocv.io/x/gocv"
)

// VideoUpdate is one processed frame and everything derived from it. The
// receiver owns Mat and must close it.
type VideoUpdate struct {
	Mat        gocv.Mat
	Detections []model.Detection
	Face       model.FaceState
	Hand       model.HandState
	Timestamp  time.Time
}

// Sink receives the pipeline and listener output destined for the UI
type Sink interface {
	UpdateVideo(update VideoUpdate)
	UpdateDetections(labels []string)
	AppendResponse(text string)
	ConnectionLost(err error)
}

// ServicesFactory carries the services a mode processor wires together.
// Modes may replace any of them before starting.
type ServicesFactory struct {
	CfgSvc       config.IService
	DataSvc      data.IService
	ChannelSvc   channel.IService
	InferenceSvc inference.IService
	LandmarkSvc  landmark.IService
	RobotSvc     robot.IService
	LLMSvc       llm.IService
}
