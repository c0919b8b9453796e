package model

import (
	"fmt"
	"image"
	"runtime/debug"

	"golang.org/x/xerrors"
)

var (
	// Per-frame failures. The frame is dropped, the channel keeps listening.
	ErrDecode = xerrors.New("frame decode error")
	ErrModel  = xerrors.New("model inference error")

	// Fatal to the connection. Not retried.
	ErrChannel = xerrors.New("channel error")

	// Publisher misuse. Nothing is sent.
	ErrNotConnected   = xerrors.New("channel not connected")
	ErrInvalidCommand = xerrors.New("invalid command")
)

type CustomError struct {
	Processor  string                 `json:"processor"`
	Inner      error                  `json:"innerError"`
	Message    string                 `json:"message"`
	StackTrace string                 `json:"stackTrace"`
	Misc       map[string]interface{} `json:"misc"`
}

func (e CustomError) Error() string {
	if e.Inner == nil {
		return fmt.Sprintf("%s: %s", e.Processor, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Processor, e.Message, e.Inner)
}

func (e CustomError) Unwrap() error {
	return e.Inner
}

func GenError(proc string, err error, misc map[string]interface{}, messagef string, args ...interface{}) CustomError {
	return CustomError{
		Processor:  proc,
		Inner:      err,
		Message:    fmt.Sprintf(messagef, args...),
		StackTrace: string(debug.Stack()),
		Misc:       misc,
	}
}

// Detection is one labeled box produced by the object detector
type Detection struct {
	Box        image.Rectangle `json:"box"`
	Label      string          `json:"label"`
	Confidence float32         `json:"confidence"`
}

func (d Detection) String() string {
	return fmt.Sprintf("%s (%.2f)", d.Label, d.Confidence)
}

// FaceState is derived fresh per frame. IsSmiling and IsSad are never both true.
type FaceState struct {
	FaceDetected bool `json:"faceDetected"`
	IsSmiling    bool `json:"isSmiling"`
	IsSad        bool `json:"isSad"`
}

// HandState is derived fresh per frame. RaisedHand implies HandDetected.
type HandState struct {
	HandDetected bool `json:"handDetected"`
	RaisedHand   bool `json:"raisedHand"`
}

// Landmark is a normalized keypoint: x and y in [0,1], y grows downward
type Landmark struct {
	X float32 `json:"x" msgpack:"x"`
	Y float32 `json:"y" msgpack:"y"`
	Z float32 `json:"z" msgpack:"z"`
}

// LandmarkSet holds the keypoints of a single face or hand
type LandmarkSet []Landmark

// ChannelEvent is the raw inbound envelope. Each Data entry is itself JSON encoded.
type ChannelEvent struct {
	Method string   `json:"method"`
	Sender string   `json:"sender"`
	Data   []string `json:"data"`
}

type Peer struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	AutoStart bool   `json:"autoStart"`
	Class     string `json:"class"`
}

type RobotConfig struct {
	Type     string          `json:"type"`
	Peers    map[string]Peer `json:"peers"`
	Gestures []string        `json:"gestures"`
	Class    string          `json:"class"`
}

// RobotDescriptor is the robot service description served over REST
type RobotDescriptor struct {
	Name       string      `json:"name"`
	ID         string      `json:"id"`
	SimpleName string      `json:"simpleName"`
	TypeKey    string      `json:"typeKey"`
	IsRunning  bool        `json:"isRunning"`
	Config     RobotConfig `json:"config"`
	Gestures   []string    `json:"gestures"`
	Class      string      `json:"class"`
}

func (r RobotDescriptor) GetGestures() []string {
	if len(r.Gestures) > 0 {
		return r.Gestures
	}
	return r.Config.Gestures
}

type PipelineStats struct {
	Session       string  `json:"session"`
	Frames        int     `json:"frames"`
	SkippedFrames int     `json:"skippedFrames"`
	Errors        int     `json:"errors"`
	Uptime        int64   `json:"uptime"`
	FPS           int     `json:"fps"`
	AvgProcTime   float64 `json:"avgProcTime"`
	Timestamp     int64   `json:"timestamp"`
}

type ListenerStats struct {
	Session      string         `json:"session"`
	Messages     int            `json:"messages"`
	Unrecognized int            `json:"unrecognized"`
	ByMethod     map[string]int `json:"byMethod"`
	Uptime       int64          `json:"uptime"`
	Timestamp    int64          `json:"timestamp"`
}
