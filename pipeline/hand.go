package pipeline

import (
	"github.com/khaledhikmat/vs-robot-eye/model"
	"github.com/khaledhikmat/vs-robot-eye/service/landmark"
	"gocv.io/x/gocv"
)

// raisedFingertips is how many of the index, middle and pinky tips must be
// above the wrist for the hand to count as raised
const raisedFingertips = 2

// CountRaisedFingertips returns how many of the index, middle and pinky
// fingertips sit strictly above the wrist. Image y grows downward.
func CountRaisedFingertips(hand model.LandmarkSet) int {
	if len(hand) < HandLandmarks {
		return 0
	}

	wristY := hand[Wrist].Y
	count := 0
	for _, tip := range []int{IndexTip, MiddleTip, PinkyTip} {
		if hand[tip].Y < wristY {
			count++
		}
	}
	return count
}

// AnalyzeHands flags a raised hand if any detected hand has enough fingertips
// above its wrist, and draws every hand skeleton on the frame.
func AnalyzeHands(img *gocv.Mat, hands []model.LandmarkSet) model.HandState {
	state := model.HandState{}
	if len(hands) == 0 {
		return state
	}

	state.HandDetected = true
	for _, hand := range hands {
		if CountRaisedFingertips(hand) >= raisedFingertips {
			state.RaisedHand = true
		}

		if img != nil {
			drawConnections(img, hand, HandConnections, clrBone, 2, jointRadius)
		}
	}

	return state
}

// HandAnalyzer runs the hand landmark model and derives the hand state
type HandAnalyzer struct {
	svc landmark.IService
}

func NewHandAnalyzer(svc landmark.IService) *HandAnalyzer {
	return &HandAnalyzer{svc: svc}
}

func (a *HandAnalyzer) Analyze(img *gocv.Mat) (model.HandState, error) {
	hands, err := a.svc.Hands(*img)
	if err != nil {
		return model.HandState{}, err
	}
	return AnalyzeHands(img, hands), nil
}
