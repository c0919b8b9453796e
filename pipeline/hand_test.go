package pipeline

import (
	"testing"

	"github.com/khaledhikmat/vs-robot-eye/model"
	"github.com/khaledhikmat/vs-robot-eye/service/landmark"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

// handWithTips builds a hand with the wrist at y=0.9 and the index, middle
// and pinky tips at the given heights
func handWithTips(index, middle, pinky float32) model.LandmarkSet {
	hand := make(model.LandmarkSet, HandLandmarks)
	for i := range hand {
		hand[i] = model.Landmark{X: 0.5, Y: 0.8}
	}
	hand[Wrist] = model.Landmark{X: 0.5, Y: 0.9}
	hand[IndexTip].Y = index
	hand[MiddleTip].Y = middle
	hand[PinkyTip].Y = pinky
	return hand
}

func TestCountRaisedFingertips(t *testing.T) {
	require.Equal(t, 3, CountRaisedFingertips(handWithTips(0.2, 0.2, 0.3)))
	require.Equal(t, 1, CountRaisedFingertips(handWithTips(0.2, 0.95, 0.95)))
	// Level with the wrist is not above it
	require.Equal(t, 0, CountRaisedFingertips(handWithTips(0.9, 0.9, 0.9)))
	require.Equal(t, 0, CountRaisedFingertips(make(model.LandmarkSet, 5)))
}

func TestAnalyzeHandsStates(t *testing.T) {
	tests := []struct {
		name  string
		hands []model.LandmarkSet
		want  model.HandState
	}{
		{"no hand", nil, model.HandState{}},
		{"raised", []model.LandmarkSet{handWithTips(0.2, 0.2, 0.3)}, model.HandState{HandDetected: true, RaisedHand: true}},
		{"two tips", []model.LandmarkSet{handWithTips(0.2, 0.2, 0.95)}, model.HandState{HandDetected: true, RaisedHand: true}},
		{"lowered", []model.LandmarkSet{handWithTips(0.2, 0.95, 0.95)}, model.HandState{HandDetected: true}},
		{"raised then lowered", []model.LandmarkSet{handWithTips(0.2, 0.2, 0.3), handWithTips(0.95, 0.95, 0.95)}, model.HandState{HandDetected: true, RaisedHand: true}},
		{"lowered then raised", []model.LandmarkSet{handWithTips(0.95, 0.95, 0.95), handWithTips(0.2, 0.2, 0.3)}, model.HandState{HandDetected: true, RaisedHand: true}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			state := AnalyzeHands(nil, tc.hands)
			require.Equal(t, tc.want, state)
			if state.RaisedHand {
				require.True(t, state.HandDetected)
			}
		})
	}
}

func TestHandAnalyzerDraws(t *testing.T) {
	a := NewHandAnalyzer(landmark.NewFake(nil, []model.LandmarkSet{handWithTips(0.2, 0.2, 0.3)}))

	img := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), 100, 100, gocv.MatTypeCV8UC3)
	defer img.Close()

	state, err := a.Analyze(&img)
	require.NoError(t, err)
	require.True(t, state.RaisedHand)

	sum := img.Sum()
	require.NotZero(t, sum.Val1+sum.Val2+sum.Val3)
}
