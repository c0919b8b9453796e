package pipeline

import (
	"testing"

	"github.com/khaledhikmat/vs-robot-eye/model"
	"github.com/khaledhikmat/vs-robot-eye/service/landmark"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

const faceMeshPoints = 468

// faceWithMouth builds a face whose mouth is width wide and height tall
func faceWithMouth(width, height float32) model.LandmarkSet {
	face := make(model.LandmarkSet, faceMeshPoints)
	for i := range face {
		face[i] = model.Landmark{X: 0.5, Y: 0.5}
	}
	face[MouthLeft] = model.Landmark{X: 0.3, Y: 0.6}
	face[MouthRight] = model.Landmark{X: 0.3 + width, Y: 0.6}
	face[MouthTop] = model.Landmark{X: 0.5, Y: 0.55}
	face[MouthBottom] = model.Landmark{X: 0.5, Y: 0.55 + height}
	return face
}

func TestClassifyMouth(t *testing.T) {
	tests := []struct {
		name   string
		height float32
		want   Mood
	}{
		{"smiling", 0.2, MoodSmiling},
		{"sad", 0.02, MoodSad},
		{"neutral", 0.08, MoodNeutral},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mood, ok := ClassifyMouth(faceWithMouth(0.4, tc.height))
			require.True(t, ok)
			require.Equal(t, tc.want, mood)
		})
	}

	_, ok := ClassifyMouth(make(model.LandmarkSet, 10))
	require.False(t, ok)
}

func TestAnalyzeFaceStates(t *testing.T) {
	tests := []struct {
		name  string
		faces []model.LandmarkSet
		want  model.FaceState
	}{
		{"no face", nil, model.FaceState{}},
		{"smiling", []model.LandmarkSet{faceWithMouth(0.4, 0.2)}, model.FaceState{FaceDetected: true, IsSmiling: true}},
		{"sad", []model.LandmarkSet{faceWithMouth(0.4, 0.02)}, model.FaceState{FaceDetected: true, IsSad: true}},
		{"neutral", []model.LandmarkSet{faceWithMouth(0.4, 0.08)}, model.FaceState{FaceDetected: true}},
		{"short set", []model.LandmarkSet{make(model.LandmarkSet, 20)}, model.FaceState{FaceDetected: true}},
		// Any smiling face wins regardless of order
		{"sad then smiling", []model.LandmarkSet{faceWithMouth(0.4, 0.02), faceWithMouth(0.4, 0.2)}, model.FaceState{FaceDetected: true, IsSmiling: true}},
		{"smiling then sad", []model.LandmarkSet{faceWithMouth(0.4, 0.2), faceWithMouth(0.4, 0.02)}, model.FaceState{FaceDetected: true, IsSmiling: true}},
		{"neutral then sad", []model.LandmarkSet{faceWithMouth(0.4, 0.08), faceWithMouth(0.4, 0.02)}, model.FaceState{FaceDetected: true, IsSad: true}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			state := AnalyzeFace(nil, tc.faces, nil)
			require.Equal(t, tc.want, state)
			require.False(t, state.IsSmiling && state.IsSad)
		})
	}
}

func TestAnalyzeFaceDraws(t *testing.T) {
	img := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), 100, 100, gocv.MatTypeCV8UC3)
	defer img.Close()

	AnalyzeFace(&img, nil, nil)
	require.Zero(t, img.Sum().Val1+img.Sum().Val2+img.Sum().Val3)

	AnalyzeFace(&img, []model.LandmarkSet{faceWithMouth(0.4, 0.2)}, nil)
	require.NotZero(t, img.Sum().Val1+img.Sum().Val2+img.Sum().Val3)
}

type meshLandmarks struct {
	landmark.IService
	edges [][2]int
}

func (m meshLandmarks) FaceMesh() ([][2]int, error) {
	return m.edges, nil
}

func TestFaceAnalyzerUsesProvidedMesh(t *testing.T) {
	svc := meshLandmarks{
		IService: landmark.NewFake([]model.LandmarkSet{faceWithMouth(0.4, 0.02)}, nil),
		edges:    [][2]int{{MouthLeft, MouthRight}},
	}

	a := NewFaceAnalyzer(svc)
	require.Equal(t, []Edge{{MouthLeft, MouthRight}}, a.mesh)

	img := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), 100, 100, gocv.MatTypeCV8UC3)
	defer img.Close()

	state, err := a.Analyze(&img)
	require.NoError(t, err)
	require.Equal(t, model.FaceState{FaceDetected: true, IsSad: true}, state)
}
