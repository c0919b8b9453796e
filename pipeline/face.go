package pipeline

import (
	"github.com/chewxy/math32"
	"github.com/khaledhikmat/vs-robot-eye/model"
	"github.com/khaledhikmat/vs-robot-eye/service/landmark"
	"gocv.io/x/gocv"
)

const (
	// smileRatio scales the mouth width into the smile threshold
	smileRatio = 0.25
	// sadRatio scales the smile threshold into the sad threshold
	sadRatio = 0.6
)

type Mood int

const (
	MoodNeutral Mood = iota
	MoodSmiling
	MoodSad
)

// MeshProvider is implemented by landmark services that can supply the face
// mesh tessellation edges
type MeshProvider interface {
	FaceMesh() ([][2]int, error)
}

// ClassifyMouth derives the mood of one face from its mouth geometry.
// ok is false when the set is too short to hold the mouth landmarks.
func ClassifyMouth(face model.LandmarkSet) (mood Mood, ok bool) {
	if len(face) <= MouthRight {
		return MoodNeutral, false
	}

	left := face[MouthLeft]
	right := face[MouthRight]
	top := face[MouthTop]
	bottom := face[MouthBottom]

	mouthWidth := math32.Abs(right.X - left.X)
	mouthHeight := math32.Abs(bottom.Y - top.Y)
	smileThreshold := mouthWidth * smileRatio

	switch {
	case mouthHeight > smileThreshold:
		return MoodSmiling, true
	case mouthHeight < smileThreshold*sadRatio:
		return MoodSad, true
	default:
		return MoodNeutral, true
	}
}

// AnalyzeFace classifies every detected face and draws its mesh on the frame.
// Moods are aggregated across faces: any smiling face makes the frame smiling,
// otherwise any sad face makes it sad.
func AnalyzeFace(img *gocv.Mat, faces []model.LandmarkSet, mesh []Edge) model.FaceState {
	state := model.FaceState{}
	if len(faces) == 0 {
		return state
	}

	state.FaceDetected = true
	if len(mesh) == 0 {
		mesh = FaceContours
	}

	for _, face := range faces {
		mood, ok := ClassifyMouth(face)
		if ok {
			switch mood {
			case MoodSmiling:
				state.IsSmiling = true
			case MoodSad:
				state.IsSad = true
			}
		}

		if img != nil {
			drawConnections(img, face, mesh, clrMesh, 1, 0)
		}
	}

	if state.IsSmiling {
		state.IsSad = false
	}

	return state
}

// FaceAnalyzer runs the face mesh model and derives the face state
type FaceAnalyzer struct {
	svc  landmark.IService
	mesh []Edge
}

func NewFaceAnalyzer(svc landmark.IService) *FaceAnalyzer {
	a := &FaceAnalyzer{svc: svc}

	if mp, ok := svc.(MeshProvider); ok {
		if edges, err := mp.FaceMesh(); err == nil {
			for _, e := range edges {
				a.mesh = append(a.mesh, Edge(e))
			}
		}
	}

	return a
}

func (a *FaceAnalyzer) Analyze(img *gocv.Mat) (model.FaceState, error) {
	faces, err := a.svc.Faces(*img)
	if err != nil {
		return model.FaceState{}, err
	}
	return AnalyzeFace(img, faces, a.mesh), nil
}
