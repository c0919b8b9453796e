package pipeline

import (
	"image"
	"image/color"

	"github.com/khaledhikmat/vs-robot-eye/model"
	"gocv.io/x/gocv"
)

// Face mesh landmark indices used for mood classification
const (
	MouthLeft   = 61
	MouthRight  = 291
	MouthTop    = 13
	MouthBottom = 14
)

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist         = 0
	ThumbCMC      = 1
	ThumbMCP      = 2
	ThumbIP       = 3
	ThumbTip      = 4
	IndexMCP      = 5
	IndexPIP      = 6
	IndexDIP      = 7
	IndexTip      = 8
	MiddleMCP     = 9
	MiddlePIP     = 10
	MiddleDIP     = 11
	MiddleTip     = 12
	RingMCP       = 13
	RingPIP       = 14
	RingDIP       = 15
	RingTip       = 16
	PinkyMCP      = 17
	PinkyPIP      = 18
	PinkyDIP      = 19
	PinkyTip      = 20
	HandLandmarks = 21
)

// Edge joins two landmark indices
type Edge [2]int

var (
	// HandConnections is the 21 point hand skeleton
	HandConnections = []Edge{
		{Wrist, ThumbCMC}, {ThumbCMC, ThumbMCP}, {ThumbMCP, ThumbIP}, {ThumbIP, ThumbTip},
		{Wrist, IndexMCP}, {IndexMCP, IndexPIP}, {IndexPIP, IndexDIP}, {IndexDIP, IndexTip},
		{IndexMCP, MiddleMCP}, {MiddleMCP, MiddlePIP}, {MiddlePIP, MiddleDIP}, {MiddleDIP, MiddleTip},
		{MiddleMCP, RingMCP}, {RingMCP, RingPIP}, {RingPIP, RingDIP}, {RingDIP, RingTip},
		{RingMCP, PinkyMCP}, {Wrist, PinkyMCP}, {PinkyMCP, PinkyPIP}, {PinkyPIP, PinkyDIP}, {PinkyDIP, PinkyTip},
	}

	// FaceContours is drawn when the landmark service cannot supply the full
	// tessellation: face oval, lips and both eyes.
	FaceContours = append(append(append(append(
		chain(10, 338, 297, 332, 284, 251, 389, 356, 454, 323, 361, 288, 397, 365, 379, 378, 400,
			377, 152, 148, 176, 149, 150, 136, 172, 58, 132, 93, 234, 127, 162, 21, 54, 103, 67, 109, 10),
		chain(61, 146, 91, 181, 84, 17, 314, 405, 321, 375, 291, 409, 270, 269, 267, 0, 37, 39, 40, 185, 61)...),
		chain(78, 95, 88, 178, 87, 14, 317, 402, 318, 324, 308, 415, 310, 311, 312, 13, 82, 81, 80, 191, 78)...),
		chain(263, 249, 390, 373, 374, 380, 381, 382, 362, 398, 384, 385, 386, 387, 388, 466, 263)...),
		chain(33, 7, 163, 144, 145, 153, 154, 155, 133, 173, 157, 158, 159, 160, 161, 246, 33)...)

	clrMesh     = color.RGBA{R: 192, G: 192, B: 192, A: 255}
	clrBone     = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	clrJoint    = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	jointRadius = 3
)

// chain turns a polyline of indices into consecutive edges
func chain(idx ...int) []Edge {
	edges := make([]Edge, 0, len(idx))
	for i := 1; i < len(idx); i++ {
		edges = append(edges, Edge{idx[i-1], idx[i]})
	}
	return edges
}

// toPixel maps a normalized landmark onto the frame. Landmarks outside the
// unit square are not drawn.
func toPixel(l model.Landmark, cols, rows int) (image.Point, bool) {
	if l.X < 0 || l.X > 1 || l.Y < 0 || l.Y > 1 {
		return image.Point{}, false
	}
	return image.Pt(int(l.X*float32(cols)), int(l.Y*float32(rows))), true
}

// drawConnections renders the edges of one landmark set and, when radius is
// positive, a dot on every landmark.
func drawConnections(img *gocv.Mat, set model.LandmarkSet, edges []Edge, lineClr color.RGBA, thickness int, radius int) {
	cols, rows := img.Cols(), img.Rows()

	for _, e := range edges {
		if e[0] >= len(set) || e[1] >= len(set) {
			continue
		}
		p1, ok1 := toPixel(set[e[0]], cols, rows)
		p2, ok2 := toPixel(set[e[1]], cols, rows)
		if !ok1 || !ok2 {
			continue
		}
		gocv.Line(img, p1, p2, lineClr, thickness)
	}

	if radius <= 0 {
		return
	}

	for _, l := range set {
		if p, ok := toPixel(l, cols, rows); ok {
			gocv.Circle(img, p, radius, clrJoint, -1)
		}
	}
}
