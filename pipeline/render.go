package pipeline

import (
	"image"
	"image/color"

	"github.com/khaledhikmat/vs-robot-eye/model"
	"gocv.io/x/gocv"
)

var clrBox = color.RGBA{R: 0, G: 255, B: 0, A: 255}

// DrawDetections renders a box and a "label (confidence)" caption for every
// detection, in place.
func DrawDetections(img *gocv.Mat, dets []model.Detection) {
	for _, det := range dets {
		gocv.Rectangle(img, det.Box, clrBox, 2)
		gocv.PutText(img, det.String(), image.Pt(det.Box.Min.X, det.Box.Min.Y-10),
			gocv.FontHersheySimplex, 0.5, clrBox, 2)
	}
}

// DetectionLabels is the detected objects list shown next to the video
func DetectionLabels(dets []model.Detection) []string {
	labels := make([]string, 0, len(dets))
	for _, det := range dets {
		labels = append(labels, det.String())
	}
	return labels
}
