package pipeline

import (
	"encoding/base64"
	"image"

	"github.com/khaledhikmat/vs-robot-eye/model"
	"gocv.io/x/gocv"
	"golang.org/x/xerrors"
)

const (
	FrameWidth  = 1024
	FrameHeight = 768
)

// DecodeFrame turns a base64 image payload into the canonical frame: 1024x768,
// mirrored horizontally, BGR. On success the caller owns the returned Mat.
func DecodeFrame(payload string) (gocv.Mat, error) {
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return gocv.Mat{}, xerrors.Errorf("invalid base64 payload: %v: %w", err, model.ErrDecode)
	}

	img, err := gocv.IMDecode(raw, gocv.IMReadColor)
	if err != nil {
		return gocv.Mat{}, xerrors.Errorf("undecodable image: %v: %w", err, model.ErrDecode)
	}
	defer img.Close()

	if img.Empty() {
		return gocv.Mat{}, xerrors.Errorf("undecodable image: %w", model.ErrDecode)
	}

	resized := gocv.NewMat()
	defer resized.Close()
	gocv.Resize(img, &resized, image.Pt(FrameWidth, FrameHeight), 0, 0, gocv.InterpolationLinear)

	// IMDecode already yields BGR, the order the detector and the drawing
	// helpers expect, so mirroring is the last step.
	mirrored := gocv.NewMat()
	gocv.Flip(resized, &mirrored, 1)

	return mirrored, nil
}
