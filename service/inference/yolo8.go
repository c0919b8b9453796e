package inference

import (
	"fmt"
	"image"
	"log/slog"
	"os"
	"strings"

	"github.com/khaledhikmat/vs-robot-eye/model"
	"github.com/khaledhikmat/vs-robot-eye/service/config"
	"github.com/khaledhikmat/vs-robot-eye/service/lgr"
	"gocv.io/x/gocv"
	"golang.org/x/xerrors"
)

// YOLOv8 exports a single [1, 4+classes, anchors] tensor: cx, cy, w, h in input
// pixels followed by one score per class. There is no separate objectness column.
const yolo8BoxColumns = 4

type yolo8Service struct {
	net    gocv.Net
	labels []string
	params config.DetectorParameters
}

func NewYolo8(cfgSvc config.IService) (IService, error) {
	params := cfgSvc.GetDetectorParameters()

	if _, err := os.Stat(params.ModelPath); os.IsNotExist(err) {
		return nil, xerrors.Errorf("no yolo8 model exists at %s: %w", params.ModelPath, err)
	}

	labels, err := loadLabels(params.LabelsPath)
	if err != nil {
		return nil, err
	}

	net := gocv.ReadNet(params.ModelPath, "")
	if net.Empty() {
		return nil, xerrors.Errorf("error reading yolo8 model %s", params.ModelPath)
	}

	if err := net.SetPreferableBackend(gocv.NetBackendDefault); err != nil {
		net.Close()
		return nil, xerrors.Errorf("error setting backend: %w", err)
	}

	if err := net.SetPreferableTarget(gocv.NetTargetCPU); err != nil {
		net.Close()
		return nil, xerrors.Errorf("error setting target: %w", err)
	}

	if params.InputSize <= 0 {
		params.InputSize = 640
	}

	lgr.Logger.Info("yolo8 detector ready",
		slog.String("model", params.ModelPath),
		slog.Int("labels", len(labels)),
		slog.String("openCV", gocv.Version()),
	)

	return &yolo8Service{
		net:    net,
		labels: labels,
		params: params,
	}, nil
}

func (svc *yolo8Service) Detect(frame gocv.Mat) (dets []model.Detection, err error) {
	// gocv surfaces OpenCV exceptions as panics
	defer func() {
		if r := recover(); r != nil {
			dets = nil
			err = xerrors.Errorf("yolo8 inference panicked: %v: %w", r, model.ErrModel)
		}
	}()

	if frame.Empty() {
		return nil, xerrors.Errorf("empty frame: %w", model.ErrModel)
	}

	size := svc.params.InputSize
	blob := gocv.BlobFromImage(frame, 1.0/255.0, image.Pt(size, size), gocv.NewScalar(0, 0, 0, 0), true, false)
	defer blob.Close()

	svc.net.SetInput(blob, "")

	output := svc.net.Forward("")
	defer output.Close()

	dims := output.Size()
	if len(dims) != 3 || dims[1] <= yolo8BoxColumns {
		return nil, xerrors.Errorf("unexpected DNN output dims %v: %w", dims, model.ErrModel)
	}

	reshaped := output.Reshape(1, dims[1])
	defer reshaped.Close()

	// One row per anchor
	rows := gocv.NewMat()
	defer rows.Close()
	gocv.Transpose(reshaped, &rows)

	data, err := rows.DataPtrFloat32()
	if err != nil {
		return nil, xerrors.Errorf("reading DNN output: %v: %w", err, model.ErrModel)
	}

	cols := rows.Cols()
	scaleX := float32(frame.Cols()) / float32(size)
	scaleY := float32(frame.Rows()) / float32(size)

	boxes := []image.Rectangle{}
	scores := []float32{}
	classIDs := []int{}

	for i := 0; i < rows.Rows(); i++ {
		row := data[i*cols : (i+1)*cols]
		classID, score := bestClass(row[yolo8BoxColumns:])
		if classID < 0 || score < svc.params.ConfidenceThreshold {
			continue
		}

		boxes = append(boxes, scaleBox(row[0], row[1], row[2], row[3], scaleX, scaleY))
		scores = append(scores, score)
		classIDs = append(classIDs, classID)
	}

	if len(boxes) == 0 {
		return []model.Detection{}, nil
	}

	indices := gocv.NMSBoxes(boxes, scores, svc.params.ConfidenceThreshold, svc.params.NMSThreshold)

	dets = make([]model.Detection, 0, len(indices))
	for _, idx := range indices {
		dets = append(dets, model.Detection{
			Box:        boxes[idx],
			Label:      svc.label(classIDs[idx]),
			Confidence: scores[idx],
		})
	}

	return dets, nil
}

func (svc *yolo8Service) Close() error {
	return svc.net.Close()
}

func (svc *yolo8Service) label(classID int) string {
	if classID >= 0 && classID < len(svc.labels) {
		return svc.labels[classID]
	}
	return fmt.Sprintf("class %d", classID)
}

func bestClass(scores []float32) (int, float32) {
	classID := -1
	best := float32(0.0)
	for j, score := range scores {
		if score > best {
			best = score
			classID = j
		}
	}
	return classID, best
}

// scaleBox maps a center/size box in model input pixels to a corner box in frame pixels
func scaleBox(cx, cy, w, h, scaleX, scaleY float32) image.Rectangle {
	x1 := int((cx - w/2) * scaleX)
	y1 := int((cy - h/2) * scaleY)
	x2 := int((cx + w/2) * scaleX)
	y2 := int((cy + h/2) * scaleY)
	return image.Rect(x1, y1, x2, y2)
}

func loadLabels(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, xerrors.Errorf("error reading labels %s: %w", path, err)
	}

	labels := []string{}
	for _, l := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		labels = append(labels, strings.TrimSpace(l))
	}
	return labels, nil
}
