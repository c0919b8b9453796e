package landmark

import (
	"encoding/binary"
	"io"
	"net"
	"time"

	"github.com/khaledhikmat/vs-robot-eye/model"
	"github.com/khaledhikmat/vs-robot-eye/service/config"
	"github.com/vmihailenco/msgpack/v5"
	"gocv.io/x/gocv"
	"golang.org/x/xerrors"
)

const (
	KindFace  = "face"
	KindHands = "hands"
	KindMesh  = "mesh"
)

// Request is sent to the MediaPipe sidecar
type Request struct {
	Kind   string `msgpack:"k"`
	Height int    `msgpack:"h"`
	Width  int    `msgpack:"w"`
	Data   []byte `msgpack:"d"` // RGB uint8, row-major, shape (H, W, 3)
}

// Response is received from the MediaPipe sidecar
type Response struct {
	Sets        [][]model.Landmark `msgpack:"sets"`
	Edges       [][2]int           `msgpack:"edges"`
	Error       string             `msgpack:"error"`
	InferenceMs float32            `msgpack:"inference_ms"`
}

// sidecarService talks to a local MediaPipe process over a unix socket. Every
// call dials a fresh connection and exchanges one length-prefixed msgpack frame
// in each direction.
type sidecarService struct {
	socketPath string
	timeout    time.Duration
	dial       func(network, address string) (net.Conn, error)
}

func NewSidecar(cfgSvc config.IService) IService {
	return &sidecarService{
		socketPath: cfgSvc.GetLandmarkSocketPath(),
		timeout:    time.Duration(cfgSvc.GetLandmarkTimeout()) * time.Millisecond,
		dial:       net.Dial,
	}
}

func (svc *sidecarService) Faces(frame gocv.Mat) ([]model.LandmarkSet, error) {
	return svc.invoke(KindFace, frame)
}

func (svc *sidecarService) Hands(frame gocv.Mat) ([]model.LandmarkSet, error) {
	return svc.invoke(KindHands, frame)
}

// FaceMesh asks the sidecar for the face mesh tessellation edges
func (svc *sidecarService) FaceMesh() ([][2]int, error) {
	resp, err := svc.exchange(Request{Kind: KindMesh})
	if err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, xerrors.New(resp.Error)
	}
	return resp.Edges, nil
}

func (svc *sidecarService) Close() error {
	return nil
}

func (svc *sidecarService) invoke(kind string, frame gocv.Mat) ([]model.LandmarkSet, error) {
	if frame.Empty() {
		return nil, xerrors.Errorf("empty frame: %w", model.ErrModel)
	}

	// MediaPipe expects RGB
	rgb := gocv.NewMat()
	defer rgb.Close()
	gocv.CvtColor(frame, &rgb, gocv.ColorBGRToRGB)

	req := Request{
		Kind:   kind,
		Height: rgb.Rows(),
		Width:  rgb.Cols(),
		Data:   rgb.ToBytes(),
	}

	resp, err := svc.exchange(req)
	if err != nil {
		return nil, xerrors.Errorf("landmark sidecar %s: %v: %w", kind, err, model.ErrModel)
	}

	if resp.Error != "" {
		return nil, xerrors.Errorf("landmark sidecar %s: %s: %w", kind, resp.Error, model.ErrModel)
	}

	sets := make([]model.LandmarkSet, len(resp.Sets))
	for i, s := range resp.Sets {
		sets[i] = model.LandmarkSet(s)
	}
	return sets, nil
}

func (svc *sidecarService) exchange(req Request) (Response, error) {
	var resp Response

	conn, err := svc.dial("unix", svc.socketPath)
	if err != nil {
		return resp, xerrors.Errorf("failed to connect to landmark service: %w", err)
	}
	defer conn.Close()

	if svc.timeout > 0 {
		conn.SetDeadline(time.Now().Add(svc.timeout))
	}

	payload, err := msgpack.Marshal(req)
	if err != nil {
		return resp, xerrors.Errorf("failed to encode request: %w", err)
	}

	if err := writeFrame(conn, payload); err != nil {
		return resp, xerrors.Errorf("failed to send request: %w", err)
	}

	body, err := readFrame(conn)
	if err != nil {
		return resp, xerrors.Errorf("failed to read response: %w", err)
	}

	if err := msgpack.Unmarshal(body, &resp); err != nil {
		return resp, xerrors.Errorf("failed to decode response: %w", err)
	}

	return resp, nil
}

// Frames are [uint32 big-endian length][payload]
func writeFrame(w io.Writer, payload []byte) error {
	if err := binary.Write(w, binary.BigEndian, uint32(len(payload))); err != nil {
		return err
	}
	_, err := w.Write(payload)
	return err
}

func readFrame(r io.Reader) ([]byte, error) {
	var length uint32
	if err := binary.Read(r, binary.BigEndian, &length); err != nil {
		return nil, err
	}
	body := make([]byte, length)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, err
	}
	return body, nil
}
