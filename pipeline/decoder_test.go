package pipeline

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/khaledhikmat/vs-robot-eye/model"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

// gradientPNG returns a small image whose columns are all distinct so
// mirroring is observable
func gradientPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 255 / (w - 1)), G: uint8(y * 255 / (h - 1)), B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDecodeFrameSizeAndMirror(t *testing.T) {
	raw := gradientPNG(t, 64, 48)

	frame, err := DecodeFrame(base64.StdEncoding.EncodeToString(raw))
	require.NoError(t, err)
	defer frame.Close()

	require.Equal(t, FrameWidth, frame.Cols())
	require.Equal(t, FrameHeight, frame.Rows())
	require.Equal(t, 3, frame.Channels())

	// Build the unmirrored resize the same way and compare column i with 1023-i
	src, err := gocv.IMDecode(raw, gocv.IMReadColor)
	require.NoError(t, err)
	defer src.Close()
	unmirrored := gocv.NewMat()
	defer unmirrored.Close()
	gocv.Resize(src, &unmirrored, image.Pt(FrameWidth, FrameHeight), 0, 0, gocv.InterpolationLinear)

	for _, row := range []int{0, 100, 767} {
		for _, col := range []int{0, 1, 511, 700, 1023} {
			require.Equal(t,
				unmirrored.GetVecbAt(row, FrameWidth-1-col),
				frame.GetVecbAt(row, col),
				"row %d col %d", row, col)
		}
	}
}

func TestDecodeFrameErrors(t *testing.T) {
	_, err := DecodeFrame("!!not base64!!")
	require.True(t, errors.Is(err, model.ErrDecode))

	_, err = DecodeFrame(base64.StdEncoding.EncodeToString([]byte("not an image")))
	require.True(t, errors.Is(err, model.ErrDecode))
}
