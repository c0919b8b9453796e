package shell

import (
	"fmt"
	"image"

	"github.com/fogleman/gg"
)

const (
	panelWidth  = 420
	lineHeight  = 16.0
	panelMargin = 12.0
	maxDetected = 8
)

// RenderPanel draws the status side panel next to the video
func RenderPanel(s *State, height int) image.Image {
	dc := gg.NewContext(panelWidth, height)
	dc.SetRGB(0.12, 0.12, 0.14)
	dc.Clear()

	y := panelMargin + lineHeight
	line := func(text string) {
		dc.DrawString(text, panelMargin, y)
		y += lineHeight
	}
	header := func(text string) {
		y += lineHeight / 2
		dc.SetRGB(0.6, 0.8, 1)
		line(text)
		dc.SetRGB(0.9, 0.9, 0.9)
	}

	header("Hand")
	line(HandLabel(s.Hand))
	header("Face")
	line(FaceLabel(s.Face))

	header("Detected objects")
	for i, d := range s.Detections {
		if i == maxDetected {
			line(fmt.Sprintf("... %d more", len(s.Detections)-maxDetected))
			break
		}
		line(d)
	}

	// The response list fills the space left above the input area, newest last
	bottom := float64(height) - 4*lineHeight - panelMargin
	header("Responses")
	wrapped := []string{}
	for _, r := range s.Responses {
		wrapped = append(wrapped, dc.WordWrap(r, panelWidth-2*panelMargin)...)
	}
	room := int((bottom - y) / lineHeight)
	if room < 0 {
		room = 0
	}
	if len(wrapped) > room {
		wrapped = wrapped[len(wrapped)-room:]
	}
	for _, w := range wrapped {
		line(w)
	}

	y = bottom + lineHeight
	dc.SetRGB(1, 0.85, 0.4)
	line(fmt.Sprintf("[%s] > %s_", s.Kind(), s.Input()))
	dc.SetRGB(0.6, 0.6, 0.6)
	line("Tab: command  Enter: send  Esc: exit")
	if s.Lost {
		dc.SetRGB(1, 0.4, 0.4)
	} else {
		dc.SetRGB(0.5, 0.9, 0.5)
	}
	line(s.Status)

	return dc.Image()
}
