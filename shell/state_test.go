package shell

import (
	"testing"

	"github.com/khaledhikmat/vs-robot-eye/model"
	"github.com/khaledhikmat/vs-robot-eye/service/command"
	"github.com/stretchr/testify/require"
)

func TestLabels(t *testing.T) {
	require.Equal(t, "No Hand", HandLabel(model.HandState{}))
	require.Equal(t, "Hand Detected", HandLabel(model.HandState{HandDetected: true}))
	require.Equal(t, "Raised Hand Detected", HandLabel(model.HandState{HandDetected: true, RaisedHand: true}))

	require.Equal(t, "No Face", FaceLabel(model.FaceState{}))
	require.Equal(t, "Face Detected", FaceLabel(model.FaceState{FaceDetected: true}))
	require.Equal(t, "Smiling Face", FaceLabel(model.FaceState{FaceDetected: true, IsSmiling: true}))
	require.Equal(t, "Sad Face", FaceLabel(model.FaceState{FaceDetected: true, IsSad: true}))
}

func typeText(s *State, text string) {
	for _, r := range text {
		s.HandleKey(int(r))
	}
}

func TestHandleKey(t *testing.T) {
	s := NewState()
	require.Equal(t, command.Say, s.Kind())

	typeText(s, "hellox")
	require.Equal(t, ActionNone, s.HandleKey(keyBackspace))
	require.Equal(t, "hello", s.Input())

	// Non printable keys are ignored
	require.Equal(t, ActionNone, s.HandleKey(keyNone))
	require.Equal(t, ActionNone, s.HandleKey(200))
	require.Equal(t, "hello", s.Input())

	require.Equal(t, ActionNone, s.HandleKey(keyTab))
	require.Equal(t, command.Ask, s.Kind())

	require.Equal(t, ActionSend, s.HandleKey(keyEnter))
	require.Equal(t, ActionSend, s.HandleKey(keyLF))
	require.Equal(t, ActionQuit, s.HandleKey(keyEsc))
}

func TestCycleKindWraps(t *testing.T) {
	s := NewState()
	seen := []command.Kind{}
	for range command.Kinds {
		seen = append(seen, s.Kind())
		s.CycleKind()
	}
	require.Equal(t, command.Kinds, seen)
	require.Equal(t, command.Say, s.Kind())
}

func TestSubmit(t *testing.T) {
	s := NewState()

	_, _, ok := s.Submit()
	require.False(t, ok, "say needs text")

	typeText(s, "hi robot")
	kind, text, ok := s.Submit()
	require.True(t, ok)
	require.Equal(t, command.Say, kind)
	require.Equal(t, "hi robot", text)
	require.Empty(t, s.Input())

	// start and stop go out without text
	for s.Kind() != command.Start {
		s.CycleKind()
	}
	kind, text, ok = s.Submit()
	require.True(t, ok)
	require.Equal(t, command.Start, kind)
	require.Empty(t, text)
}

func TestRenderPanel(t *testing.T) {
	s := NewState()
	s.Detections = []string{"person (0.87)", "cup (0.51)"}
	for i := 0; i < 200; i++ {
		s.AppendResponse("onResponse: a fairly long response line that has to be wrapped to fit the panel width")
	}
	s.Lost = true
	s.Status = "connection lost"

	img := RenderPanel(s, 768)
	require.Equal(t, panelWidth, img.Bounds().Dx())
	require.Equal(t, 768, img.Bounds().Dy())
}
