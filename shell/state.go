package shell

import (
	"github.com/khaledhikmat/vs-robot-eye/model"
	"github.com/khaledhikmat/vs-robot-eye/service/command"
)

// Key codes as returned by gocv.Window.WaitKey
const (
	keyNone      = -1
	keyBackspace = 8
	keyTab       = 9
	keyLF        = 10
	keyEnter     = 13
	keyEsc       = 27
	keyDelete    = 127
)

type Action int

const (
	ActionNone Action = iota
	ActionSend
	ActionQuit
)

// State is everything the window shows apart from the video frame
type State struct {
	Hand       model.HandState
	Face       model.FaceState
	Detections []string
	Responses  []string
	Status     string
	Lost       bool

	input []rune
	kind  int
}

func NewState() *State {
	return &State{
		Detections: []string{},
		Responses:  []string{},
		Status:     "connecting",
	}
}

func HandLabel(h model.HandState) string {
	switch {
	case h.RaisedHand:
		return "Raised Hand Detected"
	case h.HandDetected:
		return "Hand Detected"
	default:
		return "No Hand"
	}
}

func FaceLabel(f model.FaceState) string {
	switch {
	case !f.FaceDetected:
		return "No Face"
	case f.IsSmiling:
		return "Smiling Face"
	case f.IsSad:
		return "Sad Face"
	default:
		return "Face Detected"
	}
}

func (s *State) Kind() command.Kind {
	return command.Kinds[s.kind]
}

func (s *State) CycleKind() {
	s.kind = (s.kind + 1) % len(command.Kinds)
}

func (s *State) Input() string {
	return string(s.input)
}

func (s *State) AppendResponse(text string) {
	s.Responses = append(s.Responses, text)
}

// HandleKey applies one key press. Printable ASCII is typed into the input line.
func (s *State) HandleKey(key int) Action {
	switch key {
	case keyNone:
		return ActionNone
	case keyEsc:
		return ActionQuit
	case keyTab:
		s.CycleKind()
	case keyEnter, keyLF:
		return ActionSend
	case keyBackspace, keyDelete:
		if len(s.input) > 0 {
			s.input = s.input[:len(s.input)-1]
		}
	default:
		if key >= 32 && key < 127 {
			s.input = append(s.input, rune(key))
		}
	}
	return ActionNone
}

// Submit returns the command to publish. Text kinds refuse an empty input.
// The input line is cleared once a command is accepted.
func (s *State) Submit() (command.Kind, string, bool) {
	kind := s.Kind()
	text := s.Input()
	if kind.NeedsText() && text == "" {
		return kind, "", false
	}

	s.input = s.input[:0]
	return kind, text, true
}
