package command

type Kind string

const (
	Say   Kind = "say"
	Ask   Kind = "ask"
	LLM   Kind = "llm"
	Start Kind = "start"
	Stop  Kind = "stop"
)

// Kinds lists every command kind in the order the UI cycles through them
var Kinds = []Kind{Say, Ask, LLM, Start, Stop}

// NeedsText reports whether the kind carries the user's text
func (k Kind) NeedsText() bool {
	return k == Say || k == Ask || k == LLM
}

type IService interface {
	Publish(kind Kind, text string) error
}
