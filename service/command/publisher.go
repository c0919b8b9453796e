package command

import (
	"log/slog"

	jsoniter "github.com/json-iterator/go"
	"github.com/khaledhikmat/vs-robot-eye/model"
	"github.com/khaledhikmat/vs-robot-eye/service/channel"
	"github.com/khaledhikmat/vs-robot-eye/service/config"
	"github.com/khaledhikmat/vs-robot-eye/service/lgr"
	"golang.org/x/xerrors"
)

var json = jsoniter.Config{
	EscapeHTML: false,
}.Froze()

// Envelope is the outbound message. Field order is part of the wire format.
type Envelope struct {
	Name   string   `json:"name"`
	Method string   `json:"method"`
	Data   []string `json:"data,omitempty"`
}

type publisher struct {
	chatSvc string
	chanSvc channel.IService
}

func NewPublisher(cfgSvc config.IService, chanSvc channel.IService) IService {
	return &publisher{
		chatSvc: cfgSvc.GetChatServiceName(),
		chanSvc: chanSvc,
	}
}

func (p *publisher) Publish(kind Kind, text string) error {
	if !p.chanSvc.IsConnected() {
		return model.ErrNotConnected
	}

	msg, err := BuildEnvelope(p.chatSvc, kind, text)
	if err != nil {
		return err
	}

	b, err := json.Marshal(msg)
	if err != nil {
		return xerrors.Errorf("encoding %s envelope: %w", kind, err)
	}

	if err := p.chanSvc.Send(b); err != nil {
		return err
	}

	lgr.Logger.Debug("command published",
		slog.String("kind", string(kind)),
		slog.String("name", msg.Name),
		slog.String("method", msg.Method),
	)
	return nil
}

// BuildEnvelope maps a command kind to its fixed envelope. Text kinds carry the
// text JSON encoded as their only data entry.
func BuildEnvelope(chatSvc string, kind Kind, text string) (Envelope, error) {
	switch kind {
	case Say:
		return textEnvelope(chatSvc+".chatBot", "publishText", text)
	case Ask:
		return textEnvelope(chatSvc+".chatBot", "getResponse", text)
	case LLM:
		return textEnvelope(chatSvc+".llm", "getResponse", text)
	case Start:
		return Envelope{Name: chatSvc + ".ear", Method: "startRecording"}, nil
	case Stop:
		return Envelope{Name: chatSvc + ".ear", Method: "stopRecording"}, nil
	default:
		return Envelope{}, xerrors.Errorf("unknown command kind %q: %w", kind, model.ErrInvalidCommand)
	}
}

func textEnvelope(name, method, text string) (Envelope, error) {
	data, err := json.MarshalToString(text)
	if err != nil {
		return Envelope{}, xerrors.Errorf("encoding text: %w", err)
	}
	return Envelope{Name: name, Method: method, Data: []string{data}}, nil
}
