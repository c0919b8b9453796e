package channel

import (
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/khaledhikmat/vs-robot-eye/model"
	"golang.org/x/xerrors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Inbound method names
const (
	MethodUtterance  = "onUtterance"
	MethodText       = "onText"
	MethodResponse   = "onResponse"
	MethodRequest    = "onRequest"
	MethodListening  = "onListeningEvent"
	MethodWebDisplay = "onWebDisplay"
)

// KeepAlive is sent by the robot between events and carries nothing
const KeepAlive = "X"

const imagePrefix = "data:image/jpg;base64,"

// Event is the closed set of inbound events. Decode returns one of the types
// below and nothing else.
type Event interface {
	Method() string
	isEvent()
}

type UtteranceEvent struct {
	Sender string
	Text   string
}

type TextEvent struct {
	Sender string
	Text   string
}

type ResponseEvent struct {
	Sender string
	Text   string
}

type RequestEvent struct {
	Sender string
	Text   string
}

type ListeningEvent struct {
	Sender string
	Text   string
}

// WebDisplayEvent carries one image stream frame. Image is the base64 payload
// with the data URI prefix already removed.
type WebDisplayEvent struct {
	Sender string
	Image  string
}

type UnrecognizedEvent struct {
	Name   string
	Sender string
}

// MalformedEvent is a known method whose payload could not be read
type MalformedEvent struct {
	Name   string
	Sender string
	Err    error
}

func (UtteranceEvent) Method() string      { return MethodUtterance }
func (TextEvent) Method() string           { return MethodText }
func (ResponseEvent) Method() string       { return MethodResponse }
func (RequestEvent) Method() string        { return MethodRequest }
func (ListeningEvent) Method() string      { return MethodListening }
func (WebDisplayEvent) Method() string     { return MethodWebDisplay }
func (e UnrecognizedEvent) Method() string { return e.Name }
func (e MalformedEvent) Method() string    { return e.Name }

func (UtteranceEvent) isEvent()    {}
func (TextEvent) isEvent()         {}
func (ResponseEvent) isEvent()     {}
func (RequestEvent) isEvent()      {}
func (ListeningEvent) isEvent()    {}
func (WebDisplayEvent) isEvent()   {}
func (UnrecognizedEvent) isEvent() {}
func (MalformedEvent) isEvent()    {}

type envelope struct {
	Method string                `json:"method"`
	Sender string                `json:"sender"`
	Data   []jsoniter.RawMessage `json:"data"`
}

// ParseEnvelope reads the outer message. Each data entry is returned as the
// JSON text it encodes.
func ParseEnvelope(raw []byte) (model.ChannelEvent, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return model.ChannelEvent{}, xerrors.Errorf("malformed message: %v: %w", err, model.ErrChannel)
	}

	ev := model.ChannelEvent{
		Method: env.Method,
		Sender: env.Sender,
		Data:   make([]string, 0, len(env.Data)),
	}
	for _, d := range env.Data {
		var s string
		if err := json.Unmarshal(d, &s); err == nil {
			ev.Data = append(ev.Data, s)
			continue
		}
		ev.Data = append(ev.Data, string(d))
	}

	return ev, nil
}

// Decode parses a raw message into its event variant. Only a malformed outer
// message is an error; payload problems yield a MalformedEvent.
func Decode(raw []byte) (Event, error) {
	ev, err := ParseEnvelope(raw)
	if err != nil {
		return nil, err
	}

	switch ev.Method {
	case MethodUtterance, MethodText, MethodResponse, MethodRequest, MethodListening, MethodWebDisplay:
	default:
		return UnrecognizedEvent{Name: ev.Method, Sender: ev.Sender}, nil
	}

	if len(ev.Data) == 0 {
		return MalformedEvent{Name: ev.Method, Sender: ev.Sender, Err: xerrors.New("no data")}, nil
	}

	var payload interface{}
	if err := json.UnmarshalFromString(ev.Data[0], &payload); err != nil {
		return MalformedEvent{Name: ev.Method, Sender: ev.Sender, Err: err}, nil
	}

	switch ev.Method {
	case MethodUtterance:
		return UtteranceEvent{Sender: ev.Sender, Text: field(payload, "text")}, nil
	case MethodText:
		return TextEvent{Sender: ev.Sender, Text: render(payload)}, nil
	case MethodResponse:
		return ResponseEvent{Sender: ev.Sender, Text: render(payload)}, nil
	case MethodRequest:
		return RequestEvent{Sender: ev.Sender, Text: render(payload)}, nil
	case MethodListening:
		return ListeningEvent{Sender: ev.Sender, Text: field(payload, "text")}, nil
	default:
		img, ok := fieldValue(payload, "data").(string)
		if !ok {
			return MalformedEvent{Name: ev.Method, Sender: ev.Sender, Err: xerrors.New("no image data")}, nil
		}
		return WebDisplayEvent{Sender: ev.Sender, Image: strings.Replace(img, imagePrefix, "", 1)}, nil
	}
}

func fieldValue(payload interface{}, key string) interface{} {
	m, ok := payload.(map[string]interface{})
	if !ok {
		return nil
	}
	return m[key]
}

func field(payload interface{}, key string) string {
	v := fieldValue(payload, key)
	if v == nil {
		return ""
	}
	return render(v)
}

// render prints strings as is and anything else as compact JSON
func render(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}
