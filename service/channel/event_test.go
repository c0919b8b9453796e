package channel

import (
	"errors"
	"testing"

	"github.com/khaledhikmat/vs-robot-eye/model"
	"github.com/stretchr/testify/require"
)

func TestDecodeEvents(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Event
	}{
		{
			name: "utterance",
			raw:  `{"method":"onUtterance","data":["{\"text\":\"hi there\"}"]}`,
			want: UtteranceEvent{Text: "hi there"},
		},
		{
			name: "text string payload",
			raw:  `{"method":"onText","sender":"i01.htmlFilter","data":["\"hello\""]}`,
			want: TextEvent{Sender: "i01.htmlFilter", Text: "hello"},
		},
		{
			name: "text object payload",
			raw:  `{"method":"onText","sender":"x","data":["{\"a\":1}"]}`,
			want: TextEvent{Sender: "x", Text: `{"a":1}`},
		},
		{
			name: "response",
			raw:  `{"method":"onResponse","data":["\"ok\""]}`,
			want: ResponseEvent{Text: "ok"},
		},
		{
			name: "request",
			raw:  `{"method":"onRequest","data":["\"do it\""]}`,
			want: RequestEvent{Text: "do it"},
		},
		{
			name: "listening",
			raw:  `{"method":"onListeningEvent","data":["{\"text\":\"heard\"}"]}`,
			want: ListeningEvent{Text: "heard"},
		},
		{
			name: "web display",
			raw:  `{"method":"onWebDisplay","data":["{\"data\":\"data:image/jpg;base64,QUJD\"}"]}`,
			want: WebDisplayEvent{Image: "QUJD"},
		},
		{
			name: "unrecognized",
			raw:  `{"method":"onStatus","sender":"i01"}`,
			want: UnrecognizedEvent{Name: "onStatus", Sender: "i01"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ev, err := Decode([]byte(tc.raw))
			require.NoError(t, err)
			require.Equal(t, tc.want, ev)
			require.Equal(t, tc.want.Method(), ev.Method())
		})
	}
}

func TestDecodeNonStringData(t *testing.T) {
	ev, err := ParseEnvelope([]byte(`{"method":"onStatus","data":[{"a":1},2]}`))
	require.NoError(t, err)
	require.Equal(t, []string{`{"a":1}`, "2"}, ev.Data)
}

func TestDecodeMalformedPayload(t *testing.T) {
	ev, err := Decode([]byte(`{"method":"onText","data":["{not json"]}`))
	require.NoError(t, err)

	bad, ok := ev.(MalformedEvent)
	require.True(t, ok)
	require.Equal(t, MethodText, bad.Name)
	require.Error(t, bad.Err)

	ev, err = Decode([]byte(`{"method":"onWebDisplay","data":["{\"other\":1}"]}`))
	require.NoError(t, err)
	require.IsType(t, MalformedEvent{}, ev)

	ev, err = Decode([]byte(`{"method":"onUtterance"}`))
	require.NoError(t, err)
	require.IsType(t, MalformedEvent{}, ev)
}

func TestDecodeMalformedEnvelope(t *testing.T) {
	_, err := Decode([]byte(`{"method":`))
	require.Error(t, err)
	require.True(t, errors.Is(err, model.ErrChannel))
}
