package command

import (
	"errors"
	"testing"

	"github.com/khaledhikmat/vs-robot-eye/model"
	"github.com/khaledhikmat/vs-robot-eye/service/channel"
	"github.com/khaledhikmat/vs-robot-eye/service/config"
	"github.com/stretchr/testify/require"
)

func TestPublishEnvelopes(t *testing.T) {
	tests := []struct {
		kind Kind
		text string
		want string
	}{
		{Say, "hello", `{"name":"i01.chatBot","method":"publishText","data":["\"hello\""]}`},
		{Ask, "what time is it?", `{"name":"i01.chatBot","method":"getResponse","data":["\"what time is it?\""]}`},
		{LLM, `say "hi" <now>`, `{"name":"i01.llm","method":"getResponse","data":["\"say \\\"hi\\\" <now>\""]}`},
		{Start, "ignored", `{"name":"i01.ear","method":"startRecording"}`},
		{Stop, "", `{"name":"i01.ear","method":"stopRecording"}`},
	}

	for _, tc := range tests {
		t.Run(string(tc.kind), func(t *testing.T) {
			chanSvc := channel.NewFake(nil)
			pub := NewPublisher(config.NewHardCoded(), chanSvc)

			require.NoError(t, pub.Publish(tc.kind, tc.text))

			sent := chanSvc.Sent()
			require.Len(t, sent, 1)
			require.Equal(t, tc.want, string(sent[0]))
		})
	}
}

func TestPublishNotConnected(t *testing.T) {
	chanSvc := channel.NewDisconnectedFake()
	pub := NewPublisher(config.NewHardCoded(), chanSvc)

	for _, kind := range append(Kinds, Kind("dance")) {
		err := pub.Publish(kind, "hello")
		require.True(t, errors.Is(err, model.ErrNotConnected), "kind %s", kind)
	}
	require.Empty(t, chanSvc.Sent())
}

func TestPublishInvalidKind(t *testing.T) {
	chanSvc := channel.NewFake(nil)
	pub := NewPublisher(config.NewHardCoded(), chanSvc)

	err := pub.Publish(Kind("dance"), "hello")
	require.True(t, errors.Is(err, model.ErrInvalidCommand))
	require.Empty(t, chanSvc.Sent())
}

func TestNeedsText(t *testing.T) {
	require.True(t, Say.NeedsText())
	require.True(t, LLM.NeedsText())
	require.False(t, Start.NeedsText())
	require.False(t, Stop.NeedsText())
}
