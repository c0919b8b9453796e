package robot

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/khaledhikmat/vs-robot-eye/service/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type urlConfig struct {
	config.IService
	url string
}

func (c urlConfig) GetRobotServiceURL() string {
	return c.url
}

const descriptor = `{
	"name": "i01",
	"id": "inmoov-1",
	"simpleName": "InMoov2",
	"typeKey": "org.myrobotlab.service.InMoov2",
	"isRunning": true,
	"config": {
		"type": "InMoov2",
		"peers": {
			"chatBot": {"name": "i01.chatBot", "type": "ProgramAB", "autoStart": true},
			"ear": {"name": "i01.ear", "type": "WebkitSpeechRecognition", "autoStart": true}
		},
		"gestures": ["wave", "rest"]
	},
	"unknownField": 42
}`

func TestDescribe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/service/i01", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(descriptor))
	}))
	defer srv.Close()

	svc := NewHTTP(urlConfig{url: srv.URL + "/api/service/i01"})
	desc, err := svc.Describe(context.Background())
	require.NoError(t, err)

	require.Equal(t, "i01", desc.Name)
	require.True(t, desc.IsRunning)
	require.Len(t, desc.Config.Peers, 2)
	require.Equal(t, "i01.ear", desc.Config.Peers["ear"].Name)
	require.Equal(t, []string{"wave", "rest"}, desc.GetGestures())
}

func TestDescribeStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such service", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewHTTP(urlConfig{url: srv.URL}).Describe(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "404")
}

func TestDescribeUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewHTTP(urlConfig{url: url}).Describe(context.Background())
	require.Error(t, err)
}
