package llm

import (
	"context"
	"encoding/base64"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/khaledhikmat/vs-robot-eye/service/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type llmConfig struct {
	config.IService
	params config.LLMParameters
}

func (c llmConfig) GetLLMParameters() config.LLMParameters {
	return c.params
}

func TestBuildPrompt(t *testing.T) {
	history := []Message{
		{Role: RoleUser, Content: "Hello, who are you?"},
		{Role: RoleAssistant, Content: "I am a robot."},
	}

	require.Equal(t,
		"System: Be brief.\nUser: Hello, who are you?\nAssistant: I am a robot.\nUser: How are you?\nAssistant:",
		BuildPrompt("Be brief.", history, "How are you?"))

	require.Equal(t, "System: \n\nUser: hi\nAssistant:", BuildPrompt("", nil, "hi"))
}

func TestGenerate(t *testing.T) {
	image := []byte{0xff, 0xd8, 0xff}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)

		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)

		req := generateRequest{}
		assert.NoError(t, json.Unmarshal(body, &req))
		assert.Equal(t, "llama3", req.Model)
		assert.False(t, req.Stream)
		assert.Equal(t, "System: sys\n\nUser: what do you see?\nAssistant:", req.Prompt)
		assert.Equal(t, []string{base64.StdEncoding.EncodeToString(image)}, req.Images)

		_, _ = w.Write([]byte(`{"model":"llama3","response":"A cup.","done":true}`))
	}))
	defer srv.Close()

	svc := NewOllama(llmConfig{params: config.LLMParameters{URL: srv.URL, Model: "llama3", SystemPrompt: "sys"}})
	answer, err := svc.Generate(context.Background(), nil, "what do you see?", image)
	require.NoError(t, err)
	require.Equal(t, "A cup.", answer)
}

func TestGenerateMissingResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"done":true}`))
	}))
	defer srv.Close()

	svc := NewOllama(llmConfig{params: config.LLMParameters{URL: srv.URL, Model: "llama3"}})
	answer, err := svc.Generate(context.Background(), nil, "hi", nil)
	require.NoError(t, err)
	require.Equal(t, noResponse, answer)
}

func TestGenerateStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	svc := NewOllama(llmConfig{params: config.LLMParameters{URL: srv.URL, Model: "nope"}})
	_, err := svc.Generate(context.Background(), nil, "hi", nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "404")
	require.Contains(t, err.Error(), "model not found")
}
