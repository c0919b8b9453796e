package llm

import (
	"bytes"
	"context"
	"encoding/base64"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode"

	jsoniter "github.com/json-iterator/go"
	"github.com/khaledhikmat/vs-robot-eye/service/config"
	"github.com/khaledhikmat/vs-robot-eye/service/lgr"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/xerrors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const noResponse = "No response received"

type generateRequest struct {
	Model  string   `json:"model"`
	Prompt string   `json:"prompt"`
	Stream bool     `json:"stream"`
	Images []string `json:"images,omitempty"`
}

type generateResponse struct {
	Response *string `json:"response"`
}

type ollamaService struct {
	params config.LLMParameters
	client *http.Client
}

func NewOllama(cfgSvc config.IService) IService {
	return &ollamaService{
		params: cfgSvc.GetLLMParameters(),
		client: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

func (svc *ollamaService) Generate(ctx context.Context, history []Message, prompt string, image []byte) (string, error) {
	payload := generateRequest{
		Model:  svc.params.Model,
		Prompt: BuildPrompt(svc.params.SystemPrompt, history, prompt),
		Stream: false,
	}
	if len(image) > 0 {
		payload.Images = []string{base64.StdEncoding.EncodeToString(image)}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", xerrors.Errorf("encoding generate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, svc.params.URL, bytes.NewReader(body))
	if err != nil {
		return "", xerrors.Errorf("building request for %s: %w", svc.params.URL, err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := svc.client.Do(req)
	if err != nil {
		return "", xerrors.Errorf("calling %s: %w", svc.params.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", xerrors.Errorf("ollama returned %d: %s", resp.StatusCode, text)
	}

	out := generateResponse{}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", xerrors.Errorf("decoding generate response: %w", err)
	}

	lgr.Logger.DebugContext(ctx, "ollama answered",
		slog.String("model", svc.params.Model),
		slog.Duration("elapsed", time.Since(start)),
	)

	if out.Response == nil {
		return noResponse, nil
	}
	return *out.Response, nil
}

// BuildPrompt flattens the system prompt, the history and the user prompt
// into a single completion prompt ending with the assistant cue.
func BuildPrompt(system string, history []Message, prompt string) string {
	turns := make([]string, 0, len(history))
	for _, m := range history {
		turns = append(turns, capitalize(m.Role)+": "+m.Content)
	}

	var b strings.Builder
	b.WriteString("System: ")
	b.WriteString(system)
	b.WriteString("\n")
	b.WriteString(strings.Join(turns, "\n"))
	b.WriteString("\nUser: ")
	b.WriteString(prompt)
	b.WriteString("\nAssistant:")
	return b.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(strings.ToLower(s))
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
