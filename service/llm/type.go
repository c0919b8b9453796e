package llm

import "context"

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one earlier turn of the conversation
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type IService interface {
	// Generate answers prompt given the conversation so far. image is optional
	// raw image bytes.
	Generate(ctx context.Context, history []Message, prompt string, image []byte) (string, error)
}
