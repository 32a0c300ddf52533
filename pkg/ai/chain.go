package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// ChatMessage is a single message in a structured chat exchange
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest is the shape for Ollama chat requests
type chatRequest struct {
	Model    string         `json:"model"`
	Messages []ChatMessage  `json:"messages"`
	Format   string         `json:"format,omitempty"`
	Stream   bool           `json:"stream"`
	Options  map[string]any `json:"options,omitempty"`
}

// chatResponse is a minimal response shape
type chatResponse struct {
	Message ChatMessage `json:"message"`
	Done    bool        `json:"done"`
}

// Chain invokes the chat endpoint with a structured multi-message prompt:
// a system instruction, an optional context message and the user message.
// Unlike Generate it reports failures to the caller so the invoking layer
// can fall back to a flat prompt.
type Chain struct {
	llm *OllamaClient
}

// NewChain creates a structured chain backed by the given client.
func NewChain(llm *OllamaClient) *Chain {
	return &Chain{llm: llm}
}

// Invoke runs the chain and parses the model reply as a JSON object.
func (c *Chain) Invoke(ctx context.Context, system, contextMsg, userMsg string) (map[string]any, error) {
	messages := make([]ChatMessage, 0, 3)
	if system != "" {
		messages = append(messages, ChatMessage{Role: "system", Content: system})
	}
	if contextMsg != "" {
		messages = append(messages, ChatMessage{Role: "user", Content: contextMsg})
	}
	messages = append(messages, ChatMessage{Role: "user", Content: userMsg})

	reqBody := chatRequest{
		Model:    c.llm.model,
		Messages: messages,
		Format:   "json",
		Stream:   false,
		Options: map[string]any{
			"temperature": c.llm.temperature,
		},
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	endpoint := c.llm.baseURL + "/api/chat"
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.llm.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("ollama returned status %d", resp.StatusCode)
	}

	var cr chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return nil, err
	}
	if cr.Message.Content == "" {
		return nil, fmt.Errorf("empty response from ollama")
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(cr.Message.Content), &payload); err != nil {
		return nil, fmt.Errorf("chain returned non-JSON output: %w", err)
	}
	return payload, nil
}
