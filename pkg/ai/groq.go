package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const defaultGroqBaseURL = "https://api.groq.com"

// GroqClient is a minimal client for the Groq chat completions API. It is
// an alternative text-generation backend to the local Ollama server and
// satisfies the same Generate contract.
type GroqClient struct {
	apiKey      string
	baseURL     string
	model       string
	temperature float64
	client      *http.Client
}

// NewGroqClient creates a Groq client
func NewGroqClient(apiKey, baseURL, model string, temperature float64, timeout time.Duration) *GroqClient {
	if baseURL == "" || strings.Contains(baseURL, "localhost") {
		baseURL = defaultGroqBaseURL
	}
	if model == "" {
		model = "llama-3.1-70b-versatile"
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &GroqClient{
		apiKey:      apiKey,
		baseURL:     strings.TrimRight(baseURL, "/"),
		model:       model,
		temperature: temperature,
		client:      &http.Client{Timeout: timeout},
	}
}

// Model returns the configured model name
func (g *GroqClient) Model() string {
	return g.model
}

type groqChatRequest struct {
	Model          string            `json:"model"`
	Messages       []ChatMessage     `json:"messages"`
	Temperature    float64           `json:"temperature,omitempty"`
	ResponseFormat map[string]string `json:"response_format,omitempty"`
}

type groqChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Generate runs a flat prompt and returns the parsed JSON payload. It
// never returns an error: transport failures surface as an "error" entry
// and non-JSON replies are preserved under "raw_output".
func (g *GroqClient) Generate(ctx context.Context, prompt, system string) map[string]any {
	raw, err := g.Complete(ctx, prompt, system)
	if err != nil {
		return map[string]any{"error": err.Error()}
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return map[string]any{
			"error":      "model returned non-JSON output",
			"raw_output": raw,
		}
	}
	return payload
}

// Complete sends a chat completion request and returns the assistant content
func (g *GroqClient) Complete(ctx context.Context, prompt, system string) (string, error) {
	messages := make([]ChatMessage, 0, 2)
	if system != "" {
		messages = append(messages, ChatMessage{Role: "system", Content: system})
	}
	messages = append(messages, ChatMessage{Role: "user", Content: prompt})

	body, err := json.Marshal(groqChatRequest{
		Model:          g.model,
		Messages:       messages,
		Temperature:    g.temperature,
		ResponseFormat: map[string]string{"type": "json_object"},
	})
	if err != nil {
		return "", fmt.Errorf("marshal groq request: %w", err)
	}

	endpoint := g.baseURL + "/openai/v1/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build groq request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("call groq: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("groq returned status %d", resp.StatusCode)
	}

	var cr groqChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", fmt.Errorf("decode groq response: %w", err)
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("empty response from groq")
	}
	return cr.Choices[0].Message.Content, nil
}
