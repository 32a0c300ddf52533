package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// OllamaClient is a minimal client for the Ollama generate API used for
// transcript analysis and question answering.
type OllamaClient struct {
	baseURL     string
	model       string
	temperature float64
	client      *http.Client
}

// NewOllamaClient creates an Ollama client for the given server and model.
func NewOllamaClient(baseURL, model string, temperature float64, timeout time.Duration) *OllamaClient {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &OllamaClient{
		baseURL:     baseURL,
		model:       model,
		temperature: temperature,
		client:      &http.Client{Timeout: timeout},
	}
}

// generateRequest is the shape for Ollama generate requests
type generateRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	System  string         `json:"system,omitempty"`
	Format  string         `json:"format,omitempty"`
	Stream  bool           `json:"stream"`
	Options map[string]any `json:"options,omitempty"`
}

// generateResponse is a minimal response shape
type generateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// Model returns the configured model name.
func (o *OllamaClient) Model() string {
	return o.model
}

// Generate sends a prompt to the model and returns the parsed JSON payload.
// It never fails from the caller's point of view: transport errors come back
// as {"error": ...} and non-JSON model output as {"error": ..., "raw_output": ...}.
func (o *OllamaClient) Generate(ctx context.Context, prompt, system string) map[string]any {
	raw, err := o.Complete(ctx, prompt, system)
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

// Complete sends a prompt and returns the raw completion text.
func (o *OllamaClient) Complete(ctx context.Context, prompt, system string) (string, error) {
	reqBody := generateRequest{
		Model:  o.model,
		Prompt: prompt,
		System: system,
		Format: "json",
		Stream: false,
		Options: map[string]any{
			"temperature": o.temperature,
		},
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	endpoint := o.baseURL + "/api/generate"
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("ollama returned status %d", resp.StatusCode)
	}

	var gr generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return "", err
	}
	if gr.Response == "" {
		return "", fmt.Errorf("empty response from ollama")
	}
	return gr.Response, nil
}
