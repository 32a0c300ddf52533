package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func ollamaServer(t *testing.T, path, response string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != path {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(response))
	}))
}

func TestOllamaGenerateParsesJSON(t *testing.T) {
	server := ollamaServer(t, "/api/generate", `{"response":"{\"answer\":\"yes\"}","done":true}`)
	defer server.Close()

	client := NewOllamaClient(server.URL, "llama3", 0.2, time.Second)
	payload := client.Generate(context.Background(), "prompt", "system")
	if payload["answer"] != "yes" {
		t.Fatalf("unexpected payload %v", payload)
	}
}

func TestOllamaGenerateNonJSONOutput(t *testing.T) {
	server := ollamaServer(t, "/api/generate", `{"response":"sure, here you go","done":true}`)
	defer server.Close()

	client := NewOllamaClient(server.URL, "llama3", 0.2, time.Second)
	payload := client.Generate(context.Background(), "prompt", "")
	if payload["error"] == nil {
		t.Fatalf("expected error entry, got %v", payload)
	}
	if payload["raw_output"] != "sure, here you go" {
		t.Fatalf("raw output not preserved: %v", payload)
	}
}

func TestOllamaGenerateServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewOllamaClient(server.URL, "llama3", 0.2, time.Second)
	payload := client.Generate(context.Background(), "prompt", "")
	if payload["error"] == nil {
		t.Fatalf("expected error entry, got %v", payload)
	}
}

func TestOllamaCompleteRequestShape(t *testing.T) {
	var got generateRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.Write([]byte(`{"response":"{}","done":true}`))
	}))
	defer server.Close()

	client := NewOllamaClient(server.URL, "llama3", 0.7, time.Second)
	if _, err := client.Complete(context.Background(), "the prompt", "the system"); err != nil {
		t.Fatalf("complete failed: %v", err)
	}

	if got.Model != "llama3" || got.Prompt != "the prompt" || got.System != "the system" {
		t.Fatalf("unexpected request %+v", got)
	}
	if got.Format != "json" || got.Stream {
		t.Fatalf("unexpected format/stream %+v", got)
	}
	if got.Options["temperature"] != 0.7 {
		t.Fatalf("unexpected options %v", got.Options)
	}
}

func TestChainInvoke(t *testing.T) {
	var got chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.Write([]byte(`{"message":{"role":"assistant","content":"{\"answer\":\"chained\"}"},"done":true}`))
	}))
	defer server.Close()

	chain := NewChain(NewOllamaClient(server.URL, "llama3", 0.2, time.Second))
	payload, err := chain.Invoke(context.Background(), "sys", "ctx", "question")
	if err != nil {
		t.Fatalf("invoke failed: %v", err)
	}
	if payload["answer"] != "chained" {
		t.Fatalf("unexpected payload %v", payload)
	}

	if len(got.Messages) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(got.Messages))
	}
	if got.Messages[0].Role != "system" || got.Messages[1].Content != "ctx" {
		t.Fatalf("unexpected messages %+v", got.Messages)
	}
}

func TestChainInvokeNonJSONIsError(t *testing.T) {
	server := ollamaServer(t, "/api/chat", `{"message":{"role":"assistant","content":"plain text"},"done":true}`)
	defer server.Close()

	chain := NewChain(NewOllamaClient(server.URL, "llama3", 0.2, time.Second))
	if _, err := chain.Invoke(context.Background(), "", "", "question"); err == nil {
		t.Fatal("expected error for non-JSON chain output")
	}
}
