package notify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestSignHMACVerifyRoundtrip(t *testing.T) {
	payload := []byte(`{"event":"test"}`)
	signature := SignHMAC("secret", payload)

	if signature == "" {
		t.Fatal("expected non-empty signature")
	}
	if !VerifyHMAC("secret", payload, signature) {
		t.Fatal("signature should verify")
	}
	if VerifyHMAC("wrong", payload, signature) {
		t.Fatal("signature should not verify with wrong secret")
	}
	if VerifyHMAC("secret", []byte("tampered"), signature) {
		t.Fatal("signature should not verify with tampered payload")
	}
	if VerifyHMAC("", payload, signature) {
		t.Fatal("empty secret should never verify")
	}
}

func TestWebhookNotifierEmit(t *testing.T) {
	var gotBody []byte
	var gotSignature string
	var gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		gotSignature = r.Header.Get(SignatureHeader)
		gotContentType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	notifier := NewWebhookNotifier(server.URL, "secret", time.Second, zap.NewNop())
	notifier.Emit(context.Background(), EventAnalysisCompleted, map[string]any{"meeting_id": "m1"})

	if gotContentType != "application/json" {
		t.Fatalf("unexpected content type %q", gotContentType)
	}

	var envelope struct {
		Event   string         `json:"event"`
		Payload map[string]any `json:"payload"`
	}
	if err := json.Unmarshal(gotBody, &envelope); err != nil {
		t.Fatalf("body not JSON: %v", err)
	}
	if envelope.Event != EventAnalysisCompleted {
		t.Fatalf("unexpected event %q", envelope.Event)
	}
	if envelope.Payload["meeting_id"] != "m1" {
		t.Fatalf("unexpected payload %v", envelope.Payload)
	}

	if !VerifyHMAC("secret", gotBody, gotSignature) {
		t.Fatal("delivery signature should verify against the body")
	}
}

func TestWebhookNotifierNoSecretNoSignature(t *testing.T) {
	var gotSignature string
	sawRequest := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawRequest = true
		gotSignature = r.Header.Get(SignatureHeader)
	}))
	defer server.Close()

	notifier := NewWebhookNotifier(server.URL, "", time.Second, zap.NewNop())
	notifier.Emit(context.Background(), EventAnalysisCompleted, nil)

	if !sawRequest {
		t.Fatal("expected delivery")
	}
	if gotSignature != "" {
		t.Fatalf("expected no signature header, got %q", gotSignature)
	}
}

func TestWebhookNotifierEmptyURLDoesNothing(t *testing.T) {
	notifier := NewWebhookNotifier("", "secret", time.Second, zap.NewNop())
	notifier.Emit(context.Background(), EventAnalysisCompleted, nil)
}
