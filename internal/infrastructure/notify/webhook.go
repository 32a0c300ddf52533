package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// EventAnalysisCompleted fires after a full meeting analysis is produced
const EventAnalysisCompleted = "meeting.analysis.completed"

// Notifier delivers workflow events to downstream automation
type Notifier interface {
	Emit(ctx context.Context, event string, payload map[string]any)
}

// WebhookNotifier posts events to a configured webhook URL. Delivery is
// best-effort: failures are logged and swallowed, never surfaced to the
// caller.
type WebhookNotifier struct {
	url    string
	secret string
	client *http.Client
	logger *zap.Logger
}

// NewWebhookNotifier creates a webhook notifier. An empty URL disables it;
// a non-empty secret adds an HMAC signature header to each delivery.
func NewWebhookNotifier(url, secret string, timeout time.Duration, logger *zap.Logger) *WebhookNotifier {
	if timeout <= 0 {
		timeout = 2500 * time.Millisecond
	}
	return &WebhookNotifier{
		url:    url,
		secret: secret,
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// Emit posts {"event": ..., "payload": ...} to the webhook
func (n *WebhookNotifier) Emit(ctx context.Context, event string, payload map[string]any) {
	if n.url == "" {
		return
	}

	body, err := json.Marshal(map[string]any{
		"event":   event,
		"payload": payload,
	})
	if err != nil {
		n.logger.Warn("unable to encode webhook event", zap.String("event", event), zap.Error(err))
		return
	}

	req, err := http.NewRequestWithContext(ctx, "POST", n.url, bytes.NewReader(body))
	if err != nil {
		n.logger.Warn("unable to build webhook request", zap.String("event", event), zap.Error(err))
		return
	}
	req.Header.Set("Content-Type", "application/json")
	if n.secret != "" {
		req.Header.Set(SignatureHeader, SignHMAC(n.secret, body))
	}

	resp, err := n.client.Do(req)
	if err != nil {
		n.logger.Warn("unable to notify webhook", zap.String("event", event), zap.Error(err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		n.logger.Warn("webhook returned error status",
			zap.String("event", event),
			zap.Int("status", resp.StatusCode),
		)
	}
}

// NopNotifier discards all events
type NopNotifier struct{}

func (NopNotifier) Emit(ctx context.Context, event string, payload map[string]any) {}
