package orchestration

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"go.uber.org/zap"
)

// invokeWithTimeout runs a JSON chain invocation on the worker pool and
// waits at most the configured timeout, counting queue time: a saturated
// pool fails the submission instead of blocking past the deadline. On
// timeout the result is abandoned: the task keeps running on its worker
// and the eventual result is discarded.
func (o *Orchestrator) invokeWithTimeout(ctx context.Context, system, contextMsg, userMsg string, schema map[string]any) map[string]any {
	timer := time.NewTimer(o.timeout)
	defer timer.Stop()

	result, queued := o.pool.submit(func() map[string]any {
		// Detached from the caller so an abandoned task still completes.
		// The LLM client's own HTTP timeout bounds the call.
		return o.runJSONChain(context.Background(), system, contextMsg, userMsg, schema)
	}, timer.C, ctx.Done())
	if !queued {
		if ctx.Err() == nil {
			o.logger.Warn("LLM pool saturated, dropping invocation", zap.Duration("timeout", o.timeout))
		}
		return map[string]any{}
	}

	select {
	case payload := <-result:
		return payload
	case <-timer.C:
		o.logger.Warn("LLM invocation timed out", zap.Duration("timeout", o.timeout))
		return map[string]any{}
	case <-ctx.Done():
		return map[string]any{}
	}
}

// runJSONChain tries the structured chain first, then the flat prompt.
// It always produces a map, empty at worst.
func (o *Orchestrator) runJSONChain(ctx context.Context, system, contextMsg, userMsg string, schema map[string]any) map[string]any {
	schemaHint := formatSchemaHint(schema)

	if o.collab.Chain != nil {
		user := strings.Join([]string{
			"USER MESSAGE:\n" + userMsg,
			"RESPONSE FORMAT:\n" + schemaHint,
		}, "\n\n")
		payload, err := o.collab.Chain.Invoke(ctx, system, "CONTEXT MESSAGE:\n"+contextMsg, user)
		if err == nil && payload != nil {
			return payload
		}
		if err != nil {
			o.logger.Warn("structured chain invocation failed", zap.Error(err))
		}
	}

	prompt := strings.Join([]string{
		"CONTEXT MESSAGE:\n" + contextMsg,
		"USER MESSAGE:\n" + userMsg,
		"RESPONSE FORMAT:\n" + schemaHint,
		"Return ONLY valid JSON.",
	}, "\n\n")

	payload := o.collab.LLM.Generate(ctx, prompt, system)
	if payload == nil {
		return map[string]any{}
	}

	// A model that wrapped JSON in prose comes back as error+raw_output;
	// try to salvage the embedded object. Unsalvageable replies become an
	// empty map so callers degrade to the keyword fallback instead of
	// surfacing raw model output.
	if payload["error"] != nil {
		if raw, ok := payload["raw_output"].(string); ok {
			if parsed := parseJSON(raw); parsed != nil {
				return parsed
			}
		}
		return map[string]any{}
	}
	return payload
}

func formatSchemaHint(schema map[string]any) string {
	if len(schema) == 0 {
		return `{"answer":"string"}`
	}
	hint, err := json.Marshal(schema)
	if err != nil {
		return `{"answer":"string"}`
	}
	return string(hint)
}

// parseJSON recovers a JSON object from model output: strict parse first,
// then the substring between the first '{' and the last '}'.
func parseJSON(raw string) map[string]any {
	text := strings.TrimSpace(raw)
	if text == "" {
		return nil
	}

	var parsed map[string]any
	if err := json.Unmarshal([]byte(text), &parsed); err == nil {
		return parsed
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end <= start {
		return nil
	}

	parsed = nil
	if err := json.Unmarshal([]byte(text[start:end+1]), &parsed); err != nil {
		return nil
	}
	return parsed
}

// extractText returns the first non-empty string among the given keys,
// falling back to raw_output.
func extractText(payload map[string]any, keys ...string) string {
	if payload == nil {
		return ""
	}

	for _, key := range keys {
		if value, ok := payload[key].(string); ok {
			if trimmed := strings.TrimSpace(value); trimmed != "" {
				return trimmed
			}
		}
	}

	if raw, ok := payload["raw_output"].(string); ok {
		return strings.TrimSpace(raw)
	}
	return ""
}

// extractList returns the non-empty trimmed strings under the given key
func extractList(payload map[string]any, key string) []string {
	raw, ok := payload[key].([]any)
	if !ok {
		return nil
	}

	var items []string
	for _, item := range raw {
		value, ok := item.(string)
		if !ok {
			continue
		}
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
