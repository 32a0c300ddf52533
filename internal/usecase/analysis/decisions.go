package analysis

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/boardroomai/meeting-analyzer/internal/domain/entities"
)

const decisionsPrompt = `
Extract ONLY explicit decisions from the text.

Decision rules:
- Must indicate commitment, agreement, or formal decision
- Ignore suggestions, questions, or opinions
- Include who proposed/made the decision if mentioned
- Return empty if no clear decisions found

Text:
%s

Return ONLY valid JSON:
{
  "decisions": [
    {
      "decision": "clear decision statement",
      "proposed_by": "person name or unknown",
      "status": "decided|pending|rejected"
    }
  ]
}
`

// DecisionExtractor pulls explicit decisions out of meeting text
type DecisionExtractor struct {
	llm    LLMClient
	logger *zap.Logger
}

// NewDecisionExtractor creates a decision extractor
func NewDecisionExtractor(llm LLMClient, logger *zap.Logger) *DecisionExtractor {
	return &DecisionExtractor{llm: llm, logger: logger}
}

// Extract returns explicit decisions found in the text. Failures degrade to
// an empty list, never an error.
func (e *DecisionExtractor) Extract(ctx context.Context, text string) []entities.Decision {
	system := "You extract ONLY explicit board meeting decisions. Ignore suggestions or opinions."
	payload := e.llm.Generate(ctx, fmt.Sprintf(decisionsPrompt, text), system)

	raw, ok := payload["decisions"].([]any)
	if !ok {
		if errVal, hasErr := payload["error"]; hasErr && errVal != nil {
			e.logger.Warn("decision extraction failed", zap.Any("error", errVal))
		}
		return []entities.Decision{}
	}

	decisions := make([]entities.Decision, 0, len(raw))
	for i, item := range raw {
		fields, ok := item.(map[string]any)
		if !ok {
			continue
		}

		description := strings.TrimSpace(stringValue(fields["decision"]))
		if description == "" {
			continue
		}

		status := strings.TrimSpace(stringValue(fields["status"]))
		if status == "" {
			status = entities.DecisionStatusDecided
		}

		decisions = append(decisions, entities.Decision{
			ID:          fmt.Sprintf("decision_%d", i),
			Description: description,
			Owner:       strings.TrimSpace(stringValue(fields["proposed_by"])),
			Status:      status,
		})
	}
	return decisions
}
