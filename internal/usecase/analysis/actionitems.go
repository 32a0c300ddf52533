package analysis

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/boardroomai/meeting-analyzer/internal/domain/entities"
)

const actionItemsPrompt = `
Extract ONLY concrete action items from the text.

Rules:
- Must assign responsibility to a person or team
- Include deadline if mentioned
- Set priority based on urgency
- Return empty list if no action items found

Text:
%s

Return ONLY valid JSON:
{
  "action_items": [
    {
      "task": "clear task description",
      "owner": "person or team name",
      "deadline": "date string or null",
      "priority": "high|medium|low"
    }
  ]
}
`

// ActionItemExtractor pulls concrete tasks out of meeting text
type ActionItemExtractor struct {
	llm    LLMClient
	logger *zap.Logger
}

// NewActionItemExtractor creates an action item extractor
func NewActionItemExtractor(llm LLMClient, logger *zap.Logger) *ActionItemExtractor {
	return &ActionItemExtractor{llm: llm, logger: logger}
}

// Extract returns action items found in the text. Failures degrade to an
// empty list, never an error.
func (e *ActionItemExtractor) Extract(ctx context.Context, text string) []entities.ActionItem {
	system := "You extract action items from board meetings. Be concise and accurate."
	payload := e.llm.Generate(ctx, fmt.Sprintf(actionItemsPrompt, text), system)

	raw, ok := payload["action_items"].([]any)
	if !ok {
		if errVal, hasErr := payload["error"]; hasErr && errVal != nil {
			e.logger.Warn("action item extraction failed", zap.Any("error", errVal))
		}
		return []entities.ActionItem{}
	}

	items := make([]entities.ActionItem, 0, len(raw))
	for i, item := range raw {
		fields, ok := item.(map[string]any)
		if !ok {
			continue
		}

		description := strings.TrimSpace(stringValue(fields["task"]))
		if description == "" {
			continue
		}

		priority := strings.TrimSpace(stringValue(fields["priority"]))
		if priority == "" {
			priority = entities.ActionItemPriorityMedium
		}

		items = append(items, entities.ActionItem{
			ID:          fmt.Sprintf("action_%d", i),
			Description: description,
			Owner:       strings.TrimSpace(stringValue(fields["owner"])),
			DueDate:     strings.TrimSpace(stringValue(fields["deadline"])),
			Priority:    priority,
		})
	}
	return items
}
