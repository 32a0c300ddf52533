package analysis

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/boardroomai/meeting-analyzer/internal/domain/entities"
)

const summarizePrompt = `
Summarize the meeting.

Summary length: %s

Conversation:
%s

Return format:
{
  "summary": "string",
  "key_points": ["point1", "point2"]
}
`

// Summarizer produces a baseline summary and key points from raw chunks
type Summarizer struct {
	llm    LLMClient
	logger *zap.Logger
}

// NewSummarizer creates a summarizer
func NewSummarizer(llm LLMClient, logger *zap.Logger) *Summarizer {
	return &Summarizer{llm: llm, logger: logger}
}

// Summarize runs a summarization call over the full chunk list. Failures
// degrade to empty results, never an error.
func (s *Summarizer) Summarize(ctx context.Context, chunks []*entities.Chunk, length string) (string, []string) {
	if length == "" {
		length = "short"
	}

	lines := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		lines = append(lines, fmt.Sprintf("%s: %s", chunk.Speaker, chunk.Text))
	}

	system := "You summarize board meetings accurately."
	payload := s.llm.Generate(ctx, fmt.Sprintf(summarizePrompt, length, strings.Join(lines, "\n")), system)

	if errVal, ok := payload["error"]; ok && errVal != nil {
		s.logger.Warn("summarization failed", zap.Any("error", errVal))
		return "", nil
	}

	summary := strings.TrimSpace(stringValue(payload["summary"]))

	var keyPoints []string
	if raw, ok := payload["key_points"].([]any); ok {
		for _, item := range raw {
			point := strings.TrimSpace(stringValue(item))
			if point != "" {
				keyPoints = append(keyPoints, point)
			}
		}
	}

	return summary, keyPoints
}
