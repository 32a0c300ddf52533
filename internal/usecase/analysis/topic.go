package analysis

import (
	"fmt"
	"strings"

	"github.com/boardroomai/meeting-analyzer/internal/domain/entities"
)

// QueryByTopic filters chunks whose text mentions the topic, either as a
// case-insensitive substring or by overlapping any word of the topic.
func QueryByTopic(chunks []*entities.Chunk, topic string) []*entities.Chunk {
	topicLower := strings.ToLower(strings.TrimSpace(topic))
	if topicLower == "" {
		return []*entities.Chunk{}
	}
	words := strings.Fields(topicLower)

	matches := make([]*entities.Chunk, 0)
	for _, chunk := range chunks {
		text := strings.ToLower(chunk.Text)
		if strings.Contains(text, topicLower) {
			matches = append(matches, chunk)
			continue
		}
		for _, word := range words {
			if strings.Contains(text, word) {
				matches = append(matches, chunk)
				break
			}
		}
	}
	return matches
}

// KeywordAnswer builds a lightweight answer directly from chunks matching
// the query, with no model involvement. Returns the matched chunks and a
// templated answer; both empty when nothing matches.
func KeywordAnswer(chunks []*entities.Chunk, query string) ([]*entities.Chunk, string) {
	matches := QueryByTopic(chunks, query)
	if len(matches) == 0 {
		return nil, ""
	}

	quoted := matches
	if len(quoted) > 3 {
		quoted = quoted[:3]
	}

	lines := make([]string, 0, len(quoted))
	for _, chunk := range quoted {
		lines = append(lines, fmt.Sprintf("%s said: %q", chunk.SpeakerOrUnknown(), strings.TrimSpace(chunk.Text)))
	}

	answer := fmt.Sprintf("Based on the transcript, here is what was said about %q: %s",
		strings.TrimSpace(query), strings.Join(lines, " "))
	return matches, answer
}
