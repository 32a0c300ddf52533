package orchestration

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/boardroomai/meeting-analyzer/internal/domain/entities"
	"github.com/boardroomai/meeting-analyzer/internal/usecase/analysis"
)

// Fixed answer messages
const (
	msgNoAudioSemantic = "I didn't receive any audio input for this meeting, so I can't answer questions about the discussion."
	msgNoAudioAsk      = "I didn't receive any audio input for this meeting, so I can't provide any details."
	msgNoTranscriptYet = "No transcript yet. You can still ask questions."
	msgNotEnoughDetail = "I could not find enough detail in the transcript to answer that."

	qaSystemPrompt = "You are a board meeting assistant. Answer only from the provided transcript context."
)

// qaEntry is the serialized form of one cached answer
type qaEntry struct {
	Answer         string            `json:"answer"`
	RelevantChunks []*entities.Chunk `json:"relevant_chunks,omitempty"`
}

// SemanticQuery answers a natural-language query against the meeting
// transcript, returning the relevant chunks alongside the answer.
func (o *Orchestrator) SemanticQuery(ctx context.Context, meetingID string, chunks []*entities.Chunk, query string, meta Meta) ([]*entities.Chunk, string) {
	artifact := o.artifacts.Build(meetingID, chunks, meta)
	query = strings.TrimSpace(query)

	if len(chunks) == 0 {
		if meta.Status == entities.MeetingStatusNoAudio {
			return []*entities.Chunk{}, msgNoAudioSemantic
		}
		return []*entities.Chunk{}, msgNoTranscriptYet
	}

	if query == "" {
		return chunks, artifact.TranscriptText
	}

	cacheKey := qaCacheKey("semantic", meetingID, artifact.ChunkCount, query)
	if cached, ok := o.lookupQA(ctx, cacheKey); ok {
		return cached.RelevantChunks, cached.Answer
	}

	relevant := o.selectRelevantChunks(chunks, query)

	payload := o.invokeWithTimeout(ctx, qaSystemPrompt, artifact.ContextMessage, query, map[string]any{"answer": "string"})
	answer := extractText(payload, "answer", "response", "result")

	if answer == "" {
		fallbackChunks, fallbackAnswer := analysis.KeywordAnswer(chunks, query)
		if len(fallbackChunks) > 0 {
			relevant = fallbackChunks
		}
		answer = strings.TrimSpace(fallbackAnswer)
	}

	if answer == "" {
		answer = msgNotEnoughDetail
	}

	o.storeQA(ctx, cacheKey, qaEntry{Answer: answer, RelevantChunks: relevant})
	return relevant, answer
}

// AskQuestion answers a free-form question against the meeting transcript
func (o *Orchestrator) AskQuestion(ctx context.Context, meetingID string, chunks []*entities.Chunk, question string, meta Meta) string {
	artifact := o.artifacts.Build(meetingID, chunks, meta)
	question = strings.TrimSpace(question)

	if len(chunks) == 0 {
		if meta.Status == entities.MeetingStatusNoAudio {
			return msgNoAudioAsk
		}
		return msgNoTranscriptYet
	}

	if question == "" {
		return artifact.TranscriptText
	}

	cacheKey := qaCacheKey("ask", meetingID, artifact.ChunkCount, question)
	if cached, ok := o.lookupQA(ctx, cacheKey); ok {
		return cached.Answer
	}

	payload := o.invokeWithTimeout(ctx, qaSystemPrompt, artifact.ContextMessage, question, map[string]any{"answer": "string"})
	answer := extractText(payload, "answer", "response", "result")

	if answer == "" {
		_, fallbackAnswer := analysis.KeywordAnswer(chunks, question)
		answer = strings.TrimSpace(fallbackAnswer)
	}

	if answer == "" {
		answer = msgNotEnoughDetail
	}

	o.storeQA(ctx, cacheKey, qaEntry{Answer: answer})
	return answer
}

func qaCacheKey(kind, meetingID string, chunkCount int, query string) string {
	return fmt.Sprintf("qa:%s:%s:%d:%s", kind, meetingID, chunkCount, strings.ToLower(query))
}

func (o *Orchestrator) lookupQA(ctx context.Context, key string) (qaEntry, bool) {
	raw, ok, err := o.qaCache.Get(ctx, key)
	if err != nil {
		o.logger.Warn("answer cache lookup failed", zap.Error(err))
		return qaEntry{}, false
	}
	if !ok {
		return qaEntry{}, false
	}

	var entry qaEntry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		o.logger.Warn("answer cache entry malformed", zap.Error(err))
		return qaEntry{}, false
	}
	return entry, true
}

func (o *Orchestrator) storeQA(ctx context.Context, key string, entry qaEntry) {
	raw, err := json.Marshal(entry)
	if err != nil {
		o.logger.Warn("answer cache encode failed", zap.Error(err))
		return
	}
	if err := o.qaCache.Set(ctx, key, string(raw), o.qaTTL); err != nil {
		o.logger.Warn("answer cache store failed", zap.Error(err))
	}
}
