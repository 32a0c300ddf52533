package orchestration

import (
	"context"

	"github.com/boardroomai/meeting-analyzer/internal/domain/entities"
)

// Transcriber converts PCM audio to text. ok reports whether usable text
// was produced.
type Transcriber interface {
	Transcribe(ctx context.Context, samples []float32, sampleRate int) (ok bool, text string, err error)
}

// SentimentTracker classifies statements and keeps per-speaker statistics
type SentimentTracker interface {
	Track(ctx context.Context, speaker, text string) *entities.SentimentResult
	Breakdown() map[string]*entities.SpeakerSentiment
	Reset()
}

// DecisionExtractor pulls explicit decisions out of meeting text
type DecisionExtractor interface {
	Extract(ctx context.Context, text string) []entities.Decision
}

// ActionItemExtractor pulls concrete tasks out of meeting text
type ActionItemExtractor interface {
	Extract(ctx context.Context, text string) []entities.ActionItem
}

// Summarizer produces a baseline summary and key points from raw chunks
type Summarizer interface {
	Summarize(ctx context.Context, chunks []*entities.Chunk, length string) (summary string, keyPoints []string)
}

// LLMClient is the flat-prompt LLM primitive. It never returns an error:
// failures surface as {"error": ...} entries in the payload.
type LLMClient interface {
	Generate(ctx context.Context, prompt, system string) map[string]any
}

// ChainInvoker is the structured multi-message LLM path. Unlike LLMClient
// it reports failures so the invoker can fall through to the flat prompt.
type ChainInvoker interface {
	Invoke(ctx context.Context, system, contextMsg, userMsg string) (map[string]any, error)
}

// EventNotifier delivers workflow events best-effort
type EventNotifier interface {
	Emit(ctx context.Context, event string, payload map[string]any)
}

// Collaborators are the injected dependencies of the orchestrator.
// Chain may be nil, which disables the structured path.
type Collaborators struct {
	Transcriber Transcriber
	Sentiment   SentimentTracker
	Decisions   DecisionExtractor
	ActionItems ActionItemExtractor
	Summarizer  Summarizer
	LLM         LLMClient
	Chain       ChainInvoker
	Notifier    EventNotifier
}
