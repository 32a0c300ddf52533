package orchestration

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/boardroomai/meeting-analyzer/internal/domain/entities"
	"github.com/boardroomai/meeting-analyzer/internal/infrastructure/notify"
)

const refineSystemPrompt = "You refine board meeting summaries using transcript context and internal sentiment signals."

// AnalyzeMeeting produces the full derived analysis for a meeting: summary,
// key points, decisions, action items and per-speaker sentiment. The result
// is cached per meeting and reused until the chunk count changes.
func (o *Orchestrator) AnalyzeMeeting(ctx context.Context, meetingID string, chunks []*entities.Chunk, fullText string, meta Meta) *entities.MeetingAnalysis {
	artifact := o.artifacts.Build(meetingID, chunks, meta)

	o.analysisMu.Lock()
	if cached, ok := o.analysisCache[meetingID]; ok && cached.chunkCount == artifact.ChunkCount {
		payload := cached.payload
		o.analysisMu.Unlock()
		return payload
	}
	o.analysisMu.Unlock()

	summary, keyPoints, sentimentBreakdown := o.summarizeWithSentiment(ctx, chunks, artifact)

	decisions := []entities.Decision{}
	actionItems := []entities.ActionItem{}
	if fullText != "" {
		decisions = o.collab.Decisions.Extract(ctx, fullText)
		actionItems = o.collab.ActionItems.Extract(ctx, fullText)
	}

	// Key points merge: summary text first, then dedup append, first wins
	merged := make([]string, 0, len(keyPoints)+1)
	if summary != "" {
		merged = append(merged, summary)
	}
	for _, point := range keyPoints {
		point = strings.TrimSpace(point)
		if point == "" || contains(merged, point) {
			continue
		}
		merged = append(merged, point)
	}

	payload := &entities.MeetingAnalysis{
		MeetingID:          meetingID,
		ChunkCount:         artifact.ChunkCount,
		Summary:            artifact.TranscriptText,
		KeyPoints:          merged,
		Decisions:          decisions,
		ActionItems:        actionItems,
		SentimentBreakdown: sentimentBreakdown,
		Speakers:           artifact.Speakers,
	}

	o.analysisMu.Lock()
	o.analysisCache[meetingID] = &analysisEntry{
		chunkCount: artifact.ChunkCount,
		payload:    payload,
	}
	o.analysisMu.Unlock()

	o.collab.Notifier.Emit(ctx, notify.EventAnalysisCompleted, map[string]any{
		"meeting_id":    meetingID,
		"chunk_count":   artifact.ChunkCount,
		"speaker_count": len(artifact.Speakers),
	})

	return payload
}

// summarizeWithSentiment runs the draft summarization and then a refinement
// call that folds in per-speaker sentiment signals. Refinement output
// overrides the draft only when non-empty.
func (o *Orchestrator) summarizeWithSentiment(ctx context.Context, chunks []*entities.Chunk, artifact *entities.TranscriptArtifact) (string, []string, map[string]*entities.SpeakerSentiment) {
	sentimentBreakdown := o.collab.Sentiment.Breakdown()
	if len(chunks) == 0 {
		return "", nil, sentimentBreakdown
	}

	summary, keyPoints := o.collab.Summarizer.Summarize(ctx, chunks, "short")
	if summary == "" && len(keyPoints) == 0 {
		return "", nil, sentimentBreakdown
	}

	contextMessage := strings.Join([]string{
		artifact.ContextMessage,
		"SENTIMENT SIGNALS:\n" + buildSentimentContext(sentimentBreakdown),
	}, "\n\n")

	payload := o.invokeWithTimeout(ctx, refineSystemPrompt, contextMessage,
		"Produce a concise factual summary and key points.",
		map[string]any{"summary": "string", "key_points": []any{"string"}},
	)

	if improved := extractText(payload, "summary"); improved != "" {
		summary = improved
	}
	if improved := extractList(payload, "key_points"); len(improved) > 0 {
		keyPoints = improved
	}

	return summary, keyPoints, sentimentBreakdown
}

func buildSentimentContext(breakdown map[string]*entities.SpeakerSentiment) string {
	if len(breakdown) == 0 {
		return "No sentiment signals available."
	}

	speakers := make([]string, 0, len(breakdown))
	for speaker := range breakdown {
		speakers = append(speakers, speaker)
	}
	sort.Strings(speakers)

	lines := make([]string, 0, len(speakers))
	for _, speaker := range speakers {
		stats := breakdown[speaker]
		lines = append(lines, fmt.Sprintf(
			"%s: score=%.2f, positive=%d, neutral=%d, negative=%d, dominant_emotion=%s",
			speaker, stats.OverallScore, stats.PositiveCount, stats.NeutralCount, stats.NegativeCount, stats.DominantEmotion,
		))
	}
	return strings.Join(lines, "\n")
}

func contains(items []string, target string) bool {
	for _, item := range items {
		if item == target {
			return true
		}
	}
	return false
}
