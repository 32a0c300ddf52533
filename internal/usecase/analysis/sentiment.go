package analysis

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/boardroomai/meeting-analyzer/internal/domain/entities"
)

// LLMClient is the black-box text-analysis primitive: prompt and system
// string in, parsed-JSON-or-error-map out.
type LLMClient interface {
	Generate(ctx context.Context, prompt, system string) map[string]any
}

// sentimentScores maps sentiment labels to numeric scores
var sentimentScores = map[string]float64{
	"positive": 1.0,
	"neutral":  0.0,
	"negative": -1.0,
}

const sentimentPrompt = `
Analyze the sentiment and emotion of the following statement.

Text:
%s

Return ONLY valid JSON:
{
  "sentiment": "positive|neutral|negative",
  "emotion": "confidence|concern|disagreement|optimism|enthusiasm|skepticism|frustration|agreement|neutral|thoughtful",
  "confidence": 0.0
}
`

// speakerStats accumulates per-speaker sentiment incrementally, so each
// tracked statement is O(1) rather than a full-history recompute.
type speakerStats struct {
	scoreSum       float64
	statementCount int
	positiveCount  int
	negativeCount  int
	neutralCount   int
	emotions       map[string]int
}

// SentimentTracker classifies statements with the LLM and keeps running
// per-speaker statistics for the life of the process.
type SentimentTracker struct {
	llm    LLMClient
	logger *zap.Logger

	mu       sync.Mutex
	speakers map[string]*speakerStats
}

// NewSentimentTracker creates a sentiment tracker
func NewSentimentTracker(llm LLMClient, logger *zap.Logger) *SentimentTracker {
	return &SentimentTracker{
		llm:      llm,
		logger:   logger,
		speakers: make(map[string]*speakerStats),
	}
}

// Analyze classifies a single statement. Failures degrade to a neutral
// zero-confidence result, never an error.
func (t *SentimentTracker) Analyze(ctx context.Context, text string) *entities.SentimentResult {
	neutral := &entities.SentimentResult{Sentiment: "neutral", Emotion: "neutral"}

	system := "You analyze sentiment and emotion in board meetings. Be concise."
	payload := t.llm.Generate(ctx, fmt.Sprintf(sentimentPrompt, text), system)
	if payload == nil {
		return neutral
	}
	if errVal, ok := payload["error"]; ok && errVal != nil {
		t.logger.Warn("sentiment analysis failed", zap.Any("error", errVal))
		return neutral
	}

	sentiment := strings.ToLower(strings.TrimSpace(stringValue(payload["sentiment"])))
	score, known := sentimentScores[sentiment]
	if !known {
		sentiment = "neutral"
		score = 0.0
	}

	emotion := strings.TrimSpace(stringValue(payload["emotion"]))
	if emotion == "" {
		emotion = "neutral"
	}

	confidence := floatValue(payload["confidence"], 0.5)
	if confidence < 0 {
		confidence = 0
	} else if confidence > 1 {
		confidence = 1
	}

	return &entities.SentimentResult{
		Sentiment:  sentiment,
		Emotion:    emotion,
		Confidence: confidence,
		Score:      score,
	}
}

// Track analyzes a statement and folds it into the speaker's running stats
func (t *SentimentTracker) Track(ctx context.Context, speaker, text string) *entities.SentimentResult {
	result := t.Analyze(ctx, text)

	t.mu.Lock()
	defer t.mu.Unlock()

	stats, ok := t.speakers[speaker]
	if !ok {
		stats = &speakerStats{emotions: make(map[string]int)}
		t.speakers[speaker] = stats
	}

	stats.scoreSum += result.Score
	stats.statementCount++
	switch result.Sentiment {
	case "positive":
		stats.positiveCount++
	case "negative":
		stats.negativeCount++
	default:
		stats.neutralCount++
	}
	stats.emotions[result.Emotion]++

	return result
}

// Breakdown returns per-speaker sentiment statistics. The overall score is
// the arithmetic mean of all tracked statement scores for the speaker.
func (t *SentimentTracker) Breakdown() map[string]*entities.SpeakerSentiment {
	t.mu.Lock()
	defer t.mu.Unlock()

	breakdown := make(map[string]*entities.SpeakerSentiment, len(t.speakers))
	for speaker, stats := range t.speakers {
		if stats.statementCount == 0 {
			continue
		}

		dominant := "neutral"
		dominantCount := 0
		for emotion, count := range stats.emotions {
			if count > dominantCount {
				dominant = emotion
				dominantCount = count
			}
		}

		emotions := make(map[string]int, len(stats.emotions))
		for emotion, count := range stats.emotions {
			emotions[emotion] = count
		}

		breakdown[speaker] = &entities.SpeakerSentiment{
			OverallScore:    stats.scoreSum / float64(stats.statementCount),
			StatementCount:  stats.statementCount,
			PositiveCount:   stats.positiveCount,
			NegativeCount:   stats.negativeCount,
			NeutralCount:    stats.neutralCount,
			DominantEmotion: dominant,
			Emotions:        emotions,
		}
	}
	return breakdown
}

// Reset clears all tracked sentiment for a new meeting
func (t *SentimentTracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.speakers = make(map[string]*speakerStats)
}

func stringValue(v any) string {
	s, _ := v.(string)
	return s
}

func floatValue(v any, fallback float64) float64 {
	switch value := v.(type) {
	case float64:
		return value
	case int:
		return float64(value)
	}
	return fallback
}
