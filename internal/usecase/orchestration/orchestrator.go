package orchestration

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/boardroomai/meeting-analyzer/internal/domain/entities"
	"github.com/boardroomai/meeting-analyzer/internal/infrastructure/audio"
	"github.com/boardroomai/meeting-analyzer/internal/infrastructure/cache"
	"github.com/boardroomai/meeting-analyzer/internal/usecase/analysis"
)

// Options tunes the orchestrator
type Options struct {
	Workers     int
	LLMTimeout  time.Duration
	QACacheTTL  time.Duration
	TopicChunks int
}

func (o Options) withDefaults() Options {
	if o.Workers < 1 {
		o.Workers = 4
	}
	if o.LLMTimeout <= 0 {
		o.LLMTimeout = 30 * time.Second
	}
	if o.QACacheTTL <= 0 {
		o.QACacheTTL = 30 * time.Minute
	}
	if o.TopicChunks <= 0 {
		o.TopicChunks = 25
	}
	return o
}

// Orchestrator composes transcript building, answer caching and bounded LLM
// invocation behind four operations: process a chunk, answer a topic query,
// answer a free-form question, and produce a full meeting analysis. It owns
// its caches exclusively; they are rebuilt from the chunk store on restart.
type Orchestrator struct {
	collab      Collaborators
	artifacts   *artifactBuilder
	qaCache     cache.Store
	qaTTL       time.Duration
	pool        *workerPool
	timeout     time.Duration
	topicChunks int
	logger      *zap.Logger

	analysisMu    sync.Mutex
	analysisCache map[string]*analysisEntry
}

type analysisEntry struct {
	chunkCount int
	payload    *entities.MeetingAnalysis
}

// New creates an orchestrator with injected collaborators. qaCache backs
// the question-answer cache; pass an in-process TTL store or a Redis store.
func New(collab Collaborators, qaCache cache.Store, opts Options, logger *zap.Logger) *Orchestrator {
	opts = opts.withDefaults()
	return &Orchestrator{
		collab:        collab,
		artifacts:     newArtifactBuilder(),
		qaCache:       qaCache,
		qaTTL:         opts.QACacheTTL,
		pool:          newWorkerPool(opts.Workers),
		timeout:       opts.LLMTimeout,
		topicChunks:   opts.TopicChunks,
		logger:        logger,
		analysisCache: make(map[string]*analysisEntry),
	}
}

// ChunkResult is what chunk processing hands back to the route layer
type ChunkResult struct {
	Transcription string                    `json:"transcription,omitempty"`
	Sentiment     *entities.SentimentResult `json:"sentiment"`
}

// ProcessAudioChunk transcribes decoded PCM and tracks sentiment for the
// speaker. Transcription failure degrades to a placeholder, never an error.
func (o *Orchestrator) ProcessAudioChunk(ctx context.Context, samples []float32, speaker string) *ChunkResult {
	ok, transcription, err := o.collab.Transcriber.Transcribe(ctx, samples, audio.SampleRate)
	if err != nil {
		o.logger.Warn("transcription failed",
			zap.String("speaker", speaker),
			zap.Error(err),
		)
	}
	if !ok || transcription == "" {
		transcription = entities.TranscriptionFailedText
	}

	sentiment := o.collab.Sentiment.Track(ctx, speaker, transcription)
	return &ChunkResult{
		Transcription: transcription,
		Sentiment:     sentiment,
	}
}

// ProcessTextChunk tracks sentiment for a directly submitted text chunk
func (o *Orchestrator) ProcessTextChunk(ctx context.Context, speaker, text string) *ChunkResult {
	return &ChunkResult{
		Sentiment: o.collab.Sentiment.Track(ctx, speaker, text),
	}
}

// QueryTopic filters chunks by keyword containment against the topic
func (o *Orchestrator) QueryTopic(chunks []*entities.Chunk, topic string) []*entities.Chunk {
	return analysis.QueryByTopic(chunks, topic)
}

// ResetMeetingState clears per-meeting derived state (sentiment history,
// the cached artifact and any cached analysis) when a new meeting starts.
func (o *Orchestrator) ResetMeetingState(meetingID string) {
	o.collab.Sentiment.Reset()
	o.artifacts.Invalidate(meetingID)

	o.analysisMu.Lock()
	delete(o.analysisCache, meetingID)
	o.analysisMu.Unlock()
}

// CachedAnalysis returns the last computed analysis for a meeting, or nil
// when none has been produced yet.
func (o *Orchestrator) CachedAnalysis(meetingID string) *entities.MeetingAnalysis {
	o.analysisMu.Lock()
	defer o.analysisMu.Unlock()
	if entry, ok := o.analysisCache[meetingID]; ok {
		return entry.payload
	}
	return nil
}

// selectRelevantChunks picks up to topicChunks candidates by keyword
// containment, falling back to the head of the chunk list.
func (o *Orchestrator) selectRelevantChunks(chunks []*entities.Chunk, query string) []*entities.Chunk {
	matches := analysis.QueryByTopic(chunks, query)
	if len(matches) == 0 {
		matches = chunks
	}
	if len(matches) > o.topicChunks {
		matches = matches[:o.topicChunks]
	}
	return matches
}
