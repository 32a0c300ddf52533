package transcription

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/boardroomai/meeting-analyzer/internal/domain/entities"
	"github.com/boardroomai/meeting-analyzer/pkg/taskctx"
)

const taskKindTranscribe = "transcribe_chunk"

// ErrWorkerStopped is returned by Submit after Stop has been called.
var ErrWorkerStopped = errors.New("transcription worker stopped")

// ErrQueueFull is returned by Submit when the task queue is saturated.
var ErrQueueFull = errors.New("transcription queue full")

// Transcriber converts PCM audio to text. ok reports whether usable text
// was produced.
type Transcriber interface {
	Transcribe(ctx context.Context, samples []float32, sampleRate int) (ok bool, text string, err error)
}

// SentimentTracker classifies a statement and records per-speaker stats
type SentimentTracker interface {
	Track(ctx context.Context, speaker, text string) *entities.SentimentResult
}

// ChunkUpdater persists the transcription result onto the originating
// chunk, addressed by its ID.
type ChunkUpdater interface {
	UpdateChunkText(ctx context.Context, chunkID uuid.UUID, text string, sentiment *entities.SentimentResult) error
}

// Task carries one pending chunk through the background pipeline. ChunkID
// doubles as the task token: the result is written back by ID, so
// concurrent submissions from the same speaker cannot be misattributed.
type Task struct {
	ChunkID    uuid.UUID
	MeetingID  string
	Speaker    string
	Samples    []float32
	SampleRate int
}

// Worker runs speech-to-text for submitted chunks on a fixed pool of
// goroutines and updates each chunk in place when its transcription
// completes. Persistence retries with exponential backoff on transient
// store errors.
type Worker struct {
	transcriber Transcriber
	sentiment   SentimentTracker
	chunks      ChunkUpdater
	logger      *zap.Logger

	tasks   chan Task
	stop    chan struct{}
	workers int

	baseCtx context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	mu      sync.Mutex
	started bool
	stopped bool
}

// NewWorker creates a background transcription worker. workers defaults
// to 4 when non-positive.
func NewWorker(transcriber Transcriber, sentiment SentimentTracker, chunks ChunkUpdater, workers int, logger *zap.Logger) *Worker {
	if workers <= 0 {
		workers = 4
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Worker{
		transcriber: transcriber,
		sentiment:   sentiment,
		chunks:      chunks,
		logger:      logger,
		tasks:       make(chan Task, 256),
		stop:        make(chan struct{}),
		workers:     workers,
		baseCtx:     ctx,
		cancel:      cancel,
	}
}

// Start launches the worker goroutines. Calling Start twice is a no-op.
func (w *Worker) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started || w.stopped {
		return
	}
	w.started = true

	for i := 0; i < w.workers; i++ {
		w.wg.Add(1)
		go w.loop(i)
	}
	w.logger.Info("started transcription workers", zap.Int("workers", w.workers))
}

// Stop drains the queue and waits for in-flight tasks to finish, up to
// the given timeout. After Stop, Submit returns ErrWorkerStopped. The
// task channel itself is never closed: shutdown is signalled on a
// separate channel so a Submit racing Stop cannot send on a closed
// channel.
func (w *Worker) Stop(timeout time.Duration) {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	w.stopped = true
	close(w.stop)
	w.mu.Unlock()

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(timeout):
		w.logger.Warn("transcription workers did not drain in time", zap.Duration("timeout", timeout))
	}
	w.cancel()
}

// Submit enqueues a chunk for background transcription. The chunk must
// already be persisted with entities.TranscriptionPendingText.
func (w *Worker) Submit(task Task) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return ErrWorkerStopped
	}

	select {
	case w.tasks <- task:
		w.logger.Debug("submitted transcription task",
			zap.String("task_token", task.ChunkID.String()),
			zap.String("meeting_id", task.MeetingID))
		return nil
	default:
		return ErrQueueFull
	}
}

func (w *Worker) loop(workerID int) {
	defer w.wg.Done()
	for {
		select {
		case task := <-w.tasks:
			w.process(workerID, task)
		case <-w.stop:
			// Drain what was queued before shutdown, then exit.
			for {
				select {
				case task := <-w.tasks:
					w.process(workerID, task)
				default:
					return
				}
			}
		}
	}
}

func (w *Worker) process(workerID int, task Task) {
	ctx, cancel := taskctx.TaskBegin(w.baseCtx, task.ChunkID, taskKindTranscribe, workerID)
	defer cancel()

	start := time.Now()
	text := entities.TranscriptionFailedText
	ok, transcription, err := w.transcriber.Transcribe(ctx, task.Samples, task.SampleRate)
	if err != nil {
		w.logger.Warn("background transcription failed",
			zap.String("task_token", task.ChunkID.String()),
			zap.String("meeting_id", task.MeetingID),
			zap.Error(err))
	} else if ok && transcription != "" {
		text = transcription
	}

	var sentiment *entities.SentimentResult
	if text != entities.TranscriptionFailedText && w.sentiment != nil {
		sentiment = w.sentiment.Track(ctx, task.Speaker, text)
	}

	persistErr := taskctx.TaskRun(ctx, func(ctx context.Context) error {
		return w.chunks.UpdateChunkText(ctx, task.ChunkID, text, sentiment)
	})
	if persistErr != nil {
		w.logger.Error("failed to persist transcription result",
			zap.String("task_token", task.ChunkID.String()),
			zap.String("meeting_id", task.MeetingID),
			zap.Error(persistErr))
		return
	}

	w.logger.Debug("transcription task completed",
		zap.String("task_token", task.ChunkID.String()),
		zap.Int("worker_id", workerID),
		zap.Duration("elapsed", time.Since(start)))
}
