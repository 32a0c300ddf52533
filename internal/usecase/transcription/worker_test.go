package transcription

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/boardroomai/meeting-analyzer/internal/domain/entities"
)

type staticTranscriber struct {
	ok   bool
	text string
	err  error
}

func (f *staticTranscriber) Transcribe(ctx context.Context, samples []float32, sampleRate int) (bool, string, error) {
	return f.ok, f.text, f.err
}

type recordingTracker struct {
	mu    sync.Mutex
	texts []string
}

func (f *recordingTracker) Track(ctx context.Context, speaker, text string) *entities.SentimentResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.texts = append(f.texts, text)
	return &entities.SentimentResult{Sentiment: "positive", Emotion: "optimism", Confidence: 0.8}
}

func (f *recordingTracker) tracked() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.texts)
}

type update struct {
	chunkID   uuid.UUID
	text      string
	sentiment *entities.SentimentResult
}

type recordingUpdater struct {
	mu        sync.Mutex
	updates   []update
	remaining int
	err       error
	done      chan struct{}
}

func newRecordingUpdater(expected int) *recordingUpdater {
	u := &recordingUpdater{done: make(chan struct{})}
	if expected == 0 {
		close(u.done)
	}
	u.remaining = expected
	return u
}

func (f *recordingUpdater) UpdateChunkText(ctx context.Context, chunkID uuid.UUID, text string, sentiment *entities.SentimentResult) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, update{chunkID: chunkID, text: text, sentiment: sentiment})
	f.remaining--
	if f.remaining == 0 {
		close(f.done)
	}
	return f.err
}

func (f *recordingUpdater) wait(t *testing.T) {
	t.Helper()
	select {
	case <-f.done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for chunk updates")
	}
}

func TestWorkerUpdatesChunkByID(t *testing.T) {
	tracker := &recordingTracker{}
	updater := newRecordingUpdater(1)
	worker := NewWorker(&staticTranscriber{ok: true, text: "the results look strong"}, tracker, updater, 2, zap.NewNop())
	worker.Start()
	defer worker.Stop(time.Second)

	chunkID := uuid.New()
	err := worker.Submit(Task{ChunkID: chunkID, MeetingID: "m1", Speaker: "alice", Samples: []float32{0.1}, SampleRate: 16000})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	updater.wait(t)
	if len(updater.updates) != 1 {
		t.Fatalf("expected 1 update, got %d", len(updater.updates))
	}
	got := updater.updates[0]
	if got.chunkID != chunkID {
		t.Fatalf("update addressed wrong chunk: %s", got.chunkID)
	}
	if got.text != "the results look strong" {
		t.Fatalf("unexpected text %q", got.text)
	}
	if got.sentiment == nil || got.sentiment.Sentiment != "positive" {
		t.Fatalf("unexpected sentiment %+v", got.sentiment)
	}
	if tracker.tracked() != 1 {
		t.Fatalf("expected 1 tracked statement, got %d", tracker.tracked())
	}
}

func TestWorkerWritesFailurePlaceholder(t *testing.T) {
	tracker := &recordingTracker{}
	updater := newRecordingUpdater(1)
	worker := NewWorker(&staticTranscriber{ok: false}, tracker, updater, 1, zap.NewNop())
	worker.Start()
	defer worker.Stop(time.Second)

	if err := worker.Submit(Task{ChunkID: uuid.New(), MeetingID: "m1", Speaker: "alice"}); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	updater.wait(t)
	got := updater.updates[0]
	if got.text != entities.TranscriptionFailedText {
		t.Fatalf("expected failure placeholder, got %q", got.text)
	}
	if got.sentiment != nil {
		t.Fatalf("sentiment should not be tracked for failed transcription: %+v", got.sentiment)
	}
	if tracker.tracked() != 0 {
		t.Fatalf("tracker should not run on failure, saw %d calls", tracker.tracked())
	}
}

func TestWorkerTranscriberErrorWritesPlaceholder(t *testing.T) {
	updater := newRecordingUpdater(1)
	worker := NewWorker(&staticTranscriber{err: errors.New("engine offline")}, &recordingTracker{}, updater, 1, zap.NewNop())
	worker.Start()
	defer worker.Stop(time.Second)

	if err := worker.Submit(Task{ChunkID: uuid.New(), MeetingID: "m1"}); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	updater.wait(t)
	if updater.updates[0].text != entities.TranscriptionFailedText {
		t.Fatalf("expected failure placeholder, got %q", updater.updates[0].text)
	}
}

func TestWorkerSubmitAfterStop(t *testing.T) {
	worker := NewWorker(&staticTranscriber{ok: true, text: "ok"}, nil, newRecordingUpdater(0), 1, zap.NewNop())
	worker.Start()
	worker.Stop(time.Second)

	err := worker.Submit(Task{ChunkID: uuid.New()})
	if !errors.Is(err, ErrWorkerStopped) {
		t.Fatalf("expected ErrWorkerStopped, got %v", err)
	}
}

func TestWorkerStopDrainsQueuedTasks(t *testing.T) {
	updater := newRecordingUpdater(5)
	worker := NewWorker(&staticTranscriber{ok: true, text: "drained"}, nil, updater, 2, zap.NewNop())
	worker.Start()

	for i := 0; i < 5; i++ {
		if err := worker.Submit(Task{ChunkID: uuid.New(), MeetingID: "m1", Speaker: "alice"}); err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
	}
	worker.Stop(2 * time.Second)
	updater.wait(t)

	updater.mu.Lock()
	defer updater.mu.Unlock()
	if len(updater.updates) != 5 {
		t.Fatalf("expected 5 updates after drain, got %d", len(updater.updates))
	}
	for _, u := range updater.updates {
		if u.text != "drained" {
			t.Fatalf("unexpected text %q", u.text)
		}
	}
}

func TestWorkerSubmitRacingStop(t *testing.T) {
	// Submit must never send on a closed channel; a submission racing
	// shutdown either lands in the queue or reports the worker stopped.
	for i := 0; i < 200; i++ {
		worker := NewWorker(&staticTranscriber{ok: true, text: "ok"}, nil, newRecordingUpdater(0), 1, zap.NewNop())
		worker.Start()

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				err := worker.Submit(Task{ChunkID: uuid.New(), MeetingID: "m1"})
				if err != nil && !errors.Is(err, ErrWorkerStopped) && !errors.Is(err, ErrQueueFull) {
					t.Errorf("unexpected submit error: %v", err)
				}
			}
		}()
		go func() {
			defer wg.Done()
			worker.Stop(time.Second)
		}()
		wg.Wait()
	}
}

func TestWorkerQueueFullWithoutStart(t *testing.T) {
	worker := NewWorker(&staticTranscriber{ok: true, text: "ok"}, nil, newRecordingUpdater(0), 1, zap.NewNop())

	var err error
	for i := 0; i < 300; i++ {
		if err = worker.Submit(Task{ChunkID: uuid.New()}); err != nil {
			break
		}
	}
	if !errors.Is(err, ErrQueueFull) {
		t.Fatalf("expected ErrQueueFull, got %v", err)
	}
}
