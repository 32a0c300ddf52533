package stt

import (
	"bytes"
	"context"
	"fmt"
	"time"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"
	"go.uber.org/zap"
)

// AssemblyAIEngine transcribes audio through the AssemblyAI hosted API:
// upload the chunk, create a transcript job, poll until it settles.
type AssemblyAIEngine struct {
	client       *aai.Client
	pollInterval time.Duration
	timeout      time.Duration
	logger       *zap.Logger
}

// NewAssemblyAIEngine creates an AssemblyAI-backed engine
func NewAssemblyAIEngine(apiKey string, pollInterval, timeout time.Duration, logger *zap.Logger) *AssemblyAIEngine {
	if pollInterval <= 0 {
		pollInterval = 3 * time.Second
	}
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &AssemblyAIEngine{
		client:       aai.NewClient(apiKey),
		pollInterval: pollInterval,
		timeout:      timeout,
		logger:       logger,
	}
}

func (e *AssemblyAIEngine) Name() string {
	return "assemblyai"
}

func (e *AssemblyAIEngine) Transcribe(ctx context.Context, samples []float32, sampleRate int) (bool, string, error) {
	if len(samples) == 0 {
		return false, "", nil
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	wav := EncodeWAV(samples, sampleRate)
	uploadURL, err := e.client.Upload(ctx, bytes.NewReader(wav))
	if err != nil {
		return false, "", fmt.Errorf("failed to upload to AssemblyAI: %w", err)
	}

	transcript, err := e.client.Transcripts.TranscribeFromURL(ctx, uploadURL, &aai.TranscriptOptionalParams{
		SpeakerLabels: aai.Bool(false),
	})
	if err != nil {
		return false, "", fmt.Errorf("failed to submit transcript job: %w", err)
	}
	if transcript.ID == nil {
		return false, "", fmt.Errorf("assemblyai returned no transcript id")
	}
	transcriptID := *transcript.ID

	ticker := time.NewTicker(e.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return false, "", fmt.Errorf("transcript %s polling: %w", transcriptID, ctx.Err())
		case <-ticker.C:
		}

		transcript, err = e.client.Transcripts.Get(ctx, transcriptID)
		if err != nil {
			return false, "", fmt.Errorf("failed to poll transcript %s: %w", transcriptID, err)
		}

		switch transcript.Status {
		case aai.TranscriptStatusCompleted:
			if transcript.Text == nil || *transcript.Text == "" {
				return false, "", nil
			}
			return true, *transcript.Text, nil

		case aai.TranscriptStatusError:
			reason := "unknown"
			if transcript.Error != nil {
				reason = *transcript.Error
			}
			return false, "", fmt.Errorf("assemblyai transcript %s failed: %s", transcriptID, reason)

		case aai.TranscriptStatusQueued, aai.TranscriptStatusProcessing:
			e.logger.Debug("transcript still processing",
				zap.String("transcript_id", transcriptID),
				zap.String("status", string(transcript.Status)),
			)
		}
	}
}
