package stt

import (
	"context"
	"strings"
)

// stub phrases scale with audio duration at roughly 150 words per minute
var stubPhrases = []string{
	"The board discussed", "quarterly results show", "significant progress in",
	"key initiatives", "market expansion", "cost optimization", "team performance",
	"strategic objectives", "risk management", "upcoming challenges",
}

// StubEngine is a deterministic engine for development and tests. It never
// touches the network and produces text proportional to the audio length.
type StubEngine struct{}

// NewStubEngine creates a stub engine
func NewStubEngine() *StubEngine {
	return &StubEngine{}
}

func (e *StubEngine) Name() string {
	return "stub"
}

func (e *StubEngine) Transcribe(ctx context.Context, samples []float32, sampleRate int) (bool, string, error) {
	if len(samples) == 0 {
		return false, "", nil
	}

	duration := float64(len(samples)) / float64(sampleRate)
	wordCount := int(duration * 150 / 60)
	if wordCount > len(stubPhrases) {
		wordCount = len(stubPhrases)
	}

	text := strings.Join(stubPhrases[:wordCount], " ")
	if text == "" {
		text = "Meeting discussion recorded"
	}
	return true, text, nil
}
