package diarize

import (
	"math"
	"testing"
)

func toneSamples(freq float64, n int) []float32 {
	samples := make([]float32, n)
	for i := range samples {
		samples[i] = float32(0.5 * math.Sin(2*math.Pi*freq*float64(i)/16000))
	}
	return samples
}

func TestDetectSpeakerMatchesEnrolledVoice(t *testing.T) {
	d := NewDiarizer()
	voice := toneSamples(220, 16000)
	d.EnrollFromAudio("alice", voice)

	name, confidence := d.DetectSpeaker(voice)
	if name != "alice" {
		t.Fatalf("expected alice, got %q", name)
	}
	if confidence < 0.99 {
		t.Fatalf("expected near-perfect confidence for identical audio, got %v", confidence)
	}
}

func TestDetectSpeakerAnonymousSequence(t *testing.T) {
	d := NewDiarizer()
	samples := toneSamples(300, 8000)

	name, confidence := d.DetectSpeaker(samples)
	if name != "Speaker_1" || confidence != 0 {
		t.Fatalf("unexpected first label %q (%v)", name, confidence)
	}
	name, _ = d.DetectSpeaker(samples)
	if name != "Speaker_2" {
		t.Fatalf("unexpected second label %q", name)
	}

	d.Reset()
	name, _ = d.DetectSpeaker(samples)
	if name != "Speaker_1" {
		t.Fatalf("counter should reset, got %q", name)
	}
}

func TestEnrolledSpeakersAndRemove(t *testing.T) {
	d := NewDiarizer()
	d.EnrollFromAudio("alice", toneSamples(220, 8000))
	d.EnrollFromAudio("bob", toneSamples(440, 8000))

	if got := len(d.EnrolledSpeakers()); got != 2 {
		t.Fatalf("expected 2 enrolled speakers, got %d", got)
	}

	if !d.Remove("alice") {
		t.Fatal("expected removal of enrolled speaker to succeed")
	}
	if d.Remove("alice") {
		t.Fatal("second removal should report absence")
	}
	if got := len(d.EnrolledSpeakers()); got != 1 {
		t.Fatalf("expected 1 enrolled speaker, got %d", got)
	}
}

func TestExtractEmbeddingNormalized(t *testing.T) {
	embedding := ExtractEmbedding(toneSamples(220, 16000))
	if len(embedding) != embeddingSize {
		t.Fatalf("unexpected embedding size %d", len(embedding))
	}

	var norm float64
	for _, v := range embedding {
		norm += float64(v) * float64(v)
	}
	if math.Abs(math.Sqrt(norm)-1) > 0.01 {
		t.Fatalf("embedding not unit-normalized: %v", math.Sqrt(norm))
	}
}

func TestExtractEmbeddingEmptyInput(t *testing.T) {
	embedding := ExtractEmbedding(nil)
	if len(embedding) != embeddingSize {
		t.Fatalf("unexpected embedding size %d", len(embedding))
	}
	for i, v := range embedding {
		if v != 0 {
			t.Fatalf("expected zero vector, found %v at %d", v, i)
		}
	}
}
