package diarize

import (
	"fmt"
	"math"
	"sync"
)

const (
	embeddingSize = 128

	// matchThreshold is the minimum confidence for attributing a chunk to
	// an enrolled speaker; below it a generic Speaker_N label is assigned
	matchThreshold = 0.5
)

// Diarizer attributes audio chunks to speakers by comparing lightweight
// spectral embeddings against enrolled voices. Unmatched chunks get
// sequential Speaker_N labels; the counter resets per meeting.
type Diarizer struct {
	mu         sync.Mutex
	enrolled   map[string][]float32
	speakerSeq int
}

// NewDiarizer creates an empty diarizer
func NewDiarizer() *Diarizer {
	return &Diarizer{
		enrolled: make(map[string][]float32),
	}
}

// Enroll registers a speaker with their voice embedding
func (d *Diarizer) Enroll(name string, embedding []float32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.enrolled[name] = normalize(embedding)
}

// EnrollFromAudio registers a speaker from a reference audio sample
func (d *Diarizer) EnrollFromAudio(name string, samples []float32) {
	d.Enroll(name, ExtractEmbedding(samples))
}

// Remove deletes a speaker enrollment. Returns false when the speaker
// was not enrolled.
func (d *Diarizer) Remove(name string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.enrolled[name]; !ok {
		return false
	}
	delete(d.enrolled, name)
	return true
}

// EnrolledSpeakers returns the names of all enrolled speakers
func (d *Diarizer) EnrolledSpeakers() []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	names := make([]string, 0, len(d.enrolled))
	for name := range d.enrolled {
		names = append(names, name)
	}
	return names
}

// DetectSpeaker identifies the most likely speaker for an audio chunk.
// Returns the speaker name and a confidence score in [0, 1].
func (d *Diarizer) DetectSpeaker(samples []float32) (string, float64) {
	embedding := ExtractEmbedding(samples)

	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.enrolled) == 0 {
		return d.nextAnonymousLocked(), 0.0
	}

	bestMatch := ""
	bestDistance := math.Inf(1)
	for name, enrolled := range d.enrolled {
		distance := cosineDistance(embedding, enrolled)
		if distance < bestDistance {
			bestDistance = distance
			bestMatch = name
		}
	}

	confidence := 1 - bestDistance
	if confidence < 0 {
		confidence = 0
	}
	if confidence < matchThreshold {
		return d.nextAnonymousLocked(), confidence
	}
	return bestMatch, confidence
}

// Reset clears the anonymous speaker counter for a new meeting
func (d *Diarizer) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.speakerSeq = 0
}

func (d *Diarizer) nextAnonymousLocked() string {
	d.speakerSeq++
	return fmt.Sprintf("Speaker_%d", d.speakerSeq)
}

// ExtractEmbedding derives a normalized spectral feature vector from raw
// samples. Deliberately lightweight: energy and zero-crossing statistics
// over fixed sub-bands rather than a learned model.
func ExtractEmbedding(samples []float32) []float32 {
	embedding := make([]float32, embeddingSize)
	if len(samples) == 0 {
		return embedding
	}

	var energy float64
	var crossings float64
	for i, s := range samples {
		energy += math.Abs(float64(s))
		if i > 0 {
			crossings += math.Abs(float64(s) - float64(samples[i-1]))
		}
	}
	embedding[0] = float32(energy / float64(len(samples)))
	embedding[1] = float32(crossings / float64(len(samples)))

	// Per-band energy over the remaining slots
	bandSize := len(samples) / (embeddingSize - 2)
	if bandSize < 1 {
		bandSize = 1
	}
	for i := 2; i < embeddingSize; i++ {
		start := (i - 2) * bandSize
		if start >= len(samples) {
			embedding[i] = embedding[0]
			continue
		}
		end := start + bandSize
		if end > len(samples) {
			end = len(samples)
		}
		var bandEnergy float64
		for _, s := range samples[start:end] {
			bandEnergy += math.Abs(float64(s))
		}
		embedding[i] = float32(bandEnergy / float64(end-start))
	}

	return normalize(embedding)
}

func normalize(vec []float32) []float32 {
	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	norm = math.Sqrt(norm) + 1e-8

	out := make([]float32, len(vec))
	for i, v := range vec {
		out[i] = float32(float64(v) / norm)
	}
	return out
}

func cosineDistance(a, b []float32) float64 {
	var dot float64
	for i := range a {
		if i >= len(b) {
			break
		}
		dot += float64(a[i]) * float64(b[i])
	}
	return 1 - dot
}
