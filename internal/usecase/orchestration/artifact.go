package orchestration

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/boardroomai/meeting-analyzer/internal/domain/entities"
)

// Fixed transcript placeholders
const (
	placeholderNoAudio      = "No audio was detected in this meeting."
	placeholderNoTranscript = "No transcript data available yet."
)

// Meta carries meeting metadata into artifact building and LLM context
type Meta struct {
	Name         string
	Status       string
	Participants []string
}

// artifactBuilder renders chunk records into transcript artifacts, cached
// per meeting keyed by chunk count. The lock covers the whole
// check-then-insert sequence; artifacts are replaced wholesale.
type artifactBuilder struct {
	mu    sync.Mutex
	cache map[string]*entities.TranscriptArtifact
}

func newArtifactBuilder() *artifactBuilder {
	return &artifactBuilder{
		cache: make(map[string]*entities.TranscriptArtifact),
	}
}

// Build returns the artifact for the meeting, rebuilding only when the
// chunk count changed since the last build.
func (b *artifactBuilder) Build(meetingID string, chunks []*entities.Chunk, meta Meta) *entities.TranscriptArtifact {
	b.mu.Lock()
	defer b.mu.Unlock()

	if cached, ok := b.cache[meetingID]; ok && cached.ChunkCount == len(chunks) {
		return cached
	}

	artifact := renderArtifact(meetingID, chunks, meta)
	b.cache[meetingID] = artifact
	return artifact
}

// Invalidate drops the cached artifact for a meeting
func (b *artifactBuilder) Invalidate(meetingID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.cache, meetingID)
}

func renderArtifact(meetingID string, chunks []*entities.Chunk, meta Meta) *entities.TranscriptArtifact {
	speakerSet := make(map[string]struct{})
	for _, chunk := range chunks {
		speakerSet[chunk.SpeakerOrUnknown()] = struct{}{}
	}
	speakers := make([]string, 0, len(speakerSet))
	for speaker := range speakerSet {
		speakers = append(speakers, speaker)
	}
	sort.Strings(speakers)

	lines := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		text := strings.TrimSpace(chunk.Text)
		if text == "" {
			continue
		}
		speaker := chunk.SpeakerOrUnknown()
		if chunk.Timestamp == nil {
			lines = append(lines, fmt.Sprintf("%s: %s", speaker, text))
		} else {
			lines = append(lines, fmt.Sprintf("[%ds] %s: %s", *chunk.Timestamp, speaker, text))
		}
	}

	transcriptText := strings.TrimSpace(strings.Join(lines, "\n"))
	if transcriptText == "" {
		if meta.Status == entities.MeetingStatusNoAudio {
			transcriptText = placeholderNoAudio
		} else {
			transcriptText = placeholderNoTranscript
		}
	}

	context := entities.MeetingContext{
		MeetingID:    meetingID,
		Name:         meta.Name,
		Status:       meta.Status,
		ChunkCount:   len(chunks),
		SpeakerCount: len(speakers),
		Speakers:     speakers,
		Participants: meta.Participants,
	}

	return &entities.TranscriptArtifact{
		MeetingID:      meetingID,
		ChunkCount:     len(chunks),
		Speakers:       speakers,
		TranscriptText: transcriptText,
		ContextMessage: buildContextMessage(context, transcriptText),
	}
}

func buildContextMessage(context entities.MeetingContext, transcriptText string) string {
	metadataJSON, err := json.Marshal(context)
	if err != nil {
		metadataJSON = []byte("{}")
	}
	return strings.Join([]string{
		"MEETING METADATA:\n" + string(metadataJSON),
		"FULL TRANSCRIPT:\n" + transcriptText,
	}, "\n\n")
}
