package orchestration

import (
	"strings"
	"testing"

	"github.com/boardroomai/meeting-analyzer/internal/domain/entities"
)

func TestRenderArtifactLines(t *testing.T) {
	chunks := []*entities.Chunk{
		entities.NewChunk("m1", "alice", "opening remarks", 0),
		entities.NewChunk("m1", "", "anonymous comment", 1),
		entities.NewChunk("m1", "bob", "   ", 2),
	}

	artifact := renderArtifact("m1", chunks, Meta{})

	want := "[0s] alice: opening remarks\n[1s] Unknown: anonymous comment"
	if artifact.TranscriptText != want {
		t.Fatalf("unexpected transcript:\n%q\nwant:\n%q", artifact.TranscriptText, want)
	}
	if artifact.ChunkCount != 3 {
		t.Fatalf("unexpected chunk count %d", artifact.ChunkCount)
	}
}

func TestRenderArtifactWithoutTimestamp(t *testing.T) {
	chunk := &entities.Chunk{MeetingID: "m1", Speaker: "alice", Text: "no ordinal"}
	artifact := renderArtifact("m1", []*entities.Chunk{chunk}, Meta{})

	if artifact.TranscriptText != "alice: no ordinal" {
		t.Fatalf("unexpected transcript: %q", artifact.TranscriptText)
	}
}

func TestRenderArtifactPlaceholders(t *testing.T) {
	artifact := renderArtifact("m1", nil, Meta{Status: entities.MeetingStatusNoAudio})
	if artifact.TranscriptText != placeholderNoAudio {
		t.Fatalf("unexpected placeholder: %q", artifact.TranscriptText)
	}

	artifact = renderArtifact("m1", nil, Meta{Status: entities.MeetingStatusActive})
	if artifact.TranscriptText != placeholderNoTranscript {
		t.Fatalf("unexpected placeholder: %q", artifact.TranscriptText)
	}
}

func TestRenderArtifactContextMessage(t *testing.T) {
	chunks := []*entities.Chunk{entities.NewChunk("m1", "alice", "hello", 0)}
	artifact := renderArtifact("m1", chunks, Meta{Name: "Board Sync", Status: entities.MeetingStatusActive})

	if !strings.HasPrefix(artifact.ContextMessage, "MEETING METADATA:\n") {
		t.Fatalf("context message missing metadata header: %q", artifact.ContextMessage)
	}
	if !strings.Contains(artifact.ContextMessage, "FULL TRANSCRIPT:\n[0s] alice: hello") {
		t.Fatalf("context message missing transcript: %q", artifact.ContextMessage)
	}
	if !strings.Contains(artifact.ContextMessage, `"meeting_name":"Board Sync"`) {
		t.Fatalf("context message missing meeting name: %q", artifact.ContextMessage)
	}
}

func TestArtifactBuilderCachesByChunkCount(t *testing.T) {
	builder := newArtifactBuilder()
	chunks := []*entities.Chunk{entities.NewChunk("m1", "alice", "hello", 0)}

	first := builder.Build("m1", chunks, Meta{})
	second := builder.Build("m1", chunks, Meta{})
	if first != second {
		t.Fatal("expected cached artifact for unchanged chunk count")
	}

	grown := append(chunks, entities.NewChunk("m1", "bob", "more", 1))
	third := builder.Build("m1", grown, Meta{})
	if third == first {
		t.Fatal("expected rebuild after chunk count change")
	}

	builder.Invalidate("m1")
	fourth := builder.Build("m1", grown, Meta{})
	if fourth == third {
		t.Fatal("expected rebuild after invalidation")
	}
}
