package presenter

import (
	meetingdto "github.com/boardroomai/meeting-analyzer/internal/adapter/dto/meeting"
	querydto "github.com/boardroomai/meeting-analyzer/internal/adapter/dto/query"
	"github.com/boardroomai/meeting-analyzer/internal/domain/entities"
)

// ToMeetingResponse converts a Meeting entity to MeetingResponse DTO
func ToMeetingResponse(m *entities.Meeting) *meetingdto.MeetingResponse {
	if m == nil {
		return nil
	}
	return &meetingdto.MeetingResponse{
		MeetingID:    m.ID,
		Name:         m.Name,
		Status:       m.Status,
		Participants: []string(m.Participants),
		StartTime:    m.StartTime,
		EndTime:      m.EndTime,
	}
}

// ToTranscriptEntry converts a stored chunk to its UI-facing shape
func ToTranscriptEntry(c *entities.Chunk) meetingdto.TranscriptEntry {
	return meetingdto.TranscriptEntry{
		Speaker:   c.SpeakerOrUnknown(),
		Text:      c.Text,
		Timestamp: chunkTimestamp(c),
		Sentiment: c.Sentiment,
	}
}

// ToTranscriptEntries converts stored chunks preserving order
func ToTranscriptEntries(chunks []*entities.Chunk) []meetingdto.TranscriptEntry {
	entries := make([]meetingdto.TranscriptEntry, 0, len(chunks))
	for _, c := range chunks {
		entries = append(entries, ToTranscriptEntry(c))
	}
	return entries
}

// ToChunkRefs converts chunks referenced from a query answer
func ToChunkRefs(chunks []*entities.Chunk) []querydto.ChunkRef {
	refs := make([]querydto.ChunkRef, 0, len(chunks))
	for _, c := range chunks {
		refs = append(refs, querydto.ChunkRef{
			Speaker:   c.SpeakerOrUnknown(),
			Text:      c.Text,
			Timestamp: chunkTimestamp(c),
			Sentiment: c.Sentiment,
		})
	}
	return refs
}

// ToAnalysisResponse converts a MeetingAnalysis to its response shape.
// status distinguishes a completed analysis from the empty no-data payload.
func ToAnalysisResponse(a *entities.MeetingAnalysis, status string) *meetingdto.AnalysisResponse {
	if a == nil {
		return nil
	}
	return &meetingdto.AnalysisResponse{
		Status:             status,
		MeetingID:          a.MeetingID,
		ChunkCount:         a.ChunkCount,
		Summary:            a.Summary,
		KeyPoints:          a.KeyPoints,
		Decisions:          a.Decisions,
		ActionItems:        a.ActionItems,
		SentimentBreakdown: a.SentimentBreakdown,
		Speakers:           a.Speakers,
	}
}

// TruncateTranscription shortens long transcriptions for chunk responses
func TruncateTranscription(text string) string {
	if len(text) > 100 {
		return text[:100] + "..."
	}
	return text
}

func chunkTimestamp(c *entities.Chunk) int {
	if c.Timestamp != nil {
		return *c.Timestamp
	}
	return 0
}
