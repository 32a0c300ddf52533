package meeting

import (
	"time"

	"github.com/boardroomai/meeting-analyzer/internal/domain/entities"
)

// StartMeetingResponse represents the response after starting a meeting
type StartMeetingResponse struct {
	Status       string    `json:"status"`
	MeetingID    string    `json:"meeting_id"`
	MeetingName  string    `json:"meeting_name"`
	StartTime    time.Time `json:"start_time"`
	Participants []string  `json:"participants"`
}

// EndMeetingResponse represents the response after ending a meeting
type EndMeetingResponse struct {
	Status     string    `json:"status"`
	MeetingID  string    `json:"meeting_id"`
	ChunkCount int       `json:"chunk_count"`
	EndTime    time.Time `json:"end_time"`
}

// AudioChunkResponse represents the response after an audio chunk upload
type AudioChunkResponse struct {
	Status        string  `json:"status"`
	ChunkID       string  `json:"chunk_id,omitempty"`
	Speaker       string  `json:"speaker,omitempty"`
	Confidence    float64 `json:"confidence"`
	Transcription string  `json:"transcription,omitempty"`
	Sentiment     string  `json:"sentiment,omitempty"`
	Emotion       string  `json:"emotion,omitempty"`
}

// TextChunkResponse represents the response after a text chunk submission
type TextChunkResponse struct {
	Status    string `json:"status"`
	MeetingID string `json:"meeting_id"`
	ChunkID   string `json:"chunk_id"`
	Speaker   string `json:"speaker"`
	Sentiment string `json:"sentiment,omitempty"`
}

// TranscriptEntry is one chunk rendered for UI consumption
type TranscriptEntry struct {
	Speaker   string `json:"speaker"`
	Text      string `json:"text"`
	Timestamp int    `json:"timestamp"`
	Sentiment string `json:"sentiment,omitempty"`
}

// TranscriptResponse represents a full meeting transcript
type TranscriptResponse struct {
	MeetingID  string            `json:"meeting_id"`
	Transcript []TranscriptEntry `json:"transcript"`
	EntryCount int               `json:"entry_count"`
}

// AnalysisResponse represents a complete meeting analysis
type AnalysisResponse struct {
	Status             string                                `json:"status"`
	MeetingID          string                                `json:"meeting_id"`
	ChunkCount         int                                   `json:"chunk_count"`
	Summary            string                                `json:"summary"`
	KeyPoints          []string                              `json:"key_points"`
	Decisions          []entities.Decision                   `json:"decisions"`
	ActionItems        []entities.ActionItem                 `json:"action_items"`
	SentimentBreakdown map[string]*entities.SpeakerSentiment `json:"sentiment_breakdown"`
	Speakers           []string                              `json:"speakers"`
}

// MeetingResponse represents a meeting in list responses
type MeetingResponse struct {
	MeetingID    string     `json:"meeting_id"`
	Name         string     `json:"name"`
	Status       string     `json:"status"`
	Participants []string   `json:"participants"`
	StartTime    time.Time  `json:"start_time"`
	EndTime      *time.Time `json:"end_time,omitempty"`
}

// MeetingListResponse represents a paginated list of meetings
type MeetingListResponse struct {
	Status   string             `json:"status"`
	Count    int64              `json:"count"`
	Meetings []*MeetingResponse `json:"meetings"`
}

// MeetingDetailResponse represents metadata plus state for one meeting
type MeetingDetailResponse struct {
	MeetingID         string            `json:"meeting_id"`
	Metadata          *MeetingResponse  `json:"metadata"`
	TranscriptEntries int               `json:"transcript_entries"`
	ChunkCount        int               `json:"chunk_count"`
	HasAnalysis       bool              `json:"has_analysis"`
	Analysis          *AnalysisResponse `json:"analysis,omitempty"`
}

// DeleteMeetingResponse represents the response after deleting a meeting
type DeleteMeetingResponse struct {
	Status    string `json:"status"`
	MeetingID string `json:"meeting_id"`
}
