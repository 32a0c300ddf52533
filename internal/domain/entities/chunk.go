package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// TranscriptionFailedText is stored as chunk text when the speech-to-text
// engine could not produce a transcription for an audio chunk.
const TranscriptionFailedText = "[Transcription failed]"

// TranscriptionPendingText is stored as chunk text while an async
// transcription task for the chunk is still in flight.
const TranscriptionPendingText = "[Transcribing...]"

// Chunk is a single attributed utterance within a meeting. Chunks are
// immutable once stored except for background transcription filling in
// text and sentiment, matched by chunk ID.
type Chunk struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	MeetingID  string    `json:"meeting_id" gorm:"type:varchar(255);not null;index"`
	Speaker    string    `json:"speaker" gorm:"type:varchar(255)"`
	Text       string    `json:"text" gorm:"type:text"`
	Timestamp  *int      `json:"timestamp,omitempty"`
	Duration   float64   `json:"duration,omitempty"`
	Sentiment  string    `json:"sentiment,omitempty" gorm:"type:varchar(20)"`
	Emotion    string    `json:"emotion,omitempty" gorm:"type:varchar(50)"`
	Confidence float64   `json:"confidence,omitempty"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for GORM
func (Chunk) TableName() string {
	return "chunks"
}

// NewChunk creates a chunk with a fresh task token as its identifier.
// The timestamp is the ordinal position of the chunk within its meeting.
func NewChunk(meetingID, speaker, text string, timestamp int) *Chunk {
	ts := timestamp
	return &Chunk{
		ID:        uuid.New(),
		MeetingID: meetingID,
		Speaker:   speaker,
		Text:      text,
		Timestamp: &ts,
		CreatedAt: time.Now(),
	}
}

// SpeakerOrUnknown returns the trimmed speaker name, defaulting to "Unknown".
func (c *Chunk) SpeakerOrUnknown() string {
	speaker := strings.TrimSpace(c.Speaker)
	if speaker == "" {
		return "Unknown"
	}
	return speaker
}
