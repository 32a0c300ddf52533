package entities

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"gorm.io/datatypes"
)

// Meeting status constants
const (
	MeetingStatusActive    = "active"
	MeetingStatusCompleted = "completed"
	MeetingStatusNoAudio   = "no_audio"
)

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// Meeting is the stored meeting model. The ID encodes the start time and a
// filesystem-safe rendition of the name so exported artifacts sort naturally.
type Meeting struct {
	ID           string                          `json:"id" gorm:"type:varchar(255);primary_key"`
	Name         string                          `json:"name" gorm:"type:varchar(500);not null"`
	Status       string                          `json:"status" gorm:"type:varchar(20);default:'active'"`
	Participants datatypes.JSONSlice[string]     `json:"participants,omitempty" gorm:"type:jsonb"`
	StartTime    time.Time                       `json:"start_time"`
	EndTime      *time.Time                      `json:"end_time,omitempty"`
	Metadata     datatypes.JSONType[map[string]any] `json:"metadata,omitempty" gorm:"type:jsonb"`
	CreatedAt    time.Time                       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time                       `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Meeting) TableName() string {
	return "meetings"
}

// NewMeeting creates an active meeting with a time-prefixed identifier.
func NewMeeting(name string, participants []string, now time.Time) *Meeting {
	safeName := unsafeNameChars.ReplaceAllString(strings.TrimSpace(name), "_")
	if safeName == "" {
		safeName = "meeting"
	}
	id := fmt.Sprintf("%s_%s", now.Format("20060102_150405"), safeName)

	return &Meeting{
		ID:           id,
		Name:         name,
		Status:       MeetingStatusActive,
		Participants: datatypes.NewJSONSlice(participants),
		StartTime:    now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Duration returns elapsed meeting time, using now for still-active meetings.
func (m *Meeting) Duration(now time.Time) time.Duration {
	if m.EndTime != nil {
		return m.EndTime.Sub(m.StartTime)
	}
	return now.Sub(m.StartTime)
}

// Ended reports whether the meeting has already been ended.
func (m *Meeting) Ended() bool {
	return m.Status != MeetingStatusActive
}

// MeetingContext is the metadata block handed to the LLM layer alongside
// the transcript text.
type MeetingContext struct {
	MeetingID    string   `json:"meeting_id"`
	Name         string   `json:"meeting_name,omitempty"`
	Status       string   `json:"status,omitempty"`
	ChunkCount   int      `json:"chunk_count"`
	SpeakerCount int      `json:"speaker_count"`
	Speakers     []string `json:"speakers"`
	Participants []string `json:"participants,omitempty"`
}
