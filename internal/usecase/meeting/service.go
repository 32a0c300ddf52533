package meeting

import (
	"context"

	"github.com/boardroomai/meeting-analyzer/internal/domain/entities"
	"github.com/boardroomai/meeting-analyzer/internal/domain/repositories"
)

// Service defines the interface for the meeting use case
type Service interface {
	// StartMeeting creates a new meeting and resets per-meeting state
	StartMeeting(ctx context.Context, input StartMeetingInput) (*entities.Meeting, error)

	// EndMeeting closes an active meeting
	EndMeeting(ctx context.Context, meetingID string) (*EndMeetingOutput, error)

	// AddAudioChunk decodes, diarizes and transcribes an uploaded audio chunk
	AddAudioChunk(ctx context.Context, input AddAudioChunkInput) (*AudioChunkOutput, error)

	// AddTextChunk stores a directly submitted text chunk
	AddTextChunk(ctx context.Context, input AddTextChunkInput) (*TextChunkOutput, error)

	// GetMeeting retrieves metadata and high-level state for a meeting
	GetMeeting(ctx context.Context, meetingID string) (*MeetingDetail, error)

	// ListMeetings retrieves meetings with filters
	ListMeetings(ctx context.Context, filters repositories.MeetingFilters) ([]*entities.Meeting, int64, error)

	// GetTranscript retrieves the stored chunks of a meeting in order
	GetTranscript(ctx context.Context, meetingID string) ([]*entities.Chunk, error)

	// DeleteMeeting removes a meeting, its chunks and archived objects
	DeleteMeeting(ctx context.Context, meetingID string) error

	// AnalyzeMeeting produces summary, decisions, action items and sentiment
	AnalyzeMeeting(ctx context.Context, meetingID string) (*entities.MeetingAnalysis, error)

	// QueryTopic returns chunks matching a topic by keyword containment
	QueryTopic(ctx context.Context, meetingID, topic string) ([]*entities.Chunk, error)

	// SemanticQuery answers a natural-language query with supporting chunks
	SemanticQuery(ctx context.Context, meetingID, query string) (*QueryAnswer, error)

	// AskQuestion answers a free-form question about the meeting. hasData
	// reports whether any chunks exist yet.
	AskQuestion(ctx context.Context, meetingID, question string) (answer string, hasData bool, err error)

	// SpeakerStats returns per-speaker contribution counts and sentiment
	// histograms for a meeting
	SpeakerStats(ctx context.Context, meetingID string) ([]SpeakerContribution, error)

	// EnrollSpeaker registers a named voice profile for diarization
	EnrollSpeaker(ctx context.Context, input EnrollSpeakerInput) (*EnrollSpeakerOutput, error)

	// EnrolledSpeakers lists registered voice profiles
	EnrolledSpeakers(ctx context.Context) []string

	// RemoveSpeaker deletes a voice profile. Returns false when the
	// speaker was not enrolled.
	RemoveSpeaker(ctx context.Context, name string) bool
}

// Ensure MeetingService implements Service interface
var _ Service = (*MeetingService)(nil)
