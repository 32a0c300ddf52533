package meeting

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	apperrors "github.com/boardroomai/meeting-analyzer/errors"
	"github.com/boardroomai/meeting-analyzer/internal/domain/entities"
	"github.com/boardroomai/meeting-analyzer/internal/domain/repositories"
	"github.com/boardroomai/meeting-analyzer/internal/infrastructure/audio"
	"github.com/boardroomai/meeting-analyzer/internal/infrastructure/diarize"
	"github.com/boardroomai/meeting-analyzer/internal/usecase/orchestration"
	"github.com/boardroomai/meeting-analyzer/internal/usecase/transcription"
)

// Archiver persists raw audio and transcripts to object storage.
// Archival is best-effort; failures never fail the request.
type Archiver interface {
	ArchiveChunk(ctx context.Context, meetingID, chunkID string, raw []byte) error
	ArchiveTranscript(ctx context.Context, meetingID, transcript string) error
	DeleteMeetingObjects(ctx context.Context, meetingID string) error
}

// TranscriptionQueue accepts chunks for background transcription
type TranscriptionQueue interface {
	Submit(task transcription.Task) error
}

// MeetingService handles meeting business logic
type MeetingService struct {
	repo        repositories.MeetingRepository
	orch        *orchestration.Orchestrator
	diarizer    *diarize.Diarizer
	archive     Archiver           // may be nil
	worker      TranscriptionQueue // may be nil, disables the async path
	minDuration time.Duration
	logger      *zap.Logger
}

// NewMeetingService creates a new meeting service. minDuration is the
// shortest meeting length that still counts as having audio.
func NewMeetingService(
	repo repositories.MeetingRepository,
	orch *orchestration.Orchestrator,
	diarizer *diarize.Diarizer,
	archive Archiver,
	worker TranscriptionQueue,
	minDuration time.Duration,
	logger *zap.Logger,
) *MeetingService {
	if minDuration <= 0 {
		minDuration = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MeetingService{
		repo:        repo,
		orch:        orch,
		diarizer:    diarizer,
		archive:     archive,
		worker:      worker,
		minDuration: minDuration,
		logger:      logger,
	}
}

// StartMeetingInput represents input for starting a meeting
type StartMeetingInput struct {
	Name         string
	Participants []string
}

// StartMeeting creates a new meeting and resets per-meeting state
func (s *MeetingService) StartMeeting(ctx context.Context, input StartMeetingInput) (*entities.Meeting, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.ErrInvalidArgument("meeting_name is required")
	}

	participants := make([]string, 0, len(input.Participants))
	for _, p := range input.Participants {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			participants = append(participants, trimmed)
		}
	}

	m := entities.NewMeeting(name, participants, time.Now())
	if err := s.repo.Create(ctx, m); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrInvalidArgument(fmt.Sprintf("meeting %s already exists", m.ID))
		}
		return nil, apperrors.ErrDBQueryFailed("create meeting", err)
	}

	s.orch.ResetMeetingState(m.ID)
	s.diarizer.Reset()

	s.logger.Info("started meeting", zap.String("meeting_id", m.ID))
	return m, nil
}

// EndMeetingOutput is the result of ending a meeting
type EndMeetingOutput struct {
	Meeting    *entities.Meeting
	ChunkCount int
}

// EndMeeting closes an active meeting. Meetings shorter than the minimum
// duration or with no stored chunks end with status no_audio.
func (s *MeetingService) EndMeeting(ctx context.Context, meetingID string) (*EndMeetingOutput, error) {
	m, err := s.findMeeting(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	if m.Ended() {
		return nil, apperrors.ErrMeetingAlreadyEnded(meetingID)
	}

	chunkCount, err := s.repo.ChunkCount(ctx, meetingID)
	if err != nil {
		return nil, apperrors.ErrDBQueryFailed("count chunks", err)
	}

	now := time.Now()
	m.EndTime = &now
	m.Status = entities.MeetingStatusCompleted
	if chunkCount == 0 || m.Duration(now) < s.minDuration {
		m.Status = entities.MeetingStatusNoAudio
	}

	if err := s.repo.Update(ctx, m); err != nil {
		return nil, apperrors.ErrDBQueryFailed("update meeting", err)
	}

	if s.archive != nil && chunkCount > 0 {
		if chunks, chunksErr := s.repo.Chunks(ctx, meetingID); chunksErr == nil {
			if archiveErr := s.archive.ArchiveTranscript(ctx, meetingID, buildFullText(chunks)); archiveErr != nil {
				s.logger.Warn("failed to archive transcript",
					zap.String("meeting_id", meetingID),
					zap.Error(archiveErr))
			}
		}
	}

	s.logger.Info("ended meeting",
		zap.String("meeting_id", meetingID),
		zap.String("status", m.Status),
		zap.Int("chunk_count", chunkCount))
	return &EndMeetingOutput{Meeting: m, ChunkCount: chunkCount}, nil
}

// AddAudioChunkInput represents an uploaded audio chunk
type AddAudioChunkInput struct {
	MeetingID string
	Raw       []byte
	// Async defers transcription to the background worker; the chunk is
	// stored immediately with pending text and updated by ID later.
	Async bool
}

// Audio chunk processing statuses
const (
	StatusChunkProcessed = "chunk processed"
	StatusChunkAccepted  = "chunk accepted"
	StatusChunkStored    = "chunk stored"
	StatusSilenceSkipped = "silence skipped"
)

// AudioChunkOutput is the result of processing an audio chunk
type AudioChunkOutput struct {
	Status        string
	ChunkID       string
	Speaker       string
	Confidence    float64
	Transcription string
	Sentiment     *entities.SentimentResult
}

// AddAudioChunk decodes an uploaded audio chunk, attributes it to a
// speaker and transcribes it, either synchronously or via the background
// worker. Raw bytes are archived best-effort.
func (s *MeetingService) AddAudioChunk(ctx context.Context, input AddAudioChunkInput) (*AudioChunkOutput, error) {
	m, err := s.findMeeting(ctx, input.MeetingID)
	if err != nil {
		return nil, err
	}
	if m.Ended() {
		return nil, apperrors.ErrMeetingAlreadyEnded(m.ID)
	}
	if len(input.Raw) == 0 {
		return nil, apperrors.ErrEmptyAudioChunk()
	}

	samples, err := audio.Decode(ctx, input.Raw)
	if err != nil {
		// ffmpeg unavailable or unrecognized container: assume raw 16-bit PCM
		samples = audio.DecodePCM16(input.Raw)
	}
	if len(samples) == 0 {
		return nil, apperrors.ErrEmptyAudioChunk()
	}
	if audio.IsSilent(samples) {
		s.logger.Debug("skipped silent chunk", zap.String("meeting_id", m.ID))
		return &AudioChunkOutput{Status: StatusSilenceSkipped}, nil
	}

	speaker, confidence := s.diarizer.DetectSpeaker(samples)

	ordinal, err := s.repo.ChunkCount(ctx, m.ID)
	if err != nil {
		return nil, apperrors.ErrDBQueryFailed("count chunks", err)
	}

	if input.Async && s.worker != nil {
		chunk := entities.NewChunk(m.ID, speaker, entities.TranscriptionPendingText, ordinal)
		chunk.Duration = audio.Duration(samples)
		if err := s.repo.AppendChunk(ctx, chunk); err != nil {
			return nil, apperrors.ErrDBQueryFailed("append chunk", err)
		}

		task := transcription.Task{
			ChunkID:    chunk.ID,
			MeetingID:  m.ID,
			Speaker:    speaker,
			Samples:    samples,
			SampleRate: audio.SampleRate,
		}
		if submitErr := s.worker.Submit(task); submitErr != nil {
			s.logger.Warn("background submit failed, transcribing inline",
				zap.String("meeting_id", m.ID),
				zap.Error(submitErr))
			result := s.orch.ProcessAudioChunk(ctx, samples, speaker)
			if updateErr := s.repo.UpdateChunkText(ctx, chunk.ID, result.Transcription, result.Sentiment); updateErr != nil {
				return nil, apperrors.ErrDBQueryFailed("update chunk", updateErr)
			}
			s.archiveChunk(ctx, m.ID, chunk.ID.String(), input.Raw)
			return &AudioChunkOutput{
				Status:        StatusChunkProcessed,
				ChunkID:       chunk.ID.String(),
				Speaker:       speaker,
				Confidence:    confidence,
				Transcription: result.Transcription,
				Sentiment:     result.Sentiment,
			}, nil
		}

		s.archiveChunk(ctx, m.ID, chunk.ID.String(), input.Raw)
		return &AudioChunkOutput{
			Status:     StatusChunkAccepted,
			ChunkID:    chunk.ID.String(),
			Speaker:    speaker,
			Confidence: confidence,
		}, nil
	}

	result := s.orch.ProcessAudioChunk(ctx, samples, speaker)

	chunk := entities.NewChunk(m.ID, speaker, result.Transcription, ordinal)
	chunk.Duration = audio.Duration(samples)
	applySentiment(chunk, result.Sentiment)
	if err := s.repo.AppendChunk(ctx, chunk); err != nil {
		return nil, apperrors.ErrDBQueryFailed("append chunk", err)
	}

	s.archiveChunk(ctx, m.ID, chunk.ID.String(), input.Raw)

	s.logger.Info("processed audio chunk",
		zap.String("meeting_id", m.ID),
		zap.String("speaker", speaker))
	return &AudioChunkOutput{
		Status:        StatusChunkProcessed,
		ChunkID:       chunk.ID.String(),
		Speaker:       speaker,
		Confidence:    confidence,
		Transcription: result.Transcription,
		Sentiment:     result.Sentiment,
	}, nil
}

// AddTextChunkInput represents a directly submitted text chunk
type AddTextChunkInput struct {
	MeetingID string
	Speaker   string
	Text      string
}

// TextChunkOutput is the result of storing a text chunk
type TextChunkOutput struct {
	Status    string
	MeetingID string
	ChunkID   string
	Speaker   string
	Sentiment *entities.SentimentResult
}

// AddTextChunk stores a text chunk and tracks its sentiment
func (s *MeetingService) AddTextChunk(ctx context.Context, input AddTextChunkInput) (*TextChunkOutput, error) {
	speaker := strings.TrimSpace(input.Speaker)
	text := strings.TrimSpace(input.Text)
	if speaker == "" {
		return nil, apperrors.ErrInvalidArgument("speaker is required")
	}
	if text == "" {
		return nil, apperrors.ErrInvalidArgument("text is required")
	}

	m, err := s.findMeeting(ctx, input.MeetingID)
	if err != nil {
		return nil, err
	}
	if m.Ended() {
		return nil, apperrors.ErrMeetingAlreadyEnded(m.ID)
	}

	ordinal, err := s.repo.ChunkCount(ctx, m.ID)
	if err != nil {
		return nil, apperrors.ErrDBQueryFailed("count chunks", err)
	}

	result := s.orch.ProcessTextChunk(ctx, speaker, text)

	chunk := entities.NewChunk(m.ID, speaker, text, ordinal)
	applySentiment(chunk, result.Sentiment)
	if err := s.repo.AppendChunk(ctx, chunk); err != nil {
		return nil, apperrors.ErrDBQueryFailed("append chunk", err)
	}

	s.logger.Info("stored text chunk",
		zap.String("meeting_id", m.ID),
		zap.String("speaker", speaker))
	return &TextChunkOutput{
		Status:    StatusChunkStored,
		MeetingID: m.ID,
		ChunkID:   chunk.ID.String(),
		Speaker:   speaker,
		Sentiment: result.Sentiment,
	}, nil
}

// MeetingDetail is metadata plus high-level state for one meeting
type MeetingDetail struct {
	Meeting     *entities.Meeting
	ChunkCount  int
	HasAnalysis bool
	Analysis    *entities.MeetingAnalysis
}

// GetMeeting retrieves metadata and high-level state for a meeting
func (s *MeetingService) GetMeeting(ctx context.Context, meetingID string) (*MeetingDetail, error) {
	m, err := s.findMeeting(ctx, meetingID)
	if err != nil {
		return nil, err
	}

	chunkCount, err := s.repo.ChunkCount(ctx, meetingID)
	if err != nil {
		return nil, apperrors.ErrDBQueryFailed("count chunks", err)
	}

	analysis := s.orch.CachedAnalysis(meetingID)
	return &MeetingDetail{
		Meeting:     m,
		ChunkCount:  chunkCount,
		HasAnalysis: analysis != nil,
		Analysis:    analysis,
	}, nil
}

// ListMeetings retrieves meetings with filters
func (s *MeetingService) ListMeetings(ctx context.Context, filters repositories.MeetingFilters) ([]*entities.Meeting, int64, error) {
	meetings, total, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, 0, apperrors.ErrDBQueryFailed("list meetings", err)
	}
	return meetings, total, nil
}

// GetTranscript retrieves the stored chunks of a meeting in order
func (s *MeetingService) GetTranscript(ctx context.Context, meetingID string) ([]*entities.Chunk, error) {
	if _, err := s.findMeeting(ctx, meetingID); err != nil {
		return nil, err
	}
	chunks, err := s.repo.Chunks(ctx, meetingID)
	if err != nil {
		return nil, apperrors.ErrDBQueryFailed("load chunks", err)
	}
	return chunks, nil
}

// DeleteMeeting removes a meeting, its chunks and archived objects
func (s *MeetingService) DeleteMeeting(ctx context.Context, meetingID string) error {
	if _, err := s.findMeeting(ctx, meetingID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, meetingID); err != nil {
		return apperrors.ErrDBQueryFailed("delete meeting", err)
	}

	s.orch.ResetMeetingState(meetingID)

	if s.archive != nil {
		if err := s.archive.DeleteMeetingObjects(ctx, meetingID); err != nil {
			s.logger.Warn("failed to delete archived objects",
				zap.String("meeting_id", meetingID),
				zap.Error(err))
		}
	}

	s.logger.Info("deleted meeting", zap.String("meeting_id", meetingID))
	return nil
}

// AnalyzeMeeting produces summary, decisions, action items and sentiment.
// A meeting with no chunks yields an empty analysis payload.
func (s *MeetingService) AnalyzeMeeting(ctx context.Context, meetingID string) (*entities.MeetingAnalysis, error) {
	m, err := s.findMeeting(ctx, meetingID)
	if err != nil {
		return nil, err
	}

	chunks, err := s.repo.Chunks(ctx, meetingID)
	if err != nil {
		return nil, apperrors.ErrDBQueryFailed("load chunks", err)
	}
	if len(chunks) == 0 {
		return &entities.MeetingAnalysis{
			MeetingID:          meetingID,
			KeyPoints:          []string{},
			Decisions:          []entities.Decision{},
			ActionItems:        []entities.ActionItem{},
			SentimentBreakdown: map[string]*entities.SpeakerSentiment{},
			Speakers:           []string{},
		}, nil
	}

	return s.orch.AnalyzeMeeting(ctx, meetingID, chunks, buildFullText(chunks), metaFor(m)), nil
}

// QueryTopic returns chunks matching a topic by keyword containment
func (s *MeetingService) QueryTopic(ctx context.Context, meetingID, topic string) ([]*entities.Chunk, error) {
	if _, err := s.findMeeting(ctx, meetingID); err != nil {
		return nil, err
	}
	chunks, err := s.repo.Chunks(ctx, meetingID)
	if err != nil {
		return nil, apperrors.ErrDBQueryFailed("load chunks", err)
	}
	return s.orch.QueryTopic(chunks, topic), nil
}

// QueryAnswer is the result of a semantic query
type QueryAnswer struct {
	Answer         string
	RelevantChunks []*entities.Chunk
}

// SemanticQuery answers a natural-language query with supporting chunks
func (s *MeetingService) SemanticQuery(ctx context.Context, meetingID, query string) (*QueryAnswer, error) {
	m, err := s.findMeeting(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	chunks, err := s.repo.Chunks(ctx, meetingID)
	if err != nil {
		return nil, apperrors.ErrDBQueryFailed("load chunks", err)
	}

	relevant, answer := s.orch.SemanticQuery(ctx, meetingID, chunks, query, metaFor(m))
	return &QueryAnswer{Answer: answer, RelevantChunks: relevant}, nil
}

// AskQuestion answers a free-form question about the meeting
func (s *MeetingService) AskQuestion(ctx context.Context, meetingID, question string) (string, bool, error) {
	m, err := s.findMeeting(ctx, meetingID)
	if err != nil {
		return "", false, err
	}
	chunks, err := s.repo.Chunks(ctx, meetingID)
	if err != nil {
		return "", false, apperrors.ErrDBQueryFailed("load chunks", err)
	}

	answer := s.orch.AskQuestion(ctx, meetingID, chunks, question, metaFor(m))
	return answer, len(chunks) > 0, nil
}

// SpeakerContribution summarizes one speaker's activity in a meeting
type SpeakerContribution struct {
	Name          string         `json:"name"`
	Contributions int            `json:"contributions"`
	Sentiments    map[string]int `json:"sentiment_breakdown"`
}

// SpeakerStats returns per-speaker contribution counts and sentiment
// histograms, sorted by speaker name.
func (s *MeetingService) SpeakerStats(ctx context.Context, meetingID string) ([]SpeakerContribution, error) {
	if _, err := s.findMeeting(ctx, meetingID); err != nil {
		return nil, err
	}
	chunks, err := s.repo.Chunks(ctx, meetingID)
	if err != nil {
		return nil, apperrors.ErrDBQueryFailed("load chunks", err)
	}

	stats := make(map[string]*SpeakerContribution)
	for _, chunk := range chunks {
		speaker := chunk.SpeakerOrUnknown()
		entry, ok := stats[speaker]
		if !ok {
			entry = &SpeakerContribution{Name: speaker, Sentiments: make(map[string]int)}
			stats[speaker] = entry
		}
		entry.Contributions++

		sentiment := chunk.Sentiment
		if sentiment == "" {
			sentiment = "neutral"
		}
		entry.Sentiments[sentiment]++
	}

	result := make([]SpeakerContribution, 0, len(stats))
	for _, entry := range stats {
		result = append(result, *entry)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// EnrollSpeakerInput represents a voice enrollment request
type EnrollSpeakerInput struct {
	Name string
	Raw  []byte
}

// EnrollSpeakerOutput is the result of a voice enrollment
type EnrollSpeakerOutput struct {
	SpeakerName   string
	AudioDuration float64
}

// EnrollSpeaker registers a named voice profile for diarization
func (s *MeetingService) EnrollSpeaker(ctx context.Context, input EnrollSpeakerInput) (*EnrollSpeakerOutput, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.ErrInvalidArgument("speaker_name is required")
	}
	if len(input.Raw) == 0 {
		return nil, apperrors.ErrEmptyAudioChunk()
	}

	samples, err := audio.Decode(ctx, input.Raw)
	if err != nil {
		samples = audio.DecodePCM16(input.Raw)
	}
	if len(samples) == 0 {
		return nil, apperrors.ErrEmptyAudioChunk()
	}

	s.diarizer.EnrollFromAudio(name, samples)

	s.logger.Info("enrolled speaker", zap.String("speaker", name))
	return &EnrollSpeakerOutput{
		SpeakerName:   name,
		AudioDuration: audio.Duration(samples),
	}, nil
}

// EnrolledSpeakers lists registered voice profiles
func (s *MeetingService) EnrolledSpeakers(_ context.Context) []string {
	names := s.diarizer.EnrolledSpeakers()
	sort.Strings(names)
	return names
}

// RemoveSpeaker deletes a voice profile
func (s *MeetingService) RemoveSpeaker(_ context.Context, name string) bool {
	return s.diarizer.Remove(strings.TrimSpace(name))
}

func (s *MeetingService) findMeeting(ctx context.Context, meetingID string) (*entities.Meeting, error) {
	m, err := s.repo.FindByID(ctx, meetingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrMeetingNotFound(meetingID)
		}
		return nil, apperrors.ErrDBQueryFailed("find meeting", err)
	}
	return m, nil
}

func (s *MeetingService) archiveChunk(ctx context.Context, meetingID, chunkID string, raw []byte) {
	if s.archive == nil {
		return
	}
	if err := s.archive.ArchiveChunk(ctx, meetingID, chunkID, raw); err != nil {
		s.logger.Warn("failed to archive audio chunk",
			zap.String("meeting_id", meetingID),
			zap.String("chunk_id", chunkID),
			zap.Error(err))
	}
}

func applySentiment(chunk *entities.Chunk, sentiment *entities.SentimentResult) {
	if sentiment == nil {
		return
	}
	chunk.Sentiment = sentiment.Sentiment
	chunk.Emotion = sentiment.Emotion
	chunk.Confidence = sentiment.Confidence
}

func metaFor(m *entities.Meeting) orchestration.Meta {
	return orchestration.Meta{
		Name:         m.Name,
		Status:       m.Status,
		Participants: []string(m.Participants),
	}
}

func buildFullText(chunks []*entities.Chunk) string {
	parts := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		parts = append(parts, fmt.Sprintf("%s: %s", chunk.SpeakerOrUnknown(), chunk.Text))
	}
	return strings.Join(parts, "\n")
}
