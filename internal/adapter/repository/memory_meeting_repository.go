package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/boardroomai/meeting-analyzer/internal/domain/entities"
	"github.com/boardroomai/meeting-analyzer/internal/domain/repositories"
)

// memoryMeetingRepository is the authoritative in-process meeting store.
// Chunk slices preserve insertion order, which is the chronological order
// of the transcript.
type memoryMeetingRepository struct {
	mu       sync.RWMutex
	meetings map[string]*entities.Meeting
	chunks   map[string][]*entities.Chunk
}

// NewMemoryMeetingRepository creates a new in-memory meeting repository
func NewMemoryMeetingRepository() repositories.MeetingRepository {
	return &memoryMeetingRepository{
		meetings: make(map[string]*entities.Meeting),
		chunks:   make(map[string][]*entities.Chunk),
	}
}

func (r *memoryMeetingRepository) Create(ctx context.Context, meeting *entities.Meeting) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.meetings[meeting.ID]; exists {
		return gorm.ErrDuplicatedKey
	}
	copied := *meeting
	r.meetings[meeting.ID] = &copied
	return nil
}

func (r *memoryMeetingRepository) FindByID(ctx context.Context, id string) (*entities.Meeting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	meeting, exists := r.meetings[id]
	if !exists {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *meeting
	return &copied, nil
}

func (r *memoryMeetingRepository) Update(ctx context.Context, meeting *entities.Meeting) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.meetings[meeting.ID]; !exists {
		return gorm.ErrRecordNotFound
	}
	copied := *meeting
	r.meetings[meeting.ID] = &copied
	return nil
}

func (r *memoryMeetingRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.meetings[id]; !exists {
		return gorm.ErrRecordNotFound
	}
	delete(r.meetings, id)
	delete(r.chunks, id)
	return nil
}

func (r *memoryMeetingRepository) List(ctx context.Context, filters repositories.MeetingFilters) ([]*entities.Meeting, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]*entities.Meeting, 0, len(r.meetings))
	for _, meeting := range r.meetings {
		if filters.Status != "" && meeting.Status != filters.Status {
			continue
		}
		copied := *meeting
		matched = append(matched, &copied)
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].StartTime.After(matched[j].StartTime)
	})

	total := int64(len(matched))
	if filters.Offset > 0 {
		if filters.Offset >= len(matched) {
			return []*entities.Meeting{}, total, nil
		}
		matched = matched[filters.Offset:]
	}
	if filters.Limit > 0 && filters.Limit < len(matched) {
		matched = matched[:filters.Limit]
	}
	return matched, total, nil
}

func (r *memoryMeetingRepository) AppendChunk(ctx context.Context, chunk *entities.Chunk) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.meetings[chunk.MeetingID]; !exists {
		return gorm.ErrRecordNotFound
	}
	copied := *chunk
	r.chunks[chunk.MeetingID] = append(r.chunks[chunk.MeetingID], &copied)
	return nil
}

func (r *memoryMeetingRepository) Chunks(ctx context.Context, meetingID string) ([]*entities.Chunk, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.chunks[meetingID]
	chunks := make([]*entities.Chunk, len(stored))
	for i, chunk := range stored {
		copied := *chunk
		chunks[i] = &copied
	}
	return chunks, nil
}

func (r *memoryMeetingRepository) ChunkCount(ctx context.Context, meetingID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.chunks[meetingID]), nil
}

func (r *memoryMeetingRepository) UpdateChunkText(ctx context.Context, chunkID uuid.UUID, text string, sentiment *entities.SentimentResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, chunks := range r.chunks {
		for _, chunk := range chunks {
			if chunk.ID == chunkID {
				chunk.Text = text
				if sentiment != nil {
					chunk.Sentiment = sentiment.Sentiment
					chunk.Emotion = sentiment.Emotion
					chunk.Confidence = sentiment.Confidence
				}
				return nil
			}
		}
	}
	return gorm.ErrRecordNotFound
}
