package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/boardroomai/meeting-analyzer/internal/domain/entities"
	"github.com/boardroomai/meeting-analyzer/internal/domain/repositories"
)

// meetingRepository implements MeetingRepository on Postgres via GORM
type meetingRepository struct {
	db *gorm.DB
}

// NewMeetingRepository creates a new Postgres-backed meeting repository
func NewMeetingRepository(db *gorm.DB) repositories.MeetingRepository {
	return &meetingRepository{db: db}
}

// Create creates a new meeting
func (r *meetingRepository) Create(ctx context.Context, meeting *entities.Meeting) error {
	return r.db.WithContext(ctx).Create(meeting).Error
}

// FindByID retrieves a meeting by its ID
func (r *meetingRepository) FindByID(ctx context.Context, id string) (*entities.Meeting, error) {
	var meeting entities.Meeting
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&meeting).Error

	if err != nil {
		return nil, err
	}
	return &meeting, nil
}

// Update updates an existing meeting
func (r *meetingRepository) Update(ctx context.Context, meeting *entities.Meeting) error {
	return r.db.WithContext(ctx).Save(meeting).Error
}

// Delete removes a meeting and all of its chunks
func (r *meetingRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("meeting_id = ?", id).Delete(&entities.Chunk{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&entities.Meeting{}).Error
	})
}

// List retrieves meetings with filters and pagination
func (r *meetingRepository) List(ctx context.Context, filters repositories.MeetingFilters) ([]*entities.Meeting, int64, error) {
	var meetings []*entities.Meeting
	var total int64

	query := r.db.WithContext(ctx).Model(&entities.Meeting{})

	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("start_time DESC")
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	if err := query.Find(&meetings).Error; err != nil {
		return nil, 0, err
	}
	return meetings, total, nil
}

// AppendChunk stores a chunk for a meeting
func (r *meetingRepository) AppendChunk(ctx context.Context, chunk *entities.Chunk) error {
	return r.db.WithContext(ctx).Create(chunk).Error
}

// Chunks retrieves all chunks for a meeting in insertion order
func (r *meetingRepository) Chunks(ctx context.Context, meetingID string) ([]*entities.Chunk, error) {
	var chunks []*entities.Chunk
	err := r.db.WithContext(ctx).
		Where("meeting_id = ?", meetingID).
		Order("created_at ASC, timestamp ASC").
		Find(&chunks).Error

	if err != nil {
		return nil, err
	}
	return chunks, nil
}

// ChunkCount returns the number of chunks stored for a meeting
func (r *meetingRepository) ChunkCount(ctx context.Context, meetingID string) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.Chunk{}).
		Where("meeting_id = ?", meetingID).
		Count(&count).Error

	if err != nil {
		return 0, err
	}
	return int(count), nil
}

// UpdateChunkText fills in text and sentiment on an existing chunk
func (r *meetingRepository) UpdateChunkText(ctx context.Context, chunkID uuid.UUID, text string, sentiment *entities.SentimentResult) error {
	updates := map[string]any{"text": text}
	if sentiment != nil {
		updates["sentiment"] = sentiment.Sentiment
		updates["emotion"] = sentiment.Emotion
		updates["confidence"] = sentiment.Confidence
	}

	result := r.db.WithContext(ctx).
		Model(&entities.Chunk{}).
		Where("id = ?", chunkID).
		Updates(updates)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
