package repositories

import (
	"context"

	"github.com/boardroomai/meeting-analyzer/internal/domain/entities"
	"github.com/google/uuid"
)

// MeetingRepository defines the interface for meeting and chunk data access
type MeetingRepository interface {
	// Create creates a new meeting
	Create(ctx context.Context, meeting *entities.Meeting) error

	// FindByID retrieves a meeting by its ID
	FindByID(ctx context.Context, id string) (*entities.Meeting, error)

	// Update updates an existing meeting
	Update(ctx context.Context, meeting *entities.Meeting) error

	// Delete removes a meeting and all of its chunks
	Delete(ctx context.Context, id string) error

	// List retrieves meetings with filters and pagination
	List(ctx context.Context, filters MeetingFilters) ([]*entities.Meeting, int64, error)

	// AppendChunk stores a chunk for a meeting. Insertion order is the
	// chronological order of the transcript.
	AppendChunk(ctx context.Context, chunk *entities.Chunk) error

	// Chunks retrieves all chunks for a meeting in insertion order
	Chunks(ctx context.Context, meetingID string) ([]*entities.Chunk, error)

	// ChunkCount returns the number of chunks stored for a meeting
	ChunkCount(ctx context.Context, meetingID string) (int, error)

	// UpdateChunkText fills in text and sentiment on an existing chunk,
	// identified by its task token
	UpdateChunkText(ctx context.Context, chunkID uuid.UUID, text string, sentiment *entities.SentimentResult) error
}

// MeetingFilters represents filter options for listing meetings
type MeetingFilters struct {
	Status string
	Limit  int
	Offset int
}
