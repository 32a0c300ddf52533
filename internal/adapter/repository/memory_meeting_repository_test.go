package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/boardroomai/meeting-analyzer/internal/domain/entities"
	"github.com/boardroomai/meeting-analyzer/internal/domain/repositories"
)

func TestMemoryRepositoryCreateAndFind(t *testing.T) {
	repo := NewMemoryMeetingRepository()
	ctx := context.Background()

	meeting := entities.NewMeeting("standup", []string{"alice"}, time.Now())
	require.NoError(t, repo.Create(ctx, meeting))

	found, err := repo.FindByID(ctx, meeting.ID)
	require.NoError(t, err)
	require.Equal(t, meeting.ID, found.ID)
	require.Equal(t, entities.MeetingStatusActive, found.Status)

	err = repo.Create(ctx, meeting)
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	_, err = repo.FindByID(ctx, "missing")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestMemoryRepositoryReturnsCopies(t *testing.T) {
	repo := NewMemoryMeetingRepository()
	ctx := context.Background()

	meeting := entities.NewMeeting("standup", nil, time.Now())
	require.NoError(t, repo.Create(ctx, meeting))

	found, err := repo.FindByID(ctx, meeting.ID)
	require.NoError(t, err)
	found.Status = entities.MeetingStatusCompleted

	again, err := repo.FindByID(ctx, meeting.ID)
	require.NoError(t, err)
	require.Equal(t, entities.MeetingStatusActive, again.Status)
}

func TestMemoryRepositoryUpdateAndDelete(t *testing.T) {
	repo := NewMemoryMeetingRepository()
	ctx := context.Background()

	meeting := entities.NewMeeting("standup", nil, time.Now())
	require.NoError(t, repo.Create(ctx, meeting))
	require.NoError(t, repo.AppendChunk(ctx, entities.NewChunk(meeting.ID, "alice", "hello", 0)))

	meeting.Status = entities.MeetingStatusCompleted
	require.NoError(t, repo.Update(ctx, meeting))

	found, err := repo.FindByID(ctx, meeting.ID)
	require.NoError(t, err)
	require.Equal(t, entities.MeetingStatusCompleted, found.Status)

	require.NoError(t, repo.Delete(ctx, meeting.ID))
	_, err = repo.FindByID(ctx, meeting.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	chunks, err := repo.Chunks(ctx, meeting.ID)
	require.NoError(t, err)
	require.Empty(t, chunks)

	require.ErrorIs(t, repo.Update(ctx, meeting), gorm.ErrRecordNotFound)
	require.ErrorIs(t, repo.Delete(ctx, meeting.ID), gorm.ErrRecordNotFound)
}

func TestMemoryRepositoryListFiltersAndPaginates(t *testing.T) {
	repo := NewMemoryMeetingRepository()
	ctx := context.Background()

	base := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		m := entities.NewMeeting("standup", nil, base.Add(time.Duration(i)*time.Minute))
		if i == 2 {
			m.Status = entities.MeetingStatusCompleted
		}
		require.NoError(t, repo.Create(ctx, m))
	}

	all, total, err := repo.List(ctx, repositories.MeetingFilters{})
	require.NoError(t, err)
	require.EqualValues(t, 3, total)
	require.Len(t, all, 3)
	// newest first
	require.True(t, all[0].StartTime.After(all[1].StartTime))

	completed, total, err := repo.List(ctx, repositories.MeetingFilters{Status: entities.MeetingStatusCompleted})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Len(t, completed, 1)

	page, total, err := repo.List(ctx, repositories.MeetingFilters{Offset: 1, Limit: 1})
	require.NoError(t, err)
	require.EqualValues(t, 3, total)
	require.Len(t, page, 1)
	require.Equal(t, all[1].ID, page[0].ID)

	empty, _, err := repo.List(ctx, repositories.MeetingFilters{Offset: 10})
	require.NoError(t, err)
	require.Empty(t, empty)
}

func TestMemoryRepositoryChunks(t *testing.T) {
	repo := NewMemoryMeetingRepository()
	ctx := context.Background()

	meeting := entities.NewMeeting("standup", nil, time.Now())
	require.NoError(t, repo.Create(ctx, meeting))

	first := entities.NewChunk(meeting.ID, "alice", "hello", 0)
	second := entities.NewChunk(meeting.ID, "bob", "hi there", 1)
	require.NoError(t, repo.AppendChunk(ctx, first))
	require.NoError(t, repo.AppendChunk(ctx, second))

	orphan := entities.NewChunk("missing", "alice", "lost", 0)
	require.ErrorIs(t, repo.AppendChunk(ctx, orphan), gorm.ErrRecordNotFound)

	chunks, err := repo.Chunks(ctx, meeting.ID)
	require.NoError(t, err)
	require.Len(t, chunks, 2)
	require.Equal(t, "alice", chunks[0].Speaker)
	require.Equal(t, "bob", chunks[1].Speaker)

	count, err := repo.ChunkCount(ctx, meeting.ID)
	require.NoError(t, err)
	require.Equal(t, 2, count)
}

func TestMemoryRepositoryUpdateChunkText(t *testing.T) {
	repo := NewMemoryMeetingRepository()
	ctx := context.Background()

	meeting := entities.NewMeeting("standup", nil, time.Now())
	require.NoError(t, repo.Create(ctx, meeting))

	chunk := entities.NewChunk(meeting.ID, "alice", entities.TranscriptionPendingText, 0)
	require.NoError(t, repo.AppendChunk(ctx, chunk))

	sentiment := &entities.SentimentResult{Sentiment: "positive", Emotion: "optimism", Confidence: 0.9}
	require.NoError(t, repo.UpdateChunkText(ctx, chunk.ID, "transcribed text", sentiment))

	chunks, err := repo.Chunks(ctx, meeting.ID)
	require.NoError(t, err)
	require.Equal(t, "transcribed text", chunks[0].Text)
	require.Equal(t, "positive", chunks[0].Sentiment)
	require.Equal(t, "optimism", chunks[0].Emotion)

	missing := entities.NewChunk(meeting.ID, "alice", "x", 1)
	require.ErrorIs(t, repo.UpdateChunkText(ctx, missing.ID, "y", nil), gorm.ErrRecordNotFound)
}
