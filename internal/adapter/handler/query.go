package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/boardroomai/meeting-analyzer/errors"
	querydto "github.com/boardroomai/meeting-analyzer/internal/adapter/dto/query"
	"github.com/boardroomai/meeting-analyzer/internal/adapter/presenter"
	meetingUsecase "github.com/boardroomai/meeting-analyzer/internal/usecase/meeting"
)

// Query handles meeting content query HTTP requests
type Query struct {
	service meetingUsecase.Service
	logger  *zap.Logger
}

// NewQueryHandler creates a new query handler
func NewQueryHandler(service meetingUsecase.Service, logger *zap.Logger) *Query {
	return &Query{
		service: service,
		logger:  logger,
	}
}

// Topic handles GET /v1/query/topic/:id
func (h *Query) Topic(c echo.Context) error {
	meetingID := c.Param("id")
	topic := strings.TrimSpace(c.QueryParam("topic"))
	if topic == "" {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("topic is required"))
	}

	results, err := h.service.QueryTopic(c.Request().Context(), meetingID, topic)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	refs := presenter.ToChunkRefs(results)
	return c.JSON(http.StatusOK, querydto.TopicQueryResponse{
		MeetingID:    meetingID,
		Topic:        topic,
		ResultsCount: len(refs),
		Results:      refs,
	})
}

// Semantic handles POST /v1/query/semantic/:id
func (h *Query) Semantic(c echo.Context) error {
	meetingID := c.Param("id")

	var req querydto.SemanticQueryRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidPayload())
	}
	queryText := strings.TrimSpace(req.Query)

	answer, err := h.service.SemanticQuery(c.Request().Context(), meetingID, queryText)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	refs := presenter.ToChunkRefs(answer.RelevantChunks)
	return c.JSON(http.StatusOK, querydto.SemanticQueryResponse{
		MeetingID:      meetingID,
		Query:          queryText,
		Answer:         answer.Answer,
		RelevantChunks: refs,
		ChunkCount:     len(refs),
	})
}

// Ask handles POST /v1/query/ask/:id
func (h *Query) Ask(c echo.Context) error {
	meetingID := c.Param("id")

	var req querydto.AskMeetingRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidPayload())
	}
	question := strings.TrimSpace(req.Question)

	answer, hasData, err := h.service.AskQuestion(c.Request().Context(), meetingID, question)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	status := "success"
	if !hasData {
		status = "no_data"
	}
	return c.JSON(http.StatusOK, querydto.AskMeetingResponse{
		MeetingID: meetingID,
		Question:  question,
		Answer:    answer,
		Status:    status,
	})
}

// Speakers handles GET /v1/query/speakers/:id
func (h *Query) Speakers(c echo.Context) error {
	meetingID := c.Param("id")

	stats, err := h.service.SpeakerStats(c.Request().Context(), meetingID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	speakers := make([]querydto.SpeakerEntry, 0, len(stats))
	for _, s := range stats {
		speakers = append(speakers, querydto.SpeakerEntry{
			Name:               s.Name,
			Contributions:      s.Contributions,
			SentimentBreakdown: s.Sentiments,
		})
	}
	return c.JSON(http.StatusOK, querydto.SpeakersResponse{
		MeetingID:    meetingID,
		SpeakerCount: len(speakers),
		Speakers:     speakers,
	})
}
