package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/boardroomai/meeting-analyzer/errors"
	meetingdto "github.com/boardroomai/meeting-analyzer/internal/adapter/dto/meeting"
	"github.com/boardroomai/meeting-analyzer/internal/adapter/presenter"
	"github.com/boardroomai/meeting-analyzer/internal/domain/repositories"
	meetingUsecase "github.com/boardroomai/meeting-analyzer/internal/usecase/meeting"
)

// maxAudioChunkBytes bounds a single uploaded audio chunk (32 MiB)
const maxAudioChunkBytes = 32 << 20

// Meeting handles meeting lifecycle and chunk HTTP requests
type Meeting struct {
	service meetingUsecase.Service
	logger  *zap.Logger
}

// NewMeetingHandler creates a new meeting handler
func NewMeetingHandler(service meetingUsecase.Service, logger *zap.Logger) *Meeting {
	return &Meeting{
		service: service,
		logger:  logger,
	}
}

// Start handles POST /v1/meetings/start
func (h *Meeting) Start(c echo.Context) error {
	var req meetingdto.StartMeetingRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument(err.Error()))
	}

	m, err := h.service.StartMeeting(c.Request().Context(), meetingUsecase.StartMeetingInput{
		Name:         req.MeetingName,
		Participants: req.Participants,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return c.JSON(http.StatusOK, meetingdto.StartMeetingResponse{
		Status:       "meeting started",
		MeetingID:    m.ID,
		MeetingName:  m.Name,
		StartTime:    m.StartTime,
		Participants: []string(m.Participants),
	})
}

// End handles POST /v1/meetings/:id/end
func (h *Meeting) End(c echo.Context) error {
	meetingID := c.Param("id")

	output, err := h.service.EndMeeting(c.Request().Context(), meetingID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return c.JSON(http.StatusOK, meetingdto.EndMeetingResponse{
		Status:     "meeting ended",
		MeetingID:  output.Meeting.ID,
		ChunkCount: output.ChunkCount,
		EndTime:    *output.Meeting.EndTime,
	})
}

// AddAudioChunk handles POST /v1/meetings/:id/audio-chunk
func (h *Meeting) AddAudioChunk(c echo.Context) error {
	meetingID := c.Param("id")

	file, err := c.FormFile("chunk")
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("chunk file is required"))
	}
	if file.Size > maxAudioChunkBytes {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("audio chunk exceeds size limit"))
	}

	src, err := file.Open()
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrInternal(err))
	}
	defer src.Close()

	raw, err := io.ReadAll(io.LimitReader(src, maxAudioChunkBytes))
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrInternal(err))
	}

	async, _ := strconv.ParseBool(c.QueryParam("async"))
	output, err := h.service.AddAudioChunk(c.Request().Context(), meetingUsecase.AddAudioChunkInput{
		MeetingID: meetingID,
		Raw:       raw,
		Async:     async,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	resp := meetingdto.AudioChunkResponse{
		Status:        output.Status,
		ChunkID:       output.ChunkID,
		Speaker:       output.Speaker,
		Confidence:    output.Confidence,
		Transcription: presenter.TruncateTranscription(output.Transcription),
	}
	if output.Sentiment != nil {
		resp.Sentiment = output.Sentiment.Sentiment
		resp.Emotion = output.Sentiment.Emotion
	}
	return c.JSON(http.StatusOK, resp)
}

// AddTextChunk handles POST /v1/meetings/:id/chunk
func (h *Meeting) AddTextChunk(c echo.Context) error {
	meetingID := c.Param("id")

	var req meetingdto.TextChunkRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument(err.Error()))
	}

	output, err := h.service.AddTextChunk(c.Request().Context(), meetingUsecase.AddTextChunkInput{
		MeetingID: meetingID,
		Speaker:   req.Speaker,
		Text:      req.Text,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	resp := meetingdto.TextChunkResponse{
		Status:    output.Status,
		MeetingID: output.MeetingID,
		ChunkID:   output.ChunkID,
		Speaker:   output.Speaker,
	}
	if output.Sentiment != nil {
		resp.Sentiment = output.Sentiment.Sentiment
	}
	return c.JSON(http.StatusOK, resp)
}

// GetAnalysis handles GET /v1/meetings/:id/analysis
func (h *Meeting) GetAnalysis(c echo.Context) error {
	meetingID := c.Param("id")

	analysis, err := h.service.AnalyzeMeeting(c.Request().Context(), meetingID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	status := "analysis complete"
	if len(analysis.Speakers) == 0 && analysis.ChunkCount == 0 {
		status = "no data"
	}
	return c.JSON(http.StatusOK, presenter.ToAnalysisResponse(analysis, status))
}

// GetTranscript handles GET /v1/meetings/:id/transcript
func (h *Meeting) GetTranscript(c echo.Context) error {
	meetingID := c.Param("id")

	chunks, err := h.service.GetTranscript(c.Request().Context(), meetingID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	entries := presenter.ToTranscriptEntries(chunks)
	return c.JSON(http.StatusOK, meetingdto.TranscriptResponse{
		MeetingID:  meetingID,
		Transcript: entries,
		EntryCount: len(entries),
	})
}

// List handles GET /v1/meetings
func (h *Meeting) List(c echo.Context) error {
	var req meetingdto.ListMeetingsRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument(err.Error()))
	}
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 {
		req.PageSize = 50
	}

	meetings, total, err := h.service.ListMeetings(c.Request().Context(), repositories.MeetingFilters{
		Status: req.Status,
		Limit:  req.PageSize,
		Offset: (req.Page - 1) * req.PageSize,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	responses := make([]*meetingdto.MeetingResponse, 0, len(meetings))
	for _, m := range meetings {
		responses = append(responses, presenter.ToMeetingResponse(m))
	}
	return c.JSON(http.StatusOK, meetingdto.MeetingListResponse{
		Status:   "success",
		Count:    total,
		Meetings: responses,
	})
}

// Get handles GET /v1/meetings/:id
func (h *Meeting) Get(c echo.Context) error {
	meetingID := c.Param("id")

	detail, err := h.service.GetMeeting(c.Request().Context(), meetingID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	resp := meetingdto.MeetingDetailResponse{
		MeetingID:         meetingID,
		Metadata:          presenter.ToMeetingResponse(detail.Meeting),
		TranscriptEntries: detail.ChunkCount,
		ChunkCount:        detail.ChunkCount,
		HasAnalysis:       detail.HasAnalysis,
	}
	if detail.Analysis != nil {
		resp.Analysis = presenter.ToAnalysisResponse(detail.Analysis, "analysis complete")
	}
	return c.JSON(http.StatusOK, resp)
}

// Delete handles DELETE /v1/meetings/:id
func (h *Meeting) Delete(c echo.Context) error {
	meetingID := c.Param("id")

	if err := h.service.DeleteMeeting(c.Request().Context(), meetingID); err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, meetingdto.DeleteMeetingResponse{
		Status:    "meeting deleted",
		MeetingID: meetingID,
	})
}
