package handler

import (
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/boardroomai/meeting-analyzer/errors"
	voicedto "github.com/boardroomai/meeting-analyzer/internal/adapter/dto/voice"
	meetingUsecase "github.com/boardroomai/meeting-analyzer/internal/usecase/meeting"
)

// Voice handles speaker enrollment HTTP requests
type Voice struct {
	service meetingUsecase.Service
	logger  *zap.Logger
}

// NewVoiceHandler creates a new voice handler
func NewVoiceHandler(service meetingUsecase.Service, logger *zap.Logger) *Voice {
	return &Voice{
		service: service,
		logger:  logger,
	}
}

// Enroll handles POST /v1/voice/enroll
func (h *Voice) Enroll(c echo.Context) error {
	speakerName := c.FormValue("speaker_name")
	if speakerName == "" {
		speakerName = c.QueryParam("speaker_name")
	}

	file, err := c.FormFile("audio_file")
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("audio_file is required"))
	}
	if file.Size > maxAudioChunkBytes {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("audio file exceeds size limit"))
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

	output, err := h.service.EnrollSpeaker(c.Request().Context(), meetingUsecase.EnrollSpeakerInput{
		Name: speakerName,
		Raw:  raw,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return c.JSON(http.StatusOK, voicedto.EnrollSpeakerResponse{
		Status:        "success",
		Message:       fmt.Sprintf("Enrolled speaker %s", output.SpeakerName),
		SpeakerName:   output.SpeakerName,
		AudioDuration: output.AudioDuration,
	})
}

// Speakers handles GET /v1/voice/speakers
func (h *Voice) Speakers(c echo.Context) error {
	names := h.service.EnrolledSpeakers(c.Request().Context())
	return c.JSON(http.StatusOK, voicedto.EnrolledSpeakersResponse{
		Status:       "success",
		SpeakerCount: len(names),
		Speakers:     names,
	})
}

// Remove handles DELETE /v1/voice/speakers/:name
func (h *Voice) Remove(c echo.Context) error {
	name := c.Param("name")
	if !h.service.RemoveSpeaker(c.Request().Context(), name) {
		return HandleError(h.logger, c, apperrors.ErrNotFound(fmt.Sprintf("speaker %s", name)))
	}
	return c.JSON(http.StatusOK, voicedto.RemoveSpeakerResponse{
		Status:      "success",
		SpeakerName: name,
	})
}
