package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/boardroomai/meeting-analyzer/internal/infrastructure/http/middleware"
	"github.com/boardroomai/meeting-analyzer/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg            *config.Config
	meetingHandler *Meeting
	queryHandler   *Query
	voiceHandler   *Voice
	auth           *middleware.AuthMiddleware
}

// NewRouter creates a new router with all handlers. auth may be nil when
// token authentication is disabled.
func NewRouter(cfg *config.Config, meetingHandler *Meeting, queryHandler *Query, voiceHandler *Voice, auth *middleware.AuthMiddleware) *Router {
	return &Router{
		cfg:            cfg,
		meetingHandler: meetingHandler,
		queryHandler:   queryHandler,
		voiceHandler:   voiceHandler,
		auth:           auth,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// API v1 group
	v1 := e.Group("/v1")
	if rt.auth != nil {
		v1.Use(rt.auth.Authenticate)
	}

	rt.setupMeetingRoutes(v1)
	rt.setupQueryRoutes(v1)
	rt.setupVoiceRoutes(v1)
}

// setupMeetingRoutes configures meeting lifecycle and chunk routes
func (rt *Router) setupMeetingRoutes(g *echo.Group) {
	meetings := g.Group("/meetings")

	meetings.POST("/start", rt.meetingHandler.Start)
	meetings.GET("", rt.meetingHandler.List)
	meetings.GET("/:id", rt.meetingHandler.Get)
	meetings.DELETE("/:id", rt.meetingHandler.Delete)
	meetings.POST("/:id/end", rt.meetingHandler.End)
	meetings.POST("/:id/audio-chunk", rt.meetingHandler.AddAudioChunk)
	meetings.POST("/:id/chunk", rt.meetingHandler.AddTextChunk)
	meetings.GET("/:id/analysis", rt.meetingHandler.GetAnalysis)
	meetings.GET("/:id/transcript", rt.meetingHandler.GetTranscript)
}

// setupQueryRoutes configures meeting content query routes
func (rt *Router) setupQueryRoutes(g *echo.Group) {
	queries := g.Group("/query")

	queries.GET("/topic/:id", rt.queryHandler.Topic)
	queries.POST("/semantic/:id", rt.queryHandler.Semantic)
	queries.POST("/ask/:id", rt.queryHandler.Ask)
	queries.GET("/speakers/:id", rt.queryHandler.Speakers)
}

// setupVoiceRoutes configures speaker enrollment routes
func (rt *Router) setupVoiceRoutes(g *echo.Group) {
	voice := g.Group("/voice")

	voice.POST("/enroll", rt.voiceHandler.Enroll)
	voice.GET("/speakers", rt.voiceHandler.Speakers)
	voice.DELETE("/speakers/:name", rt.voiceHandler.Remove)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	environment := "development"
	if rt.cfg != nil {
		environment = rt.cfg.Server.Environment
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"time":        time.Now().Format(time.RFC3339),
		"environment": environment,
	})
}
