// Package api registers the transcript REST endpoints and translates between
// the HTTP surface and the transcript service.
package api

import (
	"github.com/gin-gonic/gin"

	apperrors "github.com/skillsenselab/transcript-api/errors"
	"github.com/skillsenselab/transcript-api/logger"
	"github.com/skillsenselab/transcript-api/server"
	"github.com/skillsenselab/transcript-api/server/endpoint"
	"github.com/skillsenselab/transcript-api/transcript"
	"github.com/skillsenselab/transcript-api/validation"
)

// ServiceName appears in the root index message.
const ServiceName = "YouTube Transcript API"

// transcriptQuery binds the transcript endpoint's query parameters.
type transcriptQuery struct {
	// Languages is a comma-separated preference list, e.g. "en,de".
	Languages string `form:"languages" json:"languages"`
	// Format is the output format.
	Format string `form:"format" json:"format" validate:"omitempty,oneof=json text srt webvtt"`
	// PreserveFormatting keeps HTML tags like <i> and <b>.
	PreserveFormatting bool `form:"preserve_formatting" json:"preserve_formatting"`
	// TranslateTo translates the transcript to this language code.
	TranslateTo string `form:"translate_to" json:"translate_to"`
}

// transcriptResponse is the success body of the transcript endpoint.
// Transcript carries either the cue records (json format) or the rendered
// string (text, srt, webvtt).
type transcriptResponse struct {
	VideoID    string `json:"video_id"`
	Format     string `json:"format"`
	Language   string `json:"language"`
	Translated bool   `json:"translated,omitempty"`
	Transcript any    `json:"transcript"`
}

// Handler serves the transcript endpoints. One Handler is shared across all
// requests; it holds no per-request state.
type Handler struct {
	service *transcript.Service
	log     *logger.Logger
}

// NewHandler creates a Handler around the transcript service.
func NewHandler(service *transcript.Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.WithComponent("api"),
	}
}

// Register mounts all routes on the Gin engine.
func (h *Handler) Register(engine *gin.Engine) {
	engine.GET("/", endpoint.Index(ServiceName))
	engine.GET("/health", endpoint.Health())
	engine.GET("/transcript/:videoId", h.GetTranscript)
	engine.GET("/list/:videoId", h.ListTranscripts)
}

// GetTranscript handles GET /transcript/{videoId}.
func (h *Handler) GetTranscript(c *gin.Context) {
	videoID := c.Param("videoId")
	if err := validation.New().Required("video_id", videoID).Validate(); err != nil {
		server.RespondWithError(c, err)
		return
	}

	var query transcriptQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		server.RespondWithError(c, apperrors.InvalidInput("query", err.Error()))
		return
	}
	if err := validation.ValidateStruct(query); err != nil {
		server.RespondWithError(c, err)
		return
	}

	payload, err := h.service.Fetch(c.Request.Context(), transcript.Request{
		VideoID:            videoID,
		Languages:          transcript.ParseLanguages(query.Languages),
		Format:             query.Format,
		TranslateTo:        query.TranslateTo,
		PreserveFormatting: query.PreserveFormatting,
	})
	if err != nil {
		h.log.Warn("transcript fetch failed", logger.ErrorFields("fetch", err))
		server.RespondWithError(c, err)
		return
	}

	resp := transcriptResponse{
		VideoID:    payload.VideoID,
		Format:     payload.Format,
		Language:   payload.Language,
		Translated: payload.Translated,
	}
	if payload.Format == transcript.FormatJSON {
		resp.Transcript = payload.Records
	} else {
		resp.Transcript = payload.Rendered
	}
	server.RespondOK(c, resp)
}

// ListTranscripts handles GET /list/{videoId}. The availability set is
// returned unmodified with no language preference applied.
func (h *Handler) ListTranscripts(c *gin.Context) {
	videoID := c.Param("videoId")
	if err := validation.New().Required("video_id", videoID).Validate(); err != nil {
		server.RespondWithError(c, err)
		return
	}

	availability, err := h.service.List(c.Request.Context(), videoID)
	if err != nil {
		h.log.Warn("transcript list failed", logger.ErrorFields("list", err))
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, availability)
}
