package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sageleaf/curricula-backend/internal/logger"
	"github.com/sageleaf/curricula-backend/internal/services"
)

type SessionHandler struct {
	log               *logger.Logger
	sessionService    services.SessionService
	generationService services.SessionGenerationService
}

func NewSessionHandler(
	log *logger.Logger,
	sessionService services.SessionService,
	generationService services.SessionGenerationService,
) *SessionHandler {
	return &SessionHandler{
		log:               log.With("handler", "SessionHandler"),
		sessionService:    sessionService,
		generationService: generationService,
	}
}

type generateSessionRequest struct {
	CurriculumID  string `json:"curriculum_id" binding:"required"`
	SessionNumber int    `json:"session_number" binding:"required"`
}

func (h *SessionHandler) Generate(c *gin.Context) {
	var req generateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	curriculumID, err := parseUUIDField(req.CurriculumID, "curriculum_id")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	progress := func(step, totalSteps int, message string) {
		h.log.Info("Session generation progress",
			"curriculum_id", curriculumID,
			"session_number", req.SessionNumber,
			"step", step,
			"total_steps", totalSteps,
			"message", message)
	}
	session, err := h.generationService.Generate(c.Request.Context(), curriculumID, req.SessionNumber, progress)
	if err != nil {
		h.log.Error("Generate session failed", "error", err,
			"curriculum_id", curriculumID, "session_number", req.SessionNumber)
		RespondServiceError(c, "generate_session_failed", err)
		return
	}
	RespondOK(c, gin.H{"session": session})
}

func (h *SessionHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	session, err := h.sessionService.GetForCaller(c.Request.Context(), id)
	if err != nil {
		h.log.Error("Get session failed", "error", err, "session_id", id)
		RespondServiceError(c, "load_session_failed", err)
		return
	}
	RespondOK(c, gin.H{"session": session})
}

type completeSessionRequest struct {
	Completed *bool `json:"completed"`
}

func (h *SessionHandler) SetCompleted(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	completed := true
	if c.Request.ContentLength > 0 {
		var req completeSessionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			RespondError(c, http.StatusBadRequest, "invalid_body", err)
			return
		}
		if req.Completed != nil {
			completed = *req.Completed
		}
	}
	session, err := h.sessionService.SetCompleted(c.Request.Context(), id, completed)
	if err != nil {
		h.log.Error("SetCompleted failed", "error", err, "session_id", id)
		RespondServiceError(c, "complete_session_failed", err)
		return
	}
	RespondOK(c, gin.H{"session": session})
}

func (h *SessionHandler) Download(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	filename, markdown, err := h.sessionService.DownloadMarkdown(c.Request.Context(), id)
	if err != nil {
		h.log.Error("Download session failed", "error", err, "session_id", id)
		RespondServiceError(c, "download_session_failed", err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(markdown))
}

func parseUUIDField(raw, field string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", field, err)
	}
	return id, nil
}
