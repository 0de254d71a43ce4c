package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sageleaf/curricula-backend/internal/logger"
	"github.com/sageleaf/curricula-backend/internal/services"
)

type CurriculumHandler struct {
	log               *logger.Logger
	userService       services.UserService
	curriculumService services.CurriculumService
	generationService services.CurriculumGenerationService
}

func NewCurriculumHandler(
	log *logger.Logger,
	userService services.UserService,
	curriculumService services.CurriculumService,
	generationService services.CurriculumGenerationService,
) *CurriculumHandler {
	return &CurriculumHandler{
		log:               log.With("handler", "CurriculumHandler"),
		userService:       userService,
		curriculumService: curriculumService,
		generationService: generationService,
	}
}

type generateCurriculumRequest struct {
	CustomPrompt string `json:"custom_prompt"`
}

func (h *CurriculumHandler) Generate(c *gin.Context) {
	var req generateCurriculumRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			RespondError(c, http.StatusBadRequest, "invalid_body", err)
			return
		}
	}
	profile, err := h.userService.GetMe(c.Request.Context())
	if err != nil {
		RespondServiceError(c, "load_profile_failed", err)
		return
	}
	curriculum, plan, err := h.generationService.Generate(c.Request.Context(), profile, req.CustomPrompt)
	if err != nil {
		h.log.Error("Generate curriculum failed", "error", err)
		RespondServiceError(c, "generate_curriculum_failed", err)
		return
	}
	RespondOK(c, gin.H{"curriculum": curriculum, "plan": plan})
}

func (h *CurriculumHandler) GeneratePrompt(c *gin.Context) {
	profile, err := h.userService.GetMe(c.Request.Context())
	if err != nil {
		RespondServiceError(c, "load_profile_failed", err)
		return
	}
	prompt, err := h.generationService.ComposePrompt(c.Request.Context(), profile)
	if err != nil {
		h.log.Error("GeneratePrompt failed", "error", err)
		RespondServiceError(c, "generate_prompt_failed", err)
		return
	}
	RespondOK(c, gin.H{"prompt": prompt})
}

type approveCurriculumRequest struct {
	Customizations map[string]any `json:"customizations"`
}

func (h *CurriculumHandler) Approve(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req approveCurriculumRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			RespondError(c, http.StatusBadRequest, "invalid_body", err)
			return
		}
	}
	curriculum, err := h.curriculumService.Approve(c.Request.Context(), id, req.Customizations)
	if err != nil {
		h.log.Error("Approve curriculum failed", "error", err, "curriculum_id", id)
		RespondServiceError(c, "approve_curriculum_failed", err)
		return
	}
	RespondOK(c, gin.H{"curriculum": curriculum})
}

func (h *CurriculumHandler) Reject(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	curriculum, err := h.curriculumService.Reject(c.Request.Context(), id)
	if err != nil {
		h.log.Error("Reject curriculum failed", "error", err, "curriculum_id", id)
		RespondServiceError(c, "reject_curriculum_failed", err)
		return
	}
	RespondOK(c, gin.H{"curriculum": curriculum})
}

func (h *CurriculumHandler) Complete(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	curriculum, err := h.curriculumService.Complete(c.Request.Context(), id)
	if err != nil {
		h.log.Error("Complete curriculum failed", "error", err, "curriculum_id", id)
		RespondServiceError(c, "complete_curriculum_failed", err)
		return
	}
	RespondOK(c, gin.H{"curriculum": curriculum})
}

func (h *CurriculumHandler) List(c *gin.Context) {
	curricula, err := h.curriculumService.ListForCaller(c.Request.Context())
	if err != nil {
		h.log.Error("List curricula failed", "error", err)
		RespondServiceError(c, "list_curricula_failed", err)
		return
	}
	RespondOK(c, gin.H{"curricula": curricula})
}

func (h *CurriculumHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	curriculum, sessions, err := h.curriculumService.GetForCaller(c.Request.Context(), id)
	if err != nil {
		h.log.Error("Get curriculum failed", "error", err, "curriculum_id", id)
		RespondServiceError(c, "load_curriculum_failed", err)
		return
	}
	RespondOK(c, gin.H{"curriculum": curriculum, "sessions": sessions})
}

func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return uuid.Nil, false
	}
	return id, true
}
