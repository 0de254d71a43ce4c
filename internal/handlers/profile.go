package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sageleaf/curricula-backend/internal/logger"
	"github.com/sageleaf/curricula-backend/internal/services"
)

type ProfileHandler struct {
	log         *logger.Logger
	userService services.UserService
}

func NewProfileHandler(log *logger.Logger, userService services.UserService) *ProfileHandler {
	return &ProfileHandler{
		log:         log.With("handler", "ProfileHandler"),
		userService: userService,
	}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile, err := h.userService.GetMe(c.Request.Context())
	if err != nil {
		h.log.Error("GetProfile failed", "error", err)
		RespondServiceError(c, "load_profile_failed", err)
		return
	}
	RespondOK(c, gin.H{"profile": profile})
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var update services.ProfileUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	profile, err := h.userService.UpdateMe(c.Request.Context(), update)
	if err != nil {
		h.log.Error("UpdateProfile failed", "error", err)
		RespondServiceError(c, "update_profile_failed", err)
		return
	}
	RespondOK(c, gin.H{"profile": profile})
}
