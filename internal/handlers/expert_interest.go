package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sageleaf/curricula-backend/internal/logger"
	"github.com/sageleaf/curricula-backend/internal/services"
)

type ExpertInterestHandler struct {
	log             *logger.Logger
	interestService services.ExpertInterestService
}

func NewExpertInterestHandler(log *logger.Logger, interestService services.ExpertInterestService) *ExpertInterestHandler {
	return &ExpertInterestHandler{
		log:             log.With("handler", "ExpertInterestHandler"),
		interestService: interestService,
	}
}

func (h *ExpertInterestHandler) Signup(c *gin.Context) {
	var signup services.ExpertInterestSignup
	if err := c.ShouldBindJSON(&signup); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	interest, err := h.interestService.Signup(c.Request.Context(), signup)
	if err != nil {
		h.log.Error("Expert interest signup failed", "error", err)
		RespondServiceError(c, "expert_interest_failed", err)
		return
	}
	RespondOK(c, gin.H{"interest": interest})
}
