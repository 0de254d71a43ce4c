package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sageleaf/curricula-backend/internal/logger"
	"github.com/sageleaf/curricula-backend/internal/services"
)

type ImageHandler struct {
	log          *logger.Logger
	imageService services.ImageService
}

func NewImageHandler(log *logger.Logger, imageService services.ImageService) *ImageHandler {
	return &ImageHandler{
		log:          log.With("handler", "ImageHandler"),
		imageService: imageService,
	}
}

type generateImageRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	Prompt    string `json:"prompt"`
}

func (h *ImageHandler) Generate(c *gin.Context) {
	var req generateImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	sessionID, err := parseUUIDField(req.SessionID, "session_id")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	image, err := h.imageService.GenerateForSession(c.Request.Context(), sessionID, req.Prompt)
	if err != nil {
		h.log.Error("Generate image failed", "error", err, "session_id", sessionID)
		RespondServiceError(c, "generate_image_failed", err)
		return
	}
	RespondOK(c, gin.H{"image": image})
}

func (h *ImageHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	image, err := h.imageService.GetForCaller(c.Request.Context(), id)
	if err != nil {
		h.log.Error("Get image failed", "error", err, "image_id", id)
		RespondServiceError(c, "load_image_failed", err)
		return
	}
	RespondOK(c, gin.H{"image": image})
}

func (h *ImageHandler) Delete(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.imageService.DeleteForCaller(c.Request.Context(), id); err != nil {
		h.log.Error("Delete image failed", "error", err, "image_id", id)
		RespondServiceError(c, "delete_image_failed", err)
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}

func (h *ImageHandler) Cleanup(c *gin.Context) {
	removed, err := h.imageService.CleanupOrphans(c.Request.Context())
	if err != nil {
		h.log.Error("Cleanup images failed", "error", err)
		RespondServiceError(c, "cleanup_images_failed", err)
		return
	}
	RespondOK(c, gin.H{"removed": removed})
}
