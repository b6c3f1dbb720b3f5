package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"docqa/internal/app"
	"docqa/internal/transport/http/response"
)

// RAGServerHandler exposes the core RAG and classification services on the
// internal AI service.
type RAGServerHandler struct {
	ragService      *app.RAGService
	classifyService *app.ClassifyService
}

func NewRAGServerHandler(ragService *app.RAGService, classifyService *app.ClassifyService) *RAGServerHandler {
	return &RAGServerHandler{
		ragService:      ragService,
		classifyService: classifyService,
	}
}

type queryRequest struct {
	UserID   string `json:"user_id" binding:"required"`
	Question string `json:"question" binding:"required"`
}

type classifyRequest struct {
	Sentence string `json:"sentence" binding:"required"`
}

func (h *RAGServerHandler) Query(c *gin.Context) {
	var req queryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	result, err := h.ragService.Ask(c.Request.Context(), req.UserID, req.Question)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.OK(c, result)
}

func (h *RAGServerHandler) Classify(c *gin.Context) {
	var req classifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	sentiment, err := h.classifyService.Classify(c.Request.Context(), req.Sentence)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.OK(c, gin.H{"sentiment": sentiment})
}

func (h *RAGServerHandler) writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, app.ErrInvalidInput):
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
	case errors.Is(err, app.ErrNoDocuments):
		response.Error(c, http.StatusNotFound, response.CodeNotFound, err.Error())
	case errors.Is(err, app.ErrClassification):
		response.Error(c, http.StatusInternalServerError, response.CodeClassifyFailed, err.Error())
	case errors.Is(err, app.ErrUpstreamUnavailable):
		response.Error(c, http.StatusServiceUnavailable, response.CodeUpstreamDown, err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "request failed")
	}
}
