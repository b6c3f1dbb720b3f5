package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"docqa/internal/app"
	"docqa/internal/client"
	"docqa/internal/model"
	"docqa/internal/repository"
	"docqa/internal/transport/http/response"
)

// RAGProxyHandler forwards query-path requests from the gateway to the RAG
// service, translating its failures into distinct client-facing statuses.
type RAGProxyHandler struct {
	ragClient *client.RAGClient
	docRepo   *repository.DocumentRepository
}

func NewRAGProxyHandler(ragClient *client.RAGClient, docRepo *repository.DocumentRepository) *RAGProxyHandler {
	return &RAGProxyHandler{ragClient: ragClient, docRepo: docRepo}
}

type ragRequest struct {
	UserID   string `json:"user_id" binding:"required"`
	Pergunta string `json:"pergunta" binding:"required"`
}

type classifyTextRequest struct {
	Sentenca string `json:"sentenca" binding:"required"`
}

func (h *RAGProxyHandler) Ask(c *gin.Context) {
	var req ragRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	result, err := h.ragClient.Query(c.Request.Context(), req.UserID, req.Pergunta)
	if err != nil {
		h.writeProxyError(c, err)
		return
	}

	response.OK(c, gin.H{
		"resposta":          result.Answer,
		"chunks_utilizados": result.Chunks,
	})
}

func (h *RAGProxyHandler) Classify(c *gin.Context) {
	var req classifyTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	sentiment, err := h.ragClient.Classify(c.Request.Context(), req.Sentenca)
	if err != nil {
		h.writeProxyError(c, err)
		return
	}

	response.OK(c, gin.H{"classificacao": sentiment})
}

// ListDocuments returns the user's successfully ingested documents.
func (h *RAGProxyHandler) ListDocuments(c *gin.Context) {
	userID := c.Query("user_id")
	if !model.ValidUserID(userID) {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "user_id must be 1-64 letters, digits, '_' or '-'")
		return
	}
	docs, err := h.docRepo.ListByUserID(userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list documents failed")
		return
	}
	response.OK(c, docs)
}

func (h *RAGProxyHandler) writeProxyError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, app.ErrNoDocuments):
		response.Error(c, http.StatusNotFound, response.CodeNotFound, "no documents found for this user; upload documents first")
	case errors.Is(err, app.ErrInvalidInput):
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
	case errors.Is(err, app.ErrUpstreamUnavailable):
		response.Error(c, http.StatusServiceUnavailable, response.CodeUpstreamDown, "RAG service is unavailable, try again later")
	default:
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "request failed")
	}
}
