package http

import (
	"github.com/gin-gonic/gin"

	"docqa/internal/app"
	"docqa/internal/bootstrap"
	"docqa/internal/transport/http/handler"
	"docqa/internal/vectorstore/milvus"
)

// NewRAGServerRouter builds the internal AI service surface.
func NewRAGServerRouter(bApp *bootstrap.App) *gin.Engine {
	gin.SetMode(bApp.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	healthHandler := handler.NewHealthHandler(bApp)
	router.GET("/healthz", healthHandler.Check)

	llmClient := bootstrap.NewLLMClient(bApp.Config)
	store := milvus.NewStore(bApp.Milvus)
	ragService := app.NewRAGService(store, llmClient, llmClient, bApp.Config.Ingest.TopK)
	classifyService := app.NewClassifyService(llmClient)

	ragHandler := handler.NewRAGServerHandler(ragService, classifyService)
	router.POST("/rag/query", ragHandler.Query)
	router.POST("/text/classify", ragHandler.Classify)

	return router
}
