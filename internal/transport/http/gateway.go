package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"docqa/internal/bootstrap"
	"docqa/internal/client"
	"docqa/internal/jobs"
	rabbitmqClient "docqa/internal/platform/rabbitmq"
	"docqa/internal/repository"
	"docqa/internal/transport/http/handler"
)

// NewGatewayRouter builds the public API surface: document upload + job
// status, and proxied RAG/classification calls to the RAG service.
func NewGatewayRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)

	publisher := rabbitmqClient.NewJobPublisher(app.MQConn, app.Config.RabbitMQ.IngestQueue)
	tracker := jobs.NewTracker(app.Redis, time.Duration(app.Config.Gateway.JobStatusTTLSeconds)*time.Second)
	docRepo := repository.NewDocumentRepository(app.MySQL)
	ragClient := client.NewRAGClient(
		app.Config.Gateway.RAGServiceURL,
		time.Duration(app.Config.Gateway.RAGTimeoutSeconds)*time.Second,
	)

	ingestHandler := handler.NewIngestHandler(
		publisher,
		tracker,
		app.Config.Ingest.DefaultChunkSize,
		app.Config.Ingest.DefaultChunkOverlap,
		app.Config.Gateway.MaxUploadSizeMB,
	)
	ragProxyHandler := handler.NewRAGProxyHandler(ragClient, docRepo)

	router.POST("/processar-documentos", ingestHandler.ProcessDocuments)
	router.POST("/rag", ragProxyHandler.Ask)
	router.POST("/classificar-texto", ragProxyHandler.Classify)
	router.GET("/jobs/:id", ingestHandler.JobStatus)
	router.GET("/documentos", ragProxyHandler.ListDocuments)

	return router
}
