package http

import (
	"github.com/gin-gonic/gin"

	"docqa/internal/bootstrap"
	"docqa/internal/transport/http/handler"
)

// NewWorkerRouter exposes the worker's health endpoint. The worker has no
// other HTTP surface; its work arrives over the queue.
func NewWorkerRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)

	return router
}
