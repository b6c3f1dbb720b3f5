package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/milvus-io/milvus/client/v2/milvusclient"

	"docqa/internal/bootstrap"
)

type HealthHandler struct {
	app *bootstrap.App
}

type dependencyStatus struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

func NewHealthHandler(app *bootstrap.App) *HealthHandler {
	return &HealthHandler{app: app}
}

// Check probes the dependencies this binary actually holds.
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	checks := gin.H{}
	allOK := true

	if h.app.MySQL != nil {
		st := h.checkMySQL(ctx)
		checks["mysql"] = st
		allOK = allOK && st.OK
	}
	if h.app.Redis != nil {
		st := h.checkRedis(ctx)
		checks["redis"] = st
		allOK = allOK && st.OK
	}
	if h.app.MQConn != nil {
		st := h.checkRabbitMQ()
		checks["rabbitmq"] = st
		allOK = allOK && st.OK
	}
	if h.app.Milvus != nil {
		st := h.checkMilvus(ctx)
		checks["milvus"] = st
		allOK = allOK && st.OK
	}

	statusCode := http.StatusOK
	status := "ok"
	if !allOK {
		statusCode = http.StatusServiceUnavailable
		status = "degraded"
	}

	c.JSON(statusCode, gin.H{
		"status":         status,
		"uptime_seconds": int(time.Since(h.app.StartedAt).Seconds()),
		"checks":         checks,
	})
}

func (h *HealthHandler) checkMySQL(ctx context.Context) dependencyStatus {
	sqlDB, err := h.app.MySQL.DB()
	if err != nil {
		return dependencyStatus{OK: false, Message: err.Error()}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return dependencyStatus{OK: false, Message: err.Error()}
	}
	return dependencyStatus{OK: true}
}

func (h *HealthHandler) checkRedis(ctx context.Context) dependencyStatus {
	if err := h.app.Redis.Ping(ctx).Err(); err != nil {
		return dependencyStatus{OK: false, Message: err.Error()}
	}
	return dependencyStatus{OK: true}
}

func (h *HealthHandler) checkRabbitMQ() dependencyStatus {
	if h.app.MQConn.IsClosed() {
		return dependencyStatus{OK: false, Message: "connection closed"}
	}
	return dependencyStatus{OK: true}
}

func (h *HealthHandler) checkMilvus(ctx context.Context) dependencyStatus {
	if _, err := h.app.Milvus.ListCollections(ctx, milvusclient.NewListCollectionOption()); err != nil {
		return dependencyStatus{OK: false, Message: err.Error()}
	}
	return dependencyStatus{OK: true}
}
