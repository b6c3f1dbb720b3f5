package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docqa/internal/bootstrap"
)

func newHealthRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/healthz", NewHealthHandler(app).Check)
	return router
}

type healthResponse struct {
	Status string `json:"status"`
	Checks map[string]struct {
		OK      bool   `json:"ok"`
		Message string `json:"message"`
	} `json:"checks"`
}

func TestHealthCheckNoDependencies(t *testing.T) {
	app := &bootstrap.App{StartedAt: time.Now()}
	router := newHealthRouter(app)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp healthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Empty(t, resp.Checks)
}

func TestHealthCheckReportsDegradedDependency(t *testing.T) {
	// Nothing listens on this address, so the ping fails fast and the binary
	// must answer 503, not an unconditional ok.
	app := &bootstrap.App{
		Redis: redis.NewClient(&redis.Options{
			Addr:        "127.0.0.1:1",
			DialTimeout: 200 * time.Millisecond,
		}),
		StartedAt: time.Now(),
	}
	router := newHealthRouter(app)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var resp healthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "degraded", resp.Status)
	require.Contains(t, resp.Checks, "redis")
	assert.False(t, resp.Checks["redis"].OK)
	assert.NotEmpty(t, resp.Checks["redis"].Message)
}
