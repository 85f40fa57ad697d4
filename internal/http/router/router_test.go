package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	apphttp "lead_scoring_backend/internal/http"
	"lead_scoring_backend/platform/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type httpConfig struct {
	rps float64
}

func (c httpConfig) GetHTTPAddr() string      { return ":0" }
func (c httpConfig) GetCORSAllowAll() bool    { return false }
func (c httpConfig) GetCORSOrigins() []string { return []string{"http://localhost:3000"} }
func (c httpConfig) GetCORSAllowCreds() bool  { return true }
func (c httpConfig) GetRateLimitRPS() float64 { return c.rps }
func (c httpConfig) GetMaxUploadBytes() int64 { return 1 << 20 }

type pingModule struct{}

func (pingModule) Name() string { return "ping" }

func (pingModule) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Root.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
}

func newEngine(rps float64) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return New(&apphttp.App{
		Config:  httpConfig{rps: rps},
		Logger:  logger.Discard(),
		Modules: []apphttp.Module{pingModule{}},
	})
}

func serve(engine *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	w := serve(newEngine(0), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
}

func TestModuleRoutesAndMetrics(t *testing.T) {
	engine := newEngine(0)

	w := serve(engine, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())

	w = serve(engine, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_request_duration_seconds")
}

func TestCORSAllowsConfiguredOrigin(t *testing.T) {
	engine := newEngine(0)

	req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := serve(engine, req)

	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = serve(engine, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRateLimit(t *testing.T) {
	engine := newEngine(1)

	codes := make([]int, 0, 4)
	for range 4 {
		codes = append(codes, serve(engine, httptest.NewRequest(http.MethodGet, "/ping", nil)).Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests, http.StatusTooManyRequests}, codes)

	// health is outside the limited group
	assert.Equal(t, http.StatusOK, serve(engine, httptest.NewRequest(http.MethodGet, "/", nil)).Code)
}
