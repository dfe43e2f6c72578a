package middleware_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/unifiedui/document-service/internal/api/middleware"
	"github.com/unifiedui/document-service/internal/testutils"
)

func corsRouter(origins ...string) *gin.Engine {
	cfg := middleware.DefaultCORSConfig(origins)
	router := testutils.SetupTestRouter()
	router.Use(middleware.NewCORSMiddleware(cfg))
	middleware.SetupCORSRoutes(router, cfg)
	router.GET("/resource", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func TestCORS_AllowedOrigin(t *testing.T) {
	router := corsRouter("http://app.example")

	w := testutils.PerformRequest(router, http.MethodGet, "/resource", nil, map[string]string{
		"Origin": "http://app.example",
	})

	testutils.AssertStatusCode(t, http.StatusOK, w)
	assert.Equal(t, "http://app.example", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	assert.Equal(t, "86400", w.Header().Get("Access-Control-Max-Age"))
	assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), middleware.RequestIDHeader)
}

func TestCORS_DisallowedOrigin(t *testing.T) {
	router := corsRouter("http://app.example")

	w := testutils.PerformRequest(router, http.MethodGet, "/resource", nil, map[string]string{
		"Origin": "http://evil.example",
	})

	testutils.AssertStatusCode(t, http.StatusOK, w)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_Wildcard(t *testing.T) {
	router := corsRouter("*")

	w := testutils.PerformRequest(router, http.MethodGet, "/resource", nil, map[string]string{
		"Origin": "http://any.example",
	})

	assert.Equal(t, "http://any.example", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_Preflight(t *testing.T) {
	router := corsRouter("http://app.example")

	w := testutils.PerformRequest(router, http.MethodOptions, "/resource", nil, map[string]string{
		"Origin": "http://app.example",
	})

	testutils.AssertStatusCode(t, http.StatusNoContent, w)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
}
