package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/posthog/posthog-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/requisition_portal/internal/core/domain"
	"github.com/SscSPs/requisition_portal/internal/middleware"
	"github.com/SscSPs/requisition_portal/internal/platform/analytics"
)

// capturingPosthog records enqueued captures; every other method is unused.
type capturingPosthog struct {
	posthog.Client
	mu       sync.Mutex
	captured []posthog.Capture
}

func (c *capturingPosthog) Enqueue(msg posthog.Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if capture, ok := msg.(posthog.Capture); ok {
		c.captured = append(c.captured, capture)
	}
	return nil
}

func newPosthogRouter(ph *capturingPosthog) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.PosthogMiddleware(analytics.Wrap(ph, nil)))
	r.Use(func(c *gin.Context) {
		if c.GetHeader("X-Test-Anonymous") == "" {
			actor := domain.Actor{UserID: "u-compta", Role: domain.RoleAccountant}
			c.Request = c.Request.WithContext(middleware.WithActor(c.Request.Context(), actor))
		}
		c.Next()
	})
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/api/v1/requisitions/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/api/v1/broken", func(c *gin.Context) { c.Status(http.StatusConflict) })
	return r
}

func serve(r *gin.Engine, path string, anonymous bool) {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if anonymous {
		req.Header.Set("X-Test-Anonymous", "1")
	}
	r.ServeHTTP(httptest.NewRecorder(), req)
}

func TestPosthogMiddleware_TracksSuccessfulAuthenticatedRoutes(t *testing.T) {
	ph := &capturingPosthog{}
	r := newPosthogRouter(ph)

	serve(r, "/api/v1/requisitions/r-42", false)

	require.Len(t, ph.captured, 1)
	event := ph.captured[0]
	assert.Equal(t, "u-compta", event.DistinctId)
	assert.Equal(t, "api_v1_requisitions_:id", event.Event)
	assert.Equal(t, "comptable", event.Properties["role"])
	assert.Equal(t, map[string]string{"id": "r-42"}, event.Properties["params"])
}

func TestPosthogMiddleware_SkipsUntrackedRequests(t *testing.T) {
	ph := &capturingPosthog{}
	r := newPosthogRouter(ph)

	serve(r, "/health", false)
	serve(r, "/api/v1/broken", false)
	serve(r, "/api/v1/requisitions/r-1", true)
	serve(r, "/nowhere", false)

	assert.Empty(t, ph.captured)
}
