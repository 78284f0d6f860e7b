package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/requisition_portal/internal/core/domain"
	"github.com/SscSPs/requisition_portal/internal/middleware"
)

const secret = "auth-test-secret"

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", middleware.AuthMiddleware(secret), func(c *gin.Context) {
		actor, ok := middleware.GetActorFromContext(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, actor)
	})
	return r
}

func call(r *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r := newAuthRouter()
	valid, err := middleware.IssueToken(domain.Actor{UserID: "u-1", Role: domain.RoleChallenger, Service: "finance"}, secret, time.Hour, "test")
	require.NoError(t, err)
	expired, err := middleware.IssueToken(domain.Actor{UserID: "u-1", Role: domain.RoleChallenger}, secret, -time.Minute, "test")
	require.NoError(t, err)
	foreign, err := middleware.IssueToken(domain.Actor{UserID: "u-1", Role: domain.RoleChallenger}, "other-secret", time.Hour, "test")
	require.NoError(t, err)
	system, err := middleware.IssueToken(domain.Actor{UserID: "u-1", Role: domain.RoleSystem}, secret, time.Hour, "test")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{name: "valid", header: "Bearer " + valid, want: http.StatusOK},
		{name: "missing header", header: "", want: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic " + valid, want: http.StatusUnauthorized},
		{name: "expired", header: "Bearer " + expired, want: http.StatusUnauthorized},
		{name: "wrong secret", header: "Bearer " + foreign, want: http.StatusUnauthorized},
		{name: "system role is not issued to users", header: "Bearer " + system, want: http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := call(r, tt.header)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
		})
	}

	w := call(r, "Bearer "+valid)
	assert.JSONEq(t, `{"userID":"u-1","role":"challenger","service":"finance"}`, w.Body.String())
}
