package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthTestRouter(tokens TokenVerifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/whoami", RequireAuth(tokens, nil), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"uid": UIDFromContext(c)})
	})
	return r
}

func TestRequireAuth_NoCredentials(t *testing.T) {
	svc := NewTokenService("test-secret", 15*time.Minute, time.Hour, nil)
	r := newAuthTestRouter(svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"unauthenticated"}`, w.Body.String())
}

func TestRequireAuth_ValidBearer(t *testing.T) {
	svc := NewTokenService("test-secret", 15*time.Minute, time.Hour, nil)
	r := newAuthTestRouter(svc)

	token, _, err := svc.IssueAccess("u42")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"uid":"u42"}`, w.Body.String())
}

func TestRequireAuth_BadBearer(t *testing.T) {
	svc := NewTokenService("test-secret", 15*time.Minute, time.Hour, nil)
	r := newAuthTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer nonsense")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_ExpiredBearer(t *testing.T) {
	issuer := NewTokenService("test-secret", -time.Minute, time.Hour, nil)
	verifier := NewTokenService("test-secret", 15*time.Minute, time.Hour, nil)
	r := newAuthTestRouter(verifier)

	token, _, err := issuer.IssueAccess("u1")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}
