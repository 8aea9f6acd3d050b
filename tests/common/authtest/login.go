//go:build unit || e2e

package authtest

import (
	"net/http"
	"testing"

	"aura-inn/internal/handler/dto/request"
	"aura-inn/internal/pkg/cookie"
	"aura-inn/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// LoginAdmin signs in through the API and returns the session cookie.
func LoginAdmin(t *testing.T, router *gin.Engine, username, password string) *http.Cookie {
	t.Helper()

	w := httptest.PerformRequest(t, router, http.MethodPost, "/api/auth/login",
		request.LoginRequest{Username: username, Password: password}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	session := httptest.ExtractCookie(w, cookie.SessionCookieName)
	require.NotNil(t, session, "session cookie not set")
	require.NotEmpty(t, session.Value, "session cookie is empty")

	return session
}
