//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"aura-inn/internal/handler/api"
	reqdto "aura-inn/internal/handler/dto/request"
	resdto "aura-inn/internal/handler/dto/response"
	"aura-inn/internal/pkg/config"
	"aura-inn/internal/pkg/cookie"
	"aura-inn/internal/pkg/errs"
	"aura-inn/internal/usecase/commands"
	"aura-inn/tests/common/httptest"
	commandsmock "aura-inn/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AuthHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockAuthCommands
}

func (s *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockAuthCommands(s.mockCtrl)
	handler := api.NewAuthHandler(s.mockCommands, config.NewTestConfig())

	s.router.POST("/api/auth/login", handler.Login)
	s.router.POST("/api/auth/logout", handler.Logout)
}

func (s *AuthHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}

func (s *AuthHandlerTestSuite) TestLogin() {
	path := "/api/auth/login"
	loginReq := reqdto.LoginRequest{Username: "admin", Password: config.TestAdminPassword}

	s.Run("success: returns the token and sets the session cookie", func() {
		expiresAt := time.Now().Add(time.Hour)
		s.mockCommands.EXPECT().Login(gomock.Any(), loginReq).
			Return(&commands.LoginResult{Username: "admin", Token: "signed-token", ExpiresAt: expiresAt}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, path, loginReq, "")

		var body resdto.LoginResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.True(body.Success)
		s.Equal("admin", body.Username)
		s.Equal("signed-token", body.Token)

		c := httptest.ExtractCookie(rec, cookie.SessionCookieName)
		s.Require().NotNil(c)
		s.Equal("signed-token", c.Value)
		s.True(c.HttpOnly)
		s.Positive(c.MaxAge)
	})

	s.Run("error: 400 when the password is missing", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, path, map[string]any{"username": "admin"}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("error: 401 on bad credentials", func() {
		s.mockCommands.EXPECT().Login(gomock.Any(), gomock.Any()).
			Return(nil, errs.Mark(errors.New("password mismatch"), commands.ErrInvalidCredentials))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, path,
			reqdto.LoginRequest{Username: "admin", Password: "wrong"}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Invalid username or password")
		s.Nil(httptest.ExtractCookie(rec, cookie.SessionCookieName))
	})

	s.Run("error: 500 when token signing fails", func() {
		s.mockCommands.EXPECT().Login(gomock.Any(), gomock.Any()).Return(nil, commands.ErrTokenGeneration)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, path, loginReq, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}

func (s *AuthHandlerTestSuite) TestLogout() {
	rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/auth/logout", nil, "")

	var body resdto.MessageResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
	s.True(body.Success)

	c := httptest.ExtractCookie(rec, cookie.SessionCookieName)
	s.Require().NotNil(c)
	s.Empty(c.Value)
	s.Negative(c.MaxAge)
}
