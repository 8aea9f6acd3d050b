package api

import (
	"net/http"
	"time"

	reqdto "aura-inn/internal/handler/dto/request"
	resdto "aura-inn/internal/handler/dto/response"
	"aura-inn/internal/handler/httperr"
	"aura-inn/internal/pkg/config"
	"aura-inn/internal/pkg/cookie"
	"aura-inn/internal/pkg/errs"
	"aura-inn/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	cmds      commands.AuthCommands
	cookieCfg config.CookieConfig
}

func NewAuthHandler(cmds commands.AuthCommands, cfg config.Config) *AuthHandler {
	return &AuthHandler{cmds: cmds, cookieCfg: cfg.Cookie}
}

// @Summary Admin login
// @Description Issues a session token, returned in the body and set as an HttpOnly cookie
// @Tags auth
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body reqdto.LoginRequest true "Login request"
// @Success 200 {object} resdto.LoginResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req reqdto.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	result, err := h.cmds.Login(c.Request.Context(), req)
	if err != nil {
		if errs.Is(err, commands.ErrInvalidCredentials) {
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid username or password", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	cookie.SetSessionCookie(c, h.cookieCfg, result.Token, time.Until(result.ExpiresAt))
	c.JSON(http.StatusOK, resdto.LoginResponse{
		Success:   true,
		Username:  result.Username,
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
	})
}

// @Summary Admin logout
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.MessageResponse
// @Failure 401 {object} httperr.Response
// @Router /api/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	// Tokens are stateless; dropping the cookie is all the server can do.
	cookie.ClearSessionCookie(c, h.cookieCfg)
	c.JSON(http.StatusOK, resdto.MessageResponse{Success: true, Message: "Logged out"})
}
