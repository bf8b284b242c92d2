package handlers

import (
	"errors"
	"net/http"

	"github.com/zulven/arkivia-collab-todo/internal/auth"
	"github.com/zulven/arkivia-collab-todo/internal/dto"
	"github.com/zulven/arkivia-collab-todo/internal/service"

	"github.com/gin-gonic/gin"
)

const sessionMaxAgeSeconds = 24 * 60 * 60

// AuthHandler handles register, login, refresh, logout and the current
// profile. Both the session cookie and the bearer token pair are issued, so
// browser and API clients authenticate the same account either way.
type AuthHandler struct {
	sessions *auth.Store
	tokens   *auth.TokenService
	userSvc  *service.UserService
}

// NewAuthHandler returns a new AuthHandler.
func NewAuthHandler(sessions *auth.Store, tokens *auth.TokenService, userSvc *service.UserService) *AuthHandler {
	return &AuthHandler{sessions: sessions, tokens: tokens, userSvc: userSvc}
}

// Register godoc
// @Summary      Register
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "Account"
// @Success      201   {object}  dto.AuthResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": codeValidation})
		return
	}
	user, err := h.userSvc.Register(c.Request.Context(), req.Username, req.Password, req.Email, req.DisplayName)
	if err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "username_taken"})
			return
		}
		writeServiceError(c, err)
		return
	}
	h.establish(c, http.StatusCreated, user.UID, dto.NewUserResponse(user))
}

// Login godoc
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "Credentials"
// @Success      200   {object}  dto.AuthResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": codeValidation})
		return
	}
	user, err := h.userSvc.ValidateCredentials(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": codeUnauthenticated})
			return
		}
		writeServiceError(c, err)
		return
	}
	h.establish(c, http.StatusOK, user.UID, dto.NewUserResponse(user))
}

// Refresh godoc
// @Summary      Swap a refresh token for a fresh token pair
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RefreshRequest  true  "Refresh token"
// @Success      200   {object}  dto.TokenResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": codeValidation})
		return
	}
	access, refresh, expiresAt, err := h.tokens.RefreshTokens(c.Request.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidRefreshToken) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": codeUnauthenticated})
			return
		}
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TokenResponse{AccessToken: access, RefreshToken: refresh, ExpiresAt: expiresAt})
}

// Logout godoc
// @Summary      Logout
// @Tags         auth
// @Success      204
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	sessionID, err := c.Cookie(auth.SessionCookieName)
	if err == nil && sessionID != "" {
		_ = h.sessions.Delete(c.Request.Context(), sessionID)
	}
	c.SetCookie(auth.SessionCookieName, "", -1, "/", "", false, true)
	c.Status(http.StatusNoContent)
}

// Me godoc
// @Summary      Current profile
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.UserResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	uid, ok := requireUID(c)
	if !ok {
		return
	}
	user, err := h.userSvc.GetByUID(c.Request.Context(), uid)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

func (h *AuthHandler) establish(c *gin.Context, status int, uid string, user dto.UserResponse) {
	sessionID, err := h.sessions.Create(c.Request.Context(), uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": codeStoreUnavailable})
		return
	}
	access, refresh, expiresAt, err := h.tokens.GenerateTokens(c.Request.Context(), uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": codeStoreUnavailable})
		return
	}
	c.SetCookie(auth.SessionCookieName, sessionID, sessionMaxAgeSeconds, "/", "", false, true)
	c.JSON(status, dto.AuthResponse{
		OK:   true,
		User: user,
		Tokens: dto.TokenResponse{
			AccessToken:  access,
			RefreshToken: refresh,
			ExpiresAt:    expiresAt,
		},
	})
}
