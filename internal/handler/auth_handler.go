package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/divyeshvadher/silai-sahayak/internal/service"
)

type AuthHandler struct {
	svc *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Signup registers a new user and returns a token pair.
// POST /api/v1/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req service.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}
	user, tokens, err := h.svc.Signup(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			Conflict(c, err.Error())
			return
		}
		InternalError(c, "signup failed: "+err.Error())
		return
	}
	Created(c, gin.H{"user": user, "tokens": tokens})
}

// Login authenticates by email and password.
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}
	user, tokens, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			Unauthorized(c, err.Error())
			return
		}
		InternalError(c, "login failed: "+err.Error())
		return
	}
	Success(c, gin.H{"user": user, "tokens": tokens})
}

// Refresh exchanges a refresh token for a new token pair.
// POST /api/v1/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}
	tokens, err := h.svc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		Unauthorized(c, "invalid refresh token")
		return
	}
	Success(c, gin.H{"tokens": tokens})
}

// Me returns the authenticated user.
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.svc.Me(c.Request.Context(), GetUserID(c))
	if err != nil {
		NotFound(c, "user not found")
		return
	}
	Success(c, gin.H{"user": user})
}

// Logout is a client-side token discard; the server holds no session.
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	Success(c, gin.H{"message": "logged out"})
}
