package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/worktrail/backend/internal/middleware"
	"github.com/worktrail/backend/internal/model"
	"github.com/worktrail/backend/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Email    string     `json:"email" binding:"required,email,max=128"`
		Name     string     `json:"name" binding:"required,max=64"`
		Password string     `json:"password" binding:"required,min=8"`
		Role     model.Role `json:"role" binding:"omitempty,oneof=admin manager user"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, 40001, "invalid payload: "+err.Error())
		return
	}

	user, token, expireAt, err := h.authService.Register(req.Email, req.Name, req.Password, req.Role)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, gin.H{
		"user":         user.Brief(),
		"access_token": token,
		"expires_at":   expireAt,
	})
}

// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, 40001, "invalid payload: "+err.Error())
		return
	}

	user, token, expireAt, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, gin.H{
		"user":         user.Brief(),
		"access_token": token,
		"expires_at":   expireAt,
	})
}

// POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	tokenID := c.GetString("tokenID")
	expiry, _ := c.Get("tokenExpiry")
	if err := h.authService.Logout(c.Request.Context(), tokenID, expiry.(time.Time)); err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, gin.H{"message": "logged out"})
}

// GET /auth/me
func (h *AuthHandler) GetMe(c *gin.Context) {
	user := middleware.GetCurrentUser(c)
	Success(c, gin.H{
		"id":        user.ID,
		"email":     user.Email,
		"name":      user.Name,
		"role":      user.Role,
		"joined_at": user.JoinedAt,
	})
}
