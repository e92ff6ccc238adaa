package handlers

import (
	"net/http"
	"time"

	"railres/internal/auth"
	"railres/internal/logger"
	"railres/internal/middleware"
	"railres/internal/models"

	"github.com/gin-gonic/gin"
)

// Register - POST /api/users/register
// Зарегистрировать пользователя
func (h *Handlers) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.services.Users.Register(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err, "Failed to register user")
		return
	}

	c.JSON(http.StatusCreated, models.RegisterResponse{
		Username: user.Username,
		FullName: user.FullName,
		Message:  "Registration successful!",
	})
}

// Login - POST /api/users/login
// Выдать токен сессии
func (h *Handlers) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.services.Users.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		handleServiceError(c, err, "Failed to log in")
		return
	}

	role := auth.RoleUser
	if user.IsAdmin {
		role = auth.RoleAdmin
	}
	token, expiresAt, err := h.issuer.Issue(user.Username, role)
	if err != nil {
		handleServiceError(c, err, "Failed to issue token")
		return
	}

	c.JSON(http.StatusOK, models.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Message:   "Welcome, " + user.FullName + "!",
	})
}

// Logout - POST /api/users/logout
// Отозвать текущий токен
func (h *Handlers) Logout(c *gin.Context) {
	tokenID := c.GetString(middleware.TokenIDKey)
	ttl := time.Duration(0)
	if v, ok := c.Get(middleware.TokenExpiresKey); ok {
		if expiresAt, ok := v.(time.Time); ok {
			ttl = time.Until(expiresAt)
		}
	}

	if err := h.revocations.Revoke(c.Request.Context(), tokenID, ttl); err != nil {
		handleServiceError(c, err, "Failed to log out")
		return
	}

	logger.WithContext(c.Request.Context()).Info("User logged out")
	c.Status(http.StatusNoContent)
}
