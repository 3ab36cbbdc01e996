package handler

import (
	"net/http"
	"strings"
	"time"

	"taskdesk/internal/auth"
	"taskdesk/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	secret []byte
	ttl    time.Duration
	delay  service.Delayer
}

// NewAuthHandler signs tokens with secret. delay simulates the login round
// trip; nil means no delay.
func NewAuthHandler(secret string, ttl time.Duration, delay service.Delayer) *AuthHandler {
	if delay == nil {
		delay = service.NoDelay{}
	}
	return &AuthHandler{secret: []byte(secret), ttl: ttl, delay: delay}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
	Email string `json:"email"`
}

// Login godoc
// @Summary      Log in
// @Description  Placeholder authentication: any non-empty email and password are accepted.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        credentials  body  LoginRequest  true  "Credentials"
// @Success      200  {object}  AuthResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if err := auth.Authenticate(email, req.Password); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if err := h.delay.Wait(c.Request.Context()); err != nil {
		respondError(c, err, "Login failed")
		return
	}

	token, err := auth.GenerateToken(h.secret, email, h.ttl)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
		return
	}

	c.JSON(http.StatusOK, AuthResponse{Token: token, Email: email})
}
