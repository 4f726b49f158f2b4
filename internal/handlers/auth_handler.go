package handlers

import (
	"net/http"

	"github.com/careerconnect/connect-client/internal/guard"
	"github.com/careerconnect/connect-client/internal/middleware"
	"github.com/careerconnect/connect-client/internal/models"
	"github.com/careerconnect/connect-client/internal/services"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles login, registration and logout
type AuthHandler struct {
	auth        services.AuthServiceInterface
	connections services.ConnectionServiceInterface
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(auth services.AuthServiceInterface, connections services.ConnectionServiceInterface) *AuthHandler {
	return &AuthHandler{
		auth:        auth,
		connections: connections,
	}
}

// Home handles GET /. Signed-in visitors are told where their dashboard is.
func (h *AuthHandler) Home(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	if !sess.IsAuthenticated() {
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"authenticated": true,
		"role":          sess.Role,
		"landing":       guard.LandingFor(sess.Role),
	})
}

// Login handles POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	store, err := middleware.GetSessionStore(c)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Session unavailable", err)
		return
	}

	var req models.LoginRequest
	if !bind(c, &req) {
		return
	}

	view, err := h.auth.Login(c.Request.Context(), store, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// Register handles POST /register (multipart with optional profile_pic)
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if !bind(c, &req) {
		return
	}

	picture, err := formAttachment(c, "profile_pic")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid profile picture", err)
		return
	}

	message, err := h.auth.Register(c.Request.Context(), &req, picture)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"message":    message,
		"redirectTo": guard.LoginPath,
	})
}

// Logout handles POST /logout. It succeeds with or without a session.
func (h *AuthHandler) Logout(c *gin.Context) {
	store, err := middleware.GetSessionStore(c)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Session unavailable", err)
		return
	}

	userID := store.Get().UserID
	if err := h.auth.Logout(store); err != nil {
		respondServiceError(c, err)
		return
	}
	if userID > 0 {
		h.connections.Forget(userID)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"redirectTo": guard.LoginPath,
	})
}
