package handlers

import (
	"net/http"

	"github.com/careerconnect/connect-client/internal/connection"
	"github.com/careerconnect/connect-client/internal/middleware"
	"github.com/careerconnect/connect-client/internal/models"
	"github.com/careerconnect/connect-client/internal/services"
	"github.com/gin-gonic/gin"
)

// ConnectionHandler serves explore, requests and my-connections
type ConnectionHandler struct {
	service services.ConnectionServiceInterface
}

// NewConnectionHandler creates a new ConnectionHandler
func NewConnectionHandler(service services.ConnectionServiceInterface) *ConnectionHandler {
	return &ConnectionHandler{service: service}
}

// Explore handles GET /connections?search=&tab=
func (h *ConnectionHandler) Explore(c *gin.Context) {
	tab := connection.ParseTab(c.Query("tab"))

	view, err := h.service.Explore(c.Request.Context(), middleware.CurrentSession(c), c.Query("search"), tab)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// SendRequest handles POST /connections/:userId
func (h *ConnectionHandler) SendRequest(c *gin.Context) {
	receiverID, ok := paramID(c, "userId")
	if !ok {
		return
	}

	if err := h.service.SendRequest(c.Request.Context(), middleware.CurrentSession(c), receiverID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "receiverId": receiverID})
}

// Requests handles GET /requests
func (h *ConnectionHandler) Requests(c *gin.Context) {
	view, err := h.service.IncomingRequests(c.Request.Context(), middleware.CurrentSession(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// Decide handles POST /requests/:connectionId with {"action": "accept"|"reject"}
func (h *ConnectionHandler) Decide(c *gin.Context) {
	connectionID, ok := paramID(c, "connectionId")
	if !ok {
		return
	}

	var body struct {
		Action models.DecisionAction `json:"action" form:"action" binding:"required,oneof=accept reject"`
	}
	if !bind(c, &body) {
		return
	}

	view, err := h.service.Decide(c.Request.Context(), middleware.CurrentSession(c), connectionID, body.Action)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// MyConnections handles GET /myconnections
func (h *ConnectionHandler) MyConnections(c *gin.Context) {
	view, err := h.service.Connections(c.Request.Context(), middleware.CurrentSession(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// Disconnect handles DELETE /myconnections/:connectionId
func (h *ConnectionHandler) Disconnect(c *gin.Context) {
	connectionID, ok := paramID(c, "connectionId")
	if !ok {
		return
	}

	view, err := h.service.Disconnect(c.Request.Context(), middleware.CurrentSession(c), connectionID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}
