package handlers

import (
	"io"
	"net/http"

	"github.com/careerconnect/connect-client/internal/middleware"
	"github.com/careerconnect/connect-client/internal/models"
	"github.com/careerconnect/connect-client/internal/services"
	apperrors "github.com/careerconnect/connect-client/pkg/errors"
	"github.com/careerconnect/connect-client/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MessageHandler serves the conversation list, threads and live updates
type MessageHandler struct {
	messaging   services.MessagingServiceInterface
	connections services.ConnectionServiceInterface
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(messaging services.MessagingServiceInterface, connections services.ConnectionServiceInterface) *MessageHandler {
	return &MessageHandler{
		messaging:   messaging,
		connections: connections,
	}
}

// Conversations handles GET /messages. Every accepted connection is a
// conversation.
func (h *MessageHandler) Conversations(c *gin.Context) {
	view, err := h.connections.Connections(c.Request.Context(), middleware.CurrentSession(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// Thread handles GET /messages/:peerId
func (h *MessageHandler) Thread(c *gin.Context) {
	peerID, ok := paramID(c, "peerId")
	if !ok {
		return
	}

	view, err := h.messaging.Thread(c.Request.Context(), middleware.CurrentSession(c), peerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// Send handles POST /messages/:peerId with {"content": "..."}. The message
// shows up in the thread on its next refresh.
func (h *MessageHandler) Send(c *gin.Context) {
	peerID, ok := paramID(c, "peerId")
	if !ok {
		return
	}

	var body struct {
		Content string `json:"content" form:"content" binding:"required,max=10000"`
	}
	if !bind(c, &body) {
		return
	}

	if err := h.messaging.Send(c.Request.Context(), middleware.CurrentSession(c), peerID, body.Content); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"success": true})
}

// Stream handles GET /messages/:peerId/stream. The conversation is polled
// for as long as the client stays connected and every refresh is pushed as
// a "thread" server-sent event. A failed refresh is pushed as an "error"
// event carrying the inline message.
func (h *MessageHandler) Stream(c *gin.Context) {
	peerID, ok := paramID(c, "peerId")
	if !ok {
		return
	}
	sess := middleware.CurrentSession(c)
	if peerID == sess.UserID {
		respondError(c, http.StatusBadRequest, "Invalid peerId", nil)
		return
	}

	ctx := c.Request.Context()
	poller := h.messaging.Open(sess, peerID)
	if err := poller.Start(ctx); err != nil {
		respondServiceError(c, err)
		return
	}
	defer poller.Stop()

	logger.Debug("Conversation stream opened", zap.Int("user_id", sess.UserID), zap.Int("peer_id", peerID))

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Status(http.StatusOK)
	c.Writer.WriteHeaderNow()
	c.Writer.Flush()

	updates, failures := poller.Updates(), poller.Failures()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case err, open := <-failures:
			if !open {
				return false
			}
			c.SSEvent("error", gin.H{"message": apperrors.UserMessage(err)})
			return true
		case messages, open := <-updates:
			if !open {
				return false
			}
			c.SSEvent("thread", models.ThreadView{
				PeerID:   peerID,
				Messages: services.SanitizeMessages(messages),
			})
			return true
		}
	})

	logger.Debug("Conversation stream closed", zap.Int("user_id", sess.UserID), zap.Int("peer_id", peerID))
}
