package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/careerconnect/connect-client/internal/models"
)

// FetchThread returns the whole conversation between userID and peerID,
// ordered by creation time as the backend delivers it.
func (c *Client) FetchThread(ctx context.Context, userID, peerID int) ([]models.Message, error) {
	var resp models.MessagesResponse
	path := fmt.Sprintf("/api/messages/user/%d/receiver/%d", userID, peerID)
	if err := c.getJSON(ctx, "fetchThread", path, &resp); err != nil {
		return nil, err
	}
	return resp.Messages, nil
}

// SendMessage posts one message
func (c *Client) SendMessage(ctx context.Context, senderID, receiverID int, content string) error {
	payload := models.SendMessageRequest{SenderID: senderID, ReceiverID: receiverID, Content: content}
	return c.sendJSON(ctx, "sendMessage", http.MethodPost, "/api/messages/send", payload, nil)
}
