package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/careerconnect/connect-client/internal/models"
)

// SendConnectionRequest creates a pending request from senderID to receiverID.
// A request that already exists between the pair comes back as a 409.
func (c *Client) SendConnectionRequest(ctx context.Context, senderID, receiverID int) error {
	payload := models.SendConnectionRequest{SenderID: senderID, ReceiverID: receiverID}
	return c.sendJSON(ctx, "sendConnectionRequest", http.MethodPost, "/api/connections/send", payload, nil)
}

// PendingRequests lists the requests waiting for userID's decision
func (c *Client) PendingRequests(ctx context.Context, userID int) ([]models.ConnectionRequest, error) {
	var resp models.PendingRequestsResponse
	if err := c.getJSON(ctx, "pendingRequests", fmt.Sprintf("/api/connections/requests/%d", userID), &resp); err != nil {
		return nil, err
	}
	return resp.PendingRequests, nil
}

// Connections lists userID's accepted connections
func (c *Client) Connections(ctx context.Context, userID int) ([]models.ConnectionRequest, error) {
	var resp models.ConnectionsResponse
	if err := c.getJSON(ctx, "connections", fmt.Sprintf("/api/connections/%d", userID), &resp); err != nil {
		return nil, err
	}
	return resp.Connections, nil
}

// DecideConnection accepts or rejects a request. Rejecting an accepted
// connection removes it.
func (c *Client) DecideConnection(ctx context.Context, connectionID int, action models.DecisionAction) error {
	payload := models.DecideConnectionRequest{ConnectionID: connectionID, Action: action}
	return c.sendJSON(ctx, "decideConnection", http.MethodPost, "/api/connections/decide", payload, nil)
}
