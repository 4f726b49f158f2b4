package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/careerconnect/connect-client/internal/models"
)

// ListUsers returns every user for the explore view
func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := c.getJSON(ctx, "listUsers", "/api/users", &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetUser fetches one profile
func (c *Client) GetUser(ctx context.Context, userID int) (*models.User, error) {
	var user models.User
	if err := c.getJSON(ctx, "getUser", fmt.Sprintf("/api/users/%d", userID), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser saves profile edits
func (c *Client) UpdateUser(ctx context.Context, userID int, req models.ProfileUpdateRequest) (string, error) {
	var resp models.MessageResponse
	if err := c.sendJSON(ctx, "updateUser", http.MethodPut, fmt.Sprintf("/api/users/%d", userID), req, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}
