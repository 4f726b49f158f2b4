package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/careerconnect/connect-client/internal/models"
)

// Resources lists every learning resource
func (c *Client) Resources(ctx context.Context) ([]models.Resource, error) {
	var resp models.ResourcesResponse
	if err := c.getJSON(ctx, "listResources", "/api/resources/", &resp); err != nil {
		return nil, err
	}
	return resp.Resources, nil
}

// MentorResources lists the resources a mentor published
func (c *Client) MentorResources(ctx context.Context, mentorID int) ([]models.Resource, error) {
	var resp models.ResourcesResponse
	if err := c.getJSON(ctx, "listMentorResources", fmt.Sprintf("/api/resources/mentor/%d", mentorID), &resp); err != nil {
		return nil, err
	}
	return resp.Resources, nil
}

// MentorID resolves the mentor record id of a user account
func (c *Client) MentorID(ctx context.Context, userID int) (int, error) {
	var resp models.MentorLookupResponse
	if err := c.getJSON(ctx, "lookupMentor", fmt.Sprintf("/api/mentorconnections/mentors/%d", userID), &resp); err != nil {
		return 0, err
	}
	return resp.Mentor.MentorID, nil
}

// CreateResource publishes a resource
func (c *Client) CreateResource(ctx context.Context, req models.CreateResourceRequest) (models.Resource, error) {
	var resp models.ResourceResponse
	if err := c.sendJSON(ctx, "createResource", http.MethodPost, "/api/resources/add", req, &resp); err != nil {
		return models.Resource{}, err
	}
	return resp.Resource, nil
}

// DeleteResource removes a resource
func (c *Client) DeleteResource(ctx context.Context, resourceID int) error {
	return c.deleteJSON(ctx, "deleteResource", fmt.Sprintf("/api/resources/delete/%d", resourceID), nil)
}
