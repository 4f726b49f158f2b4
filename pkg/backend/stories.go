package backend

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/careerconnect/connect-client/internal/models"
)

// Stories lists every published story
func (c *Client) Stories(ctx context.Context) ([]models.Story, error) {
	var resp models.StoriesResponse
	if err := c.getJSON(ctx, "listStories", "/api/stories/", &resp); err != nil {
		return nil, err
	}
	return resp.Stories, nil
}

// UserStories lists the stories written by userID
func (c *Client) UserStories(ctx context.Context, userID int) ([]models.Story, error) {
	var resp models.StoriesResponse
	if err := c.getJSON(ctx, "listUserStories", fmt.Sprintf("/api/stories/user/%d", userID), &resp); err != nil {
		return nil, err
	}
	return resp.Stories, nil
}

// Story fetches one story with its content
func (c *Client) Story(ctx context.Context, storyID int) (*models.Story, error) {
	var resp models.StoryResponse
	if err := c.getJSON(ctx, "getStory", fmt.Sprintf("/api/stories/%d", storyID), &resp); err != nil {
		return nil, err
	}
	return &resp.Story, nil
}

// CreateStory publishes a story. Without a thumbnail the backend's
// placeholder image name is sent instead.
func (c *Client) CreateStory(ctx context.Context, req models.CreateStoryRequest, thumbnail *Attachment) (models.Story, error) {
	form := &multipartForm{}
	form.add("story_name", req.StoryName)
	form.add("story_description", req.StoryDescription)
	form.add("content", req.Content)
	form.add("author", strconv.Itoa(req.AuthorID))
	form.add("suggested_skill", strconv.Itoa(req.SuggestedSkill))
	if thumbnail != nil {
		form.attach("thumbnail", thumbnail)
	} else {
		form.add("thumbnail", "placeholder-image.webp")
	}

	var resp models.StoryResponse
	if err := c.sendMultipart(ctx, "createStory", http.MethodPost, "/api/stories/", form, &resp); err != nil {
		return models.Story{}, err
	}
	return resp.Story, nil
}

// DeleteStory removes a story
func (c *Client) DeleteStory(ctx context.Context, storyID int) error {
	return c.deleteJSON(ctx, "deleteStory", fmt.Sprintf("/api/stories/%d", storyID), nil)
}
