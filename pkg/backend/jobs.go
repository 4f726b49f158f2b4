package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/careerconnect/connect-client/internal/models"
)

// UserJobs lists the job postings matched to userID
func (c *Client) UserJobs(ctx context.Context, userID int) ([]models.JobPosting, error) {
	var resp models.JobsResponse
	if err := c.getJSON(ctx, "listJobs", fmt.Sprintf("/api/jobs/user/%d", userID), &resp); err != nil {
		return nil, err
	}
	return resp.Jobs, nil
}

// CreateJob saves a job posting for a user
func (c *Client) CreateJob(ctx context.Context, req models.CreateJobRequest) (models.JobPosting, error) {
	var resp models.JobResponse
	if err := c.sendJSON(ctx, "createJob", http.MethodPost, "/api/jobs", req, &resp); err != nil {
		return models.JobPosting{}, err
	}
	return resp.Job, nil
}

// DeleteJob removes a job posting
func (c *Client) DeleteJob(ctx context.Context, jobID int) error {
	return c.deleteJSON(ctx, "deleteJob", fmt.Sprintf("/api/jobs/%d", jobID), nil)
}
