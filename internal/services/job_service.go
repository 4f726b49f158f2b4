package services

import (
	"context"
	"time"

	"github.com/careerconnect/connect-client/internal/crud"
	"github.com/careerconnect/connect-client/internal/models"
	"github.com/careerconnect/connect-client/pkg/sanitize"
)

const noJobsMessage = "No jobs found"

// A followed job list is checked every minute and re-fetched once the last
// fetch is five minutes old.
const (
	JobsRefreshCheck  = time.Minute
	JobsRefreshMaxAge = 5 * time.Minute
)

// JobService serves the job listings matched to the session user
type JobService struct {
	api Scoped[crud.Backend]
}

var _ JobServiceInterface = (*JobService)(nil)

// NewJobService creates a new JobService
func NewJobService(api Scoped[crud.Backend]) *JobService {
	return &JobService{api: api}
}

// List returns the session user's job postings
func (s *JobService) List(ctx context.Context, sess models.Session) (*models.JobsView, error) {
	jobs, err := crud.Jobs(s.api(sess.Token)).List(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}

	view := &models.JobsView{Jobs: formatJobs(jobs)}
	if len(jobs) == 0 {
		view.Jobs = []models.JobPosting{}
		view.Message = noJobsMessage
	}
	return view, nil
}

// Create adds a job posting for the session user
func (s *JobService) Create(ctx context.Context, sess models.Session, req *models.CreateJobRequest) (*models.JobPosting, error) {
	payload := *req
	payload.UserID = sess.UserID

	job, err := crud.Jobs(s.api(sess.Token)).Create(ctx, payload, nil)
	if err != nil {
		return nil, err
	}
	job.Description = sanitize.JobText(job.Description)
	return &job, nil
}

// Refresher keeps the session user's job list fresh for a follow view.
// maxAge <= 0 uses JobsRefreshMaxAge.
func (s *JobService) Refresher(sess models.Session, maxAge time.Duration) *crud.Refresher[*models.JobsView] {
	if maxAge <= 0 {
		maxAge = JobsRefreshMaxAge
	}
	return crud.NewRefresher("jobs", func(ctx context.Context) (*models.JobsView, error) {
		return s.List(ctx, sess)
	}, min(JobsRefreshCheck, maxAge), maxAge)
}

// Delete removes a job posting
func (s *JobService) Delete(ctx context.Context, sess models.Session, jobID int) error {
	return crud.Jobs(s.api(sess.Token)).Delete(ctx, jobID)
}

func formatJobs(jobs []models.JobPosting) []models.JobPosting {
	out := make([]models.JobPosting, len(jobs))
	for i, job := range jobs {
		job.Description = sanitize.JobText(job.Description)
		out[i] = job
	}
	return out
}
