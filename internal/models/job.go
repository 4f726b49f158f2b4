package models

// JobPosting is a job listing matched to the user's skills
type JobPosting struct {
	JobID          int    `json:"jobId"`
	Title          string `json:"title"`
	Company        string `json:"company"`
	Location       string `json:"location,omitempty"`
	EmploymentType string `json:"employmentType,omitempty"`
	Description    string `json:"description,omitempty"`
	CompanyLogo    string `json:"companyLogo,omitempty"`
	ApplyLink      string `json:"applyLink,omitempty"`
	PostedAt       string `json:"postedAt,omitempty"`
	SearchedSkill  string `json:"searchedSkill,omitempty"`
	UserID         int    `json:"userId,omitempty"`
}

// CreateJobRequest is the payload for POST /api/jobs
type CreateJobRequest struct {
	UserID         int    `json:"userId" validate:"required,gt=0"`
	Title          string `json:"title" binding:"required,max=200" validate:"required,max=200"`
	Company        string `json:"company" binding:"required,max=200" validate:"required,max=200"`
	Location       string `json:"location" binding:"max=200" validate:"max=200"`
	EmploymentType string `json:"employmentType" binding:"max=50" validate:"max=50"`
	Description    string `json:"description" binding:"max=10000" validate:"max=10000"`
	ApplyLink      string `json:"applyLink" binding:"omitempty,url" validate:"omitempty,url"`
	SearchedSkill  string `json:"searchedSkill" binding:"max=100" validate:"max=100"`
}

// JobsResponse wraps GET /api/jobs/user/:id
type JobsResponse struct {
	Jobs []JobPosting `json:"jobs"`
}

// JobResponse wraps the create response
type JobResponse struct {
	Job JobPosting `json:"job"`
}

// EntityID identifies the job posting in a collection
func (j JobPosting) EntityID() int { return j.JobID }

// JobsView is the job listings view. Empty is a state, not an error.
type JobsView struct {
	Jobs    []JobPosting `json:"jobs"`
	Message string       `json:"message,omitempty"`
}
