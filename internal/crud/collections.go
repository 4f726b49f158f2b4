package crud

import (
	"context"

	"github.com/careerconnect/connect-client/internal/models"
	"github.com/careerconnect/connect-client/pkg/backend"
)

// Backend is the subset of the backend client the collections use
type Backend interface {
	Skills(ctx context.Context) ([]models.Skill, error)
	AddSkill(ctx context.Context, req models.AddSkillRequest) (models.Skill, error)
	DeleteSkill(ctx context.Context, skillID int) error
	UserSkills(ctx context.Context, userID int) ([]models.Skill, error)
	AssignSkill(ctx context.Context, req models.AssignSkillRequest) error
	RemoveUserSkill(ctx context.Context, userID, skillID int) error

	Stories(ctx context.Context) ([]models.Story, error)
	UserStories(ctx context.Context, userID int) ([]models.Story, error)
	CreateStory(ctx context.Context, req models.CreateStoryRequest, thumbnail *backend.Attachment) (models.Story, error)
	DeleteStory(ctx context.Context, storyID int) error

	Resources(ctx context.Context) ([]models.Resource, error)
	MentorResources(ctx context.Context, mentorID int) ([]models.Resource, error)
	CreateResource(ctx context.Context, req models.CreateResourceRequest) (models.Resource, error)
	DeleteResource(ctx context.Context, resourceID int) error

	UserJobs(ctx context.Context, userID int) ([]models.JobPosting, error)
	CreateJob(ctx context.Context, req models.CreateJobRequest) (models.JobPosting, error)
	DeleteJob(ctx context.Context, jobID int) error
}

var _ Backend = (*backend.Client)(nil)

type (
	SkillCollection     = Collection[models.Skill, models.AddSkillRequest]
	UserSkillCollection = Collection[models.Skill, models.AssignSkillRequest]
	StoryCollection     = Collection[models.Story, models.CreateStoryRequest]
	ResourceCollection  = Collection[models.Resource, models.CreateResourceRequest]
	JobCollection       = Collection[models.JobPosting, models.CreateJobRequest]
)

// Skills is the skill catalog managed by admins
func Skills(api Backend) *SkillCollection {
	return NewCollection(Endpoints[models.Skill, models.AddSkillRequest]{
		Name: "skill",
		List: func(ctx context.Context, _ int) ([]models.Skill, error) {
			return api.Skills(ctx)
		},
		Create: func(ctx context.Context, req models.AddSkillRequest, _ *backend.Attachment) (models.Skill, error) {
			return api.AddSkill(ctx, req)
		},
		Delete: api.DeleteSkill,
	})
}

// UserSkills is the set of skills assigned to userID
func UserSkills(api Backend, userID int) *UserSkillCollection {
	return NewCollection(Endpoints[models.Skill, models.AssignSkillRequest]{
		Name: "user_skill",
		List: func(ctx context.Context, _ int) ([]models.Skill, error) {
			return api.UserSkills(ctx, userID)
		},
		Create: func(ctx context.Context, req models.AssignSkillRequest, _ *backend.Attachment) (models.Skill, error) {
			req.UserID = userID
			// the assign endpoint answers with a message only; the list is re-fetched
			return models.Skill{}, api.AssignSkill(ctx, req)
		},
		Delete: func(ctx context.Context, skillID int) error {
			return api.RemoveUserSkill(ctx, userID, skillID)
		},
	})
}

// Stories lists every story, or a single author's when scoped
func Stories(api Backend) *StoryCollection {
	return NewCollection(Endpoints[models.Story, models.CreateStoryRequest]{
		Name: "story",
		List: func(ctx context.Context, authorID int) ([]models.Story, error) {
			if authorID > 0 {
				return api.UserStories(ctx, authorID)
			}
			return api.Stories(ctx)
		},
		Create: api.CreateStory,
		Delete: api.DeleteStory,
	})
}

// Resources lists every resource, or a single mentor's when scoped
func Resources(api Backend) *ResourceCollection {
	return NewCollection(Endpoints[models.Resource, models.CreateResourceRequest]{
		Name: "resource",
		List: func(ctx context.Context, mentorID int) ([]models.Resource, error) {
			if mentorID > 0 {
				return api.MentorResources(ctx, mentorID)
			}
			return api.Resources(ctx)
		},
		Create: func(ctx context.Context, req models.CreateResourceRequest, _ *backend.Attachment) (models.Resource, error) {
			return api.CreateResource(ctx, req)
		},
		Delete: api.DeleteResource,
	})
}

// Jobs lists the job postings of a user
func Jobs(api Backend) *JobCollection {
	return NewCollection(Endpoints[models.JobPosting, models.CreateJobRequest]{
		Name: "job",
		List: api.UserJobs,
		Create: func(ctx context.Context, req models.CreateJobRequest, _ *backend.Attachment) (models.JobPosting, error) {
			return api.CreateJob(ctx, req)
		},
		Delete: api.DeleteJob,
	})
}
