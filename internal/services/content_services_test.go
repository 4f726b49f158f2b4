package services_test

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/careerconnect/connect-client/internal/crud"
	"github.com/careerconnect/connect-client/internal/messaging"
	"github.com/careerconnect/connect-client/internal/models"
	"github.com/careerconnect/connect-client/internal/services"
	apperrors "github.com/careerconnect/connect-client/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var skillCatalog = map[string]any{"skills": []map[string]any{
	{"skill_id": 1, "skill_name": "Go"},
	{"skill_id": 2, "skill_name": "Rust"},
	{"skill_id": 3, "skill_name": "SQL"},
}}

func TestResourceService_FormDegradesWhenMentorLookupFails(t *testing.T) {
	client := newBackend(t, map[string]http.HandlerFunc{
		"GET /api/skills/all":                     respond(http.StatusOK, skillCatalog),
		"GET /api/mentorconnections/mentors/{id}": respond(http.StatusInternalServerError, map[string]string{"message": "boom"}),
	})
	svc := services.NewResourceService(func(token string) services.ResourceBackend { return client.WithToken(token) })

	form := svc.Form(context.Background(), testSession)

	assert.Len(t, form.Skills, 3)
	assert.Zero(t, form.MentorID)
	assert.NotEmpty(t, form.Error)
}

func TestResourceService_FormComplete(t *testing.T) {
	client := newBackend(t, map[string]http.HandlerFunc{
		"GET /api/skills/all":                     respond(http.StatusOK, skillCatalog),
		"GET /api/mentorconnections/mentors/{id}": respond(http.StatusOK, map[string]any{"mentor": map[string]int{"mentor_id": 42}}),
	})
	svc := services.NewResourceService(func(token string) services.ResourceBackend { return client.WithToken(token) })

	form := svc.Form(context.Background(), testSession)

	assert.Equal(t, 42, form.MentorID)
	assert.Empty(t, form.Error)
}

func TestResourceService_CreateUsesMentorID(t *testing.T) {
	client := newBackend(t, map[string]http.HandlerFunc{
		"GET /api/mentorconnections/mentors/7": respond(http.StatusOK, map[string]any{"mentor": map[string]int{"mentor_id": 42}}),
		"POST /api/resources/add": func(w http.ResponseWriter, r *http.Request) {
			var body models.CreateResourceRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, 42, body.MentorID)
			respond(http.StatusCreated, map[string]any{"resource": map[string]any{
				"resource_id": 9, "type": "video", "resource_name": body.ResourceName, "mentor_id": 42,
			}})(w, r)
		},
	})
	svc := services.NewResourceService(func(token string) services.ResourceBackend { return client.WithToken(token) })

	res, err := svc.Create(context.Background(), testSession, &models.CreateResourceRequest{
		Type:                models.ResourceVideo,
		ResourceName:        "Intro",
		ResourceDescription: "Basics",
		Content:             "https://example.com/v",
		SuggestedSkill:      1,
	})

	require.NoError(t, err)
	assert.Equal(t, 9, res.ResourceID)
}

func TestResourceService_ListFilters(t *testing.T) {
	client := newBackend(t, map[string]http.HandlerFunc{
		"GET /api/skills/all": respond(http.StatusOK, skillCatalog),
		"GET /api/resources/{$}": respond(http.StatusOK, map[string]any{"resources": []map[string]any{
			{"resource_id": 1, "resource_name": "Go tour", "resource_description": "learn go", "suggested_skill": 1},
			{"resource_id": 2, "resource_name": "Rust book", "resource_description": "ownership", "suggested_skill": 2},
		}}),
	})
	svc := services.NewResourceService(func(token string) services.ResourceBackend { return client.WithToken(token) })

	view, err := svc.List(context.Background(), testSession, "", 2)

	require.NoError(t, err)
	require.Len(t, view.Resources, 1)
	assert.Equal(t, "Rust book", view.Resources[0].ResourceName)
	assert.Len(t, view.Skills, 3)
}

func TestSkillService_AssignRefreshesView(t *testing.T) {
	var assigned atomic.Bool
	client := newBackend(t, map[string]http.HandlerFunc{
		"GET /api/skills/all": respond(http.StatusOK, skillCatalog),
		"GET /api/userskills/fetch/7": func(w http.ResponseWriter, r *http.Request) {
			skills := []map[string]any{{"skill_id": 1, "skill_name": "Go"}}
			if assigned.Load() {
				skills = append(skills, map[string]any{"skill_id": 2, "skill_name": "Rust"})
			}
			respond(http.StatusOK, map[string]any{"skills": skills})(w, r)
		},
		"POST /api/userskills/assign": func(w http.ResponseWriter, r *http.Request) {
			var body models.AssignSkillRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, models.AssignSkillRequest{UserID: 7, SkillID: 2}, body)
			assigned.Store(true)
			respond(http.StatusOK, map[string]string{"message": "assigned"})(w, r)
		},
	})
	svc := services.NewSkillService(func(token string) crud.Backend { return client.WithToken(token) })
	ctx := context.Background()

	before, err := svc.UserSkills(ctx, testSession, 7, "")
	require.NoError(t, err)
	assert.Len(t, before.Assigned, 1)
	assert.Len(t, before.Available, 2)

	after, err := svc.AssignSkill(ctx, testSession, 7, 2)
	require.NoError(t, err)
	assert.Len(t, after.Assigned, 2)
	require.Len(t, after.Available, 1)
	assert.Equal(t, "SQL", after.Available[0].SkillName)
}

func TestSkillService_RejectsOtherUsers(t *testing.T) {
	svc := services.NewSkillService(func(string) crud.Backend { return nil })

	_, err := svc.UserSkills(context.Background(), testSession, 8, "")
	assert.ErrorIs(t, err, services.ErrNotOwner)

	err = svc.RemoveSkill(context.Background(), testSession, 8, 1)
	assert.ErrorIs(t, err, services.ErrNotOwner)
}

func TestStoryService_CreateSetsAuthor(t *testing.T) {
	client := newBackend(t, map[string]http.HandlerFunc{
		"POST /api/stories/{$}": func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseMultipartForm(1<<20))
			assert.Equal(t, "7", r.FormValue("author"))
			respond(http.StatusCreated, map[string]any{"story": map[string]any{"story_id": 3, "story_name": r.FormValue("story_name")}})(w, r)
		},
	})
	svc := services.NewStoryService(func(token string) services.StoryBackend { return client.WithToken(token) })

	story, err := svc.Create(context.Background(), testSession, &models.CreateStoryRequest{
		StoryName:        "My path",
		StoryDescription: "How I got here",
		Content:          "<p>Hello</p>",
		SuggestedSkill:   1,
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, 3, story.StoryID)
}

func TestStoryService_GetSanitizesContent(t *testing.T) {
	client := newBackend(t, map[string]http.HandlerFunc{
		"GET /api/stories/{id}": respond(http.StatusOK, map[string]any{"story": map[string]any{
			"story_id": 3, "content": `<p>Hi</p><script>alert(1)</script>`,
		}}),
	})
	svc := services.NewStoryService(func(token string) services.StoryBackend { return client.WithToken(token) })

	story, err := svc.Get(context.Background(), testSession, 3)

	require.NoError(t, err)
	assert.Equal(t, "<p>Hi</p>", story.Content)
}

func TestJobService_EmptyListHasMessage(t *testing.T) {
	client := newBackend(t, map[string]http.HandlerFunc{
		"GET /api/jobs/user/7": respond(http.StatusOK, map[string]any{"jobs": []any{}}),
	})
	svc := services.NewJobService(func(token string) crud.Backend { return client.WithToken(token) })

	view, err := svc.List(context.Background(), testSession)

	require.NoError(t, err)
	assert.Empty(t, view.Jobs)
	assert.Equal(t, "No jobs found", view.Message)
}

func TestJobService_ListFormatsDescriptions(t *testing.T) {
	client := newBackend(t, map[string]http.HandlerFunc{
		"GET /api/jobs/user/7": respond(http.StatusOK, map[string]any{"jobs": []map[string]any{
			{"jobId": 1, "title": "Backend", "company": "Acme", "description": "**Go** required, *Rust* a plus<script>x()</script>"},
		}}),
	})
	svc := services.NewJobService(func(token string) crud.Backend { return client.WithToken(token) })

	view, err := svc.List(context.Background(), testSession)

	require.NoError(t, err)
	require.Len(t, view.Jobs, 1)
	assert.Equal(t, "<strong>Go</strong> required, <strong>Rust</strong> a plus", view.Jobs[0].Description)
}

func TestJobService_RefresherRefetchesStaleList(t *testing.T) {
	var fetches atomic.Int32
	client := newBackend(t, map[string]http.HandlerFunc{
		"GET /api/jobs/user/7": func(w http.ResponseWriter, r *http.Request) {
			fetches.Add(1)
			respond(http.StatusOK, map[string]any{"jobs": []map[string]any{{"jobId": 1, "title": "Backend"}}})(w, r)
		},
	})
	svc := services.NewJobService(func(token string) crud.Backend { return client.WithToken(token) })

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	var updates int
	svc.Refresher(testSession, 20*time.Millisecond).Run(ctx, func(view *models.JobsView) {
		updates++
		assert.Len(t, view.Jobs, 1)
	}, func(err error) {
		t.Errorf("unexpected error: %v", err)
	})

	assert.GreaterOrEqual(t, updates, 2)
	assert.GreaterOrEqual(t, fetches.Load(), int32(updates))
}

func TestProfileService_UpdateOnlyOwnProfile(t *testing.T) {
	client := newBackend(t, map[string]http.HandlerFunc{
		"PUT /api/users/7": respond(http.StatusOK, map[string]string{"message": "Profile updated"}),
	})
	svc := services.NewProfileService(func(token string) services.ProfileBackend { return client.WithToken(token) })
	req := &models.ProfileUpdateRequest{Name: "Mira"}

	msg, err := svc.UpdateProfile(context.Background(), testSession, 7, req)
	require.NoError(t, err)
	assert.Equal(t, "Profile updated", msg)

	_, err = svc.UpdateProfile(context.Background(), testSession, 8, req)
	assert.ErrorIs(t, err, services.ErrNotOwner)

	_, err = svc.UpdateProfile(context.Background(), testSession, 7, &models.ProfileUpdateRequest{})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestMessagingService_ThreadSanitizes(t *testing.T) {
	transport := new(MockTransport)
	transport.On("FetchThread", mock.Anything, 7, 9).Return([]models.Message{
		{MessageID: 1, SenderID: 9, ReceiverID: 7, Content: `<p onclick="x()">hey</p>`},
	}, nil)
	svc := services.NewMessagingService(func(string) messaging.Transport { return transport }, 0)

	thread, err := svc.Thread(context.Background(), testSession, 9)

	require.NoError(t, err)
	require.Len(t, thread.Messages, 1)
	assert.Equal(t, "<p>hey</p>", thread.Messages[0].Content)
}

func TestMessagingService_SendValidates(t *testing.T) {
	transport := new(MockTransport)
	transport.On("SendMessage", mock.Anything, 7, 9, "<p>hi</p>").Return(nil).Once()
	svc := services.NewMessagingService(func(string) messaging.Transport { return transport }, 0)
	ctx := context.Background()

	require.NoError(t, svc.Send(ctx, testSession, 9, "<p>hi</p>"))
	assert.ErrorIs(t, svc.Send(ctx, testSession, 9, "<p><br></p>"), apperrors.ErrValidation)
	assert.ErrorIs(t, svc.Send(ctx, testSession, 7, "hi"), apperrors.ErrValidation)
	transport.AssertExpectations(t)
}
