package models

// User is an entry of the explore list or a profile
type User struct {
	UserID        int    `json:"user_id"`
	Name          string `json:"name"`
	Email         string `json:"email,omitempty"`
	IsMentor      Flag   `json:"is_mentor"`
	ProfilePic    string `json:"profile_pic,omitempty"`
	College       string `json:"college,omitempty"`
	Bio           string `json:"bio,omitempty"`
	CurrentYear   string `json:"current_year,omitempty"`
	CurrentSem    string `json:"current_sem,omitempty"`
	IsPastStudent Flag   `json:"is_past_student,omitempty"`
}

// ProfileUpdateRequest is the payload for PUT /api/users/:id
type ProfileUpdateRequest struct {
	Name          string `json:"name" binding:"required,max=100" validate:"required,max=100"`
	Bio           string `json:"bio" binding:"max=2000" validate:"max=2000"`
	CurrentYear   string `json:"currentYear" binding:"max=10" validate:"max=10"`
	CurrentSem    string `json:"currentSem" binding:"max=10" validate:"max=10"`
	IsPastStudent bool   `json:"isPastStudent"`
}

// ExploreTab narrows the explore list by account kind
type ExploreTab string

const (
	TabAll      ExploreTab = "all"
	TabMentors  ExploreTab = "mentors"
	TabStudents ExploreTab = "students"
)

// ExploreView is the "find people" list after filtering
type ExploreView struct {
	Tab   ExploreTab `json:"tab"`
	Term  string     `json:"term,omitempty"`
	Users []User     `json:"users"`
}
