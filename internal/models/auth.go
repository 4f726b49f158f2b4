package models

// LoginRequest is the payload for POST /api/auth/login
type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email,max=255" validate:"required,email,max=255"`
	Password string `json:"password" form:"password" binding:"required,max=255" validate:"required,max=255"`
}

// LoginResponse is what the backend returns on a successful login
type LoginResponse struct {
	Token   string `json:"token"`
	Role    string `json:"role"`
	Profile string `json:"profile"`
	UserID  int    `json:"user_id"`
}

// RegisterRequest is the registration form. It is sent as multipart because
// it may carry a profile picture.
type RegisterRequest struct {
	Name          string `form:"name" binding:"required,max=100" validate:"required,max=100"`
	Email         string `form:"email" binding:"required,email,max=255" validate:"required,email,max=255"`
	Password      string `form:"password" binding:"required,min=6,max=255" validate:"required,min=6,max=255"`
	Role          string `form:"role" binding:"required,oneof=student mentor" validate:"required,oneof=student mentor"`
	College       string `form:"college" binding:"max=200" validate:"max=200"`
	Bio           string `form:"bio" binding:"max=2000" validate:"max=2000"`
	IsPastStudent bool   `form:"is_past_student"`
	CurrentYear   string `form:"current_year" binding:"max=10" validate:"max=10"`
	CurrentSem    string `form:"current_sem" binding:"max=10" validate:"max=10"`
}

// MessageResponse is the generic {"message": "..."} body the backend
// returns for mutations.
type MessageResponse struct {
	Message string `json:"message"`
}

// LoginView is returned by the web client after login
type LoginView struct {
	Success    bool   `json:"success"`
	Role       Role   `json:"role"`
	UserID     int    `json:"userId"`
	Profile    string `json:"profile,omitempty"`
	RedirectTo string `json:"redirectTo"`
}
