package models

// Role is the kind of account a session belongs to
type Role string

const (
	RoleStudent Role = "student"
	RoleMentor  Role = "mentor"
	RoleAdmin   Role = "admin"
)

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleMentor, RoleAdmin:
		return true
	}
	return false
}

// Session is the client's record of the currently authenticated identity.
// Either all four fields are set or none are.
type Session struct {
	Token            string `json:"token,omitempty" yaml:"token,omitempty"`
	Role             Role   `json:"role,omitempty" yaml:"role,omitempty"`
	UserID           int    `json:"user_id,omitempty" yaml:"user_id,omitempty"`
	ProfileImagePath string `json:"profile,omitempty" yaml:"profile,omitempty"`
}

// IsAuthenticated reports whether a token is present
func (s Session) IsAuthenticated() bool {
	return s.Token != ""
}

// IsZero reports whether every field is absent
func (s Session) IsZero() bool {
	return s == Session{}
}
