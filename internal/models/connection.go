package models

// ConnectionState is the lifecycle of a connection request
type ConnectionState string

const (
	ConnectionPending  ConnectionState = "pending"
	ConnectionAccepted ConnectionState = "accepted"
	ConnectionRejected ConnectionState = "rejected"
)

// IsTerminal returns true once the request has been decided
func (s ConnectionState) IsTerminal() bool {
	return s == ConnectionAccepted || s == ConnectionRejected
}

// CanTransitionTo checks if a state transition is valid. A request is
// decided exactly once.
func (s ConnectionState) CanTransitionTo(next ConnectionState) bool {
	return s == ConnectionPending && next.IsTerminal()
}

// DecisionAction is what the receiver does with a pending request
type DecisionAction string

const (
	ActionAccept DecisionAction = "accept"
	ActionReject DecisionAction = "reject"
)

// IsValid reports whether the backend understands the action
func (a DecisionAction) IsValid() bool {
	return a == ActionAccept || a == ActionReject
}

// ResultingState maps an action onto the state it produces
func (a DecisionAction) ResultingState() ConnectionState {
	if a == ActionAccept {
		return ConnectionAccepted
	}
	return ConnectionRejected
}

// ConnectionRequest is one row of the pending-requests or connections list.
// UserID is the other party; SenderID and ReceiverID are filled in when the
// backend sends them.
type ConnectionRequest struct {
	ConnectionID int             `json:"connection_id" yaml:"connection_id"`
	SenderID     int             `json:"sender_id,omitempty" yaml:"sender_id,omitempty"`
	ReceiverID   int             `json:"receiver_id,omitempty" yaml:"receiver_id,omitempty"`
	UserID       int             `json:"user_id" yaml:"user_id"`
	State        ConnectionState `json:"status,omitempty" yaml:"status,omitempty"`
	Name         string          `json:"name" yaml:"name"`
	Role         string          `json:"role,omitempty" yaml:"role,omitempty"`
	College      string          `json:"college,omitempty" yaml:"college,omitempty"`
	ProfilePic   string          `json:"profile_pic,omitempty" yaml:"profile_pic,omitempty"`
}

// PeerID returns the id of the user on the other side of the connection
// from self's point of view.
func (c ConnectionRequest) PeerID(self int) int {
	switch {
	case c.UserID != 0 && c.UserID != self:
		return c.UserID
	case c.SenderID != 0 && c.SenderID != self:
		return c.SenderID
	default:
		return c.ReceiverID
	}
}

// SendConnectionRequest is the payload for POST /api/connections/send
type SendConnectionRequest struct {
	SenderID   int `json:"senderId" validate:"required,gt=0"`
	ReceiverID int `json:"receiverId" validate:"required,gt=0,nefield=SenderID"`
}

// DecideConnectionRequest is the payload for POST /api/connections/decide
type DecideConnectionRequest struct {
	ConnectionID int            `json:"connectionId" binding:"required,gt=0" validate:"required,gt=0"`
	Action       DecisionAction `json:"action" binding:"required,oneof=accept reject" validate:"required,oneof=accept reject"`
}

// ConnectionsResponse wraps GET /api/connections/:userId
type ConnectionsResponse struct {
	Connections []ConnectionRequest `json:"connections"`
}

// PendingRequestsResponse wraps GET /api/connections/requests/:userId
type PendingRequestsResponse struct {
	PendingRequests []ConnectionRequest `json:"pendingRequests"`
}

// RequestsView is the pending requests view
type RequestsView struct {
	Requests []ConnectionRequest `json:"requests"`
}

// ConnectionsView is the accepted connections view
type ConnectionsView struct {
	Connections []ConnectionRequest `json:"connections"`
}
