package models

import "time"

// Message is one chat message. Content is rich text.
type Message struct {
	MessageID  int       `json:"message_id"`
	SenderID   int       `json:"sender_id"`
	ReceiverID int       `json:"receiver_id"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

// SendMessageRequest is the payload for POST /api/messages/send
type SendMessageRequest struct {
	SenderID   int    `json:"senderId" validate:"required,gt=0"`
	ReceiverID int    `json:"receiverId" validate:"required,gt=0"`
	Content    string `json:"content" binding:"required,max=10000" validate:"required,max=10000"`
}

// MessagesResponse wraps GET /api/messages/user/:senderId/receiver/:receiverId
type MessagesResponse struct {
	Messages []Message `json:"messages"`
}

// ThreadView is the conversation as rendered to the user
type ThreadView struct {
	PeerID   int       `json:"peerId"`
	Messages []Message `json:"messages"`
}
