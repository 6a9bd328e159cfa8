package dto

import "time"

// MessageResponse is the wire shape of a persisted message, shared by the
// websocket frames and the history endpoints.
type MessageResponse struct {
	Id         uint      `json:"id"`
	SenderId   uint      `json:"senderId"`
	ReceiverId uint      `json:"receiverId"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ChatMessagePersisted is the payload published to the in-process bus after
// a message insert succeeds.
type ChatMessagePersisted struct {
	MessageId  uint `json:"messageId"`
	SenderId   uint `json:"senderId"`
	ReceiverId uint `json:"receiverId"`
}
