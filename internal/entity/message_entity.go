package entity

import "time"

// Message is immutable once created. The database assigns Id and CreatedAt;
// within a conversation messages are ordered by CreatedAt with ties broken
// by Id.
type Message struct {
	Id         uint
	SenderId   uint
	ReceiverId uint
	Content    string
	CreatedAt  time.Time
}
