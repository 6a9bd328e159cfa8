package model

import "time"

type Message struct {
	Id         uint      `gorm:"primaryKey;autoIncrement"`
	SenderId   uint      `gorm:"not null;index:idx_messages_sender"`
	ReceiverId uint      `gorm:"not null;index:idx_messages_receiver"`
	Content    string    `gorm:"type:text;not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index"`
}

func (Message) TableName() string {
	return "messages"
}
