package entity

import "time"

type User struct {
	Id           uint
	Username     string
	PasswordHash string
	FullName     string
	Email        string
	Phone        *string
	Avatar       *string
	Bio          *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
