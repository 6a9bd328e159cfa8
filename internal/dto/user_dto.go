package dto

import "time"

// PublicUserResponse is the profile shape exposed to other users. The
// password hash never leaves the service layer.
type PublicUserResponse struct {
	Id       uint    `json:"id"`
	Username string  `json:"username"`
	FullName string  `json:"fullName"`
	Email    string  `json:"email"`
	Phone    *string `json:"phone,omitempty"`
	Avatar   *string `json:"avatar,omitempty"`
	Bio      *string `json:"bio,omitempty"`

	Online   bool       `json:"online"`
	LastSeen *time.Time `json:"lastSeen,omitempty"`
}

type UpdateProfileRequest struct {
	FullName string `json:"fullName" validate:"omitempty,min=2"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone"`
	Avatar   string `json:"avatar"`
	Bio      string `json:"bio"`
}
