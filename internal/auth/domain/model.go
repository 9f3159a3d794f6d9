package domain

import (
	"errors"
	"time"
)

var ErrUserNotFound = errors.New("user not found")

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// UserProfile is stored in the users collection keyed by Firebase UID.
type UserProfile struct {
	UID         string     `json:"uid"`
	Email       string     `json:"email"`
	DisplayName *string    `json:"displayName,omitempty"`
	PhotoURL    *string    `json:"photoURL,omitempty"`
	Role        string     `json:"role"`
	CreatedAt   time.Time  `json:"createdAt"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
}

// SyncUserRequest carries the identity of a user who just signed in.
type SyncUserRequest struct {
	UID         string
	Email       string
	DisplayName *string
	PhotoURL    *string
}

// UpdateProfileRequest represents data for updating a profile
type UpdateProfileRequest struct {
	DisplayName *string
	PhotoURL    *string
}
