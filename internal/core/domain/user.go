package domain

import (
	"errors"
	"time"
)

const (
	RoleCandidate   = "candidate"
	RoleInterviewer = "interviewer"
	RoleAdmin       = "admin"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")
	// ErrEmailInUse means the email belongs to a different identity.
	ErrEmailInUse = errors.New("email already belongs to another user")
)

// User is a platform member synced from the identity provider.
// ExternalID is the provider's stable identifier and doubles as the
// communication identity id.
type User struct {
	ID           string     `json:"id"`
	ExternalID   string     `json:"externalId"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	ProfileImage string     `json:"profileImage"`
	Role         string     `json:"role"`
	Bio          string     `json:"bio"`
	IsActive     bool       `json:"isActive"`
	LastLogin    *time.Time `json:"lastLogin,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	switch role {
	case RoleCandidate, RoleInterviewer, RoleAdmin:
		return true
	}
	return false
}
