package domain

import "time"

// AccountMetadata is the free-form metadata stored on the auth identity.
// Role and status are never written here: metadata is user-influenceable at
// signup and must not back access-control decisions.
type AccountMetadata struct {
	FullName string  `json:"full_name"`
	Phone    *string `json:"phone"`
}

// Account is an identity in the authentication subsystem.
type Account struct {
	ID               string          `json:"id"`
	Email            string          `json:"email"`
	EmailConfirmedAt *time.Time      `json:"email_confirmed_at,omitempty"`
	Metadata         AccountMetadata `json:"user_metadata"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}
