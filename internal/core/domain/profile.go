package domain

import "time"

// Role is the authoritative access level of an account.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleStaff  Role = "staff"
	RoleClient Role = "client"
)

// Status marks whether an account may use the dashboard.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// DefaultRole and DefaultStatus apply when a creation request omits them.
const (
	DefaultRole   = RoleStaff
	DefaultStatus = StatusActive
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleStaff, RoleClient:
		return true
	}
	return false
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

// Profile is the application-owned record keyed by the account id. It is the
// only source of truth for role and status.
type Profile struct {
	ID        string     `json:"id"`
	FullName  string     `json:"full_name"`
	Phone     *string    `json:"phone"`
	Role      Role       `json:"role"`
	Status    Status     `json:"status"`
	AvatarURL *string    `json:"avatar_url,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}
