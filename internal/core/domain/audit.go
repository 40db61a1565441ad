package domain

import "time"

// Operation names a privileged account-management action.
type Operation string

const (
	OperationCreate Operation = "create"
	OperationDelete Operation = "delete"
)

// Outcome classifies how a privileged operation ended.
type Outcome string

const (
	OutcomeSucceeded Outcome = "succeeded"
	OutcomeFailed    Outcome = "failed"
	// OutcomeOrphanedAccount: the account exists but its profile upsert failed.
	OutcomeOrphanedAccount Outcome = "orphaned_account"
	// OutcomeStaleProfile: the account was deleted but its profile is still active.
	OutcomeStaleProfile Outcome = "stale_profile"
)

// Valid reports whether o is a known outcome.
func (o Outcome) Valid() bool {
	switch o {
	case OutcomeSucceeded, OutcomeFailed, OutcomeOrphanedAccount, OutcomeStaleProfile:
		return true
	}
	return false
}

// AuditEntry records one authorized privileged operation attempt.
type AuditEntry struct {
	ID        string    `json:"id"`
	Operation Operation `json:"operation"`
	Outcome   Outcome   `json:"outcome"`
	CallerID  string    `json:"caller_id,omitempty"`
	TargetID  string    `json:"target_id,omitempty"`
	Email     string    `json:"email,omitempty"`
	Message   string    `json:"message,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
