package ports

import (
	"context"

	"github.com/mtcleaning/account-service/internal/core/domain"
)

// Caller identifies who is invoking a privileged operation.
type Caller struct {
	Token string
	// Subject is the unverified "sub" claim of Token. It labels logs and audit
	// entries only and must never be used for authorization.
	Subject   string
	RequestID string
}

// CreateAccountInput carries a creation request after decoding. Role and
// Status are nil when the request omitted them.
type CreateAccountInput struct {
	Email    string
	Password string
	FullName string
	Phone    *string
	Role     *domain.Role
	Status   *domain.Status
}

// CreateAccountDecoder reads and validates the creation input from the
// request. The service calls it only after the caller passed the admin check.
type CreateAccountDecoder func() (CreateAccountInput, error)

// DeleteAccountInput carries the id of the account to remove.
type DeleteAccountInput struct {
	UserID string
}

// AccountService exposes the privileged account-management use cases.
type AccountService interface {
	CreateAccount(ctx context.Context, caller Caller, decode CreateAccountDecoder) (*domain.Account, error)
	DeleteAccount(ctx context.Context, caller Caller, input DeleteAccountInput) error
	ListAudit(ctx context.Context, caller Caller, filter AuditFilter) ([]*domain.AuditEntry, error)
}
