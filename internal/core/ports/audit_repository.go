package ports

import (
	"context"

	"github.com/mtcleaning/account-service/internal/core/domain"
)

// AuditFilter narrows an audit listing. Zero values mean "no filter".
type AuditFilter struct {
	Outcome domain.Outcome
	Limit   int
}

// AuditRepository persists the audit trail of privileged operations.
type AuditRepository interface {
	Insert(ctx context.Context, entry *domain.AuditEntry) error
	// List returns entries newest first.
	List(ctx context.Context, filter AuditFilter) ([]*domain.AuditEntry, error)
}
