package ports

import (
	"context"

	"github.com/mtcleaning/account-service/internal/core/domain"
)

// CreateAccountParams is what the auth provider needs to create an identity.
// Email confirmation is always skipped; metadata never carries role/status.
type CreateAccountParams struct {
	Email    string
	Password string
	Metadata domain.AccountMetadata
}

// CallerClient talks to the backend as the requesting user, subject to the
// same access policy as that user.
type CallerClient interface {
	// User resolves the forwarded token to its account.
	User(ctx context.Context) (*domain.Account, error)
	// IsAdmin evaluates the server-side admin predicate for the caller.
	IsAdmin(ctx context.Context) (bool, error)
}

// ServiceClient talks to the backend with the service-role credential and
// bypasses per-user access policy. It must never be reachable from a browser.
type ServiceClient interface {
	CreateAccount(ctx context.Context, params CreateAccountParams) (*domain.Account, error)
	DeleteAccount(ctx context.Context, id string) error
	// UpsertProfile inserts or merges the profile row, conflict-resolved on id.
	UpsertProfile(ctx context.Context, profile *domain.Profile) error
	UpdateProfileStatus(ctx context.Context, id string, status domain.Status) error
}

// Backend builds the two kinds of clients. Both constructors fail with a
// domain.ErrConfiguration error when credentials are missing.
type Backend interface {
	AsCaller(token string) (CallerClient, error)
	AsService() (ServiceClient, error)
}
