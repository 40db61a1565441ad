package supabase

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/mtcleaning/account-service/internal/core/domain"
	"github.com/mtcleaning/account-service/internal/core/ports"
)

// gotrueUser is the subset of the GoTrue user object this service reads.
type gotrueUser struct {
	ID               string                 `json:"id"`
	Email            string                 `json:"email"`
	EmailConfirmedAt *time.Time             `json:"email_confirmed_at"`
	UserMetadata     domain.AccountMetadata `json:"user_metadata"`
	CreatedAt        time.Time              `json:"created_at"`
	UpdatedAt        time.Time              `json:"updated_at"`
}

func (u *gotrueUser) toDomain() *domain.Account {
	return &domain.Account{
		ID:               u.ID,
		Email:            u.Email,
		EmailConfirmedAt: u.EmailConfirmedAt,
		Metadata:         u.UserMetadata,
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
}

type createUserRequest struct {
	Email        string                 `json:"email"`
	Password     string                 `json:"password"`
	EmailConfirm bool                   `json:"email_confirm"`
	UserMetadata domain.AccountMetadata `json:"user_metadata"`
}

type callerClient struct {
	c     *Client
	token string
}

// User resolves the caller's token through GET /auth/v1/user.
func (cc *callerClient) User(ctx context.Context) (*domain.Account, error) {
	var u gotrueUser
	err := cc.c.do(ctx, request{
		call:   "get_user",
		method: http.MethodGet,
		path:   "/auth/v1/user",
		apiKey: cc.c.anonKey,
		bearer: cc.token,
	}, &u)
	if err != nil {
		return nil, err
	}
	if u.ID == "" {
		return nil, domain.NewError(domain.ErrUnauthenticated, "token does not resolve to a user")
	}
	return u.toDomain(), nil
}

// IsAdmin calls the is_admin() database function as the caller, so the
// answer comes from the caller's current profile row.
func (cc *callerClient) IsAdmin(ctx context.Context) (bool, error) {
	var isAdmin bool
	err := cc.c.do(ctx, request{
		call:   "is_admin",
		method: http.MethodPost,
		path:   "/rest/v1/rpc/is_admin",
		apiKey: cc.c.anonKey,
		bearer: cc.token,
		body:   struct{}{},
	}, &isAdmin)
	if err != nil {
		return false, err
	}
	return isAdmin, nil
}

type serviceClient struct {
	c *Client
}

// CreateAccount creates a pre-confirmed identity via the admin API.
func (sc *serviceClient) CreateAccount(ctx context.Context, p ports.CreateAccountParams) (*domain.Account, error) {
	var u gotrueUser
	err := sc.c.do(ctx, request{
		call:   "create_user",
		method: http.MethodPost,
		path:   "/auth/v1/admin/users",
		apiKey: sc.c.serviceRoleKey,
		body: createUserRequest{
			Email:        p.Email,
			Password:     p.Password,
			EmailConfirm: true,
			UserMetadata: p.Metadata,
		},
	}, &u)
	if err != nil {
		return nil, err
	}
	return u.toDomain(), nil
}

// DeleteAccount removes the identity via the admin API.
func (sc *serviceClient) DeleteAccount(ctx context.Context, id string) error {
	return sc.c.do(ctx, request{
		call:   "delete_user",
		method: http.MethodDelete,
		path:   "/auth/v1/admin/users/" + url.PathEscape(id),
		apiKey: sc.c.serviceRoleKey,
	}, nil)
}
