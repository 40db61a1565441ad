package supabase

import (
	"context"
	"net/http"
	"net/url"

	"github.com/mtcleaning/account-service/internal/core/domain"
)

const profilesPath = "/rest/v1/profiles"

// profileRow is the write shape of a profiles row. Phone is sent as null when
// absent so an upsert clears a previous value.
type profileRow struct {
	ID       string        `json:"id"`
	FullName string        `json:"full_name"`
	Phone    *string       `json:"phone"`
	Role     domain.Role   `json:"role"`
	Status   domain.Status `json:"status"`
}

type statusPatch struct {
	Status domain.Status `json:"status"`
}

// UpsertProfile inserts the row or merges it into the existing one with the same id.
func (sc *serviceClient) UpsertProfile(ctx context.Context, p *domain.Profile) error {
	return sc.c.do(ctx, request{
		call:   "upsert_profile",
		method: http.MethodPost,
		path:   profilesPath,
		query:  url.Values{"on_conflict": {"id"}},
		apiKey: sc.c.serviceRoleKey,
		prefer: "resolution=merge-duplicates,return=minimal",
		body: profileRow{
			ID:       p.ID,
			FullName: p.FullName,
			Phone:    p.Phone,
			Role:     p.Role,
			Status:   p.Status,
		},
	}, nil)
}

// UpdateProfileStatus patches the status of the profile with the given id.
func (sc *serviceClient) UpdateProfileStatus(ctx context.Context, id string, status domain.Status) error {
	return sc.c.do(ctx, request{
		call:   "update_profile",
		method: http.MethodPatch,
		path:   profilesPath,
		query:  url.Values{"id": {"eq." + id}},
		apiKey: sc.c.serviceRoleKey,
		prefer: "return=minimal",
		body:   statusPatch{Status: status},
	}, nil)
}
