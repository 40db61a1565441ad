package handler

import "github.com/mtcleaning/account-service/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// createAccountRequest is the body of POST /create-user. Role and status are
// pointers so an explicit empty string is rejected instead of defaulted.
// Presence of email, password and full_name is checked by the service.
type createAccountRequest struct {
	Email    string  `json:"email"     validate:"omitempty,email"`
	Password string  `json:"password"`
	FullName string  `json:"full_name"`
	Phone    *string `json:"phone"`
	Role     *string `json:"role"      validate:"omitempty,oneof=admin staff client"`
	Status   *string `json:"status"    validate:"omitempty,oneof=active inactive"`
}

// deleteAccountRequest is the body of POST /delete-user. Both spellings of
// the id are accepted; userId wins when both are present.
type deleteAccountRequest struct {
	UserID      string `json:"userId"`
	UserIDSnake string `json:"user_id"`
}

func (r deleteAccountRequest) targetID() string {
	if r.UserID != "" {
		return r.UserID
	}
	return r.UserIDSnake
}

type createAccountResponse struct {
	Success bool            `json:"success"`
	User    *domain.Account `json:"user"`
	Message string          `json:"message"`
}

type deleteAccountResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type auditListResponse struct {
	Data []*domain.AuditEntry `json:"data"`
}
