package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mtcleaning/account-service/internal/core/domain"
	"github.com/mtcleaning/account-service/internal/core/ports"
	"github.com/mtcleaning/account-service/internal/core/service"
)

// AccountHandler serves the privileged user-management endpoints.
type AccountHandler struct {
	service ports.AccountService
}

func NewAccountHandler(service ports.AccountService) *AccountHandler {
	return &AccountHandler{service: service}
}

// Create handles POST /create-user.
//
// @Summary      Create a staff, admin or client account
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createAccountRequest  true  "Account details"
// @Success      200   {object}  createAccountResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /functions/v1/create-user [post]
func (h *AccountHandler) Create(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	account, err := h.service.CreateAccount(c.Request().Context(), caller, func() (ports.CreateAccountInput, error) {
		var req createAccountRequest
		if err := decodeJSON(c, &req); err != nil {
			return ports.CreateAccountInput{}, err
		}
		if err := c.Validate(&req); err != nil {
			return ports.CreateAccountInput{}, domain.NewError(domain.ErrValidation, err.Error())
		}
		return toCreateInput(req), nil
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, createAccountResponse{
		Success: true,
		User:    account,
		Message: service.MessageAccountCreated,
	})
}

// Delete handles POST /delete-user.
//
// @Summary      Delete an account
// @Description  Marks the profile inactive (best effort) and removes the auth identity. The profile row is kept.
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      deleteAccountRequest  true  "Target account id"
// @Success      200   {object}  deleteAccountResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /functions/v1/delete-user [post]
func (h *AccountHandler) Delete(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	var req deleteAccountRequest
	if err := decodeJSON(c, &req); err != nil {
		return err
	}

	err = h.service.DeleteAccount(c.Request().Context(), caller, ports.DeleteAccountInput{UserID: req.targetID()})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, deleteAccountResponse{
		Success: true,
		Message: service.MessageAccountDeleted,
	})
}

func toCreateInput(req createAccountRequest) ports.CreateAccountInput {
	in := ports.CreateAccountInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Phone:    req.Phone,
	}
	if req.Role != nil {
		r := domain.Role(*req.Role)
		in.Role = &r
	}
	if req.Status != nil {
		s := domain.Status(*req.Status)
		in.Status = &s
	}
	return in
}
