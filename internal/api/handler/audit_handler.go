package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mtcleaning/account-service/internal/core/domain"
	"github.com/mtcleaning/account-service/internal/core/ports"
)

// AuditHandler exposes the audit trail of privileged operations to admins.
type AuditHandler struct {
	service ports.AccountService
}

func NewAuditHandler(service ports.AccountService) *AuditHandler {
	return &AuditHandler{service: service}
}

// List handles GET /v1/audit.
//
// @Summary      List recent privileged operations
// @Description  Use outcome=orphaned_account to find accounts created without a profile.
// @Tags         audit
// @Produce      json
// @Security     BearerAuth
// @Param        outcome  query     string  false  "succeeded, failed, orphaned_account or stale_profile"
// @Param        limit    query     int     false  "Maximum entries (default 50, max 200)"
// @Success      200      {object}  auditListResponse
// @Failure      400      {object}  errorResponse
// @Failure      401      {object}  errorResponse
// @Failure      403      {object}  errorResponse
// @Failure      503      {object}  errorResponse
// @Router       /v1/audit [get]
func (h *AuditHandler) List(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	filter := ports.AuditFilter{Outcome: domain.Outcome(c.QueryParam("outcome"))}
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return domain.NewError(domain.ErrValidation, "limit must be a non-negative integer")
		}
		filter.Limit = limit
	}

	entries, err := h.service.ListAudit(c.Request().Context(), caller, filter)
	if err != nil {
		return err
	}
	if entries == nil {
		entries = []*domain.AuditEntry{}
	}

	return c.JSON(http.StatusOK, auditListResponse{Data: entries})
}
