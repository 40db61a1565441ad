package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mtcleaning/account-service/internal/pkg/metrics"
	"github.com/mtcleaning/account-service/internal/core/domain"
	"github.com/mtcleaning/account-service/internal/core/ports"
)

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 200
)

// Messages returned to the dashboard, which shows them verbatim.
const (
	MessageAccountCreated = "User created successfully"
	MessageAccountDeleted = "User deleted successfully"

	msgAdminRequired = "Unauthorized: Admin access required"
	msgUnauthorized  = "Unauthorized"
	msgMissingUserID = "User created but missing user id"
)

// AccountService implements the privileged create/delete operations. It holds
// no per-request state; every call builds its own backend clients.
type AccountService struct {
	backend ports.Backend
	audit   ports.AuditRepository
	log     zerolog.Logger
	now     func() time.Time
}

// NewAccountService wires the service. audit may be nil, in which case no
// audit trail is written and ListAudit reports the store as unavailable.
func NewAccountService(backend ports.Backend, audit ports.AuditRepository, log zerolog.Logger) *AccountService {
	return &AccountService{
		backend: backend,
		audit:   audit,
		log:     log,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// CreateAccount creates the auth identity and then upserts its profile. The
// request body is decoded only once the caller is known to be an admin, so a
// non-admin gets 403 whatever it sent.
//
// The two writes are not atomic: when the profile upsert fails the account is
// left without a profile and the call fails. That state is logged, counted and
// audited as an orphaned account; it is not reconciled here.
func (s *AccountService) CreateAccount(ctx context.Context, caller ports.Caller, decode ports.CreateAccountDecoder) (*domain.Account, error) {
	if err := s.requireAdmin(ctx, caller); err != nil {
		metrics.OperationsTotal.WithLabelValues(string(domain.OperationCreate), "rejected").Inc()
		return nil, err
	}

	in, err := decode()
	if err != nil {
		metrics.OperationsTotal.WithLabelValues(string(domain.OperationCreate), "rejected").Inc()
		return nil, err
	}
	role, status, err := normalizeCreate(in)
	if err != nil {
		metrics.OperationsTotal.WithLabelValues(string(domain.OperationCreate), "rejected").Inc()
		return nil, err
	}

	svc, err := s.backend.AsService()
	if err != nil {
		return nil, err
	}

	log := s.log.With().
		Str("operation", string(domain.OperationCreate)).
		Str("caller_id", caller.Subject).
		Str("request_id", caller.RequestID).
		Str("email", in.Email).
		Logger()

	account, err := svc.CreateAccount(ctx, ports.CreateAccountParams{
		Email:    in.Email,
		Password: in.Password,
		Metadata: domain.AccountMetadata{FullName: in.FullName, Phone: in.Phone},
	})
	if err != nil {
		log.Warn().Err(err).Msg("account creation failed")
		s.record(ctx, caller, domain.OperationCreate, domain.OutcomeFailed, "", in.Email, domain.Message(err))
		return nil, asUpstream(err)
	}
	if account == nil || account.ID == "" {
		log.Error().Msg("auth provider returned an account without id")
		s.record(ctx, caller, domain.OperationCreate, domain.OutcomeFailed, "", in.Email, msgMissingUserID)
		return nil, errors.New(msgMissingUserID)
	}

	profile := &domain.Profile{
		ID:       account.ID,
		FullName: in.FullName,
		Phone:    in.Phone,
		Role:     role,
		Status:   status,
	}
	if err := svc.UpsertProfile(ctx, profile); err != nil {
		log.Error().Err(err).Str("account_id", account.ID).Msg("profile upsert failed, account left without profile")
		metrics.InconsistenciesTotal.WithLabelValues(string(domain.OutcomeOrphanedAccount)).Inc()
		s.record(ctx, caller, domain.OperationCreate, domain.OutcomeOrphanedAccount, account.ID, in.Email, domain.Message(err))
		return nil, asUpstream(err)
	}

	metrics.OperationsTotal.WithLabelValues(string(domain.OperationCreate), string(domain.OutcomeSucceeded)).Inc()
	s.record(ctx, caller, domain.OperationCreate, domain.OutcomeSucceeded, account.ID, in.Email, "")
	log.Info().Str("account_id", account.ID).Str("role", string(role)).Str("status", string(status)).Msg("account created")

	return account, nil
}

// DeleteAccount removes the auth identity. The profile row is kept for history;
// it is flipped to inactive first on a best-effort basis. The target id is
// checked after the caller has been authorized.
func (s *AccountService) DeleteAccount(ctx context.Context, caller ports.Caller, in ports.DeleteAccountInput) error {
	client, err := s.backend.AsCaller(caller.Token)
	if err != nil {
		return err
	}

	user, err := client.User(ctx)
	if err != nil || user == nil {
		s.log.Warn().Err(err).Str("request_id", caller.RequestID).Msg("caller token rejected by auth provider")
		metrics.OperationsTotal.WithLabelValues(string(domain.OperationDelete), "rejected").Inc()
		return domain.NewError(domain.ErrUnauthenticated, msgUnauthorized)
	}
	caller.Subject = user.ID

	if err := s.checkAdmin(ctx, client, caller); err != nil {
		metrics.OperationsTotal.WithLabelValues(string(domain.OperationDelete), "rejected").Inc()
		return err
	}

	targetID := strings.TrimSpace(in.UserID)
	if targetID == "" {
		metrics.OperationsTotal.WithLabelValues(string(domain.OperationDelete), "rejected").Inc()
		return domain.NewError(domain.ErrValidation, "userId or user_id is required")
	}

	svc, err := s.backend.AsService()
	if err != nil {
		return err
	}

	log := s.log.With().
		Str("operation", string(domain.OperationDelete)).
		Str("caller_id", caller.Subject).
		Str("request_id", caller.RequestID).
		Str("target_id", targetID).
		Logger()

	staleProfile := false
	if err := svc.UpdateProfileStatus(ctx, targetID, domain.StatusInactive); err != nil {
		log.Warn().Err(err).Msg("could not mark profile inactive, deleting account anyway")
		staleProfile = true
	}

	if err := svc.DeleteAccount(ctx, targetID); err != nil {
		log.Warn().Err(err).Msg("account deletion failed")
		s.record(ctx, caller, domain.OperationDelete, domain.OutcomeFailed, targetID, "", domain.Message(err))
		return asUpstream(err)
	}

	outcome := domain.OutcomeSucceeded
	if staleProfile {
		outcome = domain.OutcomeStaleProfile
		metrics.InconsistenciesTotal.WithLabelValues(string(domain.OutcomeStaleProfile)).Inc()
		log.Error().Msg("account deleted but profile is still active")
	}

	metrics.OperationsTotal.WithLabelValues(string(domain.OperationDelete), string(domain.OutcomeSucceeded)).Inc()
	s.record(ctx, caller, domain.OperationDelete, outcome, targetID, "", "")
	log.Info().Msg("account deleted")

	return nil
}

// ListAudit returns recent audit entries to an admin caller.
func (s *AccountService) ListAudit(ctx context.Context, caller ports.Caller, filter ports.AuditFilter) ([]*domain.AuditEntry, error) {
	if filter.Outcome != "" && !filter.Outcome.Valid() {
		return nil, domain.NewError(domain.ErrValidation, "Invalid outcome: "+string(filter.Outcome))
	}
	switch {
	case filter.Limit <= 0:
		filter.Limit = defaultAuditLimit
	case filter.Limit > maxAuditLimit:
		filter.Limit = maxAuditLimit
	}

	if err := s.requireAdmin(ctx, caller); err != nil {
		return nil, err
	}
	if s.audit == nil {
		return nil, domain.NewError(domain.ErrAuditUnavailable, "Audit trail is not configured")
	}

	entries, err := s.audit.List(ctx, filter)
	if err != nil {
		s.log.Error().Err(err).Msg("audit listing failed")
		return nil, err
	}
	return entries, nil
}

// requireAdmin builds a caller-scoped client and runs the admin predicate through it.
func (s *AccountService) requireAdmin(ctx context.Context, caller ports.Caller) error {
	client, err := s.backend.AsCaller(caller.Token)
	if err != nil {
		return err
	}
	return s.checkAdmin(ctx, client, caller)
}

// checkAdmin maps both a false predicate and a predicate error to ErrForbidden.
func (s *AccountService) checkAdmin(ctx context.Context, client ports.CallerClient, caller ports.Caller) error {
	isAdmin, err := client.IsAdmin(ctx)
	switch {
	case err != nil:
		metrics.AdminChecksTotal.WithLabelValues("error").Inc()
		s.log.Warn().Err(err).Str("caller_id", caller.Subject).Str("request_id", caller.RequestID).Msg("admin check failed")
	case !isAdmin:
		metrics.AdminChecksTotal.WithLabelValues("denied").Inc()
		s.log.Info().Str("caller_id", caller.Subject).Str("request_id", caller.RequestID).Msg("non-admin caller rejected")
	default:
		metrics.AdminChecksTotal.WithLabelValues("allowed").Inc()
		return nil
	}
	return domain.NewError(domain.ErrForbidden, msgAdminRequired)
}

// record writes an audit entry. Failures are logged and never surface to the caller.
func (s *AccountService) record(ctx context.Context, caller ports.Caller, op domain.Operation, outcome domain.Outcome, targetID, email, message string) {
	if s.audit == nil {
		return
	}
	entry := &domain.AuditEntry{
		ID:        uuid.NewString(),
		Operation: op,
		Outcome:   outcome,
		CallerID:  caller.Subject,
		TargetID:  targetID,
		Email:     email,
		Message:   message,
		RequestID: caller.RequestID,
		CreatedAt: s.now(),
	}
	if err := s.audit.Insert(ctx, entry); err != nil {
		s.log.Warn().Err(err).Str("operation", string(op)).Str("outcome", string(outcome)).Msg("failed to write audit entry")
	}
}

// normalizeCreate checks required fields and resolves role/status defaults.
func normalizeCreate(in ports.CreateAccountInput) (domain.Role, domain.Status, error) {
	if in.Email == "" || in.Password == "" || in.FullName == "" {
		return "", "", domain.NewError(domain.ErrValidation, "Email, password, and full_name are required")
	}

	role := domain.DefaultRole
	if in.Role != nil {
		role = *in.Role
	}
	if !role.Valid() {
		return "", "", domain.NewError(domain.ErrValidation, "Invalid role: "+string(role))
	}

	status := domain.DefaultStatus
	if in.Status != nil {
		status = *in.Status
	}
	if !status.Valid() {
		return "", "", domain.NewError(domain.ErrValidation, "Invalid status: "+string(status))
	}

	return role, status, nil
}

// asUpstream classifies a provider failure as ErrUpstream unless it already
// carries a kind, keeping the provider's message.
func asUpstream(err error) error {
	var de *domain.Error
	if errors.As(err, &de) {
		return de
	}
	return domain.NewError(domain.ErrUpstream, err.Error())
}
