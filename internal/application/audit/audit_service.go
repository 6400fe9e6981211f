package audit

import (
	"context"
	"time"

	"github.com/fleetcore/backend/internal/domain/audit"
	"github.com/fleetcore/backend/internal/domain/identity"
	"github.com/fleetcore/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuditService writes and reads the append-only audit trail.
//
// Writes are best-effort: a failed append is logged as a warning and
// swallowed so it can never abort the business mutation that triggered it.
type AuditService struct {
	auditRepo      audit.AuditLogRepository
	adminAuditRepo audit.AdminAuditLogRepository
	membershipRepo identity.MembershipRepository
	logger         *zap.Logger
}

// NewAuditService creates a new audit service
func NewAuditService(
	auditRepo audit.AuditLogRepository,
	adminAuditRepo audit.AdminAuditLogRepository,
	membershipRepo identity.MembershipRepository,
	logger *zap.Logger,
) *AuditService {
	return &AuditService{
		auditRepo:      auditRepo,
		adminAuditRepo: adminAuditRepo,
		membershipRepo: membershipRepo,
		logger:         logger,
	}
}

// userSnapshot flattens the audited fields of a user record
func userSnapshot(u *identity.User) map[string]any {
	if u == nil {
		return nil
	}
	snap := map[string]any{
		"id":              u.ID.String(),
		"email":           u.Email,
		"first_name":      u.FirstName,
		"last_name":       u.LastName,
		"is_global_admin": u.IsGlobalAdmin,
	}
	if u.CompanyID != nil {
		snap["company_id"] = u.CompanyID.String()
	}
	return snap
}

// RecordUserChange appends an audit entry for a user mutation. The acting
// identity comes from the context; system-initiated mutations fall back to
// the synthetic platform-admin actor. Failures are logged and swallowed.
func (s *AuditService) RecordUserChange(ctx context.Context, operation audit.Operation, before, after *identity.User) {
	subject := before
	if subject == nil {
		subject = after
	}
	if subject == nil {
		return
	}

	snapshot := audit.Snapshot{
		Before: userSnapshot(before),
		After:  userSnapshot(after),
	}
	if operation == audit.OperationDelete {
		// Deletes record only the prior state
		snapshot.After = nil
	}

	actor := shared.ActorFromContext(ctx)

	entry, err := audit.NewAuditLogEntry(subject.ID, subject.CompanyID, operation, snapshot, actor.UserID)
	if err != nil {
		s.logger.Warn("Failed to build audit entry",
			zap.String("user_id", subject.ID.String()),
			zap.String("operation", string(operation)),
			zap.Error(err))
		return
	}

	if err := s.auditRepo.Append(ctx, entry); err != nil {
		s.logger.Warn("Failed to write audit entry",
			zap.String("user_id", subject.ID.String()),
			zap.String("operation", string(operation)),
			zap.Error(err))
	}
}

// RecordAdminOperation appends an admin workflow entry. Failures are logged
// and swallowed so the workflow result still reaches the caller.
func (s *AuditService) RecordAdminOperation(ctx context.Context, callerID uuid.UUID, companyID *uuid.UUID, operation, outcome string, detail map[string]any, duration time.Duration) {
	entry := audit.NewAdminAuditLogEntry(callerID, companyID, operation, outcome, detail, duration)

	if err := s.adminAuditRepo.Append(ctx, entry); err != nil {
		s.logger.Warn("Failed to write admin audit entry",
			zap.String("caller_id", callerID.String()),
			zap.String("operation", operation),
			zap.String("outcome", outcome),
			zap.Error(err))
	}
}

// ListByUser returns a user's audit entries, newest first. Readable by the
// subject user, an admin of the user's company, or a platform admin.
func (s *AuditService) ListByUser(ctx context.Context, userID uuid.UUID, companyID *uuid.UUID, filter shared.Filter) ([]audit.AuditLogEntry, error) {
	actor := shared.ActorFromContext(ctx)

	allowed := actor.IsPlatformAdmin || actor.UserID == userID
	if !allowed && companyID != nil {
		var err error
		allowed, err = s.isCompanyAdmin(ctx, actor.UserID, *companyID)
		if err != nil {
			return nil, err
		}
	}
	if !allowed {
		return nil, shared.ErrPermissionDenied
	}

	return s.auditRepo.FindByUser(ctx, userID, filter)
}

// ListByCompany returns a company's audit entries, newest first. Restricted
// to company admins and platform admins.
func (s *AuditService) ListByCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]audit.AuditLogEntry, error) {
	actor := shared.ActorFromContext(ctx)

	if !actor.IsPlatformAdmin {
		isAdmin, err := s.isCompanyAdmin(ctx, actor.UserID, companyID)
		if err != nil {
			return nil, err
		}
		if !isAdmin {
			return nil, shared.ErrPermissionDenied
		}
	}

	return s.auditRepo.FindByCompany(ctx, companyID, filter)
}

// isCompanyAdmin reports whether the user holds the admin or owner role in
// the company.
func (s *AuditService) isCompanyAdmin(ctx context.Context, userID, companyID uuid.UUID) (bool, error) {
	membership, err := s.membershipRepo.FindByUserAndCompany(ctx, userID, companyID)
	if err != nil {
		if shared.IsCode(err, "NOT_FOUND") {
			return false, nil
		}
		return false, err
	}
	return membership.IsAdmin(), nil
}
