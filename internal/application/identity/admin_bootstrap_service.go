package identity

import (
	"context"
	"time"

	auditapp "github.com/fleetcore/backend/internal/application/audit"
	"github.com/fleetcore/backend/internal/domain/identity"
	"github.com/fleetcore/backend/internal/domain/shared"
	"github.com/fleetcore/backend/internal/infrastructure/persistence"
	"github.com/fleetcore/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const promoteOperation = "promote_to_admin"

// PromoteResult is the structured outcome of the admin bootstrap workflow.
// Expected business outcomes are reported through the flags, never as
// errors, so callers can branch precisely.
type PromoteResult struct {
	Success         bool       `json:"success"`
	AlreadyAdmin    bool       `json:"already_admin,omitempty"`
	CompanyHasAdmin bool       `json:"company_has_admin,omitempty"`
	ErrorCode       string     `json:"error_code,omitempty"`
	CompanyID       *uuid.UUID `json:"company_id,omitempty"`
}

// AdminBootstrapService promotes an eligible user to company admin and
// seeds the default admin permission grants. The workflow is idempotent and
// writes one admin audit entry on every branch.
type AdminBootstrapService struct {
	db             *persistence.Database
	userRepo       identity.UserRepository
	companyRepo    identity.CompanyRepository
	membershipRepo identity.MembershipRepository
	auditService   *auditapp.AuditService
	logger         *zap.Logger
	promotions     metric.Int64Counter
}

// NewAdminBootstrapService creates a new admin bootstrap service
func NewAdminBootstrapService(
	db *persistence.Database,
	userRepo identity.UserRepository,
	companyRepo identity.CompanyRepository,
	membershipRepo identity.MembershipRepository,
	auditService *auditapp.AuditService,
	logger *zap.Logger,
) *AdminBootstrapService {
	promotions, err := telemetry.Meter("fleetcore.identity").Int64Counter(
		"admin_promotions_total",
		metric.WithDescription("Admin promotion attempts by outcome"),
	)
	if err != nil {
		logger.Warn("Failed to create promotion counter", zap.Error(err))
	}

	return &AdminBootstrapService{
		db:             db,
		userRepo:       userRepo,
		companyRepo:    companyRepo,
		membershipRepo: membershipRepo,
		auditService:   auditService,
		logger:         logger,
		promotions:     promotions,
	}
}

// PromoteToAdmin promotes the caller to admin of the company whose contact
// email exactly matches the caller's email.
//
// The "company already has admin" check is race-sensitive: the partial
// unique index on memberships(company_id) WHERE role='admin' serializes
// concurrent calls so exactly one wins and the loser deterministically
// observes company_has_admin.
func (s *AdminBootstrapService) PromoteToAdmin(ctx context.Context, callerUserID uuid.UUID) (*PromoteResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "admin_bootstrap", "promote_to_admin",
		attribute.String("user_id", callerUserID.String()))
	defer span.End()

	start := time.Now()

	record := func(companyID *uuid.UUID, outcome string, detail map[string]any) {
		span.SetAttributes(attribute.String("outcome", outcome))
		if s.promotions != nil {
			s.promotions.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
		}
		s.auditService.RecordAdminOperation(ctx, callerUserID, companyID, promoteOperation, outcome, detail, time.Since(start))
	}

	caller, err := s.userRepo.FindByID(ctx, callerUserID)
	if err != nil {
		if shared.IsCode(err, "NOT_FOUND") {
			record(nil, "caller_not_found", nil)
			return &PromoteResult{ErrorCode: "NOT_FOUND"}, nil
		}
		record(nil, "error", map[string]any{"error": err.Error()})
		telemetry.RecordError(span, err)
		return nil, err
	}

	// Step 1: a caller already holding admin anywhere is a no-op
	isAdmin, err := s.membershipRepo.ExistsByUserAndRole(ctx, callerUserID, identity.RoleAdmin)
	if err != nil {
		record(nil, "error", map[string]any{"error": err.Error()})
		telemetry.RecordError(span, err)
		return nil, err
	}
	if isAdmin {
		record(nil, "already_admin", nil)
		return &PromoteResult{AlreadyAdmin: true}, nil
	}

	// Step 2: match the company by exact contact email
	company, err := s.companyRepo.FindByContactEmail(ctx, caller.Email)
	if err != nil {
		if shared.IsCode(err, "NOT_FOUND") {
			record(nil, "no_matching_company", map[string]any{"email": caller.Email})
			return &PromoteResult{ErrorCode: "NO_MATCHING_COMPANY"}, nil
		}
		record(nil, "error", map[string]any{"error": err.Error()})
		telemetry.RecordError(span, err)
		return nil, err
	}

	// Step 3: a company with an existing admin is left untouched
	hasAdmin, err := s.membershipRepo.ExistsByCompanyAndRole(ctx, company.ID, identity.RoleAdmin)
	if err != nil {
		record(&company.ID, "error", map[string]any{"error": err.Error()})
		telemetry.RecordError(span, err)
		return nil, err
	}
	if hasAdmin {
		record(&company.ID, "company_has_admin", nil)
		return &PromoteResult{CompanyHasAdmin: true, CompanyID: &company.ID}, nil
	}

	// Step 4: upsert user, membership and the 32-grant cross-product in
	// one transaction. is_global_admin is deliberately left untouched.
	err = s.db.Transaction(func(tx *gorm.DB) error {
		caller.AssignCompany(company.ID)
		userRepo := persistence.NewGormUserRepository(tx)
		if err := userRepo.Upsert(ctx, caller); err != nil {
			return err
		}

		membership, err := identity.NewMembership(callerUserID, company.ID, identity.RoleAdmin)
		if err != nil {
			return err
		}
		membershipRepo := persistence.NewGormMembershipRepository(tx)
		if err := membershipRepo.Upsert(ctx, membership); err != nil {
			return err
		}

		permissionRepo := persistence.NewGormRolePermissionRepository(tx)
		return permissionRepo.BulkGrant(ctx, identity.FullGrantSet(company.ID, identity.RoleAdmin))
	})
	if err != nil {
		// A unique violation on the admin partial index means a concurrent
		// call won the race between step 3 and here.
		if shared.IsCode(err, "DUPLICATE_MEMBERSHIP") || persistence.IsAdminIndexViolation(err) {
			record(&company.ID, "company_has_admin", map[string]any{"race": true})
			return &PromoteResult{CompanyHasAdmin: true, CompanyID: &company.ID}, nil
		}
		record(&company.ID, "error", map[string]any{"error": err.Error()})
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.logger.Info("User promoted to company admin",
		zap.String("user_id", callerUserID.String()),
		zap.String("company_id", company.ID.String()))

	record(&company.ID, "success", map[string]any{"grants": len(identity.AllResources()) * len(identity.AllActions())})

	return &PromoteResult{Success: true, CompanyID: &company.ID}, nil
}
