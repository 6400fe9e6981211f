package identity

import (
	"context"
	"time"

	"github.com/fleetcore/backend/internal/domain/identity"
	"github.com/fleetcore/backend/internal/domain/shared"
	"github.com/fleetcore/backend/internal/infrastructure/config"
	"github.com/fleetcore/backend/internal/infrastructure/persistence"
	"github.com/fleetcore/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ProvisionInput describes a new identity arriving from the identity
// provider. FirstName and LastName are optional metadata; when absent the
// name is derived from the email local part.
type ProvisionInput struct {
	Email     string
	FirstName string
	LastName  string
}

// ProvisionResult is the outcome of a provisioning attempt. Exhausted
// retries are reported through Linked=false and ErrorCode, never as a
// propagated error, so the calling flow can continue gracefully.
type ProvisionResult struct {
	UserID    uuid.UUID  `json:"user_id,omitempty"`
	CompanyID *uuid.UUID `json:"company_id,omitempty"`
	Role      string     `json:"role"`
	Linked    bool       `json:"linked"`
	Attempts  int        `json:"attempts"`
	ErrorCode string     `json:"error_code,omitempty"`
}

// ProvisioningService attaches newly created identities to a matching
// company by contact-email domain.
type ProvisioningService struct {
	db          *persistence.Database
	userRepo    identity.UserRepository
	companyRepo identity.CompanyRepository
	cfg         config.ProvisioningConfig
	logger      *zap.Logger

	// sleep is swapped out in tests
	sleep func(time.Duration)
}

// NewProvisioningService creates a new provisioning service
func NewProvisioningService(
	db *persistence.Database,
	userRepo identity.UserRepository,
	companyRepo identity.CompanyRepository,
	cfg config.ProvisioningConfig,
	logger *zap.Logger,
) *ProvisioningService {
	return &ProvisioningService{
		db:          db,
		userRepo:    userRepo,
		companyRepo: companyRepo,
		cfg:         cfg,
		logger:      logger,
		sleep:       time.Sleep,
	}
}

// Provision creates the user record for a new identity and links it to the
// company whose contact-email domain matches the identity's email domain.
//
// The insert runs in a bounded retry loop to absorb unique-constraint races
// from concurrent provisioning of the same identity: a row already created
// by a concurrent attempt is success, not failure. After exhaustion the
// failure is recorded and returned gracefully.
func (s *ProvisioningService) Provision(ctx context.Context, input ProvisionInput) *ProvisionResult {
	ctx, span := telemetry.StartServiceSpan(ctx, "provisioning", "provision")
	defer span.End()

	user, err := identity.NewProvisionedUser(input.Email, input.FirstName, input.LastName)
	if err != nil {
		s.logger.Warn("Rejected provisioning input",
			zap.String("email", input.Email),
			zap.Error(err))
		return &ProvisionResult{Role: string(identity.RoleUser), ErrorCode: errorCode(err)}
	}

	role := identity.RoleUser
	var companyID *uuid.UUID

	company, err := s.companyRepo.FindByEmailDomain(ctx, identity.EmailDomain(user.Email))
	switch {
	case err == nil:
		role = identity.RoleMember
		companyID = &company.ID
		user.AssignCompany(company.ID)
	case shared.IsCode(err, "NOT_FOUND"):
		// No matching company: the user stands alone with role "user"
	default:
		s.logger.Error("Failed to resolve company for provisioning",
			zap.String("email", user.Email),
			zap.Error(err))
		return &ProvisionResult{Role: string(role), ErrorCode: "INTERNAL_ERROR"}
	}

	result := &ProvisionResult{Role: string(role), CompanyID: companyID}

	for attempt := 1; attempt <= s.cfg.MaxAttempts; attempt++ {
		result.Attempts = attempt

		err := s.db.Transaction(func(tx *gorm.DB) error {
			userRepo := persistence.NewGormUserRepository(tx)
			if err := userRepo.Create(ctx, user); err != nil {
				return err
			}

			if companyID == nil {
				return nil
			}

			membership, err := identity.NewMembership(user.ID, *companyID, role)
			if err != nil {
				return err
			}
			return persistence.NewGormMembershipRepository(tx).Upsert(ctx, membership)
		})
		if err == nil {
			result.UserID = user.ID
			result.Linked = companyID != nil
			s.logger.Info("Identity provisioned",
				zap.String("user_id", user.ID.String()),
				zap.String("email", user.Email),
				zap.Bool("linked", result.Linked),
				zap.Int("attempts", attempt))
			return result
		}

		if persistence.IsUniqueViolation(err) {
			// A concurrent attempt already created this identity
			if existing, findErr := s.userRepo.FindByEmail(ctx, user.Email); findErr == nil {
				result.UserID = existing.ID
				result.Linked = existing.CompanyID != nil
				result.CompanyID = existing.CompanyID
				s.logger.Info("Identity already provisioned concurrently",
					zap.String("user_id", existing.ID.String()),
					zap.String("email", user.Email))
				return result
			}
		}

		s.logger.Warn("Provisioning attempt failed",
			zap.String("email", user.Email),
			zap.Int("attempt", attempt),
			zap.Error(err))

		if attempt < s.cfg.MaxAttempts {
			s.sleep(s.cfg.BackoffBase * time.Duration(attempt))
		}
	}

	s.logger.Error("Provisioning failed after retries",
		zap.String("email", user.Email),
		zap.Int("attempts", s.cfg.MaxAttempts))

	span.SetAttributes(attribute.String("outcome", "transient_failure"))
	result.ErrorCode = "TRANSIENT"
	return result
}

// errorCode extracts the domain error code, defaulting to INVALID_INPUT
func errorCode(err error) string {
	if de, ok := err.(*shared.DomainError); ok {
		return de.Code
	}
	return "INVALID_INPUT"
}
