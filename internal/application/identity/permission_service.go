package identity

import (
	"context"

	"github.com/fleetcore/backend/internal/domain/identity"
	"github.com/fleetcore/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PermissionService is the RBAC decision point. It is read-only: every
// method resolves grants from storage and mutates nothing, so callers may
// invoke it repeatedly within one request.
type PermissionService struct {
	companyRepo    identity.CompanyRepository
	membershipRepo identity.MembershipRepository
	permissionRepo identity.RolePermissionRepository
	userRepo       identity.UserRepository
	logger         *zap.Logger
}

// NewPermissionService creates a new permission service
func NewPermissionService(
	companyRepo identity.CompanyRepository,
	membershipRepo identity.MembershipRepository,
	permissionRepo identity.RolePermissionRepository,
	userRepo identity.UserRepository,
	logger *zap.Logger,
) *PermissionService {
	return &PermissionService{
		companyRepo:    companyRepo,
		membershipRepo: membershipRepo,
		permissionRepo: permissionRepo,
		userRepo:       userRepo,
		logger:         logger,
	}
}

// HasPermission decides whether a user may perform an action on a resource
// within a company. The company owner passes unconditionally; everyone else
// resolves through their membership role to a RolePermission grant.
func (s *PermissionService) HasPermission(ctx context.Context, userID, companyID uuid.UUID, resource identity.Resource, action identity.Action) (bool, error) {
	company, err := s.companyRepo.FindByID(ctx, companyID)
	if err != nil {
		if shared.IsCode(err, "NOT_FOUND") {
			return false, nil
		}
		return false, err
	}

	if company.IsOwner(userID) {
		return true, nil
	}

	membership, err := s.membershipRepo.FindByUserAndCompany(ctx, userID, companyID)
	if err != nil {
		if shared.IsCode(err, "NOT_FOUND") {
			return false, nil
		}
		return false, err
	}

	// Owner role through membership, not company ownership
	if membership.Role == identity.RoleOwner {
		return true, nil
	}

	return s.permissionRepo.Exists(ctx, companyID, membership.Role, resource, action)
}

// HasInventoryPermission is HasPermission specialized to parts_inventory
func (s *PermissionService) HasInventoryPermission(ctx context.Context, userID, companyID uuid.UUID, action identity.Action) (bool, error) {
	return s.HasPermission(ctx, userID, companyID, identity.ResourcePartsInventory, action)
}

// IsGlobalAdmin reads the user's is_global_admin flag
func (s *PermissionService) IsGlobalAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if shared.IsCode(err, "NOT_FOUND") {
			return false, nil
		}
		return false, err
	}
	return user.IsGlobalAdmin, nil
}
