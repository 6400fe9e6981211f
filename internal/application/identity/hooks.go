package identity

import (
	"context"

	"github.com/fleetcore/backend/internal/domain/identity"
	"github.com/fleetcore/backend/internal/domain/shared"
	"github.com/fleetcore/backend/internal/infrastructure/persistence"
	"gorm.io/gorm"
)

// Invariant hooks for identity mutations. Each hook runs synchronously
// inside the mutation's transaction and either fully applies its
// consequences or fails the whole transaction.

// CompanyQuotaHook derives max_vehicles from the subscription tier on every
// company insert or update, overriding any caller-supplied value.
func CompanyQuotaHook(_ context.Context, _ *gorm.DB, _, updated *identity.Company) error {
	if updated == nil {
		return nil
	}
	updated.MaxVehicles = identity.MaxVehiclesForTier(updated.SubscriptionTier)
	return nil
}

// OwnerMembershipHook fires on company insert: it seeds the owner
// membership and the fixed default taxonomy catalog. Both inserts are
// idempotent upserts, so replaying the hook is safe.
func OwnerMembershipHook(ctx context.Context, tx *gorm.DB, old, created *identity.Company) error {
	if old != nil || created == nil {
		// Only company inserts seed ownership
		return nil
	}

	membership, err := identity.NewMembership(created.OwnerID, created.ID, identity.RoleOwner)
	if err != nil {
		return err
	}

	membershipRepo := persistence.NewGormMembershipRepository(tx)
	if err := membershipRepo.Upsert(ctx, membership); err != nil {
		return err
	}

	taxonomyRepo := persistence.NewGormTaxonomyRepository(tx)
	return taxonomyRepo.SeedDefaults(ctx, created.ID)
}

// UserGuardHook fires on user update: changing is_global_admin requires the
// acting identity to be the distinguished platform admin. All other field
// changes proceed, and updated_at is always refreshed.
func UserGuardHook(ctx context.Context, _ *gorm.DB, old, updated *identity.User) error {
	if old == nil || updated == nil {
		return nil
	}

	if old.IsGlobalAdmin != updated.IsGlobalAdmin {
		actor := shared.ActorFromContext(ctx)
		if !actor.IsPlatformAdmin {
			return shared.ErrPermissionDenied
		}
	}

	return nil
}
