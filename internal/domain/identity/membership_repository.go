package identity

import (
	"context"

	"github.com/google/uuid"
)

// MembershipRepository defines persistence operations for memberships
type MembershipRepository interface {
	FindByUserAndCompany(ctx context.Context, userID, companyID uuid.UUID) (*Membership, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]Membership, error)
	FindByCompanyAndRole(ctx context.Context, companyID uuid.UUID, role Role) ([]Membership, error)
	ExistsByUserAndRole(ctx context.Context, userID uuid.UUID, role Role) (bool, error)
	ExistsByCompanyAndRole(ctx context.Context, companyID uuid.UUID, role Role) (bool, error)
	Create(ctx context.Context, membership *Membership) error
	Upsert(ctx context.Context, membership *Membership) error
	Delete(ctx context.Context, id uuid.UUID) error
}
