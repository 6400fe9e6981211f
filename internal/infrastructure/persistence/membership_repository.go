package persistence

import (
	"context"
	"errors"

	"github.com/fleetcore/backend/internal/domain/identity"
	"github.com/fleetcore/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormMembershipRepository implements identity.MembershipRepository using GORM
type GormMembershipRepository struct {
	db *gorm.DB
}

// NewGormMembershipRepository creates a new GormMembershipRepository
func NewGormMembershipRepository(db *gorm.DB) *GormMembershipRepository {
	return &GormMembershipRepository{db: db}
}

// FindByUserAndCompany finds the membership of a user in a company
func (r *GormMembershipRepository) FindByUserAndCompany(ctx context.Context, userID, companyID uuid.UUID) (*identity.Membership, error) {
	var membership identity.Membership
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND company_id = ?", userID, companyID).
		First(&membership).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &membership, nil
}

// FindByUser returns all memberships of a user
func (r *GormMembershipRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]identity.Membership, error) {
	var memberships []identity.Membership
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&memberships).Error; err != nil {
		return nil, err
	}
	return memberships, nil
}

// FindByCompanyAndRole returns all memberships with a role in a company
func (r *GormMembershipRepository) FindByCompanyAndRole(ctx context.Context, companyID uuid.UUID, role identity.Role) ([]identity.Membership, error) {
	var memberships []identity.Membership
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND role = ?", companyID, role).
		Find(&memberships).Error; err != nil {
		return nil, err
	}
	return memberships, nil
}

// ExistsByUserAndRole checks whether the user holds the role in any company
func (r *GormMembershipRepository) ExistsByUserAndRole(ctx context.Context, userID uuid.UUID, role identity.Role) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&identity.Membership{}).
		Where("user_id = ? AND role = ?", userID, role).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ExistsByCompanyAndRole checks whether any member of the company holds the role
func (r *GormMembershipRepository) ExistsByCompanyAndRole(ctx context.Context, companyID uuid.UUID, role identity.Role) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&identity.Membership{}).
		Where("company_id = ? AND role = ?", companyID, role).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts a new membership. A unique-constraint violation on the
// (user, company) pair surfaces as ErrDuplicateMembership.
func (r *GormMembershipRepository) Create(ctx context.Context, membership *identity.Membership) error {
	err := r.db.WithContext(ctx).Create(membership).Error
	if err != nil && isUniqueViolation(err) {
		return shared.ErrDuplicateMembership
	}
	return err
}

// Upsert inserts the membership or updates the role of an existing one
func (r *GormMembershipRepository) Upsert(ctx context.Context, membership *identity.Membership) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "company_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"role", "updated_at"}),
	}).Create(membership).Error
}

// Delete deletes a membership
func (r *GormMembershipRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&identity.Membership{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
