package persistence

import (
	"context"

	"github.com/fleetcore/backend/internal/domain/identity"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRolePermissionRepository implements identity.RolePermissionRepository using GORM
type GormRolePermissionRepository struct {
	db *gorm.DB
}

// NewGormRolePermissionRepository creates a new GormRolePermissionRepository
func NewGormRolePermissionRepository(db *gorm.DB) *GormRolePermissionRepository {
	return &GormRolePermissionRepository{db: db}
}

// Exists checks whether a grant row exists for the role, resource and action
func (r *GormRolePermissionRepository) Exists(ctx context.Context, companyID uuid.UUID, role identity.Role, resource identity.Resource, action identity.Action) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&identity.RolePermission{}).
		Where("company_id = ? AND role = ? AND resource = ? AND action = ?",
			companyID, role, resource, action).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindByCompanyAndRole returns all grants for a role within a company
func (r *GormRolePermissionRepository) FindByCompanyAndRole(ctx context.Context, companyID uuid.UUID, role identity.Role) ([]identity.RolePermission, error) {
	var grants []identity.RolePermission
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND role = ?", companyID, role).
		Find(&grants).Error; err != nil {
		return nil, err
	}
	return grants, nil
}

// Grant inserts a single grant, ignoring it if it already exists
func (r *GormRolePermissionRepository) Grant(ctx context.Context, grant *identity.RolePermission) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "company_id"}, {Name: "role"}, {Name: "resource"}, {Name: "action"},
		},
		DoNothing: true,
	}).Create(grant).Error
}

// BulkGrant inserts the given grants, skipping rows that already exist.
// Re-running with the same set is a no-op, which keeps the admin
// bootstrap idempotent.
func (r *GormRolePermissionRepository) BulkGrant(ctx context.Context, grants []identity.RolePermission) error {
	if len(grants) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "company_id"}, {Name: "role"}, {Name: "resource"}, {Name: "action"},
		},
		DoNothing: true,
	}).Create(&grants).Error
}

// Revoke removes a single grant. Revoking an absent grant is a no-op.
func (r *GormRolePermissionRepository) Revoke(ctx context.Context, companyID uuid.UUID, role identity.Role, resource identity.Resource, action identity.Action) error {
	return r.db.WithContext(ctx).
		Where("company_id = ? AND role = ? AND resource = ? AND action = ?",
			companyID, role, resource, action).
		Delete(&identity.RolePermission{}).Error
}
