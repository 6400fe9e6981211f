package identity

import (
	"context"

	"github.com/google/uuid"
)

// RolePermissionRepository defines persistence operations for permission grants
type RolePermissionRepository interface {
	Exists(ctx context.Context, companyID uuid.UUID, role Role, resource Resource, action Action) (bool, error)
	FindByCompanyAndRole(ctx context.Context, companyID uuid.UUID, role Role) ([]RolePermission, error)
	Grant(ctx context.Context, grant *RolePermission) error
	// BulkGrant inserts the grants idempotently: rows that already exist are
	// left untouched instead of failing the batch.
	BulkGrant(ctx context.Context, grants []RolePermission) error
	Revoke(ctx context.Context, companyID uuid.UUID, role Role, resource Resource, action Action) error
}
