package identity

import (
	"strings"
	"time"

	"github.com/fleetcore/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Resource is a permissionable resource in the system
type Resource string

// Action is an operation that can be granted on a resource
type Action string

// The fixed resource catalog consumed by the permission evaluator
const (
	ResourceUsers          Resource = "users"
	ResourceVehicles       Resource = "vehicles"
	ResourceEquipment      Resource = "equipment"
	ResourceMaintenance    Resource = "maintenance"
	ResourceWorkOrders     Resource = "work_orders"
	ResourcePartsInventory Resource = "parts_inventory"
	ResourceReports        Resource = "reports"
	ResourceSettings       Resource = "settings"
)

// The fixed action catalog
const (
	ActionView   Action = "view"
	ActionCreate Action = "create"
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
)

// AllResources returns the complete resource catalog
func AllResources() []Resource {
	return []Resource{
		ResourceUsers,
		ResourceVehicles,
		ResourceEquipment,
		ResourceMaintenance,
		ResourceWorkOrders,
		ResourcePartsInventory,
		ResourceReports,
		ResourceSettings,
	}
}

// AllActions returns the complete action catalog
func AllActions() []Action {
	return []Action{ActionView, ActionCreate, ActionEdit, ActionDelete}
}

// ValidResource reports whether the resource is part of the catalog
func ValidResource(resource Resource) bool {
	for _, r := range AllResources() {
		if r == resource {
			return true
		}
	}
	return false
}

// ValidAction reports whether the action is part of the catalog
func ValidAction(action Action) bool {
	for _, a := range AllActions() {
		if a == action {
			return true
		}
	}
	return false
}

// RolePermission is a (company, role, resource, action) grant consumed by
// the permission evaluator.
type RolePermission struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_role_permission_grant,priority:1"`
	Role      Role      `gorm:"type:varchar(20);not null;uniqueIndex:idx_role_permission_grant,priority:2"`
	Resource  Resource  `gorm:"type:varchar(50);not null;uniqueIndex:idx_role_permission_grant,priority:3"`
	Action    Action    `gorm:"type:varchar(20);not null;uniqueIndex:idx_role_permission_grant,priority:4"`
	CreatedAt time.Time
}

// TableName returns the table name for GORM
func (RolePermission) TableName() string {
	return "role_permissions"
}

// NewRolePermission creates a new permission grant
func NewRolePermission(companyID uuid.UUID, role Role, resource Resource, action Action) (*RolePermission, error) {
	if companyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_COMPANY_ID", "Company ID cannot be empty")
	}
	if !ValidRole(role) {
		return nil, shared.NewDomainError("INVALID_ROLE", "Invalid role")
	}
	resource = Resource(strings.ToLower(strings.TrimSpace(string(resource))))
	if !ValidResource(resource) {
		return nil, shared.NewDomainError("INVALID_RESOURCE", "Unknown permission resource")
	}
	action = Action(strings.ToLower(strings.TrimSpace(string(action))))
	if !ValidAction(action) {
		return nil, shared.NewDomainError("INVALID_ACTION", "Unknown permission action")
	}

	return &RolePermission{
		ID:        uuid.New(),
		CompanyID: companyID,
		Role:      role,
		Resource:  resource,
		Action:    action,
		CreatedAt: time.Now(),
	}, nil
}

// FullGrantSet returns the complete resource × action cross-product for a
// role in a company. Used by the admin bootstrap workflow to seed the 32
// default admin grants.
func FullGrantSet(companyID uuid.UUID, role Role) []RolePermission {
	grants := make([]RolePermission, 0, len(AllResources())*len(AllActions()))
	now := time.Now()
	for _, resource := range AllResources() {
		for _, action := range AllActions() {
			grants = append(grants, RolePermission{
				ID:        uuid.New(),
				CompanyID: companyID,
				Role:      role,
				Resource:  resource,
				Action:    action,
				CreatedAt: now,
			})
		}
	}
	return grants
}
