package identity

import (
	"time"

	"github.com/fleetcore/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Role represents a user's role within a company
type Role string

const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
	RoleUser   Role = "user"
)

// ValidRole reports whether the role is one of the known roles
func ValidRole(role Role) bool {
	switch role {
	case RoleOwner, RoleAdmin, RoleMember, RoleUser:
		return true
	default:
		return false
	}
}

// Membership associates a user with a company under a role.
// A user has at most one membership per company.
type Membership struct {
	shared.BaseEntity
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_membership_user_company,priority:1"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_membership_user_company,priority:2"`
	Role      Role      `gorm:"type:varchar(20);not null"`
}

// TableName returns the table name for GORM
func (Membership) TableName() string {
	return "memberships"
}

// NewMembership creates a new membership
func NewMembership(userID, companyID uuid.UUID, role Role) (*Membership, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER_ID", "User ID cannot be empty")
	}
	if companyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_COMPANY_ID", "Company ID cannot be empty")
	}
	if !ValidRole(role) {
		return nil, shared.NewDomainError("INVALID_ROLE", "Invalid membership role")
	}

	return &Membership{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		CompanyID:  companyID,
		Role:       role,
	}, nil
}

// SetRole changes the membership role
func (m *Membership) SetRole(role Role) error {
	if !ValidRole(role) {
		return shared.NewDomainError("INVALID_ROLE", "Invalid membership role")
	}

	m.Role = role
	m.UpdatedAt = time.Now()

	return nil
}

// IsAdmin returns true for roles carrying administrative standing
func (m *Membership) IsAdmin() bool {
	return m.Role == RoleOwner || m.Role == RoleAdmin
}
