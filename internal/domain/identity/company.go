package identity

import (
	"strings"
	"time"

	"github.com/fleetcore/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// SubscriptionTier represents the subscription tier of a company
type SubscriptionTier string

const (
	TierTestDrive    SubscriptionTier = "test_drive"
	TierStarter      SubscriptionTier = "starter"
	TierStandard     SubscriptionTier = "standard"
	TierProfessional SubscriptionTier = "professional"
)

// MaxVehiclesForTier returns the vehicle quota for a subscription tier.
// Unrecognized tiers are clamped to the test-drive quota.
func MaxVehiclesForTier(tier SubscriptionTier) int {
	switch tier {
	case TierTestDrive:
		return 3
	case TierStarter:
		return 10
	case TierStandard:
		return 50
	case TierProfessional:
		return 250
	default:
		return 3
	}
}

// Company represents a customer organization in the fleet-maintenance system.
// It is the aggregate root for company-related operations.
//
// MaxVehicles is a derived field: it is always recomputed from the
// subscription tier and never trusted from caller input.
type Company struct {
	shared.BaseAggregateRoot
	Name             string           `gorm:"type:varchar(200);not null"`
	ContactEmail     string           `gorm:"type:varchar(200);not null;index"`
	SubscriptionTier SubscriptionTier `gorm:"type:varchar(20);not null;default:'test_drive'"`
	MaxVehicles      int              `gorm:"not null;default:3"`
	OwnerID          uuid.UUID        `gorm:"type:uuid;not null;index"`
	Phone            string           `gorm:"type:varchar(50)"`
	Address          string           `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Company) TableName() string {
	return "companies"
}

// NewCompany creates a new company owned by the given user
func NewCompany(name, contactEmail string, ownerID uuid.UUID) (*Company, error) {
	if err := validateCompanyName(name); err != nil {
		return nil, err
	}
	if err := validateContactEmail(contactEmail); err != nil {
		return nil, err
	}
	if ownerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER", "Company owner cannot be empty")
	}

	company := &Company{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		ContactEmail:      strings.ToLower(strings.TrimSpace(contactEmail)),
		SubscriptionTier:  TierTestDrive,
		OwnerID:           ownerID,
	}
	company.ApplyTierQuota()

	return company, nil
}

// Update updates the company's basic information
func (c *Company) Update(name, phone, address string) error {
	if err := validateCompanyName(name); err != nil {
		return err
	}
	if phone != "" && len(phone) > 50 {
		return shared.NewDomainError("INVALID_PHONE", "Phone cannot exceed 50 characters")
	}

	c.Name = strings.TrimSpace(name)
	c.Phone = strings.TrimSpace(phone)
	c.Address = address
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetContactEmail sets the company's contact email
func (c *Company) SetContactEmail(email string) error {
	if err := validateContactEmail(email); err != nil {
		return err
	}

	c.ContactEmail = strings.ToLower(strings.TrimSpace(email))
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetSubscriptionTier changes the subscription tier and rederives the
// vehicle quota. Unknown tiers are accepted but quoted as test_drive.
func (c *Company) SetSubscriptionTier(tier SubscriptionTier) {
	c.SubscriptionTier = tier
	c.ApplyTierQuota()
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// ApplyTierQuota recomputes MaxVehicles from the subscription tier,
// overriding whatever value the caller supplied.
func (c *Company) ApplyTierQuota() {
	c.MaxVehicles = MaxVehiclesForTier(c.SubscriptionTier)
}

// EmailDomain returns the lowercase domain part of the contact email,
// or an empty string when the email has no domain.
func (c *Company) EmailDomain() string {
	return EmailDomain(c.ContactEmail)
}

// CanAddVehicle returns true if the company is below its vehicle quota
func (c *Company) CanAddVehicle(currentVehicleCount int64) bool {
	return currentVehicleCount < int64(c.MaxVehicles)
}

// IsOwner returns true if the given user owns the company
func (c *Company) IsOwner(userID uuid.UUID) bool {
	return c.OwnerID == userID
}

// EmailDomain returns the lowercase domain part of an email address
func EmailDomain(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return ""
	}
	return strings.ToLower(email[at+1:])
}

// Validation functions

func validateCompanyName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Company name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Company name cannot exceed 200 characters")
	}
	return nil
}

func validateContactEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Contact email cannot be empty")
	}
	return validateEmail(email)
}
