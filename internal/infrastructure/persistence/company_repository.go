package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/fleetcore/backend/internal/domain/identity"
	"github.com/fleetcore/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCompanyRepository implements identity.CompanyRepository using GORM
type GormCompanyRepository struct {
	db *gorm.DB
}

// NewGormCompanyRepository creates a new GormCompanyRepository
func NewGormCompanyRepository(db *gorm.DB) *GormCompanyRepository {
	return &GormCompanyRepository{db: db}
}

// FindByID finds a company by its ID
func (r *GormCompanyRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Company, error) {
	var company identity.Company
	if err := r.db.WithContext(ctx).First(&company, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &company, nil
}

// FindByContactEmail finds the company whose contact email exactly matches
func (r *GormCompanyRepository) FindByContactEmail(ctx context.Context, email string) (*identity.Company, error) {
	var company identity.Company
	if err := r.db.WithContext(ctx).
		Where("contact_email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &company, nil
}

// FindByEmailDomain finds a company whose contact email domain matches the
// given domain, case-insensitively.
func (r *GormCompanyRepository) FindByEmailDomain(ctx context.Context, domain string) (*identity.Company, error) {
	var company identity.Company
	if err := r.db.WithContext(ctx).
		Where("lower(contact_email) LIKE ?", "%@"+strings.ToLower(strings.TrimSpace(domain))).
		First(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &company, nil
}

// FindAll returns companies matching the filter
func (r *GormCompanyRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.Company, error) {
	var companies []identity.Company
	if err := applyFilter(r.db.WithContext(ctx).Model(&identity.Company{}), filter).
		Find(&companies).Error; err != nil {
		return nil, err
	}
	return companies, nil
}

// Create inserts a new company
func (r *GormCompanyRepository) Create(ctx context.Context, company *identity.Company) error {
	return r.db.WithContext(ctx).Create(company).Error
}

// Update saves an existing company
func (r *GormCompanyRepository) Update(ctx context.Context, company *identity.Company) error {
	result := r.db.WithContext(ctx).Model(company).
		Where("id = ?", company.ID).
		Updates(map[string]interface{}{
			"name":              company.Name,
			"contact_email":     company.ContactEmail,
			"subscription_tier": company.SubscriptionTier,
			"max_vehicles":      company.MaxVehicles,
			"phone":             company.Phone,
			"address":           company.Address,
			"version":           company.Version,
			"updated_at":        company.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete deletes a company
func (r *GormCompanyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&identity.Company{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
