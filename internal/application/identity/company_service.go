package identity

import (
	"context"
	"time"

	"github.com/fleetcore/backend/internal/domain/identity"
	"github.com/fleetcore/backend/internal/domain/shared"
	"github.com/fleetcore/backend/internal/infrastructure/persistence"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CompanyService handles company management operations. All mutations run
// inside one transaction together with the quota and owner-seeding hooks.
type CompanyService struct {
	db          *persistence.Database
	companyRepo identity.CompanyRepository
	logger      *zap.Logger
}

// NewCompanyService creates a new company service
func NewCompanyService(db *persistence.Database, companyRepo identity.CompanyRepository, logger *zap.Logger) *CompanyService {
	return &CompanyService{
		db:          db,
		companyRepo: companyRepo,
		logger:      logger,
	}
}

// CreateCompanyInput contains input for creating a company
type CreateCompanyInput struct {
	Name             string
	ContactEmail     string
	OwnerID          uuid.UUID
	SubscriptionTier identity.SubscriptionTier
	Phone            string
	Address          string
}

// UpdateCompanyInput contains input for updating a company
type UpdateCompanyInput struct {
	ID               uuid.UUID
	Name             *string
	ContactEmail     *string
	SubscriptionTier *identity.SubscriptionTier
	Phone            *string
	Address          *string
}

// CompanyDTO represents company data returned to callers
type CompanyDTO struct {
	ID               uuid.UUID                 `json:"id"`
	Name             string                    `json:"name"`
	ContactEmail     string                    `json:"contact_email"`
	SubscriptionTier identity.SubscriptionTier `json:"subscription_tier"`
	MaxVehicles      int                       `json:"max_vehicles"`
	OwnerID          uuid.UUID                 `json:"owner_id"`
	Phone            string                    `json:"phone,omitempty"`
	Address          string                    `json:"address,omitempty"`
	CreatedAt        time.Time                 `json:"created_at"`
	UpdatedAt        time.Time                 `json:"updated_at"`
}

func toCompanyDTO(c *identity.Company) *CompanyDTO {
	return &CompanyDTO{
		ID:               c.ID,
		Name:             c.Name,
		ContactEmail:     c.ContactEmail,
		SubscriptionTier: c.SubscriptionTier,
		MaxVehicles:      c.MaxVehicles,
		OwnerID:          c.OwnerID,
		Phone:            c.Phone,
		Address:          c.Address,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}

// Create creates a company. The quota hook derives max_vehicles and the
// owner-seeding hook creates the owner membership and default taxonomy in
// the same transaction.
func (s *CompanyService) Create(ctx context.Context, input CreateCompanyInput) (*CompanyDTO, error) {
	s.logger.Info("Creating company",
		zap.String("name", input.Name),
		zap.String("owner_id", input.OwnerID.String()))

	company, err := identity.NewCompany(input.Name, input.ContactEmail, input.OwnerID)
	if err != nil {
		return nil, err
	}
	if input.SubscriptionTier != "" {
		company.SetSubscriptionTier(input.SubscriptionTier)
	}
	if input.Phone != "" || input.Address != "" {
		company.Phone = input.Phone
		company.Address = input.Address
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := CompanyQuotaHook(ctx, tx, nil, company); err != nil {
			return err
		}

		companyRepo := persistence.NewGormCompanyRepository(tx)
		if err := companyRepo.Create(ctx, company); err != nil {
			return err
		}

		return OwnerMembershipHook(ctx, tx, nil, company)
	})
	if err != nil {
		s.logger.Error("Failed to create company",
			zap.String("name", input.Name),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Company created",
		zap.String("company_id", company.ID.String()),
		zap.String("tier", string(company.SubscriptionTier)),
		zap.Int("max_vehicles", company.MaxVehicles))

	return toCompanyDTO(company), nil
}

// Update updates a company. The quota hook recomputes max_vehicles whenever
// the subscription tier changes, ignoring any caller-supplied quota.
func (s *CompanyService) Update(ctx context.Context, input UpdateCompanyInput) (*CompanyDTO, error) {
	company, err := s.companyRepo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	old := *company

	name := company.Name
	if input.Name != nil {
		name = *input.Name
	}
	phone := company.Phone
	if input.Phone != nil {
		phone = *input.Phone
	}
	address := company.Address
	if input.Address != nil {
		address = *input.Address
	}
	if err := company.Update(name, phone, address); err != nil {
		return nil, err
	}
	if input.ContactEmail != nil {
		if err := company.SetContactEmail(*input.ContactEmail); err != nil {
			return nil, err
		}
	}
	if input.SubscriptionTier != nil {
		company.SetSubscriptionTier(*input.SubscriptionTier)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := CompanyQuotaHook(ctx, tx, &old, company); err != nil {
			return err
		}

		companyRepo := persistence.NewGormCompanyRepository(tx)
		return companyRepo.Update(ctx, company)
	})
	if err != nil {
		s.logger.Error("Failed to update company",
			zap.String("company_id", input.ID.String()),
			zap.Error(err))
		return nil, err
	}

	return toCompanyDTO(company), nil
}

// GetByID returns a company by ID
func (s *CompanyService) GetByID(ctx context.Context, id uuid.UUID) (*CompanyDTO, error) {
	company, err := s.companyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCompanyDTO(company), nil
}

// List returns companies matching the filter
func (s *CompanyService) List(ctx context.Context, filter shared.Filter) ([]CompanyDTO, error) {
	companies, err := s.companyRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	dtos := make([]CompanyDTO, len(companies))
	for i := range companies {
		dtos[i] = *toCompanyDTO(&companies[i])
	}
	return dtos, nil
}
