package identity

import (
	"context"

	"github.com/fleetcore/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CompanyRepository defines persistence operations for companies
type CompanyRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Company, error)
	FindByContactEmail(ctx context.Context, email string) (*Company, error)
	FindByEmailDomain(ctx context.Context, domain string) (*Company, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Company, error)
	Create(ctx context.Context, company *Company) error
	Update(ctx context.Context, company *Company) error
	Delete(ctx context.Context, id uuid.UUID) error
}
