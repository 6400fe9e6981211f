package fleet

import (
	"context"

	"github.com/fleetcore/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// VehicleRepository defines persistence operations for vehicles
type VehicleRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Vehicle, error)
	FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*Vehicle, error)
	FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]Vehicle, error)
	CountForCompany(ctx context.Context, companyID uuid.UUID) (int64, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	Create(ctx context.Context, vehicle *Vehicle) error
	Update(ctx context.Context, vehicle *Vehicle) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// EquipmentRepository defines persistence operations for equipment
type EquipmentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Equipment, error)
	FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]Equipment, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	Create(ctx context.Context, equipment *Equipment) error
	Update(ctx context.Context, equipment *Equipment) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// TaxonomyRepository defines persistence operations for taxonomy entries
type TaxonomyRepository interface {
	FindForCompany(ctx context.Context, companyID uuid.UUID, kind TaxonomyKind) ([]TaxonomyEntry, error)
	// SeedDefaults bulk-inserts the default catalog for a company,
	// skipping rows that already exist.
	SeedDefaults(ctx context.Context, companyID uuid.UUID) error
}
