package fleet

import (
	"context"

	"github.com/fleetcore/backend/internal/domain/fleet"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TaxonomyService reads the classification catalog of a company. Seeding
// happens through the company creation hook; this service is read-only.
type TaxonomyService struct {
	taxonomyRepo fleet.TaxonomyRepository
	logger       *zap.Logger
}

// NewTaxonomyService creates a new taxonomy service
func NewTaxonomyService(taxonomyRepo fleet.TaxonomyRepository, logger *zap.Logger) *TaxonomyService {
	return &TaxonomyService{
		taxonomyRepo: taxonomyRepo,
		logger:       logger,
	}
}

// TaxonomyEntryDTO represents one classification value
type TaxonomyEntryDTO struct {
	ID    uuid.UUID          `json:"id"`
	Kind  fleet.TaxonomyKind `json:"kind"`
	Value string             `json:"value"`
}

// List returns a company's classification values for one kind
func (s *TaxonomyService) List(ctx context.Context, companyID uuid.UUID, kind fleet.TaxonomyKind) ([]TaxonomyEntryDTO, error) {
	entries, err := s.taxonomyRepo.FindForCompany(ctx, companyID, kind)
	if err != nil {
		return nil, err
	}

	dtos := make([]TaxonomyEntryDTO, len(entries))
	for i, e := range entries {
		dtos[i] = TaxonomyEntryDTO{ID: e.ID, Kind: e.Kind, Value: e.Value}
	}
	return dtos, nil
}
