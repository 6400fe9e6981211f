package persistence

import (
	"context"

	"github.com/fleetcore/backend/internal/domain/fleet"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTaxonomyRepository implements fleet.TaxonomyRepository using GORM
type GormTaxonomyRepository struct {
	db *gorm.DB
}

// NewGormTaxonomyRepository creates a new GormTaxonomyRepository
func NewGormTaxonomyRepository(db *gorm.DB) *GormTaxonomyRepository {
	return &GormTaxonomyRepository{db: db}
}

// FindForCompany returns a company's taxonomy entries of a given kind
func (r *GormTaxonomyRepository) FindForCompany(ctx context.Context, companyID uuid.UUID, kind fleet.TaxonomyKind) ([]fleet.TaxonomyEntry, error) {
	var entries []fleet.TaxonomyEntry
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND kind = ?", companyID, kind).
		Order("value asc").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// SeedDefaults inserts the default classification catalog for a company.
// Existing rows are skipped so re-seeding is safe.
func (r *GormTaxonomyRepository) SeedDefaults(ctx context.Context, companyID uuid.UUID) error {
	entries := fleet.DefaultTaxonomyEntries(companyID)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "company_id"}, {Name: "kind"}, {Name: "value"}},
		DoNothing: true,
	}).Create(&entries).Error
}
