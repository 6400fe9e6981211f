package fleet

import (
	"time"

	"github.com/google/uuid"
)

// TaxonomyKind discriminates the fixed classification lists seeded for
// every new company.
type TaxonomyKind string

const (
	TaxonomyVehicleType   TaxonomyKind = "vehicle_type"
	TaxonomyVehicleStatus TaxonomyKind = "vehicle_status"
	TaxonomyOwnershipType TaxonomyKind = "ownership_type"
	TaxonomyGroup         TaxonomyKind = "group"
	TaxonomyTag           TaxonomyKind = "tag"
)

// TaxonomyEntry is one classification value owned by a company
type TaxonomyEntry struct {
	ID        uuid.UUID    `gorm:"type:uuid;primaryKey"`
	CompanyID uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_taxonomy_entry,priority:1"`
	Kind      TaxonomyKind `gorm:"type:varchar(30);not null;uniqueIndex:idx_taxonomy_entry,priority:2"`
	Value     string       `gorm:"type:varchar(100);not null;uniqueIndex:idx_taxonomy_entry,priority:3"`
	CreatedAt time.Time
}

// TableName returns the table name for GORM
func (TaxonomyEntry) TableName() string {
	return "taxonomy_entries"
}

// defaultTaxonomy is the fixed catalog seeded when a company is created.
// It is data, not derived logic; seeding is an idempotent bulk insert.
var defaultTaxonomy = map[TaxonomyKind][]string{
	TaxonomyVehicleType: {
		"Car", "Pickup Truck", "Box Truck", "Semi Truck", "Van", "Bus", "Trailer", "Forklift",
	},
	TaxonomyVehicleStatus: {
		"Active", "In Shop", "Out of Service", "Sold",
	},
	TaxonomyOwnershipType: {
		"Owned", "Leased", "Rented", "Customer",
	},
	TaxonomyGroup: {
		"Main Fleet", "Service", "Delivery",
	},
	TaxonomyTag: {
		"Priority", "Spare", "Seasonal",
	},
}

// DefaultTaxonomyEntries returns the default classification rows for a new
// company, ready for an idempotent bulk insert.
func DefaultTaxonomyEntries(companyID uuid.UUID) []TaxonomyEntry {
	now := time.Now()
	var entries []TaxonomyEntry
	for _, kind := range []TaxonomyKind{
		TaxonomyVehicleType,
		TaxonomyVehicleStatus,
		TaxonomyOwnershipType,
		TaxonomyGroup,
		TaxonomyTag,
	} {
		for _, value := range defaultTaxonomy[kind] {
			entries = append(entries, TaxonomyEntry{
				ID:        uuid.New(),
				CompanyID: companyID,
				Kind:      kind,
				Value:     value,
				CreatedAt: now,
			})
		}
	}
	return entries
}
