package persistence

import (
	"testing"

	"github.com/fleetcore/backend/internal/domain/audit"
	"github.com/fleetcore/backend/internal/domain/fleet"
	"github.com/fleetcore/backend/internal/domain/identity"
	"github.com/fleetcore/backend/internal/domain/inventory"
	"github.com/fleetcore/backend/internal/domain/workorder"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupTestDB opens an in-memory SQLite database with the full schema.
// TranslateError maps constraint violations onto gorm.ErrDuplicatedKey so
// the unique-violation helpers behave as they do on PostgreSQL.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err, "Failed to open SQLite database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps the in-memory database alive across the pool
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&identity.Company{},
		&identity.User{},
		&identity.Membership{},
		&identity.RolePermission{},
		&fleet.Vehicle{},
		&fleet.Equipment{},
		&fleet.TaxonomyEntry{},
		&workorder.WorkOrder{},
		&workorder.WorkOrderPart{},
		&workorder.WorkOrderLabor{},
		&inventory.PartsInventory{},
		&audit.AuditLogEntry{},
		&audit.AdminAuditLogEntry{},
	)
	require.NoError(t, err, "Failed to migrate schema")

	err = db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_memberships_one_admin_per_company
		ON memberships(company_id) WHERE role = 'admin'`).Error
	require.NoError(t, err, "Failed to create admin index")

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return db
}
