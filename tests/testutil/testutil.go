// Package testutil provides common test utilities for the FleetCore backend.
// It contains helpers for setting up test databases, building actor contexts
// and creating mock objects.
package testutil

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/fleetcore/backend/internal/domain/audit"
	"github.com/fleetcore/backend/internal/domain/fleet"
	"github.com/fleetcore/backend/internal/domain/identity"
	"github.com/fleetcore/backend/internal/domain/inventory"
	"github.com/fleetcore/backend/internal/domain/shared"
	"github.com/fleetcore/backend/internal/domain/workorder"
	"github.com/fleetcore/backend/internal/infrastructure/persistence"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// OpenDB opens an in-memory SQLite database carrying the full schema.
// TranslateError maps SQLite constraint violations onto gorm.ErrDuplicatedKey
// so the unique-violation checks behave as they do on PostgreSQL.
func OpenDB(t *testing.T) *persistence.Database {
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

	// AutoMigrate cannot express the partial unique index from the initial
	// migration, so it is created by hand.
	err = db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_memberships_one_admin_per_company
		ON memberships(company_id) WHERE role = 'admin'`).Error
	require.NoError(t, err, "Failed to create admin index")

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return &persistence.Database{DB: db}
}

// ActorContext returns a context carrying an end-user actor
func ActorContext(userID uuid.UUID, companyID *uuid.UUID) context.Context {
	return shared.WithActor(context.Background(), shared.Actor{
		UserID:    userID,
		CompanyID: companyID,
	})
}

// PlatformAdminContext returns a context carrying a platform-admin actor
func PlatformAdminContext(userID uuid.UUID) context.Context {
	return shared.WithActor(context.Background(), shared.Actor{
		UserID:          userID,
		IsPlatformAdmin: true,
	})
}

// MockDB wraps a GORM database with sqlmock for SQL-level assertions
type MockDB struct {
	DB    *gorm.DB
	Mock  sqlmock.Sqlmock
	SqlDB *sql.DB
}

// NewMockDB creates a new mock database. The caller closes it via Cleanup.
func NewMockDB(t *testing.T) *MockDB {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err, "Failed to create sqlmock")

	dialector := gormpostgres.New(gormpostgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err, "Failed to open GORM connection")

	t.Cleanup(func() {
		_ = mockDB.Close()
	})

	return &MockDB{
		DB:    gormDB,
		Mock:  mock,
		SqlDB: mockDB,
	}
}

// ExpectationsWereMet verifies that all sqlmock expectations were met
func (m *MockDB) ExpectationsWereMet(t *testing.T) {
	t.Helper()
	require.NoError(t, m.Mock.ExpectationsWereMet(), "Unmet database expectations")
}
