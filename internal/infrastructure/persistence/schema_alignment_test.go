package persistence_test

import (
	"bufio"
	"os"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/fleetcore/backend/internal/domain/audit"
	"github.com/fleetcore/backend/internal/domain/fleet"
	"github.com/fleetcore/backend/internal/domain/identity"
	"github.com/fleetcore/backend/internal/domain/inventory"
	"github.com/fleetcore/backend/internal/domain/workorder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

const initMigrationPath = "../../../migrations/000001_init.up.sql"

// ddlColumns extracts the column names of every CREATE TABLE statement in
// the init migration. Constraint lines carry no column of their own and
// are skipped.
func ddlColumns(t *testing.T) map[string][]string {
	t.Helper()

	f, err := os.Open(initMigrationPath)
	require.NoError(t, err)
	defer f.Close()

	tables := make(map[string][]string)
	var current string

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if name, ok := strings.CutPrefix(line, "CREATE TABLE IF NOT EXISTS "); ok {
			current = strings.TrimSpace(strings.TrimSuffix(name, "("))
			continue
		}
		if current == "" {
			continue
		}
		if strings.HasPrefix(line, ")") {
			current = ""
			continue
		}
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}

		first := strings.Fields(line)[0]
		switch first {
		case "CHECK", "CONSTRAINT", "PRIMARY", "FOREIGN", "UNIQUE":
			continue
		}
		tables[current] = append(tables[current], first)
	}
	require.NoError(t, scanner.Err())
	require.NotEmpty(t, tables)

	return tables
}

// modelColumns derives the column set gorm maps a model to
func modelColumns(t *testing.T, model interface{}) []string {
	t.Helper()

	s, err := schema.Parse(model, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)

	cols := make([]string, len(s.DBNames))
	copy(cols, s.DBNames)
	return cols
}

// Every column a model writes must exist in the migrated schema and vice
// versa. A model/DDL drift fails the first insert against a migrated
// database, so the two are asserted equal per table.
func TestInitMigration_ColumnsMatchModels(t *testing.T) {
	tables := ddlColumns(t)

	models := map[string]interface{}{
		"companies":               &identity.Company{},
		"users":                   &identity.User{},
		"memberships":             &identity.Membership{},
		"role_permissions":        &identity.RolePermission{},
		"vehicles":                &fleet.Vehicle{},
		"equipment":               &fleet.Equipment{},
		"taxonomy_entries":        &fleet.TaxonomyEntry{},
		"work_orders":             &workorder.WorkOrder{},
		"work_order_parts":        &workorder.WorkOrderPart{},
		"work_order_labor":        &workorder.WorkOrderLabor{},
		"parts_inventory":         &inventory.PartsInventory{},
		"audit_log_entries":       &audit.AuditLogEntry{},
		"admin_audit_log_entries": &audit.AdminAuditLogEntry{},
	}

	require.Len(t, tables, len(models), "migration and model inventory disagree on table count")

	for table, model := range models {
		t.Run(table, func(t *testing.T) {
			ddl, ok := tables[table]
			require.True(t, ok, "table %s not created by the init migration", table)

			want := append([]string(nil), ddl...)
			got := modelColumns(t, model)
			sort.Strings(want)
			sort.Strings(got)

			assert.Equal(t, want, got)
		})
	}
}

// The users table carries the optimistic-lock version and last login
// timestamp the user repository writes on every update.
func TestInitMigration_UsersCarryVersionAndLastLogin(t *testing.T) {
	users := ddlColumns(t)["users"]

	assert.Contains(t, users, "version")
	assert.Contains(t, users, "last_login_at")
}

// Work order line tables are tenant-scoped like every other company
// aggregate; their models must populate company_id or inserts violate
// the NOT NULL constraint.
func TestInitMigration_LineItemsAreCompanyScoped(t *testing.T) {
	for _, model := range []interface{}{&workorder.WorkOrderPart{}, &workorder.WorkOrderLabor{}} {
		cols := modelColumns(t, model)
		assert.Contains(t, cols, "company_id")
		assert.Contains(t, cols, "version")
	}
}
