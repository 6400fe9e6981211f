package persistence_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/fleetcore/backend/internal/domain/shared"
	"github.com/fleetcore/backend/internal/infrastructure/persistence"
	"github.com/fleetcore/backend/tests/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The stock guard must be a single conditional UPDATE. A read-modify-write
// here would reintroduce the lost-update race, so these tests assert the
// statement shape, not just the outcome.
func TestGormPartsInventoryRepository_AdjustStock_SQL(t *testing.T) {
	ctx := context.Background()
	partID := uuid.New()

	t.Run("decrement issues one conditional update", func(t *testing.T) {
		mockDB := testutil.NewMockDB(t)
		repo := persistence.NewGormPartsInventoryRepository(mockDB.DB)

		mockDB.Mock.ExpectExec(`UPDATE "parts_inventories" SET "quantity_in_stock"=quantity_in_stock \+ \$1,"updated_at"=\$2 WHERE id = \$3 AND quantity_in_stock \+ \$4 >= 0`).
			WithArgs(-3, sqlmock.AnyArg(), partID, -3).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.AdjustStock(ctx, partID, -3))
		mockDB.ExpectationsWereMet(t)
	})

	t.Run("zero affected rows falls back to an existence check", func(t *testing.T) {
		mockDB := testutil.NewMockDB(t)
		repo := persistence.NewGormPartsInventoryRepository(mockDB.DB)

		mockDB.Mock.ExpectExec(`UPDATE "parts_inventories"`).
			WithArgs(-5, sqlmock.AnyArg(), partID, -5).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mockDB.Mock.ExpectQuery(`SELECT count\(\*\) FROM "parts_inventories" WHERE id = \$1`).
			WithArgs(partID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		err := repo.AdjustStock(ctx, partID, -5)
		assert.True(t, shared.IsCode(err, "INSUFFICIENT_INVENTORY"))
		mockDB.ExpectationsWereMet(t)
	})

	t.Run("zero delta issues no statement", func(t *testing.T) {
		mockDB := testutil.NewMockDB(t)
		repo := persistence.NewGormPartsInventoryRepository(mockDB.DB)

		require.NoError(t, repo.AdjustStock(ctx, partID, 0))
		mockDB.ExpectationsWereMet(t)
	})
}
