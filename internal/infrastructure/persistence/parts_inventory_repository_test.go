package persistence

import (
	"context"
	"testing"

	"github.com/fleetcore/backend/internal/domain/inventory"
	"github.com/fleetcore/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedPart(t *testing.T, db *gorm.DB, quantity int) *inventory.PartsInventory {
	t.Helper()

	part, err := inventory.NewPartsInventory(uuid.New(), "BRK-1001", "Brake Pad Set")
	require.NoError(t, err)
	part.QuantityInStock = quantity
	require.NoError(t, NewGormPartsInventoryRepository(db).Create(context.Background(), part))

	return part
}

func TestGormPartsInventoryRepository_AdjustStock(t *testing.T) {
	ctx := context.Background()

	t.Run("applies positive and negative deltas", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormPartsInventoryRepository(db)
		part := seedPart(t, db, 10)

		require.NoError(t, repo.AdjustStock(ctx, part.ID, -4))
		require.NoError(t, repo.AdjustStock(ctx, part.ID, 2))

		stored, err := repo.FindByID(ctx, part.ID)
		require.NoError(t, err)
		assert.Equal(t, 8, stored.QuantityInStock)
	})

	t.Run("decrement to exactly zero succeeds", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormPartsInventoryRepository(db)
		part := seedPart(t, db, 5)

		require.NoError(t, repo.AdjustStock(ctx, part.ID, -5))

		stored, err := repo.FindByID(ctx, part.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, stored.QuantityInStock)
	})

	t.Run("underflow is rejected and leaves stock untouched", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormPartsInventoryRepository(db)
		part := seedPart(t, db, 3)

		err := repo.AdjustStock(ctx, part.ID, -4)
		assert.True(t, shared.IsCode(err, "INSUFFICIENT_INVENTORY"))

		stored, err := repo.FindByID(ctx, part.ID)
		require.NoError(t, err)
		assert.Equal(t, 3, stored.QuantityInStock)
	})

	t.Run("missing part is reported as not found", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormPartsInventoryRepository(db)

		err := repo.AdjustStock(ctx, uuid.New(), -1)
		assert.True(t, shared.IsCode(err, "NOT_FOUND"))
	})

	t.Run("zero delta is a no-op", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormPartsInventoryRepository(db)

		// Even a missing part does not error on a zero delta
		assert.NoError(t, repo.AdjustStock(ctx, uuid.New(), 0))
	})
}

func TestGormPartsInventoryRepository_Update_DoesNotWriteStock(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewGormPartsInventoryRepository(db)
	part := seedPart(t, db, 7)

	part.Name = "Renamed"
	part.QuantityInStock = 9999
	require.NoError(t, repo.Update(ctx, part))

	stored, err := repo.FindByID(ctx, part.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", stored.Name)
	assert.Equal(t, 7, stored.QuantityInStock, "stock moves only through AdjustStock")
}
