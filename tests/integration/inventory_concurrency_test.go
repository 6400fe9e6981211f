package integration

import (
	"context"
	"sync"
	"testing"

	"github.com/fleetcore/backend/internal/domain/inventory"
	"github.com/fleetcore/backend/internal/domain/shared"
	"github.com/fleetcore/backend/internal/infrastructure/persistence"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestInventory_ConcurrentDecrements drives concurrent stock decrements
// against a real PostgreSQL database. The conditional update must admit
// exactly as many decrements as there is stock and never go negative.
func TestInventory_ConcurrentDecrements(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := NewTestDB(t)
	ctx := context.Background()
	repo := persistence.NewGormPartsInventoryRepository(testDB.DB)

	part, err := inventory.NewPartsInventory(uuid.New(), "BRK-1001", "Brake Pad Set")
	require.NoError(t, err)
	part.QuantityInStock = 10
	require.NoError(t, repo.Create(ctx, part))

	const workers = 20

	errs := make([]error, workers)

	var start sync.WaitGroup
	start.Add(1)
	var done sync.WaitGroup
	for i := 0; i < workers; i++ {
		done.Add(1)
		go func(i int) {
			defer done.Done()
			start.Wait()
			errs[i] = repo.AdjustStock(ctx, part.ID, -1)
		}(i)
	}
	start.Done()
	done.Wait()

	succeeded, rejected := 0, 0
	for i, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case shared.IsCode(err, "INSUFFICIENT_INVENTORY"):
			rejected++
		default:
			t.Fatalf("worker %d: unexpected error: %v", i, err)
		}
	}

	assert.Equal(t, 10, succeeded)
	assert.Equal(t, 10, rejected)

	stored, err := repo.FindByID(ctx, part.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.QuantityInStock, "stock must never go negative")
}
