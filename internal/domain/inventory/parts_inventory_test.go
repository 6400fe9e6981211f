package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPartsInventory(t *testing.T) {
	companyID := uuid.New()

	t.Run("creates record with zero stock", func(t *testing.T) {
		part, err := NewPartsInventory(companyID, "BRK-1001", "Brake Pad Set")
		require.NoError(t, err)
		assert.Equal(t, companyID, part.CompanyID)
		assert.Equal(t, "BRK-1001", part.PartNumber)
		assert.Equal(t, 0, part.QuantityInStock)
		assert.Equal(t, 0, part.ReorderPoint)
	})

	t.Run("trims part number and name", func(t *testing.T) {
		part, err := NewPartsInventory(companyID, "  BRK-1001  ", "  Brake Pad Set  ")
		require.NoError(t, err)
		assert.Equal(t, "BRK-1001", part.PartNumber)
		assert.Equal(t, "Brake Pad Set", part.Name)
	})

	t.Run("rejects empty part number", func(t *testing.T) {
		_, err := NewPartsInventory(companyID, "  ", "Brake Pad Set")
		assert.Error(t, err)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewPartsInventory(companyID, "BRK-1001", "")
		assert.Error(t, err)
	})
}

func TestPartsInventory_NeedsReorder(t *testing.T) {
	tests := []struct {
		name         string
		stock        int
		reorderPoint int
		want         bool
	}{
		{"below reorder point", 2, 5, true},
		{"at reorder point", 5, 5, true},
		{"above reorder point", 6, 5, false},
		{"zero reorder point disables the check", 0, 0, false},
		{"zero stock with zero reorder point", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			part := &PartsInventory{QuantityInStock: tt.stock, ReorderPoint: tt.reorderPoint}
			assert.Equal(t, tt.want, part.NeedsReorder())
		})
	}
}

func TestPartsInventory_Mutators(t *testing.T) {
	part, err := NewPartsInventory(uuid.New(), "BRK-1001", "Brake Pad Set")
	require.NoError(t, err)

	require.NoError(t, part.SetReorderPoint(10))
	assert.Equal(t, 10, part.ReorderPoint)
	assert.Error(t, part.SetReorderPoint(-1))

	require.NoError(t, part.SetUnitCost(decimal.NewFromFloat(24.99)))
	assert.True(t, part.UnitCost.Equal(decimal.NewFromFloat(24.99)))
	assert.Error(t, part.SetUnitCost(decimal.NewFromInt(-1)))
}
