package workorder

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWorkOrderPart(t *testing.T) {
	t.Run("derives total from quantity and unit cost", func(t *testing.T) {
		companyID := uuid.New()
		line, err := NewWorkOrderPart(companyID, uuid.New(), uuid.New(), 3, decimal.NewFromFloat(12.5))
		require.NoError(t, err)
		assert.Equal(t, companyID, line.CompanyID)
		assert.True(t, line.TotalCost.Equal(decimal.NewFromFloat(37.5)), "total = %s", line.TotalCost)
	})

	t.Run("rejects empty company", func(t *testing.T) {
		_, err := NewWorkOrderPart(uuid.Nil, uuid.New(), uuid.New(), 1, decimal.NewFromInt(10))
		assert.Error(t, err)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		_, err := NewWorkOrderPart(uuid.New(), uuid.New(), uuid.New(), 0, decimal.NewFromInt(10))
		assert.Error(t, err)
		_, err = NewWorkOrderPart(uuid.New(), uuid.New(), uuid.New(), -1, decimal.NewFromInt(10))
		assert.Error(t, err)
	})

	t.Run("rejects negative unit cost", func(t *testing.T) {
		_, err := NewWorkOrderPart(uuid.New(), uuid.New(), uuid.New(), 1, decimal.NewFromInt(-10))
		assert.Error(t, err)
	})
}

func TestWorkOrderPart_Mutators(t *testing.T) {
	line, err := NewWorkOrderPart(uuid.New(), uuid.New(), uuid.New(), 2, decimal.NewFromInt(10))
	require.NoError(t, err)

	require.NoError(t, line.SetQuantity(5))
	assert.True(t, line.TotalCost.Equal(decimal.NewFromInt(50)))

	require.NoError(t, line.SetUnitCost(decimal.NewFromInt(4)))
	assert.True(t, line.TotalCost.Equal(decimal.NewFromInt(20)))

	newPart := uuid.New()
	require.NoError(t, line.SetPart(newPart))
	assert.Equal(t, newPart, line.PartID)

	assert.Error(t, line.SetQuantity(0))
	assert.Error(t, line.SetUnitCost(decimal.NewFromInt(-1)))
	assert.Error(t, line.SetPart(uuid.Nil))
}

func TestWorkOrderPart_RecalculateTotal_OverridesCallerValue(t *testing.T) {
	line, err := NewWorkOrderPart(uuid.New(), uuid.New(), uuid.New(), 2, decimal.NewFromInt(10))
	require.NoError(t, err)

	line.TotalCost = decimal.NewFromInt(9999)
	line.RecalculateTotal()

	assert.True(t, line.TotalCost.Equal(decimal.NewFromInt(20)))
}
