package workorder

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWorkOrder(t *testing.T) {
	companyID := uuid.New()
	assetID := uuid.New()

	t.Run("vehicle order mirrors asset into vehicle_id", func(t *testing.T) {
		wo, err := NewWorkOrder(companyID, "Brake inspection", AssetTypeVehicle, assetID)
		require.NoError(t, err)

		assert.Equal(t, AssetTypeVehicle, wo.AssetType)
		assert.Equal(t, assetID, wo.AssetID)
		require.NotNil(t, wo.VehicleID)
		assert.Equal(t, assetID, *wo.VehicleID)
		assert.Equal(t, StatusOpen, wo.Status)
		assert.Equal(t, PriorityMedium, wo.Priority)
		assert.True(t, wo.PartsCost.IsZero())
		assert.True(t, wo.LaborCost.IsZero())
	})

	t.Run("equipment order carries no vehicle_id", func(t *testing.T) {
		wo, err := NewWorkOrder(companyID, "Generator service", AssetTypeEquipment, assetID)
		require.NoError(t, err)
		assert.Nil(t, wo.VehicleID)
	})

	t.Run("rejects empty title", func(t *testing.T) {
		_, err := NewWorkOrder(companyID, " ", AssetTypeVehicle, assetID)
		assert.Error(t, err)
	})

	t.Run("rejects unknown asset type", func(t *testing.T) {
		_, err := NewWorkOrder(companyID, "Brake inspection", AssetType("drone"), assetID)
		assert.Error(t, err)
	})

	t.Run("rejects empty asset id", func(t *testing.T) {
		_, err := NewWorkOrder(companyID, "Brake inspection", AssetTypeVehicle, uuid.Nil)
		assert.Error(t, err)
	})
}

func TestWorkOrder_SyncAssetFields(t *testing.T) {
	companyID := uuid.New()

	t.Run("set vehicle_id wins over asset pair", func(t *testing.T) {
		wo, err := NewWorkOrder(companyID, "Service", AssetTypeEquipment, uuid.New())
		require.NoError(t, err)

		vehicleID := uuid.New()
		wo.VehicleID = &vehicleID
		wo.SyncAssetFields()

		assert.Equal(t, AssetTypeVehicle, wo.AssetType)
		assert.Equal(t, vehicleID, wo.AssetID)
	})

	t.Run("vehicle order mirrors asset_id into vehicle_id", func(t *testing.T) {
		assetID := uuid.New()
		wo := &WorkOrder{AssetType: AssetTypeVehicle, AssetID: assetID}
		wo.SyncAssetFields()

		require.NotNil(t, wo.VehicleID)
		assert.Equal(t, assetID, *wo.VehicleID)
	})

	t.Run("switching to equipment clears vehicle_id", func(t *testing.T) {
		wo, err := NewWorkOrder(companyID, "Service", AssetTypeVehicle, uuid.New())
		require.NoError(t, err)
		require.NotNil(t, wo.VehicleID)

		wo.VehicleID = nil
		wo.AssetType = AssetTypeEquipment
		wo.AssetID = uuid.New()
		wo.SyncAssetFields()

		assert.Nil(t, wo.VehicleID)
	})
}

func TestWorkOrder_SetStatus(t *testing.T) {
	wo, err := NewWorkOrder(uuid.New(), "Service", AssetTypeVehicle, uuid.New())
	require.NoError(t, err)

	require.NoError(t, wo.SetStatus(StatusInProgress))
	assert.Nil(t, wo.CompletedAt)

	require.NoError(t, wo.SetStatus(StatusCompleted))
	assert.NotNil(t, wo.CompletedAt)

	assert.Error(t, wo.SetStatus(Status("archived")))
}
