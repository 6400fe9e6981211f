package identity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaxVehiclesForTier(t *testing.T) {
	tests := []struct {
		tier SubscriptionTier
		want int
	}{
		{TierTestDrive, 3},
		{TierStarter, 10},
		{TierStandard, 50},
		{TierProfessional, 250},
		{SubscriptionTier("enterprise"), 3},
		{SubscriptionTier(""), 3},
	}

	for _, tt := range tests {
		t.Run(string(tt.tier), func(t *testing.T) {
			assert.Equal(t, tt.want, MaxVehiclesForTier(tt.tier))
		})
	}
}

func TestNewCompany(t *testing.T) {
	ownerID := uuid.New()

	t.Run("creates company with derived quota", func(t *testing.T) {
		company, err := NewCompany("Acme Fleet", "Ops@Acme.example.com", ownerID)
		require.NoError(t, err)

		assert.Equal(t, "Acme Fleet", company.Name)
		assert.Equal(t, "ops@acme.example.com", company.ContactEmail)
		assert.Equal(t, TierTestDrive, company.SubscriptionTier)
		assert.Equal(t, 3, company.MaxVehicles)
		assert.Equal(t, ownerID, company.OwnerID)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewCompany("  ", "ops@acme.example.com", ownerID)
		assert.Error(t, err)
	})

	t.Run("rejects empty owner", func(t *testing.T) {
		_, err := NewCompany("Acme Fleet", "ops@acme.example.com", uuid.Nil)
		assert.Error(t, err)
	})

	t.Run("rejects malformed email", func(t *testing.T) {
		_, err := NewCompany("Acme Fleet", "not-an-email", ownerID)
		assert.Error(t, err)
	})
}

func TestCompany_SetSubscriptionTier(t *testing.T) {
	company, err := NewCompany("Acme Fleet", "ops@acme.example.com", uuid.New())
	require.NoError(t, err)

	company.SetSubscriptionTier(TierProfessional)
	assert.Equal(t, 250, company.MaxVehicles)

	// Unknown tiers are accepted but clamped to the smallest quota
	company.SetSubscriptionTier(SubscriptionTier("platinum"))
	assert.Equal(t, 3, company.MaxVehicles)
}

func TestCompany_ApplyTierQuota_OverridesCallerValue(t *testing.T) {
	company, err := NewCompany("Acme Fleet", "ops@acme.example.com", uuid.New())
	require.NoError(t, err)
	company.SubscriptionTier = TierStarter
	company.MaxVehicles = 9999

	company.ApplyTierQuota()

	assert.Equal(t, 10, company.MaxVehicles)
}

func TestCompany_CanAddVehicle(t *testing.T) {
	company, err := NewCompany("Acme Fleet", "ops@acme.example.com", uuid.New())
	require.NoError(t, err)

	assert.True(t, company.CanAddVehicle(0))
	assert.True(t, company.CanAddVehicle(2))
	assert.False(t, company.CanAddVehicle(3))
	assert.False(t, company.CanAddVehicle(10))
}

func TestEmailDomain(t *testing.T) {
	assert.Equal(t, "acme.example.com", EmailDomain("ops@acme.example.com"))
	assert.Equal(t, "acme.example.com", EmailDomain("ops@ACME.Example.Com"))
	assert.Equal(t, "", EmailDomain("no-at-sign"))
	assert.Equal(t, "", EmailDomain("trailing@"))
}
