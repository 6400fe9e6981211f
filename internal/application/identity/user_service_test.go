package identity

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/fleetcore/backend/internal/domain/audit"
	"github.com/fleetcore/backend/internal/domain/shared"
	"github.com/fleetcore/backend/internal/infrastructure/persistence"
	"github.com/fleetcore/backend/tests/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupUserServiceTest(t *testing.T) (*UserService, *persistence.Database) {
	t.Helper()

	db := testutil.OpenDB(t)
	svc := NewUserService(
		db,
		persistence.NewGormUserRepository(db.DB),
		newTestAuditService(db),
		zap.NewNop(),
	)
	return svc, db
}

func auditEntriesForUser(t *testing.T, db *persistence.Database, userID uuid.UUID) []audit.AuditLogEntry {
	t.Helper()

	entries, err := persistence.NewGormAuditLogRepository(db.DB).
		FindByUser(context.Background(), userID, shared.DefaultFilter())
	require.NoError(t, err)
	return entries
}

func TestUserService_Create(t *testing.T) {
	ctx := context.Background()
	svc, db := setupUserServiceTest(t)

	dto, err := svc.Create(ctx, CreateUserInput{
		Email:     "Jane.Doe@Acme.Example.com",
		Password:  "correct-horse-battery",
		FirstName: "Jane",
		LastName:  "Doe",
	})
	require.NoError(t, err)

	assert.Equal(t, "jane.doe@acme.example.com", dto.Email)
	assert.Equal(t, "Jane", dto.FirstName)
	assert.False(t, dto.IsGlobalAdmin)

	entries := auditEntriesForUser(t, db, dto.ID)
	require.Len(t, entries, 1)
	assert.Equal(t, audit.OperationInsert, entries[0].Action)

	t.Run("duplicate email is rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateUserInput{
			Email:    "jane.doe@acme.example.com",
			Password: "another-password",
		})
		assert.True(t, shared.IsCode(err, "ALREADY_EXISTS"))
	})
}

func TestUserService_Update_GlobalAdminGuard(t *testing.T) {
	svc, db := setupUserServiceTest(t)
	subject := seedUser(t, db, "jane.doe@acme.example.com")
	grantIt := true

	t.Run("regular actor cannot change is_global_admin", func(t *testing.T) {
		ctx := testutil.ActorContext(uuid.New(), nil)

		_, err := svc.Update(ctx, UpdateUserInput{ID: subject.ID, IsGlobalAdmin: &grantIt})
		assert.True(t, shared.IsCode(err, "PERMISSION_DENIED"))

		unchanged, findErr := persistence.NewGormUserRepository(db.DB).FindByID(context.Background(), subject.ID)
		require.NoError(t, findErr)
		assert.False(t, unchanged.IsGlobalAdmin)
	})

	t.Run("platform admin actor may change is_global_admin", func(t *testing.T) {
		ctx := testutil.PlatformAdminContext(uuid.New())

		dto, err := svc.Update(ctx, UpdateUserInput{ID: subject.ID, IsGlobalAdmin: &grantIt})
		require.NoError(t, err)
		assert.True(t, dto.IsGlobalAdmin)

		updated, err := persistence.NewGormUserRepository(db.DB).FindByID(context.Background(), subject.ID)
		require.NoError(t, err)
		assert.True(t, updated.IsGlobalAdmin)
	})

	t.Run("regular actor may update other fields", func(t *testing.T) {
		ctx := testutil.ActorContext(uuid.New(), nil)
		phone := "+1 555 0100"

		dto, err := svc.Update(ctx, UpdateUserInput{ID: subject.ID, Phone: &phone})
		require.NoError(t, err)
		assert.Equal(t, phone, dto.Phone)
	})
}

func TestUserService_Update_RefreshesUpdatedAt(t *testing.T) {
	ctx := context.Background()
	svc, db := setupUserServiceTest(t)
	subject := seedUser(t, db, "jane.doe@acme.example.com")
	before := subject.UpdatedAt

	firstName := "Janet"
	dto, err := svc.Update(ctx, UpdateUserInput{ID: subject.ID, FirstName: &firstName})
	require.NoError(t, err)

	assert.True(t, dto.UpdatedAt.After(before), "updated_at must be refreshed on every update")

	entries := auditEntriesForUser(t, db, subject.ID)
	require.Len(t, entries, 1)
	assert.Equal(t, audit.OperationUpdate, entries[0].Action)

	var snapshot audit.Snapshot
	require.NoError(t, json.Unmarshal(entries[0].Details, &snapshot))
	assert.Equal(t, "jane.doe", snapshot.Before["first_name"])
	assert.Equal(t, "Janet", snapshot.After["first_name"])
}

func TestUserService_Delete_RecordsPriorState(t *testing.T) {
	ctx := context.Background()
	svc, db := setupUserServiceTest(t)
	subject := seedUser(t, db, "jane.doe@acme.example.com")

	require.NoError(t, svc.Delete(ctx, subject.ID))

	_, err := persistence.NewGormUserRepository(db.DB).FindByID(ctx, subject.ID)
	assert.True(t, shared.IsCode(err, "NOT_FOUND"))

	entries := auditEntriesForUser(t, db, subject.ID)
	require.Len(t, entries, 1)
	assert.Equal(t, audit.OperationDelete, entries[0].Action)

	var snapshot audit.Snapshot
	require.NoError(t, json.Unmarshal(entries[0].Details, &snapshot))
	assert.NotEmpty(t, snapshot.Before)
	assert.Empty(t, snapshot.After, "deletes record only the prior state")
}
