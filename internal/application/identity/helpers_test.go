package identity

import (
	"context"
	"testing"

	auditapp "github.com/fleetcore/backend/internal/application/audit"
	"github.com/fleetcore/backend/internal/domain/identity"
	"github.com/fleetcore/backend/internal/infrastructure/persistence"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestAuditService(db *persistence.Database) *auditapp.AuditService {
	return auditapp.NewAuditService(
		persistence.NewGormAuditLogRepository(db.DB),
		persistence.NewGormAdminAuditLogRepository(db.DB),
		persistence.NewGormMembershipRepository(db.DB),
		zap.NewNop(),
	)
}

func seedUser(t *testing.T, db *persistence.Database, email string) *identity.User {
	t.Helper()

	user, err := identity.NewProvisionedUser(email, "", "")
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormUserRepository(db.DB).Create(context.Background(), user))

	return user
}

func seedCompany(t *testing.T, db *persistence.Database, name, contactEmail string, ownerID uuid.UUID) *identity.Company {
	t.Helper()

	company, err := identity.NewCompany(name, contactEmail, ownerID)
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormCompanyRepository(db.DB).Create(context.Background(), company))

	return company
}

func seedMembership(t *testing.T, db *persistence.Database, userID, companyID uuid.UUID, role identity.Role) *identity.Membership {
	t.Helper()

	membership, err := identity.NewMembership(userID, companyID, role)
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormMembershipRepository(db.DB).Create(context.Background(), membership))

	return membership
}
