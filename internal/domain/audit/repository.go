package audit

import (
	"context"

	"github.com/fleetcore/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// AuditLogRepository defines persistence for user audit entries.
// The store is append-only: there is deliberately no update or delete.
type AuditLogRepository interface {
	Append(ctx context.Context, entry *AuditLogEntry) error
	FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]AuditLogEntry, error)
	FindByCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]AuditLogEntry, error)
}

// AdminAuditLogRepository defines persistence for admin workflow entries
type AdminAuditLogRepository interface {
	Append(ctx context.Context, entry *AdminAuditLogEntry) error
	FindByCaller(ctx context.Context, callerID uuid.UUID, filter shared.Filter) ([]AdminAuditLogEntry, error)
}
