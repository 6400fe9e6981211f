package persistence

import (
	"context"

	"github.com/fleetcore/backend/internal/domain/audit"
	"github.com/fleetcore/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAuditLogRepository implements audit.AuditLogRepository using GORM.
// The table is append-only; there are deliberately no update or delete
// methods.
type GormAuditLogRepository struct {
	db *gorm.DB
}

// NewGormAuditLogRepository creates a new GormAuditLogRepository
func NewGormAuditLogRepository(db *gorm.DB) *GormAuditLogRepository {
	return &GormAuditLogRepository{db: db}
}

// Append inserts an audit entry
func (r *GormAuditLogRepository) Append(ctx context.Context, entry *audit.AuditLogEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// FindByUser returns audit entries for a user, newest first
func (r *GormAuditLogRepository) FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]audit.AuditLogEntry, error) {
	var entries []audit.AuditLogEntry
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// FindByCompany returns audit entries for a company, newest first
func (r *GormAuditLogRepository) FindByCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]audit.AuditLogEntry, error) {
	var entries []audit.AuditLogEntry
	if err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("created_at desc").
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// GormAdminAuditLogRepository implements audit.AdminAuditLogRepository using GORM
type GormAdminAuditLogRepository struct {
	db *gorm.DB
}

// NewGormAdminAuditLogRepository creates a new GormAdminAuditLogRepository
func NewGormAdminAuditLogRepository(db *gorm.DB) *GormAdminAuditLogRepository {
	return &GormAdminAuditLogRepository{db: db}
}

// Append inserts an admin workflow entry
func (r *GormAdminAuditLogRepository) Append(ctx context.Context, entry *audit.AdminAuditLogEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// FindByCaller returns admin workflow entries for a caller, newest first
func (r *GormAdminAuditLogRepository) FindByCaller(ctx context.Context, callerID uuid.UUID, filter shared.Filter) ([]audit.AdminAuditLogEntry, error) {
	var entries []audit.AdminAuditLogEntry
	if err := r.db.WithContext(ctx).
		Where("caller_id = ?", callerID).
		Order("created_at desc").
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
