package persistence

import (
	"errors"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

// adminIndexName is the partial unique index enforcing at most one admin
// membership per company. Declared in the initial migration.
const adminIndexName = "idx_memberships_one_admin_per_company"

// isUniqueViolation reports whether err is a unique-constraint violation
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pgUniqueViolation
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// IsUniqueViolation reports whether err is a unique-constraint violation
func IsUniqueViolation(err error) bool {
	return isUniqueViolation(err)
}

// IsAdminIndexViolation reports whether err is a violation of the
// one-admin-per-company partial unique index. Under concurrent promotions
// the losing transaction surfaces this instead of a clean existence check.
func IsAdminIndexViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pgUniqueViolation && pqErr.Constraint == adminIndexName
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
