package persistence

import (
	"fmt"
	"strings"

	"github.com/fleetcore/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// sortableColumns whitelists the columns a caller may order by. Anything
// else falls back to created_at to keep user input out of the SQL.
var sortableColumns = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"status":     true,
	"priority":   true,
}

// applyFilter applies pagination and ordering from a shared.Filter
func applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	orderBy := strings.ToLower(filter.OrderBy)
	if !sortableColumns[orderBy] {
		orderBy = "created_at"
	}
	dir := "desc"
	if strings.EqualFold(filter.OrderDir, "asc") {
		dir = "asc"
	}

	return query.
		Order(fmt.Sprintf("%s %s", orderBy, dir)).
		Offset(filter.Offset()).
		Limit(filter.Limit())
}
