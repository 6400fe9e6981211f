package middleware

import (
	"net/http"

	appidentity "github.com/fleetcore/backend/internal/application/identity"
	"github.com/fleetcore/backend/internal/domain/identity"
	"github.com/fleetcore/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequirePermission gates a route on an RBAC grant for the actor's company.
// Platform admins pass unconditionally. Routes carrying an explicit company
// in the path should scope queries themselves; this gate covers the actor's
// home company.
func RequirePermission(permissions *appidentity.PermissionService, resource identity.Resource, action identity.Action, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := shared.ActorFromContext(c.Request.Context())

		if actor.IsPlatformAdmin {
			c.Next()
			return
		}

		if actor.CompanyID == nil {
			abortForbidden(c)
			return
		}

		allowed, err := permissions.HasPermission(c.Request.Context(), actor.UserID, *actor.CompanyID, resource, action)
		if err != nil {
			log.Error("Permission check failed",
				zap.String("user_id", actor.UserID.String()),
				zap.String("resource", string(resource)),
				zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INTERNAL_ERROR",
					"message": "Permission check failed",
				},
			})
			return
		}
		if !allowed {
			abortForbidden(c)
			return
		}

		c.Next()
	}
}

func abortForbidden(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "PERMISSION_DENIED",
			"message": "Not authorized to perform this action",
		},
	})
}
