package handler

import (
	appidentity "github.com/fleetcore/backend/internal/application/identity"
	"github.com/gin-gonic/gin"
)

// AdminHandler handles the admin bootstrap and provisioning endpoints
type AdminHandler struct {
	BaseHandler
	bootstrapService    *appidentity.AdminBootstrapService
	provisioningService *appidentity.ProvisioningService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(
	bootstrapService *appidentity.AdminBootstrapService,
	provisioningService *appidentity.ProvisioningService,
) *AdminHandler {
	return &AdminHandler{
		bootstrapService:    bootstrapService,
		provisioningService: provisioningService,
	}
}

// PromoteToAdmin promotes the caller to admin of the company whose contact
// email matches theirs. The result is structured; a terminal branch such as
// "company already has an admin" is a 200 with the outcome flags set, not
// an error.
// POST /api/v1/admin/promote
func (h *AdminHandler) PromoteToAdmin(c *gin.Context) {
	actor := getActor(c)

	result, err := h.bootstrapService.PromoteToAdmin(c.Request.Context(), actor.UserID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

type provisionRequest struct {
	Email     string `json:"email" binding:"required,email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Provision creates a user from an external identity event and links them
// to a company by email domain. Only platform admins (the identity
// provider's service principal) may call it.
// POST /api/v1/admin/provision
func (h *AdminHandler) Provision(c *gin.Context) {
	if !getActor(c).IsPlatformAdmin {
		h.Forbidden(c)
		return
	}

	var req provisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	result := h.provisioningService.Provision(c.Request.Context(), appidentity.ProvisionInput{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})

	h.Success(c, result)
}
