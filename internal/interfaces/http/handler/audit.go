package handler

import (
	auditapp "github.com/fleetcore/backend/internal/application/audit"
	"github.com/fleetcore/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// AuditHandler exposes the audit log read paths. Authorization lives in the
// audit service: the subject user, company admins, and platform admins.
type AuditHandler struct {
	BaseHandler
	auditService *auditapp.AuditService
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(auditService *auditapp.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// ListByUser returns a user's audit trail, newest first
// GET /api/v1/audit/users/:id
func (h *AuditHandler) ListByUser(c *gin.Context) {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	filter := req.ToFilter()

	actor := getActor(c)
	entries, err := h.auditService.ListByUser(c.Request.Context(), userID, actor.CompanyID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, entries, filter, len(entries))
}

// ListByCompany returns a company's audit trail, newest first
// GET /api/v1/audit/companies/:id
func (h *AuditHandler) ListByCompany(c *gin.Context) {
	companyID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid company ID")
		return
	}

	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	filter := req.ToFilter()

	entries, err := h.auditService.ListByCompany(c.Request.Context(), companyID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, entries, filter, len(entries))
}
