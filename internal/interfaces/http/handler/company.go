package handler

import (
	appidentity "github.com/fleetcore/backend/internal/application/identity"
	"github.com/fleetcore/backend/internal/domain/identity"
	"github.com/fleetcore/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// CompanyHandler handles company endpoints. Creating and listing companies
// is a platform-admin operation; members may read their own company.
type CompanyHandler struct {
	BaseHandler
	companyService *appidentity.CompanyService
}

// NewCompanyHandler creates a new company handler
func NewCompanyHandler(companyService *appidentity.CompanyService) *CompanyHandler {
	return &CompanyHandler{companyService: companyService}
}

type createCompanyRequest struct {
	Name             string `json:"name" binding:"required"`
	ContactEmail     string `json:"contact_email" binding:"required,email"`
	OwnerID          string `json:"owner_id" binding:"required,uuid"`
	SubscriptionTier string `json:"subscription_tier"`
	Phone            string `json:"phone"`
	Address          string `json:"address"`
}

type updateCompanyRequest struct {
	Name             *string `json:"name"`
	ContactEmail     *string `json:"contact_email" binding:"omitempty,email"`
	SubscriptionTier *string `json:"subscription_tier"`
	Phone            *string `json:"phone"`
	Address          *string `json:"address"`
}

// Create creates a company
// POST /api/v1/companies
func (h *CompanyHandler) Create(c *gin.Context) {
	if !getActor(c).IsPlatformAdmin {
		h.Forbidden(c)
		return
	}

	var req createCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	ownerID, err := parseUUID(req.OwnerID)
	if err != nil {
		h.BadRequest(c, "Invalid owner_id")
		return
	}

	company, err := h.companyService.Create(c.Request.Context(), appidentity.CreateCompanyInput{
		Name:             req.Name,
		ContactEmail:     req.ContactEmail,
		OwnerID:          ownerID,
		SubscriptionTier: identity.SubscriptionTier(req.SubscriptionTier),
		Phone:            req.Phone,
		Address:          req.Address,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, company)
}

// Update updates a company
// PUT /api/v1/companies/:id
func (h *CompanyHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid company ID")
		return
	}

	actor := getActor(c)
	if !actor.IsPlatformAdmin && (actor.CompanyID == nil || *actor.CompanyID != id) {
		h.Forbidden(c)
		return
	}

	var req updateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	input := appidentity.UpdateCompanyInput{
		ID:           id,
		Name:         req.Name,
		ContactEmail: req.ContactEmail,
		Phone:        req.Phone,
		Address:      req.Address,
	}
	if req.SubscriptionTier != nil {
		tier := identity.SubscriptionTier(*req.SubscriptionTier)
		input.SubscriptionTier = &tier
	}

	company, err := h.companyService.Update(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, company)
}

// Get returns a company
// GET /api/v1/companies/:id
func (h *CompanyHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid company ID")
		return
	}

	actor := getActor(c)
	if !actor.IsPlatformAdmin && (actor.CompanyID == nil || *actor.CompanyID != id) {
		h.Forbidden(c)
		return
	}

	company, err := h.companyService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, company)
}

// List returns companies
// GET /api/v1/companies
func (h *CompanyHandler) List(c *gin.Context) {
	if !getActor(c).IsPlatformAdmin {
		h.Forbidden(c)
		return
	}

	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	filter := req.ToFilter()

	companies, err := h.companyService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, companies, filter, len(companies))
}
