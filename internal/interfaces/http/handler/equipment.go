package handler

import (
	appfleet "github.com/fleetcore/backend/internal/application/fleet"
	"github.com/fleetcore/backend/internal/domain/fleet"
	"github.com/fleetcore/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// EquipmentHandler handles equipment endpoints
type EquipmentHandler struct {
	BaseHandler
	equipmentService *appfleet.EquipmentService
	taxonomyService  *appfleet.TaxonomyService
}

// NewEquipmentHandler creates a new equipment handler
func NewEquipmentHandler(equipmentService *appfleet.EquipmentService, taxonomyService *appfleet.TaxonomyService) *EquipmentHandler {
	return &EquipmentHandler{
		equipmentService: equipmentService,
		taxonomyService:  taxonomyService,
	}
}

type createEquipmentRequest struct {
	Name         string `json:"name" binding:"required"`
	SerialNumber string `json:"serial_number"`
	Category     string `json:"category"`
}

type updateEquipmentRequest struct {
	Name         *string `json:"name"`
	SerialNumber *string `json:"serial_number"`
	Category     *string `json:"category"`
	Status       *string `json:"status"`
	HoursUsed    *int64  `json:"hours_used"`
}

// Create creates an equipment record
// POST /api/v1/equipment
func (h *EquipmentHandler) Create(c *gin.Context) {
	companyID, ok := getCompanyID(c)
	if !ok {
		h.Forbidden(c)
		return
	}

	var req createEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	equipment, err := h.equipmentService.Create(c.Request.Context(), appfleet.CreateEquipmentInput{
		CompanyID:    companyID,
		Name:         req.Name,
		SerialNumber: req.SerialNumber,
		Category:     req.Category,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, equipment)
}

// Update updates an equipment record
// PUT /api/v1/equipment/:id
func (h *EquipmentHandler) Update(c *gin.Context) {
	companyID, ok := getCompanyID(c)
	if !ok {
		h.Forbidden(c)
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid equipment ID")
		return
	}

	var req updateEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	input := appfleet.UpdateEquipmentInput{
		ID:           id,
		CompanyID:    companyID,
		Name:         req.Name,
		SerialNumber: req.SerialNumber,
		Category:     req.Category,
		HoursUsed:    req.HoursUsed,
	}
	if req.Status != nil {
		status := fleet.EquipmentStatus(*req.Status)
		input.Status = &status
	}

	equipment, err := h.equipmentService.Update(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, equipment)
}

// Get returns an equipment record
// GET /api/v1/equipment/:id
func (h *EquipmentHandler) Get(c *gin.Context) {
	companyID, ok := getCompanyID(c)
	if !ok {
		h.Forbidden(c)
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid equipment ID")
		return
	}

	equipment, err := h.equipmentService.GetByID(c.Request.Context(), companyID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, equipment)
}

// List returns the company's equipment
// GET /api/v1/equipment
func (h *EquipmentHandler) List(c *gin.Context) {
	companyID, ok := getCompanyID(c)
	if !ok {
		h.Forbidden(c)
		return
	}

	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	filter := req.ToFilter()

	items, err := h.equipmentService.List(c.Request.Context(), companyID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, items, filter, len(items))
}

// Delete deletes an equipment record
// DELETE /api/v1/equipment/:id
func (h *EquipmentHandler) Delete(c *gin.Context) {
	companyID, ok := getCompanyID(c)
	if !ok {
		h.Forbidden(c)
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid equipment ID")
		return
	}

	if err := h.equipmentService.Delete(c.Request.Context(), companyID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// ListTaxonomy returns the company's classification values for a kind
// GET /api/v1/taxonomy/:kind
func (h *EquipmentHandler) ListTaxonomy(c *gin.Context) {
	companyID, ok := getCompanyID(c)
	if !ok {
		h.Forbidden(c)
		return
	}

	kind := fleet.TaxonomyKind(c.Param("kind"))
	entries, err := h.taxonomyService.List(c.Request.Context(), companyID, kind)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, entries)
}
