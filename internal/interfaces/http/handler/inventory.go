package handler

import (
	appinventory "github.com/fleetcore/backend/internal/application/inventory"
	"github.com/fleetcore/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// InventoryHandler handles parts inventory endpoints. The inventory service
// resolves the caller through the parts_inventory permission on every call.
type InventoryHandler struct {
	BaseHandler
	inventoryService *appinventory.InventoryService
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(inventoryService *appinventory.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

type createPartRequest struct {
	PartNumber   string          `json:"part_number" binding:"required"`
	Name         string          `json:"name" binding:"required"`
	ReorderPoint int             `json:"reorder_point" binding:"omitempty,min=0"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	Location     string          `json:"location"`
}

type updatePartInventoryRequest struct {
	PartNumber   *string          `json:"part_number"`
	Name         *string          `json:"name"`
	ReorderPoint *int             `json:"reorder_point" binding:"omitempty,min=0"`
	UnitCost     *decimal.Decimal `json:"unit_cost"`
	Location     *string          `json:"location"`
}

type restockRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// Create creates a stock record
// POST /api/v1/inventory/parts
func (h *InventoryHandler) Create(c *gin.Context) {
	companyID, ok := getCompanyID(c)
	if !ok {
		h.Forbidden(c)
		return
	}

	var req createPartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	part, err := h.inventoryService.Create(c.Request.Context(), appinventory.CreatePartInput{
		CompanyID:    companyID,
		PartNumber:   req.PartNumber,
		Name:         req.Name,
		ReorderPoint: req.ReorderPoint,
		UnitCost:     req.UnitCost,
		Location:     req.Location,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, part)
}

// Update updates a stock record's descriptive fields
// PUT /api/v1/inventory/parts/:id
func (h *InventoryHandler) Update(c *gin.Context) {
	companyID, ok := getCompanyID(c)
	if !ok {
		h.Forbidden(c)
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid part ID")
		return
	}

	var req updatePartInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	part, err := h.inventoryService.Update(c.Request.Context(), appinventory.UpdatePartInput{
		ID:           id,
		CompanyID:    companyID,
		PartNumber:   req.PartNumber,
		Name:         req.Name,
		ReorderPoint: req.ReorderPoint,
		UnitCost:     req.UnitCost,
		Location:     req.Location,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, part)
}

// Restock applies a positive stock adjustment
// POST /api/v1/inventory/parts/:id/restock
func (h *InventoryHandler) Restock(c *gin.Context) {
	companyID, ok := getCompanyID(c)
	if !ok {
		h.Forbidden(c)
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid part ID")
		return
	}

	var req restockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	part, err := h.inventoryService.Restock(c.Request.Context(), companyID, id, req.Quantity)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, part)
}

// Get returns a stock record
// GET /api/v1/inventory/parts/:id
func (h *InventoryHandler) Get(c *gin.Context) {
	companyID, ok := getCompanyID(c)
	if !ok {
		h.Forbidden(c)
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid part ID")
		return
	}

	part, err := h.inventoryService.GetByID(c.Request.Context(), companyID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, part)
}

// List returns the company's stock records
// GET /api/v1/inventory/parts
func (h *InventoryHandler) List(c *gin.Context) {
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

	parts, err := h.inventoryService.List(c.Request.Context(), companyID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, parts, filter, len(parts))
}

// ListLowStock returns stock records at or below their reorder point
// GET /api/v1/inventory/parts/low-stock
func (h *InventoryHandler) ListLowStock(c *gin.Context) {
	companyID, ok := getCompanyID(c)
	if !ok {
		h.Forbidden(c)
		return
	}

	parts, err := h.inventoryService.ListLowStock(c.Request.Context(), companyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, parts)
}

// Delete deletes a stock record
// DELETE /api/v1/inventory/parts/:id
func (h *InventoryHandler) Delete(c *gin.Context) {
	companyID, ok := getCompanyID(c)
	if !ok {
		h.Forbidden(c)
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid part ID")
		return
	}

	if err := h.inventoryService.Delete(c.Request.Context(), companyID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
