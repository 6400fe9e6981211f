package handler

import (
	"time"

	appworkorder "github.com/fleetcore/backend/internal/application/workorder"
	"github.com/fleetcore/backend/internal/domain/workorder"
	"github.com/fleetcore/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// WorkOrderHandler handles work order endpoints, including the nested part
// and labor line routes.
type WorkOrderHandler struct {
	BaseHandler
	workOrderService *appworkorder.WorkOrderService
	partService      *appworkorder.PartService
	laborService     *appworkorder.LaborService
}

// NewWorkOrderHandler creates a new work order handler
func NewWorkOrderHandler(
	workOrderService *appworkorder.WorkOrderService,
	partService *appworkorder.PartService,
	laborService *appworkorder.LaborService,
) *WorkOrderHandler {
	return &WorkOrderHandler{
		workOrderService: workOrderService,
		partService:      partService,
		laborService:     laborService,
	}
}

type createWorkOrderRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	AssetType   string  `json:"asset_type"`
	AssetID     *string `json:"asset_id" binding:"omitempty,uuid"`
	VehicleID   *string `json:"vehicle_id" binding:"omitempty,uuid"`
	Priority    string  `json:"priority"`
	Number      string  `json:"number"`
}

type updateWorkOrderRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	AssetType   *string `json:"asset_type"`
	AssetID     *string `json:"asset_id" binding:"omitempty,uuid"`
	VehicleID   *string `json:"vehicle_id" binding:"omitempty,uuid"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
}

// Create creates a work order
// POST /api/v1/work-orders
func (h *WorkOrderHandler) Create(c *gin.Context) {
	companyID, ok := getCompanyID(c)
	if !ok {
		h.Forbidden(c)
		return
	}

	var req createWorkOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	input := appworkorder.CreateWorkOrderInput{
		CompanyID:   companyID,
		Title:       req.Title,
		Description: req.Description,
		AssetType:   workorder.AssetType(req.AssetType),
		Priority:    workorder.Priority(req.Priority),
		Number:      req.Number,
	}
	if assetID, err := parseOptionalUUID(req.AssetID); err != nil {
		h.BadRequest(c, "Invalid asset_id")
		return
	} else if assetID != nil {
		input.AssetID = *assetID
	}
	vehicleID, err := parseOptionalUUID(req.VehicleID)
	if err != nil {
		h.BadRequest(c, "Invalid vehicle_id")
		return
	}
	input.VehicleID = vehicleID

	wo, err := h.workOrderService.Create(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, wo)
}

// Update updates a work order
// PUT /api/v1/work-orders/:id
func (h *WorkOrderHandler) Update(c *gin.Context) {
	companyID, ok := getCompanyID(c)
	if !ok {
		h.Forbidden(c)
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid work order ID")
		return
	}

	var req updateWorkOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	input := appworkorder.UpdateWorkOrderInput{
		ID:          id,
		CompanyID:   companyID,
		Title:       req.Title,
		Description: req.Description,
	}
	if req.AssetType != nil {
		assetType := workorder.AssetType(*req.AssetType)
		input.AssetType = &assetType
	}
	assetID, err := parseOptionalUUID(req.AssetID)
	if err != nil {
		h.BadRequest(c, "Invalid asset_id")
		return
	}
	input.AssetID = assetID
	vehicleID, err := parseOptionalUUID(req.VehicleID)
	if err != nil {
		h.BadRequest(c, "Invalid vehicle_id")
		return
	}
	input.VehicleID = vehicleID
	if req.Status != nil {
		status := workorder.Status(*req.Status)
		input.Status = &status
	}
	if req.Priority != nil {
		priority := workorder.Priority(*req.Priority)
		input.Priority = &priority
	}

	wo, err := h.workOrderService.Update(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, wo)
}

// Get returns a work order
// GET /api/v1/work-orders/:id
func (h *WorkOrderHandler) Get(c *gin.Context) {
	companyID, ok := getCompanyID(c)
	if !ok {
		h.Forbidden(c)
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid work order ID")
		return
	}

	wo, err := h.workOrderService.GetByID(c.Request.Context(), companyID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, wo)
}

// List returns the company's work orders
// GET /api/v1/work-orders
func (h *WorkOrderHandler) List(c *gin.Context) {
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

	orders, err := h.workOrderService.List(c.Request.Context(), companyID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, orders, filter, len(orders))
}

// Delete deletes a work order
// DELETE /api/v1/work-orders/:id
func (h *WorkOrderHandler) Delete(c *gin.Context) {
	companyID, ok := getCompanyID(c)
	if !ok {
		h.Forbidden(c)
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid work order ID")
		return
	}

	if err := h.workOrderService.Delete(c.Request.Context(), companyID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

type addPartRequest struct {
	PartID   string           `json:"part_id" binding:"required,uuid"`
	Quantity int              `json:"quantity" binding:"required,min=1"`
	UnitCost *decimal.Decimal `json:"unit_cost"`
}

type updatePartRequest struct {
	PartID   *string          `json:"part_id" binding:"omitempty,uuid"`
	Quantity *int             `json:"quantity" binding:"omitempty,min=1"`
	UnitCost *decimal.Decimal `json:"unit_cost"`
}

// AddPart adds a part line, consuming stock
// POST /api/v1/work-orders/:id/parts
func (h *WorkOrderHandler) AddPart(c *gin.Context) {
	companyID, ok := getCompanyID(c)
	if !ok {
		h.Forbidden(c)
		return
	}

	workOrderID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid work order ID")
		return
	}

	var req addPartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	partID, err := parseUUID(req.PartID)
	if err != nil {
		h.BadRequest(c, "Invalid part_id")
		return
	}

	line, err := h.partService.Add(c.Request.Context(), appworkorder.AddPartInput{
		CompanyID:   companyID,
		WorkOrderID: workOrderID,
		PartID:      partID,
		Quantity:    req.Quantity,
		UnitCost:    req.UnitCost,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, line)
}

// UpdatePart updates a part line
// PUT /api/v1/work-orders/:id/parts/:lineId
func (h *WorkOrderHandler) UpdatePart(c *gin.Context) {
	companyID, ok := getCompanyID(c)
	if !ok {
		h.Forbidden(c)
		return
	}

	lineID, err := parseIDParam(c, "lineId")
	if err != nil {
		h.BadRequest(c, "Invalid line ID")
		return
	}

	var req updatePartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	partID, err := parseOptionalUUID(req.PartID)
	if err != nil {
		h.BadRequest(c, "Invalid part_id")
		return
	}

	line, err := h.partService.Update(c.Request.Context(), appworkorder.UpdatePartInput{
		CompanyID: companyID,
		LineID:    lineID,
		PartID:    partID,
		Quantity:  req.Quantity,
		UnitCost:  req.UnitCost,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, line)
}

// RemovePart deletes a part line, returning stock
// DELETE /api/v1/work-orders/:id/parts/:lineId
func (h *WorkOrderHandler) RemovePart(c *gin.Context) {
	companyID, ok := getCompanyID(c)
	if !ok {
		h.Forbidden(c)
		return
	}

	lineID, err := parseIDParam(c, "lineId")
	if err != nil {
		h.BadRequest(c, "Invalid line ID")
		return
	}

	if err := h.partService.Remove(c.Request.Context(), companyID, lineID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// ListParts returns a work order's part lines
// GET /api/v1/work-orders/:id/parts
func (h *WorkOrderHandler) ListParts(c *gin.Context) {
	companyID, ok := getCompanyID(c)
	if !ok {
		h.Forbidden(c)
		return
	}

	workOrderID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid work order ID")
		return
	}

	lines, err := h.partService.List(c.Request.Context(), companyID, workOrderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, lines)
}

type startLaborRequest struct {
	TechnicianID string          `json:"technician_id" binding:"required,uuid"`
	StartTime    time.Time       `json:"start_time" binding:"required"`
	HourlyRate   decimal.Decimal `json:"hourly_rate" binding:"required"`
	Overtime     bool            `json:"overtime"`
	Notes        string          `json:"notes"`
}

type closeLaborRequest struct {
	EndTime time.Time `json:"end_time" binding:"required"`
}

// StartLabor opens a labor entry
// POST /api/v1/work-orders/:id/labor
func (h *WorkOrderHandler) StartLabor(c *gin.Context) {
	companyID, ok := getCompanyID(c)
	if !ok {
		h.Forbidden(c)
		return
	}

	workOrderID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid work order ID")
		return
	}

	var req startLaborRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	technicianID, err := parseUUID(req.TechnicianID)
	if err != nil {
		h.BadRequest(c, "Invalid technician_id")
		return
	}

	entry, err := h.laborService.Start(c.Request.Context(), appworkorder.StartLaborInput{
		CompanyID:    companyID,
		WorkOrderID:  workOrderID,
		TechnicianID: technicianID,
		StartTime:    req.StartTime,
		HourlyRate:   req.HourlyRate,
		Overtime:     req.Overtime,
		Notes:        req.Notes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, entry)
}

// CloseLabor ends a labor entry and rolls the labor cost up
// POST /api/v1/work-orders/:id/labor/:lineId/close
func (h *WorkOrderHandler) CloseLabor(c *gin.Context) {
	companyID, ok := getCompanyID(c)
	if !ok {
		h.Forbidden(c)
		return
	}

	lineID, err := parseIDParam(c, "lineId")
	if err != nil {
		h.BadRequest(c, "Invalid line ID")
		return
	}

	var req closeLaborRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	entry, err := h.laborService.Close(c.Request.Context(), companyID, lineID, req.EndTime)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, entry)
}

// ReopenLabor clears a labor entry's end time
// POST /api/v1/work-orders/:id/labor/:lineId/reopen
func (h *WorkOrderHandler) ReopenLabor(c *gin.Context) {
	companyID, ok := getCompanyID(c)
	if !ok {
		h.Forbidden(c)
		return
	}

	lineID, err := parseIDParam(c, "lineId")
	if err != nil {
		h.BadRequest(c, "Invalid line ID")
		return
	}

	entry, err := h.laborService.Reopen(c.Request.Context(), companyID, lineID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, entry)
}

// RemoveLabor deletes a labor entry
// DELETE /api/v1/work-orders/:id/labor/:lineId
func (h *WorkOrderHandler) RemoveLabor(c *gin.Context) {
	companyID, ok := getCompanyID(c)
	if !ok {
		h.Forbidden(c)
		return
	}

	lineID, err := parseIDParam(c, "lineId")
	if err != nil {
		h.BadRequest(c, "Invalid line ID")
		return
	}

	if err := h.laborService.Remove(c.Request.Context(), companyID, lineID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// ListLabor returns a work order's labor entries
// GET /api/v1/work-orders/:id/labor
func (h *WorkOrderHandler) ListLabor(c *gin.Context) {
	companyID, ok := getCompanyID(c)
	if !ok {
		h.Forbidden(c)
		return
	}

	workOrderID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid work order ID")
		return
	}

	entries, err := h.laborService.List(c.Request.Context(), companyID, workOrderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, entries)
}
