package handler

import (
	appfleet "github.com/fleetcore/backend/internal/application/fleet"
	"github.com/fleetcore/backend/internal/domain/fleet"
	"github.com/fleetcore/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// VehicleHandler handles vehicle endpoints
type VehicleHandler struct {
	BaseHandler
	vehicleService *appfleet.VehicleService
}

// NewVehicleHandler creates a new vehicle handler
func NewVehicleHandler(vehicleService *appfleet.VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicleService: vehicleService}
}

type createVehicleRequest struct {
	Name          string `json:"name" binding:"required"`
	VIN           string `json:"vin"`
	LicensePlate  string `json:"license_plate"`
	VehicleType   string `json:"vehicle_type"`
	OwnershipType string `json:"ownership_type"`
}

type updateVehicleRequest struct {
	Name          *string `json:"name"`
	VIN           *string `json:"vin"`
	LicensePlate  *string `json:"license_plate"`
	VehicleType   *string `json:"vehicle_type"`
	OwnershipType *string `json:"ownership_type"`
	Status        *string `json:"status"`
	Odometer      *int64  `json:"odometer"`
}

// Create creates a vehicle
// POST /api/v1/vehicles
func (h *VehicleHandler) Create(c *gin.Context) {
	companyID, ok := getCompanyID(c)
	if !ok {
		h.Forbidden(c)
		return
	}

	var req createVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	vehicle, err := h.vehicleService.Create(c.Request.Context(), appfleet.CreateVehicleInput{
		CompanyID:     companyID,
		Name:          req.Name,
		VIN:           req.VIN,
		LicensePlate:  req.LicensePlate,
		VehicleType:   req.VehicleType,
		OwnershipType: req.OwnershipType,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, vehicle)
}

// Update updates a vehicle
// PUT /api/v1/vehicles/:id
func (h *VehicleHandler) Update(c *gin.Context) {
	companyID, ok := getCompanyID(c)
	if !ok {
		h.Forbidden(c)
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid vehicle ID")
		return
	}

	var req updateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	input := appfleet.UpdateVehicleInput{
		ID:            id,
		CompanyID:     companyID,
		Name:          req.Name,
		VIN:           req.VIN,
		LicensePlate:  req.LicensePlate,
		VehicleType:   req.VehicleType,
		OwnershipType: req.OwnershipType,
		Odometer:      req.Odometer,
	}
	if req.Status != nil {
		status := fleet.VehicleStatus(*req.Status)
		input.Status = &status
	}

	vehicle, err := h.vehicleService.Update(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, vehicle)
}

// Get returns a vehicle
// GET /api/v1/vehicles/:id
func (h *VehicleHandler) Get(c *gin.Context) {
	companyID, ok := getCompanyID(c)
	if !ok {
		h.Forbidden(c)
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid vehicle ID")
		return
	}

	vehicle, err := h.vehicleService.GetByID(c.Request.Context(), companyID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, vehicle)
}

// List returns the company's vehicles
// GET /api/v1/vehicles
func (h *VehicleHandler) List(c *gin.Context) {
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

	vehicles, err := h.vehicleService.List(c.Request.Context(), companyID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, vehicles, filter, len(vehicles))
}

// Delete deletes a vehicle
// DELETE /api/v1/vehicles/:id
func (h *VehicleHandler) Delete(c *gin.Context) {
	companyID, ok := getCompanyID(c)
	if !ok {
		h.Forbidden(c)
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid vehicle ID")
		return
	}

	if err := h.vehicleService.Delete(c.Request.Context(), companyID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
