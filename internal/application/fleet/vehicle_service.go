package fleet

import (
	"context"
	"time"

	"github.com/fleetcore/backend/internal/domain/fleet"
	"github.com/fleetcore/backend/internal/domain/identity"
	"github.com/fleetcore/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// VehicleService handles vehicle operations. Creation is gated by the
// company's subscription quota.
type VehicleService struct {
	vehicleRepo fleet.VehicleRepository
	companyRepo identity.CompanyRepository
	logger      *zap.Logger
}

// NewVehicleService creates a new vehicle service
func NewVehicleService(
	vehicleRepo fleet.VehicleRepository,
	companyRepo identity.CompanyRepository,
	logger *zap.Logger,
) *VehicleService {
	return &VehicleService{
		vehicleRepo: vehicleRepo,
		companyRepo: companyRepo,
		logger:      logger,
	}
}

// CreateVehicleInput contains input for creating a vehicle
type CreateVehicleInput struct {
	CompanyID     uuid.UUID
	Name          string
	VIN           string
	LicensePlate  string
	VehicleType   string
	OwnershipType string
}

// UpdateVehicleInput contains input for updating a vehicle
type UpdateVehicleInput struct {
	ID            uuid.UUID
	CompanyID     uuid.UUID
	Name          *string
	VIN           *string
	LicensePlate  *string
	VehicleType   *string
	OwnershipType *string
	Status        *fleet.VehicleStatus
	Odometer      *int64
}

// VehicleDTO represents vehicle data returned to callers
type VehicleDTO struct {
	ID            uuid.UUID           `json:"id"`
	CompanyID     uuid.UUID           `json:"company_id"`
	Name          string              `json:"name"`
	VIN           string              `json:"vin,omitempty"`
	LicensePlate  string              `json:"license_plate,omitempty"`
	VehicleType   string              `json:"vehicle_type,omitempty"`
	OwnershipType string              `json:"ownership_type,omitempty"`
	Status        fleet.VehicleStatus `json:"status"`
	Odometer      int64               `json:"odometer"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

func toVehicleDTO(v *fleet.Vehicle) *VehicleDTO {
	return &VehicleDTO{
		ID:            v.ID,
		CompanyID:     v.CompanyID,
		Name:          v.Name,
		VIN:           v.VIN,
		LicensePlate:  v.LicensePlate,
		VehicleType:   v.VehicleType,
		OwnershipType: v.OwnershipType,
		Status:        v.Status,
		Odometer:      v.Odometer,
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
	}
}

// Create creates a vehicle if the company is below its quota
func (s *VehicleService) Create(ctx context.Context, input CreateVehicleInput) (*VehicleDTO, error) {
	company, err := s.companyRepo.FindByID(ctx, input.CompanyID)
	if err != nil {
		return nil, err
	}

	count, err := s.vehicleRepo.CountForCompany(ctx, input.CompanyID)
	if err != nil {
		return nil, err
	}
	if !company.CanAddVehicle(count) {
		s.logger.Info("Vehicle quota reached",
			zap.String("company_id", input.CompanyID.String()),
			zap.Int("max_vehicles", company.MaxVehicles))
		return nil, shared.ErrVehicleQuotaExceeded
	}

	vehicle, err := fleet.NewVehicle(input.CompanyID, input.Name)
	if err != nil {
		return nil, err
	}
	vehicle.VIN = input.VIN
	vehicle.LicensePlate = input.LicensePlate
	vehicle.VehicleType = input.VehicleType
	vehicle.OwnershipType = input.OwnershipType

	if err := s.vehicleRepo.Create(ctx, vehicle); err != nil {
		s.logger.Error("Failed to create vehicle",
			zap.String("company_id", input.CompanyID.String()),
			zap.Error(err))
		return nil, err
	}

	return toVehicleDTO(vehicle), nil
}

// Update updates a vehicle
func (s *VehicleService) Update(ctx context.Context, input UpdateVehicleInput) (*VehicleDTO, error) {
	vehicle, err := s.vehicleRepo.FindByIDForCompany(ctx, input.CompanyID, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		vehicle.Name = *input.Name
	}
	if input.VIN != nil {
		vehicle.VIN = *input.VIN
	}
	if input.LicensePlate != nil {
		vehicle.LicensePlate = *input.LicensePlate
	}
	if input.VehicleType != nil {
		vehicle.VehicleType = *input.VehicleType
	}
	if input.OwnershipType != nil {
		vehicle.OwnershipType = *input.OwnershipType
	}
	if input.Status != nil {
		if err := vehicle.SetStatus(*input.Status); err != nil {
			return nil, err
		}
	}
	if input.Odometer != nil {
		if err := vehicle.RecordOdometer(*input.Odometer); err != nil {
			return nil, err
		}
	}
	vehicle.UpdatedAt = time.Now()
	vehicle.IncrementVersion()

	if err := s.vehicleRepo.Update(ctx, vehicle); err != nil {
		return nil, err
	}

	return toVehicleDTO(vehicle), nil
}

// GetByID returns a vehicle scoped to a company
func (s *VehicleService) GetByID(ctx context.Context, companyID, id uuid.UUID) (*VehicleDTO, error) {
	vehicle, err := s.vehicleRepo.FindByIDForCompany(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return toVehicleDTO(vehicle), nil
}

// List returns a company's vehicles matching the filter
func (s *VehicleService) List(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]VehicleDTO, error) {
	vehicles, err := s.vehicleRepo.FindAllForCompany(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}

	dtos := make([]VehicleDTO, len(vehicles))
	for i := range vehicles {
		dtos[i] = *toVehicleDTO(&vehicles[i])
	}
	return dtos, nil
}

// Delete deletes a vehicle
func (s *VehicleService) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	if _, err := s.vehicleRepo.FindByIDForCompany(ctx, companyID, id); err != nil {
		return err
	}
	return s.vehicleRepo.Delete(ctx, id)
}
