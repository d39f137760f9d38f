package service

import (
	"context"

	"github.com/drivestack/drivestack/internal/api/dto"
	"github.com/drivestack/drivestack/internal/domain/vehicle"
	ierr "github.com/drivestack/drivestack/internal/errors"
	"github.com/drivestack/drivestack/internal/types"
)

type VehicleService interface {
	CreateVehicle(ctx context.Context, req *dto.CreateVehicleRequest) (*dto.VehicleResponse, error)
	GetVehicle(ctx context.Context, id string) (*dto.VehicleResponse, error)
	ListVehicles(ctx context.Context, filter *types.VehicleFilter) (*dto.ListVehiclesResponse, error)
	UpdateVehicle(ctx context.Context, id string, req *dto.UpdateVehicleRequest) (*dto.VehicleResponse, error)
}

type vehicleService struct {
	ServiceParams
}

func NewVehicleService(params ServiceParams) VehicleService {
	return &vehicleService{ServiceParams: params}
}

func (s *vehicleService) CreateVehicle(ctx context.Context, req *dto.CreateVehicleRequest) (*dto.VehicleResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	v := &vehicle.Vehicle{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_VEHICLE),
		PlateNumber:   req.PlateNumber,
		Make:          req.Make,
		Model:         req.Model,
		Year:          req.Year,
		Mileage:       req.Mileage,
		DailyRate:     req.DailyRate,
		VehicleStatus: types.VehicleStatusAvailable,
		EnvironmentID: types.GetEnvironmentID(ctx),
		BaseModel:     types.GetDefaultBaseModel(ctx),
	}
	if err := v.Validate(); err != nil {
		return nil, err
	}

	if err := s.VehicleRepo.Create(ctx, v); err != nil {
		return nil, err
	}

	s.Logger.Infow("vehicle created", "vehicle_id", v.ID, "plate_number", v.PlateNumber)
	return &dto.VehicleResponse{Vehicle: v}, nil
}

func (s *vehicleService) GetVehicle(ctx context.Context, id string) (*dto.VehicleResponse, error) {
	v, err := s.VehicleRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.VehicleResponse{Vehicle: v}, nil
}

func (s *vehicleService) ListVehicles(ctx context.Context, filter *types.VehicleFilter) (*dto.ListVehiclesResponse, error) {
	if filter == nil {
		filter = &types.VehicleFilter{QueryFilter: types.DefaultQueryFilter}
	}

	vehicles, err := s.VehicleRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.VehicleRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.VehicleResponse, 0, len(vehicles))
	for _, v := range vehicles {
		items = append(items, &dto.VehicleResponse{Vehicle: v})
	}
	return &dto.ListVehiclesResponse{Items: items, Total: total}, nil
}

func (s *vehicleService) UpdateVehicle(ctx context.Context, id string, req *dto.UpdateVehicleRequest) (*dto.VehicleResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	v, err := s.VehicleRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Mileage != nil {
		if req.Mileage.LessThan(v.Mileage) {
			return nil, ierr.NewError("mileage cannot decrease").
				WithHint("Odometer readings only move forward").
				WithReportableDetails(map[string]any{
					"current":   v.Mileage,
					"requested": *req.Mileage,
				}).
				Mark(ierr.ErrValidation)
		}
		v.Mileage = *req.Mileage
	}
	if req.DailyRate != nil {
		if req.DailyRate.IsNegative() {
			return nil, ierr.NewError("daily rate is negative").
				WithHint("Daily rate must be non-negative").
				Mark(ierr.ErrValidation)
		}
		v.DailyRate = *req.DailyRate
	}
	if req.VehicleStatus != nil {
		// A rented vehicle is released by the contract lifecycle, not by a
		// direct status write.
		if v.VehicleStatus == types.VehicleStatusRented {
			return nil, ierr.NewError("vehicle is on an active contract").
				WithHint("Complete or cancel the contract to release the vehicle").
				Mark(ierr.ErrInvalidOperation)
		}
		v.VehicleStatus = *req.VehicleStatus
	}
	v.UpdatedBy = types.GetUserID(ctx)

	if err := v.Validate(); err != nil {
		return nil, err
	}
	if err := s.VehicleRepo.Update(ctx, v); err != nil {
		return nil, err
	}

	return &dto.VehicleResponse{Vehicle: v}, nil
}
