package vehicle

import (
	"context"
	"fmt"

	"github.com/frontandrew/crosspass/internal/domain"
	"github.com/frontandrew/crosspass/internal/pkg/logger"
	"github.com/frontandrew/crosspass/internal/repository"
	"github.com/google/uuid"
)

// RegisterVehicleRequest - запрос на привязку автомобиля к пользователю
type RegisterVehicleRequest struct {
	UserID        uuid.UUID `json:"user_id" validate:"required"`
	VehicleNumber string    `json:"vehicle_number" validate:"required"`
	Label         string    `json:"label"`
}

// Service содержит бизнес-логику реестра автомобилей
type Service struct {
	vehicleRepo  repository.VehicleRepository
	identityRepo repository.IdentityRepository
	logger       logger.Logger
}

// NewService создает новый экземпляр VehicleService
func NewService(vehicleRepo repository.VehicleRepository, identityRepo repository.IdentityRepository, logger logger.Logger) *Service {
	return &Service{
		vehicleRepo:  vehicleRepo,
		identityRepo: identityRepo,
		logger:       logger,
	}
}

// RegisterVehicle привязывает автомобиль к пользователю
// Повторная привязка того же номера тем же пользователем обновляет метку,
// строка автомобиля при этом не дублируется
func (s *Service) RegisterVehicle(ctx context.Context, req *RegisterVehicleRequest) (*domain.VehicleRegistration, error) {
	s.logger.Info("Registering vehicle", map[string]interface{}{
		"user_id":        req.UserID,
		"vehicle_number": req.VehicleNumber,
	})

	if _, err := s.identityRepo.GetByID(ctx, req.UserID); err != nil {
		return nil, err
	}

	vehicleNumber := domain.NormalizeVehicleNumber(req.VehicleNumber)
	if err := domain.ValidateVehicleNumber(vehicleNumber); err != nil {
		return nil, err
	}

	registration, err := s.vehicleRepo.Register(ctx, req.UserID, vehicleNumber, req.Label)
	if err != nil {
		s.logger.Error("Failed to register vehicle", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("failed to register vehicle: %w", err)
	}

	s.logger.Info("Vehicle registered successfully", map[string]interface{}{
		"registration_id": registration.ID,
		"vehicle_id":      registration.VehicleID,
	})

	return registration, nil
}

// ListVehiclesForUser возвращает автомобили, привязанные к пользователю
func (s *Service) ListVehiclesForUser(ctx context.Context, userID uuid.UUID) ([]*domain.VehicleRegistration, error) {
	if _, err := s.identityRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.vehicleRepo.GetRegistrationsByUser(ctx, userID)
}
