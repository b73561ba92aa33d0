package pass

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/frontandrew/crosspass/internal/domain"
	"github.com/frontandrew/crosspass/internal/pkg/logger"
	"github.com/frontandrew/crosspass/internal/repository"
	"github.com/google/uuid"
)

// Форматы даты, принимаемые при создании пропуска
const (
	passDateTimeLayout = "2006-01-02 15:04:05"
	passDateLayout     = "2006-01-02"
)

// CreatePassRequest - запрос на создание пропуска
// Срок действия не принимается от клиента: он всегда pass_date + 24h
type CreatePassRequest struct {
	CreatorID                uuid.UUID `json:"creator_id" validate:"required"`
	PassDate                 string    `json:"pass_date" validate:"required"`
	VehicleNumber            string    `json:"vehicle_number" validate:"required"`
	TravellerPassportNumbers []string  `json:"traveller_passport_numbers"`
}

// Service содержит бизнес-логику жизненного цикла пропусков
type Service struct {
	passRepo     repository.PassRepository
	identityRepo repository.IdentityRepository
	vehicleRepo  repository.VehicleRepository
	logger       logger.Logger
}

// NewService создает новый экземпляр PassService
func NewService(
	passRepo repository.PassRepository,
	identityRepo repository.IdentityRepository,
	vehicleRepo repository.VehicleRepository,
	logger logger.Logger,
) *Service {
	return &Service{
		passRepo:     passRepo,
		identityRepo: identityRepo,
		vehicleRepo:  vehicleRepo,
		logger:       logger,
	}
}

// CreatePass создает новый пропуск в состоянии PENDING
// Все путешественники и автомобиль разрешаются ДО записи: при любой ошибке
// разрешения в БД не попадает ни одной строки
func (s *Service) CreatePass(ctx context.Context, req *CreatePassRequest) (*domain.Pass, error) {
	s.logger.Info("Creating new pass", map[string]interface{}{
		"creator_id":     req.CreatorID,
		"vehicle_number": req.VehicleNumber,
		"travellers":     len(req.TravellerPassportNumbers),
	})

	// Проверяем, что создатель существует
	if _, err := s.identityRepo.GetByID(ctx, req.CreatorID); err != nil {
		if errors.Is(err, domain.ErrIdentityNotFound) {
			return nil, fmt.Errorf("creator %s: %w", req.CreatorID, domain.ErrIdentityNotFound)
		}
		return nil, fmt.Errorf("failed to get creator: %w", err)
	}

	// Разбираем дату пропуска
	passDate, err := parsePassDate(req.PassDate)
	if err != nil {
		return nil, err
	}

	// Разрешаем всех путешественников по номерам паспортов
	travellers, err := s.resolveTravellers(ctx, req.TravellerPassportNumbers)
	if err != nil {
		return nil, err
	}

	// Разрешаем автомобиль по номеру
	vehicle, err := s.vehicleRepo.GetByNumber(ctx, req.VehicleNumber)
	if err != nil {
		if errors.Is(err, domain.ErrVehicleNotFound) {
			return nil, fmt.Errorf("vehicle %s: %w", req.VehicleNumber, domain.ErrVehicleNotFound)
		}
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}

	pass := &domain.Pass{
		CreatorID:      req.CreatorID,
		VehicleID:      vehicle.ID,
		PassDate:       passDate,
		ExpiryDatetime: passDate.Add(domain.PassValidityWindow),
		Utilized:       false,
	}

	if err := pass.Validate(); err != nil {
		return nil, err
	}

	travellerIDs := make([]uuid.UUID, 0, len(travellers))
	for _, t := range travellers {
		travellerIDs = append(travellerIDs, t.ID)
	}

	// Пропуск и путешественники пишутся одной транзакцией
	if err := s.passRepo.CreateWithTravellers(ctx, pass, travellerIDs); err != nil {
		s.logger.Error("Failed to create pass", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("failed to create pass: %w", err)
	}

	pass.Vehicle = vehicle
	pass.Travellers = travellers

	s.logger.Info("Pass created successfully", map[string]interface{}{
		"pass_id":         pass.ID,
		"expiry_datetime": pass.ExpiryDatetime,
	})

	return pass, nil
}

// ListPasses возвращает пропуска пользователя вместе с путешественниками
func (s *Service) ListPasses(ctx context.Context, creatorID uuid.UUID, filter repository.PassFilter, limit, offset int) ([]*domain.Pass, error) {
	if _, err := s.identityRepo.GetByID(ctx, creatorID); err != nil {
		return nil, err
	}

	passes, err := s.passRepo.GetByCreator(ctx, creatorID, filter, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get passes: %w", err)
	}

	for _, p := range passes {
		travellers, err := s.passRepo.GetTravellers(ctx, p.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get pass travellers: %w", err)
		}
		p.Travellers = travellers
	}

	return passes, nil
}

// GetPassByID возвращает пропуск по ID с путешественниками
func (s *Service) GetPassByID(ctx context.Context, passID uuid.UUID) (*domain.Pass, error) {
	pass, err := s.passRepo.GetByID(ctx, passID)
	if err != nil {
		return nil, err
	}

	travellers, err := s.passRepo.GetTravellers(ctx, passID)
	if err != nil {
		return nil, fmt.Errorf("failed to get pass travellers: %w", err)
	}
	pass.Travellers = travellers

	return pass, nil
}

// MarkUtilized переводит пропуск PENDING -> UTILIZED
// Повторный вызов возвращает domain.ErrPassAlreadyUtilized: переход одноразовый
func (s *Service) MarkUtilized(ctx context.Context, passID uuid.UUID) error {
	s.logger.Info("Marking pass utilized", map[string]interface{}{
		"pass_id": passID,
	})

	if err := s.passRepo.Consume(ctx, passID); err != nil {
		return err
	}

	return nil
}

// resolveTravellers разрешает номера паспортов в Identity
// Первый неразрешившийся паспорт прерывает операцию с ошибкой, называющей его
func (s *Service) resolveTravellers(ctx context.Context, passportNumbers []string) ([]*domain.Identity, error) {
	travellers := make([]*domain.Identity, 0, len(passportNumbers))
	for _, passport := range passportNumbers {
		traveller, err := s.identityRepo.GetByPassportNumber(ctx, passport)
		if err != nil {
			if errors.Is(err, domain.ErrIdentityNotFound) {
				return nil, fmt.Errorf("traveller with passport number %s: %w", passport, domain.ErrTravellerNotFound)
			}
			return nil, fmt.Errorf("failed to resolve traveller: %w", err)
		}
		travellers = append(travellers, traveller)
	}
	return travellers, nil
}

// parsePassDate разбирает дату пропуска в одном из принимаемых форматов
func parsePassDate(value string) (time.Time, error) {
	for _, layout := range []string{passDateTimeLayout, passDateLayout} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("pass date %q: %w", value, domain.ErrInvalidPassDate)
}
