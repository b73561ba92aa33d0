package checkpoint

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/frontandrew/crosspass/internal/domain"
	"github.com/frontandrew/crosspass/internal/infrastructure/recognizer"
	"github.com/frontandrew/crosspass/internal/pkg/logger"
	"github.com/frontandrew/crosspass/internal/pkg/metrics"
	"github.com/frontandrew/crosspass/internal/repository"
	"github.com/google/uuid"
)

// Service реализует логику пункта пропуска: распознавание номера,
// подбор действующего пропуска и его одноразовое погашение
type Service struct {
	recognizer  recognizer.Client
	vehicleRepo repository.VehicleRepository
	passRepo    repository.PassRepository
	logRepo     repository.CrossingLogRepository
	metrics     *metrics.Metrics
	logger      logger.Logger
	now         func() time.Time
}

// NewService создает новый экземпляр CheckpointService
func NewService(
	rec recognizer.Client,
	vehicleRepo repository.VehicleRepository,
	passRepo repository.PassRepository,
	logRepo repository.CrossingLogRepository,
	m *metrics.Metrics,
	logger logger.Logger,
) *Service {
	return &Service{
		recognizer:  rec,
		vehicleRepo: vehicleRepo,
		passRepo:    passRepo,
		logRepo:     logRepo,
		metrics:     m,
		logger:      logger,
		now:         time.Now,
	}
}

// ScanImage распознает номер на снимке и принимает решение о проезде
// Любой исход фиксируется в журнале пересечений
func (s *Service) ScanImage(ctx context.Context, image []byte) (*domain.CheckpointDecision, error) {
	started := s.now()
	defer func() {
		s.metrics.ObserveCheckpointLatency(time.Since(started))
	}()

	plate, err := s.recognizer.RecognizePlate(ctx, image)
	if err != nil {
		if errors.Is(err, recognizer.ErrNoPlateDetected) {
			s.metrics.ObserveRecognizerCall("no_plate")
		} else {
			s.metrics.ObserveRecognizerCall("error")
			s.logger.Error("Plate recognition failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
		decision := s.reject("", domain.ReasonPlateNotRecognized)
		s.writeLog(ctx, decision, nil, nil)
		return decision, nil
	}
	s.metrics.ObserveRecognizerCall("ok")

	return s.DecideByPlate(ctx, plate)
}

// DecideByPlate принимает решение по уже распознанному номеру
func (s *Service) DecideByPlate(ctx context.Context, plate string) (*domain.CheckpointDecision, error) {
	vehicleNumber := domain.NormalizeVehicleNumber(plate)

	s.logger.Info("Checkpoint decision requested", map[string]interface{}{
		"vehicle_number": vehicleNumber,
	})

	vehicle, err := s.vehicleRepo.GetByNumber(ctx, vehicleNumber)
	if err != nil {
		if errors.Is(err, domain.ErrVehicleNotFound) {
			decision := s.reject(vehicleNumber, domain.ReasonVehicleNotRegistered)
			s.writeLog(ctx, decision, nil, nil)
			return decision, nil
		}
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}

	candidates, err := s.passRepo.FindMatchable(ctx, vehicle.ID, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to find matchable passes: %w", err)
	}

	// Кандидаты упорядочены детерминированно; погашение через CAS,
	// поэтому параллельный сканер того же номера заберет следующий пропуск
	for _, candidate := range candidates {
		if err := s.passRepo.Consume(ctx, candidate.ID); err != nil {
			if errors.Is(err, domain.ErrPassAlreadyUtilized) || errors.Is(err, domain.ErrPassNotFound) {
				continue
			}
			return nil, fmt.Errorf("failed to consume pass: %w", err)
		}

		travellers, err := s.passRepo.GetTravellers(ctx, candidate.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get pass travellers: %w", err)
		}

		candidate.Utilized = true
		candidate.Vehicle = vehicle
		candidate.Travellers = travellers

		decision := &domain.CheckpointDecision{
			Approved:      true,
			VehicleNumber: vehicleNumber,
			Timestamp:     s.now(),
			Pass:          candidate,
			Travellers:    travellers,
		}
		s.metrics.ObserveDecision(true, "")
		s.writeLog(ctx, decision, &vehicle.ID, &candidate.ID)

		s.logger.Info("Crossing approved", map[string]interface{}{
			"vehicle_number": vehicleNumber,
			"pass_id":        candidate.ID,
		})

		return decision, nil
	}

	decision := s.reject(vehicleNumber, domain.ReasonNoValidPass)
	s.writeLog(ctx, decision, &vehicle.ID, nil)
	return decision, nil
}

func (s *Service) reject(vehicleNumber string, reason domain.RejectReason) *domain.CheckpointDecision {
	s.metrics.ObserveDecision(false, string(reason))
	s.logger.Info("Crossing rejected", map[string]interface{}{
		"vehicle_number": vehicleNumber,
		"reason":         string(reason),
	})
	return &domain.CheckpointDecision{
		Approved:      false,
		Reason:        reason,
		VehicleNumber: vehicleNumber,
		Timestamp:     s.now(),
	}
}

// writeLog фиксирует решение в журнале пересечений
// Сбой записи журнала логируется, но не меняет уже принятое решение
func (s *Service) writeLog(ctx context.Context, decision *domain.CheckpointDecision, vehicleID, passID *uuid.UUID) {
	entry := &domain.CrossingLog{
		VehicleNumber: decision.VehicleNumber,
		VehicleID:     vehicleID,
		PassID:        passID,
		Approved:      decision.Approved,
		Reason:        decision.Reason,
		Timestamp:     decision.Timestamp,
	}
	if err := s.logRepo.Create(ctx, entry); err != nil {
		s.logger.Error("Failed to write crossing log", map[string]interface{}{
			"vehicle_number": decision.VehicleNumber,
			"error":          err.Error(),
		})
	}
}

// ListCrossings возвращает журнал пересечений
func (s *Service) ListCrossings(ctx context.Context, limit, offset int) ([]*domain.CrossingLog, error) {
	return s.logRepo.List(ctx, limit, offset)
}
