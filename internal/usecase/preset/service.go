package preset

import (
	"context"
	"errors"
	"fmt"

	"github.com/frontandrew/crosspass/internal/domain"
	"github.com/frontandrew/crosspass/internal/pkg/logger"
	"github.com/frontandrew/crosspass/internal/repository"
	"github.com/google/uuid"
)

// MemberInput - участник пресета в запросе на создание
// Имена - отображаемые: участник разрешается только по номеру паспорта,
// а имена возвращаются в ответе как их прислал клиент
type MemberInput struct {
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	PassportNumber string `json:"passport_number" validate:"required"`
}

// CreatePresetRequest - запрос на создание пресета
type CreatePresetRequest struct {
	OwnerID uuid.UUID     `json:"owner_id" validate:"required"`
	Name    string        `json:"name" validate:"required"`
	Members []MemberInput `json:"members"`
}

// CreatePresetResponse - созданный пресет с отображаемыми именами участников
type CreatePresetResponse struct {
	Preset  *domain.Preset `json:"preset"`
	Members []MemberInput  `json:"members"`
}

// Service содержит бизнес-логику пресетов путешественников
type Service struct {
	presetRepo   repository.PresetRepository
	identityRepo repository.IdentityRepository
	logger       logger.Logger
}

// NewService создает новый экземпляр PresetService
func NewService(presetRepo repository.PresetRepository, identityRepo repository.IdentityRepository, logger logger.Logger) *Service {
	return &Service{
		presetRepo:   presetRepo,
		identityRepo: identityRepo,
		logger:       logger,
	}
}

// CreatePreset создает пресет вместе с участниками
// Все участники разрешаются по паспортам ДО записи: неразрешившийся паспорт
// прерывает операцию целиком, частично созданных пресетов не бывает
func (s *Service) CreatePreset(ctx context.Context, req *CreatePresetRequest) (*CreatePresetResponse, error) {
	s.logger.Info("Creating preset", map[string]interface{}{
		"owner_id": req.OwnerID,
		"name":     req.Name,
		"members":  len(req.Members),
	})

	if _, err := s.identityRepo.GetByID(ctx, req.OwnerID); err != nil {
		return nil, err
	}

	preset := &domain.Preset{
		OwnerID: req.OwnerID,
		Name:    req.Name,
	}
	if err := preset.Validate(); err != nil {
		return nil, err
	}

	memberIDs := make([]uuid.UUID, 0, len(req.Members))
	for _, m := range req.Members {
		identity, err := s.identityRepo.GetByPassportNumber(ctx, m.PassportNumber)
		if err != nil {
			if errors.Is(err, domain.ErrIdentityNotFound) {
				return nil, fmt.Errorf("preset member with passport number %s: %w", m.PassportNumber, domain.ErrTravellerNotFound)
			}
			return nil, fmt.Errorf("failed to resolve preset member: %w", err)
		}
		memberIDs = append(memberIDs, identity.ID)
	}

	if err := s.presetRepo.CreateWithMembers(ctx, preset, memberIDs); err != nil {
		s.logger.Error("Failed to create preset", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("failed to create preset: %w", err)
	}

	s.logger.Info("Preset created successfully", map[string]interface{}{
		"preset_id": preset.ID,
	})

	return &CreatePresetResponse{Preset: preset, Members: req.Members}, nil
}

// ListPresetsForUser возвращает пресеты пользователя с числом участников
func (s *Service) ListPresetsForUser(ctx context.Context, ownerID uuid.UUID) ([]*domain.Preset, error) {
	if _, err := s.identityRepo.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}
	return s.presetRepo.GetByOwner(ctx, ownerID)
}

// ListPresetMembers возвращает участников пресета
func (s *Service) ListPresetMembers(ctx context.Context, presetID uuid.UUID) ([]*domain.Identity, error) {
	if _, err := s.presetRepo.GetByID(ctx, presetID); err != nil {
		return nil, err
	}
	return s.presetRepo.GetMembers(ctx, presetID)
}
