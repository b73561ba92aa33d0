package traveller

import (
	"context"
	"errors"
	"fmt"

	"github.com/frontandrew/crosspass/internal/domain"
	"github.com/frontandrew/crosspass/internal/pkg/logger"
	"github.com/frontandrew/crosspass/internal/repository"
	"github.com/google/uuid"
)

// AddTravellerRequest - запрос на добавление знакомого путешественника
type AddTravellerRequest struct {
	CreatorID      uuid.UUID `json:"creator_id" validate:"required"`
	PassportNumber string    `json:"passport_number" validate:"required"`
}

// Service содержит бизнес-логику списка знакомых путешественников
type Service struct {
	linkRepo     repository.TravellerLinkRepository
	identityRepo repository.IdentityRepository
	logger       logger.Logger
}

// NewService создает новый экземпляр TravellerService
func NewService(linkRepo repository.TravellerLinkRepository, identityRepo repository.IdentityRepository, logger logger.Logger) *Service {
	return &Service{
		linkRepo:     linkRepo,
		identityRepo: identityRepo,
		logger:       logger,
	}
}

// AddKnownTraveller добавляет личность в список знакомых по номеру паспорта
func (s *Service) AddKnownTraveller(ctx context.Context, req *AddTravellerRequest) (*domain.TravellerLink, error) {
	s.logger.Info("Adding known traveller", map[string]interface{}{
		"creator_id": req.CreatorID,
	})

	if _, err := s.identityRepo.GetByID(ctx, req.CreatorID); err != nil {
		return nil, err
	}

	traveller, err := s.identityRepo.GetByPassportNumber(ctx, req.PassportNumber)
	if err != nil {
		if errors.Is(err, domain.ErrIdentityNotFound) {
			return nil, fmt.Errorf("traveller with passport number %s: %w", req.PassportNumber, domain.ErrTravellerNotFound)
		}
		return nil, fmt.Errorf("failed to resolve traveller: %w", err)
	}

	link := &domain.TravellerLink{
		CreatorID:   req.CreatorID,
		TravellerID: traveller.ID,
	}

	if err := s.linkRepo.Create(ctx, link); err != nil {
		if errors.Is(err, domain.ErrTravellerLinkExists) {
			return nil, err
		}
		s.logger.Error("Failed to create traveller link", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("failed to create traveller link: %w", err)
	}

	link.Traveller = traveller
	return link, nil
}

// ListKnownTravellers возвращает знакомых путешественников пользователя
func (s *Service) ListKnownTravellers(ctx context.Context, creatorID uuid.UUID) ([]*domain.Identity, error) {
	if _, err := s.identityRepo.GetByID(ctx, creatorID); err != nil {
		return nil, err
	}
	return s.linkRepo.GetTravellersByCreator(ctx, creatorID)
}
