package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/frontandrew/crosspass/internal/domain"
	"github.com/frontandrew/crosspass/internal/pkg/hash"
	"github.com/frontandrew/crosspass/internal/pkg/jwt"
	"github.com/frontandrew/crosspass/internal/pkg/logger"
	"github.com/frontandrew/crosspass/internal/repository"
	"github.com/google/uuid"
)

// RegisterRequest - запрос на регистрацию личности
type RegisterRequest struct {
	Email                  string  `json:"email" validate:"required"`
	Phone                  string  `json:"phone"`
	Password               string  `json:"password" validate:"required"`
	FirstName              string  `json:"first_name" validate:"required"`
	MiddleName             *string `json:"middle_name"`
	LastName               string  `json:"last_name" validate:"required"`
	DateOfBirth            string  `json:"date_of_birth" validate:"required"`
	PassportIssuingCountry string  `json:"passport_issuing_country" validate:"required"`
	PassportNumber         string  `json:"passport_number" validate:"required"`
	PassportExpiry         string  `json:"passport_expiry" validate:"required"`
}

// LoginRequest - запрос на вход
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse - ответ с токеном доступа
type LoginResponse struct {
	Identity *domain.Identity `json:"identity"`
	Token    *jwt.Token       `json:"token"`
}

const dateLayout = "2006-01-02"

// Service содержит бизнес-логику работы с личностями
type Service struct {
	identityRepo repository.IdentityRepository
	tokenService *jwt.TokenService
	logger       logger.Logger
}

// NewService создает новый экземпляр IdentityService
func NewService(identityRepo repository.IdentityRepository, tokenService *jwt.TokenService, logger logger.Logger) *Service {
	return &Service{
		identityRepo: identityRepo,
		tokenService: tokenService,
		logger:       logger,
	}
}

// Register регистрирует новую личность
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*domain.Identity, error) {
	s.logger.Info("Registering new identity", map[string]interface{}{
		"email": req.Email,
	})

	if len(req.Password) < 8 {
		return nil, domain.ErrInvalidPassword
	}

	dateOfBirth, err := time.Parse(dateLayout, req.DateOfBirth)
	if err != nil {
		return nil, fmt.Errorf("date of birth: %w", domain.ErrInvalidIdentityData)
	}
	passportExpiry, err := time.Parse(dateLayout, req.PassportExpiry)
	if err != nil {
		return nil, fmt.Errorf("passport expiry: %w", domain.ErrInvalidIdentityData)
	}

	passwordHash, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	identity := &domain.Identity{
		Email:                  req.Email,
		Phone:                  req.Phone,
		PasswordHash:           passwordHash,
		FirstName:              req.FirstName,
		MiddleName:             req.MiddleName,
		LastName:               req.LastName,
		DateOfBirth:            dateOfBirth,
		PassportIssuingCountry: req.PassportIssuingCountry,
		PassportNumber:         domain.NormalizePassportNumber(req.PassportNumber),
		PassportExpiry:         passportExpiry,
	}

	if err := identity.Validate(); err != nil {
		return nil, err
	}

	if err := s.identityRepo.Create(ctx, identity); err != nil {
		if errors.Is(err, domain.ErrEmailTaken) || errors.Is(err, domain.ErrPassportTaken) {
			return nil, err
		}
		s.logger.Error("Failed to create identity", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("failed to create identity: %w", err)
	}

	s.logger.Info("Identity registered successfully", map[string]interface{}{
		"identity_id": identity.ID,
	})

	return identity, nil
}

// Login проверяет учетные данные и выдает токен доступа
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	identity, err := s.identityRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrIdentityNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get identity: %w", err)
	}

	if !hash.CheckPassword(identity.PasswordHash, req.Password) {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokenService.Generate(identity)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.Info("Identity logged in", map[string]interface{}{
		"identity_id": identity.ID,
	})

	return &LoginResponse{Identity: identity, Token: token}, nil
}

// GetProfile возвращает профиль личности по ID
func (s *Service) GetProfile(ctx context.Context, identityID uuid.UUID) (*domain.Identity, error) {
	return s.identityRepo.GetByID(ctx, identityID)
}
