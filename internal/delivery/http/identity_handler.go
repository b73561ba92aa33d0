package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/frontandrew/crosspass/internal/delivery/http/middleware"
	"github.com/frontandrew/crosspass/internal/domain"
	"github.com/frontandrew/crosspass/internal/pkg/logger"
	"github.com/frontandrew/crosspass/internal/usecase/identity"
	"github.com/google/uuid"
)

// IdentityService - интерфейс сервиса личностей
type IdentityService interface {
	Register(ctx context.Context, req *identity.RegisterRequest) (*domain.Identity, error)
	Login(ctx context.Context, req *identity.LoginRequest) (*identity.LoginResponse, error)
	GetProfile(ctx context.Context, identityID uuid.UUID) (*domain.Identity, error)
}

// IdentityHandler обрабатывает запросы регистрации и аутентификации
type IdentityHandler struct {
	identityService IdentityService
	logger          logger.Logger
}

// NewIdentityHandler создает новый handler
func NewIdentityHandler(identityService IdentityService, logger logger.Logger) *IdentityHandler {
	return &IdentityHandler{
		identityService: identityService,
		logger:          logger,
	}
}

// Register обрабатывает регистрацию новой личности
// POST /api/v1/auth/register
func (h *IdentityHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req identity.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.identityService.Register(r.Context(), &req)
	if err != nil {
		h.logger.Error("Failed to register identity", map[string]interface{}{
			"error": err.Error(),
		})
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"data":    created,
	})
}

// Login обрабатывает вход и выдачу токена
// POST /api/v1/auth/login
func (h *IdentityHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req identity.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	response, err := h.identityService.Login(r.Context(), &req)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    response,
	})
}

// GetMe возвращает профиль текущего пользователя
// GET /api/v1/auth/me
func (h *IdentityHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserClaims(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	profile, err := h.identityService.GetProfile(r.Context(), claims.UserID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    profile,
	})
}
