package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/frontandrew/crosspass/internal/delivery/http/middleware"
	"github.com/frontandrew/crosspass/internal/domain"
	"github.com/frontandrew/crosspass/internal/pkg/logger"
	"github.com/frontandrew/crosspass/internal/repository"
	"github.com/frontandrew/crosspass/internal/usecase/pass"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// PassService - интерфейс сервиса пропусков
type PassService interface {
	CreatePass(ctx context.Context, req *pass.CreatePassRequest) (*domain.Pass, error)
	ListPasses(ctx context.Context, creatorID uuid.UUID, filter repository.PassFilter, limit, offset int) ([]*domain.Pass, error)
	GetPassByID(ctx context.Context, passID uuid.UUID) (*domain.Pass, error)
	MarkUtilized(ctx context.Context, passID uuid.UUID) error
}

// PassHandler обрабатывает запросы пропусков
type PassHandler struct {
	passService PassService
	logger      logger.Logger
}

// NewPassHandler создает новый handler
func NewPassHandler(passService PassService, logger logger.Logger) *PassHandler {
	return &PassHandler{
		passService: passService,
		logger:      logger,
	}
}

type createPassBody struct {
	PassDate                 string   `json:"pass_date"`
	VehicleNumber            string   `json:"vehicle_number"`
	TravellerPassportNumbers []string `json:"traveller_passport_numbers"`
}

// CreatePass создает пропуск от имени текущего пользователя
// POST /api/v1/passes
func (h *PassHandler) CreatePass(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserClaims(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var body createPassBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.passService.CreatePass(r.Context(), &pass.CreatePassRequest{
		CreatorID:                claims.UserID,
		PassDate:                 body.PassDate,
		VehicleNumber:            body.VehicleNumber,
		TravellerPassportNumbers: body.TravellerPassportNumbers,
	})
	if err != nil {
		h.logger.Error("Failed to create pass", map[string]interface{}{
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

// GetMyPasses возвращает пропуска текущего пользователя
// GET /api/v1/passes/me?filter=utilized
func (h *PassHandler) GetMyPasses(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserClaims(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	limit, offset := getPaginationParams(r)

	filter := repository.PassFilterAll
	if r.URL.Query().Get("filter") == "utilized" {
		filter = repository.PassFilterUtilized
	}

	passes, err := h.passService.ListPasses(r.Context(), claims.UserID, filter, limit, offset)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    passes,
		"pagination": map[string]int{
			"limit":  limit,
			"offset": offset,
		},
	})
}

// GetPassByID возвращает пропуск по ID
// GET /api/v1/passes/{id}
func (h *PassHandler) GetPassByID(w http.ResponseWriter, r *http.Request) {
	passID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid pass ID")
		return
	}

	found, err := h.passService.GetPassByID(r.Context(), passID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    found,
	})
}

// UtilizePass вручную гасит пропуск
// POST /api/v1/passes/{id}/utilize
func (h *PassHandler) UtilizePass(w http.ResponseWriter, r *http.Request) {
	passID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid pass ID")
		return
	}

	if err := h.passService.MarkUtilized(r.Context(), passID); err != nil {
		h.logger.Error("Failed to utilize pass", map[string]interface{}{
			"pass_id": passID,
			"error":   err.Error(),
		})
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
	})
}
