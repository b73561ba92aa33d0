package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/frontandrew/crosspass/internal/delivery/http/middleware"
	"github.com/frontandrew/crosspass/internal/domain"
	"github.com/frontandrew/crosspass/internal/pkg/logger"
	"github.com/frontandrew/crosspass/internal/usecase/traveller"
	"github.com/google/uuid"
)

// TravellerService - интерфейс сервиса знакомых путешественников
type TravellerService interface {
	AddKnownTraveller(ctx context.Context, req *traveller.AddTravellerRequest) (*domain.TravellerLink, error)
	ListKnownTravellers(ctx context.Context, creatorID uuid.UUID) ([]*domain.Identity, error)
}

// TravellerHandler обрабатывает запросы списка знакомых путешественников
type TravellerHandler struct {
	travellerService TravellerService
	logger           logger.Logger
}

// NewTravellerHandler создает новый handler
func NewTravellerHandler(travellerService TravellerService, logger logger.Logger) *TravellerHandler {
	return &TravellerHandler{
		travellerService: travellerService,
		logger:           logger,
	}
}

type addTravellerBody struct {
	PassportNumber string `json:"passport_number"`
}

// AddTraveller добавляет знакомого путешественника по номеру паспорта
// POST /api/v1/travellers
func (h *TravellerHandler) AddTraveller(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserClaims(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var body addTravellerBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if body.PassportNumber == "" {
		respondError(w, http.StatusBadRequest, "Passport number required")
		return
	}

	link, err := h.travellerService.AddKnownTraveller(r.Context(), &traveller.AddTravellerRequest{
		CreatorID:      claims.UserID,
		PassportNumber: body.PassportNumber,
	})
	if err != nil {
		h.logger.Error("Failed to add traveller", map[string]interface{}{
			"error": err.Error(),
		})
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"data":    link,
	})
}

// GetMyTravellers возвращает знакомых путешественников текущего пользователя
// GET /api/v1/travellers/me
func (h *TravellerHandler) GetMyTravellers(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserClaims(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	travellers, err := h.travellerService.ListKnownTravellers(r.Context(), claims.UserID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    travellers,
	})
}
