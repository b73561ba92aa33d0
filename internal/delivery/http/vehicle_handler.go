package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/frontandrew/crosspass/internal/delivery/http/middleware"
	"github.com/frontandrew/crosspass/internal/domain"
	"github.com/frontandrew/crosspass/internal/pkg/logger"
	"github.com/frontandrew/crosspass/internal/usecase/vehicle"
	"github.com/google/uuid"
)

// VehicleService - интерфейс сервиса реестра автомобилей
type VehicleService interface {
	RegisterVehicle(ctx context.Context, req *vehicle.RegisterVehicleRequest) (*domain.VehicleRegistration, error)
	ListVehiclesForUser(ctx context.Context, userID uuid.UUID) ([]*domain.VehicleRegistration, error)
}

// VehicleHandler обрабатывает запросы реестра автомобилей
type VehicleHandler struct {
	vehicleService VehicleService
	logger         logger.Logger
}

// NewVehicleHandler создает новый handler
func NewVehicleHandler(vehicleService VehicleService, logger logger.Logger) *VehicleHandler {
	return &VehicleHandler{
		vehicleService: vehicleService,
		logger:         logger,
	}
}

// registerVehicleBody - тело запроса на привязку автомобиля
// user_id берется из токена, а не из тела
type registerVehicleBody struct {
	VehicleNumber string `json:"vehicle_number"`
	Label         string `json:"label"`
}

// RegisterVehicle привязывает автомобиль к текущему пользователю
// POST /api/v1/vehicles
func (h *VehicleHandler) RegisterVehicle(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserClaims(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var body registerVehicleBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	registration, err := h.vehicleService.RegisterVehicle(r.Context(), &vehicle.RegisterVehicleRequest{
		UserID:        claims.UserID,
		VehicleNumber: body.VehicleNumber,
		Label:         body.Label,
	})
	if err != nil {
		h.logger.Error("Failed to register vehicle", map[string]interface{}{
			"error": err.Error(),
		})
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"data":    registration,
	})
}

// GetMyVehicles возвращает автомобили текущего пользователя
// GET /api/v1/vehicles/me
func (h *VehicleHandler) GetMyVehicles(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserClaims(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	registrations, err := h.vehicleService.ListVehiclesForUser(r.Context(), claims.UserID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    registrations,
	})
}
