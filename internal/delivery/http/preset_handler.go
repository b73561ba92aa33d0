package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/frontandrew/crosspass/internal/delivery/http/middleware"
	"github.com/frontandrew/crosspass/internal/domain"
	"github.com/frontandrew/crosspass/internal/pkg/logger"
	"github.com/frontandrew/crosspass/internal/usecase/preset"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// PresetService - интерфейс сервиса пресетов
type PresetService interface {
	CreatePreset(ctx context.Context, req *preset.CreatePresetRequest) (*preset.CreatePresetResponse, error)
	ListPresetsForUser(ctx context.Context, ownerID uuid.UUID) ([]*domain.Preset, error)
	ListPresetMembers(ctx context.Context, presetID uuid.UUID) ([]*domain.Identity, error)
}

// PresetHandler обрабатывает запросы пресетов путешественников
type PresetHandler struct {
	presetService PresetService
	logger        logger.Logger
}

// NewPresetHandler создает новый handler
func NewPresetHandler(presetService PresetService, logger logger.Logger) *PresetHandler {
	return &PresetHandler{
		presetService: presetService,
		logger:        logger,
	}
}

type createPresetBody struct {
	Name    string               `json:"name"`
	Members []preset.MemberInput `json:"members"`
}

// CreatePreset создает пресет для текущего пользователя
// POST /api/v1/presets
func (h *PresetHandler) CreatePreset(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserClaims(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var body createPresetBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	response, err := h.presetService.CreatePreset(r.Context(), &preset.CreatePresetRequest{
		OwnerID: claims.UserID,
		Name:    body.Name,
		Members: body.Members,
	})
	if err != nil {
		h.logger.Error("Failed to create preset", map[string]interface{}{
			"error": err.Error(),
		})
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"data":    response,
	})
}

// GetMyPresets возвращает пресеты текущего пользователя
// GET /api/v1/presets/me
func (h *PresetHandler) GetMyPresets(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserClaims(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	presets, err := h.presetService.ListPresetsForUser(r.Context(), claims.UserID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    presets,
	})
}

// GetPresetMembers возвращает участников пресета
// GET /api/v1/presets/{id}/members
func (h *PresetHandler) GetPresetMembers(w http.ResponseWriter, r *http.Request) {
	presetID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid preset ID")
		return
	}

	members, err := h.presetService.ListPresetMembers(r.Context(), presetID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    members,
	})
}
