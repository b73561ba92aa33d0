package http

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/frontandrew/crosspass/internal/domain"
	"github.com/frontandrew/crosspass/internal/pkg/logger"
)

// CheckpointService - интерфейс сервиса пункта пропуска
type CheckpointService interface {
	ScanImage(ctx context.Context, image []byte) (*domain.CheckpointDecision, error)
	DecideByPlate(ctx context.Context, plate string) (*domain.CheckpointDecision, error)
	ListCrossings(ctx context.Context, limit, offset int) ([]*domain.CrossingLog, error)
}

// CheckpointHandler обрабатывает запросы пункта пропуска
type CheckpointHandler struct {
	checkpointService CheckpointService
	logger            logger.Logger
}

// NewCheckpointHandler создает новый handler
func NewCheckpointHandler(checkpointService CheckpointService, logger logger.Logger) *CheckpointHandler {
	return &CheckpointHandler{
		checkpointService: checkpointService,
		logger:            logger,
	}
}

// scanRequest - запрос на сканирование снимка с камеры
type scanRequest struct {
	ImageBase64 string `json:"image_base64"`
}

// Scan принимает снимок, распознает номер и выносит решение о проезде
// POST /api/v1/checkpoint/scan
func (h *CheckpointHandler) Scan(w http.ResponseWriter, r *http.Request) {
	var req scanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.ImageBase64 == "" {
		respondError(w, http.StatusBadRequest, "Image required")
		return
	}

	image, err := base64.StdEncoding.DecodeString(req.ImageBase64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid image encoding")
		return
	}

	decision, err := h.checkpointService.ScanImage(r.Context(), image)
	if err != nil {
		h.logger.Error("Failed to process checkpoint scan", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to process scan")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    decision,
	})
}

// decideRequest - запрос с уже распознанным номером
type decideRequest struct {
	VehicleNumber string `json:"vehicle_number"`
}

// Decide выносит решение по номеру без распознавания
// POST /api/v1/checkpoint/decide
func (h *CheckpointHandler) Decide(w http.ResponseWriter, r *http.Request) {
	var req decideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.VehicleNumber == "" {
		respondError(w, http.StatusBadRequest, "Vehicle number required")
		return
	}

	decision, err := h.checkpointService.DecideByPlate(r.Context(), req.VehicleNumber)
	if err != nil {
		h.logger.Error("Failed to decide crossing", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to decide crossing")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    decision,
	})
}

// GetCrossingLogs возвращает журнал пересечений
// GET /api/v1/checkpoint/logs
func (h *CheckpointHandler) GetCrossingLogs(w http.ResponseWriter, r *http.Request) {
	limit, offset := getPaginationParams(r)

	logs, err := h.checkpointService.ListCrossings(r.Context(), limit, offset)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to get crossing logs")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    logs,
		"pagination": map[string]int{
			"limit":  limit,
			"offset": offset,
		},
	})
}
