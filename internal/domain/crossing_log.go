package domain

import (
	"time"

	"github.com/google/uuid"
)

// CrossingLog - запись о попытке пересечения КПП
// Пишется для КАЖДОГО решения, включая отказы по нераспознанному номеру
type CrossingLog struct {
	ID            uuid.UUID    `json:"id"`
	VehicleNumber string       `json:"vehicle_number"` // Распознанный номер (может отсутствовать в БД)
	VehicleID     *uuid.UUID   `json:"vehicle_id,omitempty"`
	PassID        *uuid.UUID   `json:"pass_id,omitempty"`
	Approved      bool         `json:"approved"`
	Reason        RejectReason `json:"reason,omitempty"`
	Timestamp     time.Time    `json:"timestamp"`
}
