package domain

import (
	"time"

	"github.com/google/uuid"
)

// PassValidityWindow - фиксированный срок действия пропуска
// Срок вычисляется движком как pass_date + 24h и никогда не принимается от клиента -
// это защита от произвольно долгоживущих пропусков
const PassValidityWindow = 24 * time.Hour

// PassStatus представляет состояние пропуска
type PassStatus string

const (
	PassStatusPending  PassStatus = "pending"  // Пропуск создан, пересечение еще не состоялось
	PassStatusUtilized PassStatus = "utilized" // Пропуск погашен на КПП (терминальное состояние)
)

// Pass - разовый пропуск на пересечение границы
// Привязывает создателя, набор путешественников и автомобиль к окну действия
// [PassDate, ExpiryDatetime); после погашения становится неизменяемой историей
type Pass struct {
	ID                uuid.UUID `json:"id"`
	CreatorID         uuid.UUID `json:"creator_id"`
	VehicleID         uuid.UUID `json:"vehicle_id"`
	CreationDatetime  time.Time `json:"creation_datetime"`
	PassDate          time.Time `json:"pass_date"`
	ExpiryDatetime    time.Time `json:"expiry_datetime"`
	Utilized          bool      `json:"utilized"`

	// Связанные данные (не хранятся в БД, заполняются при необходимости)
	Vehicle    *Vehicle    `json:"vehicle,omitempty"`
	Travellers []*Identity `json:"travellers,omitempty"`
}

// Status возвращает текущее состояние пропуска
func (p *Pass) Status() PassStatus {
	if p.Utilized {
		return PassStatusUtilized
	}
	return PassStatusPending
}

// IsValidAt проверяет, действителен ли пропуск в указанный момент времени
// Окно действия полуоткрытое: [PassDate, ExpiryDatetime)
func (p *Pass) IsValidAt(now time.Time) bool {
	if p.Utilized {
		return false
	}
	if now.Before(p.PassDate) {
		return false
	}
	return now.Before(p.ExpiryDatetime)
}

// Validate проверяет корректность данных пропуска
func (p *Pass) Validate() error {
	if p.CreatorID == uuid.Nil || p.VehicleID == uuid.Nil {
		return ErrInvalidPassData
	}
	if p.PassDate.IsZero() {
		return ErrInvalidPassDate
	}
	if !p.ExpiryDatetime.Equal(p.PassDate.Add(PassValidityWindow)) {
		return ErrInvalidPassData
	}
	return nil
}

// RejectReason - причина отказа на КПП
type RejectReason string

const (
	ReasonPlateNotRecognized   RejectReason = "PLATE_NOT_RECOGNIZED"
	ReasonVehicleNotRegistered RejectReason = "VEHICLE_NOT_REGISTERED"
	ReasonNoValidPass          RejectReason = "NO_VALID_PASS"
)

// CheckpointDecision - результат сопоставления распознанного номера с пропусками
type CheckpointDecision struct {
	Approved      bool         `json:"approved"`
	Reason        RejectReason `json:"reason,omitempty"`
	VehicleNumber string       `json:"vehicle_number,omitempty"`
	Timestamp     time.Time    `json:"timestamp"`

	// Заполняются только при Approved=true
	Pass       *Pass       `json:"pass,omitempty"`
	Travellers []*Identity `json:"travellers,omitempty"`
}
