package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Vehicle - транспортное средство
// ВАЖНО: автомобиль НЕ принадлежит одному пользователю - несколько пользователей
// могут зарегистрировать один и тот же номер (семья, карпул) через VehicleRegistration
type Vehicle struct {
	ID            uuid.UUID `json:"id"`
	VehicleNumber string    `json:"vehicle_number"` // Номер автомобиля (уникальный, нормализованный)
	CreatedAt     time.Time `json:"created_at"`
}

// VehicleRegistration - связь пользователь-автомобиль с пользовательским названием
// Инвариант: не более одной записи на пару (user, vehicle); повторная регистрация
// обновляет название, а не создает дубликат
type VehicleRegistration struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	VehicleID uuid.UUID `json:"vehicle_id"`
	Label     string    `json:"label"` // Название, присвоенное пользователем ("Honda Vezel")
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Связанные данные (не хранятся в БД, заполняются при необходимости)
	Vehicle *Vehicle `json:"vehicle,omitempty"`
}

// NormalizeVehicleNumber нормализует номер автомобиля (убирает пробелы, приводит к верхнему регистру)
func NormalizeVehicleNumber(number string) string {
	return strings.ToUpper(strings.ReplaceAll(number, " ", ""))
}

// ValidateVehicleNumber проверяет корректность нормализованного номера автомобиля
func ValidateVehicleNumber(number string) error {
	if len(number) < 5 || len(number) > 20 {
		return ErrInvalidVehicleNumber
	}
	return nil
}

// Validate проверяет корректность данных автомобиля
func (v *Vehicle) Validate() error {
	v.VehicleNumber = NormalizeVehicleNumber(v.VehicleNumber)
	return ValidateVehicleNumber(v.VehicleNumber)
}
