package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Identity - центральная сущность системы
// Объединяет учетную запись и паспортные данные путешественника:
// один и тот же Identity выступает и создателем пропусков, и пассажиром
type Identity struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	PasswordHash string    `json:"-"` // Никогда не возвращаем в JSON

	FirstName              string    `json:"first_name"`
	MiddleName             *string   `json:"middle_name,omitempty"`
	LastName               string    `json:"last_name"`
	DateOfBirth            time.Time `json:"date_of_birth"`
	PassportIssuingCountry string    `json:"passport_issuing_country"`
	PassportNumber         string    `json:"passport_number"` // Уникальный идентификатор путешественника
	PassportExpiry         time.Time `json:"passport_expiry"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FullName возвращает полное имя путешественника
func (i *Identity) FullName() string {
	parts := []string{i.FirstName}
	if i.MiddleName != nil && *i.MiddleName != "" {
		parts = append(parts, *i.MiddleName)
	}
	parts = append(parts, i.LastName)
	return strings.Join(parts, " ")
}

// NormalizePassportNumber нормализует номер паспорта (убирает пробелы, приводит к верхнему регистру)
func NormalizePassportNumber(passport string) string {
	return strings.ToUpper(strings.ReplaceAll(passport, " ", ""))
}

// Validate проверяет корректность данных путешественника
func (i *Identity) Validate() error {
	if i.Email == "" || !strings.Contains(i.Email, "@") {
		return ErrInvalidEmail
	}
	if i.FirstName == "" || i.LastName == "" {
		return ErrInvalidIdentityData
	}

	i.PassportNumber = NormalizePassportNumber(i.PassportNumber)
	if len(i.PassportNumber) < 5 || len(i.PassportNumber) > 20 {
		return ErrInvalidIdentityData
	}
	if i.PassportIssuingCountry == "" {
		return ErrInvalidIdentityData
	}
	return nil
}
