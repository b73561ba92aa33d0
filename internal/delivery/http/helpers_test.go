package http

import (
	"context"
	"testing"
	"time"

	"github.com/frontandrew/crosspass/internal/delivery/http/middleware"
	"github.com/frontandrew/crosspass/internal/domain"
	"github.com/frontandrew/crosspass/internal/pkg/jwt"
	"github.com/google/uuid"
)

// CreateAuthContext создает контекст с claims пользователя для тестирования
func CreateAuthContext(t *testing.T, userID uuid.UUID, email string) context.Context {
	t.Helper()
	claims := &jwt.Claims{
		UserID: userID,
		Email:  email,
	}
	return context.WithValue(context.Background(), middleware.UserClaimsKey, claims)
}

// CreateTestIdentity создает тестовую личность
func CreateTestIdentity(id uuid.UUID, firstName, lastName, passportNumber string) *domain.Identity {
	return &domain.Identity{
		ID:                     id,
		Email:                  firstName + "@test.com",
		FirstName:              firstName,
		LastName:               lastName,
		DateOfBirth:            time.Date(1990, 1, 15, 0, 0, 0, 0, time.UTC),
		PassportIssuingCountry: "Singapore",
		PassportNumber:         passportNumber,
		PassportExpiry:         time.Date(2030, 1, 15, 0, 0, 0, 0, time.UTC),
	}
}

// CreateTestPass создает тестовый пропуск
func CreateTestPass(id, creatorID, vehicleID uuid.UUID, passDate time.Time) *domain.Pass {
	return &domain.Pass{
		ID:               id,
		CreatorID:        creatorID,
		VehicleID:        vehicleID,
		CreationDatetime: passDate.Add(-time.Hour),
		PassDate:         passDate,
		ExpiryDatetime:   passDate.Add(domain.PassValidityWindow),
	}
}

// CreateTestRegistration создает тестовую привязку автомобиля
func CreateTestRegistration(id, userID, vehicleID uuid.UUID, vehicleNumber, label string) *domain.VehicleRegistration {
	return &domain.VehicleRegistration{
		ID:        id,
		UserID:    userID,
		VehicleID: vehicleID,
		Label:     label,
		Vehicle: &domain.Vehicle{
			ID:            vehicleID,
			VehicleNumber: vehicleNumber,
		},
	}
}
