package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/frontandrew/crosspass/internal/domain"
	"github.com/frontandrew/crosspass/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type vehicleRepository struct {
	db *pgxpool.Pool
}

func NewVehicleRepository(db *pgxpool.Pool) repository.VehicleRepository {
	return &vehicleRepository{db: db}
}

func (r *vehicleRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Vehicle, error) {
	query := `SELECT id, vehicle_number, created_at FROM vehicles WHERE id = $1`
	return r.scanVehicle(r.db.QueryRow(ctx, query, id))
}

func (r *vehicleRepository) GetByNumber(ctx context.Context, vehicleNumber string) (*domain.Vehicle, error) {
	query := `SELECT id, vehicle_number, created_at FROM vehicles WHERE vehicle_number = $1`
	return r.scanVehicle(r.db.QueryRow(ctx, query, domain.NormalizeVehicleNumber(vehicleNumber)))
}

// Register атомарно выполняет get-or-create автомобиля и upsert метки пользователя
// Оба шага идут в одной транзакции: конкурентная первая регистрация одного номера
// не может породить два ряда vehicles
func (r *vehicleRepository) Register(ctx context.Context, userID uuid.UUID, vehicleNumber, label string) (*domain.VehicleRegistration, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Get-or-create: при конфликте по номеру возвращаем существующий ряд
	vehicleQuery := `
		INSERT INTO vehicles (id, vehicle_number, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (vehicle_number) DO UPDATE SET
			vehicle_number = EXCLUDED.vehicle_number
		RETURNING id, vehicle_number, created_at
	`

	vehicle := &domain.Vehicle{}
	err = tx.QueryRow(ctx, vehicleQuery,
		uuid.New(),
		domain.NormalizeVehicleNumber(vehicleNumber),
		time.Now(),
	).Scan(&vehicle.ID, &vehicle.VehicleNumber, &vehicle.CreatedAt)
	if err != nil {
		return nil, err
	}

	// Повторная регистрация той же пары (user, vehicle) обновляет метку
	registrationQuery := `
		INSERT INTO vehicle_registrations (id, user_id, vehicle_id, label, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		ON CONFLICT (user_id, vehicle_id) DO UPDATE SET
			label = EXCLUDED.label,
			updated_at = EXCLUDED.updated_at
		RETURNING id, user_id, vehicle_id, label, created_at, updated_at
	`

	registration := &domain.VehicleRegistration{}
	err = tx.QueryRow(ctx, registrationQuery,
		uuid.New(),
		userID,
		vehicle.ID,
		label,
		time.Now(),
	).Scan(
		&registration.ID,
		&registration.UserID,
		&registration.VehicleID,
		&registration.Label,
		&registration.CreatedAt,
		&registration.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	registration.Vehicle = vehicle
	return registration, nil
}

func (r *vehicleRepository) GetRegistrationsByUser(ctx context.Context, userID uuid.UUID) ([]*domain.VehicleRegistration, error) {
	query := `
		SELECT vr.id, vr.user_id, vr.vehicle_id, vr.label, vr.created_at, vr.updated_at,
		       v.id, v.vehicle_number, v.created_at
		FROM vehicle_registrations vr
		INNER JOIN vehicles v ON v.id = vr.vehicle_id
		WHERE vr.user_id = $1
		ORDER BY vr.created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var registrations []*domain.VehicleRegistration
	for rows.Next() {
		registration := &domain.VehicleRegistration{Vehicle: &domain.Vehicle{}}
		err := rows.Scan(
			&registration.ID,
			&registration.UserID,
			&registration.VehicleID,
			&registration.Label,
			&registration.CreatedAt,
			&registration.UpdatedAt,
			&registration.Vehicle.ID,
			&registration.Vehicle.VehicleNumber,
			&registration.Vehicle.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		registrations = append(registrations, registration)
	}

	return registrations, rows.Err()
}

func (r *vehicleRepository) GetRegisteredUserIDs(ctx context.Context, vehicleID uuid.UUID) ([]uuid.UUID, error) {
	query := `SELECT user_id FROM vehicle_registrations WHERE vehicle_id = $1`

	rows, err := r.db.Query(ctx, query, vehicleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var userIDs []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		userIDs = append(userIDs, id)
	}

	return userIDs, rows.Err()
}

func (r *vehicleRepository) scanVehicle(row pgx.Row) (*domain.Vehicle, error) {
	vehicle := &domain.Vehicle{}
	err := row.Scan(&vehicle.ID, &vehicle.VehicleNumber, &vehicle.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrVehicleNotFound
		}
		return nil, err
	}
	return vehicle, nil
}
