package postgres

import (
	"context"

	"github.com/frontandrew/crosspass/internal/domain"
	"github.com/frontandrew/crosspass/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type crossingLogRepository struct {
	db *pgxpool.Pool
}

func NewCrossingLogRepository(db *pgxpool.Pool) repository.CrossingLogRepository {
	return &crossingLogRepository{db: db}
}

func (r *crossingLogRepository) Create(ctx context.Context, log *domain.CrossingLog) error {
	query := `
		INSERT INTO crossing_logs (id, vehicle_number, vehicle_id, pass_id, approved, reason, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	log.ID = uuid.New()

	_, err := r.db.Exec(ctx, query,
		log.ID,
		log.VehicleNumber,
		log.VehicleID,
		log.PassID,
		log.Approved,
		log.Reason,
		log.Timestamp,
	)

	return err
}

func (r *crossingLogRepository) List(ctx context.Context, limit, offset int) ([]*domain.CrossingLog, error) {
	query := `
		SELECT id, vehicle_number, vehicle_id, pass_id, approved, reason, timestamp
		FROM crossing_logs
		ORDER BY timestamp DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanLogs(rows)
}

func (r *crossingLogRepository) GetByVehicleID(ctx context.Context, vehicleID uuid.UUID, limit, offset int) ([]*domain.CrossingLog, error) {
	query := `
		SELECT id, vehicle_number, vehicle_id, pass_id, approved, reason, timestamp
		FROM crossing_logs
		WHERE vehicle_id = $1
		ORDER BY timestamp DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, vehicleID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanLogs(rows)
}

// scanLogs - вспомогательная функция для сканирования результатов запроса
func (r *crossingLogRepository) scanLogs(rows pgx.Rows) ([]*domain.CrossingLog, error) {
	var logs []*domain.CrossingLog
	for rows.Next() {
		log := &domain.CrossingLog{}
		err := rows.Scan(
			&log.ID,
			&log.VehicleNumber,
			&log.VehicleID,
			&log.PassID,
			&log.Approved,
			&log.Reason,
			&log.Timestamp,
		)
		if err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}

	return logs, rows.Err()
}
