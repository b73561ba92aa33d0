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

const passColumns = `id, creator_id, vehicle_id, creation_datetime, pass_date, expiry_datetime, utilized`

type passRepository struct {
	db *pgxpool.Pool
}

func NewPassRepository(db *pgxpool.Pool) repository.PassRepository {
	return &passRepository{db: db}
}

// CreateWithTravellers создает пропуск и всех его путешественников одной транзакцией
// Частично созданный пропуск (без части путешественников) невозможен
func (r *passRepository) CreateWithTravellers(ctx context.Context, pass *domain.Pass, travellerIDs []uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	pass.ID = uuid.New()
	pass.CreationDatetime = time.Now()

	_, err = tx.Exec(ctx,
		`INSERT INTO passes (id, creator_id, vehicle_id, creation_datetime, pass_date, expiry_datetime, utilized)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		pass.ID,
		pass.CreatorID,
		pass.VehicleID,
		pass.CreationDatetime,
		pass.PassDate,
		pass.ExpiryDatetime,
		pass.Utilized,
	)
	if err != nil {
		return err
	}

	for _, travellerID := range travellerIDs {
		_, err = tx.Exec(ctx,
			`INSERT INTO pass_travellers (id, pass_id, identity_id) VALUES ($1, $2, $3)
			 ON CONFLICT (pass_id, identity_id) DO NOTHING`,
			uuid.New(), pass.ID, travellerID,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *passRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Pass, error) {
	query := `SELECT ` + passColumns + ` FROM passes WHERE id = $1`

	pass := &domain.Pass{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&pass.ID,
		&pass.CreatorID,
		&pass.VehicleID,
		&pass.CreationDatetime,
		&pass.PassDate,
		&pass.ExpiryDatetime,
		&pass.Utilized,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPassNotFound
		}
		return nil, err
	}

	return pass, nil
}

func (r *passRepository) GetByCreator(ctx context.Context, creatorID uuid.UUID, filter repository.PassFilter, limit, offset int) ([]*domain.Pass, error) {
	query := `SELECT ` + passColumns + ` FROM passes WHERE creator_id = $1`
	if filter == repository.PassFilterUtilized {
		query += ` AND utilized = true`
	}
	query += ` ORDER BY creation_datetime DESC LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, creatorID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanPasses(rows)
}

func (r *passRepository) GetTravellers(ctx context.Context, passID uuid.UUID) ([]*domain.Identity, error) {
	query := `
		SELECT ` + identityColumnsI + `
		FROM identities i
		INNER JOIN pass_travellers pt ON pt.identity_id = i.id
		WHERE pt.pass_id = $1
		ORDER BY i.last_name, i.first_name
	`

	rows, err := r.db.Query(ctx, query, passID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanIdentities(rows)
}

// FindMatchable - КЛЮЧЕВОЙ МЕТОД для КПП
// Выбирает непогашенные пропуска автомобиля с действующим окном,
// первым идет самый ранний pass_date (первый запланированный - первый обслуженный)
func (r *passRepository) FindMatchable(ctx context.Context, vehicleID uuid.UUID, now time.Time) ([]*domain.Pass, error) {
	query := `
		SELECT ` + passColumns + `
		FROM passes
		WHERE vehicle_id = $1
		  AND utilized = false
		  AND pass_date <= $2
		  AND expiry_datetime > $2
		ORDER BY pass_date ASC, creation_datetime ASC
	`

	rows, err := r.db.Query(ctx, query, vehicleID, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanPasses(rows)
}

// Consume атомарно гасит пропуск (compare-and-set)
// Два конкурентных сканирования не могут оба погасить один пропуск:
// UPDATE срабатывает только пока utilized = false
func (r *passRepository) Consume(ctx context.Context, passID uuid.UUID) error {
	result, err := r.db.Exec(ctx,
		`UPDATE passes SET utilized = true WHERE id = $1 AND utilized = false`,
		passID,
	)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		// Либо пропуска нет, либо его уже погасили - различаем перечитыванием
		if _, err := r.GetByID(ctx, passID); err != nil {
			return err
		}
		return domain.ErrPassAlreadyUtilized
	}

	return nil
}

// scanPasses - вспомогательная функция для сканирования результатов запроса
func (r *passRepository) scanPasses(rows pgx.Rows) ([]*domain.Pass, error) {
	var passes []*domain.Pass
	for rows.Next() {
		pass := &domain.Pass{}
		err := rows.Scan(
			&pass.ID,
			&pass.CreatorID,
			&pass.VehicleID,
			&pass.CreationDatetime,
			&pass.PassDate,
			&pass.ExpiryDatetime,
			&pass.Utilized,
		)
		if err != nil {
			return nil, err
		}
		passes = append(passes, pass)
	}

	return passes, rows.Err()
}
