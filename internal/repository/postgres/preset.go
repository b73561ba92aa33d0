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

type presetRepository struct {
	db *pgxpool.Pool
}

func NewPresetRepository(db *pgxpool.Pool) repository.PresetRepository {
	return &presetRepository{db: db}
}

// CreateWithMembers создает группу вместе с участниками одной транзакцией
// Откат на любом шаге не оставляет частично созданной группы
func (r *presetRepository) CreateWithMembers(ctx context.Context, preset *domain.Preset, memberIDs []uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	preset.ID = uuid.New()
	preset.CreatedAt = time.Now()

	_, err = tx.Exec(ctx,
		`INSERT INTO presets (id, owner_id, name, created_at) VALUES ($1, $2, $3, $4)`,
		preset.ID, preset.OwnerID, preset.Name, preset.CreatedAt,
	)
	if err != nil {
		return err
	}

	for _, memberID := range memberIDs {
		_, err = tx.Exec(ctx,
			`INSERT INTO preset_members (id, preset_id, identity_id) VALUES ($1, $2, $3)
			 ON CONFLICT (preset_id, identity_id) DO NOTHING`,
			uuid.New(), preset.ID, memberID,
		)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	preset.MemberCount = len(memberIDs)
	return nil
}

func (r *presetRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Preset, error) {
	query := `SELECT id, owner_id, name, created_at FROM presets WHERE id = $1`

	preset := &domain.Preset{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&preset.ID,
		&preset.OwnerID,
		&preset.Name,
		&preset.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPresetNotFound
		}
		return nil, err
	}

	return preset, nil
}

func (r *presetRepository) GetByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Preset, error) {
	query := `
		SELECT p.id, p.owner_id, p.name, p.created_at, COUNT(pm.id)
		FROM presets p
		LEFT JOIN preset_members pm ON pm.preset_id = p.id
		WHERE p.owner_id = $1
		GROUP BY p.id
		ORDER BY p.created_at DESC
	`

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var presets []*domain.Preset
	for rows.Next() {
		preset := &domain.Preset{}
		err := rows.Scan(
			&preset.ID,
			&preset.OwnerID,
			&preset.Name,
			&preset.CreatedAt,
			&preset.MemberCount,
		)
		if err != nil {
			return nil, err
		}
		presets = append(presets, preset)
	}

	return presets, rows.Err()
}

func (r *presetRepository) GetMembers(ctx context.Context, presetID uuid.UUID) ([]*domain.Identity, error) {
	query := `
		SELECT ` + identityColumnsI + `
		FROM identities i
		INNER JOIN preset_members pm ON pm.identity_id = i.id
		WHERE pm.preset_id = $1
		ORDER BY i.last_name, i.first_name
	`

	rows, err := r.db.Query(ctx, query, presetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanIdentities(rows)
}
