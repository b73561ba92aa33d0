package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/frontandrew/crosspass/internal/domain"
	"github.com/frontandrew/crosspass/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type travellerLinkRepository struct {
	db *pgxpool.Pool
}

func NewTravellerLinkRepository(db *pgxpool.Pool) repository.TravellerLinkRepository {
	return &travellerLinkRepository{db: db}
}

// Create создает связь (creator, traveller)
// Уникальность пары обеспечивается ограничением в БД, а не предварительной проверкой:
// конкурентное двойное добавление дает ровно одну запись
func (r *travellerLinkRepository) Create(ctx context.Context, link *domain.TravellerLink) error {
	query := `
		INSERT INTO traveller_links (id, creator_id, traveller_id, created_at)
		VALUES ($1, $2, $3, $4)
	`

	link.ID = uuid.New()
	link.CreatedAt = time.Now()

	_, err := r.db.Exec(ctx, query, link.ID, link.CreatorID, link.TravellerID, link.CreatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrUniqueViolation {
		return domain.ErrTravellerLinkExists
	}

	return err
}

func (r *travellerLinkRepository) GetTravellersByCreator(ctx context.Context, creatorID uuid.UUID) ([]*domain.Identity, error) {
	query := `
		SELECT ` + identityColumnsI + `
		FROM identities i
		INNER JOIN traveller_links tl ON tl.traveller_id = i.id
		WHERE tl.creator_id = $1
		ORDER BY tl.created_at DESC
	`

	rows, err := r.db.Query(ctx, query, creatorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanIdentities(rows)
}
