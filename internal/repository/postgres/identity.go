package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/frontandrew/crosspass/internal/domain"
	"github.com/frontandrew/crosspass/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const identityColumns = `id, email, phone, password_hash, first_name, middle_name, last_name,
	       date_of_birth, passport_issuing_country, passport_number, passport_expiry,
	       created_at, updated_at`

// identityColumnsI - те же колонки с алиасом i, для JOIN-выборок
const identityColumnsI = `i.id, i.email, i.phone, i.password_hash, i.first_name, i.middle_name, i.last_name,
	       i.date_of_birth, i.passport_issuing_country, i.passport_number, i.passport_expiry,
	       i.created_at, i.updated_at`

type identityRepository struct {
	db *pgxpool.Pool
}

func NewIdentityRepository(db *pgxpool.Pool) repository.IdentityRepository {
	return &identityRepository{db: db}
}

func (r *identityRepository) Create(ctx context.Context, identity *domain.Identity) error {
	query := `
		INSERT INTO identities (id, email, phone, password_hash, first_name, middle_name, last_name,
		                        date_of_birth, passport_issuing_country, passport_number, passport_expiry,
		                        created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	identity.ID = uuid.New()
	identity.CreatedAt = time.Now()
	identity.UpdatedAt = identity.CreatedAt

	_, err := r.db.Exec(ctx, query,
		identity.ID,
		identity.Email,
		identity.Phone,
		identity.PasswordHash,
		identity.FirstName,
		identity.MiddleName,
		identity.LastName,
		identity.DateOfBirth,
		identity.PassportIssuingCountry,
		identity.PassportNumber,
		identity.PassportExpiry,
		identity.CreatedAt,
		identity.UpdatedAt,
	)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrUniqueViolation {
		switch pgErr.ConstraintName {
		case "identities_email_key":
			return domain.ErrEmailTaken
		case "identities_passport_number_key":
			return domain.ErrPassportTaken
		}
	}

	return err
}

func (r *identityRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Identity, error) {
	query := `SELECT ` + identityColumns + ` FROM identities WHERE id = $1`
	return r.scanIdentity(r.db.QueryRow(ctx, query, id))
}

func (r *identityRepository) GetByEmail(ctx context.Context, email string) (*domain.Identity, error) {
	query := `SELECT ` + identityColumns + ` FROM identities WHERE email = $1`
	return r.scanIdentity(r.db.QueryRow(ctx, query, email))
}

func (r *identityRepository) GetByPassportNumber(ctx context.Context, passportNumber string) (*domain.Identity, error) {
	query := `SELECT ` + identityColumns + ` FROM identities WHERE passport_number = $1`
	return r.scanIdentity(r.db.QueryRow(ctx, query, domain.NormalizePassportNumber(passportNumber)))
}

func (r *identityRepository) Update(ctx context.Context, identity *domain.Identity) error {
	query := `
		UPDATE identities
		SET email = $2, phone = $3, first_name = $4, middle_name = $5, last_name = $6,
		    date_of_birth = $7, passport_issuing_country = $8, passport_number = $9,
		    passport_expiry = $10, updated_at = $11
		WHERE id = $1
	`

	identity.UpdatedAt = time.Now()

	result, err := r.db.Exec(ctx, query,
		identity.ID,
		identity.Email,
		identity.Phone,
		identity.FirstName,
		identity.MiddleName,
		identity.LastName,
		identity.DateOfBirth,
		identity.PassportIssuingCountry,
		identity.PassportNumber,
		identity.PassportExpiry,
		identity.UpdatedAt,
	)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrIdentityNotFound
	}

	return nil
}

func (r *identityRepository) List(ctx context.Context, limit, offset int) ([]*domain.Identity, error) {
	query := `SELECT ` + identityColumns + ` FROM identities ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanIdentities(rows)
}

func (r *identityRepository) scanIdentity(row pgx.Row) (*domain.Identity, error) {
	identity := &domain.Identity{}
	err := row.Scan(
		&identity.ID,
		&identity.Email,
		&identity.Phone,
		&identity.PasswordHash,
		&identity.FirstName,
		&identity.MiddleName,
		&identity.LastName,
		&identity.DateOfBirth,
		&identity.PassportIssuingCountry,
		&identity.PassportNumber,
		&identity.PassportExpiry,
		&identity.CreatedAt,
		&identity.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrIdentityNotFound
		}
		return nil, err
	}

	return identity, nil
}

// scanIdentities - вспомогательная функция для сканирования результатов запроса
func scanIdentities(rows pgx.Rows) ([]*domain.Identity, error) {
	var identities []*domain.Identity
	for rows.Next() {
		identity := &domain.Identity{}
		err := rows.Scan(
			&identity.ID,
			&identity.Email,
			&identity.Phone,
			&identity.PasswordHash,
			&identity.FirstName,
			&identity.MiddleName,
			&identity.LastName,
			&identity.DateOfBirth,
			&identity.PassportIssuingCountry,
			&identity.PassportNumber,
			&identity.PassportExpiry,
			&identity.CreatedAt,
			&identity.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		identities = append(identities, identity)
	}

	return identities, rows.Err()
}
