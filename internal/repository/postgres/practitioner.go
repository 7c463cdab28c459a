package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/anesthesia-api/internal/model"
	"github.com/jwalitptl/anesthesia-api/internal/repository"
	apperrors "github.com/jwalitptl/anesthesia-api/pkg/errors"
)

type practitionerRepository struct {
	db *sqlx.DB
}

func NewPractitionerRepository(db *sqlx.DB) repository.PractitionerRepository {
	return &practitionerRepository{db: db}
}

func (r *practitionerRepository) Create(ctx context.Context, practitioner *model.Practitioner) error {
	query := `
		INSERT INTO practitioners (id, email, password_hash, full_name, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	if practitioner.ID == uuid.Nil {
		practitioner.ID = uuid.New()
	}
	practitioner.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		practitioner.ID,
		practitioner.Email,
		practitioner.PasswordHash,
		practitioner.FullName,
		practitioner.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create practitioner: %w", err)
	}
	return nil
}

func (r *practitionerRepository) Get(ctx context.Context, id uuid.UUID) (*model.Practitioner, error) {
	query := `
		SELECT id, email, password_hash, full_name, created_at
		FROM practitioners
		WHERE id = $1
	`
	var practitioner model.Practitioner
	err := r.db.GetContext(ctx, &practitioner, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("practitioner", err)
		}
		return nil, fmt.Errorf("failed to get practitioner: %w", err)
	}
	return &practitioner, nil
}

func (r *practitionerRepository) GetByEmail(ctx context.Context, email string) (*model.Practitioner, error) {
	query := `
		SELECT id, email, password_hash, full_name, created_at
		FROM practitioners
		WHERE email = $1
	`
	var practitioner model.Practitioner
	err := r.db.GetContext(ctx, &practitioner, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("practitioner", err)
		}
		return nil, fmt.Errorf("failed to get practitioner by email: %w", err)
	}
	return &practitioner, nil
}
