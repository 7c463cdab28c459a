package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/anesthesia-api/internal/model"
	"github.com/jwalitptl/anesthesia-api/pkg/security"
)

const schema = `
CREATE TABLE IF NOT EXISTS practitioners (
	id UUID PRIMARY KEY,
	email TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	full_name TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS hospitals (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL UNIQUE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS services (
	id UUID PRIMARY KEY,
	doctor_id UUID NOT NULL REFERENCES practitioners (id),
	hospital_id UUID NOT NULL REFERENCES hospitals (id),
	patient_name TEXT NOT NULL,
	patient_number TEXT NOT NULL,
	service_date DATE NOT NULL,
	days_of_service INT NOT NULL CHECK (days_of_service >= 0),
	amount_charged NUMERIC(12,2) NOT NULL CHECK (amount_charged >= 0),
	anesthesia_type TEXT NOT NULL,
	medication_used TEXT,
	bill_filename TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_services_doctor ON services (doctor_id);
CREATE INDEX IF NOT EXISTS idx_services_service_date ON services (service_date);
`

// Migrate creates the schema if it does not exist yet.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Seed provisions the default practitioner and sample hospitals on first
// run. Existing rows are left untouched, so it is safe to call on every
// startup.
func Seed(ctx context.Context, db *sqlx.DB, hasher security.PasswordHasher) error {
	practitioners := NewPractitionerRepository(db)
	hospitals := NewHospitalRepository(db)

	if _, err := practitioners.GetByEmail(ctx, "doctor@example.com"); err != nil {
		hash, err := hasher.Hash("password123")
		if err != nil {
			return fmt.Errorf("failed to hash default password: %w", err)
		}
		p := &model.Practitioner{
			ID:           uuid.New(),
			Email:        "doctor@example.com",
			PasswordHash: hash,
			FullName:     "Dr. John Smith",
		}
		if err := practitioners.Create(ctx, p); err != nil {
			return fmt.Errorf("failed to seed practitioner: %w", err)
		}
		log.Info().Str("email", p.Email).Msg("seeded default practitioner")
	}

	for _, name := range []string{"City General Hospital", "St. Mary's Medical Center", "Regional Health Center"} {
		if _, err := hospitals.GetByName(ctx, name); err == nil {
			continue
		}
		h := &model.Hospital{ID: uuid.New(), Name: name}
		if err := hospitals.Create(ctx, h); err != nil {
			return fmt.Errorf("failed to seed hospital %q: %w", name, err)
		}
	}

	return nil
}
