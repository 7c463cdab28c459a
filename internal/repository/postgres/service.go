package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/jwalitptl/anesthesia-api/internal/model"
	"github.com/jwalitptl/anesthesia-api/internal/repository"
	apperrors "github.com/jwalitptl/anesthesia-api/pkg/errors"
)

type serviceRepository struct {
	db *sqlx.DB
}

func NewServiceRepository(db *sqlx.DB) repository.ServiceRepository {
	return &serviceRepository{db: db}
}

func (r *serviceRepository) Create(ctx context.Context, service *model.Service) error {
	query := `
		INSERT INTO services (
			id, doctor_id, hospital_id, patient_name, patient_number,
			service_date, days_of_service, amount_charged, anesthesia_type,
			medication_used, bill_filename, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	if service.ID == uuid.Nil {
		service.ID = uuid.New()
	}
	service.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		service.ID,
		service.DoctorID,
		service.HospitalID,
		service.PatientName,
		service.PatientNumber,
		service.ServiceDate,
		service.DaysOfService,
		service.AmountCharged,
		service.AnesthesiaType,
		service.MedicationUsed,
		service.BillFilename,
		service.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqForeignKeyViolation {
			return apperrors.ForeignKey("hospital", err)
		}
		return fmt.Errorf("failed to create service: %w", err)
	}
	return nil
}

// List scopes to the owner unconditionally and applies the supplied
// filters with AND. The hospital name is resolved by a single left join so
// one query serves the whole result set; a dangling reference falls back
// to the "Unknown" sentinel.
func (r *serviceRepository) List(ctx context.Context, ownerID uuid.UUID, filter model.ServiceFilter) ([]*model.ServiceView, error) {
	query := `
		SELECT
			s.id, COALESCE(h.name, 'Unknown') AS hospital_name,
			s.patient_name, s.patient_number, s.service_date,
			s.days_of_service, s.amount_charged, s.anesthesia_type,
			s.medication_used, s.bill_filename, s.created_at
		FROM services s
		LEFT JOIN hospitals h ON h.id = s.hospital_id
		WHERE s.doctor_id = $1
		AND ($2::uuid IS NULL OR s.hospital_id = $2)
		AND ($3::text IS NULL OR s.anesthesia_type ILIKE '%' || $3 || '%')
		AND ($4::date IS NULL OR s.service_date >= $4)
		AND ($5::date IS NULL OR s.service_date <= $5)
	`

	var anesthesiaType *string
	if filter.AnesthesiaType != "" {
		anesthesiaType = &filter.AnesthesiaType
	}

	var services []*model.ServiceView
	err := r.db.SelectContext(ctx, &services, query,
		ownerID,
		filter.HospitalID,
		anesthesiaType,
		filter.StartDate,
		filter.EndDate,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return services, nil
}

// Stats computes all four aggregates in one statement so they observe a
// single snapshot.
func (r *serviceRepository) Stats(ctx context.Context, ownerID uuid.UUID) (*model.DashboardStats, error) {
	query := `
		SELECT
			COUNT(DISTINCT patient_number) AS total_patients,
			COALESCE(SUM(amount_charged), 0) AS total_revenue,
			COUNT(*) AS total_services,
			COUNT(DISTINCT hospital_id) AS total_hospitals
		FROM services
		WHERE doctor_id = $1
	`
	var stats model.DashboardStats
	if err := r.db.GetContext(ctx, &stats, query, ownerID); err != nil {
		return nil, fmt.Errorf("failed to compute stats: %w", err)
	}
	return &stats, nil
}
