// Package billing owns the service-record lifecycle: creation with an
// optional bill attachment, owner-scoped filtered listing, and dashboard
// aggregates.
package billing

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/anesthesia-api/internal/filestore"
	"github.com/jwalitptl/anesthesia-api/internal/model"
	"github.com/jwalitptl/anesthesia-api/internal/repository"
	apperrors "github.com/jwalitptl/anesthesia-api/pkg/errors"
)

// Upload is an optional bill document attached at creation time.
type Upload struct {
	Filename string
	Content  io.Reader
}

// CreateServiceInput carries the fields of a new service record.
type CreateServiceInput struct {
	HospitalID     uuid.UUID
	PatientName    string
	PatientNumber  string
	ServiceDate    time.Time
	DaysOfService  int
	AmountCharged  float64
	AnesthesiaType string
	MedicationUsed *string
	Bill           *Upload
}

type ServiceServicer interface {
	CreateService(ctx context.Context, ownerID uuid.UUID, input CreateServiceInput) (*model.Service, error)
	ListServices(ctx context.Context, ownerID uuid.UUID, filter model.ServiceFilter) ([]*model.ServiceView, error)
	Stats(ctx context.Context, ownerID uuid.UUID) (*model.DashboardStats, error)
}

type Service struct {
	serviceRepo  repository.ServiceRepository
	hospitalRepo repository.HospitalRepository
	files        filestore.Store
}

func NewService(serviceRepo repository.ServiceRepository, hospitalRepo repository.HospitalRepository, files filestore.Store) *Service {
	return &Service{
		serviceRepo:  serviceRepo,
		hospitalRepo: hospitalRepo,
		files:        files,
	}
}

// CreateService stores the bill attachment (when present), then persists
// the record attributed to ownerID. Referencing a nonexistent hospital is
// a ForeignKey failure.
func (s *Service) CreateService(ctx context.Context, ownerID uuid.UUID, input CreateServiceInput) (*model.Service, error) {
	exists, err := s.hospitalRepo.Exists(ctx, input.HospitalID)
	if err != nil {
		return nil, fmt.Errorf("failed to check hospital: %w", err)
	}
	if !exists {
		return nil, apperrors.ForeignKey("hospital", nil)
	}

	var billFilename *string
	if input.Bill != nil && input.Bill.Filename != "" {
		storedName, err := s.files.Save(input.Bill.Filename, input.Bill.Content)
		if err != nil {
			return nil, fmt.Errorf("failed to store bill file: %w", err)
		}
		billFilename = &storedName
	}

	service := &model.Service{
		DoctorID:       ownerID,
		HospitalID:     input.HospitalID,
		PatientName:    input.PatientName,
		PatientNumber:  input.PatientNumber,
		ServiceDate:    input.ServiceDate,
		DaysOfService:  input.DaysOfService,
		AmountCharged:  input.AmountCharged,
		AnesthesiaType: input.AnesthesiaType,
		MedicationUsed: input.MedicationUsed,
		BillFilename:   billFilename,
	}

	if err := s.serviceRepo.Create(ctx, service); err != nil {
		return nil, err
	}

	log.Info().
		Str("service_id", service.ID.String()).
		Str("hospital_id", service.HospitalID.String()).
		Msg("service record created")

	return service, nil
}

// ListServices returns the owner's records narrowed by filter. Scoping to
// the owner is unconditional; no record is ever visible across identities.
func (s *Service) ListServices(ctx context.Context, ownerID uuid.UUID, filter model.ServiceFilter) ([]*model.ServiceView, error) {
	services, err := s.serviceRepo.List(ctx, ownerID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	if services == nil {
		services = []*model.ServiceView{}
	}
	return services, nil
}

// Stats aggregates over the owner's full unfiltered record set.
func (s *Service) Stats(ctx context.Context, ownerID uuid.UUID) (*model.DashboardStats, error) {
	stats, err := s.serviceRepo.Stats(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute stats: %w", err)
	}
	return stats, nil
}
