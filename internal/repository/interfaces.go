package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/jwalitptl/anesthesia-api/internal/model"
)

type PractitionerRepository interface {
	Create(ctx context.Context, practitioner *model.Practitioner) error
	Get(ctx context.Context, id uuid.UUID) (*model.Practitioner, error)
	GetByEmail(ctx context.Context, email string) (*model.Practitioner, error)
}

type HospitalRepository interface {
	Create(ctx context.Context, hospital *model.Hospital) error
	GetByName(ctx context.Context, name string) (*model.Hospital, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context) ([]*model.Hospital, error)
}

type ServiceRepository interface {
	Create(ctx context.Context, service *model.Service) error
	List(ctx context.Context, ownerID uuid.UUID, filter model.ServiceFilter) ([]*model.ServiceView, error)
	Stats(ctx context.Context, ownerID uuid.UUID) (*model.DashboardStats, error)
}
