package hospital

import (
	"context"
	"fmt"
	"time"

	cache "github.com/patrickmn/go-cache"

	"github.com/jwalitptl/anesthesia-api/internal/model"
	"github.com/jwalitptl/anesthesia-api/internal/repository"
)

const (
	listCacheKey = "hospitals"
	listCacheTTL = 5 * time.Minute
)

type HospitalServicer interface {
	CreateHospital(ctx context.Context, name string) (*model.Hospital, error)
	ListHospitals(ctx context.Context) ([]*model.Hospital, error)
}

type Service struct {
	repo  repository.HospitalRepository
	cache *cache.Cache
}

func NewService(repo repository.HospitalRepository) *Service {
	return &Service{
		repo:  repo,
		cache: cache.New(listCacheTTL, 10*time.Minute),
	}
}

// CreateHospital persists a new hospital. A duplicate name is rejected by
// the unique constraint and surfaces as a DuplicateName error.
func (s *Service) CreateHospital(ctx context.Context, name string) (*model.Hospital, error) {
	hospital := &model.Hospital{Name: name}
	if err := s.repo.Create(ctx, hospital); err != nil {
		return nil, err
	}

	s.cache.Delete(listCacheKey)
	return hospital, nil
}

// ListHospitals returns the hospital directory. The directory is
// read-mostly, so results are cached briefly and invalidated on create.
func (s *Service) ListHospitals(ctx context.Context) ([]*model.Hospital, error) {
	if cached, ok := s.cache.Get(listCacheKey); ok {
		return cached.([]*model.Hospital), nil
	}

	hospitals, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list hospitals: %w", err)
	}

	s.cache.Set(listCacheKey, hospitals, cache.DefaultExpiration)
	return hospitals, nil
}
