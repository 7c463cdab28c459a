package hospital

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/anesthesia-api/internal/model"
	apperrors "github.com/jwalitptl/anesthesia-api/pkg/errors"
)

type mockHospitalRepo struct {
	hospitals []*model.Hospital
	listCalls int
}

func (m *mockHospitalRepo) Create(_ context.Context, h *model.Hospital) error {
	for _, existing := range m.hospitals {
		if existing.Name == h.Name {
			return apperrors.DuplicateName("hospital", nil)
		}
	}
	h.ID = uuid.New()
	m.hospitals = append(m.hospitals, h)
	return nil
}

func (m *mockHospitalRepo) GetByName(_ context.Context, name string) (*model.Hospital, error) {
	for _, h := range m.hospitals {
		if h.Name == name {
			return h, nil
		}
	}
	return nil, apperrors.NotFound("hospital", nil)
}

func (m *mockHospitalRepo) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	for _, h := range m.hospitals {
		if h.ID == id {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockHospitalRepo) List(_ context.Context) ([]*model.Hospital, error) {
	m.listCalls++
	return m.hospitals, nil
}

func TestCreateHospital(t *testing.T) {
	svc := NewService(&mockHospitalRepo{})

	hospital, err := svc.CreateHospital(context.Background(), "City General")
	require.NoError(t, err)
	assert.Equal(t, "City General", hospital.Name)
	assert.NotEqual(t, uuid.Nil, hospital.ID)
}

func TestCreateHospital_DuplicateName(t *testing.T) {
	repo := &mockHospitalRepo{}
	svc := NewService(repo)

	_, err := svc.CreateHospital(context.Background(), "City General")
	require.NoError(t, err)

	_, err = svc.CreateHospital(context.Background(), "City General")
	assert.ErrorIs(t, err, apperrors.DuplicateName("hospital", nil))
	assert.Len(t, repo.hospitals, 1, "store must contain exactly one row with that name")
}

func TestListHospitals_CachedUntilCreate(t *testing.T) {
	repo := &mockHospitalRepo{}
	svc := NewService(repo)

	_, err := svc.CreateHospital(context.Background(), "City General")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		hospitals, err := svc.ListHospitals(context.Background())
		require.NoError(t, err)
		assert.Len(t, hospitals, 1)
	}
	assert.Equal(t, 1, repo.listCalls, "repeat listings should hit the cache")

	_, err = svc.CreateHospital(context.Background(), "Regional Health Center")
	require.NoError(t, err)

	hospitals, err := svc.ListHospitals(context.Background())
	require.NoError(t, err)
	assert.Len(t, hospitals, 2)
	assert.Equal(t, 2, repo.listCalls, "create should invalidate the cached listing")
}
