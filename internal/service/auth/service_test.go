package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/anesthesia-api/internal/model"
	"github.com/jwalitptl/anesthesia-api/pkg/auth"
	apperrors "github.com/jwalitptl/anesthesia-api/pkg/errors"
	"github.com/jwalitptl/anesthesia-api/pkg/security"
)

type mockPractitionerRepo struct {
	byEmail map[string]*model.Practitioner
	byID    map[uuid.UUID]*model.Practitioner
}

func newMockPractitionerRepo() *mockPractitionerRepo {
	return &mockPractitionerRepo{
		byEmail: make(map[string]*model.Practitioner),
		byID:    make(map[uuid.UUID]*model.Practitioner),
	}
}

func (m *mockPractitionerRepo) Create(_ context.Context, p *model.Practitioner) error {
	m.byEmail[p.Email] = p
	m.byID[p.ID] = p
	return nil
}

func (m *mockPractitionerRepo) Get(_ context.Context, id uuid.UUID) (*model.Practitioner, error) {
	p, ok := m.byID[id]
	if !ok {
		return nil, apperrors.NotFound("practitioner", nil)
	}
	return p, nil
}

func (m *mockPractitionerRepo) GetByEmail(_ context.Context, email string) (*model.Practitioner, error) {
	p, ok := m.byEmail[email]
	if !ok {
		return nil, apperrors.NotFound("practitioner", nil)
	}
	return p, nil
}

func newTestService(t *testing.T) (*Service, *mockPractitionerRepo) {
	t.Helper()
	repo := newMockPractitionerRepo()
	hasher := security.NewBcryptHasher(4)
	hash, err := hasher.Hash("password123")
	require.NoError(t, err)

	repo.Create(context.Background(), &model.Practitioner{
		ID:           uuid.New(),
		Email:        "doctor@example.com",
		PasswordHash: hash,
		FullName:     "Dr. John Smith",
	})

	jwtSvc := auth.NewJWTService("test-secret", 30*time.Minute)
	return NewService(repo, jwtSvc, hasher), repo
}

func TestLoginThenResolve(t *testing.T) {
	svc, repo := newTestService(t)

	tokens, err := svc.Login(context.Background(), "doctor@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "bearer", tokens.TokenType)
	require.NotEmpty(t, tokens.AccessToken)

	claims, err := svc.Resolve(context.Background(), tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "doctor@example.com", claims.Email)
	assert.Equal(t, repo.byEmail["doctor@example.com"].ID, claims.PractitionerID)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Login(context.Background(), "doctor@example.com", "wrong-password")
	assert.ErrorIs(t, err, apperrors.InvalidCredentials())
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _ := newTestService(t)

	_, errUnknown := svc.Login(context.Background(), "nobody@example.com", "password123")
	_, errWrongPass := svc.Login(context.Background(), "doctor@example.com", "wrong-password")

	require.Error(t, errUnknown)
	require.Error(t, errWrongPass)
	// Both failure modes must be indistinguishable to the caller.
	assert.Equal(t, errUnknown.Error(), errWrongPass.Error())
}

func TestResolve_ExpiredToken(t *testing.T) {
	repo := newMockPractitionerRepo()
	hasher := security.NewBcryptHasher(4)
	expiredJWT := auth.NewJWTService("test-secret", -time.Minute)
	svc := NewService(repo, expiredJWT, hasher)

	token, err := expiredJWT.GenerateAccessToken(uuid.New(), "doctor@example.com")
	require.NoError(t, err)

	_, err = svc.Resolve(context.Background(), token)
	assert.ErrorIs(t, err, apperrors.Unauthorized(nil))
}

func TestResolve_GarbageToken(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Resolve(context.Background(), "garbage")
	assert.ErrorIs(t, err, apperrors.Unauthorized(nil))
}
