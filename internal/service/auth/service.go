package auth

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/anesthesia-api/internal/model"
	"github.com/jwalitptl/anesthesia-api/internal/repository"
	"github.com/jwalitptl/anesthesia-api/pkg/auth"
	apperrors "github.com/jwalitptl/anesthesia-api/pkg/errors"
	"github.com/jwalitptl/anesthesia-api/pkg/security"
)

type Service struct {
	practitionerRepo repository.PractitionerRepository
	jwtSvc           auth.JWTService
	hasher           security.PasswordHasher
}

func NewService(practitionerRepo repository.PractitionerRepository, jwtSvc auth.JWTService, hasher security.PasswordHasher) *Service {
	return &Service{
		practitionerRepo: practitionerRepo,
		jwtSvc:           jwtSvc,
		hasher:           hasher,
	}
}

// Login verifies the credentials and issues a bearer token. Unknown email
// and wrong password collapse into the same InvalidCredentials failure.
func (s *Service) Login(ctx context.Context, email, password string) (*model.TokenResponse, error) {
	practitioner, err := s.practitionerRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.InvalidCredentials()
	}

	if err := s.hasher.Compare(practitioner.PasswordHash, password); err != nil {
		return nil, apperrors.InvalidCredentials()
	}

	token, err := s.jwtSvc.GenerateAccessToken(practitioner.ID, practitioner.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &model.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	}, nil
}

// Resolve validates a bearer token and returns the identity it encodes.
// Expired and malformed tokens are logged distinctly but both surface as
// Unauthorized.
func (s *Service) Resolve(ctx context.Context, token string) (*auth.Claims, error) {
	claims, err := s.jwtSvc.ValidateToken(token)
	if err != nil {
		log.Debug().Err(err).Msg("token validation failed")
		return nil, apperrors.Unauthorized(err)
	}
	return claims, nil
}

// GetPractitioner loads the full practitioner record for a resolved
// identity.
func (s *Service) GetPractitioner(ctx context.Context, claims *auth.Claims) (*model.Practitioner, error) {
	practitioner, err := s.practitionerRepo.Get(ctx, claims.PractitionerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load practitioner: %w", err)
	}
	return practitioner, nil
}
