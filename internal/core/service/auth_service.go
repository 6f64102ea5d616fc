package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/peopledesk/identity-api/internal/core/domain"
	"github.com/peopledesk/identity-api/internal/core/ports"
)

// AuthService verifies credential pairs and issues access tokens. It is
// stateless: no session is created between requests.
type AuthService struct {
	repo   ports.UserRepository
	tokens *TokenService
	log    zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, tokens *TokenService, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, log: log}
}

// Login resolves the handle as either username or email and checks the raw
// password against the stored bcrypt hash. A missing identity and a wrong
// password produce the same ErrInvalidCredentials, so callers cannot probe
// which usernames exist.
func (s *AuthService) Login(ctx context.Context, handle, password string) (string, error) {
	if handle == "" || password == "" {
		return "", domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByHandle(ctx, handle)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Sign(user)
	if err != nil {
		return "", err
	}

	s.log.Info().Str("username", user.Username).Str("role", user.Role).Msg("user authenticated")
	return token, nil
}
