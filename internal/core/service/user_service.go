package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/peopledesk/identity-api/internal/core/domain"
	"github.com/peopledesk/identity-api/internal/core/ports"
)

const (
	passwordMinLen = 6
	passwordMaxLen = 10
)

// ProfileCache abstracts the read-through profile cache (Redis). A nil lookup
// result with a nil error means "not cached".
type ProfileCache interface {
	Get(ctx context.Context, username string) (*domain.User, error)
	Set(ctx context.Context, user *domain.User) error
}

// UserService implements bulk import and profile lookups.
type UserService struct {
	repo     ports.UserRepository
	cache    ProfileCache
	validate *validator.Validate
	log      zerolog.Logger
}

// NewUserService returns a UserService. cache may be nil, in which case every
// lookup hits the repository.
func NewUserService(repo ports.UserRepository, cache ProfileCache, log zerolog.Logger) *UserService {
	return &UserService{
		repo:     repo,
		cache:    cache,
		validate: validator.New(),
		log:      log,
	}
}

// ImportUsers runs the two-phase import contract.
//
// Validation pass, in input order, independently per record: a record fails on
// the first violated rule (email already stored, username already stored,
// collision with a record staged earlier in this batch, password length
// outside [6,10], malformed fields) and later rules are not evaluated for it.
// A failing record never aborts the batch. Survivors have their password
// replaced with its bcrypt hash and are staged.
//
// Commit pass: the staged set is persisted in one transactional CreateAll.
// If the commit fails, nothing is persisted and the whole call fails with
// ErrStoreFailure; validation failures recorded so far are unaffected.
func (s *UserService) ImportUsers(ctx context.Context, drafts []domain.UserDraft) (domain.BatchImportResult, error) {
	total := len(drafts)
	staged := make([]*domain.User, 0, total)
	stagedUsernames := make(map[string]struct{}, total)
	stagedEmails := make(map[string]struct{}, total)

	for _, draft := range drafts {
		user, err := s.validateDraft(ctx, draft, stagedUsernames, stagedEmails)
		if err != nil {
			s.log.Warn().Err(err).Str("username", draft.Username).Msg("import record rejected")
			continue
		}
		staged = append(staged, user)
		stagedUsernames[user.Username] = struct{}{}
		stagedEmails[user.Email] = struct{}{}
	}

	if len(staged) > 0 {
		if _, err := s.repo.CreateAll(ctx, staged); err != nil {
			s.log.Error().Err(err).Int("staged", len(staged)).Msg("import commit failed")
			return domain.BatchImportResult{}, fmt.Errorf("%w: %v", domain.ErrStoreFailure, err)
		}
	}

	result := domain.BatchImportResult{
		Total:   total,
		Success: len(staged),
		Failure: total - len(staged),
	}
	s.log.Info().
		Int("total", result.Total).
		Int("success", result.Success).
		Int("failure", result.Failure).
		Msg("user batch imported")
	return result, nil
}

// validateDraft checks one record against the import rules and, on success,
// returns the hashed, store-ready user.
func (s *UserService) validateDraft(ctx context.Context, draft domain.UserDraft, stagedUsernames, stagedEmails map[string]struct{}) (*domain.User, error) {
	exists, err := s.repo.ExistsByEmail(ctx, draft.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: email %q", domain.ErrUserExists, draft.Email)
	}
	if _, dup := stagedEmails[draft.Email]; dup {
		return nil, fmt.Errorf("%w: email %q staged earlier in batch", domain.ErrUserExists, draft.Email)
	}

	exists, err = s.repo.ExistsByUsername(ctx, draft.Username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: username %q", domain.ErrUserExists, draft.Username)
	}
	if _, dup := stagedUsernames[draft.Username]; dup {
		return nil, fmt.Errorf("%w: username %q staged earlier in batch", domain.ErrUserExists, draft.Username)
	}

	if l := len(draft.Password); l < passwordMinLen || l > passwordMaxLen {
		return nil, fmt.Errorf("%w: password must be between %d and %d characters", domain.ErrValidation, passwordMinLen, passwordMaxLen)
	}

	if err := s.validate.Struct(draft); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(draft.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	return &domain.User{
		FirstName:    draft.FirstName,
		LastName:     draft.LastName,
		BirthDate:    draft.BirthDate,
		City:         draft.City,
		Country:      draft.Country,
		Avatar:       draft.Avatar,
		Company:      draft.Company,
		JobPosition:  draft.JobPosition,
		Mobile:       draft.Mobile,
		Username:     draft.Username,
		Email:        draft.Email,
		PasswordHash: string(hash),
		Role:         draft.Role,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// GetByUsername returns the stored identity, consulting the profile cache
// first. Cache errors are logged and fall through to the repository.
func (s *UserService) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, username)
		if err != nil {
			s.log.Warn().Err(err).Str("username", username).Msg("profile cache read failed")
		} else if cached != nil {
			return cached, nil
		}
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, user); err != nil {
			s.log.Warn().Err(err).Str("username", username).Msg("profile cache write failed")
		}
	}
	return user, nil
}
