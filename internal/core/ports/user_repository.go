package ports

import (
	"context"

	"github.com/peopledesk/identity-api/internal/core/domain"
)

// UserRepository is the credential store gateway: the only persistence surface
// the identity core talks to.
type UserRepository interface {
	// FindByHandle locates a user by username or email (case-sensitive as stored).
	FindByHandle(ctx context.Context, handle string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// CreateAll persists the given users as a single transactional unit:
	// either every record lands or none does.
	CreateAll(ctx context.Context, users []*domain.User) ([]*domain.User, error)
}
