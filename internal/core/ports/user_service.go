package ports

import (
	"context"

	"github.com/peopledesk/identity-api/internal/core/domain"
)

type UserService interface {
	// ImportUsers validates the drafts in input order and commits the staged
	// subset atomically. Per-record failures are absorbed into the result; a
	// commit failure escalates as domain.ErrStoreFailure.
	ImportUsers(ctx context.Context, drafts []domain.UserDraft) (domain.BatchImportResult, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Generate(count int) []domain.UserDraft
}
