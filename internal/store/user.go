package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/attendance-api/internal/domain"
)

// UserStore defines persistence for users. Every method except
// GetByIDIncludingDeleted treats soft-deleted rows as absent.
type UserStore interface {
	// Create inserts the user. The ID and creation timestamps are set by the caller
	// (see domain.NewUser) and the stored values are written back into user.
	// Returns ErrEmailExists if the email is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a live user.
	// Returns ErrUserNotFound if the user never existed or has been deleted.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a live user by exact email match.
	// Returns ErrUserNotFound if no live user has the email.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// GetByIDIncludingDeleted retrieves a user regardless of its soft-delete marker.
	// It exists for audit paths and must not back any public read.
	GetByIDIncludingDeleted(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// List returns all live users ordered by creation time.
	List(ctx context.Context) ([]*domain.User, error)

	// Update applies the patch in a single statement and refreshes updated_at,
	// even when the patch is empty.
	// Returns ErrUserNotFound if no live user has the ID.
	// Returns ErrEmailExists if the new email is already taken.
	Update(ctx context.Context, id uuid.UUID, patch domain.UserPatch) (*domain.User, error)

	// Delete soft-deletes a live user. Deleting twice is not idempotent: the
	// second call returns ErrUserNotFound.
	Delete(ctx context.Context, id uuid.UUID) error
}
