package ports

import (
	"context"

	"github.com/acquisitions/user-api/internal/core/domain"
)

// UpdateUserFields is the repository-level partial update. All values are
// already normalized and the password, when present, is a hash.
type UpdateUserFields struct {
	Username     *string
	Email        *string
	PasswordHash *string
	Role         *string
}

// UserRepository defines persistence for user accounts.
//
// Sentinel error contract:
//   - FindByID / FindByEmail / Update / Delete → domain.ErrUserNotFound when
//     no row matches.
//   - Create / Update → domain.ErrEmailExists on an email uniqueness
//     conflict, including one raised by the store's UNIQUE constraint.
type UserRepository interface {
	FindAll(ctx context.Context) ([]domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	// FindByEmail returns the user including its password hash; it backs the
	// sign-in verification and the sign-up pre-check.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, id int64, fields UpdateUserFields) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
}
