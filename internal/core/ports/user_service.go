package ports

import (
	"context"

	"github.com/acquisitions/user-api/internal/core/domain"
)

// UpdateUserInput is a partial update: nil fields are left untouched.
// Password is plaintext at this boundary and hashed by the service.
type UpdateUserInput struct {
	Username *string
	Email    *string
	Password *string
	Role     *string
}

// Empty reports whether the update carries no fields at all.
func (in UpdateUserInput) Empty() bool {
	return in.Username == nil && in.Email == nil && in.Password == nil && in.Role == nil
}

type UserService interface {
	List(ctx context.Context) ([]domain.User, error)
	Get(ctx context.Context, id int64) (*domain.User, error)
	// Update applies the authorization policy for actor before merging the
	// provided fields into the target user.
	Update(ctx context.Context, actor *domain.Actor, id int64, in UpdateUserInput) (*domain.User, error)
	// Delete applies the authorization policy for actor before permanently
	// removing the target user.
	Delete(ctx context.Context, actor *domain.Actor, id int64) error
}
