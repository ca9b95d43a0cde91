package ports

import (
	"context"

	"github.com/acquisitions/user-api/internal/core/domain"
)

// SignUpInput carries an already-validated sign-up payload. Password is
// plaintext at this boundary; the service is responsible for hashing it.
type SignUpInput struct {
	Username string
	Email    string
	Password string
	Role     string // empty → domain.RoleUser
}

type AuthService interface {
	// SignUp creates the account and returns it together with a signed
	// session token for the new user.
	SignUp(ctx context.Context, in SignUpInput) (*domain.User, string, error)
	// SignIn verifies the credentials and returns the user and a signed
	// session token.
	SignIn(ctx context.Context, email, password string) (*domain.User, string, error)
}
