package handler

import (
	"strconv"
	"strings"

	"github.com/acquisitions/user-api/internal/core/domain"
)

// updateUserRequest is a partial update: every field is optional, but the
// request as a whole must carry at least one (checked by validateNotEmpty,
// since struct tags cannot express that constraint).
type updateUserRequest struct {
	Username *string `json:"username" validate:"omitempty,min=3,max=255"`
	Email    *string `json:"email"    validate:"omitempty,email,max=255"`
	Password *string `json:"password" validate:"omitempty,min=6,max=128"`
	Role     *string `json:"role"     validate:"omitempty,oneof=user admin"`
}

func (r *updateUserRequest) normalize() {
	if r.Username != nil {
		trimmed := strings.TrimSpace(*r.Username)
		r.Username = &trimmed
	}
	if r.Email != nil {
		lowered := strings.ToLower(strings.TrimSpace(*r.Email))
		r.Email = &lowered
	}
}

func (r *updateUserRequest) validateNotEmpty() *ValidationError {
	if r.Username == nil && r.Email == nil && r.Password == nil && r.Role == nil {
		return newFieldValidationError("body", "At least one field must be provided for update")
	}
	return nil
}

// parseUserID coerces the :id route parameter to a positive integer.
func parseUserID(raw string) (int64, *ValidationError) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, newFieldValidationError("id", "User ID must be a positive integer")
	}
	return id, nil
}

type userResponse struct {
	Message string       `json:"message"`
	User    *domain.User `json:"user"`
}

type listUsersResponse struct {
	Message string        `json:"message"`
	Users   []domain.User `json:"users"`
	Count   int           `json:"count"`
}

type deleteUserResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}
