package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/acquisitions/user-api/internal/core/domain"
	"github.com/acquisitions/user-api/internal/core/ports"
)

// UserService implements user CRUD with the mutation authorization policy
// applied before any write reaches the repository.
type UserService struct {
	repo ports.UserRepository
	log  zerolog.Logger
}

func NewUserService(repo ports.UserRepository, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, log: log}
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.FindAll(ctx)
}

func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

// Update authorizes the mutation, hashes a new password when one is provided,
// and merges the remaining fields. The repository refreshes updated_at.
func (s *UserService) Update(ctx context.Context, actor *domain.Actor, id int64, in ports.UpdateUserInput) (*domain.User, error) {
	if err := domain.AuthorizeUserMutation(actor, domain.UserMutation{
		TargetID:    id,
		ChangesRole: in.Role != nil,
	}); err != nil {
		return nil, err
	}

	// No fields, no write. The transport layer rejects empty updates before
	// they get here, but callers of the service are not all HTTP handlers.
	if in.Empty() {
		return s.repo.FindByID(ctx, id)
	}

	fields := ports.UpdateUserFields{
		Username: in.Username,
		Email:    in.Email,
		Role:     in.Role,
	}
	if in.Password != nil {
		hash, err := HashPassword(*in.Password)
		if err != nil {
			return nil, fmt.Errorf("update user %d: %w", id, err)
		}
		fields.PasswordHash = &hash
	}

	updated, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("user_id", id).Int64("actor_id", actor.ID).Msg("user updated")
	return updated, nil
}

// Delete authorizes the mutation and permanently removes the user.
func (s *UserService) Delete(ctx context.Context, actor *domain.Actor, id int64) error {
	if err := domain.AuthorizeUserMutation(actor, domain.UserMutation{TargetID: id}); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info().Int64("user_id", id).Int64("actor_id", actor.ID).Msg("user deleted")
	return nil
}
