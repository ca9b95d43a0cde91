package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"

	"github.com/acquisitions/user-api/internal/core/domain"
	"github.com/acquisitions/user-api/internal/core/ports"
)

const usersTable = "users"

// projection is the column set returned to callers; it never includes the
// password hash.
var projection = []string{"id", "username", "email", "role", "created_at", "updated_at"}

// UserRepository is the PostgreSQL-backed implementation of
// ports.UserRepository.
type UserRepository struct {
	db  *sql.DB
	sb  sq.StatementBuilderType
	log zerolog.Logger
}

func NewUserRepository(db *sql.DB, log zerolog.Logger) *UserRepository {
	return &UserRepository{
		db:  db,
		sb:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		log: log,
	}
}

func (r *UserRepository) FindAll(ctx context.Context) ([]domain.User, error) {
	query, args, err := r.sb.Select(projection...).From(usersTable).OrderBy("id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("find all users: build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("find all users: %w", err)
	}
	defer rows.Close()

	// Non-nil so an empty table renders as [] in JSON, not null.
	users := make([]domain.User, 0)
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("find all users: scan: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("find all users: rows: %w", err)
	}

	return users, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	query, args, err := r.sb.Select(projection...).From(usersTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("find user by id: build query: %w", err)
	}

	var u domain.User
	err = r.db.QueryRowContext(ctx, query, args...).
		Scan(&u.ID, &u.Username, &u.Email, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user by id %d: %w", id, err)
	}

	return &u, nil
}

// FindByEmail is the only read that includes the password hash; it backs
// sign-in verification and the sign-up uniqueness pre-check.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	query, args, err := r.sb.
		Select("id", "username", "email", "password", "role", "created_at", "updated_at").
		From(usersTable).
		Where(sq.Eq{"email": email}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("find user by email: build query: %w", err)
	}

	var u domain.User
	err = r.db.QueryRowContext(ctx, query, args...).
		Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}

	return &u, nil
}

// Create inserts the user and returns the canonical row with server-assigned
// fields. A unique_violation raised by the email constraint is reported as
// domain.ErrEmailExists, which keeps the conflict observable even when two
// sign-ups race past the service-level pre-check.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	query, args, err := r.sb.
		Insert(usersTable).
		Columns("username", "email", "password", "role").
		Values(user.Username, user.Email, user.PasswordHash, user.Role).
		Suffix("RETURNING id, username, email, role, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("create user: build query: %w", err)
	}

	var created domain.User
	err = r.db.QueryRowContext(ctx, query, args...).
		Scan(&created.ID, &created.Username, &created.Email, &created.Role, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrEmailExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	r.log.Debug().Int64("user_id", created.ID).Msg("user row inserted")
	return &created, nil
}

// Update merges the provided fields into the row, always refreshing
// updated_at, and returns the new projection.
func (r *UserRepository) Update(ctx context.Context, id int64, fields ports.UpdateUserFields) (*domain.User, error) {
	builder := r.sb.Update(usersTable).Set("updated_at", sq.Expr("now()"))
	if fields.Username != nil {
		builder = builder.Set("username", *fields.Username)
	}
	if fields.Email != nil {
		builder = builder.Set("email", *fields.Email)
	}
	if fields.PasswordHash != nil {
		builder = builder.Set("password", *fields.PasswordHash)
	}
	if fields.Role != nil {
		builder = builder.Set("role", *fields.Role)
	}

	query, args, err := builder.
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING id, username, email, role, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("update user: build query: %w", err)
	}

	var updated domain.User
	err = r.db.QueryRowContext(ctx, query, args...).
		Scan(&updated.ID, &updated.Username, &updated.Email, &updated.Role, &updated.CreatedAt, &updated.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrEmailExists
		}
		return nil, fmt.Errorf("update user %d: %w", id, err)
	}

	return &updated, nil
}

// Delete permanently removes the row. Deleting an absent id reports
// domain.ErrUserNotFound, never a silent success.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := r.sb.Delete(usersTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("delete user: build query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete user %d: rows affected: %w", id, err)
	}
	if affected == 0 {
		return domain.ErrUserNotFound
	}

	r.log.Debug().Int64("user_id", id).Msg("user row deleted")
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
