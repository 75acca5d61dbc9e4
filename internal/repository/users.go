package repository

import (
	"context"

	"github.com/campus-dev/job-board/backend/internal/domain"
)

const userNotFound = "user not found"

func (r *Repository) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `
		SELECT username, password_hash, email, real_name, is_admin, is_teacher, created_at, version
		FROM users WHERE id = $1
	`

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	user := &domain.User{
		ID: id,
	}

	dst := []any{&user.Username, &user.PasswordHash, &user.Email, &user.RealName, &user.IsAdmin, &user.IsTeacher, &user.CreatedAt, &user.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, translate(err, userNotFound)
	}

	return user, nil
}

func (r *Repository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `
		SELECT id, password_hash, email, real_name, is_admin, is_teacher, created_at, version
		FROM users WHERE username = $1
	`

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	user := &domain.User{
		Username: username,
	}

	dst := []any{&user.ID, &user.PasswordHash, &user.Email, &user.RealName, &user.IsAdmin, &user.IsTeacher, &user.CreatedAt, &user.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, username).Scan(dst...); err != nil {
		return nil, translate(err, userNotFound)
	}

	return user, nil
}

// UpdateUserPassword only succeeds when the stored version still equals user.Version.
// A concurrent change surfaces as not found.
func (r *Repository) UpdateUserPassword(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users
		SET
			password_hash = $1,
			version = version + 1
		WHERE id = $2 AND version = $3
		RETURNING version
	`

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if err := r.dbpool.QueryRowContext(ctx, query, user.PasswordHash, user.ID, user.Version).Scan(&user.Version); err != nil {
		return translate(err, userNotFound)
	}

	return nil
}

// UpdateUser writes the profile fields. is_admin and the password are left alone.
// Like UpdateUserPassword it is guarded by user.Version.
func (r *Repository) UpdateUser(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users
		SET
			email = $1,
			real_name = $2,
			is_teacher = $3,
			version = version + 1
		WHERE id = $4 AND version = $5
		RETURNING username, is_admin, created_at, version
	`

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	args := []any{user.Email, user.RealName, user.IsTeacher, user.ID, user.Version}
	dst := []any{&user.Username, &user.IsAdmin, &user.CreatedAt, &user.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		return translate(err, userNotFound)
	}

	return nil
}

func (r *Repository) GetAllUsers(ctx context.Context) ([]*domain.User, error) {
	query := `
		SELECT id, username, password_hash, email, real_name, is_admin, is_teacher, created_at, version
		FROM users ORDER BY id
	`

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, translate(err, userNotFound)
	}
	defer rows.Close()

	users := make([]*domain.User, 0)
	for rows.Next() {
		user := &domain.User{}
		dst := []any{&user.ID, &user.Username, &user.PasswordHash, &user.Email, &user.RealName, &user.IsAdmin, &user.IsTeacher, &user.CreatedAt, &user.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, translate(err, userNotFound)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, translate(err, userNotFound)
	}

	return users, nil
}

func (r *Repository) DeleteUser(ctx context.Context, id int64) error {
	query := `
		DELETE FROM users WHERE id = $1
	`

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return translate(err, userNotFound)
	}

	return expectAffected(res, userNotFound)
}

func (r *Repository) CreateUser(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (username, password_hash, email, real_name, is_admin, is_teacher)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, version
	`

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	args := []any{user.Username, user.PasswordHash, user.Email, user.RealName, user.IsAdmin, user.IsTeacher}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&user.ID, &user.CreatedAt, &user.Version); err != nil {
		return translate(err, userNotFound)
	}

	return nil
}
