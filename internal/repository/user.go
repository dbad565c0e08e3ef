package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/shootit/greme/internal/database"
	"github.com/shootit/greme/internal/model"
)

// UserRepository reads user accounts. Account creation and mutation live
// outside this service.
type UserRepository struct {
	db *database.Database
}

func NewUserRepository(db *database.Database) *UserRepository {
	return &UserRepository{db: db}
}

// ExistsByID reports whether a user with the given id exists.
func (r *UserRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`

	var exists bool
	if err := r.db.Querier(ctx).QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// FindByID returns the user with the given id, or nil when absent.
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*model.User, error) {
	const query = `
		SELECT id, email, username, profile_image, created_at
		FROM users
		WHERE id = $1`

	return r.scanOne(r.db.Querier(ctx).QueryRow(ctx, query, id))
}

// FindByEmail returns the user with the given email, or nil when absent.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	const query = `
		SELECT id, email, username, profile_image, created_at
		FROM users
		WHERE email = $1`

	return r.scanOne(r.db.Querier(ctx).QueryRow(ctx, query, email))
}

func (r *UserRepository) scanOne(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Email, &u.Username, &u.ProfileImage, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
