package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/shootit/greme/internal/database"
	"github.com/shootit/greme/internal/model"
)

// PostRepository persists diary posts and serves the post read models.
type PostRepository struct {
	db *database.Database
}

func NewPostRepository(db *database.Database) *PostRepository {
	return &PostRepository{db: db}
}

// Save inserts the post and fills in its generated id and creation time.
func (r *PostRepository) Save(ctx context.Context, post *model.Post) error {
	const query = `
		INSERT INTO posts (user_id, content, hashtag, image, visible)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	return r.db.Querier(ctx).
		QueryRow(ctx, query, post.UserID, post.Content, post.Hashtag, post.Image, post.Visible).
		Scan(&post.ID, &post.CreatedAt)
}

// Update persists the post's mutable fields in place.
func (r *PostRepository) Update(ctx context.Context, post *model.Post) error {
	const query = `
		UPDATE posts
		SET content = $2, hashtag = $3, image = $4, visible = $5
		WHERE id = $1`

	_, err := r.db.Querier(ctx).Exec(ctx, query,
		post.ID, post.Content, post.Hashtag, post.Image, post.Visible)
	return err
}

// FindByID returns the post with the given id, or nil when absent.
func (r *PostRepository) FindByID(ctx context.Context, id int64) (*model.Post, error) {
	const query = `
		SELECT id, user_id, content, hashtag, image, visible, created_at
		FROM posts
		WHERE id = $1`

	var p model.Post
	err := r.db.Querier(ctx).QueryRow(ctx, query, id).
		Scan(&p.ID, &p.UserID, &p.Content, &p.Hashtag, &p.Image, &p.Visible, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// DeleteByIDAndUser deletes the post only when it is owned by userID.
// A foreign or unknown id matches nothing and is a no-op.
func (r *PostRepository) DeleteByIDAndUser(ctx context.Context, id, userID int64) error {
	const query = `DELETE FROM posts WHERE id = $1 AND user_id = $2`

	_, err := r.db.Querier(ctx).Exec(ctx, query, id, userID)
	return err
}

// ImageByID returns the post's stored image reference. Both a missing
// post and a post without an image yield an empty string.
func (r *PostRepository) ImageByID(ctx context.Context, id int64) (string, error) {
	const query = `SELECT image FROM posts WHERE id = $1`

	var image string
	err := r.db.Querier(ctx).QueryRow(ctx, query, id).Scan(&image)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return image, nil
}

// RecentByUser returns the user's newest posts as (id, image) pairs,
// capped at limit.
func (r *PostRepository) RecentByUser(ctx context.Context, userID int64, limit int) ([]model.PostThumb, error) {
	const query = `
		SELECT id, image
		FROM posts
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`

	rows, err := r.db.Querier(ctx).Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var thumbs []model.PostThumb
	for rows.Next() {
		var t model.PostThumb
		if err := rows.Scan(&t.ID, &t.Image); err != nil {
			return nil, err
		}
		thumbs = append(thumbs, t)
	}
	return thumbs, rows.Err()
}

// MonthRowsByUser returns every post of the user newest-first, each row
// keyed with its "YYYY-MM" creation month.
func (r *PostRepository) MonthRowsByUser(ctx context.Context, userID int64) ([]model.PostMonthRow, error) {
	const query = `
		SELECT to_char(created_at, 'YYYY-MM') AS created_month, id, image
		FROM posts
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC`

	rows, err := r.db.Querier(ctx).Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var monthRows []model.PostMonthRow
	for rows.Next() {
		var mr model.PostMonthRow
		if err := rows.Scan(&mr.Month, &mr.ID, &mr.Image); err != nil {
			return nil, err
		}
		monthRows = append(monthRows, mr)
	}
	return monthRows, rows.Err()
}
