package repository

import (
	"context"

	"github.com/shootit/greme/internal/database"
	"github.com/shootit/greme/internal/model"
)

// ChallengePostRepository persists post-to-challenge links and serves
// the challenge gallery and post title read models.
type ChallengePostRepository struct {
	db *database.Database
}

func NewChallengePostRepository(db *database.Database) *ChallengePostRepository {
	return &ChallengePostRepository{db: db}
}

// SaveAll links a post to every challenge in challengeIDs with a single
// statement. An empty slice is a no-op.
func (r *ChallengePostRepository) SaveAll(ctx context.Context, postID int64, challengeIDs []int64) error {
	if len(challengeIDs) == 0 {
		return nil
	}

	const query = `
		INSERT INTO challenge_posts (challenge_id, post_id)
		SELECT challenge_id, $2
		FROM unnest($1::bigint[]) AS challenge_id`

	_, err := r.db.Querier(ctx).Exec(ctx, query, challengeIDs, postID)
	return err
}

// DeleteByPostID removes every challenge link for the post. Callers
// replace a post's links by deleting then re-inserting inside one
// transaction.
func (r *ChallengePostRepository) DeleteByPostID(ctx context.Context, postID int64) error {
	const query = `DELETE FROM challenge_posts WHERE post_id = $1`

	_, err := r.db.Querier(ctx).Exec(ctx, query, postID)
	return err
}

// TitlesByPostID returns the titles of every challenge the post was
// submitted under, ordered by challenge id.
func (r *ChallengePostRepository) TitlesByPostID(ctx context.Context, postID int64) ([]string, error) {
	const query = `
		SELECT c.title
		FROM challenge_posts cp
		JOIN challenges c ON c.id = cp.challenge_id
		WHERE cp.post_id = $1
		ORDER BY c.id`

	rows, err := r.db.Querier(ctx).Query(ctx, query, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var titles []string
	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			return nil, err
		}
		titles = append(titles, title)
	}
	return titles, rows.Err()
}

// GalleryByChallengeID returns the (post id, image) pairs of visible
// posts submitted under the challenge, newest first.
func (r *ChallengePostRepository) GalleryByChallengeID(ctx context.Context, challengeID int64) ([]model.PostThumb, error) {
	const query = `
		SELECT p.id, p.image
		FROM challenge_posts cp
		JOIN posts p ON p.id = cp.post_id
		WHERE cp.challenge_id = $1 AND p.visible
		ORDER BY p.created_at DESC, p.id DESC`

	rows, err := r.db.Querier(ctx).Query(ctx, query, challengeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var gallery []model.PostThumb
	for rows.Next() {
		var t model.PostThumb
		if err := rows.Scan(&t.ID, &t.Image); err != nil {
			return nil, err
		}
		gallery = append(gallery, t)
	}
	return gallery, rows.Err()
}
