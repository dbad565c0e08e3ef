package repository

import (
	"context"

	"github.com/shootit/greme/internal/database"
	"github.com/shootit/greme/internal/model"
)

// ChallengeUserRepository persists challenge participation join rows and
// serves the challenge read models scoped to a user.
type ChallengeUserRepository struct {
	db *database.Database
}

func NewChallengeUserRepository(db *database.Database) *ChallengeUserRepository {
	return &ChallengeUserRepository{db: db}
}

// Add inserts a join row for (challenge, user) in one atomic statement.
// It returns false when the row already existed; the unique constraint
// decides, not a separate existence check, so concurrent duplicate joins
// cannot both succeed.
func (r *ChallengeUserRepository) Add(ctx context.Context, challengeID, userID int64) (bool, error) {
	const query = `
		INSERT INTO challenge_users (challenge_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT ON CONSTRAINT unique_challenge_users_challenge_user DO NOTHING`

	tag, err := r.db.Querier(ctx).Exec(ctx, query, challengeID, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// Delete removes the join row for (challenge, user). Deleting a row that
// does not exist is a no-op.
func (r *ChallengeUserRepository) Delete(ctx context.Context, challengeID, userID int64) error {
	const query = `DELETE FROM challenge_users WHERE challenge_id = $1 AND user_id = $2`

	_, err := r.db.Querier(ctx).Exec(ctx, query, challengeID, userID)
	return err
}

// Exists reports whether the user participates in the challenge.
func (r *ChallengeUserRepository) Exists(ctx context.Context, challengeID, userID int64) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM challenge_users WHERE challenge_id = $1 AND user_id = $2
		)`

	var exists bool
	if err := r.db.Querier(ctx).QueryRow(ctx, query, challengeID, userID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// Summaries returns every challenge annotated with the user's
// participation and the participant count.
func (r *ChallengeUserRepository) Summaries(ctx context.Context, userID int64) ([]model.ChallengeSummary, error) {
	const query = `
		SELECT c.id, c.title,
			(SELECT count(*) FROM challenge_users cu WHERE cu.challenge_id = c.id) AS participant_count,
			EXISTS (SELECT 1 FROM challenge_users cu WHERE cu.challenge_id = c.id AND cu.user_id = $1) AS joined
		FROM challenges c
		ORDER BY c.id`

	return r.querySummaries(ctx, query, userID)
}

// JoinedSummaries returns the challenges the user joined, most recently
// joined first.
func (r *ChallengeUserRepository) JoinedSummaries(ctx context.Context, userID int64) ([]model.ChallengeSummary, error) {
	const query = `
		SELECT c.id, c.title,
			(SELECT count(*) FROM challenge_users x WHERE x.challenge_id = c.id) AS participant_count,
			TRUE AS joined
		FROM challenges c
		JOIN challenge_users cu ON cu.challenge_id = c.id
		WHERE cu.user_id = $1
		ORDER BY cu.joined_at DESC`

	return r.querySummaries(ctx, query, userID)
}

// RecentJoinedSummaries returns the challenges the user joined during
// the current calendar month, most recently joined first.
func (r *ChallengeUserRepository) RecentJoinedSummaries(ctx context.Context, userID int64) ([]model.ChallengeSummary, error) {
	const query = `
		SELECT c.id, c.title,
			(SELECT count(*) FROM challenge_users x WHERE x.challenge_id = c.id) AS participant_count,
			TRUE AS joined
		FROM challenges c
		JOIN challenge_users cu ON cu.challenge_id = c.id
		WHERE cu.user_id = $1
		  AND date_trunc('month', cu.joined_at) = date_trunc('month', now())
		ORDER BY cu.joined_at DESC`

	return r.querySummaries(ctx, query, userID)
}

// JoinedTitles returns the (id, title) pairs of the user's joined
// challenges, most recently joined first.
func (r *ChallengeUserRepository) JoinedTitles(ctx context.Context, userID int64) ([]model.ChallengeTitle, error) {
	const query = `
		SELECT c.id, c.title
		FROM challenges c
		JOIN challenge_users cu ON cu.challenge_id = c.id
		WHERE cu.user_id = $1
		ORDER BY cu.joined_at DESC`

	rows, err := r.db.Querier(ctx).Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var titles []model.ChallengeTitle
	for rows.Next() {
		var t model.ChallengeTitle
		if err := rows.Scan(&t.ChallengeID, &t.Title); err != nil {
			return nil, err
		}
		titles = append(titles, t)
	}
	return titles, rows.Err()
}

func (r *ChallengeUserRepository) querySummaries(ctx context.Context, query string, userID int64) ([]model.ChallengeSummary, error) {
	rows, err := r.db.Querier(ctx).Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []model.ChallengeSummary
	for rows.Next() {
		var s model.ChallengeSummary
		if err := rows.Scan(&s.ID, &s.Title, &s.ParticipantCount, &s.Joined); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}
