package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/shootit/greme/internal/database"
	"github.com/shootit/greme/internal/model"
)

// ChallengeRepository reads challenge campaigns. Challenges are managed
// elsewhere; the services only look them up.
type ChallengeRepository struct {
	db *database.Database
}

func NewChallengeRepository(db *database.Database) *ChallengeRepository {
	return &ChallengeRepository{db: db}
}

// FindAllByIDs returns the challenges matching ids, ordered by id.
// Unknown ids are silently skipped, so the result may be shorter than
// the input.
func (r *ChallengeRepository) FindAllByIDs(ctx context.Context, ids []int64) ([]model.Challenge, error) {
	const query = `
		SELECT id, title, created_at
		FROM challenges
		WHERE id = ANY($1)
		ORDER BY id`

	rows, err := r.db.Querier(ctx).Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var challenges []model.Challenge
	for rows.Next() {
		var c model.Challenge
		if err := rows.Scan(&c.ID, &c.Title, &c.CreatedAt); err != nil {
			return nil, err
		}
		challenges = append(challenges, c)
	}
	return challenges, rows.Err()
}

// FindSummaryByID returns the summary for one challenge, annotated with
// the given user's participation. Returns nil when the challenge does
// not exist.
func (r *ChallengeRepository) FindSummaryByID(ctx context.Context, challengeID, userID int64) (*model.ChallengeSummary, error) {
	const query = `
		SELECT c.id, c.title,
			(SELECT count(*) FROM challenge_users cu WHERE cu.challenge_id = c.id) AS participant_count,
			EXISTS (SELECT 1 FROM challenge_users cu WHERE cu.challenge_id = c.id AND cu.user_id = $2) AS joined
		FROM challenges c
		WHERE c.id = $1`

	var s model.ChallengeSummary
	err := r.db.Querier(ctx).QueryRow(ctx, query, challengeID, userID).
		Scan(&s.ID, &s.Title, &s.ParticipantCount, &s.Joined)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}
