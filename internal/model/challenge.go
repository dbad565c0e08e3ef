package model

import "time"

// Challenge is a named campaign users can join and submit posts against.
// The services treat challenges as immutable; only existence and title
// matter here.
type Challenge struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

// ChallengeUser is the join record of a user's participation in a
// challenge. Rows are unique per (challenge, user); the database enforces
// this with a unique constraint.
type ChallengeUser struct {
	ID          int64     `json:"id"`
	ChallengeID int64     `json:"challenge_id"`
	UserID      int64     `json:"user_id"`
	JoinedAt    time.Time `json:"joined_at"`
}

// ChallengePost links a post to a challenge it was submitted under.
// The full set for a post is rewritten whenever the post is updated.
type ChallengePost struct {
	ID          int64 `json:"id"`
	ChallengeID int64 `json:"challenge_id"`
	PostID      int64 `json:"post_id"`
}
