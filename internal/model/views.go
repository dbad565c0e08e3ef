package model

import "time"

// ChallengeSummary is the read model for a challenge as seen by one user:
// the challenge itself plus aggregate participation info.
type ChallengeSummary struct {
	ID               int64  `json:"id"`
	Title            string `json:"title"`
	ParticipantCount int64  `json:"participant_count"`
	Joined           bool   `json:"joined"`
}

// ChallengeTitle is a minimal (id, title) pair for joined-challenge lists.
type ChallengeTitle struct {
	ChallengeID int64  `json:"challenge_id"`
	Title       string `json:"title"`
}

// PostThumb is the (post id, image) pair used by galleries, profile
// grids, and the monthly archive.
type PostThumb struct {
	ID    int64  `json:"id"`
	Image string `json:"image"`
}

// PostMonthRow is one archive row as returned by the post store:
// the post thumb plus its "YYYY-MM" creation month key. Rows arrive
// newest-first; the service folds them into ordered month buckets.
type PostMonthRow struct {
	Month string `json:"month"`
	ID    int64  `json:"id"`
	Image string `json:"image"`
}

// MonthlyPosts is one archive bucket: a month key and the posts created
// in that month, in the order they were scanned.
type MonthlyPosts struct {
	Month string      `json:"month"`
	Posts []PostThumb `json:"posts"`
}

// ProfileView assembles a user's public profile: identity display
// fields, the challenges joined in the current period, and the most
// recent posts.
type ProfileView struct {
	ProfileImage string             `json:"profile_image"`
	Username     string             `json:"username"`
	Challenges   []ChallengeSummary `json:"challenges"`
	RecentPosts  []PostThumb        `json:"recent_posts"`
}

// ChallengeDetail assembles one challenge page: whether the caller
// participates, the challenge's post gallery, and its summary.
type ChallengeDetail struct {
	Joined  bool             `json:"joined"`
	Gallery []PostThumb      `json:"gallery"`
	Summary ChallengeSummary `json:"summary"`
}

// PostDetail is the single-post display view.
type PostDetail struct {
	Username        string    `json:"username"`
	Image           string    `json:"image"`
	Content         string    `json:"content"`
	Hashtag         string    `json:"hashtag"`
	CreatedAt       time.Time `json:"created_at"`
	ChallengeTitles []string  `json:"challenge_titles"`
}
