package service

import (
	"context"

	"github.com/shootit/greme/internal/model"
)

// The store interfaces below are the persistence contracts the services
// consume. The concrete implementations live in the repository package;
// tests substitute in-memory fakes.

// UserStore resolves user identities. Lookups return nil (not an error)
// when no row matches.
type UserStore interface {
	ExistsByID(ctx context.Context, id int64) (bool, error)
	FindByID(ctx context.Context, id int64) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

// ChallengeStore reads challenge campaigns.
type ChallengeStore interface {
	FindAllByIDs(ctx context.Context, ids []int64) ([]model.Challenge, error)
	FindSummaryByID(ctx context.Context, challengeID, userID int64) (*model.ChallengeSummary, error)
}

// ChallengeUserStore persists participation join rows and serves the
// user-scoped challenge read models.
type ChallengeUserStore interface {
	Add(ctx context.Context, challengeID, userID int64) (bool, error)
	Delete(ctx context.Context, challengeID, userID int64) error
	Exists(ctx context.Context, challengeID, userID int64) (bool, error)
	Summaries(ctx context.Context, userID int64) ([]model.ChallengeSummary, error)
	JoinedSummaries(ctx context.Context, userID int64) ([]model.ChallengeSummary, error)
	RecentJoinedSummaries(ctx context.Context, userID int64) ([]model.ChallengeSummary, error)
	JoinedTitles(ctx context.Context, userID int64) ([]model.ChallengeTitle, error)
}

// ChallengePostStore persists post-to-challenge links and serves the
// gallery and title read models.
type ChallengePostStore interface {
	SaveAll(ctx context.Context, postID int64, challengeIDs []int64) error
	DeleteByPostID(ctx context.Context, postID int64) error
	TitlesByPostID(ctx context.Context, postID int64) ([]string, error)
	GalleryByChallengeID(ctx context.Context, challengeID int64) ([]model.PostThumb, error)
}

// PostStore persists diary posts and serves the post read models.
type PostStore interface {
	Save(ctx context.Context, post *model.Post) error
	Update(ctx context.Context, post *model.Post) error
	FindByID(ctx context.Context, id int64) (*model.Post, error)
	DeleteByIDAndUser(ctx context.Context, id, userID int64) error
	ImageByID(ctx context.Context, id int64) (string, error)
	RecentByUser(ctx context.Context, userID int64, limit int) ([]model.PostThumb, error)
	MonthRowsByUser(ctx context.Context, userID int64) ([]model.PostMonthRow, error)
}

// ImageCache caches post image references. Implementations must treat
// every method as best-effort; a cold or unavailable cache is a miss.
type ImageCache interface {
	GetImageURL(ctx context.Context, postID int64) (string, bool)
	SetImageURL(ctx context.Context, postID int64, image string)
	InvalidateImageURL(ctx context.Context, postID int64)
}

// JoinNotifier delivers the challenge-joined notification, typically by
// enqueuing a background email task.
type JoinNotifier interface {
	NotifyChallengeJoined(ctx context.Context, email, username, challengeTitle string) error
}
