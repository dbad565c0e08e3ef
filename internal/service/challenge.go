package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/shootit/greme/internal/errs"
	"github.com/shootit/greme/internal/model"
)

// ChallengeService handles challenge participation: listing, joining,
// leaving, and the profile/detail views built on top of it.
type ChallengeService struct {
	logger         *zerolog.Logger
	tx             TxManager
	users          UserStore
	challenges     ChallengeStore
	challengeUsers ChallengeUserStore
	challengePosts ChallengePostStore
	posts          PostStore
	notifier       JoinNotifier
}

// NewChallengeService wires a ChallengeService. notifier may be nil,
// which disables join notifications.
func NewChallengeService(
	logger *zerolog.Logger,
	tx TxManager,
	users UserStore,
	challenges ChallengeStore,
	challengeUsers ChallengeUserStore,
	challengePosts ChallengePostStore,
	posts PostStore,
	notifier JoinNotifier,
) *ChallengeService {
	return &ChallengeService{
		logger:         logger,
		tx:             tx,
		users:          users,
		challenges:     challenges,
		challengeUsers: challengeUsers,
		challengePosts: challengePosts,
		posts:          posts,
		notifier:       notifier,
	}
}

// RecentPostLimit is how many recent posts a profile view carries.
const RecentPostLimit = 6

// ListChallenges returns every challenge annotated with the user's
// participation. Fails with UserNotFound when the id does not resolve.
func (s *ChallengeService) ListChallenges(ctx context.Context, userID int64) ([]model.ChallengeSummary, error) {
	var summaries []model.ChallengeSummary

	err := s.tx.RunInReadOnlyTx(ctx, func(ctx context.Context) error {
		exists, err := s.users.ExistsByID(ctx, userID)
		if err != nil {
			return err
		}
		if !exists {
			return errs.NewUserNotFound()
		}

		summaries, err = s.challengeUsers.Summaries(ctx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

// ListJoinedChallenges returns the challenges the user joined, most
// recently joined first.
func (s *ChallengeService) ListJoinedChallenges(ctx context.Context, userID int64) ([]model.ChallengeSummary, error) {
	var summaries []model.ChallengeSummary

	err := s.tx.RunInReadOnlyTx(ctx, func(ctx context.Context) error {
		exists, err := s.users.ExistsByID(ctx, userID)
		if err != nil {
			return err
		}
		if !exists {
			return errs.NewUserNotFound()
		}

		summaries, err = s.challengeUsers.JoinedSummaries(ctx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

// AddChallenge joins the caller to a challenge.
//
// The join row is written with one atomic insert backed by a unique
// constraint, so concurrent duplicate joins cannot both succeed; the
// loser fails with ChallengeAlreadyJoined exactly like a sequential
// duplicate.
func (s *ChallengeService) AddChallenge(ctx context.Context, caller model.Identity, challengeID int64) error {
	var (
		user    *model.User
		summary *model.ChallengeSummary
	)

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		user, err = resolveUser(ctx, s.users, caller)
		if err != nil {
			return err
		}

		summary, err = s.challenges.FindSummaryByID(ctx, challengeID, user.ID)
		if err != nil {
			return err
		}
		if summary == nil {
			return errs.NewChallengeNotFound()
		}

		inserted, err := s.challengeUsers.Add(ctx, challengeID, user.ID)
		if err != nil {
			return err
		}
		if !inserted {
			return errs.NewChallengeAlreadyJoined()
		}
		return nil
	})
	if err != nil {
		return err
	}

	// The notification is best-effort and must not undo a committed join.
	if s.notifier != nil {
		if err := s.notifier.NotifyChallengeJoined(ctx, user.Email, user.Username, summary.Title); err != nil {
			s.logger.Warn().Err(err).
				Int64("challenge_id", challengeID).
				Int64("user_id", user.ID).
				Msg("failed to enqueue challenge joined notification")
		}
	}

	return nil
}

// DeleteChallenge removes the caller's participation in a challenge.
// Leaving a challenge that was never joined is a silent no-op.
func (s *ChallengeService) DeleteChallenge(ctx context.Context, caller model.Identity, challengeID int64) error {
	return s.tx.RunInTx(ctx, func(ctx context.Context) error {
		user, err := resolveUser(ctx, s.users, caller)
		if err != nil {
			return err
		}
		return s.challengeUsers.Delete(ctx, challengeID, user.ID)
	})
}

// JoinedChallengeTitles returns the titles of every challenge the
// caller joined.
func (s *ChallengeService) JoinedChallengeTitles(ctx context.Context, caller model.Identity) ([]model.ChallengeTitle, error) {
	var titles []model.ChallengeTitle

	err := s.tx.RunInReadOnlyTx(ctx, func(ctx context.Context) error {
		user, err := resolveUser(ctx, s.users, caller)
		if err != nil {
			return err
		}

		titles, err = s.challengeUsers.JoinedTitles(ctx, user.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return titles, nil
}

// UserProfile assembles the target user's profile view: display fields,
// the challenges joined this month, and the most recent posts.
func (s *ChallengeService) UserProfile(ctx context.Context, caller model.Identity, targetUserID int64) (*model.ProfileView, error) {
	var profile *model.ProfileView

	err := s.tx.RunInReadOnlyTx(ctx, func(ctx context.Context) error {
		if _, err := resolveUser(ctx, s.users, caller); err != nil {
			return err
		}

		target, err := resolveUser(ctx, s.users, model.IdentityByID(targetUserID))
		if err != nil {
			return err
		}

		challenges, err := s.challengeUsers.RecentJoinedSummaries(ctx, target.ID)
		if err != nil {
			return err
		}

		recentPosts, err := s.posts.RecentByUser(ctx, target.ID, RecentPostLimit)
		if err != nil {
			return err
		}

		profile = &model.ProfileView{
			ProfileImage: target.ProfileImage,
			Username:     target.Username,
			Challenges:   challenges,
			RecentPosts:  recentPosts,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// ChallengeDetail assembles one challenge page for the caller: whether
// they participate, the post gallery, and the challenge summary.
func (s *ChallengeService) ChallengeDetail(ctx context.Context, caller model.Identity, challengeID int64) (*model.ChallengeDetail, error) {
	var detail *model.ChallengeDetail

	err := s.tx.RunInReadOnlyTx(ctx, func(ctx context.Context) error {
		user, err := resolveUser(ctx, s.users, caller)
		if err != nil {
			return err
		}

		summary, err := s.challenges.FindSummaryByID(ctx, challengeID, user.ID)
		if err != nil {
			return err
		}
		if summary == nil {
			return errs.NewChallengeNotFound()
		}

		gallery, err := s.challengePosts.GalleryByChallengeID(ctx, challengeID)
		if err != nil {
			return err
		}

		detail = &model.ChallengeDetail{
			Joined:  summary.Joined,
			Gallery: gallery,
			Summary: *summary,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return detail, nil
}
