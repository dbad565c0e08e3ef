package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shootit/greme/internal/errs"
	"github.com/shootit/greme/internal/model"
)

func newChallengeService(
	users *fakeUsers,
	challenges *fakeChallenges,
	challengeUsers *fakeChallengeUsers,
	challengePosts *fakeChallengePosts,
	posts *fakePosts,
	notifier JoinNotifier,
) *ChallengeService {
	logger := zerolog.Nop()
	return NewChallengeService(&logger, passTx{}, users, challenges, challengeUsers, challengePosts, posts, notifier)
}

func assertErrCode(t *testing.T, err error, code string) {
	t.Helper()

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, code, httpErr.Code)
}

var (
	alice = &model.User{ID: 1, Email: "alice@example.com", Username: "alice"}
	bob   = &model.User{ID: 2, Email: "bob@example.com", Username: "bob", ProfileImage: "bob.png"}
)

func TestListChallengesUnknownUser(t *testing.T) {
	svc := newChallengeService(newFakeUsers(), newFakeChallenges(), newFakeChallengeUsers(), newFakeChallengePosts(), newFakePosts(), nil)

	_, err := svc.ListChallenges(context.Background(), 99)
	assertErrCode(t, err, errs.CodeUserNotFound)
}

func TestListChallenges(t *testing.T) {
	challengeUsers := newFakeChallengeUsers()
	challengeUsers.summaries = []model.ChallengeSummary{
		{ID: 10, Title: "30 days of running", ParticipantCount: 3, Joined: true},
		{ID: 11, Title: "daily sketching", ParticipantCount: 1},
	}
	svc := newChallengeService(newFakeUsers(alice), newFakeChallenges(), challengeUsers, newFakeChallengePosts(), newFakePosts(), nil)

	summaries, err := svc.ListChallenges(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.Equal(t, challengeUsers.summaries, summaries)
}

func TestAddChallenge(t *testing.T) {
	challenges := newFakeChallenges(model.Challenge{ID: 10, Title: "30 days of running"})
	challengeUsers := newFakeChallengeUsers()
	notifier := &fakeNotifier{}
	svc := newChallengeService(newFakeUsers(alice), challenges, challengeUsers, newFakeChallengePosts(), newFakePosts(), notifier)

	err := svc.AddChallenge(context.Background(), model.IdentityByEmail(alice.Email), 10)
	require.NoError(t, err)

	joined, err := challengeUsers.Exists(context.Background(), 10, alice.ID)
	require.NoError(t, err)
	assert.True(t, joined)

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, notification{alice.Email, alice.Username, "30 days of running"}, notifier.sent[0])
}

func TestAddChallengeDuplicate(t *testing.T) {
	challenges := newFakeChallenges(model.Challenge{ID: 10, Title: "30 days of running"})
	challengeUsers := newFakeChallengeUsers()
	svc := newChallengeService(newFakeUsers(alice), challenges, challengeUsers, newFakeChallengePosts(), newFakePosts(), nil)

	require.NoError(t, svc.AddChallenge(context.Background(), model.IdentityByID(alice.ID), 10))

	err := svc.AddChallenge(context.Background(), model.IdentityByID(alice.ID), 10)
	assertErrCode(t, err, errs.CodeChallengeAlreadyJoined)
}

func TestAddChallengeUnknownChallenge(t *testing.T) {
	svc := newChallengeService(newFakeUsers(alice), newFakeChallenges(), newFakeChallengeUsers(), newFakeChallengePosts(), newFakePosts(), nil)

	err := svc.AddChallenge(context.Background(), model.IdentityByID(alice.ID), 42)
	assertErrCode(t, err, errs.CodeChallengeNotFound)
}

func TestAddChallengeUnknownUser(t *testing.T) {
	challenges := newFakeChallenges(model.Challenge{ID: 10, Title: "30 days of running"})
	challengeUsers := newFakeChallengeUsers()
	svc := newChallengeService(newFakeUsers(), challenges, challengeUsers, newFakeChallengePosts(), newFakePosts(), nil)

	err := svc.AddChallenge(context.Background(), model.IdentityByEmail("ghost@example.com"), 10)
	assertErrCode(t, err, errs.CodeUserNotFound)

	// Precondition failed before any write.
	assert.Empty(t, challengeUsers.joins)
}

func TestAddChallengeNotifierFailureDoesNotFailJoin(t *testing.T) {
	challenges := newFakeChallenges(model.Challenge{ID: 10, Title: "30 days of running"})
	challengeUsers := newFakeChallengeUsers()
	notifier := &fakeNotifier{err: assert.AnError}
	svc := newChallengeService(newFakeUsers(alice), challenges, challengeUsers, newFakeChallengePosts(), newFakePosts(), notifier)

	err := svc.AddChallenge(context.Background(), model.IdentityByID(alice.ID), 10)
	require.NoError(t, err)

	joined, err := challengeUsers.Exists(context.Background(), 10, alice.ID)
	require.NoError(t, err)
	assert.True(t, joined)
}

func TestDeleteChallengeNeverJoinedIsNoOp(t *testing.T) {
	svc := newChallengeService(newFakeUsers(alice), newFakeChallenges(), newFakeChallengeUsers(), newFakeChallengePosts(), newFakePosts(), nil)

	err := svc.DeleteChallenge(context.Background(), model.IdentityByID(alice.ID), 10)
	assert.NoError(t, err)
}

func TestDeleteChallengeRemovesJoin(t *testing.T) {
	challenges := newFakeChallenges(model.Challenge{ID: 10, Title: "30 days of running"})
	challengeUsers := newFakeChallengeUsers()
	svc := newChallengeService(newFakeUsers(alice), challenges, challengeUsers, newFakeChallengePosts(), newFakePosts(), nil)

	require.NoError(t, svc.AddChallenge(context.Background(), model.IdentityByID(alice.ID), 10))
	require.NoError(t, svc.DeleteChallenge(context.Background(), model.IdentityByID(alice.ID), 10))

	joined, err := challengeUsers.Exists(context.Background(), 10, alice.ID)
	require.NoError(t, err)
	assert.False(t, joined)
}

func TestJoinedChallengeTitles(t *testing.T) {
	challengeUsers := newFakeChallengeUsers()
	challengeUsers.joinedTitles = []model.ChallengeTitle{
		{ChallengeID: 10, Title: "30 days of running"},
		{ChallengeID: 11, Title: "daily sketching"},
	}
	svc := newChallengeService(newFakeUsers(alice), newFakeChallenges(), challengeUsers, newFakeChallengePosts(), newFakePosts(), nil)

	titles, err := svc.JoinedChallengeTitles(context.Background(), model.IdentityByEmail(alice.Email))
	require.NoError(t, err)
	assert.Equal(t, challengeUsers.joinedTitles, titles)
}

func TestUserProfileUsesTargetDisplayFields(t *testing.T) {
	challengeUsers := newFakeChallengeUsers()
	challengeUsers.recentSummaries = []model.ChallengeSummary{{ID: 10, Title: "30 days of running", Joined: true}}

	posts := newFakePosts()
	posts.recent = []model.PostThumb{{ID: 5, Image: "run.png"}}

	svc := newChallengeService(newFakeUsers(alice, bob), newFakeChallenges(), challengeUsers, newFakeChallengePosts(), posts, nil)

	profile, err := svc.UserProfile(context.Background(), model.IdentityByID(alice.ID), bob.ID)
	require.NoError(t, err)

	assert.Equal(t, bob.Username, profile.Username)
	assert.Equal(t, bob.ProfileImage, profile.ProfileImage)
	assert.Equal(t, challengeUsers.recentSummaries, profile.Challenges)
	assert.Equal(t, posts.recent, profile.RecentPosts)
}

func TestUserProfileUnknownTarget(t *testing.T) {
	svc := newChallengeService(newFakeUsers(alice), newFakeChallenges(), newFakeChallengeUsers(), newFakeChallengePosts(), newFakePosts(), nil)

	_, err := svc.UserProfile(context.Background(), model.IdentityByID(alice.ID), 99)
	assertErrCode(t, err, errs.CodeUserNotFound)
}

func TestChallengeDetail(t *testing.T) {
	challenges := newFakeChallenges(model.Challenge{ID: 10, Title: "30 days of running"})
	challenges.joined[10] = true

	challengePosts := newFakeChallengePosts()
	challengePosts.gallery[10] = []model.PostThumb{{ID: 5, Image: "run.png"}, {ID: 4, Image: "walk.png"}}

	svc := newChallengeService(newFakeUsers(alice), challenges, newFakeChallengeUsers(), challengePosts, newFakePosts(), nil)

	detail, err := svc.ChallengeDetail(context.Background(), model.IdentityByID(alice.ID), 10)
	require.NoError(t, err)

	assert.True(t, detail.Joined)
	assert.Equal(t, challengePosts.gallery[10], detail.Gallery)
	assert.Equal(t, "30 days of running", detail.Summary.Title)
}

func TestChallengeDetailUnknownChallenge(t *testing.T) {
	svc := newChallengeService(newFakeUsers(alice), newFakeChallenges(), newFakeChallengeUsers(), newFakeChallengePosts(), newFakePosts(), nil)

	_, err := svc.ChallengeDetail(context.Background(), model.IdentityByID(alice.ID), 42)
	assertErrCode(t, err, errs.CodeChallengeNotFound)
}
