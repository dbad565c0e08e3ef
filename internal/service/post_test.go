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

func newPostService(
	users *fakeUsers,
	challenges *fakeChallenges,
	challengePosts *fakeChallengePosts,
	posts *fakePosts,
	images ImageCache,
) *PostService {
	logger := zerolog.Nop()
	return NewPostService(&logger, passTx{}, users, challenges, challengePosts, posts, images)
}

func TestCreatePost(t *testing.T) {
	challenges := newFakeChallenges(
		model.Challenge{ID: 10, Title: "30 days of running"},
		model.Challenge{ID: 11, Title: "daily sketching"},
	)
	challengePosts := newFakeChallengePosts()
	posts := newFakePosts()
	svc := newPostService(newFakeUsers(alice), challenges, challengePosts, posts, nil)

	post, err := svc.Create(context.Background(), CreatePostInput{
		Content:      "day one",
		Hashtag:      "#running",
		Visible:      true,
		ChallengeIDs: []int64{10, 11},
	}, []string{"a.png", "b.png"}, model.IdentityByEmail(alice.Email))
	require.NoError(t, err)

	assert.NotZero(t, post.ID)
	assert.Equal(t, alice.ID, post.UserID)

	// Only the first uploaded file name is stored.
	assert.Equal(t, "a.png", post.Image)

	assert.ElementsMatch(t, []int64{10, 11}, challengePosts.links[post.ID])
}

func TestCreatePostSkipsUnknownChallenges(t *testing.T) {
	challenges := newFakeChallenges(model.Challenge{ID: 10, Title: "30 days of running"})
	challengePosts := newFakeChallengePosts()
	svc := newPostService(newFakeUsers(alice), challenges, challengePosts, newFakePosts(), nil)

	post, err := svc.Create(context.Background(), CreatePostInput{
		Content:      "day one",
		ChallengeIDs: []int64{10, 42},
	}, nil, model.IdentityByID(alice.ID))
	require.NoError(t, err)

	assert.Equal(t, []int64{10}, challengePosts.links[post.ID])
	assert.Empty(t, post.Image)
}

func TestCreatePostUnknownUser(t *testing.T) {
	posts := newFakePosts()
	svc := newPostService(newFakeUsers(), newFakeChallenges(), newFakeChallengePosts(), posts, nil)

	_, err := svc.Create(context.Background(), CreatePostInput{Content: "day one"}, nil, model.IdentityByEmail("ghost@example.com"))
	assertErrCode(t, err, errs.CodeUserNotFound)
	assert.Empty(t, posts.byID)
}

func TestShowPost(t *testing.T) {
	posts := newFakePosts(&model.Post{ID: 5, UserID: alice.ID, Content: "day one", Hashtag: "#running", Image: "a.png"})
	challengePosts := newFakeChallengePosts()
	challengePosts.titles[5] = []string{"30 days of running", "daily sketching"}
	svc := newPostService(newFakeUsers(alice), newFakeChallenges(), challengePosts, posts, nil)

	detail, err := svc.ShowPost(context.Background(), model.IdentityByID(alice.ID), 5)
	require.NoError(t, err)

	assert.Equal(t, alice.Username, detail.Username)
	assert.Equal(t, "day one", detail.Content)
	assert.Equal(t, []string{"30 days of running", "daily sketching"}, detail.ChallengeTitles)
}

func TestShowPostUnknownPost(t *testing.T) {
	svc := newPostService(newFakeUsers(alice), newFakeChallenges(), newFakeChallengePosts(), newFakePosts(), nil)

	_, err := svc.ShowPost(context.Background(), model.IdentityByID(alice.ID), 99)
	assertErrCode(t, err, errs.CodePostNotFound)
}

func TestUpdateReplacesChallengeLinks(t *testing.T) {
	challenges := newFakeChallenges(
		model.Challenge{ID: 10, Title: "30 days of running"},
		model.Challenge{ID: 11, Title: "daily sketching"},
		model.Challenge{ID: 12, Title: "morning pages"},
	)
	challengePosts := newFakeChallengePosts()
	challengePosts.links[5] = []int64{10, 11}

	posts := newFakePosts(&model.Post{ID: 5, UserID: alice.ID, Content: "day one", Image: "a.png"})
	svc := newPostService(newFakeUsers(alice), challenges, challengePosts, posts, nil)

	err := svc.Update(context.Background(), UpdatePostInput{
		PostID:       5,
		Content:      "day two",
		Hashtag:      "#pages",
		Visible:      true,
		ChallengeIDs: []int64{11, 12},
	}, nil, model.IdentityByID(alice.ID))
	require.NoError(t, err)

	// The link set is replaced exactly, not merged.
	assert.ElementsMatch(t, []int64{11, 12}, challengePosts.links[5])

	updated, err := posts.FindByID(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "day two", updated.Content)
	assert.Equal(t, "#pages", updated.Hashtag)
	assert.True(t, updated.Visible)

	// No new file names supplied, so the stored image is untouched.
	assert.Equal(t, "a.png", updated.Image)
}

func TestUpdateReplacesImageWhenSupplied(t *testing.T) {
	posts := newFakePosts(&model.Post{ID: 5, UserID: alice.ID, Image: "a.png"})
	svc := newPostService(newFakeUsers(alice), newFakeChallenges(), newFakeChallengePosts(), posts, nil)

	err := svc.Update(context.Background(), UpdatePostInput{PostID: 5, Content: "day two"}, []string{"new.png"}, model.IdentityByID(alice.ID))
	require.NoError(t, err)

	updated, err := posts.FindByID(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "new.png", updated.Image)
}

func TestUpdateUnknownPost(t *testing.T) {
	svc := newPostService(newFakeUsers(alice), newFakeChallenges(), newFakeChallengePosts(), newFakePosts(), nil)

	err := svc.Update(context.Background(), UpdatePostInput{PostID: 99, Content: "x"}, nil, model.IdentityByID(alice.ID))
	assertErrCode(t, err, errs.CodePostNotFound)
}

func TestUpdateInvalidatesImageCache(t *testing.T) {
	posts := newFakePosts(&model.Post{ID: 5, UserID: alice.ID, Image: "a.png"})
	cache := newFakeImageCache()
	cache.entries[5] = "a.png"
	svc := newPostService(newFakeUsers(alice), newFakeChallenges(), newFakeChallengePosts(), posts, cache)

	err := svc.Update(context.Background(), UpdatePostInput{PostID: 5, Content: "x"}, []string{"new.png"}, model.IdentityByID(alice.ID))
	require.NoError(t, err)

	assert.Contains(t, cache.invalidations, int64(5))
	_, ok := cache.entries[5]
	assert.False(t, ok)
}

func TestImageURLReadThrough(t *testing.T) {
	posts := newFakePosts(&model.Post{ID: 5, UserID: alice.ID, Image: "a.png"})
	cache := newFakeImageCache()
	svc := newPostService(newFakeUsers(alice), newFakeChallenges(), newFakeChallengePosts(), posts, cache)

	image, err := svc.ImageURL(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "a.png", image)

	// Second read is served from the cache.
	assert.Equal(t, "a.png", cache.entries[5])
}

func TestImageURLMissing(t *testing.T) {
	svc := newPostService(newFakeUsers(alice), newFakeChallenges(), newFakeChallengePosts(), newFakePosts(), nil)

	_, err := svc.ImageURL(context.Background(), 99)
	assertErrCode(t, err, errs.CodePostImageNotFound)
}

func TestDeleteScopedToOwner(t *testing.T) {
	posts := newFakePosts(&model.Post{ID: 5, UserID: bob.ID, Image: "b.png"})
	svc := newPostService(newFakeUsers(alice, bob), newFakeChallenges(), newFakeChallengePosts(), posts, nil)

	// Alice deleting Bob's post is a silent no-op.
	err := svc.Delete(context.Background(), model.IdentityByID(alice.ID), 5)
	require.NoError(t, err)

	remaining, err := posts.FindByID(context.Background(), 5)
	require.NoError(t, err)
	assert.NotNil(t, remaining)

	// Bob deleting his own post removes it.
	require.NoError(t, svc.Delete(context.Background(), model.IdentityByID(bob.ID), 5))

	gone, err := posts.FindByID(context.Background(), 5)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestMonthlyArchiveGroupsInFirstSeenOrder(t *testing.T) {
	posts := newFakePosts()
	posts.monthRows = []model.PostMonthRow{
		{Month: "2024-02", ID: 9, Image: "i9.png"},
		{Month: "2024-02", ID: 8, Image: "i8.png"},
		{Month: "2024-01", ID: 7, Image: "i7.png"},
		{Month: "2024-01", ID: 5, Image: "i5.png"},
	}
	svc := newPostService(newFakeUsers(alice), newFakeChallenges(), newFakeChallengePosts(), posts, nil)

	archive, err := svc.MonthlyArchive(context.Background(), model.IdentityByID(alice.ID))
	require.NoError(t, err)

	require.Len(t, archive, 2)
	assert.Equal(t, "2024-02", archive[0].Month)
	assert.Equal(t, []model.PostThumb{{ID: 9, Image: "i9.png"}, {ID: 8, Image: "i8.png"}}, archive[0].Posts)
	assert.Equal(t, "2024-01", archive[1].Month)
	assert.Equal(t, []model.PostThumb{{ID: 7, Image: "i7.png"}, {ID: 5, Image: "i5.png"}}, archive[1].Posts)
}

func TestGroupByMonthEmpty(t *testing.T) {
	assert.Empty(t, groupByMonth(nil))
}
