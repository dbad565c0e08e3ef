package service

import (
	"context"
	"time"

	"github.com/shootit/greme/internal/model"
)

// passTx runs service callbacks directly; transaction semantics are the
// database package's concern and are not under test here.
type passTx struct{}

func (passTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (passTx) RunInReadOnlyTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeUsers struct {
	byID map[int64]*model.User
}

func newFakeUsers(users ...*model.User) *fakeUsers {
	f := &fakeUsers{byID: make(map[int64]*model.User)}
	for _, u := range users {
		f.byID[u.ID] = u
	}
	return f
}

func (f *fakeUsers) ExistsByID(_ context.Context, id int64) (bool, error) {
	_, ok := f.byID[id]
	return ok, nil
}

func (f *fakeUsers) FindByID(_ context.Context, id int64) (*model.User, error) {
	return f.byID[id], nil
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

type fakeChallenges struct {
	byID   map[int64]model.Challenge
	joined map[int64]bool
}

func newFakeChallenges(challenges ...model.Challenge) *fakeChallenges {
	f := &fakeChallenges{
		byID:   make(map[int64]model.Challenge),
		joined: make(map[int64]bool),
	}
	for _, c := range challenges {
		f.byID[c.ID] = c
	}
	return f
}

func (f *fakeChallenges) FindAllByIDs(_ context.Context, ids []int64) ([]model.Challenge, error) {
	var out []model.Challenge
	for _, id := range ids {
		if c, ok := f.byID[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeChallenges) FindSummaryByID(_ context.Context, challengeID, _ int64) (*model.ChallengeSummary, error) {
	c, ok := f.byID[challengeID]
	if !ok {
		return nil, nil
	}
	return &model.ChallengeSummary{
		ID:     c.ID,
		Title:  c.Title,
		Joined: f.joined[challengeID],
	}, nil
}

type joinKey struct {
	challengeID int64
	userID      int64
}

type fakeChallengeUsers struct {
	joins map[joinKey]bool

	summaries       []model.ChallengeSummary
	joinedSummaries []model.ChallengeSummary
	recentSummaries []model.ChallengeSummary
	joinedTitles    []model.ChallengeTitle
}

func newFakeChallengeUsers() *fakeChallengeUsers {
	return &fakeChallengeUsers{joins: make(map[joinKey]bool)}
}

func (f *fakeChallengeUsers) Add(_ context.Context, challengeID, userID int64) (bool, error) {
	k := joinKey{challengeID, userID}
	if f.joins[k] {
		return false, nil
	}
	f.joins[k] = true
	return true, nil
}

func (f *fakeChallengeUsers) Delete(_ context.Context, challengeID, userID int64) error {
	delete(f.joins, joinKey{challengeID, userID})
	return nil
}

func (f *fakeChallengeUsers) Exists(_ context.Context, challengeID, userID int64) (bool, error) {
	return f.joins[joinKey{challengeID, userID}], nil
}

func (f *fakeChallengeUsers) Summaries(_ context.Context, _ int64) ([]model.ChallengeSummary, error) {
	return f.summaries, nil
}

func (f *fakeChallengeUsers) JoinedSummaries(_ context.Context, _ int64) ([]model.ChallengeSummary, error) {
	return f.joinedSummaries, nil
}

func (f *fakeChallengeUsers) RecentJoinedSummaries(_ context.Context, _ int64) ([]model.ChallengeSummary, error) {
	return f.recentSummaries, nil
}

func (f *fakeChallengeUsers) JoinedTitles(_ context.Context, _ int64) ([]model.ChallengeTitle, error) {
	return f.joinedTitles, nil
}

type fakeChallengePosts struct {
	links   map[int64][]int64
	titles  map[int64][]string
	gallery map[int64][]model.PostThumb
}

func newFakeChallengePosts() *fakeChallengePosts {
	return &fakeChallengePosts{
		links:   make(map[int64][]int64),
		titles:  make(map[int64][]string),
		gallery: make(map[int64][]model.PostThumb),
	}
}

func (f *fakeChallengePosts) SaveAll(_ context.Context, postID int64, challengeIDs []int64) error {
	f.links[postID] = append(f.links[postID], challengeIDs...)
	return nil
}

func (f *fakeChallengePosts) DeleteByPostID(_ context.Context, postID int64) error {
	delete(f.links, postID)
	return nil
}

func (f *fakeChallengePosts) TitlesByPostID(_ context.Context, postID int64) ([]string, error) {
	return f.titles[postID], nil
}

func (f *fakeChallengePosts) GalleryByChallengeID(_ context.Context, challengeID int64) ([]model.PostThumb, error) {
	return f.gallery[challengeID], nil
}

type fakePosts struct {
	byID   map[int64]*model.Post
	nextID int64

	recent    []model.PostThumb
	monthRows []model.PostMonthRow
}

func newFakePosts(posts ...*model.Post) *fakePosts {
	f := &fakePosts{byID: make(map[int64]*model.Post), nextID: 1}
	for _, p := range posts {
		f.byID[p.ID] = p
		if p.ID >= f.nextID {
			f.nextID = p.ID + 1
		}
	}
	return f
}

func (f *fakePosts) Save(_ context.Context, post *model.Post) error {
	post.ID = f.nextID
	post.CreatedAt = time.Now()
	f.nextID++

	stored := *post
	f.byID[post.ID] = &stored
	return nil
}

func (f *fakePosts) Update(_ context.Context, post *model.Post) error {
	stored := *post
	f.byID[post.ID] = &stored
	return nil
}

func (f *fakePosts) FindByID(_ context.Context, id int64) (*model.Post, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	copied := *p
	return &copied, nil
}

func (f *fakePosts) DeleteByIDAndUser(_ context.Context, id, userID int64) error {
	if p, ok := f.byID[id]; ok && p.UserID == userID {
		delete(f.byID, id)
	}
	return nil
}

func (f *fakePosts) ImageByID(_ context.Context, id int64) (string, error) {
	if p, ok := f.byID[id]; ok {
		return p.Image, nil
	}
	return "", nil
}

func (f *fakePosts) RecentByUser(_ context.Context, _ int64, _ int) ([]model.PostThumb, error) {
	return f.recent, nil
}

func (f *fakePosts) MonthRowsByUser(_ context.Context, _ int64) ([]model.PostMonthRow, error) {
	return f.monthRows, nil
}

type fakeImageCache struct {
	entries       map[int64]string
	invalidations []int64
}

func newFakeImageCache() *fakeImageCache {
	return &fakeImageCache{entries: make(map[int64]string)}
}

func (f *fakeImageCache) GetImageURL(_ context.Context, postID int64) (string, bool) {
	image, ok := f.entries[postID]
	return image, ok
}

func (f *fakeImageCache) SetImageURL(_ context.Context, postID int64, image string) {
	f.entries[postID] = image
}

func (f *fakeImageCache) InvalidateImageURL(_ context.Context, postID int64) {
	delete(f.entries, postID)
	f.invalidations = append(f.invalidations, postID)
}

type notification struct {
	email          string
	username       string
	challengeTitle string
}

type fakeNotifier struct {
	sent []notification
	err  error
}

func (f *fakeNotifier) NotifyChallengeJoined(_ context.Context, email, username, challengeTitle string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, notification{email, username, challengeTitle})
	return nil
}
