package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/shootit/greme/internal/errs"
	"github.com/shootit/greme/internal/model"
)

// PostService handles the diary post lifecycle: create, show, update,
// delete, and the monthly archive view.
type PostService struct {
	logger         *zerolog.Logger
	tx             TxManager
	users          UserStore
	challenges     ChallengeStore
	challengePosts ChallengePostStore
	posts          PostStore
	images         ImageCache
}

// NewPostService wires a PostService. images may be nil, which disables
// image URL caching.
func NewPostService(
	logger *zerolog.Logger,
	tx TxManager,
	users UserStore,
	challenges ChallengeStore,
	challengePosts ChallengePostStore,
	posts PostStore,
	images ImageCache,
) *PostService {
	return &PostService{
		logger:         logger,
		tx:             tx,
		users:          users,
		challenges:     challenges,
		challengePosts: challengePosts,
		posts:          posts,
		images:         images,
	}
}

// CreatePostInput carries the fields of a new diary post.
type CreatePostInput struct {
	Content      string
	Hashtag      string
	Visible      bool
	ChallengeIDs []int64
}

// UpdatePostInput carries an in-place post update.
type UpdatePostInput struct {
	PostID       int64
	Content      string
	Hashtag      string
	Visible      bool
	ChallengeIDs []int64
}

// Create persists a new post and links it to the referenced challenges,
// all inside one transaction.
//
// Only the first uploaded file name is stored even when several are
// supplied: posts carry a single image. Challenge ids that do not
// resolve are skipped, mirroring the bulk lookup they come from.
func (s *PostService) Create(ctx context.Context, in CreatePostInput, imageFileNames []string, caller model.Identity) (*model.Post, error) {
	var post *model.Post

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		user, err := resolveUser(ctx, s.users, caller)
		if err != nil {
			return err
		}

		challenges, err := s.challenges.FindAllByIDs(ctx, in.ChallengeIDs)
		if err != nil {
			return err
		}

		image := ""
		if len(imageFileNames) > 0 {
			image = imageFileNames[0]
		}

		post = &model.Post{
			UserID:  user.ID,
			Content: in.Content,
			Hashtag: in.Hashtag,
			Image:   image,
			Visible: in.Visible,
		}
		if err := s.posts.Save(ctx, post); err != nil {
			return err
		}

		return s.challengePosts.SaveAll(ctx, post.ID, challengeIDs(challenges))
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("post_id", post.ID).Msg("post created")
	return post, nil
}

// ShowPost assembles the single-post display view for the caller.
func (s *PostService) ShowPost(ctx context.Context, caller model.Identity, postID int64) (*model.PostDetail, error) {
	var detail *model.PostDetail

	err := s.tx.RunInReadOnlyTx(ctx, func(ctx context.Context) error {
		user, err := resolveUser(ctx, s.users, caller)
		if err != nil {
			return err
		}

		post, err := s.posts.FindByID(ctx, postID)
		if err != nil {
			return err
		}
		if post == nil {
			return errs.NewPostNotFound()
		}

		titles, err := s.challengePosts.TitlesByPostID(ctx, postID)
		if err != nil {
			return err
		}

		detail = &model.PostDetail{
			Username:        user.Username,
			Image:           post.Image,
			Content:         post.Content,
			Hashtag:         post.Hashtag,
			CreatedAt:       post.CreatedAt,
			ChallengeTitles: titles,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return detail, nil
}

// Update mutates a post in place and fully replaces its challenge links:
// the old rows are deleted and the new set inserted, with no diffing.
// The whole replacement shares one transaction with the post mutation,
// so no reader observes the intermediate unlinked state.
func (s *PostService) Update(ctx context.Context, in UpdatePostInput, imageFileNames []string, caller model.Identity) error {
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := resolveUser(ctx, s.users, caller); err != nil {
			return err
		}

		post, err := s.posts.FindByID(ctx, in.PostID)
		if err != nil {
			return err
		}
		if post == nil {
			return errs.NewPostNotFound()
		}

		if err := s.challengePosts.DeleteByPostID(ctx, in.PostID); err != nil {
			return err
		}

		challenges, err := s.challenges.FindAllByIDs(ctx, in.ChallengeIDs)
		if err != nil {
			return err
		}

		post.Content = in.Content
		post.Hashtag = in.Hashtag
		post.Visible = in.Visible
		if len(imageFileNames) > 0 {
			post.Image = imageFileNames[0]
		}
		if err := s.posts.Update(ctx, post); err != nil {
			return err
		}

		return s.challengePosts.SaveAll(ctx, post.ID, challengeIDs(challenges))
	})
	if err != nil {
		return err
	}

	if s.images != nil {
		s.images.InvalidateImageURL(ctx, in.PostID)
	}
	return nil
}

// ImageURL returns the post's stored image reference, read through the
// cache. A missing post and a post without an image both fail with the
// image-not-found kind.
func (s *PostService) ImageURL(ctx context.Context, postID int64) (string, error) {
	if s.images != nil {
		if image, ok := s.images.GetImageURL(ctx, postID); ok {
			return image, nil
		}
	}

	var image string
	err := s.tx.RunInReadOnlyTx(ctx, func(ctx context.Context) error {
		var err error
		image, err = s.posts.ImageByID(ctx, postID)
		return err
	})
	if err != nil {
		return "", err
	}
	if image == "" {
		return "", errs.NewPostImageNotFound()
	}

	if s.images != nil {
		s.images.SetImageURL(ctx, postID, image)
	}
	return image, nil
}

// Delete removes the caller's post. Deletion is scoped to ownership:
// an id owned by another user (or an unknown id) matches nothing and
// the call succeeds as a no-op.
func (s *PostService) Delete(ctx context.Context, caller model.Identity, postID int64) error {
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		user, err := resolveUser(ctx, s.users, caller)
		if err != nil {
			return err
		}
		return s.posts.DeleteByIDAndUser(ctx, postID, user.ID)
	})
	if err != nil {
		return err
	}

	if s.images != nil {
		s.images.InvalidateImageURL(ctx, postID)
	}
	return nil
}

// MonthlyArchive returns the caller's posts folded into "YYYY-MM"
// buckets. Posts arrive newest-first from the store; buckets keep the
// order each month was first seen, and entries keep their scan order
// within the bucket.
func (s *PostService) MonthlyArchive(ctx context.Context, caller model.Identity) ([]model.MonthlyPosts, error) {
	var rows []model.PostMonthRow

	err := s.tx.RunInReadOnlyTx(ctx, func(ctx context.Context) error {
		user, err := resolveUser(ctx, s.users, caller)
		if err != nil {
			return err
		}

		rows, err = s.posts.MonthRowsByUser(ctx, user.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return groupByMonth(rows), nil
}

// groupByMonth folds month rows into ordered buckets. An explicit
// slice-plus-index fold keeps the first-seen ordering without relying on
// any map iteration behavior.
func groupByMonth(rows []model.PostMonthRow) []model.MonthlyPosts {
	archive := make([]model.MonthlyPosts, 0, len(rows))
	index := make(map[string]int, len(rows))

	for _, row := range rows {
		i, ok := index[row.Month]
		if !ok {
			archive = append(archive, model.MonthlyPosts{Month: row.Month})
			i = len(archive) - 1
			index[row.Month] = i
		}
		archive[i].Posts = append(archive[i].Posts, model.PostThumb{ID: row.ID, Image: row.Image})
	}

	return archive
}

func challengeIDs(challenges []model.Challenge) []int64 {
	ids := make([]int64, 0, len(challenges))
	for _, c := range challenges {
		ids = append(ids, c.ID)
	}
	return ids
}
