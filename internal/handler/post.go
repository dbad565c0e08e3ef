package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/shootit/greme/internal/model"
	"github.com/shootit/greme/internal/server"
	"github.com/shootit/greme/internal/service"
)

// PostHandler serves the diary post endpoints.
type PostHandler struct {
	Handler
	posts *service.PostService
}

// NewPostHandler constructs a PostHandler.
func NewPostHandler(s *server.Server, posts *service.PostService) *PostHandler {
	return &PostHandler{
		Handler: NewHandler(s),
		posts:   posts,
	}
}

type CreatePostRequest struct {
	Content        string   `json:"content" validate:"required,max=2000"`
	Hashtag        string   `json:"hashtag" validate:"max=100"`
	Visible        bool     `json:"status"`
	ChallengeIDs   []int64  `json:"challenge_ids" validate:"dive,gt=0"`
	ImageFileNames []string `json:"image_file_names"`
}

func (r *CreatePostRequest) Validate() error {
	return validate.Struct(r)
}

// CreatePost persists a new post and links it to the referenced
// challenges.
func (h *PostHandler) CreatePost(c echo.Context, req *CreatePostRequest) (*model.Post, error) {
	return h.posts.Create(c.Request().Context(), service.CreatePostInput{
		Content:      req.Content,
		Hashtag:      req.Hashtag,
		Visible:      req.Visible,
		ChallengeIDs: req.ChallengeIDs,
	}, req.ImageFileNames, callerIdentity(c))
}

type ShowPostRequest struct {
	PostID int64 `param:"post_id" validate:"required,gt=0"`
}

func (r *ShowPostRequest) Validate() error {
	return validate.Struct(r)
}

// ShowPost returns the single-post display view.
func (h *PostHandler) ShowPost(c echo.Context, req *ShowPostRequest) (*model.PostDetail, error) {
	return h.posts.ShowPost(c.Request().Context(), callerIdentity(c), req.PostID)
}

type UpdatePostRequest struct {
	PostID         int64    `param:"post_id" validate:"required,gt=0"`
	Content        string   `json:"content" validate:"required,max=2000"`
	Hashtag        string   `json:"hashtag" validate:"max=100"`
	Visible        bool     `json:"status"`
	ChallengeIDs   []int64  `json:"challenge_ids" validate:"dive,gt=0"`
	ImageFileNames []string `json:"image_file_names"`
}

func (r *UpdatePostRequest) Validate() error {
	return validate.Struct(r)
}

// UpdatePost mutates a post in place and replaces its challenge links.
func (h *PostHandler) UpdatePost(c echo.Context, req *UpdatePostRequest) error {
	return h.posts.Update(c.Request().Context(), service.UpdatePostInput{
		PostID:       req.PostID,
		Content:      req.Content,
		Hashtag:      req.Hashtag,
		Visible:      req.Visible,
		ChallengeIDs: req.ChallengeIDs,
	}, req.ImageFileNames, callerIdentity(c))
}

type PostImageRequest struct {
	PostID int64 `param:"post_id" validate:"required,gt=0"`
}

func (r *PostImageRequest) Validate() error {
	return validate.Struct(r)
}

// PostImageResponse carries the stored image reference of a post.
type PostImageResponse struct {
	Image string `json:"image"`
}

// PostImage returns the post's image reference.
func (h *PostHandler) PostImage(c echo.Context, req *PostImageRequest) (*PostImageResponse, error) {
	image, err := h.posts.ImageURL(c.Request().Context(), req.PostID)
	if err != nil {
		return nil, err
	}
	return &PostImageResponse{Image: image}, nil
}

type DeletePostRequest struct {
	PostID int64 `param:"post_id" validate:"required,gt=0"`
}

func (r *DeletePostRequest) Validate() error {
	return validate.Struct(r)
}

// DeletePost removes the caller's post.
func (h *PostHandler) DeletePost(c echo.Context, req *DeletePostRequest) error {
	return h.posts.Delete(c.Request().Context(), callerIdentity(c), req.PostID)
}

// MonthlyArchive returns the caller's posts grouped into month buckets.
func (h *PostHandler) MonthlyArchive(c echo.Context, req *EmptyRequest) ([]model.MonthlyPosts, error) {
	return h.posts.MonthlyArchive(c.Request().Context(), callerIdentity(c))
}
