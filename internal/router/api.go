package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shootit/greme/internal/handler"
	"github.com/shootit/greme/internal/middleware"
)

// registerAPIRoutes registers the business route groups. Everything
// under /api requires an authenticated Clerk session.
func registerAPIRoutes(r *echo.Echo, h *handler.Handlers, m *middleware.Middlewares) {
	api := r.Group("/api", m.Auth.RequireAuth)

	// Challenge participation and views.
	api.GET("/users/:user_id/challenges",
		handler.Handle(h.Challenge.Handler, h.Challenge.ListChallenges, http.StatusOK, &handler.ListChallengesRequest{}))
	api.GET("/users/:user_id/challenges/joined",
		handler.Handle(h.Challenge.Handler, h.Challenge.ListJoinedChallenges, http.StatusOK, &handler.ListChallengesRequest{}))
	api.GET("/users/:user_id/profile",
		handler.Handle(h.Challenge.Handler, h.Challenge.UserProfile, http.StatusOK, &handler.UserProfileRequest{}))

	api.POST("/challenges/join",
		handler.HandleNoContent(h.Challenge.Handler, h.Challenge.AddChallenge, http.StatusCreated, &handler.AddChallengeRequest{}))
	api.DELETE("/challenges/:challenge_id",
		handler.HandleNoContent(h.Challenge.Handler, h.Challenge.DeleteChallenge, http.StatusNoContent, &handler.DeleteChallengeRequest{}))
	api.GET("/challenges/titles",
		handler.Handle(h.Challenge.Handler, h.Challenge.JoinedChallengeTitles, http.StatusOK, &handler.EmptyRequest{}))
	api.GET("/challenges/:challenge_id",
		handler.Handle(h.Challenge.Handler, h.Challenge.ChallengeDetail, http.StatusOK, &handler.ChallengeDetailRequest{}))

	// Diary posts.
	api.POST("/posts",
		handler.Handle(h.Post.Handler, h.Post.CreatePost, http.StatusCreated, &handler.CreatePostRequest{}))
	api.GET("/posts",
		handler.Handle(h.Post.Handler, h.Post.MonthlyArchive, http.StatusOK, &handler.EmptyRequest{}))
	api.GET("/posts/:post_id",
		handler.Handle(h.Post.Handler, h.Post.ShowPost, http.StatusOK, &handler.ShowPostRequest{}))
	api.PUT("/posts/:post_id",
		handler.HandleNoContent(h.Post.Handler, h.Post.UpdatePost, http.StatusNoContent, &handler.UpdatePostRequest{}))
	api.GET("/posts/:post_id/image",
		handler.Handle(h.Post.Handler, h.Post.PostImage, http.StatusOK, &handler.PostImageRequest{}))
	api.DELETE("/posts/:post_id",
		handler.HandleNoContent(h.Post.Handler, h.Post.DeletePost, http.StatusNoContent, &handler.DeletePostRequest{}))
}
