package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/shootit/greme/internal/middleware"
	"github.com/shootit/greme/internal/model"
	"github.com/shootit/greme/internal/server"
	"github.com/shootit/greme/internal/service"
)

// validate runs the validator-tag rules declared on request structs.
var validate = validator.New()

// callerIdentity builds the service-layer identity of the authenticated
// caller from the auth middleware's context values. A zero identity
// fails resolution downstream, which surfaces as UserNotFound.
func callerIdentity(c echo.Context) model.Identity {
	if email := middleware.GetUserEmail(c); email != "" {
		return model.IdentityByEmail(email)
	}
	return model.Identity{}
}

// ChallengeHandler serves the challenge participation endpoints.
type ChallengeHandler struct {
	Handler
	challenges *service.ChallengeService
}

// NewChallengeHandler constructs a ChallengeHandler.
func NewChallengeHandler(s *server.Server, challenges *service.ChallengeService) *ChallengeHandler {
	return &ChallengeHandler{
		Handler:    NewHandler(s),
		challenges: challenges,
	}
}

// EmptyRequest is the payload for endpoints whose input is entirely the
// authenticated caller.
type EmptyRequest struct{}

func (r *EmptyRequest) Validate() error {
	return nil
}

type ListChallengesRequest struct {
	UserID int64 `param:"user_id" validate:"required,gt=0"`
}

func (r *ListChallengesRequest) Validate() error {
	return validate.Struct(r)
}

// ListChallenges returns every challenge annotated with the user's
// participation.
func (h *ChallengeHandler) ListChallenges(c echo.Context, req *ListChallengesRequest) ([]model.ChallengeSummary, error) {
	return h.challenges.ListChallenges(c.Request().Context(), req.UserID)
}

// ListJoinedChallenges returns the challenges the user joined, most
// recently joined first.
func (h *ChallengeHandler) ListJoinedChallenges(c echo.Context, req *ListChallengesRequest) ([]model.ChallengeSummary, error) {
	return h.challenges.ListJoinedChallenges(c.Request().Context(), req.UserID)
}

type AddChallengeRequest struct {
	ChallengeID int64 `json:"challenge_id" validate:"required,gt=0"`
}

func (r *AddChallengeRequest) Validate() error {
	return validate.Struct(r)
}

// AddChallenge joins the caller to a challenge.
func (h *ChallengeHandler) AddChallenge(c echo.Context, req *AddChallengeRequest) error {
	return h.challenges.AddChallenge(c.Request().Context(), callerIdentity(c), req.ChallengeID)
}

type DeleteChallengeRequest struct {
	ChallengeID int64 `param:"challenge_id" validate:"required,gt=0"`
}

func (r *DeleteChallengeRequest) Validate() error {
	return validate.Struct(r)
}

// DeleteChallenge removes the caller's participation in a challenge.
func (h *ChallengeHandler) DeleteChallenge(c echo.Context, req *DeleteChallengeRequest) error {
	return h.challenges.DeleteChallenge(c.Request().Context(), callerIdentity(c), req.ChallengeID)
}

// JoinedChallengeTitles returns the titles of the caller's joined
// challenges, used to populate the post composer.
func (h *ChallengeHandler) JoinedChallengeTitles(c echo.Context, req *EmptyRequest) ([]model.ChallengeTitle, error) {
	return h.challenges.JoinedChallengeTitles(c.Request().Context(), callerIdentity(c))
}

type UserProfileRequest struct {
	UserID int64 `param:"user_id" validate:"required,gt=0"`
}

func (r *UserProfileRequest) Validate() error {
	return validate.Struct(r)
}

// UserProfile returns the target user's profile view.
func (h *ChallengeHandler) UserProfile(c echo.Context, req *UserProfileRequest) (*model.ProfileView, error) {
	return h.challenges.UserProfile(c.Request().Context(), callerIdentity(c), req.UserID)
}

type ChallengeDetailRequest struct {
	ChallengeID int64 `param:"challenge_id" validate:"required,gt=0"`
}

func (r *ChallengeDetailRequest) Validate() error {
	return validate.Struct(r)
}

// ChallengeDetail returns one challenge page for the caller.
func (h *ChallengeHandler) ChallengeDetail(c echo.Context, req *ChallengeDetailRequest) (*model.ChallengeDetail, error) {
	return h.challenges.ChallengeDetail(c.Request().Context(), callerIdentity(c), req.ChallengeID)
}
