package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/clerk/clerk-sdk-go/v2"
	clerkhttp "github.com/clerk/clerk-sdk-go/v2/http"
	"github.com/labstack/echo/v4"

	"github.com/shootit/greme/internal/errs"
	"github.com/shootit/greme/internal/server"
)

// AuthMiddleware holds the app Server so middleware can access shared
// deps like Logger and Config.
type AuthMiddleware struct {
	server *server.Server
}

// NewAuthMiddleware constructs an AuthMiddleware.
func NewAuthMiddleware(s *server.Server) *AuthMiddleware {
	return &AuthMiddleware{
		server: s,
	}
}

// sessionCustomClaims are the custom claims the Clerk JWT template is
// configured to include. The email is what the service layer resolves
// callers by.
type sessionCustomClaims struct {
	Email string `json:"email"`
}

// RequireAuth is an Echo middleware that enforces authentication using Clerk.
//
// It wraps Clerk's header-authorization middleware: a missing or invalid
// token short-circuits with a JSON 401, a valid one populates the
// request context with session claims. The subject and email are then
// copied into Echo context for handlers.
func (auth *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return echo.WrapMiddleware(
		clerkhttp.WithHeaderAuthorization(
			clerkhttp.CustomClaimsConstructor(func(_ context.Context) any {
				return &sessionCustomClaims{}
			}),
			clerkhttp.AuthorizationFailureHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				start := time.Now()

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)

				response := map[string]string{
					"code":     "UNAUTHORIZED",
					"message":  "Unauthorized",
					"override": "false",
					"status":   "401",
				}

				if err := json.NewEncoder(w).Encode(response); err != nil {
					auth.server.Logger.Error().
						Err(err).
						Str("function", "RequireAuth").
						Dur("duration", time.Since(start)).
						Msg("failed to write JSON response")
				} else {
					auth.server.Logger.Warn().
						Str("function", "RequireAuth").
						Dur("duration", time.Since(start)).
						Msg("rejected unauthenticated request")
				}
			}))))(
		func(c echo.Context) error {
			start := time.Now()

			claims, ok := clerk.SessionClaimsFromContext(c.Request().Context())
			if !ok {
				auth.server.Logger.Error().
					Str("function", "RequireAuth").
					Str("request_id", GetRequestID(c)).
					Dur("duration", time.Since(start)).
					Msg("could not get session claims from context")

				return errs.NewUnauthorizedError("Unauthorized", false)
			}

			c.Set(UserIDKey, claims.Subject)

			if custom, ok := claims.Custom.(*sessionCustomClaims); ok && custom.Email != "" {
				c.Set(UserEmailKey, custom.Email)
			}

			auth.server.Logger.Debug().
				Str("function", "RequireAuth").
				Str("user_id", claims.Subject).
				Str("request_id", GetRequestID(c)).
				Dur("duration", time.Since(start)).
				Msg("user authenticated successfully")

			return next(c)
		})
}
