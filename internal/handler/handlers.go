package handler

import (
	"github.com/shootit/greme/internal/server"
	"github.com/shootit/greme/internal/service"
)

// Handlers is a container that groups all HTTP handlers, so router
// setup receives one object instead of many.
type Handlers struct {
	Health    *HealthHandler
	Challenge *ChallengeHandler
	Post      *PostHandler
}

// NewHandlers constructs the handler container.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:    NewHealthHandler(s),
		Challenge: NewChallengeHandler(s, services.Challenge),
		Post:      NewPostHandler(s, services.Post),
	}
}
