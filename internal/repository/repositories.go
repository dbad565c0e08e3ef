package repository

import (
	"github.com/shootit/greme/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Users          *UserRepository
	Challenges     *ChallengeRepository
	ChallengeUsers *ChallengeUserRepository
	ChallengePosts *ChallengePostRepository
	Posts          *PostRepository
}

// NewRepositories constructs the repository container from the shared
// application dependencies.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Users:          NewUserRepository(s.DB),
		Challenges:     NewChallengeRepository(s.DB),
		ChallengeUsers: NewChallengeUserRepository(s.DB),
		ChallengePosts: NewChallengePostRepository(s.DB),
		Posts:          NewPostRepository(s.DB),
	}
}
