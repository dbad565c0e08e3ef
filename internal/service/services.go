package service

import (
	"github.com/shootit/greme/internal/cache"
	"github.com/shootit/greme/internal/repository"
	"github.com/shootit/greme/internal/server"

	"github.com/shootit/greme/internal/lib/job"
)

// Services is a container that groups all service instances.
type Services struct {
	Challenge *ChallengeService
	Post      *PostService
	Job       *job.JobService
}

// NewServices constructs the service container from the application
// container and the repositories.
func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	images := cache.NewImageCache(s.Redis, s.Logger)

	var notifier JoinNotifier
	if s.Job != nil {
		notifier = s.Job
	}

	challengeService := NewChallengeService(
		s.Logger,
		s.DB,
		repos.Users,
		repos.Challenges,
		repos.ChallengeUsers,
		repos.ChallengePosts,
		repos.Posts,
		notifier,
	)

	postService := NewPostService(
		s.Logger,
		s.DB,
		repos.Users,
		repos.Challenges,
		repos.ChallengePosts,
		repos.Posts,
		images,
	)

	return &Services{
		Challenge: challengeService,
		Post:      postService,
		Job:       s.Job,
	}, nil
}
