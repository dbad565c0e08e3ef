package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/shootit/greme/internal/config"
	"github.com/shootit/greme/internal/lib/email"
)

// emailClient is a package-level singleton used by job handlers.
// InitHandlers must run before the worker server starts.
var emailClient *email.Client

// InitHandlers initializes dependencies required by job handlers.
func (j *JobService) InitHandlers(config *config.Config, logger *zerolog.Logger) {
	emailClient = email.NewClient(config, logger)
}

// handleChallengeJoinedEmailTask processes the challenge-joined email task.
func (j *JobService) handleChallengeJoinedEmailTask(ctx context.Context, t *asynq.Task) error {
	var p ChallengeJoinedPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal challenge joined payload: %w", err)
	}

	j.logger.Info().
		Str("type", "challenge_joined").
		Str("to", p.To).
		Msg("Processing challenge joined email task")

	err := emailClient.SendChallengeJoinedEmail(p.To, p.Username, p.ChallengeTitle)
	if err != nil {
		j.logger.Error().
			Str("type", "challenge_joined").
			Str("to", p.To).
			Err(err).
			Msg("Failed to send challenge joined email")
		return err // returning err makes Asynq mark it failed and schedule retry
	}

	j.logger.Info().
		Str("type", "challenge_joined").
		Str("to", p.To).
		Msg("Successfully sent challenge joined email")

	return nil
}
