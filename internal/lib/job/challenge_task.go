package job

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
	"github.com/pkg/errors"
)

const (
	// TaskChallengeJoined is the job type name stored in Redis.
	// Asynq uses task type strings to route to handlers.
	TaskChallengeJoined = "email:challenge-joined"
)

// ChallengeJoinedPayload is the JSON payload for the challenge-joined
// email task.
type ChallengeJoinedPayload struct {
	To             string `json:"to"`
	Username       string `json:"username"`
	ChallengeTitle string `json:"challenge_title"`
}

// NewChallengeJoinedTask constructs the Asynq task for notifying a user
// that they joined a challenge.
func NewChallengeJoinedTask(to, username, challengeTitle string) (*asynq.Task, error) {
	payload, err := json.Marshal(ChallengeJoinedPayload{
		To:             to,
		Username:       username,
		ChallengeTitle: challengeTitle,
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskChallengeJoined,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}

// NotifyChallengeJoined enqueues the challenge-joined email task.
//
// Enqueueing is the whole contract: delivery happens asynchronously in
// the worker, and a failed delivery never surfaces to the caller.
func (j *JobService) NotifyChallengeJoined(ctx context.Context, email, username, challengeTitle string) error {
	task, err := NewChallengeJoinedTask(email, username, challengeTitle)
	if err != nil {
		return errors.Wrap(err, "failed to build challenge joined task")
	}

	info, err := j.Client.EnqueueContext(ctx, task)
	if err != nil {
		return errors.Wrap(err, "failed to enqueue challenge joined task")
	}

	j.logger.Debug().
		Str("task_id", info.ID).
		Str("queue", info.Queue).
		Msg("Enqueued challenge joined email task")

	return nil
}
