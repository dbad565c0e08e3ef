package email

import "fmt"

// SendChallengeJoinedEmail tells a user they joined a challenge.
func (c *Client) SendChallengeJoinedEmail(to, username, challengeTitle string) error {
	data := map[string]string{
		"Username":       username,
		"ChallengeTitle": challengeTitle,
	}

	return c.SendEmail(
		to,
		fmt.Sprintf("You joined %s!", challengeTitle),
		TemplateChallengeJoined,
		data,
	)
}
