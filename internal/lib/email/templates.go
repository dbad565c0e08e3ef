package email

// Template is a string-based enum naming email templates.
type Template string

const (
	// TemplateChallengeJoined corresponds to templates/emails/challenge_joined.html
	TemplateChallengeJoined Template = "challenge_joined"
)
