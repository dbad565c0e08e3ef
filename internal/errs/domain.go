package errs

// Domain error codes shared by services, handlers, and tests.
const (
	CodeUserNotFound           = "USER_NOT_FOUND"
	CodeChallengeNotFound      = "CHALLENGE_NOT_FOUND"
	CodeChallengeAlreadyJoined = "CHALLENGE_ALREADY_JOINED"
	CodePostNotFound           = "POST_NOT_FOUND"
	CodePostImageNotFound      = "POST_IMAGE_NOT_FOUND"
)

// NewUserNotFound reports that a caller or target identity did not
// resolve to an existing user.
func NewUserNotFound() *HTTPError {
	code := CodeUserNotFound
	return NewNotFoundError("User not found", true, &code)
}

// NewChallengeNotFound reports that a referenced challenge id does not exist.
func NewChallengeNotFound() *HTTPError {
	code := CodeChallengeNotFound
	return NewNotFoundError("Challenge not found", true, &code)
}

// NewChallengeAlreadyJoined reports a duplicate join attempt for the
// same (user, challenge) pair.
func NewChallengeAlreadyJoined() *HTTPError {
	code := CodeChallengeAlreadyJoined
	return NewBadRequestError("Challenge already joined", true, &code, nil, nil)
}

// NewPostNotFound reports that a post id did not resolve.
func NewPostNotFound() *HTTPError {
	code := CodePostNotFound
	return NewNotFoundError("Post not found", true, &code)
}

// NewPostImageNotFound reports that a post has no stored image.
func NewPostImageNotFound() *HTTPError {
	code := CodePostImageNotFound
	return NewNotFoundError("Post image not found", true, &code)
}
