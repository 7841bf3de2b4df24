package errs

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrJobNotFound  = errors.New("job not found")
	ErrInvalidState = errors.New("operation not valid for current job status")
	ErrUserNotFound = errors.New("reddit user not found")
	ErrRateLimited  = errors.New("rate limited by reddit")
)
