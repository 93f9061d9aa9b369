package revocation

import "errors"

// Sentinel errors for Redis store setup.
var (
	ErrInvalidRedisURL   = errors.New("revocation: invalid redis connection URL")
	ErrConnectionFailed  = errors.New("revocation: redis connection failed")
	ErrHealthcheckFailed = errors.New("revocation: redis healthcheck failed")
)
