package authex

import "errors"

// Sentinel errors for missing optional collaborators.
var (
	ErrNoSerializer = errors.New("authex: no serializer configured")
	ErrNoBlacklist  = errors.New("authex: no blacklist store configured")
	ErrNoBanlist    = errors.New("authex: no banlist store configured")
)
