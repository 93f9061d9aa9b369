package token

import "errors"

// Configuration errors, surfaced at Signer/Verifier construction time.
var (
	ErrEmptySecret          = errors.New("token: secret must not be empty")
	ErrUnsupportedAlgorithm = errors.New("token: unsupported signing algorithm")
)

// Verification failures. Verify returns exactly one of these (possibly
// wrapped with a cause); no other failure originates from the pipeline.
var (
	// ErrBadToken covers malformed tokens, bad signatures, and algorithm
	// mismatches. Callers must treat it as "reject", never retry.
	ErrBadToken = errors.New("token: bad token")

	// ErrNotReady means the token's not_before is still in the future.
	ErrNotReady = errors.New("token: not yet valid")

	// ErrExpired means the token's expiry has passed.
	ErrExpired = errors.New("token: expired")

	// ErrTokenIDMissing means a blacklist is configured but the token
	// carries no jti, so its revocation status cannot be checked.
	ErrTokenIDMissing = errors.New("token: missing jti, revocation status unverifiable")

	// ErrBlacklisted means the token's jti is on the blacklist.
	ErrBlacklisted = errors.New("token: blacklisted")

	// ErrBlacklistCheck means the blacklist store itself failed. A token
	// with unknown revocation status is rejected, never accepted.
	ErrBlacklistCheck = errors.New("token: blacklist lookup failed")

	// ErrSubjectMissing means a banlist is configured but the token
	// carries no subject.
	ErrSubjectMissing = errors.New("token: missing subject, ban status unverifiable")

	// ErrBanned means the token's subject is on the banlist.
	ErrBanned = errors.New("token: subject banned")

	// ErrBanlistCheck means the banlist store itself failed.
	ErrBanlistCheck = errors.New("token: banlist lookup failed")
)

// Reason maps a verification failure to its stable wire-level reason
// string, for logging and auditing. Returns "" for errors that did not
// originate from Verify.
func Reason(err error) string {
	switch {
	case errors.Is(err, ErrBadToken):
		return "bad_token"
	case errors.Is(err, ErrNotReady):
		return "not_ready"
	case errors.Is(err, ErrExpired):
		return "expired"
	case errors.Is(err, ErrTokenIDMissing):
		return "jti_unverified"
	case errors.Is(err, ErrBlacklisted):
		return "blacklisted"
	case errors.Is(err, ErrBlacklistCheck):
		return "blacklist_error"
	case errors.Is(err, ErrSubjectMissing):
		return "sub_unverified"
	case errors.Is(err, ErrBanned):
		return "banned"
	case errors.Is(err, ErrBanlistCheck):
		return "banlist_error"
	default:
		return ""
	}
}
