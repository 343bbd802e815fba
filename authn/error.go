package authn

import "errors"

var (
	// ErrInvalidParameter is returned when a parameter fails validation.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrNilParameter is returned when a required parameter is nil.
	ErrNilParameter = errors.New("nil parameter")

	// ErrResponseStateInvalid is returned when the state returned on the
	// callback does not match the one issued for this session, or has
	// already been consumed. A replayed callback lands here.
	ErrResponseStateInvalid = errors.New("authentication response state is invalid")

	// ErrMissingIDToken is returned when the token response carries no
	// id_token.
	ErrMissingIDToken = errors.New("id_token is missing")

	// ErrInvalidNonce is returned when the id_token's nonce claim does not
	// match the nonce issued for this session.
	ErrInvalidNonce = errors.New("invalid nonce")
)
