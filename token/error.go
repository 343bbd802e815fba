package token

import (
	"errors"
)

var (
	// ErrInvalidParameter is returned when a parameter fails validation.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrNilParameter is returned when a required parameter is nil.
	ErrNilParameter = errors.New("nil parameter")

	// ErrUnexpectedSigningAlgorithm is returned when the token's alg header
	// differs from the algorithm the verifier was configured to expect. It
	// signals a configuration/header mismatch and is raised before any key
	// lookup or cryptographic work.
	ErrUnexpectedSigningAlgorithm = errors.New("unexpected signing algorithm")

	// ErrUnsupportedSigningAlgorithm is returned when the token's alg header
	// names an algorithm the verifier does not implement.
	ErrUnsupportedSigningAlgorithm = errors.New("unsupported signing algorithm")

	// ErrMissingKeyIDHeader is returned when an RS256 token carries no kid
	// header.
	ErrMissingKeyIDHeader = errors.New("token lacks the kid header")

	// ErrJWKSURLRequired is returned when RS256 verification is attempted
	// with no JWKS URL configured.
	ErrJWKSURLRequired = errors.New("JWKS URL is required to verify this token")

	// ErrClientSecretRequired is returned when HS256 verification is
	// attempted with no client secret configured.
	ErrClientSecretRequired = errors.New("client secret is required to verify this token")

	// ErrKeyIDNotFound is returned when the token's kid is not present in
	// the resolved key set.
	ErrKeyIDNotFound = errors.New("kid not found in the key set")

	// ErrInvalidSignature is returned when the signature does not verify,
	// or when the key set's certificate for the token's kid cannot be
	// parsed.
	ErrInvalidSignature = errors.New("invalid signature")

	// ErrIncompatibleKey is returned when the key resolved for an RS256
	// token is not an RSA public key.
	ErrIncompatibleKey = errors.New("key is incompatible with the signing algorithm")
)
