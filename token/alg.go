package token

import "fmt"

// Alg represents a JWT signing algorithm.
type Alg string

const (
	// RS256 is RSASSA-PKCS-v1.5 using SHA-256. Verification resolves an RSA
	// public key by key id from the tenant's JSON Web Key Set.
	RS256 Alg = "RS256"

	// HS256 is HMAC using SHA-256, keyed by the client secret shared with
	// the identity provider.
	HS256 Alg = "HS256"
)

var supportedAlgorithms = map[Alg]bool{
	RS256: true,
	HS256: true,
}

// SupportedSigningAlgorithm reports an error for any alg outside the set the
// verifier implements.
func SupportedSigningAlgorithm(algs ...Alg) error {
	const op = "token.SupportedSigningAlgorithm"
	for _, a := range algs {
		if !supportedAlgorithms[a] {
			return fmt.Errorf("%s: alg %q: %w", op, a, ErrUnsupportedSigningAlgorithm)
		}
	}
	return nil
}
