package token

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
)

// Signed is a split JWT ready for signature verification: the signing input
// exactly as signed, the raw signature bytes, and the decoded header fields.
// A Signed is immutable once constructed and is consumed by a single Verify
// call.
type Signed struct {
	// Payload is the JWS signing input: the base64url-encoded header and
	// claims joined by a dot, byte for byte as the issuer signed them.
	Payload []byte

	// Signature is the raw (base64url-decoded) signature.
	Signature []byte

	// Headers holds the decoded JOSE header. It must contain alg; kid is
	// required for asymmetric algorithms.
	Headers map[string]interface{}
}

// Split breaks a compact-serialization JWT into a Signed. It decodes the
// header and signature but performs no verification and no claim parsing.
func Split(raw string) (*Signed, error) {
	const op = "token.Split"
	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("%s: token must have 3 segments, found %d: %w", op, len(parts), ErrInvalidParameter)
	}
	headerJSON, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return nil, fmt.Errorf("%s: unable to decode token header: %w", op, ErrInvalidParameter)
	}
	headers := map[string]interface{}{}
	if err := json.Unmarshal(headerJSON, &headers); err != nil {
		return nil, fmt.Errorf("%s: unable to parse token header: %w", op, ErrInvalidParameter)
	}
	signature, err := base64.RawURLEncoding.DecodeString(parts[2])
	if err != nil {
		return nil, fmt.Errorf("%s: unable to decode token signature: %w", op, ErrInvalidParameter)
	}
	return &Signed{
		Payload:   []byte(parts[0] + "." + parts[1]),
		Signature: signature,
		Headers:   headers,
	}, nil
}

// Claims unmarshals the token's claims segment into the given interface.
// No verification is performed; call Verifier.Verify first.
func (s *Signed) Claims(claims interface{}) error {
	const op = "Signed.Claims"
	if claims == nil {
		return fmt.Errorf("%s: claims interface is nil: %w", op, ErrNilParameter)
	}
	idx := strings.IndexByte(string(s.Payload), '.')
	if idx < 0 {
		return fmt.Errorf("%s: payload is not a signing input: %w", op, ErrInvalidParameter)
	}
	claimsJSON, err := base64.RawURLEncoding.DecodeString(string(s.Payload[idx+1:]))
	if err != nil {
		return fmt.Errorf("%s: unable to decode token claims: %w", op, ErrInvalidParameter)
	}
	if err := json.Unmarshal(claimsJSON, claims); err != nil {
		return fmt.Errorf("%s: unable to parse token claims: %w", op, ErrInvalidParameter)
	}
	return nil
}

// algHeader returns the token's alg header value.
func (s *Signed) algHeader() (Alg, bool) {
	raw, ok := s.Headers["alg"]
	if !ok {
		return "", false
	}
	alg, ok := raw.(string)
	if !ok || alg == "" {
		return "", false
	}
	return Alg(alg), true
}

// kidHeader returns the token's kid header value.
func (s *Signed) kidHeader() (string, bool) {
	raw, ok := s.Headers["kid"]
	if !ok {
		return "", false
	}
	kid, ok := raw.(string)
	if !ok || kid == "" {
		return "", false
	}
	return kid, true
}
