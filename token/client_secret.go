package token

import "encoding/json"

// ClientSecret is the secret shared with the identity provider, used as the
// HMAC key for HS256 verification. Its String and JSON representations are
// redacted so the secret never lands in logs.
type ClientSecret string

// RedactedClientSecret is the redacted string or json for a client secret.
const RedactedClientSecret = "[REDACTED: client secret]"

// String will redact the client secret.
func (s ClientSecret) String() string {
	return RedactedClientSecret
}

// MarshalJSON will redact the client secret.
func (s ClientSecret) MarshalJSON() ([]byte, error) {
	return json.Marshal(RedactedClientSecret)
}
