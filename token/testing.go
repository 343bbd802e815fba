package token

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/square/go-jose.v2"
	"gopkg.in/square/go-jose.v2/jwt"
)

// TestGenerateRSAKey will generate a test RSA 2048 key pair.
func TestGenerateRSAKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	require := require.New(t)
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(err)
	return key
}

// TestX5C wraps the public half of the given key in a self-signed
// certificate and returns it base64 DER encoded, the form a JWKS x5c entry
// carries.
func TestX5C(t *testing.T, key *rsa.PrivateKey) string {
	t.Helper()
	require := require.New(t)
	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "test-signing-key"},
		NotBefore:    time.Now().Add(-1 * time.Hour),
		NotAfter:     time.Now().Add(1 * time.Hour),
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, key.Public(), key)
	require.NoError(err)
	return base64.StdEncoding.EncodeToString(der)
}

// TestJWKS builds a JWKS document with a single usable entry for the given
// kid and x5c, plus any extra raw entries the caller wants injected.
func TestJWKS(t *testing.T, kid string, x5c string, extra ...map[string]interface{}) []byte {
	t.Helper()
	require := require.New(t)
	keys := []map[string]interface{}{
		{
			"kid": kid,
			"kty": "RSA",
			"use": "sig",
			"x5c": []string{x5c},
		},
	}
	keys = append(keys, extra...)
	doc, err := json.Marshal(map[string]interface{}{"keys": keys})
	require.NoError(err)
	return doc
}

// TestSignJWT will bundle the provided claims into a test signed JWT. The
// key must be an *rsa.PrivateKey for RS256 or a []byte secret for HS256;
// kid, when not empty, is carried in the token header.
func TestSignJWT(t *testing.T, alg Alg, key interface{}, kid string, claims map[string]interface{}) string {
	t.Helper()
	require := require.New(t)

	signingKey := key
	if kid != "" {
		signingKey = &jose.JSONWebKey{Key: key, KeyID: kid}
	}
	sig, err := jose.NewSigner(
		jose.SigningKey{Algorithm: jose.SignatureAlgorithm(alg), Key: signingKey},
		(&jose.SignerOptions{}).WithType("JWT"),
	)
	require.NoError(err)

	raw, err := jwt.Signed(sig).Claims(claims).CompactSerialize()
	require.NoError(err)
	return raw
}

// TestDefaultClaims returns a minimal, currently-valid claim set for the
// given issuer and nonce.
func TestDefaultClaims(issuer string, audience string, nonce string) map[string]interface{} {
	now := time.Now().Unix()
	claims := map[string]interface{}{
		"iss": issuer,
		"aud": audience,
		"sub": "test-subject",
		"iat": now,
		"exp": now + 300,
	}
	if nonce != "" {
		claims["nonce"] = nonce
	}
	return claims
}
