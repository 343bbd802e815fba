package token

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	t.Parallel()

	t.Run("valid-token", func(t *testing.T) {
		assert, require := assert.New(t), require.New(t)
		priv := TestGenerateRSAKey(t)
		raw := TestSignJWT(t, RS256, priv, "test-kid", TestDefaultClaims("https://issuer/", "aud", "test-nonce"))

		signed, err := Split(raw)
		require.NoError(err)
		assert.Equal("RS256", signed.Headers["alg"])
		assert.Equal("test-kid", signed.Headers["kid"])
		assert.NotEmpty(signed.Signature)

		var claims struct {
			Issuer string `json:"iss"`
			Nonce  string `json:"nonce"`
		}
		require.NoError(signed.Claims(&claims))
		assert.Equal("https://issuer/", claims.Issuer)
		assert.Equal("test-nonce", claims.Nonce)
	})

	tests := []struct {
		name string
		raw  string
	}{
		{name: "two-segments", raw: "aaaa.bbbb"},
		{name: "four-segments", raw: "a.b.c.d"},
		{name: "empty", raw: ""},
		{name: "bad-header-base64", raw: "!!!.payload.c2ln"},
		{name: "bad-header-json", raw: "bm90IGpzb24.payload.c2ln"},
		{name: "bad-signature-base64", raw: "e30.payload.!!!"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			assert, require := assert.New(t), require.New(t)
			_, err := Split(tt.raw)
			require.Error(err)
			assert.True(errors.Is(err, ErrInvalidParameter))
		})
	}
}

func TestSigned_Claims(t *testing.T) {
	t.Parallel()
	t.Run("nil-claims", func(t *testing.T) {
		assert, require := assert.New(t), require.New(t)
		priv := TestGenerateRSAKey(t)
		raw := TestSignJWT(t, RS256, priv, "test-kid", TestDefaultClaims("https://issuer/", "aud", ""))
		signed, err := Split(raw)
		require.NoError(err)
		err = signed.Claims(nil)
		require.Error(err)
		assert.True(errors.Is(err, ErrNilParameter))
	})
}

func TestClientSecret_redaction(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	secret := ClientSecret("super secret")
	assert.Equal(RedactedClientSecret, secret.String())
	encoded, err := secret.MarshalJSON()
	assert.NoError(err)
	assert.NotContains(string(encoded), "super secret")
}
