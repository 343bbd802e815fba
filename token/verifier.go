// Package token verifies JSON Web Token signatures for tokens issued by the
// identity provider. RS256 tokens are checked against the tenant's JSON Web
// Key Set, fetched over HTTP and cached with a TTL; HS256 tokens are checked
// against the client secret. The package never parses or validates claims
// beyond the signature; see Signed.Claims for claim access after a
// successful Verify.
package token

import (
	"context"
	"crypto"
	"crypto/hmac"
	"crypto/rsa"
	"crypto/sha256"
	"fmt"
	"net/http"
	"time"

	"github.com/veridian-id/veridian-go/cache"
	"github.com/veridian-id/veridian-go/internal/httpclient"
)

// Verifier checks JWT signatures. It holds configuration only; every Verify
// call re-runs the full check and caches nothing about the verdict, so a
// Verifier is safe to reuse across tokens.
type Verifier struct {
	algorithm    Alg
	jwksURL      string
	clientSecret ClientSecret
	keySetTTL    time.Duration
	cache        cache.Cache
	client       *http.Client
}

// NewVerifier creates a Verifier. Supported options: WithAlgorithm,
// WithJWKSURL, WithClientSecret, WithKeySetTTL, WithCache, WithHTTPClient,
// WithProviderCA.
func NewVerifier(opt ...Option) (*Verifier, error) {
	const op = "token.NewVerifier"
	opts := getVerifierOpts(opt...)
	if opts.withAlgorithm != "" {
		if err := SupportedSigningAlgorithm(opts.withAlgorithm); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}
	if opts.withKeySetTTL <= 0 {
		return nil, fmt.Errorf("%s: key set ttl not greater than zero: %w", op, ErrInvalidParameter)
	}

	client := opts.withHTTPClient
	if client == nil {
		var err error
		client, err = httpclient.New(opts.withProviderCA)
		if err != nil {
			return nil, fmt.Errorf("%s: unable to create http client: %w", op, err)
		}
	}

	return &Verifier{
		algorithm:    opts.withAlgorithm,
		jwksURL:      opts.withJWKSURL,
		clientSecret: opts.withClientSecret,
		keySetTTL:    opts.withKeySetTTL,
		cache:        opts.withCache,
		client:       client,
	}, nil
}

// Verify confirms the token's signature and returns nil on success. Any
// failure stops verification immediately; there is no partial success and
// no retry. Transport and cache failures during key set retrieval propagate
// as-is, distinct from the signature error taxonomy.
func (v *Verifier) Verify(ctx context.Context, t *Signed) error {
	const op = "Verifier.Verify"
	if t == nil {
		return fmt.Errorf("%s: token is nil: %w", op, ErrNilParameter)
	}

	alg, ok := t.algHeader()
	if !ok {
		return fmt.Errorf("%s: token lacks an alg header: %w", op, ErrUnsupportedSigningAlgorithm)
	}
	if v.algorithm != "" && v.algorithm != alg {
		return fmt.Errorf("%s: expected %q, token is signed with %q: %w", op, v.algorithm, alg, ErrUnexpectedSigningAlgorithm)
	}

	switch alg {
	case RS256:
		return v.verifyRS256(ctx, t)
	case HS256:
		return v.verifyHS256(t)
	default:
		return fmt.Errorf("%s: alg %q: %w", op, alg, ErrUnsupportedSigningAlgorithm)
	}
}

func (v *Verifier) verifyRS256(ctx context.Context, t *Signed) error {
	const op = "Verifier.verifyRS256"
	kid, ok := t.kidHeader()
	if !ok {
		return fmt.Errorf("%s: %w", op, ErrMissingKeyIDHeader)
	}
	if v.jwksURL == "" {
		return fmt.Errorf("%s: %w", op, ErrJWKSURLRequired)
	}

	ks, err := v.getKeySet(ctx)
	if err != nil {
		return err
	}
	key, err := ks.rsaPublicKey(kid)
	if err != nil {
		return err
	}

	hashed := sha256.Sum256(t.Payload)
	if err := rsa.VerifyPKCS1v15(key, crypto.SHA256, hashed[:], t.Signature); err != nil {
		return fmt.Errorf("%s: %w", op, ErrInvalidSignature)
	}
	return nil
}

func (v *Verifier) verifyHS256(t *Signed) error {
	const op = "Verifier.verifyHS256"
	if v.clientSecret == "" {
		return fmt.Errorf("%s: %w", op, ErrClientSecretRequired)
	}

	mac := hmac.New(sha256.New, []byte(v.clientSecret))
	mac.Write(t.Payload)
	if !hmac.Equal(mac.Sum(nil), t.Signature) {
		return fmt.Errorf("%s: %w", op, ErrInvalidSignature)
	}
	return nil
}
