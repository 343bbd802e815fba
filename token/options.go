package token

import (
	"net/http"
	"time"

	"github.com/veridian-id/veridian-go/cache"
)

// DefaultKeySetTTL is how long a fetched key set is reused from the cache
// before the next verification fetches a fresh copy.
const DefaultKeySetTTL = 60 * time.Second

// Option defines a common functional options type for the token package.
type Option func(*verifierOptions)

// verifierOptions is the set of available options for NewVerifier.
type verifierOptions struct {
	withAlgorithm    Alg
	withJWKSURL      string
	withClientSecret ClientSecret
	withKeySetTTL    time.Duration
	withCache        cache.Cache
	withHTTPClient   *http.Client
	withProviderCA   string
}

// verifierDefaults is a handy way to get the defaults at runtime and during
// unit tests.
func verifierDefaults() verifierOptions {
	return verifierOptions{
		withKeySetTTL: DefaultKeySetTTL,
	}
}

// getVerifierOpts gets the verifier defaults and applies the opt overrides
// passed in.
func getVerifierOpts(opt ...Option) verifierOptions {
	opts := verifierDefaults()
	for _, o := range opt {
		if o != nil {
			o(&opts)
		}
	}
	return opts
}

// WithAlgorithm constrains the verifier to one expected signing algorithm.
// A token whose alg header differs fails with
// ErrUnexpectedSigningAlgorithm before any key lookup or crypto runs. When
// unset, the token's own alg header selects the algorithm.
func WithAlgorithm(a Alg) Option {
	return func(o *verifierOptions) {
		o.withAlgorithm = a
	}
}

// WithJWKSURL provides the URL of the tenant's JSON Web Key Set, required
// for RS256 verification. A URL without a scheme defaults to https; a URL
// without a path defaults to /.well-known/jwks.json.
func WithJWKSURL(u string) Option {
	return func(o *verifierOptions) {
		o.withJWKSURL = u
	}
}

// WithClientSecret provides the shared secret required for HS256
// verification.
func WithClientSecret(s ClientSecret) Option {
	return func(o *verifierOptions) {
		o.withClientSecret = s
	}
}

// WithKeySetTTL overrides DefaultKeySetTTL for cached key sets.
func WithKeySetTTL(ttl time.Duration) Option {
	return func(o *verifierOptions) {
		o.withKeySetTTL = ttl
	}
}

// WithCache provides an optional cache for fetched key sets. Without one,
// every RS256 verification fetches the key set again.
func WithCache(c cache.Cache) Option {
	return func(o *verifierOptions) {
		o.withCache = c
	}
}

// WithHTTPClient provides an optional http client used for key set
// retrieval. Timeouts and retries belong to this client; the verifier adds
// none of its own.
func WithHTTPClient(c *http.Client) Option {
	return func(o *verifierOptions) {
		o.withHTTPClient = c
	}
}

// WithProviderCA provides an optional CA certificate PEM to trust when
// fetching the key set. Ignored when WithHTTPClient is also given.
func WithProviderCA(caPEM string) Option {
	return func(o *verifierOptions) {
		o.withProviderCA = caPEM
	}
}
