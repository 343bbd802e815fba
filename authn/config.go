package authn

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/hashicorp/go-hclog"
	multierror "github.com/hashicorp/go-multierror"

	"github.com/veridian-id/veridian-go/internal/strutils"
	"github.com/veridian-id/veridian-go/token"
)

// Config holds everything needed to run authorization code flows against
// one tenant of the identity provider.
type Config struct {
	// Domain is the tenant domain, with or without an https:// prefix
	// (for example "tenant.example.auth.com").
	Domain string

	// ClientID is the relying party id.
	ClientID string

	// ClientSecret is the relying party secret. Required for the code
	// exchange and for HS256 token verification; its String/JSON forms are
	// redacted.
	ClientSecret token.ClientSecret

	// RedirectURL is the URL the provider redirects back to after the user
	// authenticates.
	RedirectURL string

	// Scopes is a list of additional scopes to request. The required
	// "openid" scope is always requested.
	Scopes []string

	// Audience is an optional audience for issued access tokens.
	Audience string

	// SigningAlgorithm is the algorithm id_tokens are expected to be
	// signed with. Defaults to token.RS256.
	SigningAlgorithm token.Alg

	// ProviderCA is an optional CA certificate PEM to trust when talking
	// to the provider.
	ProviderCA string

	// HTTPClient is an optional client for provider requests. When nil, a
	// pooled client is built (honoring ProviderCA).
	HTTPClient *http.Client

	// Logger is an optional structured logger. When nil, nothing is
	// logged.
	Logger hclog.Logger
}

// Validate the configuration, reporting every fault found rather than just
// the first.
func (c *Config) Validate() error {
	const op = "authn.Config.Validate"
	if c == nil {
		return fmt.Errorf("%s: config is nil: %w", op, ErrNilParameter)
	}
	var result *multierror.Error
	if c.Domain == "" {
		result = multierror.Append(result, fmt.Errorf("domain is empty: %w", ErrInvalidParameter))
	}
	if c.ClientID == "" {
		result = multierror.Append(result, fmt.Errorf("client id is empty: %w", ErrInvalidParameter))
	}
	if c.RedirectURL == "" {
		result = multierror.Append(result, fmt.Errorf("redirect URL is empty: %w", ErrInvalidParameter))
	}
	if _, err := url.Parse(c.issuer()); err != nil {
		result = multierror.Append(result, fmt.Errorf("domain %s is invalid: %w", c.Domain, ErrInvalidParameter))
	}
	if c.SigningAlgorithm != "" {
		if err := token.SupportedSigningAlgorithm(c.SigningAlgorithm); err != nil {
			result = multierror.Append(result, err)
		}
	}
	if c.SigningAlgorithm == token.HS256 && c.ClientSecret == "" {
		result = multierror.Append(result, fmt.Errorf("client secret is empty but required for HS256: %w", ErrInvalidParameter))
	}
	if err := result.ErrorOrNil(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// issuer returns the tenant base URL with a normalized scheme and no
// trailing slash.
func (c *Config) issuer() string {
	domain := strings.TrimSuffix(c.Domain, "/")
	if strings.HasPrefix(domain, "https://") || strings.HasPrefix(domain, "http://") {
		return domain
	}
	return "https://" + domain
}

// scopes returns the requested scopes with "openid" guaranteed present and
// duplicates removed.
func (c *Config) scopes() []string {
	requested := append([]string{"openid"}, c.Scopes...)
	return strutils.RemoveDuplicatesStable(requested)
}
