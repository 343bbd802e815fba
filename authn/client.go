// Package authn implements the redirect-based login flow against the
// identity provider's Authentication API: building authorization URLs,
// exchanging authorization codes for tokens, and verifying the id_token
// that comes back. One-time state and nonce values ride in a
// store.Transient so a callback can never be replayed.
package authn

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/veridian-id/veridian-go/cache"
	"github.com/veridian-id/veridian-go/internal/httpclient"
	"github.com/veridian-id/veridian-go/store"
	"github.com/veridian-id/veridian-go/token"
)

// Transient store keys for the values bound to one login round-trip.
const (
	stateKey = "state"
	nonceKey = "nonce"
)

// Token is the result of a successful code exchange. The IDToken has had
// its signature verified and its nonce consumed before the Token is
// returned.
type Token struct {
	AccessToken  string
	RefreshToken string
	IDToken      string
	TokenType    string
	Expiry       time.Time
}

// Client drives the authorization code flow for one tenant.
type Client struct {
	config    *Config
	transient *store.Transient
	verifier  *token.Verifier
	client    *http.Client
	logger    hclog.Logger
}

// NewClient creates a Client. The transient store carries the per-flow
// state and nonce and must be scoped to the end user's session. Supported
// options: WithKeySetCache, WithKeySetTTL.
func NewClient(c *Config, transient *store.Transient, opt ...Option) (*Client, error) {
	const op = "authn.NewClient"
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%s: invalid config: %w", op, err)
	}
	if transient == nil {
		return nil, fmt.Errorf("%s: transient store is nil: %w", op, ErrNilParameter)
	}
	opts := getClientOpts(opt...)

	httpClient := c.HTTPClient
	if httpClient == nil {
		var err error
		httpClient, err = httpclient.New(c.ProviderCA)
		if err != nil {
			return nil, fmt.Errorf("%s: unable to create http client: %w", op, err)
		}
	}

	alg := c.SigningAlgorithm
	if alg == "" {
		alg = token.RS256
	}
	verifierOpts := []token.Option{
		token.WithAlgorithm(alg),
		token.WithJWKSURL(c.issuer() + "/.well-known/jwks.json"),
		token.WithClientSecret(c.ClientSecret),
		token.WithHTTPClient(httpClient),
	}
	if opts.withKeySetCache != nil {
		verifierOpts = append(verifierOpts, token.WithCache(opts.withKeySetCache))
	}
	if opts.withKeySetTTL > 0 {
		verifierOpts = append(verifierOpts, token.WithKeySetTTL(opts.withKeySetTTL))
	}
	verifier, err := token.NewVerifier(verifierOpts...)
	if err != nil {
		return nil, fmt.Errorf("%s: unable to create token verifier: %w", op, err)
	}

	logger := c.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	return &Client{
		config:    c,
		transient: transient,
		verifier:  verifier,
		client:    httpClient,
		logger:    logger,
	}, nil
}

// oauth2Config builds the x/oauth2 configuration for this tenant.
func (c *Client) oauth2Config() oauth2.Config {
	issuer := c.config.issuer()
	return oauth2.Config{
		ClientID:     c.config.ClientID,
		ClientSecret: string(c.config.ClientSecret),
		RedirectURL:  c.config.RedirectURL,
		Scopes:       c.config.scopes(),
		Endpoint: oauth2.Endpoint{
			AuthURL:  issuer + "/authorize",
			TokenURL: issuer + "/oauth/token",
		},
	}
}

// AuthorizationURL mints fresh state and nonce values, stores them in the
// transient store and returns the provider URL to redirect the user to.
// Supported options: WithConnection, WithAudience.
func (c *Client) AuthorizationURL(opt ...Option) (string, error) {
	const op = "Client.AuthorizationURL"
	opts := getClientOpts(opt...)

	state, err := c.transient.Issue(stateKey)
	if err != nil {
		return "", fmt.Errorf("%s: unable to issue state: %w", op, err)
	}
	nonce, err := c.transient.Issue(nonceKey)
	if err != nil {
		return "", fmt.Errorf("%s: unable to issue nonce: %w", op, err)
	}

	authCodeOpts := []oauth2.AuthCodeOption{
		oauth2.SetAuthURLParam("nonce", nonce),
	}
	audience := c.config.Audience
	if opts.withAudience != "" {
		audience = opts.withAudience
	}
	if audience != "" {
		authCodeOpts = append(authCodeOpts, oauth2.SetAuthURLParam("audience", audience))
	}
	if opts.withConnection != "" {
		authCodeOpts = append(authCodeOpts, oauth2.SetAuthURLParam("connection", opts.withConnection))
	}

	oauth2Config := c.oauth2Config()
	c.logger.Debug("issued authorization url", "client_id", c.config.ClientID)
	return oauth2Config.AuthCodeURL(state, authCodeOpts...), nil
}

// Exchange validates the state returned on the callback, exchanges the
// authorization code for tokens, verifies the id_token's signature and
// consumes the nonce. Both the state and the nonce are invalidated whether
// or not the exchange succeeds, so a replayed callback always fails with
// ErrResponseStateInvalid.
func (c *Client) Exchange(ctx context.Context, callbackState string, code string) (*Token, error) {
	const op = "Client.Exchange"
	if !c.transient.Verify(stateKey, callbackState) {
		return nil, fmt.Errorf("%s: %w", op, ErrResponseStateInvalid)
	}

	oauth2Config := c.oauth2Config()
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.client)
	oauth2Token, err := oauth2Config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%s: unable to exchange authorization code: %w", op, err)
	}

	idToken, ok := oauth2Token.Extra("id_token").(string)
	if !ok || idToken == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrMissingIDToken)
	}

	signed, err := token.Split(idToken)
	if err != nil {
		return nil, fmt.Errorf("%s: unable to split id_token: %w", op, err)
	}
	if err := c.verifier.Verify(ctx, signed); err != nil {
		return nil, fmt.Errorf("%s: id_token verification failed: %w", op, err)
	}

	var claims struct {
		Nonce string `json:"nonce"`
	}
	if err := signed.Claims(&claims); err != nil {
		return nil, fmt.Errorf("%s: unable to read id_token claims: %w", op, err)
	}
	if claims.Nonce == "" || !c.transient.Verify(nonceKey, claims.Nonce) {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidNonce)
	}

	c.logger.Debug("exchanged authorization code", "client_id", c.config.ClientID)
	return &Token{
		AccessToken:  oauth2Token.AccessToken,
		RefreshToken: oauth2Token.RefreshToken,
		IDToken:      idToken,
		TokenType:    oauth2Token.TokenType,
		Expiry:       oauth2Token.Expiry,
	}, nil
}

// ClientCredentials obtains a machine-to-machine access token using the
// client credentials grant.
func (c *Client) ClientCredentials(ctx context.Context, opt ...Option) (*oauth2.Token, error) {
	const op = "Client.ClientCredentials"
	if c.config.ClientSecret == "" {
		return nil, fmt.Errorf("%s: client secret is empty: %w", op, ErrInvalidParameter)
	}
	opts := getClientOpts(opt...)
	audience := c.config.Audience
	if opts.withAudience != "" {
		audience = opts.withAudience
	}

	ccConfig := clientcredentials.Config{
		ClientID:     c.config.ClientID,
		ClientSecret: string(c.config.ClientSecret),
		TokenURL:     c.config.issuer() + "/oauth/token",
	}
	if audience != "" {
		ccConfig.EndpointParams = url.Values{"audience": {audience}}
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.client)
	oauth2Token, err := ccConfig.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: unable to obtain token: %w", op, err)
	}
	return oauth2Token, nil
}

// LogoutURL returns the provider URL that clears the user's provider-side
// session and then redirects to returnTo.
func (c *Client) LogoutURL(returnTo string) (string, error) {
	const op = "Client.LogoutURL"
	u, err := url.Parse(c.config.issuer() + "/v2/logout")
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	q := u.Query()
	q.Set("client_id", c.config.ClientID)
	if returnTo != "" {
		q.Set("returnTo", returnTo)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Option defines a common functional options type for the authn package.
type Option func(*clientOptions)

// clientOptions is the set of available options for Client functions.
type clientOptions struct {
	withKeySetCache cache.Cache
	withKeySetTTL   time.Duration
	withConnection  string
	withAudience    string
}

func getClientOpts(opt ...Option) clientOptions {
	var opts clientOptions
	for _, o := range opt {
		if o != nil {
			o(&opts)
		}
	}
	return opts
}

// WithKeySetCache provides an optional cache for the tenant's JWKS between
// id_token verifications.
func WithKeySetCache(c cache.Cache) Option {
	return func(o *clientOptions) {
		o.withKeySetCache = c
	}
}

// WithKeySetTTL overrides the default TTL for cached key sets.
func WithKeySetTTL(ttl time.Duration) Option {
	return func(o *clientOptions) {
		o.withKeySetTTL = ttl
	}
}

// WithConnection requests a specific upstream connection on the
// authorization URL.
func WithConnection(name string) Option {
	return func(o *clientOptions) {
		o.withConnection = name
	}
}

// WithAudience overrides the configured audience for one call.
func WithAudience(audience string) Option {
	return func(o *clientOptions) {
		o.withAudience = audience
	}
}
