// veridian-go is a client SDK for the Veridian identity provider. It wraps
// the provider's Authentication and Management REST APIs, drives
// redirect-based login flows with one-time state handling, and verifies the
// signatures of issued tokens against the tenant's JSON Web Key Set.
//
// The authn package runs authorization code flows; the token package
// verifies JWT signatures (RS256 via JWKS, HS256 via the client secret);
// the store package holds the one-time transient values that protect the
// login round-trip; the cache package caches fetched key sets; the
// management package wraps the per-resource Management API endpoints.
package veridian
