package token

import (
	"context"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/hex"
	"encoding/json"
	"encoding/pem"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// KeySet maps a kid to the first entry of its X.509 certificate chain
// (base64 DER) as published by the identity provider's JWKS endpoint.
// Entries lacking a kid or an x5c chain are filtered out at fetch time; an
// empty KeySet is not an error, absence only matters at kid lookup.
type KeySet map[string]string

// jwksDocument is the wire shape of the provider's JWKS endpoint. Only kid
// and x5c are consumed.
type jwksDocument struct {
	Keys []struct {
		Kid string   `json:"kid"`
		X5c []string `json:"x5c"`
	} `json:"keys"`
}

// keySetURL normalizes the configured JWKS URL: the scheme defaults to
// https and the path defaults to the provider's well-known location.
func keySetURL(jwksURL string) (string, error) {
	const op = "token.keySetURL"
	if jwksURL == "" {
		return "", fmt.Errorf("%s: empty JWKS URL: %w", op, ErrJWKSURLRequired)
	}
	u, err := url.Parse(jwksURL)
	if err != nil {
		return "", fmt.Errorf("%s: JWKS URL %q is invalid: %w", op, jwksURL, err)
	}
	if u.Host == "" {
		// "tenant.example.com" parses as a bare path
		u, err = url.Parse("https://" + jwksURL)
		if err != nil {
			return "", fmt.Errorf("%s: JWKS URL %q is invalid: %w", op, jwksURL, err)
		}
	}
	if u.Scheme == "" {
		u.Scheme = "https"
	}
	if u.Path == "" || u.Path == "/" {
		u.Path = "/.well-known/jwks.json"
	}
	return u.String(), nil
}

// keySetCacheKey derives the cache key for a JWKS URL. The key depends on
// the URL alone; differing TTL configurations against the same URL share
// one entry and the first writer's TTL wins.
func keySetCacheKey(jwksURL string) string {
	sum := sha256.Sum256([]byte(jwksURL))
	return "jwks_" + hex.EncodeToString(sum[:])
}

// getKeySet returns the key set for the verifier's JWKS URL, reusing the
// cached copy when one is present and not expired. Transport, status and
// decode failures propagate to the caller so "could not reach the key
// source" stays distinguishable from "signature invalid".
func (v *Verifier) getKeySet(ctx context.Context) (KeySet, error) {
	const op = "Verifier.getKeySet"
	fetchURL, err := keySetURL(v.jwksURL)
	if err != nil {
		return nil, err
	}

	cacheKey := keySetCacheKey(fetchURL)
	if v.cache != nil {
		cached, ok, err := v.cache.Get(ctx, cacheKey)
		if err != nil {
			return nil, fmt.Errorf("%s: key set cache read failed: %w", op, err)
		}
		if ok {
			var ks KeySet
			if err := json.Unmarshal(cached, &ks); err == nil {
				return ks, nil
			}
			// an undecodable cache entry is treated as a miss
		}
	}

	ks, err := fetchKeySet(ctx, v.client, fetchURL)
	if err != nil {
		return nil, err
	}

	if v.cache != nil && len(ks) > 0 {
		encoded, err := json.Marshal(ks)
		if err != nil {
			return nil, fmt.Errorf("%s: unable to encode key set: %w", op, err)
		}
		if err := v.cache.Set(ctx, cacheKey, encoded, v.keySetTTL); err != nil {
			return nil, fmt.Errorf("%s: key set cache write failed: %w", op, err)
		}
	}

	return ks, nil
}

// fetchKeySet GETs the JWKS document and reduces it to a KeySet, keeping
// only entries that carry both a kid and a non-empty x5c chain.
func fetchKeySet(ctx context.Context, client *http.Client, fetchURL string) (KeySet, error) {
	const op = "token.fetchKeySet"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fetchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: unable to create request: %w", op, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: unable to fetch key set: %w", op, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: unable to read key set response: %w", op, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%s: key set endpoint returned %d", op, resp.StatusCode)
	}

	var doc jwksDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("%s: unable to parse key set document: %w", op, err)
	}

	ks := KeySet{}
	for _, k := range doc.Keys {
		if k.Kid == "" || len(k.X5c) == 0 || k.X5c[0] == "" {
			continue
		}
		ks[k.Kid] = k.X5c[0]
	}
	return ks, nil
}

// publicKey wraps the base64 DER certificate for kid as PEM and parses it
// into a public key.
func (ks KeySet) publicKey(kid string) (interface{}, error) {
	const op = "KeySet.publicKey"
	x5c, ok := ks[kid]
	if !ok {
		return nil, fmt.Errorf("%s: no key for kid %q: %w", op, kid, ErrKeyIDNotFound)
	}
	block, _ := pem.Decode(wrapCertificate(x5c))
	if block == nil {
		return nil, fmt.Errorf("%s: unable to decode certificate for kid %q: %w", op, kid, ErrInvalidSignature)
	}
	cert, err := x509.ParseCertificate(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("%s: unable to parse certificate for kid %q: %w", op, kid, ErrInvalidSignature)
	}
	return cert.PublicKey, nil
}

// rsaPublicKey resolves kid to an RSA public key, the only key family RS256
// verification accepts.
func (ks KeySet) rsaPublicKey(kid string) (*rsa.PublicKey, error) {
	const op = "KeySet.rsaPublicKey"
	key, err := ks.publicKey(kid)
	if err != nil {
		return nil, err
	}
	rsaKey, ok := key.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("%s: key for kid %q is not an RSA key: %w", op, kid, ErrIncompatibleKey)
	}
	return rsaKey, nil
}

// wrapCertificate converts a JWKS x5c entry (base64 DER, no armor) into a
// PEM certificate block with 64-column wrapping.
func wrapCertificate(x5c string) []byte {
	const lineLen = 64
	buf := make([]byte, 0, len(x5c)+len(x5c)/lineLen+64)
	buf = append(buf, "-----BEGIN CERTIFICATE-----\n"...)
	for len(x5c) > lineLen {
		buf = append(buf, x5c[:lineLen]...)
		buf = append(buf, '\n')
		x5c = x5c[lineLen:]
	}
	buf = append(buf, x5c...)
	buf = append(buf, "\n-----END CERTIFICATE-----\n"...)
	return buf
}
