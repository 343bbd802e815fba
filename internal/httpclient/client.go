// Package httpclient builds the http clients used to reach the identity
// provider.
package httpclient

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"net/http"

	cleanhttp "github.com/hashicorp/go-cleanhttp"
)

// ErrInvalidCertificatePEM is returned when the provided CA PEM cannot be
// parsed.
var ErrInvalidCertificatePEM = errors.New("invalid certificate PEM")

// New creates a new http client which will use the optional CA certificate
// PEM if provided, otherwise it will use the installed system CA chain.
func New(caPEM string) (*http.Client, error) {
	tr := cleanhttp.DefaultPooledTransport()

	if caPEM != "" {
		certPool := x509.NewCertPool()
		if ok := certPool.AppendCertsFromPEM([]byte(caPEM)); !ok {
			return nil, ErrInvalidCertificatePEM
		}
		tr.TLSClientConfig = &tls.Config{
			RootCAs: certPool,
		}
	}

	return &http.Client{
		Transport: tr,
	}, nil
}
