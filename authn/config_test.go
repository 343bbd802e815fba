package authn

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veridian-id/veridian-go/token"
)

func TestConfig_Validate(t *testing.T) {
	t.Parallel()
	valid := func() *Config {
		return &Config{
			Domain:       "tenant.example.com",
			ClientID:     "test-client",
			ClientSecret: "test-secret",
			RedirectURL:  "https://app.example.com/callback",
		}
	}
	tests := []struct {
		name      string
		modify    func(*Config)
		wantErr   bool
		wantIsErr error
	}{
		{
			name:   "valid",
			modify: func(*Config) {},
		},
		{
			name:   "valid-with-scheme",
			modify: func(c *Config) { c.Domain = "https://tenant.example.com" },
		},
		{
			name:      "empty-domain",
			modify:    func(c *Config) { c.Domain = "" },
			wantErr:   true,
			wantIsErr: ErrInvalidParameter,
		},
		{
			name:      "empty-client-id",
			modify:    func(c *Config) { c.ClientID = "" },
			wantErr:   true,
			wantIsErr: ErrInvalidParameter,
		},
		{
			name:      "empty-redirect-url",
			modify:    func(c *Config) { c.RedirectURL = "" },
			wantErr:   true,
			wantIsErr: ErrInvalidParameter,
		},
		{
			name:      "unsupported-algorithm",
			modify:    func(c *Config) { c.SigningAlgorithm = token.Alg("none") },
			wantErr:   true,
			wantIsErr: token.ErrUnsupportedSigningAlgorithm,
		},
		{
			name: "hs256-without-secret",
			modify: func(c *Config) {
				c.SigningAlgorithm = token.HS256
				c.ClientSecret = ""
			},
			wantErr:   true,
			wantIsErr: ErrInvalidParameter,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			assert, require := assert.New(t), require.New(t)
			c := valid()
			tt.modify(c)
			err := c.Validate()
			if tt.wantErr {
				require.Error(err)
				assert.Truef(errors.Is(err, tt.wantIsErr), "wanted %q but got %q", tt.wantIsErr, err)
				return
			}
			require.NoError(err)
		})
	}

	t.Run("nil-config", func(t *testing.T) {
		assert, require := assert.New(t), require.New(t)
		var c *Config
		err := c.Validate()
		require.Error(err)
		assert.True(errors.Is(err, ErrNilParameter))
	})

	t.Run("reports-every-fault", func(t *testing.T) {
		assert, require := assert.New(t), require.New(t)
		err := (&Config{}).Validate()
		require.Error(err)
		assert.Contains(err.Error(), "domain is empty")
		assert.Contains(err.Error(), "client id is empty")
		assert.Contains(err.Error(), "redirect URL is empty")
	})
}

func TestNewClient(t *testing.T) {
	t.Parallel()
	t.Run("nil-transient", func(t *testing.T) {
		assert, require := assert.New(t), require.New(t)
		_, err := NewClient(&Config{
			Domain:      "tenant.example.com",
			ClientID:    "test-client",
			RedirectURL: "https://app.example.com/callback",
		}, nil)
		require.Error(err)
		assert.True(errors.Is(err, ErrNilParameter))
	})
}
