package config

import (
	"fmt"
	"strings"
	"time"
)

const (
	// AuthModeLocal issues and verifies HMAC-signed tokens for locally registered users.
	AuthModeLocal = "local"
	// AuthModeIdP delegates registration to Keycloak and verifies tokens against the IdP JWKS.
	AuthModeIdP = "idp"
)

const minSecretLength = 32

type AuthConfig struct {
	Mode     string        `koanf:"mode"`
	Secret   string        `koanf:"secret"`
	Issuer   string        `koanf:"issuer"`
	TokenTTL time.Duration `koanf:"tokenttl"`
}

// String returns a string representation of the auth configuration. The secret is never printed.
func (c *AuthConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Auth ---\n")
	b.WriteString(fmt.Sprintf("  mode: %s\n", c.Mode))
	b.WriteString(fmt.Sprintf("  secret: %s\n", maskSecret(c.Secret)))
	b.WriteString(fmt.Sprintf("  issuer: %s\n", c.Issuer))
	b.WriteString(fmt.Sprintf("  tokenttl: %s\n", c.TokenTTL))
	return b.String()
}

func (c *AuthConfig) Validate() error {
	if c.Mode == "" {
		c.Mode = AuthModeLocal
	}
	switch c.Mode {
	case AuthModeLocal:
		if len(c.Secret) < minSecretLength {
			return fmt.Errorf("auth secret must be at least %d bytes long", minSecretLength)
		}
		if c.Issuer == "" {
			return fmt.Errorf("auth issuer cannot be empty")
		}
		if c.TokenTTL <= 0 {
			return fmt.Errorf("auth token TTL must be greater than zero")
		}
	case AuthModeIdP:
	default:
		return fmt.Errorf("unknown auth mode: %q", c.Mode)
	}
	return nil
}
