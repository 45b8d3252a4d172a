package config

import (
	"fmt"
	"strings"
)

// KeycloakConfig holds the admin client used to create accounts in the identity provider.
type KeycloakConfig struct {
	URL          string `koanf:"url"`
	Realm        string `koanf:"realm"`
	ClientID     string `koanf:"clientid"`
	ClientSecret string `koanf:"clientsecret"`
}

// String returns a string representation of the Keycloak configuration. The secret is never printed.
func (c *KeycloakConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Keycloak ---\n")
	b.WriteString(fmt.Sprintf("  url: %s\n", c.URL))
	b.WriteString(fmt.Sprintf("  realm: %s\n", c.Realm))
	b.WriteString(fmt.Sprintf("  clientid: %s\n", c.ClientID))
	b.WriteString(fmt.Sprintf("  clientsecret: %s\n", maskSecret(c.ClientSecret)))
	return b.String()
}

func (c *KeycloakConfig) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("keycloak URL cannot be empty")
	}
	if c.Realm == "" {
		return fmt.Errorf("keycloak realm cannot be empty")
	}
	if c.ClientID == "" || c.ClientSecret == "" {
		return fmt.Errorf("keycloak client credentials are not configured")
	}
	return nil
}

func maskSecret(s string) string {
	if s == "" {
		return "<not configured>"
	}
	return "****"
}
