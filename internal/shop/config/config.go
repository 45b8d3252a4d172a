// Package config holds the shop service configuration.
package config

import (
	"fmt"
	"strings"

	"github.com/zhiidetopchubaeva/shop/pkg/config"
	"github.com/zhiidetopchubaeva/shop/pkg/config/configloader"
)

var _ configloader.Validator = (*Config)(nil)

type Config struct {
	HTTPServer config.HTTPConfig       `koanf:"server"`
	Database   config.DatabaseConfig   `koanf:"database"`
	Log        config.LogConfig        `koanf:"log"`
	PProf      config.PProfConfig      `koanf:"pprof"`
	GRPC       config.GrpcServerConfig `koanf:"grpc"`
	Shutdown   config.ShutdownConfig   `koanf:"shutdown"`
	Probes     config.ProbesConfig     `koanf:"probes"`
	Auth       config.AuthConfig       `koanf:"auth"`
	IdP        config.IdP              `koanf:"idp"`
	Keycloak   config.KeycloakConfig   `koanf:"keycloak"`
	NATS       config.NATSConfig       `koanf:"nats"`
	Resilience config.ResilienceConfig `koanf:"resilience"`
	Telemetry  config.TelemetryConfig  `koanf:"telemetry"`
}

// IdPMode reports whether accounts live in the external identity provider.
func (c *Config) IdPMode() bool {
	return c.Auth.Mode == config.AuthModeIdP
}

// String renders the configuration with secrets masked.
func (c *Config) String() string {
	var b strings.Builder
	b.WriteString(c.HTTPServer.String())
	b.WriteString(c.Database.String())
	b.WriteString(c.GRPC.String())
	b.WriteString(c.Log.String())
	b.WriteString(c.PProf.String())
	b.WriteString(c.Shutdown.String())
	b.WriteString(c.Probes.String())
	b.WriteString(c.Auth.String())
	if c.IdPMode() {
		b.WriteString(c.IdP.String())
		b.WriteString(c.Keycloak.String())
	}
	b.WriteString(c.NATS.String())
	b.WriteString(c.Resilience.String())
	b.WriteString(c.Telemetry.String())
	return b.String()
}

// Validate checks if the configuration values are valid.
// IdP and Keycloak settings are only required in idp mode.
func (c *Config) Validate() error {
	validators := []configloader.Validator{
		&c.HTTPServer,
		&c.Database,
		&c.Log,
		&c.PProf,
		&c.Shutdown,
		&c.GRPC,
		&c.Probes,
		&c.Auth,
		&c.NATS,
		&c.Resilience,
		&c.Telemetry,
	}
	for _, v := range validators {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	if c.IdPMode() {
		if err := c.IdP.Validate(); err != nil {
			return fmt.Errorf("idp: %w", err)
		}
		if err := c.Keycloak.Validate(); err != nil {
			return fmt.Errorf("keycloak: %w", err)
		}
	}
	return nil
}
