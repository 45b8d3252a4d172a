package config

import (
	"fmt"
	"log"
	"strings"
	"time"
)

// ProbesConfig controls the background readiness checks that feed the health endpoints.
type ProbesConfig struct {
	Interval time.Duration `koanf:"interval"`
	Timeout  time.Duration `koanf:"timeout"`
}

const defaultProbeInterval = 10 * time.Second
const defaultProbeTimeout = 2 * time.Second

// String returns a string representation of the ProbesConfig.
func (c *ProbesConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Probes ---\n")
	b.WriteString(fmt.Sprintf("  interval: %s\n", c.Interval))
	b.WriteString(fmt.Sprintf("  timeout: %s\n", c.Timeout))
	return b.String()
}

func (c *ProbesConfig) Validate() error {
	if c.Interval <= 0 {
		log.Println("Using default value for probes.interval")
		c.Interval = defaultProbeInterval
	}
	if c.Timeout <= 0 {
		log.Println("Using default value for probes.timeout")
		c.Timeout = defaultProbeTimeout
	}
	if c.Timeout >= c.Interval {
		return fmt.Errorf("probe timeout %s must be shorter than the interval %s", c.Timeout, c.Interval)
	}
	return nil
}
