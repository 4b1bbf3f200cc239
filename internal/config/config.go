// Package config assembles the storefront's full configuration.
package config

import (
	"fmt"
	"strings"

	"github.com/kaozx001/project-nawatakum/pkg/config"
	"github.com/kaozx001/project-nawatakum/pkg/config/configloader"
)

var _ configloader.Validator = (*Config)(nil)

type Config struct {
	HTTPServer config.HTTPConfig     `koanf:"server"`
	Storage    config.StorageConfig  `koanf:"storage"`
	Pricing    config.PricingConfig  `koanf:"pricing"`
	Checkout   config.CheckoutConfig `koanf:"checkout"`
	Log        config.LogConfig      `koanf:"log"`
	PProf      config.PProfConfig    `koanf:"pprof"`
	Nats       config.NATSConfig     `koanf:"nats"`
	Shutdown   config.ShutdownConfig `koanf:"shutdown"`
}

func (c *Config) String() string {
	var b strings.Builder

	b.WriteString("\n--- Server Configuration ---\n")
	b.WriteString(fmt.Sprintf("  server.port: %d\n", c.HTTPServer.Port))
	b.WriteString(fmt.Sprintf("  server.timeout.read: %v\n", c.HTTPServer.Timeout.Read))
	b.WriteString(fmt.Sprintf("  server.timeout.write: %v\n", c.HTTPServer.Timeout.Write))

	b.WriteString("\n--- Storage ---\n")
	b.WriteString(fmt.Sprintf("  storage.dir: %s\n", c.Storage.Dir))

	b.WriteString("\n--- Pricing ---\n")
	b.WriteString(fmt.Sprintf("  pricing.shippingFee: %v\n", c.Pricing.ShippingFee))
	b.WriteString(fmt.Sprintf("  pricing.freeShippingThreshold: %v\n", c.Pricing.FreeShippingThreshold))
	b.WriteString(fmt.Sprintf("  pricing.taxRate: %v\n", c.Pricing.TaxRate))
	b.WriteString(fmt.Sprintf("  pricing.codSurcharge: %v\n", c.Pricing.CODSurcharge))

	b.WriteString("\n--- Checkout ---\n")
	b.WriteString(fmt.Sprintf("  checkout.processingDelay: %v\n", c.Checkout.ProcessingDelay))

	b.WriteString("\n--- Events ---\n")
	b.WriteString(fmt.Sprintf("  nats.enabled: %t\n", c.Nats.Enabled))
	if c.Nats.Enabled {
		b.WriteString(fmt.Sprintf("  nats.url: %s\n", c.Nats.Url))
	}

	b.WriteString("\n--- Observability & Logging ---\n")
	b.WriteString(fmt.Sprintf("  log.level: %s\n", c.Log.Level))
	b.WriteString(fmt.Sprintf("  pprof.enabled: %t\n", c.PProf.Enabled))

	b.WriteString("\n--- Application Behavior ---\n")
	b.WriteString(fmt.Sprintf("  shutdown.timeout: %s\n", c.Shutdown.Timeout))

	return b.String()
}

// Validate checks if the configuration values are valid.
func (c *Config) Validate() error {
	if err := c.HTTPServer.Validate(); err != nil {
		return err
	}
	if err := c.Storage.Validate(); err != nil {
		return err
	}
	if err := c.Pricing.Validate(); err != nil {
		return err
	}
	if err := c.Checkout.Validate(); err != nil {
		return err
	}
	if err := c.Log.Validate(); err != nil {
		return err
	}
	if err := c.PProf.Validate(); err != nil {
		return err
	}
	if err := c.Nats.Validate(); err != nil {
		return err
	}
	return c.Shutdown.Validate()
}
