package config

import (
	"fmt"
	"time"
)

// StorageConfig locates the local data directory the collection documents are
// persisted under.
type StorageConfig struct {
	Dir string `koanf:"dir"`
}

func (c *StorageConfig) Validate() error {
	if c.Dir == "" {
		return fmt.Errorf("storage directory is not configured")
	}
	return nil
}

// PricingConfig carries the named pricing constants applied by the cart
// summary and checkout. Zero values are legal (free shipping, no tax).
type PricingConfig struct {
	ShippingFee           float64 `koanf:"shippingFee"`
	FreeShippingThreshold float64 `koanf:"freeShippingThreshold"`
	TaxRate               float64 `koanf:"taxRate"`
	CODSurcharge          float64 `koanf:"codSurcharge"`
}

func (c *PricingConfig) Validate() error {
	if c.ShippingFee < 0 || c.FreeShippingThreshold < 0 || c.CODSurcharge < 0 {
		return fmt.Errorf("pricing amounts must not be negative")
	}
	if c.TaxRate < 0 || c.TaxRate >= 1 {
		return fmt.Errorf("tax rate must be in [0, 1): %v", c.TaxRate)
	}
	return nil
}

// DefaultPricing returns the storefront's stock pricing constants.
func DefaultPricing() PricingConfig {
	return PricingConfig{
		ShippingFee:           150,
		FreeShippingThreshold: 5000,
		TaxRate:               0.07,
		CODSurcharge:          50,
	}
}

// CheckoutConfig controls the simulated processing applied by checkout and
// authentication flows.
type CheckoutConfig struct {
	// ProcessingDelay is the artificial latency applied before an order is
	// created, standing in for a real payment gateway round trip.
	ProcessingDelay time.Duration `koanf:"processingDelay"`
	// AuthDelay is the artificial latency applied to login and registration.
	AuthDelay time.Duration `koanf:"authDelay"`
}

func (c *CheckoutConfig) Validate() error {
	if c.ProcessingDelay < 0 {
		return fmt.Errorf("processing delay must not be negative: %v", c.ProcessingDelay)
	}
	if c.AuthDelay < 0 {
		return fmt.Errorf("auth delay must not be negative: %v", c.AuthDelay)
	}
	return nil
}
