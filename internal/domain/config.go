package domain

import (
	"errors"
	"fmt"
	"time"
)

// ShopConfig represents one shop participating in the simulation.
type ShopConfig struct {
	ID         string  // shop identifier, e.g. "DE"
	BaseLambda float64 // base daily order intensity before multipliers
	Currency   string  // ISO currency code
}

// Predefined shop configurations matching the reference dataset.
var (
	ShopConfigDE = ShopConfig{ID: "DE", BaseLambda: 50, Currency: "EUR"}
	ShopConfigAT = ShopConfig{ID: "AT", BaseLambda: 15, Currency: "EUR"}
	ShopConfigCH = ShopConfig{ID: "CH", BaseLambda: 10, Currency: "CHF"}
)

// DefaultShops returns the default shop set in declaration order.
func DefaultShops() []ShopConfig {
	return []ShopConfig{ShopConfigDE, ShopConfigAT, ShopConfigCH}
}

// GenerationConfig holds the scalar configuration of one simulation run.
type GenerationConfig struct {
	Seed          int64     // random seed for the run's source
	StartDate     time.Time // first simulated day, midnight UTC
	HorizonDays   int       // number of days in the half-open range
	Shops         []ShopConfig
	NumProducts   int
	NumCustomers  int
	MaxBasketSize int     // largest basket the order factory may draw
	AvgPriceProxy float64 // planning constant for marketing spend, not the true catalog mean
}

// DefaultGenerationConfig returns the reference one-year configuration.
func DefaultGenerationConfig() GenerationConfig {
	return GenerationConfig{
		Seed:          42,
		StartDate:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		HorizonDays:   365,
		Shops:         DefaultShops(),
		NumProducts:   500,
		NumCustomers:  5000,
		MaxBasketSize: 4,
		AvgPriceProxy: 100,
	}
}

// Validate rejects configurations the engine cannot satisfy. Zero counts are
// allowed (they yield empty but valid output); a basket larger than the
// catalog is not, because sampling without replacement cannot satisfy it.
func (c GenerationConfig) Validate() error {
	if c.HorizonDays < 0 {
		return errors.New("horizon days must not be negative")
	}
	if c.MaxBasketSize <= 0 {
		return errors.New("max basket size must be positive")
	}
	if c.NumProducts > 0 && c.MaxBasketSize > c.NumProducts {
		return fmt.Errorf("max basket size %d exceeds catalog size %d", c.MaxBasketSize, c.NumProducts)
	}
	if len(c.Shops) == 0 {
		return errors.New("at least one shop is required")
	}
	seen := make(map[string]struct{}, len(c.Shops))
	for _, s := range c.Shops {
		if s.ID == "" {
			return errors.New("shop id must not be empty")
		}
		if _, dup := seen[s.ID]; dup {
			return fmt.Errorf("duplicate shop id %q", s.ID)
		}
		seen[s.ID] = struct{}{}
		if s.Currency == "" {
			return fmt.Errorf("shop %s: currency must not be empty", s.ID)
		}
	}
	return nil
}
