package config

import "fmt"

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if c.Notify.BatchSize <= 0 {
		return fmt.Errorf("notify.batch_size must be > 0 (got %d)", c.Notify.BatchSize)
	}
	if c.Notify.TickInterval <= 0 {
		return fmt.Errorf("notify.tick_interval must be > 0 (got %v)", c.Notify.TickInterval)
	}
	if c.Notify.ClaimLease <= 0 {
		return fmt.Errorf("notify.claim_lease must be > 0 (got %v)", c.Notify.ClaimLease)
	}
	if c.Notify.Concurrency <= 0 {
		return fmt.Errorf("notify.concurrency must be > 0 (got %d)", c.Notify.Concurrency)
	}

	if err := c.RateLimit.validate(); err != nil {
		return fmt.Errorf("rate_limit: %w", err)
	}

	if c.Challenge.Hour < 0 || c.Challenge.Hour > 23 {
		return fmt.Errorf("challenge.hour must be in [0,23] (got %d)", c.Challenge.Hour)
	}

	if c.Database.TxRetries < 1 {
		return fmt.Errorf("database.tx_retries must be >= 1 (got %d)", c.Database.TxRetries)
	}

	return nil
}

func (c *RateLimitConfig) validate() error {
	policies := map[string]RatePolicy{
		"create_entry": {c.CreateEntryLimit, c.CreateEntryWindow},
		"create_post":  {c.CreatePostLimit, c.CreatePostWindow},
		"react":        {c.ReactLimit, c.ReactWindow},
		"report":       {c.ReportLimit, c.ReportWindow},
		"export":       {c.ExportLimit, c.ExportWindow},
	}
	for name, p := range policies {
		if p.Limit <= 0 {
			return fmt.Errorf("%s limit must be > 0 (got %d)", name, p.Limit)
		}
		if p.Window <= 0 {
			return fmt.Errorf("%s window must be > 0 (got %v)", name, p.Window)
		}
	}
	return nil
}
