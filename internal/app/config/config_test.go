package config

import (
	"testing"

	"github.com/shopspring/decimal"
)

func validConfig() *Config {
	return &Config{
		PaymentWebhookKey: "key",
		Lifecycle:         LifecycleConfig{VATRate: "0.15"},
		Scheduler:         SchedulerConfig{BatchSize: 10},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"no webhook key", func(c *Config) { c.PaymentWebhookKey = "" }, true},
		{"bad vat", func(c *Config) { c.Lifecycle.VATRate = "fifteen" }, true},
		{"negative vat", func(c *Config) { c.Lifecycle.VATRate = "-0.1" }, true},
		{"zero vat", func(c *Config) { c.Lifecycle.VATRate = "0" }, false},
		{"share over 100", func(c *Config) { c.Lifecycle.FixedSharePercent = "120" }, true},
		{"share set", func(c *Config) { c.Lifecycle.FixedSharePercent = "80" }, false},
		{"zero batch", func(c *Config) { c.Scheduler.BatchSize = 0 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFixedSharePercentUnset(t *testing.T) {
	p, err := validConfig().FixedSharePercent()
	if err != nil {
		t.Fatalf("FixedSharePercent: %v", err)
	}
	if !p.Equal(decimal.Zero) {
		t.Fatalf("FixedSharePercent = %s, want 0", p)
	}
}
