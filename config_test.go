package authkit

import (
	"bytes"
	"testing"
	"time"
)

func validTestConfig() Config {
	cfg := defaultConfig()
	cfg.Token.Secret = testEngineSecret()
	return cfg
}

func TestDefaultConfigValidatesWithSecret(t *testing.T) {
	cfg := validTestConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config with secret must validate: %v", err)
	}
}

func TestConfigRejectsBadValues(t *testing.T) {
	cases := map[string]func(*Config){
		"zero access ttl":   func(c *Config) { c.Token.AccessTTL = 0 },
		"zero refresh ttl":  func(c *Config) { c.Refresh.TTL = 0 },
		"short secret":      func(c *Config) { c.Token.Secret = bytes.Repeat([]byte{1}, 16) },
		"audit zero buffer": func(c *Config) { c.Audit.Enabled = true; c.Audit.BufferSize = 0 },
		"prod no secret":    func(c *Config) { c.Security.ProductionMode = true; c.Token.Secret = nil },
		"prod long access":  func(c *Config) { c.Security.ProductionMode = true; c.Token.AccessTTL = time.Hour },
		"prod long refresh": func(c *Config) { c.Security.ProductionMode = true; c.Refresh.TTL = 90 * 24 * time.Hour },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := validTestConfig()
			mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestConfigCloneIsolatesSecret(t *testing.T) {
	cfg := validTestConfig()
	clone := cloneConfig(cfg)

	cfg.Token.Secret[0] ^= 0xff
	if clone.Token.Secret[0] == cfg.Token.Secret[0] {
		t.Fatal("clone must not share the secret backing array")
	}
}

func TestProductionConfigAtLimits(t *testing.T) {
	cfg := validTestConfig()
	cfg.Security.ProductionMode = true
	cfg.Token.AccessTTL = 15 * time.Minute
	cfg.Refresh.TTL = 30 * 24 * time.Hour

	if err := cfg.Validate(); err != nil {
		t.Fatalf("TTLs at the production caps must validate: %v", err)
	}
}
