package token

import (
	"time"

	"github.com/elemental-io/elemental/pkg/apperr"
)

const minSecretLength = 8

// Config controls signing and validation. Secret is a shared HMAC key;
// the supported algorithms are the HS family.
type Config struct {
	SecretKey  string        `yaml:"secret_key" mapstructure:"secret_key"`
	Algorithm  string        `yaml:"algorithm" mapstructure:"algorithm"`
	AccessTTL  TTL           `yaml:"access_token" mapstructure:"access_token"`
	RefreshTTL TTL           `yaml:"refresh_token" mapstructure:"refresh_token"`
	ClockSkew  time.Duration `yaml:"clock_skew" mapstructure:"clock_skew"`
}

// Defaults fills zero values: HS256, one hour access, seven days refresh.
func (c *Config) Defaults() {
	if c.Algorithm == "" {
		c.Algorithm = "HS256"
	}
	if c.AccessTTL.IsZero() {
		c.AccessTTL = TTL{Hours: 1}
	}
	if c.RefreshTTL.IsZero() {
		c.RefreshTTL = TTL{Days: 7}
	}
	if c.ClockSkew < 0 {
		c.ClockSkew = 0
	}
}

// Validate rejects configurations that cannot sign safely.
func (c *Config) Validate() error {
	if len(c.SecretKey) < minSecretLength {
		return apperr.Configuration("jwt secret key must be at least 8 characters")
	}
	switch c.Algorithm {
	case "", "HS256", "HS384", "HS512":
	default:
		return apperr.Configuration("unsupported jwt algorithm: " + c.Algorithm)
	}
	return nil
}
