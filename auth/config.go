package auth

import (
	"fmt"

	"github.com/kbukum/todoapi/auth/password"
	"github.com/kbukum/todoapi/auth/token"
)

// Config holds all authentication configuration.
type Config struct {
	// Token configures token signing and lifetimes.
	Token token.Config `yaml:"token" mapstructure:"token"`

	// Password configures password hashing.
	Password password.Config `yaml:"password" mapstructure:"password"`
}

// ApplyDefaults sets defaults on both sub-configurations.
func (c *Config) ApplyDefaults() {
	c.Token.ApplyDefaults()
	c.Password.ApplyDefaults()
}

// Validate checks both sub-configurations.
func (c *Config) Validate() error {
	if err := c.Token.Validate(); err != nil {
		return fmt.Errorf("auth.token: %w", err)
	}
	if err := c.Password.Validate(); err != nil {
		return fmt.Errorf("auth.password: %w", err)
	}
	return nil
}

// Describe returns a human-readable one-liner for the startup summary.
// Example: "token(HS256) access=30m0s default=15m0s password=bcrypt"
func (c *Config) Describe() string {
	return fmt.Sprintf("token(%s) access=%s default=%s password=%s",
		c.Token.Method, c.Token.AccessTokenTTL, c.Token.DefaultTTL, c.Password.Algorithm)
}
