// Package config loads lintgate settings from file, environment, and
// defaults.
package config

import "errors"

// DefaultBaseline is the persisted ledger path, relative to the working
// directory.
const DefaultBaseline = ".therug.yaml"

// ErrEmptyBaseline indicates a config that cleared the baseline path.
var ErrEmptyBaseline = errors.New("baseline path must not be empty")

// Config is the top-level configuration struct for lintgate.
// Field tags use mapstructure for viper unmarshalling.
type Config struct {
	Baseline string       `mapstructure:"baseline"`
	Clippy   ClippyConfig `mapstructure:"clippy"`
}

// ClippyConfig holds settings for the clippy wrapper command. Args are
// appended to the cargo clippy invocation after environment-variable
// substitution.
type ClippyConfig struct {
	Args []string `mapstructure:"args"`
}

// Validate checks the configuration for internal consistency.
func (c *Config) Validate() error {
	if c.Baseline == "" {
		return ErrEmptyBaseline
	}

	return nil
}
