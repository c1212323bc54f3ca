package domain

import "fmt"

// ConfigKey is the comparable form of a configuration.
// It compares states by identity and symbols by value.
type ConfigKey struct {
	State  *State
	Symbol TapeSymbol
}

// Config is the (state, symbol under head) pair.
// The machine keeps a single live Config and updates it in place on every step.
type Config struct {
	State  *State
	Symbol TapeSymbol
}

// NewConfig creates a configuration.
func NewConfig(state *State, sym TapeSymbol) *Config {
	return &Config{State: state, Symbol: sym}
}

// Key returns the comparable key of the configuration.
func (c *Config) Key() ConfigKey {
	return ConfigKey{State: c.State, Symbol: c.Symbol}
}

// Equal reports whether both configurations hold the same state and an equal symbol.
func (c *Config) Equal(other *Config) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.Key() == other.Key()
}

// AsNext converts the configuration to a self-loop that does not move the head.
func (c *Config) AsNext() NextConfig {
	return NextConfig{State: c.State, Symbol: c.Symbol, Direction: Stay}
}

func (c *Config) String() string {
	return fmt.Sprintf("(%s, %s)", c.State.Name(), c.Symbol)
}

// NextConfig is a transition outcome: the next state, the symbol to write and the head movement.
type NextConfig struct {
	State     *State
	Symbol    TapeSymbol
	Direction Direction
}

// Config returns the (state, symbol) part of the outcome.
func (n NextConfig) Config() *Config {
	return &Config{State: n.State, Symbol: n.Symbol}
}

// Matches reports whether the (state, symbol) part of the outcome equals c.
func (n NextConfig) Matches(c *Config) bool {
	return n.Config().Equal(c)
}

func (n NextConfig) String() string {
	return fmt.Sprintf("(%s, %s, %s)", n.State.Name(), n.Symbol, n.Direction)
}
