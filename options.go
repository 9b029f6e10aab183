package recordkit

import (
	"time"

	"go.uber.org/zap"
)

// Option configures a Client.
type Option func(*clientConfig)

type clientConfig struct {
	driver           string
	addrs            []string
	password         string
	keyPrefix        string
	readinessTimeout time.Duration
	logger           *zap.Logger
	observer         Observer
}

// WithMemory keeps everything in process memory. This is the default.
func WithMemory() Option {
	return func(c *clientConfig) {
		c.driver = driverMemory
		c.addrs = nil
	}
}

// WithValkey connects to Valkey at the given addresses.
func WithValkey(addrs ...string) Option {
	return func(c *clientConfig) {
		c.driver = driverValkey
		c.addrs = addrs
	}
}

// WithRedis connects to Redis at the given addresses.
func WithRedis(addrs ...string) Option {
	return func(c *clientConfig) {
		c.driver = driverRedis
		c.addrs = addrs
	}
}

// WithPassword sets the database password.
func WithPassword(password string) Option {
	return func(c *clientConfig) { c.password = password }
}

// WithKeyPrefix namespaces every stored key. Default "recordkit:".
func WithKeyPrefix(prefix string) Option {
	return func(c *clientConfig) { c.keyPrefix = prefix }
}

// WithReadinessTimeout bounds how long New waits for the database.
func WithReadinessTimeout(d time.Duration) Option {
	return func(c *clientConfig) { c.readinessTimeout = d }
}

// WithLogger sets the logger handed to seeders and selectors.
func WithLogger(l *zap.Logger) Option {
	return func(c *clientConfig) { c.logger = l }
}

// WithObserver receives selector events from every selector the client creates.
func WithObserver(o Observer) Option {
	return func(c *clientConfig) { c.observer = o }
}
