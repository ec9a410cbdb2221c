package v1

import "go.uber.org/zap"

// Option configures a Client.
type Option func(*clientConfig)

type clientConfig struct {
	base    string
	session string
	workdir string
	logger  *zap.Logger
}

// WithBase sets the store root directory.
func WithBase(base string) Option {
	return func(c *clientConfig) {
		c.base = base
	}
}

// WithSession forces a specific session identity.
func WithSession(session string) Option {
	return func(c *clientConfig) {
		c.session = session
	}
}

// WithWorkdir overrides the working directory used for project grouping.
func WithWorkdir(dir string) Option {
	return func(c *clientConfig) {
		c.workdir = dir
	}
}

// WithLogger sets the logger for skip-and-warn diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(c *clientConfig) {
		c.logger = logger
	}
}
