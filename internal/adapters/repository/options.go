package repository

import "github.com/okian/swigup/pkg/logger"

// Option applies a configuration option to the ProfileStore.
type Option func(*ProfileStore)

// WithKey sets the slot the profile is stored under.
func WithKey(key string) Option {
	return func(s *ProfileStore) {
		if key != "" {
			s.key = key
		}
	}
}

// WithLogger sets a custom logger for the store.
func WithLogger(l logger.Logger) Option {
	return func(s *ProfileStore) {
		if l != nil {
			s.logger = l
		}
	}
}
